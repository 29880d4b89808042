package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"codenote/internal/trace"
)

// traceCleanup is replaced by setupTracing; main always calls it.
var traceCleanup = func() {}

// setupTracing inspects trace-related flags and initializes the tracer.
// It returns a cleanup function and an error if initialization fails.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := root.PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}

	// --trace без уровня включает фазы
	if level == trace.LevelOff {
		if traceOutput == "" {
			setContextTracer(cmd, trace.Nop)
			return func() {}, nil
		}
		level = trace.LevelPhase
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	// файл указан, но режим по умолчанию (ring) ничего бы в него не записал
	if traceOutput != "" && !root.PersistentFlags().Changed("trace-mode") {
		mode = trace.ModeStream
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	setContextTracer(cmd, tracer)

	var heartbeat *trace.Heartbeat
	if heartbeatInterval > 0 {
		heartbeat = trace.StartHeartbeat(cmd.Context(), tracer, heartbeatInterval)
	}

	cleanup := func() {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

func setContextTracer(cmd *cobra.Command, t trace.Tracer) {
	ctx := trace.WithTracer(cmd.Context(), t)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
}

// dumpTraceRing writes the last buffered events after a failed command.
func dumpTraceRing(root *cobra.Command, out io.Writer) {
	ctx := root.Context()
	if ctx == nil {
		return
	}
	ring, ok := trace.RingOf(trace.FromContext(ctx))
	if !ok || len(ring.Snapshot()) == 0 {
		return
	}
	fmt.Fprintln(out, "--- last trace events ---")
	if err := ring.Dump(out, trace.FormatText); err != nil {
		fmt.Fprintf(out, "trace: dump error: %v\n", err)
	}
}
