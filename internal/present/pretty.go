package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"codenote/internal/source"
)

type palette struct {
	gutter, header, dim *color.Color
	kinds               map[string]*color.Color
	severities          map[string]*color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		gutter: mk(color.FgHiBlack),
		header: mk(color.FgHiWhite, color.Bold),
		dim:    mk(color.Faint),
		kinds: map[string]*color.Color{
			"hover":      mk(color.FgCyan),
			"static":     mk(color.FgCyan, color.Bold),
			"query":      mk(color.FgGreen, color.Bold),
			"completion": mk(color.FgMagenta),
			"highlight":  mk(color.FgYellow),
			"tag":        mk(color.FgBlue),
		},
		severities: map[string]*color.Color{
			"error":      mk(color.FgRed, color.Bold),
			"warning":    mk(color.FgYellow, color.Bold),
			"suggestion": mk(color.FgCyan),
			"message":    mk(color.FgBlue),
		},
	}
}

func (p palette) forAnnotation(a AnnotationJSON) *color.Color {
	if c, ok := p.severities[a.Severity]; ok {
		return c
	}
	if c, ok := p.kinds[a.Kind]; ok {
		return c
	}
	return p.dim
}

// Pretty печатает документ: строки блока, под каждой строкой подчёркивание
// ^~~~ по колонкам аннотации и её подпись. Колонки в UTF-16, выравнивание по
// ширине символов в терминале.
func Pretty(w io.Writer, doc DocumentJSON, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, b := range doc.Blocks {
		if !b.Composed && !opts.ShowSkipped {
			continue
		}
		header := fmt.Sprintf("%s:%d [%s]", doc.Name, b.StartLine, b.Lang)
		switch {
		case b.Include != "":
			header += " include " + b.Include
		case !b.Composed:
			header += " (skipped)"
		}
		if _, err := fmt.Fprintln(w, pal.header.Sprint(header)); err != nil {
			return err
		}

		gutterWidth := len(fmt.Sprint(len(b.Lines)))
		for _, ln := range b.Lines {
			num := fmt.Sprintf("%*d", gutterWidth, ln.Line)
			if _, err := fmt.Fprintf(w, "%s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), ln.Text); err != nil {
				return err
			}
			blank := strings.Repeat(" ", gutterWidth)
			for _, a := range ln.Annotations {
				pad, marks := underline(ln.Text, a)
				label := a.Kind
				if a.Label != "" {
					label += ": " + a.Label
				}
				label = truncate(label, opts.Width)
				c := pal.forAnnotation(a)
				if _, err := fmt.Fprintf(w, "%s %s %s%s %s\n", blank, pal.gutter.Sprint("|"), pad, c.Sprint(marks), c.Sprint(label)); err != nil {
					return err
				}
			}
		}

		if opts.ShowFindings {
			for _, f := range b.Findings {
				c := pal.severities[f.Severity]
				if c == nil {
					c = pal.dim
				}
				if _, err := fmt.Fprintf(w, "  %s %s line %d: %s\n", c.Sprint(f.Severity), f.Code, f.Line, f.Message); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// underline returns the padding before the annotation and its marks. Empty
// ranges get a single caret.
func underline(text string, a AnnotationJSON) (string, string) {
	start := runewidth.StringWidth(text[:source.ByteOffset(text, int(a.StartCol))])
	end := runewidth.StringWidth(text[:source.ByteOffset(text, int(a.EndCol))])
	pad := strings.Repeat(" ", start)
	if end <= start {
		return pad, "^"
	}
	return pad, "^" + strings.Repeat("~", end-start-1)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
