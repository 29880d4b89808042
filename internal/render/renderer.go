package render

import "context"

// Renderer turns plain text or inline markup into a display tree.
// Implementations may block; callers wait for the result before moving on.
type Renderer interface {
	Render(ctx context.Context, text string) (Node, error)
}

// Func adapts a plain function to Renderer.
type Func func(ctx context.Context, text string) (Node, error)

// Render calls f.
func (f Func) Render(ctx context.Context, text string) (Node, error) {
	return f(ctx, text)
}

// Plain renders text as a single text leaf and never fails.
type Plain struct{}

// Render returns Text(text).
func (Plain) Render(_ context.Context, text string) (Node, error) {
	return Text(text), nil
}
