package app

import (
	"context"
	"fmt"
	"io"

	"github.com/i-melnichenko/store-lab/internal/counterdemo"
)

// RunDemo clicks through the counter demo: first with a counter owned by the
// parent view, then with two views bound to the store counter.
func (a *App) RunDemo(ctx context.Context, out io.Writer) error {
	var local counterdemo.Local
	if _, err := fmt.Fprintln(out, "== without store"); err != nil {
		return err
	}
	for _, click := range []func(){local.Increment, local.Increment, local.Decrement, local.Decrement} {
		click()
		if _, err := fmt.Fprintf(out, "%d\t%s\n", local.Count(), local.Message()); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(out, "== with store"); err != nil {
		return err
	}
	clicker := counterdemo.NewBound(a.store)
	defer clicker.Close()
	observer := counterdemo.NewBound(a.store)
	defer observer.Close()

	steps := []struct {
		name string
		do   func(context.Context) error
	}{
		{"increment", clicker.Increment},
		{"increment", clicker.Increment},
		{"decrement", clicker.Decrement},
		{"reset", clicker.Reset},
	}
	for _, step := range steps {
		if err := step.do(ctx); err != nil {
			return fmt.Errorf("demo %s: %w", step.name, err)
		}
		if _, err := fmt.Fprintf(out, "%s\tstore=%d observer=%d\t%s\n",
			step.name, clicker.Value(), observer.Value(), clicker.Message()); err != nil {
			return err
		}
	}
	return nil
}
