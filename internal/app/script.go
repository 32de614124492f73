package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/i-melnichenko/store-lab/internal/action"
)

// Script formats accepted by ApplyScript.
const (
	FormatJSONLines = "jsonl"
	FormatYAML      = "yaml"
)

// FormatForPath guesses the script format from a file name.
func FormatForPath(path string) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSONLines
}

// ApplyScript decodes every action in r, dispatches them in order and prints
// the final state. Nothing is dispatched if any entry fails to decode.
func (a *App) ApplyScript(ctx context.Context, r io.Reader, format string, out io.Writer) error {
	var (
		acts []action.Action
		err  error
	)
	switch format {
	case FormatJSONLines, "":
		acts, err = action.DecodeJSONLines(r)
	case FormatYAML:
		acts, err = action.DecodeYAMLScript(r)
	default:
		return fmt.Errorf("app: unsupported script format %q", format)
	}
	if err != nil {
		return fmt.Errorf("app: load script: %w", err)
	}

	for i, act := range acts {
		if err := a.store.Dispatch(ctx, act); err != nil {
			return fmt.Errorf("app: dispatch entry %d: %w", i+1, err)
		}
	}
	a.logger.Info("script applied", "actions", len(acts), "format", format)

	snap := a.store.GetState()
	rnd := newRenderer(a.config.Color)
	if _, err := fmt.Fprintf(out, "counter: %d\n", snap.Counter); err != nil {
		return err
	}
	_, err = io.WriteString(out, rnd.Employees(snap.Employees))
	return err
}
