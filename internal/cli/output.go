package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/teratic/eventbridge/internal/event"
)

// parsePayload decodes a JSON payload. An array is spread into one
// argument per element; any other value is a single argument.
func parsePayload(raw string) ([]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, raw)
	}

	res := gjson.Parse(raw)
	if !res.IsArray() {
		return []any{res.Value()}, nil
	}
	var args []any
	res.ForEach(func(_, v gjson.Result) bool {
		args = append(args, v.Value())
		return true
	})
	return args, nil
}

// writeJSON pretty-prints doc to w, colorized when w is a terminal.
func writeJSON(w io.Writer, doc string) error {
	out := pretty.Pretty([]byte(doc))
	if isTerminal(w) {
		out = pretty.Color(out, nil)
	}
	_, err := w.Write(out)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// describe names a registered listener for display.
func describe(reg *event.Registration) string {
	switch v := reg.Unwrap().(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%T", v)
	}
}
