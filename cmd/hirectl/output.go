package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/matheus3301/hirechat/internal/chat"
)

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// formatBubble renders one bubble as a plain line, continuation lines
// indented under the text.
func formatBubble(b chat.Bubble) string {
	who := b.Header
	switch {
	case b.Sent:
		who = "You"
	case who == "":
		who = "-"
	}
	text := strings.ReplaceAll(b.Text, "\n", "\n    ")
	return fmt.Sprintf("[%s] %s: %s", b.Time, who, text)
}

func printTranscript(w io.Writer, t chat.Transcript) {
	if t.IsPlaceholder() {
		_, _ = fmt.Fprintln(w, t.Placeholder)
		return
	}
	for _, b := range t.Bubbles {
		_, _ = fmt.Fprintln(w, formatBubble(b))
	}
}
