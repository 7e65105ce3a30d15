package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Output formats.
const (
	formatJSON    = "json"
	formatMsgpack = "msgpack"
)

// encode renders v in format. JSON is indented; msgpack is raw bytes.
func encode(v any, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		return json.MarshalIndent(v, "", "  ")
	case formatMsgpack:
		return msgpack.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// writeResult prints an encoded result. On a terminal JSON is colored and
// msgpack is shown as a hex dump instead of raw bytes.
func writeResult(w io.Writer, b []byte, format string, tty bool) error {
	if !tty {
		_, err := w.Write(b)
		if err == nil && format == formatJSON {
			_, err = io.WriteString(w, "\n")
		}
		return err
	}
	if format == formatMsgpack {
		_, err := io.WriteString(w, hex.Dump(b))
		return err
	}
	_, err := fmt.Fprintln(w, resultStyle.Render(string(b)))
	return err
}
