// Package highlight colours generated C source for terminal output.
package highlight

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/term"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// DefaultFormatter is the chroma formatter used for true-colour terminals.
const DefaultFormatter = "terminal16m"

// Highlight tokenises source with chroma's C lexer and writes it to w with
// terminal escape sequences. An unknown style falls back to chroma's fallback
// style and an unknown formatter to DefaultFormatter.
func Highlight(w io.Writer, source, styleName, formatterName string) error {
	lexer := lexers.Get("c")
	if lexer == nil {
		// Should not happen, chroma ships a C lexer
		_, err := io.WriteString(w, source)
		return err
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("failed to tokenise source: %w", err)
	}

	if _, ok := formatters.Registry[formatterName]; !ok {
		formatterName = DefaultFormatter
	}

	var buf bytes.Buffer
	if err := formatters.Get(formatterName).Format(&buf, styles.Get(styleName), iterator); err != nil {
		return fmt.Errorf("failed to format source: %w", err)
	}

	// Chroma can leave a lone SGR reset after the final newline. Move it in
	// front of the newline so the output still ends in one.
	out := buf.String()
	const sgrReset = "\x1b[0m"
	if trimmed, ok := strings.CutSuffix(out, "\n"+sgrReset); ok {
		out = trimmed + sgrReset + "\n"
	}

	_, err = io.WriteString(w, out)
	return err
}

// StyleExists reports whether chroma knows a style by this name.
func StyleExists(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

// StyleNames lists the registered chroma styles.
func StyleNames() []string {
	return styles.Names()
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
