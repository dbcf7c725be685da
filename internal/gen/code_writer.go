package gen

import (
	"fmt"
	"strings"
)

const indentUnit = "  "

// codeWriter accumulates C++ source line by line.
type codeWriter struct {
	sb          strings.Builder
	indentLevel int
}

// emit writes one indented line.
func (w *codeWriter) emit(format string, args ...any) {
	w.sb.WriteString(strings.Repeat(indentUnit, w.indentLevel))
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

// raw writes one line without indentation.
func (w *codeWriter) raw(line string) {
	w.sb.WriteString(line)
	w.sb.WriteByte('\n')
}

// lines writes each line at the current indentation, skipping empty ones.
func (w *codeWriter) lines(lines ...string) {
	for _, l := range lines {
		if l != "" {
			w.emit("%s", l)
		}
	}
}

func (w *codeWriter) blank() {
	w.sb.WriteByte('\n')
}

func (w *codeWriter) indent() {
	w.indentLevel++
}

func (w *codeWriter) dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

func (w *codeWriter) String() string {
	return w.sb.String()
}
