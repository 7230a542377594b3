package logging

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

// Reporter writes tagged progress lines. A quiet Reporter writes nothing.
// The zero value and a nil *Reporter are both quiet.
type Reporter struct {
	out   io.Writer
	quiet bool
	color bool
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer, quiet bool, withColors bool) *Reporter {
	return &Reporter{out: out, quiet: quiet, color: withColors}
}

// Printf writes one tagged line; format should end in a newline.
func (r *Reporter) Printf(format string, args ...any) {
	if r == nil || r.quiet || r.out == nil {
		return
	}
	_, _ = fmt.Fprintf(r.out, "%s %s", tag(r.color, color.FgCyan), fmt.Sprintf(format, args...))
}

// Writer returns a writer for untagged progress output, or io.Discard when quiet.
func (r *Reporter) Writer() io.Writer {
	if r == nil || r.quiet || r.out == nil {
		return io.Discard
	}
	return r.out
}

// PrintError writes err to w as a tagged error line.
func PrintError(w io.Writer, err error, withColors bool) {
	_, _ = fmt.Fprintf(w, messages.ErrorLineFmt, tag(withColors, color.FgRed), err)
}

func tag(withColors bool, attr color.Attribute) string {
	if !withColors {
		return messages.Tag
	}
	c := color.New(attr, color.Bold)
	c.EnableColor()
	return c.Sprint(messages.Tag)
}
