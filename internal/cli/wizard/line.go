package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LinePrompter asks questions on a plain console: one prompt line per
// question and one blocking line read per answer.
type LinePrompter struct {
	r         *bufio.Reader
	w         io.Writer
	lastGroup string
}

// NewLinePrompter creates a LinePrompter reading answers from r and
// writing prompts to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// Ask prints q and reads one line. End of input counts as an empty
// answer, so the default applies.
func (p *LinePrompter) Ask(q *Question) (string, error) {
	if q.Group != "" && q.Group != p.lastGroup {
		if _, err := fmt.Fprintf(p.w, "\n%s\n", q.Group); err != nil {
			return "", err
		}
		p.lastGroup = q.Group
	}
	if _, err := fmt.Fprintf(p.w, "  %s %s: ", q.Title, formatDefault(q)); err != nil {
		return "", err
	}

	line, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	if errors.Is(err, io.EOF) {
		_, _ = fmt.Fprintln(p.w)
	}
	return strings.TrimSpace(line), nil
}
