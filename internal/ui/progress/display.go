package progress

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/ngm/internal/dispatch"
	"github.com/raphi011/ngm/internal/ui/styles"
)

// DefaultInterval is the redraw tick of Display.
const DefaultInterval = 100 * time.Millisecond

// Frames are the glyphs a pending operation cycles through.
var Frames = spinner.MiniDot.Frames

// Options tunes Display.
type Options struct {
	// Interval between redraws; <= 0 uses DefaultInterval.
	Interval time.Duration
	// Animate forces animation on writers that are not terminals.
	Animate bool
	// Width is the column count labels are truncated to; <= 0 uses the
	// terminal width of the writer, or no limit when it has none.
	Width int
}

// glyphColumns is the room " <glyph> " takes in front of a label.
const glyphColumns = 4

// Display prints one line per operation and keeps the leading glyph of each
// line current until every operation settled: a spinner frame while pending,
// a check mark on success, a cross on failure. It then erases the lines and
// returns the outcomes in the order of ops.
//
// Only the glyph column is redrawn; the cursor returns to the first line
// before each pass. On a writer that is not a terminal nothing is printed.
// Redrawing never delays the results: when ctx is cancelled the lines are
// erased and Display waits for the operations directly.
func Display[R any](ctx context.Context, w io.Writer, ops []*dispatch.Operation[R], opts Options) []dispatch.Outcome[R] {
	if len(ops) == 0 || !(opts.Animate || IsTerminal(w)) {
		return dispatch.Wait(ops)
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	allDone := make(chan struct{})
	go func() {
		for _, op := range ops {
			<-op.Done()
		}
		close(allDone)
	}()

	width := opts.Width
	if width <= 0 {
		width = terminalWidth(w)
	}

	d := &display[R]{w: w, ops: ops, width: width}
	d.start()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-allDone:
			break loop
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			d.frame++
			d.redraw()
		}
	}

	d.clear()
	return dispatch.Wait(ops)
}

type display[R any] struct {
	w     io.Writer
	ops   []*dispatch.Operation[R]
	frame int
	width int
}

// label fits op's label on one line. A wrapped line would break the
// cursor arithmetic of redraw and clear.
func (d *display[R]) label(op *dispatch.Operation[R]) string {
	if d.width <= 0 {
		return op.Label()
	}
	return ansi.Truncate(op.Label(), max(d.width-glyphColumns, 1), "…")
}

// glyph returns the current glyph of op.
func (d *display[R]) glyph(op *dispatch.Operation[R]) string {
	if !op.Settled() {
		return styles.PrimaryStyle.Render(Frames[d.frame%len(Frames)])
	}
	if op.Outcome().OK() {
		return styles.SuccessSymbol()
	}
	return styles.FailureSymbol()
}

// start prints the initial lines, leaving the cursor below the last one.
func (d *display[R]) start() {
	var b strings.Builder
	for _, op := range d.ops {
		fmt.Fprintf(&b, " %s %s\n", d.glyph(op), d.label(op))
	}
	io.WriteString(d.w, b.String())
}

// redraw rewrites the glyph column of every line.
func (d *display[R]) redraw() {
	var b strings.Builder
	b.WriteString(ansi.CursorUp(len(d.ops)))
	for _, op := range d.ops {
		b.WriteString("\r ")
		b.WriteString(d.glyph(op))
		b.WriteString("\n")
	}
	io.WriteString(d.w, b.String())
}

// clear erases all lines and leaves the cursor where the display started.
func (d *display[R]) clear() {
	io.WriteString(d.w, ansi.CursorUp(len(d.ops))+"\r"+ansi.EraseScreenBelow)
}
