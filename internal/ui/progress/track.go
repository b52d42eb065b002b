package progress

import (
	"context"
	"fmt"
	"io"

	"github.com/raphi011/ngm/internal/ui/styles"
)

// Result markers printed by Track.
const (
	DoneMarker  = "[ DONE ]"
	ErrorMarker = "[ ERROR ]"
)

// Track runs fn while showing message with an inline spinner, then replaces
// the spinner with a done or error marker. fn's result and error are passed
// through unchanged. On a writer that is not a terminal only the final line
// is printed.
func Track[R any](ctx context.Context, w io.Writer, message string, fn func(context.Context) (R, error)) (R, error) {
	var sp *inline
	if IsTerminal(w) {
		sp = startInline(w, newSpinnerModel(message))
	}

	v, err := fn(ctx)

	if sp != nil {
		sp.stop()
	}

	marker := styles.SuccessStyle.Render(DoneMarker)
	if err != nil {
		marker = styles.ErrorStyle.Render(ErrorMarker)
	}
	fmt.Fprintf(w, "%s %s\n", message, marker)

	return v, err
}
