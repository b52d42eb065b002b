package progress

import (
	"fmt"
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// stopTimeout bounds how long stop waits for the final render.
const stopTimeout = 500 * time.Millisecond

// inline runs a one-line bubbletea program on a writer. It reads no input
// and installs no signal handler, so ctrl+c still reaches the CLI context.
type inline struct {
	out     io.Writer
	program *tea.Program
	done    chan struct{}
}

func startInline(out io.Writer, model tea.Model) *inline {
	in := &inline{
		out: out,
		program: tea.NewProgram(model,
			tea.WithoutSignalHandler(),
			tea.WithInput(nil),
			tea.WithOutput(out),
			tea.WithColorProfile(colorProfile(out)),
		),
		done: make(chan struct{}),
	}

	go func() {
		_, _ = in.program.Run()
		close(in.done)
	}()
	return in
}

// send delivers msg to the model. It returns immediately once the program
// has exited.
func (in *inline) send(msg tea.Msg) {
	in.program.Send(msg)
}

// stop quits the program and erases its line.
func (in *inline) stop() {
	in.program.Quit()

	select {
	case <-in.done:
	case <-time.After(stopTimeout):
	}

	fmt.Fprint(in.out, "\r"+ansi.EraseEntireLine)
}
