package progress

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/ngm/internal/dispatch"
	"github.com/raphi011/ngm/internal/git"
	"github.com/raphi011/ngm/internal/repo"
)

func repos(paths ...string) []repo.Repository {
	out := make([]repo.Repository, len(paths))
	for i, p := range paths {
		out[i] = repo.New(repo.Partial{Path: p, Branch: "main"})
	}
	return out
}

// gatedRunner blocks each directory until its gate is closed.
func gatedRunner(gates map[string]chan struct{}, fail map[string]bool) git.Runner {
	return git.RunnerFunc(func(ctx context.Context, dir string, _ ...string) (string, error) {
		select {
		case <-gates[dir]:
		case <-ctx.Done():
			return "", ctx.Err()
		}
		if fail[dir] {
			return "rejected", errors.New("exit status 1")
		}
		return "ok", nil
	})
}

func TestDisplay_NotTerminalPrintsNothing(t *testing.T) {
	t.Parallel()

	gates := map[string]chan struct{}{"/ws/a": make(chan struct{}), "/ws/b": make(chan struct{})}
	close(gates["/ws/a"])
	close(gates["/ws/b"])

	ops := dispatch.Dispatch(context.Background(), gatedRunner(gates, map[string]bool{"/ws/b": true}),
		"/ws", repos("/ws/a", "/ws/b"), []string{"pull"}, dispatch.Output)

	var buf bytes.Buffer
	outcomes := Display(context.Background(), &buf, ops, Options{})

	assert.Empty(t, buf.String())
	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].OK())
	assert.False(t, outcomes[1].OK())
}

func TestDisplay_AnimatesAndClears(t *testing.T) {
	t.Parallel()

	gates := map[string]chan struct{}{
		"/ws/a": make(chan struct{}),
		"/ws/b": make(chan struct{}),
	}
	ops := dispatch.Dispatch(context.Background(), gatedRunner(gates, map[string]bool{"/ws/b": true}),
		"/ws", repos("/ws/a", "/ws/b"), []string{"pull"}, dispatch.Output)

	// a settles first, b a few ticks later.
	go func() {
		close(gates["/ws/a"])
		time.Sleep(30 * time.Millisecond)
		close(gates["/ws/b"])
	}()

	var buf bytes.Buffer
	outcomes := Display(context.Background(), &buf, ops, Options{Interval: 5 * time.Millisecond, Animate: true})

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].OK())
	assert.False(t, outcomes[1].OK())

	out := buf.String()

	// Initial lines carry the labels once; redraws only touch the glyph column.
	plain := ansi.Strip(out)
	assert.Equal(t, 1, strings.Count(plain, " a\n"), "label a printed once:\n%q", plain)
	assert.Equal(t, 1, strings.Count(plain, " b\n"), "label b printed once:\n%q", plain)

	assert.Contains(t, out, ansi.CursorUp(2))
	assert.Contains(t, plain, "✔")

	// The region is erased at the end.
	assert.True(t, strings.HasSuffix(out, ansi.CursorUp(2)+"\r"+ansi.EraseScreenBelow), "got tail %q", out[max(0, len(out)-20):])
}

func TestDisplay_TruncatesLongLabels(t *testing.T) {
	t.Parallel()

	long := "/ws/services/payments/reconciliation-worker"
	gates := map[string]chan struct{}{long: make(chan struct{}), "/ws/a": make(chan struct{})}
	ops := dispatch.Dispatch(context.Background(), gatedRunner(gates, nil),
		"/ws", repos(long, "/ws/a"), []string{"pull"}, dispatch.Output)

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(gates[long])
		close(gates["/ws/a"])
	}()

	var buf bytes.Buffer
	outcomes := Display(context.Background(), &buf, ops, Options{Interval: 5 * time.Millisecond, Animate: true, Width: 20})
	require.Len(t, outcomes, 2)

	plain := ansi.Strip(buf.String())
	assert.Contains(t, plain, "services/paymen…\n")
	assert.NotContains(t, plain, "reconciliation-worker")
	assert.Contains(t, plain, " a\n", "short labels are kept")
	for _, line := range strings.Split(plain, "\n") {
		line = line[strings.LastIndex(line, "\r")+1:]
		assert.LessOrEqual(t, ansi.StringWidth(line), 20, "line %q wraps", line)
	}
}

func TestDisplay_CancelledContextStillReturnsOutcomes(t *testing.T) {
	t.Parallel()

	gates := map[string]chan struct{}{"/ws/a": make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())

	ops := dispatch.Dispatch(ctx, gatedRunner(gates, nil), "/ws", repos("/ws/a"), []string{"pull"}, dispatch.Output)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	var buf bytes.Buffer
	outcomes := Display(ctx, &buf, ops, Options{Interval: 5 * time.Millisecond, Animate: true})

	require.Len(t, outcomes, 1)
	require.False(t, outcomes[0].OK())
	assert.ErrorIs(t, outcomes[0].Err, context.Canceled)
	assert.True(t, strings.HasSuffix(buf.String(), ansi.EraseScreenBelow))
}

func TestDisplay_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	outcomes := Display[string](context.Background(), &buf, nil, Options{Animate: true})
	assert.Empty(t, outcomes)
	assert.Empty(t, buf.String())
}

func TestTrack(t *testing.T) {
	t.Parallel()

	t.Run("done", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		v, err := Track(context.Background(), &buf, "Indexing repositories", func(context.Context) (int, error) {
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, "Indexing repositories [ DONE ]\n", ansi.Strip(buf.String()))
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var buf bytes.Buffer
		_, err := Track(context.Background(), &buf, "Saving", func(context.Context) (struct{}, error) {
			return struct{}{}, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "Saving [ ERROR ]\n", ansi.Strip(buf.String()))
	})
}
