package progress

import (
	"fmt"
	"io"
	"sync"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/ngm/internal/ui/styles"
)

// indexedMsg reports how many repositories have been indexed.
type indexedMsg struct {
	done, total int
}

// barModel renders "████░░░░  45% indexing 9/20".
type barModel struct {
	bar         progress.Model
	done, total int
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(indexedMsg); ok {
		m.done, m.total = msg.done, msg.total
	}
	return m, nil
}

func (m barModel) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(float64(m.done)/float64(m.total), 1)
}

func (m barModel) text() string {
	p := m.percent()
	return fmt.Sprintf("%s %3d%% indexing %d/%d", m.bar.ViewAs(p), int(p*100), m.done, m.total)
}

func (m barModel) View() tea.View {
	return tea.NewView(m.text())
}

// ProgressBar shows how many of a known number of repositories have been
// indexed. Indexed may be called from several goroutines.
type ProgressBar struct {
	out   io.Writer
	total int

	mu   sync.Mutex
	run  *inline
	done int
}

// NewProgressBar creates a progress bar over total repositories.
func NewProgressBar(out io.Writer, total int) *ProgressBar {
	return &ProgressBar{out: out, total: total}
}

// Start draws the bar. Starting twice is a no-op.
func (p *ProgressBar) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.run != nil {
		return
	}

	bar := progress.New(
		progress.WithWidth(40),
		progress.WithoutPercentage(),
		progress.WithColors(styles.Primary, styles.Accent),
	)
	p.run = startInline(p.out, barModel{bar: bar, done: p.done, total: p.total})
}

// Indexed is an IndexOptions.OnIndexed callback.
func (p *ProgressBar) Indexed(done, total int) {
	p.mu.Lock()
	p.done, p.total = done, total
	run := p.run
	p.mu.Unlock()

	if run != nil {
		run.send(indexedMsg{done: done, total: total})
	}
}

// Stop erases the bar. A bar that was never started is left alone.
func (p *ProgressBar) Stop() {
	p.mu.Lock()
	run := p.run
	p.run = nil
	p.mu.Unlock()

	if run != nil {
		run.stop()
	}
}
