package progress

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/ngm/internal/ui/styles"
)

// spinnerModel renders "<message> <frame>" for Track.
type spinnerModel struct {
	spinner spinner.Model
	message string
}

func newSpinnerModel(message string) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.PrimaryStyle
	return spinnerModel{spinner: sp, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) text() string {
	return m.message + " " + m.spinner.View()
}

func (m spinnerModel) View() tea.View {
	return tea.NewView(m.text())
}
