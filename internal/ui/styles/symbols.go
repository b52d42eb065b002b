package styles

import (
	"github.com/charmbracelet/x/ansi"
)

// Symbols holds the icon/symbol set based on nerdfont configuration
type Symbols struct {
	Success string // settled operation succeeded
	Failure string // settled operation failed
	Branch  string // prefix of branch names
	Ahead   string
	Behind  string
}

// Default symbols
var defaultSymbols = Symbols{
	Success: "✔",
	Failure: "✗",
	Branch:  "",
	Ahead:   "↑",
	Behind:  "↓",
}

// Nerd font symbols
var nerdfontSymbols = Symbols{
	Success: "\uf00c", // nf-fa-check
	Failure: "\uf00d", // nf-fa-times
	Branch:  "\ue725", // nf-dev-git_branch
	Ahead:   "\uf062", // nf-fa-arrow_up
	Behind:  "\uf063", // nf-fa-arrow_down
}

// useNerdfont tracks whether nerd font symbols are enabled
var useNerdfont bool

// currentSymbols holds the active symbol set
var currentSymbols = defaultSymbols

// SetNerdfont enables or disables nerd font symbols
func SetNerdfont(enabled bool) {
	useNerdfont = enabled
	if enabled {
		currentSymbols = nerdfontSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// NerdfontEnabled returns whether nerd font symbols are enabled
func NerdfontEnabled() bool {
	return useNerdfont
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// SuccessSymbol returns the green glyph for a succeeded operation
func SuccessSymbol() string {
	return SuccessStyle.Render(currentSymbols.Success)
}

// FailureSymbol returns the red glyph for a failed operation
func FailureSymbol() string {
	return ErrorStyle.Render(currentSymbols.Failure)
}

// BranchName prefixes name with the branch symbol, if the symbol set has one
func BranchName(name string) string {
	if currentSymbols.Branch == "" {
		return name
	}
	return currentSymbols.Branch + " " + name
}

// Link wraps text in an OSC 8 hyperlink to url.
// Returns text unchanged if url is empty.
func Link(url, text string) string {
	if url == "" {
		return text
	}
	styled := PrimaryStyle.Underline(true).Render(text)
	return ansi.SetHyperlink(url) + styled + ansi.ResetHyperlink()
}
