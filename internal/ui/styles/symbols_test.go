package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSetNerdfont(t *testing.T) {
	SetNerdfont(false)
	if NerdfontEnabled() {
		t.Error("expected nerdfont to be disabled")
	}
	if CurrentSymbols().Success != "✔" {
		t.Errorf("expected default success symbol, got %q", CurrentSymbols().Success)
	}

	SetNerdfont(true)
	if !NerdfontEnabled() {
		t.Error("expected nerdfont to be enabled")
	}
	if CurrentSymbols().Success != "\uf00c" {
		t.Errorf("expected nerdfont success symbol, got %q", CurrentSymbols().Success)
	}

	SetNerdfont(false)
}

func TestOutcomeSymbols(t *testing.T) {
	SetNerdfont(false)

	tests := []struct {
		name string
		fn   func() string
		want string
	}{
		{"SuccessSymbol", SuccessSymbol, "✔"},
		{"FailureSymbol", FailureSymbol, "✗"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ansi.Strip(tt.fn()); got != tt.want {
				t.Errorf("%s() = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestBranchName(t *testing.T) {
	SetNerdfont(false)
	if got := BranchName("main"); got != "main" {
		t.Errorf("BranchName() = %q, want %q", got, "main")
	}

	SetNerdfont(true)
	defer SetNerdfont(false)
	if got := BranchName("main"); got != "\ue725 main" {
		t.Errorf("BranchName() = %q, want nerdfont prefix", got)
	}
}

func TestLink(t *testing.T) {
	if got := Link("", "plain"); got != "plain" {
		t.Errorf("Link without url = %q, want %q", got, "plain")
	}

	got := Link("https://github.com/acme/api", "acme/api")
	if !strings.Contains(got, "\x1b]8;;https://github.com/acme/api") {
		t.Errorf("expected OSC 8 hyperlink, got %q", got)
	}
	if ansi.Strip(got) != "acme/api" {
		t.Errorf("expected visible text acme/api, got %q", ansi.Strip(got))
	}
}
