package context

import (
	"strings"
	"testing"
)

func TestBuildOnlyListsEnabledCapabilities(t *testing.T) {
	b := NewPromptBuilder("You are an editing agent.")
	b.Enable(CapEdit)
	b.Enable(CapLink)

	out := b.Build()
	if !strings.Contains(out, capabilitySyntax[CapEdit]) {
		t.Error("enabled capability EDIT missing from prompt")
	}
	if !strings.Contains(out, capabilitySyntax[CapLink]) {
		t.Error("enabled capability LINK missing from prompt")
	}
	if strings.Contains(out, capabilitySyntax[CapDelete]) {
		t.Error("disabled capability DELETE leaked into prompt")
	}
}

func TestBuildWithProjectionAddsShortIDNote(t *testing.T) {
	b := NewPromptBuilder("header")
	out := b.Build()
	if strings.Contains(out, "short aliases") {
		t.Error("short-id note present without a projection configured")
	}

	b.Projection = &Projection{}
	out = b.Build()
	if !strings.Contains(out, "short aliases") {
		t.Error("short-id note missing when projection is configured")
	}
}

func TestBuildIncludesCustomRules(t *testing.T) {
	b := NewPromptBuilder("header")
	b.CustomRules = []string{"never delete the title block"}
	out := b.Build()
	if !strings.Contains(out, "never delete the title block") {
		t.Error("custom rule missing from built prompt")
	}
}
