package context

import "strings"

// Capability is an enabled command surfaced in a built prompt, per
// spec §4.13.
type Capability string

const (
	CapEdit        Capability = "edit"
	CapAppend      Capability = "append"
	CapMove        Capability = "move"
	CapDelete      Capability = "delete"
	CapLink        Capability = "link"
	CapSnapshot    Capability = "snapshot"
	CapTransaction Capability = "transaction"
)

var capabilitySyntax = map[Capability]string{
	CapEdit:        "EDIT <target> <path> = <value>",
	CapAppend:      "APPEND <content-type> TO <parent> [AT <index>] [key=value ...] :: \"<content>\"",
	CapMove:        "MOVE <target> TO <parent> [AT <index>]",
	CapDelete:      "DELETE <target> [cascade|preserve_children]",
	CapLink:        "LINK <source> <kind> <target>",
	CapSnapshot:    "SNAPSHOT create|restore|delete <name>",
	CapTransaction: "TX_BEGIN / TX_COMMIT / TX_ROLLBACK",
}

// PromptBuilder composes a system prompt from a fixed operating-manual
// header, a capability block, an optional short-id note, and custom
// rules, per spec §4.13. Capability gating is strict: a disabled
// command never appears in the syntax reference section.
type PromptBuilder struct {
	Header       string
	Capabilities map[Capability]bool
	Projection   *Projection
	CustomRules  []string
}

// NewPromptBuilder starts from the given operating-manual header with
// no capabilities enabled.
func NewPromptBuilder(header string) *PromptBuilder {
	return &PromptBuilder{Header: header, Capabilities: map[Capability]bool{}}
}

// Enable turns on a capability tag.
func (b *PromptBuilder) Enable(c Capability) {
	if b.Capabilities == nil {
		b.Capabilities = map[Capability]bool{}
	}
	b.Capabilities[c] = true
}

// Build assembles the final prompt string.
func (b *PromptBuilder) Build() string {
	var out strings.Builder
	out.WriteString(b.Header)
	out.WriteString("\n\n")

	out.WriteString("## Available commands\n")
	for _, c := range []Capability{CapEdit, CapAppend, CapMove, CapDelete, CapLink, CapSnapshot, CapTransaction} {
		if b.Capabilities[c] {
			out.WriteString("- " + capabilitySyntax[c] + "\n")
		}
	}

	if b.Projection != nil {
		out.WriteString("\nBlock ids in this context are shown as short aliases (#N). ")
		out.WriteString("Use the same alias form when referencing blocks; it will be expanded automatically.\n")
	}

	if len(b.CustomRules) > 0 {
		out.WriteString("\n## Rules\n")
		for _, rule := range b.CustomRules {
			out.WriteString("- " + rule + "\n")
		}
	}

	return out.String()
}
