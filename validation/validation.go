// Package validation implements the validation pipeline from spec
// §4.5: an ordered sequence of structural, referential, resource, and
// pluggable semantic checks over a ucm.Document.
//
// The check style — an ordered list of small functions each appending
// to a shared issue list, plus reserved-name/duplicate/format checks —
// is grounded in the teacher's internal/validation package, repurposed
// here from dimension-configuration validation to block/label/role
// validation.
package validation

import (
	"fmt"
	"regexp"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Severity classifies an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single finding from the validation pipeline.
type Issue struct {
	Severity Severity
	Code     types.ErrorCode
	Message  string
	BlockID  types.Id
}

// Result is the outcome of running the pipeline.
type Result struct {
	Issues []Issue
}

// Valid reports true iff no error-severity issues are present;
// warnings/info do not affect validity, per spec §4.5.
func (r Result) Valid() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return false
		}
	}
	return true
}

func (r *Result) add(sev Severity, code types.ErrorCode, blockID types.Id, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		BlockID:  blockID,
	})
}

// SemanticRule is a pluggable check run during the semantic phase.
type SemanticRule func(d *ucm.Document, r *Result)

var labelFormat = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// DefaultSemanticRules returns the built-in semantic checks described
// in SPEC_FULL.md: a document should have a title-ish role, code
// blocks should declare a language, and labels must match a safe
// format (mirroring the teacher's IsValidPrefix/reserved-name checks,
// repurposed from dimension prefixes to block labels).
func DefaultSemanticRules() []SemanticRule {
	return []SemanticRule{
		ruleHasTitleRole,
		ruleCodeBlocksDeclareLanguage,
		ruleLabelFormat,
	}
}

func ruleHasTitleRole(d *ucm.Document, r *Result) {
	if len(d.FindByRole(ucm.RoleTitle)) == 0 && len(d.FindByRole(ucm.RoleHeading1)) == 0 {
		r.add(SeverityInfo, "", "", "document has no title or heading1 block")
	}
}

func ruleCodeBlocksDeclareLanguage(d *ucm.Document, r *Result) {
	for id, b := range d.Blocks {
		if c, ok := b.Content.(content.CodeContent); ok {
			if c.Language == "" {
				r.add(SeverityWarning, types.ErrInvalidContent, id, "code block %s does not declare a language", id)
			}
		}
	}
}

func ruleLabelFormat(d *ucm.Document, r *Result) {
	for id, b := range d.Blocks {
		if b.Metadata.Label != "" && !labelFormat.MatchString(b.Metadata.Label) {
			r.add(SeverityError, types.ErrInvalidContent, id, "label %q does not match required format", b.Metadata.Label)
		}
	}
}

// Pipeline runs the ordered structural, referential, resource, and
// semantic checks over a document.
type Pipeline struct {
	SemanticRules []SemanticRule
}

// NewPipeline builds a pipeline with the default semantic rules.
func NewPipeline() *Pipeline {
	return &Pipeline{SemanticRules: DefaultSemanticRules()}
}

// Validate runs every check in order and returns the accumulated
// Result. Structural and referential checks run first since resource
// and semantic checks assume a structurally sound document.
func (p *Pipeline) Validate(d *ucm.Document) Result {
	var r Result
	checkStructural(d, &r)
	checkReferential(d, &r)
	checkResource(d, &r)
	for _, rule := range p.SemanticRules {
		rule(d, &r)
	}
	return r
}
