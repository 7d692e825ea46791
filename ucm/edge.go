package ucm

import (
	"fmt"
	"strings"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

// EdgeKind is a directed, typed relation between two blocks, distinct
// from parent-child structure. The enumerated kinds come straight from
// spec §3; "custom(name)" is a pass-through kind for relations the
// core has no opinion about.
type EdgeKind string

const (
	References      EdgeKind = "references"
	DerivedFrom     EdgeKind = "derived_from"
	Supersedes      EdgeKind = "supersedes"
	TransformedFrom EdgeKind = "transformed_from"
	CitedBy         EdgeKind = "cited_by"
	LinksTo         EdgeKind = "links_to"
	Supports        EdgeKind = "supports"
	Contradicts     EdgeKind = "contradicts"
	Elaborates      EdgeKind = "elaborates"
	Summarizes      EdgeKind = "summarizes"
	VersionOf       EdgeKind = "version_of"
	AlternativeOf   EdgeKind = "alternative_of"
	TranslationOf   EdgeKind = "translation_of"
)

// CustomKind builds a pass-through "custom(name)" edge kind.
func CustomKind(name string) EdgeKind {
	return EdgeKind(fmt.Sprintf("custom(%s)", name))
}

// CustomName returns the name embedded in a CustomKind, or "" if k is
// not a custom kind.
func (k EdgeKind) CustomName() string {
	s := string(k)
	if strings.HasPrefix(s, "custom(") && strings.HasSuffix(s, ")") {
		return s[len("custom(") : len(s)-1]
	}
	return ""
}

// symmetricKinds are edge kinds whose presence implies the same kind
// should be queryable in the reverse direction (spec §4.3: "a symmetric
// kind (e.g. contradicts)"). pairedInverse maps a kind to its naturally
// paired inverse (e.g. derived_from/supersedes). Only the forward edge
// is ever stored — both maps exist purely to answer queries, per the
// design note in spec §9 ("implementations may compute inverses on
// query... but must not diverge between the two").
var symmetricKinds = map[EdgeKind]bool{
	Contradicts: true,
}

var pairedInverse = map[EdgeKind]EdgeKind{
	DerivedFrom: Supersedes,
	Supersedes:  DerivedFrom,
}

// InverseKinds returns the edge kinds that should be considered when
// answering an "incoming" query for kind k, beyond k itself: its
// symmetric self (if any) and its paired inverse (if any). The forward
// edge stored in the index is always the ground truth; this function
// never causes a second edge to be written.
func InverseKinds(k EdgeKind) []EdgeKind {
	var out []EdgeKind
	if symmetricKinds[k] {
		out = append(out, k)
	}
	if inv, ok := pairedInverse[k]; ok {
		out = append(out, inv)
	}
	return out
}

// Edge is a directed, typed relation from one block to another.
type Edge struct {
	Kind        EdgeKind               `json:"type"`
	Target      types.Id               `json:"target"`
	Confidence  *float64               `json:"confidence,omitempty"`
	Description string                 `json:"description,omitempty"`
	Custom      map[string]interface{} `json:"metadata,omitempty"`
}

// Validate checks confidence is in [0,1] when present.
func (e Edge) Validate() error {
	if e.Confidence != nil && (*e.Confidence < 0 || *e.Confidence > 1) {
		return fmt.Errorf("edge confidence %f out of range [0,1]", *e.Confidence)
	}
	return nil
}

// Clone returns a deep copy of the edge.
func (e Edge) Clone() Edge {
	out := e
	if e.Confidence != nil {
		v := *e.Confidence
		out.Confidence = &v
	}
	if e.Custom != nil {
		out.Custom = make(map[string]interface{}, len(e.Custom))
		for k, v := range e.Custom {
			out.Custom[k] = v
		}
	}
	return out
}
