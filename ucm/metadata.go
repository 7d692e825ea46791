package ucm

import "time"

// SemanticRole is a human-readable category on a block (heading
// levels, paragraph, note, citation, etc). It is a free-form string
// rather than a closed enum because callers (codecs, agents) invent
// roles the core does not need to know about in advance.
type SemanticRole string

const (
	RoleHeading1  SemanticRole = "heading1"
	RoleHeading2  SemanticRole = "heading2"
	RoleHeading3  SemanticRole = "heading3"
	RoleParagraph SemanticRole = "paragraph"
	RoleNote      SemanticRole = "note"
	RoleCitation  SemanticRole = "citation"
	RoleTitle     SemanticRole = "title"
)

// Metadata carries everything about a Block that is not its content
// payload or its structural position.
type Metadata struct {
	Label        string                 `json:"label,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	SemanticRole SemanticRole           `json:"semantic_role,omitempty"`
	Summary      string                 `json:"summary,omitempty"`
	Custom       map[string]interface{} `json:"custom,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	ModifiedAt   time.Time              `json:"modified_at"`
	TokenEstimate int                   `json:"token_estimate,omitempty"`
	ContentHash  string                 `json:"content_hash,omitempty"`
}

// HasTag reports whether the metadata's tag set contains tag.
func (m Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, used whenever a block is duplicated into
// a transaction buffer or a snapshot.
func (m Metadata) Clone() Metadata {
	out := m
	if m.Tags != nil {
		out.Tags = append([]string(nil), m.Tags...)
	}
	if m.Custom != nil {
		out.Custom = make(map[string]interface{}, len(m.Custom))
		for k, v := range m.Custom {
			out.Custom[k] = v
		}
	}
	return out
}
