// Package codec implements the external parse/render boundary from
// spec §6: a codec owns heading-level-to-role mapping, list
// flattening, and fenced-code language extraction, and must round
// trip (render is a right-inverse of parse on the codec's supported
// subset).
//
// The named-format registry is grounded on the teacher's
// formats.Register/Get/List, generalized from a title+content+
// metadata tuple to a full Document tree.
package codec

import (
	"fmt"
	"strings"

	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Codec parses external source text into a Document and renders a
// Document back to that format's source text.
type Codec interface {
	Name() string
	Parse(source string) (*ucm.Document, error)
	Render(doc *ucm.Document) (string, error)
}

var registry = make(map[string]Codec)

// Register adds c to the registry under its own Name(). It panics on
// a duplicate name, matching the teacher's init-time registration
// pattern where a collision is a programming error, not runtime data.
func Register(c Codec) {
	name := strings.ToLower(c.Name())
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("codec %q already registered", name))
	}
	registry[name] = c
}

// Get returns the codec registered under name.
func Get(name string) (Codec, error) {
	c, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", name)
	}
	return c, nil
}

// List returns every registered codec name.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func init() {
	Register(markdownCodec{})
	Register(plaintextCodec{})
}
