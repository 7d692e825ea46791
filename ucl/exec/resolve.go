// Package exec lowers parsed UCL commands (package ucl) into engine
// operations, per spec §4.10: resolving block references, evaluating
// condition trees against live block state, and dispatching to the
// right engine.Command constructor.
package exec

import (
	"strings"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// AliasResolver expands a short numeric alias (assigned by the
// context package's ID projection, spec §4.13) back to a full id.
// Executors that are not running inside a projected context window
// pass a resolver that always returns not-found.
type AliasResolver interface {
	Expand(alias string) (types.Id, bool)
}

type noAliases struct{}

func (noAliases) Expand(string) (types.Id, bool) { return "", false }

// NoAliases is an AliasResolver with no aliases registered.
var NoAliases AliasResolver = noAliases{}

// ResolveID accepts a full block id literal, a "@ref" short alias, or
// a block label, and returns the full id, per spec §4.10.
func ResolveID(doc *ucm.Document, aliases AliasResolver, token string) (types.Id, error) {
	if token == "" {
		return "", types.NewError(types.ErrInvalidPath, "empty block reference")
	}
	ref := strings.TrimPrefix(token, "@")
	if ref != token {
		if id, ok := aliases.Expand(ref); ok {
			return id, nil
		}
		// fall through: "@label" also resolves through the label index
		if id, ok := doc.FindByLabel(ref); ok {
			return id, nil
		}
		return "", types.NewError(types.ErrPathNotFound, "no block found for reference %q", token)
	}

	if _, ok := doc.GetBlock(types.Id(token)); ok {
		return types.Id(token), nil
	}
	if id, ok := doc.FindByLabel(token); ok {
		return id, nil
	}
	return "", types.NewError(types.ErrPathNotFound, "no block found for %q", token)
}
