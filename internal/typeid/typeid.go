package typeid

import (
	"fmt"
	"strings"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixElement = "elem"
	PrefixScene   = "scene"
	PrefixSession = "sess"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewElementID() string { return New(PrefixElement) }
func NewSceneID() string   { return New(PrefixScene) }
func NewSessionID() string { return New(PrefixSession) }

// ForKind returns a fresh id prefixed with an element kind, e.g.
// "plane_mirror_01h455vb4pex5vsknk084sn02q". Kinds that are not valid
// prefixes fall back to PrefixElement.
func ForKind(kind string) string {
	prefix := strings.ToLower(kind)
	id, err := typeid.Generate(prefix)
	if err != nil {
		return NewElementID()
	}
	return id.String()
}

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
