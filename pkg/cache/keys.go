package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a computed layout.
	LayoutKey(settingsHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies rendered output for a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the per-call inputs of a layout besides the settings.
type LayoutKeyOpts struct {
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}

// ArtifactKeyOpts are the output options that change rendered bytes.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
	Width     int     `json:"width,omitempty"`
	EmbedFont bool    `json:"embed_font,omitempty"`
	// Background is a hex color, empty for transparent.
	Background string `json:"background,omitempty"`
	// Version invalidates entries written by other builds.
	Version string `json:"version,omitempty"`
}

// DefaultKeyer hashes its inputs into "layout:<sha256>" and
// "artifact:<format>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(settingsHash string, opts LayoutKeyOpts) string {
	return digest("layout", settingsHash, opts)
}

// ArtifactKey implements Keyer. The format stays readable in the key so
// entries can be inspected per format.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return digest("artifact:"+opts.Format, layoutHash, opts)
}

// ScopedKeyer prefixes every key of the embedded Keyer. The badge server
// uses it with its --namespace so several deployments can share one Redis
// database:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "starbar:prod:")
type ScopedKeyer struct {
	Keyer
	Prefix string
}

// NewScopedKeyer wraps inner, falling back to a DefaultKeyer when it is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Keyer: inner, Prefix: prefix}
}

func (k ScopedKeyer) LayoutKey(settingsHash string, opts LayoutKeyOpts) string {
	return k.Prefix + k.Keyer.LayoutKey(settingsHash, opts)
}

func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Keyer.ArtifactKey(layoutHash, opts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Settings hash this way, so two
// values that encode identically share cache entries.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return Hash(data), nil
}

// digest joins prefix with the hash of parts. Parts are key structs and
// strings, which always encode.
func digest(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

var (
	_ Keyer = DefaultKeyer{}
	_ Keyer = ScopedKeyer{}
)
