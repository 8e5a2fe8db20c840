// Package fonts provides the fonts used for the trailing text label and a
// text measurer backed by them.
//
// The Go font family from golang.org/x/image is compiled into the binary,
// so PNG output and text measurement work without system fonts. SVG output
// references the family by name and can optionally embed it.
package fonts

import (
	"encoding/base64"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/starbar/pkg/errors"
)

// Family names understood by this package. Lookups are case-insensitive.
const (
	Regular = "Go"
	Bold    = "Go Bold"
	Mono    = "Go Mono"
)

// FallbackFontFamily is appended to the family in SVG font-family lists.
const FallbackFontFamily = `'Helvetica Neue', Helvetica, Arial, sans-serif`

var ttfs = map[string][]byte{
	strings.ToLower(Regular): goregular.TTF,
	strings.ToLower(Bold):    gobold.TTF,
	strings.ToLower(Mono):    gomono.TTF,
}

// Families lists the built-in families.
func Families() []string {
	return []string{Regular, Bold, Mono}
}

// Known reports whether family is built in.
func Known(family string) bool {
	_, ok := ttfs[strings.ToLower(family)]
	return ok
}

// TTF returns the TrueType data for family. Unknown families get the
// regular face.
func TTF(family string) []byte {
	if b, ok := ttfs[strings.ToLower(family)]; ok {
		return b
	}
	return goregular.TTF
}

var (
	parsedMu sync.Mutex
	parsed   = map[string]*truetype.Font{}
)

// Parse returns the parsed font for family. Results are cached.
func Parse(family string) (*truetype.Font, error) {
	key := strings.ToLower(family)
	if !Known(family) {
		key = strings.ToLower(Regular)
	}

	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[key]; ok {
		return f, nil
	}
	f, err := truetype.Parse(ttfs[key])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse font %q", family)
	}
	parsed[key] = f
	return f, nil
}

// Cache for base64-encoded fonts (computed once per family on first access).
var (
	b64Mu sync.Mutex
	b64   = map[string]string{}
)

// TTFBase64 returns the TTF data for family as a base64 string, suitable
// for an SVG @font-face data URL. The result is cached.
func TTFBase64(family string) string {
	key := strings.ToLower(family)
	b64Mu.Lock()
	defer b64Mu.Unlock()
	if s, ok := b64[key]; ok {
		return s
	}
	s := base64.StdEncoding.EncodeToString(TTF(family))
	b64[key] = s
	return s
}

// CSSFamily returns a font-family value with fallbacks.
func CSSFamily(family string) string {
	if family == "" {
		family = Regular
	}
	return "'" + family + "', " + FallbackFontFamily
}
