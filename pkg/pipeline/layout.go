package pipeline

import (
	"github.com/matzehuels/starbar/pkg/cache"
	"github.com/matzehuels/starbar/pkg/star/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the star row for the resolved rating and text.
// Options must have been validated.
func GenerateLayout(opts Options) layout.Result {
	return layout.Build(opts.Settings, opts.ResolvedRating(), opts.ResolvedText(), opts.Measurer)
}

// LayoutHash identifies everything that determines a layout: the settings
// and the resolved rating and text.
func LayoutHash(keyer cache.Keyer, opts Options) (string, error) {
	// Rating and text enter through the layout key in resolved form.
	s := opts.Settings
	s.Rating, s.Text = 0, ""
	settingsHash, err := cache.HashJSON(s)
	if err != nil {
		return "", err
	}
	return cache.Hash([]byte(keyer.LayoutKey(settingsHash, opts.LayoutKeyOpts()))), nil
}
