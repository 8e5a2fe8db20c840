package sink

import (
	"github.com/matzehuels/starbar/pkg/fonts"
	"github.com/matzehuels/starbar/pkg/star/fill"
	"github.com/matzehuels/starbar/pkg/star/layout"
	"github.com/matzehuels/starbar/pkg/star/settings"
)

func halfSettings() settings.Settings {
	s := settings.Default()
	s.FillMode = fill.Half
	return s
}

// halfLayout is 5 default stars at rating 3.5 in half mode: three filled,
// one partial, one empty, 120x20 without text.
func halfLayout(text string) layout.Result {
	return layout.Build(halfSettings(), 3.5, text, fonts.NewMeasurer())
}
