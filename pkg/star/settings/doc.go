// Package settings holds the configuration record consumed by the fill,
// compose and layout packages.
//
// A [Settings] value is plain data. Hosts build one (usually starting
// from [Default]), adjust fields, and pass it by value to every render
// call; nothing in the rendering chain keeps a reference to it.
//
// # Files
//
// Settings can be loaded from TOML with [LoadFile]. Every key is optional
// and overlays the defaults:
//
//	total_stars = 5
//	fill_mode = "precise"
//	fill_correction = 40
//	star_size = 24
//	star_margin_percent = 25
//	filled_color = "#ff9500"
//
// Margins may be given in points (star_margin, text_margin) or as a
// percentage of the font point size (star_margin_percent,
// text_margin_percent). When both are present the percentage wins.
package settings
