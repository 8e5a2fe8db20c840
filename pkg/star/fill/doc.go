// Package fill maps a continuous rating onto per-star fill fractions.
//
// # Overview
//
// A rating of 3.7 out of 5 stars becomes five fractions, one per star, each
// in [0, 1]. Stars entirely left of the rating are full, stars entirely right
// of it are empty, and the single straddling star receives the remainder.
// The [Mode] then discretizes each fraction:
//
//   - [Full]: only whole stars, rounded to the nearest integer
//   - [Half]: multiples of 0.5
//   - [Precise]: the exact remainder, remapped by [CorrectPrecise]
//
// Ties round to even, so 3.5 in Full mode shows three stars.
//
// # Fill Correction
//
// A star glyph carries most of its visual mass near its center, so a
// linearly clipped fill looks uneven: 10% of the bounding box covers far
// less than 10% of the star. [CorrectPrecise] compresses the output range to
// [c/200, 1-c/200] for a correction c in [0, 100]. Zero disables it, 100
// collapses every fraction to 0.5.
//
// # Clamping
//
// Nothing in this package returns an error. Ratings, corrections and star
// counts are clamped; NaN is treated as zero. Every returned fraction is a
// finite number in [0, 1].
package fill
