package recipe

import (
	"math"

	"tutorialmod/server/item"
)

// BlendColours mixes the colourants passed into an existing colour. Every input weighs the same: the channels
// of all inputs are averaged, after which the average is rescaled so that its brightest channel matches the
// average brightness (brightest channel) of the inputs. This keeps a mix of saturated colours from turning
// grey.
//
// The existing colour takes part in the mix unless it is nil or item.DefaultColour. If no colour takes part at
// all, false is returned and the caller must leave its colour as is.
// If every averaged channel truncates to 0 the brightness cannot be matched, and the unscaled average (black)
// is returned.
func BlendColours(existing *item.Colour, colourants []item.Colour) (item.Colour, bool) {
	var sumR, sumG, sumB, sumMax, count int

	add := func(c item.Colour) {
		sumR += int(c.R)
		sumG += int(c.G)
		sumB += int(c.B)
		sumMax += int(c.Max())
		count++
	}
	if existing != nil && !existing.IsDefault() {
		add(*existing)
	}
	for _, c := range colourants {
		add(c)
	}
	if count == 0 {
		return item.Colour{}, false
	}

	avg := item.Colour{R: uint8(sumR / count), G: uint8(sumG / count), B: uint8(sumB / count)}
	avgMax := float64(sumMax) / float64(count)
	peak := float64(avg.Max())
	if peak == 0 {
		return avg, true
	}
	return item.Colour{
		R: scaleChannel(avg.R, avgMax, peak),
		G: scaleChannel(avg.G, avgMax, peak),
		B: scaleChannel(avg.B, avgMax, peak),
	}, true
}

// scaleChannel computes round(c * avgMax / peak), clamped to a channel.
func scaleChannel(c uint8, avgMax, peak float64) uint8 {
	v := float64(c) * avgMax / peak
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return item.ClampChannel(v)
}
