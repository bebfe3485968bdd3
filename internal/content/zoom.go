package content

import (
	"regexp"
	"strconv"
)

// Zoom limits in percent
const (
	MinZoom     = 80
	MaxZoom     = 150
	ZoomStep    = 10
	DefaultZoom = 100
)

var pointFontSize = regexp.MustCompile(`(?i)font-size:\s*(\d+(?:\.\d+)?)\s*pt`)

// ClampZoom keeps a zoom percentage inside [MinZoom, MaxZoom]
func ClampZoom(percent int) int {
	if percent < MinZoom {
		return MinZoom
	}
	if percent > MaxZoom {
		return MaxZoom
	}
	return percent
}

// ApplyZoom multiplies every point-sized font-size declaration by
// percent/100. Declarations in other units are left alone. 100% returns
// the input unchanged.
func ApplyZoom(html string, percent int) string {
	if percent == 100 {
		return html
	}
	factor := float64(percent) / 100
	return pointFontSize.ReplaceAllStringFunc(html, func(m string) string {
		sub := pointFontSize.FindStringSubmatch(m)
		base, err := strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return m
		}
		return "font-size:" + strconv.FormatFloat(base*factor, 'f', -1, 64) + "pt"
	})
}
