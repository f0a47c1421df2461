package focus

import "math"

// AmbientAlpha maps an ambient light estimate in lumen to an opacity.
// Very dark scenes hide the indicator, dim scenes show it at half strength.
func AmbientAlpha(intensity float64) float64 {
	alpha := math.Min(intensity, 1000) / 1000
	switch {
	case intensity < 500:
		return 0
	case intensity < 900:
		return alpha * 0.5
	default:
		return alpha
	}
}
