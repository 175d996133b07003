package complexity

// Normalize maps a pair of complexity values onto a 0-10 scale with
// logarithmic-style flattening so extreme functions do not drown out the
// rest of the distribution. Combined 1-5 reads as low (0-3), 6-10 as
// medium (3-6), 11+ as high (6-10).
func Normalize(cyclomatic, cognitive int) float64 {
	combined := float64(cyclomatic+cognitive) / 2.0
	switch {
	case combined <= 0:
		return 0
	case combined <= 5.0:
		return combined * 0.6
	case combined <= 10.0:
		return 3.0 + (combined-5.0)*0.6
	default:
		extra := (combined - 10.0) * 0.2
		if extra > 4.0 {
			extra = 4.0
		}
		return 6.0 + extra
	}
}
