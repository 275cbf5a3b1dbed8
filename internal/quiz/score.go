package quiz

// Points returns the free-text score for a member of the given kanken tier.
// Harder tiers (smaller numbers) are worth more.
func Points(tier float64) int {
	switch {
	case tier >= 5 && tier <= 10:
		return 1
	case tier >= 3 && tier <= 4:
		return 2
	case tier >= 2 && tier <= 2.5:
		return 3
	case tier == 1.5:
		return 5
	case tier == 1:
		return 8
	default:
		return 1
	}
}

// Percentage returns correct/total as a whole percentage, or 0 when total is 0.
func Percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
