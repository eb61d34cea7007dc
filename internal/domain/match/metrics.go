package match

import "math"

// KDA returns (kills+assists)/deaths. A deathless game is not a fault:
// the ratio degenerates to kills+assists.
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return float64(kills+assists) / float64(deaths)
}

// PerMinute normalizes a counter by match length, rounded to the nearest
// whole unit (half rounds away from zero). A zero duration yields 0.
func PerMinute(amount, durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return math.Round(float64(amount) / (float64(durationSeconds) / 60.0))
}
