package engine

import "math"

// DefaultScalingFactor is the logistic spread: a rating gap of this size
// gives the stronger side 10:1 odds.
const DefaultScalingFactor = 400.0

// WinProbability returns the expected score of the home side given both
// ratings. Inputs must be finite and scalingFactor must be positive.
func WinProbability(ratingHome, ratingAway, scalingFactor float64) float64 {
	return 1 / (1 + math.Pow(10, (ratingAway-ratingHome)/scalingFactor))
}
