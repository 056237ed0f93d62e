package service

import "math"

// Sigmoid is the logistic function 1 / (1 + e^-z), evaluated without overflow
// for large negative z.
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
