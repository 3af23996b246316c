package main

import "math"

// bmiResult is the response shape for GET /api/bmi.
type bmiResult struct {
	BMI       float64 `json:"bmi"`
	Category  string  `json:"category"`
	IsHealthy bool    `json:"is_healthy"`
}

// classifyBMI computes BMI (kg / m²) rounded to one decimal and assigns the
// WHO band, inclusive lower bounds. is_healthy is true only for the normal band.
func classifyBMI(weightKG, heightCM float64) bmiResult {
	heightM := heightCM / 100
	bmi := math.Round(weightKG/(heightM*heightM)*10) / 10

	var category string
	healthy := false
	switch {
	case bmi < 18.5:
		category = "Underweight"
	case bmi < 25:
		category = "Normal weight"
		healthy = true
	case bmi < 30:
		category = "Overweight"
	default:
		category = "Obese"
	}

	return bmiResult{BMI: bmi, Category: category, IsHealthy: healthy}
}
