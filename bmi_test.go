package main

import "testing"

// TestClassifyBMI covers the WHO bands including the inclusive lower edges.
// Height 200cm makes the edge weights exact: 74kg → 18.5, 100kg → 25.0,
// 120kg → 30.0.
func TestClassifyBMI(t *testing.T) {
	cases := []struct {
		name     string
		weightKG float64
		heightCM float64
		want     bmiResult
	}{
		{"typical normal", 70, 175, bmiResult{BMI: 22.9, Category: "Normal weight", IsHealthy: true}},
		{"underweight", 50, 175, bmiResult{BMI: 16.3, Category: "Underweight", IsHealthy: false}},
		{"normal lower edge", 74, 200, bmiResult{BMI: 18.5, Category: "Normal weight", IsHealthy: true}},
		{"just under normal", 73, 200, bmiResult{BMI: 18.3, Category: "Underweight", IsHealthy: false}},
		{"overweight lower edge", 100, 200, bmiResult{BMI: 25, Category: "Overweight", IsHealthy: false}},
		{"obese lower edge", 120, 200, bmiResult{BMI: 30, Category: "Obese", IsHealthy: false}},
		{"overweight", 85, 175, bmiResult{BMI: 27.8, Category: "Overweight", IsHealthy: false}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyBMI(tc.weightKG, tc.heightCM)
			if got != tc.want {
				t.Errorf("classifyBMI(%v, %v) = %+v, want %+v", tc.weightKG, tc.heightCM, got, tc.want)
			}
		})
	}
}
