// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package recommend

import "github.com/supriyamulik/cet-college-predictor/internal/models"

// Statistics summarizes a prediction list. Percentages have one decimal and
// the average probability two; an empty list yields all zeros.
func Statistics(predictions []models.Prediction) models.PredictionStatistics {
	n := len(predictions)
	if n == 0 {
		return models.PredictionStatistics{}
	}

	var high, moderate, backup int
	sum := 0.0
	lo, hi := predictions[0].AdmissionProbability, predictions[0].AdmissionProbability
	for i := range predictions {
		p := predictions[i].AdmissionProbability
		switch predictions[i].Tier {
		case models.TierHigh:
			high++
		case models.TierModerate:
			moderate++
		default:
			backup++
		}
		sum += p
		lo = min(lo, p)
		hi = max(hi, p)
	}

	share := func(count int) models.TierCount {
		return models.TierCount{Count: count, Percentage: round1(float64(count) / float64(n) * 100)}
	}
	return models.PredictionStatistics{
		Total:              n,
		High:               share(high),
		Moderate:           share(moderate),
		Backup:             share(backup),
		AvgProbability:     round2(sum / float64(n)),
		HighestProbability: hi,
		LowestProbability:  lo,
	}
}
