// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package optionform

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{
	"Priority", "College Name", "Branch", "City", "Type", "Category",
	"Historical Cutoff", "Predicted Cutoff", "Admission Probability",
}

// ExportCSV writes the user's form to w, one row per entry in priority order.
// It returns the number of entries written.
func (s *Store) ExportCSV(ctx context.Context, userID string, w io.Writer) (int, error) {
	form, err := s.Load(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := WriteCSV(w, form); err != nil {
		return 0, err
	}
	return len(form.Colleges), nil
}

// WriteCSV encodes form as CSV.
func WriteCSV(w io.Writer, form *models.OptionForm) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range form.Colleges {
		c := &form.Colleges[i]
		row := []string{
			strconv.Itoa(i + 1),
			c.CollegeName,
			c.Branch,
			c.City,
			c.Type,
			c.QuotaCategory,
			formatFloat(c.HistoricalCutoff),
			formatFloat(c.PredictedCutoff),
			formatFloat(c.AdmissionProbability),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
