// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

// Package predictor turns eligible cutoff rows into predicted next-cycle
// cutoffs. The regression model is opaque; this package only calls it and
// rescales its output to 0-100 within the candidate set of one request.
package predictor

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/supriyamulik/cet-college-predictor/internal/logging"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// DefaultMidpoint is assigned to every row when raw scores have no spread.
const DefaultMidpoint = 50.0

var (
	// ErrModelUnavailable is returned while no model is loaded.
	ErrModelUnavailable = errors.New("prediction model unavailable")

	// ErrAllRecordsFailed is returned when the model failed on every row.
	ErrAllRecordsFailed = errors.New("model failed on every record")
)

// Scored is a row with its rescaled predicted cutoff.
type Scored struct {
	Record    models.CutoffRecord
	Predicted float64
}

// Predictor holds the active model. The model may be swapped at runtime.
type Predictor struct {
	model    atomic.Pointer[Model]
	midpoint float64
}

// New returns a predictor; model may be nil, in which case Score fails with
// ErrModelUnavailable until SetModel is called.
func New(model Model, midpoint float64) *Predictor {
	if midpoint <= 0 || midpoint > 100 {
		midpoint = DefaultMidpoint
	}
	p := &Predictor{midpoint: midpoint}
	p.SetModel(model)
	return p
}

// SetModel replaces the active model.
func (p *Predictor) SetModel(m Model) {
	if m == nil {
		p.model.Store(nil)
		return
	}
	p.model.Store(&m)
}

// Available returns ErrModelUnavailable when no model is loaded.
func (p *Predictor) Available() error {
	if p.model.Load() == nil {
		return ErrModelUnavailable
	}
	return nil
}

// Score predicts every record and rescales the raw scores to [0,100] over
// the rows that scored. Rows whose prediction fails or is not finite are
// dropped and counted in skipped.
func (p *Predictor) Score(records []models.CutoffRecord) (scored []Scored, skipped int, err error) {
	mp := p.model.Load()
	if mp == nil {
		return nil, 0, ErrModelUnavailable
	}
	model := *mp

	scored = make([]Scored, 0, len(records))
	var lastErr error
	for i := range records {
		raw, err := model.Predict(records[i].CNormalized, records[i].TypeWeight)
		if err == nil && (math.IsNaN(raw) || math.IsInf(raw, 0)) {
			err = fmt.Errorf("non-finite score %v", raw)
		}
		if err != nil {
			skipped++
			lastErr = err
			logging.Debug().Err(err).
				Str("college_code", records[i].CollegeCode).
				Str("branch", records[i].BranchName).
				Msg("Skipping record the model could not score")
			continue
		}
		scored = append(scored, Scored{Record: records[i], Predicted: raw})
	}

	if len(scored) == 0 && skipped > 0 {
		return nil, skipped, fmt.Errorf("%w (%d records): %w", ErrAllRecordsFailed, skipped, lastErr)
	}

	p.rescale(scored)
	return scored, skipped, nil
}

// rescale applies min-max scaling to 0-100 in place.
func (p *Predictor) rescale(scored []Scored) {
	if len(scored) == 0 {
		return
	}
	lo, hi := scored[0].Predicted, scored[0].Predicted
	for _, s := range scored[1:] {
		lo = math.Min(lo, s.Predicted)
		hi = math.Max(hi, s.Predicted)
	}
	if hi <= lo {
		for i := range scored {
			scored[i].Predicted = p.midpoint
		}
		return
	}
	span := hi - lo
	for i := range scored {
		scored[i].Predicted = (scored[i].Predicted - lo) / span * 100
	}
}
