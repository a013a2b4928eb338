// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package dataset

import (
	"context"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// StaticLoader serves fixed rows. Used by tests and for seeding a store from
// rows already in memory.
type StaticLoader struct {
	Records   []models.CutoffRecord
	Directory []models.DirectoryEntry
	Err       error
}

// Load implements Loader.
func (l *StaticLoader) Load(ctx context.Context) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.Err != nil {
		return nil, l.Err
	}
	return &Data{Records: l.Records, Directory: l.Directory, Source: l.Describe()}, nil
}

// Describe implements Loader.
func (l *StaticLoader) Describe() string {
	return "static"
}

// NewStaticStore returns a store already loaded with records.
func NewStaticStore(records []models.CutoffRecord, directory []models.DirectoryEntry) *Store {
	s := NewStore(&StaticLoader{Records: records, Directory: directory})
	_ = s.Refresh(context.Background()) //nolint:errcheck // static loader cannot fail
	return s
}
