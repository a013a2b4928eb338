// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestStoreStartsUnloaded(t *testing.T) {
	s := NewStore(&StaticLoader{Records: sampleRecords()})
	if err := s.Snapshot().Available(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Available() = %v, want ErrNotLoaded", err)
	}
	if s.Status().Generation != 0 {
		t.Error("generation should be 0 before the first refresh")
	}
}

func TestStoreInitialFailure(t *testing.T) {
	cause := errors.New("boom")
	s := NewStore(&StaticLoader{Err: cause})

	err := s.Refresh(context.Background())
	if !errors.Is(err, cause) {
		t.Fatalf("Refresh() = %v, want wrapped cause", err)
	}
	snap := s.Snapshot()
	if !errors.Is(snap.LoadErr, cause) {
		t.Errorf("LoadErr = %v, want cause", snap.LoadErr)
	}
	if st := s.Status(); st.LastError == "" || st.Generation != 0 {
		t.Errorf("Status() = %+v", st)
	}
}

func TestStoreFailedRefreshKeepsPreviousGeneration(t *testing.T) {
	loader := &StaticLoader{Records: sampleRecords()}
	s := NewStore(loader)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	first := s.Snapshot()
	if first.Generation != 1 || len(first.Records) != 3 {
		t.Fatalf("first snapshot = gen %d, %d records", first.Generation, len(first.Records))
	}

	loader.Err = errors.New("source vanished")
	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() succeeded with a failing loader")
	}
	if s.Snapshot() != first {
		t.Error("failed refresh replaced the active snapshot")
	}
	if s.Status().LastError == "" {
		t.Error("LastError not recorded")
	}

	loader.Err = nil
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := s.Snapshot().Generation; got != 2 {
		t.Errorf("generation = %d, want 2", got)
	}
	if s.Status().LastError != "" {
		t.Error("LastError not cleared after success")
	}
}

func TestStoreConcurrentReadsDuringRefresh(t *testing.T) {
	s := NewStaticStore(sampleRecords(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				snap := s.Snapshot()
				if len(snap.Records) != 3 {
					t.Errorf("snapshot has %d records", len(snap.Records))
					return
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		if err := s.Refresh(context.Background()); err != nil {
			t.Errorf("Refresh() error = %v", err)
		}
	}
	wg.Wait()

	if got := s.Snapshot().Generation; got != 6 {
		t.Errorf("generation = %d, want 6", got)
	}
}
