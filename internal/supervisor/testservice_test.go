// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// testService counts starts and can fail a fixed number of times before
// running until canceled.
type testService struct {
	name       string
	starts     atomic.Int32
	failsLeft  atomic.Int32
	failureErr error
}

func newTestService(name string, fails int32) *testService {
	s := &testService{name: name, failureErr: errors.New("simulated failure")}
	s.failsLeft.Store(fails)
	return s
}

func (s *testService) Serve(ctx context.Context) error {
	s.starts.Add(1)
	if s.failsLeft.Add(-1) >= 0 {
		return s.failureErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *testService) String() string {
	return s.name
}
