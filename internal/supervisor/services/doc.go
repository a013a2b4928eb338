// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

/*
Package services adapts the predictor's long-running work to suture's
Serve(ctx) error contract.

  - HTTPServerService: ListenAndServe with graceful Shutdown.
  - DatasetRefreshService: reloads the cutoff dataset on a ticker, on file
    change notifications and on demand. A failed reload keeps the previous
    generation serving.
  - StorageGCService: runs Badger value-log GC for the option form store.
  - PeriodicService: runs a small task on an interval (login lockout cleanup).

Every service returns ctx.Err() on shutdown and implements fmt.Stringer so the
supervisor can name it in logs.
*/
package services
