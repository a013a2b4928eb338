// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

/*
Package dataset owns the historical cutoff table.

A Loader produces raw rows; the Store turns them into an immutable Snapshot
(per-row type weight and normalized closing percentile, sorted lookup lists,
college URL map) and publishes it with a single atomic pointer swap. Readers
call Store.Snapshot once per request and work on that value, so a concurrent
Refresh is never observed half-applied.

Load failures never panic and never clear good data:
  - the first failed load installs an empty snapshot whose LoadErr is set
  - a failed refresh keeps the previous generation and records the error

DuckDBLoader reads the cutoff source through an in-memory DuckDB instance, so
one code path handles a single CSV, a glob of per-year CSVs (merged by
column name), Parquet, and XLSX via the excel extension. Column presence is
validated once, up front, before any row is read.
*/
package dataset
