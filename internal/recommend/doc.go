// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

/*
Package recommend runs the prediction pipeline end to end.

For one applicant profile the Engine:

 1. takes the current dataset snapshot once, so a concurrent refresh never
    mixes generations inside a request
 2. narrows it with the eligibility filter (with fallback)
 3. scores the eligible rows with the cutoff predictor
 4. admits and scores candidates through the gap ranker (with widening)
 5. keeps one row per college, sorts and truncates to the limit

Multi-branch profiles run steps 2-5 once per branch, then merge the branch
lists, keep one row per (college, branch) pair, re-sort and re-rank.

Ordering is closeness ascending, then historical closing percentile
descending, then institution type weight descending. Remaining ties are
broken by college code, branch, category and year so that identical inputs
always produce identical output.
*/
package recommend
