// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

/*
Package models defines the data structures shared across the predictor.

Dataset models:
  - CutoffRecord: one historical row (college x branch x category x year)
  - DirectoryEntry: one row of the college directory file

Request/response models:
  - ApplicantProfile: request-scoped applicant description
  - Prediction, PredictionStatistics, Diagnostics, PredictionResult
  - CollegeYearRecord, TrendAnalysis, CollegeStats, CollegeSummary, CategoryInfo
  - OptionForm, OptionFormEntry
  - ChatMessage, QuickReply

Records are treated as immutable after load. Request-scoped values are built
per call and never shared between requests.
*/
package models
