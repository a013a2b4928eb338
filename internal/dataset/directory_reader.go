// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// Directory column keys after NormalizeHeader.
const (
	dirColSrNo        = "srno"
	dirColCollegeCode = "collegecode"
	dirColCollegeName = "collegename"
	dirColCity        = "city"
	dirColURL         = "url"
)

// NormalizeHeader lower-cases a header and drops everything that is not a
// letter or digit, so "College Code", "college_code" and "Sr. No" compare
// equal to their canonical keys.
func NormalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeURL trims a website and adds https:// when no scheme is given.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" || strings.EqualFold(u, "nan") {
		return ""
	}
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return u
	}
	return "https://" + u
}

func readDirectory(ctx context.Context, db *sql.DB, path string) ([]models.DirectoryEntry, error) {
	rel, err := relationFor(ctx, db, path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "CREATE OR REPLACE TEMP VIEW directory AS SELECT * FROM "+rel); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	columns, err := viewColumns(ctx, db, "directory")
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]string, len(columns))
	for _, c := range columns {
		byKey[NormalizeHeader(c)] = c
	}
	if _, ok := byKey[dirColCollegeName]; !ok {
		return nil, fmt.Errorf("%w: directory is missing a College Name column", ErrSchema)
	}

	keys := []string{dirColSrNo, dirColCollegeCode, dirColCollegeName, dirColCity, dirColURL}
	exprs := make([]string, len(keys))
	for i, k := range keys {
		if actual, ok := byKey[k]; ok {
			exprs[i] = fmt.Sprintf("TRIM(CAST(%s AS VARCHAR))", quoteIdent(actual))
		} else {
			exprs[i] = "CAST(NULL AS VARCHAR)"
		}
	}

	rows, err := db.QueryContext(ctx, "SELECT "+strings.Join(exprs, ", ")+" FROM directory")
	if err != nil {
		return nil, fmt.Errorf("query directory: %w", err)
	}
	defer rows.Close()

	var out []models.DirectoryEntry
	for rows.Next() {
		var srNo, code, name, city, url sql.NullString
		if err := rows.Scan(&srNo, &code, &name, &city, &url); err != nil {
			return nil, fmt.Errorf("scan directory row: %w", err)
		}
		if strings.TrimSpace(name.String) == "" {
			continue
		}
		out = append(out, models.DirectoryEntry{
			SrNo:        cleanCode(srNo.String),
			CollegeCode: cleanCode(code.String),
			CollegeName: strings.TrimSpace(name.String),
			City:        strings.TrimSpace(city.String),
			URL:         NormalizeURL(url.String),
		})
	}
	return out, rows.Err()
}
