// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	// DuckDB driver - reads CSV, Parquet and XLSX sources in-process
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/supriyamulik/cet-college-predictor/internal/logging"
	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// DuckDBLoader loads the cutoff table and the college directory through an
// in-memory DuckDB instance.
type DuckDBLoader struct {
	// CutoffPath is a file path or glob (e.g. data/cutoffs/*.csv).
	CutoffPath string
	// DirectoryPath is optional; when empty no URLs are attached.
	DirectoryPath string
}

// Describe implements Loader.
func (l *DuckDBLoader) Describe() string {
	return l.CutoffPath
}

// Load implements Loader.
func (l *DuckDBLoader) Load(ctx context.Context) (*Data, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close() //nolint:errcheck // in-memory instance, nothing to flush

	// One connection keeps the temporary view visible to every query.
	db.SetMaxOpenConns(1)

	rel, err := relationFor(ctx, db, l.CutoffPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "CREATE OR REPLACE TEMP VIEW cutoffs AS SELECT * FROM "+rel); err != nil {
		return nil, fmt.Errorf("read %s: %w", l.CutoffPath, err)
	}

	columns, err := viewColumns(ctx, db, "cutoffs")
	if err != nil {
		return nil, err
	}
	schema, err := ValidateSchema(columns)
	if err != nil {
		return nil, err
	}

	records, skipped, err := readCutoffs(ctx, db, schema)
	if err != nil {
		return nil, err
	}

	data := &Data{Records: records, Skipped: skipped, Source: l.CutoffPath}
	if l.DirectoryPath != "" {
		dir, err := readDirectory(ctx, db, l.DirectoryPath)
		if err != nil {
			// Directory is an enrichment; the cutoff table is still usable.
			logging.Warn().Err(err).Str("path", l.DirectoryPath).Msg("College directory not loaded")
		} else {
			data.Directory = dir
		}
	}
	return data, nil
}

// relationFor picks the DuckDB table function for a source path.
func relationFor(ctx context.Context, db *sql.DB, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty source path", ErrSchema)
	}
	lit := quoteLiteral(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return fmt.Sprintf("read_parquet(%s, union_by_name=true)", lit), nil
	case ".xlsx":
		if err := loadExtension(ctx, db, "excel"); err != nil {
			return "", fmt.Errorf("load excel extension: %w", err)
		}
		return fmt.Sprintf("read_xlsx(%s, header=true, all_varchar=true)", lit), nil
	default:
		return fmt.Sprintf("read_csv_auto(%s, header=true, all_varchar=true, union_by_name=true)", lit), nil
	}
}

// loadExtension installs and loads a DuckDB extension; install may fail when
// the extension is already present, so load is attempted regardless.
func loadExtension(ctx context.Context, db *sql.DB, name string) error {
	if _, err := db.ExecContext(ctx, "INSTALL "+name+";"); err != nil {
		if _, loadErr := db.ExecContext(ctx, "LOAD "+name+";"); loadErr != nil {
			return fmt.Errorf("install error: %w, load error: %w", err, loadErr)
		}
		return nil
	}
	_, err := db.ExecContext(ctx, "LOAD "+name+";")
	return err
}

func viewColumns(ctx context.Context, db *sql.DB, view string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT column_name FROM information_schema.columns WHERE table_name = ? ORDER BY ordinal_position",
		view,
	)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", view, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func textExpr(s *Schema, col string) string {
	return fmt.Sprintf("TRIM(CAST(%s AS VARCHAR))", s.Ident(col))
}

func numberExpr(s *Schema, col string) string {
	if !s.Has(col) {
		return "CAST(NULL AS DOUBLE)"
	}
	return fmt.Sprintf("TRY_CAST(%s AS DOUBLE)", s.Ident(col))
}

func readCutoffs(ctx context.Context, db *sql.DB, s *Schema) ([]models.CutoffRecord, int, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, UPPER(%s), %s, %s, %s, %s FROM cutoffs`,
		textExpr(s, ColCollegeCode),
		textExpr(s, ColCollegeName),
		textExpr(s, ColCity),
		textExpr(s, ColType),
		textExpr(s, ColBranchName),
		textExpr(s, ColCategory),
		textExpr(s, ColYear),
		numberExpr(s, ColClosingPercentile),
		numberExpr(s, ColClosingRank),
		numberExpr(s, ColRound),
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("query cutoffs: %w", err)
	}
	defer rows.Close()

	var (
		records []models.CutoffRecord
		skipped int
	)
	for rows.Next() {
		var (
			code, name, city, typ, branch, category, year sql.NullString
			pct, rank, round                              sql.NullFloat64
		)
		if err := rows.Scan(&code, &name, &city, &typ, &branch, &category, &year, &pct, &rank, &round); err != nil {
			return nil, 0, fmt.Errorf("scan cutoff row: %w", err)
		}

		rec, ok := buildRecord(rowValues{
			code: code.String, name: name.String, city: city.String, typ: typ.String,
			branch: branch.String, category: category.String, year: year.String,
			pct: pct, rank: rank, round: round,
		})
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate cutoffs: %w", err)
	}
	return records, skipped, nil
}

type rowValues struct {
	code, name, city, typ, branch, category, year string
	pct, rank, round                              sql.NullFloat64
}

// buildRecord applies row hygiene. A row is rejected when its percentile is
// missing or outside [0,100], its rank is present but not positive, or it has
// no college code.
func buildRecord(v rowValues) (models.CutoffRecord, bool) {
	if !v.pct.Valid || math.IsNaN(v.pct.Float64) || v.pct.Float64 < 0 || v.pct.Float64 > 100 {
		return models.CutoffRecord{}, false
	}
	if strings.TrimSpace(v.code) == "" {
		return models.CutoffRecord{}, false
	}
	rec := models.CutoffRecord{
		CollegeCode:       cleanCode(v.code),
		CollegeName:       strings.TrimSpace(v.name),
		City:              strings.TrimSpace(v.city),
		Type:              strings.TrimSpace(v.typ),
		BranchName:        strings.TrimSpace(v.branch),
		Category:          strings.ToUpper(strings.TrimSpace(v.category)),
		Year:              cleanCode(v.year),
		ClosingPercentile: v.pct.Float64,
	}
	if v.rank.Valid {
		if v.rank.Float64 <= 0 || math.IsNaN(v.rank.Float64) {
			return models.CutoffRecord{}, false
		}
		rec.ClosingRank = int(math.Round(v.rank.Float64))
	}
	if v.round.Valid && v.round.Float64 > 0 {
		rec.Round = int(math.Round(v.round.Float64))
	}
	return rec, true
}

// cleanCode drops the ".0" spreadsheets append to integer cells.
func cleanCode(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), ".0")
}
