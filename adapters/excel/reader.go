// Package excel loads domain datasets from Excel and CSV files into
// dataset.Entity slices. The file format is a flat table: one reserved
// column per entity field, every remaining numeric column treated as a
// fundamental.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/scoring"
)

// Reserved column headers, matched case-insensitively.
const (
	colName             = "name"
	colContext          = "context"
	colOutcome          = "outcome"
	colPatternFrequency = "pattern_frequency"
)

// DatasetReader handles reading Excel and CSV dataset files
type DatasetReader struct {
	filePath string
	sheet    string
	fileType string // "xlsx" or "csv"
}

// NewDatasetReader creates a reader for the given file; sheet is ignored
// for CSV input and defaults to "Sheet1" when empty.
func NewDatasetReader(filePath, sheet string) *DatasetReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &DatasetReader{filePath: filePath, sheet: sheet, fileType: fileType}
}

// ReadEntities reads the file into entities plus the inferred outcome type.
func (r *DatasetReader) ReadEntities() ([]dataset.Entity, dataset.OutcomeType, error) {
	log.Printf("[DatasetReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, "", fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, "", fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, "", err
	}

	if len(rows) < 2 {
		return nil, "", fmt.Errorf("dataset file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// readExcelRows reads all rows from the configured sheet
func (r *DatasetReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", r.sheet, err)
	}
	readTime := time.Since(startTime)
	log.Printf("[DatasetReader] Sheet %s read in %.2fms (%d rows)", r.sheet, float64(readTime.Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads all rows from a CSV file
func (r *DatasetReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	startTime := time.Now()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	readTime := time.Since(startTime)
	log.Printf("[DatasetReader] CSV file read in %.2fms (%d rows)", float64(readTime.Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// processRows converts raw string rows into entities. The name and outcome
// columns are required; context and pattern_frequency are optional, and
// every other column that parses as numeric becomes a fundamental keyed by
// its lowercased header.
func (r *DatasetReader) processRows(rows [][]string) ([]dataset.Entity, dataset.OutcomeType, error) {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	nameIdx, outcomeIdx := -1, -1
	contextIdx, freqIdx := -1, -1
	for i, h := range headers {
		switch h {
		case colName:
			nameIdx = i
		case colOutcome:
			outcomeIdx = i
		case colContext:
			contextIdx = i
		case colPatternFrequency:
			freqIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, "", fmt.Errorf("dataset file missing required column %q", colName)
	}
	if outcomeIdx < 0 {
		return nil, "", fmt.Errorf("dataset file missing required column %q", colOutcome)
	}

	var entities []dataset.Entity
	binary := true
	skipped := 0
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		cell := func(idx int) string {
			if idx < 0 || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		name := cell(nameIdx)
		if name == "" {
			skipped++
			continue
		}
		outcome, err := strconv.ParseFloat(cell(outcomeIdx), 64)
		if err != nil {
			skipped++
			continue
		}
		if outcome != 0 && outcome != 1 {
			binary = false
		}

		e := dataset.Entity{
			Name:         name,
			Context:      cell(contextIdx),
			Fundamentals: scoring.FundamentalsRecord{},
			Outcome:      outcome,
		}
		if v, err := strconv.ParseFloat(cell(freqIdx), 64); err == nil {
			e.PatternFrequency = v
		}
		for j, h := range headers {
			if j == nameIdx || j == outcomeIdx || j == contextIdx || j == freqIdx || h == "" {
				continue
			}
			if v, err := strconv.ParseFloat(cell(j), 64); err == nil {
				e.Fundamentals[core.FeatureKey(h)] = v
			}
		}
		entities = append(entities, e)
	}

	outcomeType := dataset.OutcomeContinuous
	if binary && len(entities) > 0 {
		outcomeType = dataset.OutcomeBinary
	}

	log.Printf("[DatasetReader] %s file processed (%d entities, %d skipped, outcome=%s)",
		strings.ToUpper(r.fileType), len(entities), skipped, outcomeType)
	return entities, outcomeType, nil
}
