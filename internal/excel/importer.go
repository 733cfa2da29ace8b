package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/prepbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	NameColumn        string // Column with the topic name
	DateLearnedColumn string // Column with the date the topic was learned (YYYY-MM-DD)
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		NameColumn:        "A",
		DateLearnedColumn: "B",
		SheetName:         "Sheet1",
		StartRow:          2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// TopicAdder creates topics with their review schedule; rows go through it
// so every imported topic gets a schedule computed at creation
type TopicAdder interface {
	AddTopic(ctx context.Context, name string, dateLearned time.Time) (*models.Topic, error)
}

// ImportTopics imports topics from an Excel or CSV file
func ImportTopics(ctx context.Context, adder TopicAdder, config ImportConfig) (*ImportResult, error) {
	// Check the file extension
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		// Process as CSV
		return importFromCSV(ctx, adder, config)
	}

	// Process as Excel
	return importFromExcel(ctx, adder, config)
}

// importFromExcel imports topics from an Excel file
func importFromExcel(ctx context.Context, adder TopicAdder, config ImportConfig) (*ImportResult, error) {
	// Open Excel file
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	// Get rows from Excel
	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	// Process rows
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		if err := processRow(ctx, adder, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports topics from a CSV file
func importFromCSV(ctx context.Context, adder TopicAdder, config ImportConfig) (*ImportResult, error) {
	// Open CSV file
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Initialize reader
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++

		// Skip header rows
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		if err := processRow(ctx, adder, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// processRow imports a single row
func processRow(ctx context.Context, adder TopicAdder, row []string, config ImportConfig, result *ImportResult) error {
	var name, dateValue string

	// Check bounds for each column
	if colIdx := columnToIndex(config.NameColumn); colIdx < len(row) {
		name = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.DateLearnedColumn); colIdx < len(row) {
		dateValue = strings.TrimSpace(row[colIdx])
	}

	if name == "" {
		result.Skipped++
		return nil
	}

	// Empty date defaults to today
	dateLearned := models.DateOnly(time.Now())
	if dateValue != "" {
		parsed, err := models.ParseDate(dateValue)
		if err != nil {
			result.Skipped++
			return fmt.Errorf("bad date %q: expected %s", dateValue, models.DateLayout)
		}
		dateLearned = parsed
	}

	if _, err := adder.AddTopic(ctx, name, dateLearned); err != nil {
		result.Skipped++
		return err
	}

	result.Created++
	return nil
}

// columnToIndex converts a column letter (A, B, ..., Z, AA, ...) to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for _, c := range column {
		if c < 'A' || c > 'Z' {
			return 0
		}
		index = index*26 + int(c-'A'+1)
	}
	return index - 1
}
