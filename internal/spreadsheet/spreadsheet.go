// Package spreadsheet moves attempt history in and out of Excel and CSV
// files.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/quizmind/internal/attempt"
	"github.com/abhisek/quizmind/internal/quizgen"
)

// SheetName is the worksheet written by Export and read by Import.
const SheetName = "History"

// Header is the first row of every exported file. Import expects the
// columns in this order.
var Header = []string{"Timestamp", "Topic", "Difficulty", "Score", "Total Questions", "Time Taken (s)"}

// ImportResult summarizes an import. Rows that fail to parse are reported
// in Errors and skipped.
type ImportResult struct {
	TotalProcessed int
	Records        []attempt.Record
	Errors         []string
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// Export writes history to path. A .csv extension produces CSV, anything
// else an .xlsx workbook.
func Export(path string, history []attempt.Record) error {
	rows := make([][]string, 0, len(history)+1)
	rows = append(rows, Header)
	for _, a := range history {
		rows = append(rows, []string{
			a.Timestamp.UTC().Format(time.RFC3339),
			a.Topic,
			a.Difficulty,
			strconv.Itoa(a.Score),
			strconv.Itoa(a.TotalQuestions),
			strconv.Itoa(a.TimeTakenSeconds),
		})
	}

	if isCSV(path) {
		return exportCSV(path, rows)
	}
	return exportExcel(path, rows)
}

func exportCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return file.Close()
}

func exportExcel(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
			// Counters are stored as numbers so they sum in a spreadsheet.
			if i > 0 && j >= 3 {
				n, _ := strconv.Atoi(v)
				values[j] = n
			}
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "B", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Import reads attempts from a file written by Export, or any sheet with
// the same column order. The first row is treated as the header. Records
// are assigned to learner.
func Import(path, learner string) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	if isCSV(path) {
		rows, err = readCSV(path)
	} else {
		rows, err = readExcel(path)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if isBlank(row) {
			continue
		}
		result.TotalProcessed++

		rec, err := parseRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		rec.Learner = learner
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheet := SheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string) (attempt.Record, error) {
	if len(row) < len(Header) {
		padded := make([]string, len(Header))
		copy(padded, row)
		row = padded
	}

	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
	if err != nil {
		return attempt.Record{}, fmt.Errorf("invalid timestamp %q", row[0])
	}

	var counters [3]int
	for i := range counters {
		v := strings.TrimSpace(row[3+i])
		n, err := strconv.Atoi(v)
		if err != nil {
			return attempt.Record{}, fmt.Errorf("invalid %s %q", strings.ToLower(Header[3+i]), v)
		}
		counters[i] = n
	}

	var difficulty string
	if raw := strings.TrimSpace(row[2]); raw != "" {
		d, err := quizgen.ParseDifficulty(raw)
		if err != nil {
			return attempt.Record{}, err
		}
		difficulty = string(d)
	}

	rec := attempt.Record{
		Topic:            strings.TrimSpace(row[1]),
		Difficulty:       difficulty,
		Score:            counters[0],
		TotalQuestions:   counters[1],
		TimeTakenSeconds: counters[2],
		Timestamp:        ts,
	}
	if err := rec.Validate(); err != nil {
		return attempt.Record{}, err
	}
	return rec, nil
}
