// Package csvcodec serializes exam results to the portal's delimited text
// format and parses such text back into results.
//
// The format is a plain comma join with no quoting or escaping: a name or
// remark containing a comma corrupts its row. This mirrors the exported
// files the portal has always produced.
package csvcodec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/exam-portal/backend/internal/models"
	"github.com/exam-portal/backend/internal/results"
)

// Codec encodes and decodes result rows against a fixed question schema.
// ExamName and Subject fill the fields the CSV format does not carry.
type Codec struct {
	Schema   []models.QuestionSpec
	ExamName string
	Subject  string
}

// New returns a codec bound to the configured default schema.
func New() *Codec {
	return &Codec{
		Schema:   models.DefaultQuestions,
		ExamName: models.DefaultExamName,
		Subject:  models.DefaultSubject,
	}
}

// RowError describes one failed import row. Row numbers are 1-based over the
// data rows (the header is not counted).
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Report summarizes an import: how many rows parsed and which failed.
type Report struct {
	SuccessCount int        `json:"success_count"`
	Errors       []RowError `json:"errors"`
}

// Encode renders results as CSV with a fixed column order. Header first, one
// row per result, rows joined by newline.
func (c *Codec) Encode(rs []models.ExamResult) string {
	var b strings.Builder
	b.WriteString(c.header())

	for _, r := range rs {
		fields := []string{r.SeatNumber, r.StudentName}
		for _, q := range r.Questions {
			fields = append(fields, formatNumber(q.MarksObtained))
		}
		rank := ""
		if r.Rank != nil {
			rank = strconv.Itoa(*r.Rank)
		}
		fields = append(fields,
			formatNumber(r.ExamMarks),
			formatNumber(r.SemesterMarks),
			formatNumber(r.Percentage),
			r.Grade,
			rank,
			r.Remarks,
			r.Teacher.Name,
			r.ExamDate,
		)
		b.WriteString("\n")
		b.WriteString(strings.Join(fields, ","))
	}

	return b.String()
}

// Decode parses CSV text into fully derived results. Columns are matched by
// header name, lowercased and trimmed, so input column order does not matter.
// Each row is parsed into a typed form first; a row that fails validation is
// recorded in the report and skipped, never aborting the import. Question
// marks are clamped to the schema's max for their position.
func (c *Codec) Decode(text string) ([]models.ExamResult, Report) {
	var report Report

	lines := splitLines(text)
	if len(lines) == 0 {
		report.Errors = append(report.Errors, RowError{Row: 0, Message: "empty file"})
		return nil, report
	}

	columns := make(map[string]int)
	for i, name := range strings.Split(lines[0], ",") {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["seatnumber"]; !ok {
		report.Errors = append(report.Errors, RowError{Row: 0, Message: "missing SeatNumber column"})
		return nil, report
	}

	var parsed []models.ExamResult
	for i, line := range lines[1:] {
		rowNum := i + 1
		row, err := c.parseRow(line, columns)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}

		parsed = append(parsed, results.Build(results.Draft{
			SeatNumber:    row.SeatNumber,
			StudentName:   row.Name,
			ExamName:      c.ExamName,
			ExamDate:      row.Date,
			Subject:       c.Subject,
			Questions:     row.Questions,
			SemesterMarks: row.Semester,
			Rank:          row.Rank,
			Remarks:       row.Remarks,
			Teacher:       models.TeacherInfo{Name: row.Teacher},
		}))
		report.SuccessCount++
	}

	return parsed, report
}

// row is the typed form a CSV line must parse into before any result is
// built from it.
type row struct {
	SeatNumber string
	Name       string
	Questions  []models.QuestionMark
	Semester   float64
	Rank       *int
	Remarks    string
	Teacher    string
	Date       string
}

func (c *Codec) parseRow(line string, columns map[string]int) (*row, error) {
	fields := strings.Split(line, ",")
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[idx])
	}

	r := &row{
		SeatNumber: field("seatnumber"),
		Name:       field("name"),
		Remarks:    field("remarks"),
		Teacher:    field("teacher"),
		Date:       field("date"),
	}
	if r.SeatNumber == "" {
		return nil, fmt.Errorf("missing seat number")
	}
	if r.Name == "" {
		return nil, fmt.Errorf("missing student name")
	}

	for _, spec := range c.Schema {
		col := fmt.Sprintf("q%d", spec.QuestionNumber)
		marks, err := parseNumber(field(col))
		if err != nil {
			return nil, fmt.Errorf("column %s: %v", strings.ToUpper(col), err)
		}
		r.Questions = append(r.Questions, models.QuestionMark{
			QuestionNumber: spec.QuestionNumber,
			MarksObtained:  clamp(marks, spec.MaxMarks),
			MaxMarks:       spec.MaxMarks,
		})
	}

	semester, err := parseNumber(field("semester"))
	if err != nil {
		return nil, fmt.Errorf("column Semester: %v", err)
	}
	r.Semester = semester

	if raw := field("rank"); raw != "" {
		rank, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("column Rank: invalid integer %q", raw)
		}
		r.Rank = &rank
	}

	return r, nil
}

func (c *Codec) header() string {
	cols := []string{"SeatNumber", "Name"}
	for _, q := range c.Schema {
		cols = append(cols, fmt.Sprintf("Q%d", q.QuestionNumber))
	}
	cols = append(cols, "ExamMarks", "Semester", "Percentage", "Grade", "Rank", "Remarks", "Teacher", "Date")
	return strings.Join(cols, ",")
}

// parseNumber treats an empty field as zero; a non-empty field must be a
// valid non-negative number.
func parseNumber(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}

func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func splitLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
