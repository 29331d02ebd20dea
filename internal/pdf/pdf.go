// Package pdf renders exam results into printable documents: a report card
// per result and a roster table over the whole set.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/exam-portal/backend/internal/models"
)

// ResultCard renders one student's full report: header band, student info,
// question breakdown, summary, teacher block and optional remarks.
func ResultCard(r models.ExamResult) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	// Header band
	doc.SetFillColor(41, 65, 122)
	doc.Rect(0, 0, 210, 28, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 16)
	doc.SetXY(10, 8)
	doc.CellFormat(190, 8, r.ExamName, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.SetX(10)
	doc.CellFormat(190, 6, r.Subject, "", 1, "C", false, 0, "")

	doc.SetTextColor(0, 0, 0)
	doc.SetY(36)

	// Student info
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, "Student Information", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	infoRow(doc, "Seat Number", r.SeatNumber)
	infoRow(doc, "Name", r.StudentName)
	infoRow(doc, "Exam Date", r.ExamDate)

	// Question breakdown
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, "Question-wise Marks", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 234, 244)
	doc.CellFormat(40, 7, "Question", "1", 0, "C", true, 0, "")
	doc.CellFormat(40, 7, "Marks Obtained", "1", 0, "C", true, 0, "")
	doc.CellFormat(40, 7, "Max Marks", "1", 1, "C", true, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, q := range r.Questions {
		doc.CellFormat(40, 7, fmt.Sprintf("Q%d", q.QuestionNumber), "1", 0, "C", false, 0, "")
		doc.CellFormat(40, 7, formatMarks(q.MarksObtained), "1", 0, "C", false, 0, "")
		doc.CellFormat(40, 7, formatMarks(q.MaxMarks), "1", 1, "C", false, 0, "")
	}

	// Summary
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	infoRow(doc, "Exam Marks", fmt.Sprintf("%s / %s", formatMarks(r.ExamMarks), formatMarks(models.TotalExamMarks)))
	infoRow(doc, "Semester Marks", fmt.Sprintf("%s / %s", formatMarks(r.SemesterMarks), formatMarks(models.TotalSemesterMarks)))
	infoRow(doc, "Percentage", fmt.Sprintf("%.2f%%", r.Percentage))
	infoRow(doc, "Grade", r.Grade)
	if r.Rank != nil {
		infoRow(doc, "Rank", fmt.Sprintf("#%d", *r.Rank))
	}

	// Teacher block
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, "Teacher", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	infoRow(doc, "Name", r.Teacher.Name)
	infoRow(doc, "Department", r.Teacher.Department)
	if r.Teacher.Designation != "" {
		infoRow(doc, "Designation", r.Teacher.Designation)
	}

	if r.Remarks != "" {
		doc.Ln(4)
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 8, "Remarks", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "I", 10)
		doc.MultiCell(0, 6, r.Remarks, "", "L", false)
	}

	return output(doc)
}

// Roster renders the tabular overview of all results.
func Roster(rs []models.ExamResult) ([]byte, error) {
	doc := gofpdf.New("L", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 10, "Exam Results Roster", "", 1, "C", false, 0, "")
	doc.Ln(2)

	headers := []string{"Seat No", "Name", "Exam Marks", "Semester", "Percentage", "Grade", "Rank"}
	widths := []float64{30, 80, 30, 30, 35, 25, 25}

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 234, 244)
	for i, h := range headers {
		doc.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for _, r := range rs {
		rank := "-"
		if r.Rank != nil {
			rank = strconv.Itoa(*r.Rank)
		}
		row := []string{
			r.SeatNumber,
			r.StudentName,
			formatMarks(r.ExamMarks),
			formatMarks(r.SemesterMarks),
			fmt.Sprintf("%.2f%%", r.Percentage),
			r.Grade,
			rank,
		}
		for i, cell := range row {
			align := "C"
			if i == 1 {
				align = "L"
			}
			doc.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		doc.Ln(-1)
	}

	return output(doc)
}

func infoRow(doc *gofpdf.Fpdf, label, value string) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func formatMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func output(doc *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
