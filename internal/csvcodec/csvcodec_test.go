package csvcodec

import (
	"strings"
	"testing"

	"github.com/exam-portal/backend/internal/models"
	"github.com/exam-portal/backend/internal/results"
)

func fullMarksRow() string {
	return "OOP010,Test One,10,10,10,6,10,10,14,100,1,,Dr. X,2024-01-01"
}

const importHeader = "SeatNumber,Name,Q1,Q2,Q3,Q4,Q5,Q6,Q7,Semester,Rank,Remarks,Teacher,Date"

func TestDecodeSingleRow(t *testing.T) {
	c := New()
	parsed, report := c.Decode(importHeader + "\n" + fullMarksRow())

	if report.SuccessCount != 1 {
		t.Fatalf("SuccessCount = %d, expected 1 (errors: %v)", report.SuccessCount, report.Errors)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}

	r := parsed[0]
	if r.SeatNumber != "OOP010" || r.StudentName != "Test One" {
		t.Errorf("identity fields wrong: %q %q", r.SeatNumber, r.StudentName)
	}
	if r.ExamMarks != 70 {
		t.Errorf("ExamMarks = %v, expected 70", r.ExamMarks)
	}
	if r.Percentage != 100 {
		t.Errorf("Percentage = %v, expected 100.00", r.Percentage)
	}
	if r.Grade != "A+" {
		t.Errorf("Grade = %s, expected A+", r.Grade)
	}
	if r.Rank == nil || *r.Rank != 1 {
		t.Errorf("Rank = %v, expected 1", r.Rank)
	}
	if r.Teacher.Name != "Dr. X" {
		t.Errorf("Teacher = %q, expected Dr. X", r.Teacher.Name)
	}
	if r.ExamDate != "2024-01-01" {
		t.Errorf("ExamDate = %q, expected 2024-01-01", r.ExamDate)
	}
	if r.ID == "" || r.CreatedAt == "" {
		t.Error("imported rows must get fresh IDs and timestamps")
	}
}

func TestDecodeMalformedRowIsIsolated(t *testing.T) {
	c := New()
	input := importHeader + "\n" +
		fullMarksRow() + "\n" +
		"OOP011,Test Two,abc,10,10,6,10,10,14,90,,,Dr. X,2024-01-01\n" +
		"OOP012,Test Three,5,5,5,5,5,5,5,50,,,Dr. X,2024-01-01"

	parsed, report := c.Decode(input)

	if report.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, expected 2", report.SuccessCount)
	}
	if len(parsed) != 2 {
		t.Errorf("parsed %d rows, expected 2", len(parsed))
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 row error, got %v", report.Errors)
	}
	if report.Errors[0].Row != 2 {
		t.Errorf("error row = %d, expected 2", report.Errors[0].Row)
	}
	if !strings.Contains(report.Errors[0].Message, "Q1") {
		t.Errorf("error message %q should name the bad column", report.Errors[0].Message)
	}
}

func TestDecodeColumnOrderIndependence(t *testing.T) {
	c := New()
	input := "Name,Date,Teacher,Remarks,Rank,Semester,Q7,Q6,Q5,Q4,Q3,Q2,Q1,SeatNumber\n" +
		"Test One,2024-01-01,Dr. X,Good,1,83,14,10,10,6,10,10,10,OOP010"

	parsed, report := c.Decode(input)
	if report.SuccessCount != 1 {
		t.Fatalf("SuccessCount = %d, expected 1 (errors: %v)", report.SuccessCount, report.Errors)
	}

	r := parsed[0]
	if r.SeatNumber != "OOP010" {
		t.Errorf("SeatNumber = %q, expected OOP010", r.SeatNumber)
	}
	if r.ExamMarks != 70 {
		t.Errorf("ExamMarks = %v, expected 70", r.ExamMarks)
	}
	if r.Remarks != "Good" {
		t.Errorf("Remarks = %q, expected Good", r.Remarks)
	}
}

func TestDecodeClampsQuestionMarks(t *testing.T) {
	c := New()
	input := importHeader + "\n" +
		"OOP013,Clamped,99,10,10,6,10,10,14,80,,,Dr. X,2024-01-01"

	parsed, report := c.Decode(input)
	if report.SuccessCount != 1 {
		t.Fatalf("SuccessCount = %d, expected 1 (errors: %v)", report.SuccessCount, report.Errors)
	}
	if got := parsed[0].Questions[0].MarksObtained; got != 10 {
		t.Errorf("Q1 marks = %v, expected clamp to max 10", got)
	}
	if parsed[0].ExamMarks != 70 {
		t.Errorf("ExamMarks = %v, expected 70 after clamping", parsed[0].ExamMarks)
	}
}

func TestDecodeEmptyNumericFieldsDefaultToZero(t *testing.T) {
	c := New()
	input := importHeader + "\n" +
		"OOP014,Defaulted,,,,,,,,,,,Dr. X,2024-01-01"

	parsed, report := c.Decode(input)
	if report.SuccessCount != 1 {
		t.Fatalf("SuccessCount = %d, expected 1 (errors: %v)", report.SuccessCount, report.Errors)
	}

	r := parsed[0]
	if r.ExamMarks != 0 || r.SemesterMarks != 0 {
		t.Errorf("expected zero marks, got exam=%v semester=%v", r.ExamMarks, r.SemesterMarks)
	}
	if r.Grade != "F" {
		t.Errorf("Grade = %s, expected F", r.Grade)
	}
	if r.Rank != nil {
		t.Errorf("Rank = %v, expected nil for empty field", r.Rank)
	}
}

func TestDecodeMissingIdentity(t *testing.T) {
	c := New()
	input := importHeader + "\n" +
		",No Seat,5,5,5,5,5,5,5,50,,,Dr. X,2024-01-01\n" +
		"OOP015,,5,5,5,5,5,5,5,50,,,Dr. X,2024-01-01"

	_, report := c.Decode(input)
	if report.SuccessCount != 0 {
		t.Errorf("SuccessCount = %d, expected 0", report.SuccessCount)
	}
	if len(report.Errors) != 2 {
		t.Errorf("expected 2 row errors, got %v", report.Errors)
	}
}

func TestDecodeMissingSeatNumberColumn(t *testing.T) {
	c := New()
	_, report := c.Decode("Name,Q1\nTest,5")

	if report.SuccessCount != 0 || len(report.Errors) != 1 {
		t.Fatalf("expected a single fatal error, got %+v", report)
	}
	if report.Errors[0].Row != 0 {
		t.Errorf("header error should be reported as row 0, got %d", report.Errors[0].Row)
	}
}

func TestEncodeHeader(t *testing.T) {
	c := New()
	out := c.Encode(nil)

	expected := "SeatNumber,Name,Q1,Q2,Q3,Q4,Q5,Q6,Q7,ExamMarks,Semester,Percentage,Grade,Rank,Remarks,Teacher,Date"
	if out != expected {
		t.Errorf("header = %q, expected %q", out, expected)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := New()

	rank := 2
	original := results.Build(results.Draft{
		SeatNumber:  "OOP021",
		StudentName: "Round Trip",
		ExamName:    models.DefaultExamName,
		ExamDate:    "2024-12-15",
		Subject:     models.DefaultSubject,
		Questions: []models.QuestionMark{
			{QuestionNumber: 1, MarksObtained: 8, MaxMarks: 10},
			{QuestionNumber: 2, MarksObtained: 9, MaxMarks: 10},
			{QuestionNumber: 3, MarksObtained: 7, MaxMarks: 10},
			{QuestionNumber: 4, MarksObtained: 5, MaxMarks: 6},
			{QuestionNumber: 5, MarksObtained: 8, MaxMarks: 10},
			{QuestionNumber: 6, MarksObtained: 9, MaxMarks: 10},
			{QuestionNumber: 7, MarksObtained: 12, MaxMarks: 14},
		},
		SemesterMarks: 83,
		Rank:          &rank,
		Remarks:       "Solid work",
		Teacher:       models.TeacherInfo{Name: "Dr. Priya Mehta", Department: "Computer Science"},
	})

	parsed, report := c.Decode(c.Encode([]models.ExamResult{original}))
	if report.SuccessCount != 1 {
		t.Fatalf("SuccessCount = %d, expected 1 (errors: %v)", report.SuccessCount, report.Errors)
	}

	got := parsed[0]
	if got.SeatNumber != original.SeatNumber || got.StudentName != original.StudentName {
		t.Error("identity fields did not round-trip")
	}
	for i := range original.Questions {
		if got.Questions[i].MarksObtained != original.Questions[i].MarksObtained {
			t.Errorf("Q%d marks = %v, expected %v", i+1, got.Questions[i].MarksObtained, original.Questions[i].MarksObtained)
		}
	}
	if got.SemesterMarks != original.SemesterMarks || got.Percentage != original.Percentage || got.Grade != original.Grade {
		t.Error("derived fields did not round-trip")
	}
	if got.ID == original.ID {
		t.Error("import must assign fresh IDs")
	}
}
