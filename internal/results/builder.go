package results

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/exam-portal/backend/internal/grading"
	"github.com/exam-portal/backend/internal/models"
)

// Draft carries the raw fields of a result before derivation. Question marks
// are taken as supplied; clamping to each question's max is the caller's
// responsibility (the HTTP handlers and the CSV importer both clamp).
type Draft struct {
	SeatNumber    string
	StudentName   string
	ExamName      string
	ExamDate      string
	Subject       string
	Questions     []models.QuestionMark
	SemesterMarks float64
	Rank          *int
	Remarks       string
	Teacher       models.TeacherInfo
}

// Update describes a partial edit. Nil fields leave the stored value
// untouched. Supplying Questions or SemesterMarks triggers recomputation of
// the derived fields.
type Update struct {
	SeatNumber    *string
	StudentName   *string
	ExamName      *string
	ExamDate      *string
	Subject       *string
	Questions     []models.QuestionMark
	SemesterMarks *float64
	Rank          *int
	Remarks       *string
	Teacher       *models.TeacherInfo
}

// Build derives a full ExamResult from a draft: exam total, percentage,
// grade, a fresh ID and creation timestamps. It never fails; an empty
// question list yields an exam total of zero.
func Build(d Draft) models.ExamResult {
	now := time.Now().UTC().Format(time.RFC3339)
	pct := Percentage(d.SemesterMarks)

	return models.ExamResult{
		ID:            uuid.New().String(),
		SeatNumber:    d.SeatNumber,
		StudentName:   d.StudentName,
		ExamName:      d.ExamName,
		ExamDate:      d.ExamDate,
		Subject:       d.Subject,
		Questions:     d.Questions,
		ExamMarks:     sumMarks(d.Questions),
		SemesterMarks: d.SemesterMarks,
		Percentage:    pct,
		Grade:         grading.Grade(pct),
		Rank:          d.Rank,
		Remarks:       d.Remarks,
		Teacher:       d.Teacher,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Apply merges an update into an existing result and recomputes the derived
// fields. ID and CreatedAt are preserved; UpdatedAt is always refreshed.
func Apply(r models.ExamResult, u Update) models.ExamResult {
	if u.SeatNumber != nil {
		r.SeatNumber = *u.SeatNumber
	}
	if u.StudentName != nil {
		r.StudentName = *u.StudentName
	}
	if u.ExamName != nil {
		r.ExamName = *u.ExamName
	}
	if u.ExamDate != nil {
		r.ExamDate = *u.ExamDate
	}
	if u.Subject != nil {
		r.Subject = *u.Subject
	}
	if u.Questions != nil {
		r.Questions = u.Questions
	}
	if u.SemesterMarks != nil {
		r.SemesterMarks = *u.SemesterMarks
	}
	if u.Rank != nil {
		r.Rank = u.Rank
	}
	if u.Remarks != nil {
		r.Remarks = *u.Remarks
	}
	if u.Teacher != nil {
		r.Teacher = *u.Teacher
	}

	r.ExamMarks = sumMarks(r.Questions)
	r.Percentage = Percentage(r.SemesterMarks)
	r.Grade = grading.Grade(r.Percentage)
	r.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	return r
}

// Percentage converts semester marks to a percentage rounded to two decimals.
func Percentage(semesterMarks float64) float64 {
	return round2(semesterMarks / models.TotalSemesterMarks * 100)
}

func sumMarks(questions []models.QuestionMark) float64 {
	total := 0.0
	for _, q := range questions {
		total += q.MarksObtained
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
