package results

import (
	"testing"

	"github.com/exam-portal/backend/internal/models"
)

var testSchema = []models.QuestionSpec{
	{QuestionNumber: 1, MaxMarks: 10},
	{QuestionNumber: 2, MaxMarks: 20},
}

func resultWith(seat string, semester float64, q1, q2 float64) models.ExamResult {
	return Build(Draft{
		SeatNumber:  seat,
		StudentName: "Student " + seat,
		Questions: []models.QuestionMark{
			{QuestionNumber: 1, MarksObtained: q1, MaxMarks: 10},
			{QuestionNumber: 2, MarksObtained: q2, MaxMarks: 20},
		},
		SemesterMarks: semester,
	})
}

func TestComputeStatsEmpty(t *testing.T) {
	if got := ComputeStats(nil, testSchema); got != nil {
		t.Errorf("ComputeStats(empty) = %+v, expected nil", got)
	}
	if got := ComputeStats([]models.ExamResult{}, testSchema); got != nil {
		t.Errorf("ComputeStats(empty slice) = %+v, expected nil", got)
	}
}

func TestComputeStatsUniformSet(t *testing.T) {
	rs := []models.ExamResult{
		resultWith("S1", 75, 5, 10),
		resultWith("S2", 75, 5, 10),
		resultWith("S3", 75, 5, 10),
	}

	s := ComputeStats(rs, testSchema)
	if s == nil {
		t.Fatal("expected stats, got nil")
	}
	if s.TotalStudents != 3 {
		t.Errorf("TotalStudents = %d, expected 3", s.TotalStudents)
	}
	if s.AvgPercentage != 75 {
		t.Errorf("AvgPercentage = %v, expected 75", s.AvgPercentage)
	}
	if s.AvgExamMarks != 15 {
		t.Errorf("AvgExamMarks = %v, expected 15", s.AvgExamMarks)
	}
}

func TestComputeStatsPassRate(t *testing.T) {
	t.Run("All Passing", func(t *testing.T) {
		rs := []models.ExamResult{
			resultWith("S1", 80, 5, 10),
			resultWith("S2", 40, 5, 10),
		}
		s := ComputeStats(rs, testSchema)
		if s.PassRate != 100 {
			t.Errorf("PassRate = %d, expected 100", s.PassRate)
		}
		if s.PassedStudents != 2 || s.FailedStudents != 0 {
			t.Errorf("passed/failed = %d/%d, expected 2/0", s.PassedStudents, s.FailedStudents)
		}
	})

	t.Run("All Failing", func(t *testing.T) {
		rs := []models.ExamResult{
			resultWith("S1", 20, 2, 3),
			resultWith("S2", 39, 2, 3),
		}
		s := ComputeStats(rs, testSchema)
		if s.PassRate != 0 {
			t.Errorf("PassRate = %d, expected 0", s.PassRate)
		}
	})

	t.Run("Mixed", func(t *testing.T) {
		rs := []models.ExamResult{
			resultWith("S1", 80, 5, 10),
			resultWith("S2", 20, 2, 3),
			resultWith("S3", 55, 5, 10),
		}
		s := ComputeStats(rs, testSchema)
		if s.PassRate != 67 {
			t.Errorf("PassRate = %d, expected 67", s.PassRate)
		}
	})
}

func TestComputeStatsGradeDistribution(t *testing.T) {
	rs := []models.ExamResult{
		resultWith("S1", 95, 5, 10), // A+
		resultWith("S2", 95, 5, 10), // A+
		resultWith("S3", 65, 5, 10), // B
		resultWith("S4", 10, 1, 1),  // F
	}

	s := ComputeStats(rs, testSchema)

	sum := 0
	for _, count := range s.GradeDistribution {
		sum += count
	}
	if sum != s.TotalStudents {
		t.Errorf("distribution counts sum to %d, expected %d", sum, s.TotalStudents)
	}
	if s.GradeDistribution["A+"] != 2 {
		t.Errorf("A+ count = %d, expected 2", s.GradeDistribution["A+"])
	}
	if _, ok := s.GradeDistribution["C"]; ok {
		t.Error("distribution contains a grade no result has")
	}
}

func TestComputeStatsQuestionStats(t *testing.T) {
	rs := []models.ExamResult{
		resultWith("S1", 50, 4, 10),
		resultWith("S2", 50, 6, 20),
	}

	s := ComputeStats(rs, testSchema)
	if len(s.QuestionStats) != len(testSchema) {
		t.Fatalf("QuestionStats length = %d, expected %d", len(s.QuestionStats), len(testSchema))
	}

	q1 := s.QuestionStats[0]
	if q1.AvgMarks != 5 {
		t.Errorf("Q1 AvgMarks = %v, expected 5", q1.AvgMarks)
	}
	if q1.AvgPercentage != 50 {
		t.Errorf("Q1 AvgPercentage = %d, expected 50", q1.AvgPercentage)
	}

	q2 := s.QuestionStats[1]
	if q2.AvgMarks != 15 {
		t.Errorf("Q2 AvgMarks = %v, expected 15", q2.AvgMarks)
	}
	if q2.AvgPercentage != 75 {
		t.Errorf("Q2 AvgPercentage = %d, expected 75", q2.AvgPercentage)
	}
}

func TestComputeStatsPerformers(t *testing.T) {
	rs := []models.ExamResult{
		resultWith("S1", 60, 5, 10),
		resultWith("S2", 90, 5, 10),
		resultWith("S3", 30, 5, 10),
		resultWith("S4", 90, 5, 10), // ties with S2; first encountered wins
		resultWith("S5", 30, 5, 10), // ties with S3; first encountered wins
	}

	s := ComputeStats(rs, testSchema)
	if s.TopPerformer == nil || s.TopPerformer.SeatNumber != "S2" {
		t.Errorf("TopPerformer = %+v, expected S2", s.TopPerformer)
	}
	if s.LowestPerformer == nil || s.LowestPerformer.SeatNumber != "S3" {
		t.Errorf("LowestPerformer = %+v, expected S3", s.LowestPerformer)
	}
}
