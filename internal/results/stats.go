package results

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/exam-portal/backend/internal/grading"
	"github.com/exam-portal/backend/internal/models"
)

// ComputeStats reduces the full result set into the dashboard summary.
// Returns nil for an empty set; callers must branch before rendering.
//
// Precondition: every result's Questions slice aligns positionally with the
// schema. A shorter slice is a schema violation and will panic on index.
func ComputeStats(rs []models.ExamResult, schema []models.QuestionSpec) *models.Stats {
	if len(rs) == 0 {
		return nil
	}

	total := len(rs)
	percentages := make([]float64, total)
	examMarks := make([]float64, total)
	passed := 0
	distribution := make(map[string]int)

	var top, lowest *models.ExamResult
	for i := range rs {
		r := &rs[i]
		percentages[i] = r.Percentage
		examMarks[i] = r.ExamMarks
		if grading.Passed(r.Percentage) {
			passed++
		}
		distribution[r.Grade]++

		// Strict comparisons keep the first-encountered result on ties.
		if top == nil || r.Percentage > top.Percentage {
			top = r
		}
		if lowest == nil || r.Percentage < lowest.Percentage {
			lowest = r
		}
	}

	avgPercentage, _ := stats.Mean(percentages)
	avgPercentage, _ = stats.Round(avgPercentage, 2)
	avgExamMarks, _ := stats.Mean(examMarks)
	avgExamMarks, _ = stats.Round(avgExamMarks, 2)

	questionStats := make([]models.QuestionStat, len(schema))
	for i, q := range schema {
		marks := make([]float64, total)
		for j := range rs {
			marks[j] = rs[j].Questions[i].MarksObtained
		}
		avg, _ := stats.Mean(marks)
		avgRounded, _ := stats.Round(avg, 2)
		questionStats[i] = models.QuestionStat{
			QuestionNumber: q.QuestionNumber,
			MaxMarks:       q.MaxMarks,
			AvgMarks:       avgRounded,
			AvgPercentage:  int(math.Round(avg / q.MaxMarks * 100)),
		}
	}

	return &models.Stats{
		TotalStudents:     total,
		AvgPercentage:     avgPercentage,
		AvgExamMarks:      avgExamMarks,
		PassedStudents:    passed,
		FailedStudents:    total - passed,
		PassRate:          int(math.Round(float64(passed) / float64(total) * 100)),
		GradeDistribution: distribution,
		QuestionStats:     questionStats,
		TopPerformer:      top,
		LowestPerformer:   lowest,
	}
}
