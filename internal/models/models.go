package models

import "time"

// QuestionMark holds a student's score on a single exam question.
type QuestionMark struct {
	QuestionNumber int     `json:"question_number"`
	MarksObtained  float64 `json:"marks_obtained"`
	MaxMarks       float64 `json:"max_marks"`
}

// TeacherInfo is embedded in a result; teachers are not referenced entities.
type TeacherInfo struct {
	Name        string `json:"name"`
	Department  string `json:"department"`
	Email       string `json:"email,omitempty"`
	Designation string `json:"designation,omitempty"`
}

// ExamResult is the central entity of the portal. Derived fields (ExamMarks,
// Percentage, Grade) are computed by the results builder, never supplied by
// callers.
type ExamResult struct {
	ID            string         `json:"id"`
	SeatNumber    string         `json:"seat_number"`
	StudentName   string         `json:"student_name"`
	ExamName      string         `json:"exam_name"`
	ExamDate      string         `json:"exam_date"`
	Subject       string         `json:"subject"`
	Questions     []QuestionMark `json:"questions"`
	ExamMarks     float64        `json:"exam_marks"`
	SemesterMarks float64        `json:"semester_marks"`
	Percentage    float64        `json:"percentage"`
	Grade         string         `json:"grade"`
	Rank          *int           `json:"rank,omitempty"`
	Remarks       string         `json:"remarks,omitempty"`
	Teacher       TeacherInfo    `json:"teacher"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
}

// AISettings configures the chat assistant integration.
type AISettings struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

// DefaultAIModel is used when no model has been configured.
const DefaultAIModel = "gpt-4o-mini"

// QuestionSpec describes one entry of the configured question schema.
type QuestionSpec struct {
	QuestionNumber int     `json:"question_number"`
	MaxMarks       float64 `json:"max_marks"`
}

// DefaultQuestions is the configured exam question schema. Every result's
// Questions slice must align positionally with it; the statistics aggregator
// relies on that alignment.
var DefaultQuestions = []QuestionSpec{
	{QuestionNumber: 1, MaxMarks: 10},
	{QuestionNumber: 2, MaxMarks: 10},
	{QuestionNumber: 3, MaxMarks: 10},
	{QuestionNumber: 4, MaxMarks: 6},
	{QuestionNumber: 5, MaxMarks: 10},
	{QuestionNumber: 6, MaxMarks: 10},
	{QuestionNumber: 7, MaxMarks: 14},
}

const (
	TotalExamMarks     = 70.0
	TotalSemesterMarks = 100.0

	DefaultExamName = "OOPs Mid-Semester Examination 2024"
	DefaultSubject  = "Object Oriented Programming"
)

// QuestionStat is the per-question slice of the statistics summary.
type QuestionStat struct {
	QuestionNumber int     `json:"question_number"`
	MaxMarks       float64 `json:"max_marks"`
	AvgMarks       float64 `json:"avg_marks"`
	AvgPercentage  int     `json:"avg_percentage"`
}

// Stats summarizes the full result set for the admin dashboard.
type Stats struct {
	TotalStudents     int            `json:"total_students"`
	AvgPercentage     float64        `json:"avg_percentage"`
	AvgExamMarks      float64        `json:"avg_exam_marks"`
	PassedStudents    int            `json:"passed_students"`
	FailedStudents    int            `json:"failed_students"`
	PassRate          int            `json:"pass_rate"`
	GradeDistribution map[string]int `json:"grade_distribution"`
	QuestionStats     []QuestionStat `json:"question_stats"`
	TopPerformer      *ExamResult    `json:"top_performer,omitempty"`
	LowestPerformer   *ExamResult    `json:"lowest_performer,omitempty"`
}

// KVEntry backs the key-value persistence adapter. Values are JSON payloads.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
