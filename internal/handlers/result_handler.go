package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exam-portal/backend/internal/models"
	"github.com/exam-portal/backend/internal/results"
	"github.com/exam-portal/backend/internal/store"
)

type ResultHandler struct {
	store  *store.Store
	schema []models.QuestionSpec
}

func NewResultHandler(st *store.Store) *ResultHandler {
	return &ResultHandler{store: st, schema: models.DefaultQuestions}
}

// questionMarksRequest carries raw per-question marks; max marks always come
// from the configured schema, never from the client.
type questionMarksRequest []struct {
	QuestionNumber int     `json:"question_number"`
	MarksObtained  float64 `json:"marks_obtained"`
}

type createResultRequest struct {
	SeatNumber    string               `json:"seat_number" binding:"required"`
	StudentName   string               `json:"student_name" binding:"required"`
	ExamName      string               `json:"exam_name"`
	ExamDate      string               `json:"exam_date"`
	Subject       string               `json:"subject"`
	Questions     questionMarksRequest `json:"questions" binding:"required"`
	SemesterMarks float64              `json:"semester_marks"`
	Rank          *int                 `json:"rank"`
	Remarks       string               `json:"remarks"`
	Teacher       models.TeacherInfo   `json:"teacher"`
}

type updateResultRequest struct {
	SeatNumber    *string              `json:"seat_number"`
	StudentName   *string              `json:"student_name"`
	ExamName      *string              `json:"exam_name"`
	ExamDate      *string              `json:"exam_date"`
	Subject       *string              `json:"subject"`
	Questions     questionMarksRequest `json:"questions"`
	SemesterMarks *float64             `json:"semester_marks"`
	Rank          *int                 `json:"rank"`
	Remarks       *string              `json:"remarks"`
	Teacher       *models.TeacherInfo  `json:"teacher"`
}

func (h *ResultHandler) List(c *gin.Context) {
	rs, err := h.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rs)
}

func (h *ResultHandler) Get(c *gin.Context) {
	r, err := h.store.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

// Lookup is the public student-portal entry point: find a result by seat
// number, case-insensitively.
func (h *ResultHandler) Lookup(c *gin.Context) {
	seatNumber := c.Query("seat_number")
	if seatNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seat_number is required"})
		return
	}

	r, err := h.store.FindBySeat(seatNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No result found for this seat number"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ResultHandler) Create(c *gin.Context) {
	var req createResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions, err := h.buildQuestions(req.Questions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SemesterMarks < 0 || req.SemesterMarks > models.TotalSemesterMarks {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("semester_marks must be between 0 and %g", models.TotalSemesterMarks)})
		return
	}

	if req.ExamName == "" {
		req.ExamName = models.DefaultExamName
	}
	if req.Subject == "" {
		req.Subject = models.DefaultSubject
	}

	result := results.Build(results.Draft{
		SeatNumber:    req.SeatNumber,
		StudentName:   req.StudentName,
		ExamName:      req.ExamName,
		ExamDate:      req.ExamDate,
		Subject:       req.Subject,
		Questions:     questions,
		SemesterMarks: req.SemesterMarks,
		Rank:          req.Rank,
		Remarks:       req.Remarks,
		Teacher:       req.Teacher,
	})

	if err := h.store.Add(result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *ResultHandler) Update(c *gin.Context) {
	var req updateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := results.Update{
		SeatNumber:    req.SeatNumber,
		StudentName:   req.StudentName,
		ExamName:      req.ExamName,
		ExamDate:      req.ExamDate,
		Subject:       req.Subject,
		SemesterMarks: req.SemesterMarks,
		Rank:          req.Rank,
		Remarks:       req.Remarks,
		Teacher:       req.Teacher,
	}

	if req.Questions != nil {
		questions, err := h.buildQuestions(req.Questions)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update.Questions = questions
	}
	if req.SemesterMarks != nil && (*req.SemesterMarks < 0 || *req.SemesterMarks > models.TotalSemesterMarks) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("semester_marks must be between 0 and %g", models.TotalSemesterMarks)})
		return
	}

	updated, err := h.store.Update(c.Param("id"), update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ResultHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Result deleted"})
}

func (h *ResultHandler) Clear(c *gin.Context) {
	if err := h.store.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All results cleared"})
}

// buildQuestions validates the submitted marks against the schema: one entry
// per schema position, in order, clamped into [0, max].
func (h *ResultHandler) buildQuestions(req questionMarksRequest) ([]models.QuestionMark, error) {
	if len(req) != len(h.schema) {
		return nil, fmt.Errorf("expected %d question marks, got %d", len(h.schema), len(req))
	}

	questions := make([]models.QuestionMark, len(h.schema))
	for i, spec := range h.schema {
		if req[i].QuestionNumber != spec.QuestionNumber {
			return nil, fmt.Errorf("question %d out of order: got number %d", spec.QuestionNumber, req[i].QuestionNumber)
		}
		marks := req[i].MarksObtained
		if marks < 0 {
			marks = 0
		}
		if marks > spec.MaxMarks {
			marks = spec.MaxMarks
		}
		questions[i] = models.QuestionMark{
			QuestionNumber: spec.QuestionNumber,
			MarksObtained:  marks,
			MaxMarks:       spec.MaxMarks,
		}
	}
	return questions, nil
}
