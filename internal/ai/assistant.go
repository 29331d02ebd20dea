// Package ai is the thin client for the chat-completion assistant that
// explains a student's results. One outbound call per message; no retries,
// no streaming.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/exam-portal/backend/internal/models"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
	}
}

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends the system prompt, the prior turns and the new user message,
// and returns the assistant's reply. Failures surface as errors; the caller
// leaves conversation state unchanged.
func (c *Client) Chat(ctx context.Context, settings models.AISettings, system string, history []Message, userMessage string) (string, error) {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: system})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: userMessage})

	body, err := json.Marshal(chatRequest{
		Model:       settings.Model,
		Messages:    messages,
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+settings.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("chat request failed: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("chat request failed with status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// BuildSystemPrompt renders the full result record into the assistant's
// system prompt.
func BuildSystemPrompt(r models.ExamResult) string {
	var questionDetails []string
	for _, q := range r.Questions {
		pct := 0.0
		if q.MaxMarks > 0 {
			pct = q.MarksObtained / q.MaxMarks * 100
		}
		questionDetails = append(questionDetails,
			fmt.Sprintf("Q%d: %g/%g (%.1f%%)", q.QuestionNumber, q.MarksObtained, q.MaxMarks, pct))
	}

	rankLine := ""
	if r.Rank != nil {
		rankLine = fmt.Sprintf("- Rank: #%d\n", *r.Rank)
	}

	teacherDetail := r.Teacher.Department
	if r.Teacher.Designation != "" {
		teacherDetail = r.Teacher.Designation
	}

	return fmt.Sprintf(`You are a helpful, encouraging educational AI assistant analyzing %s exam results for a student.

Student's Exam Results:
- Name: %s
- Subject: %s
- Exam: %s
- Date: %s
- Exam Score: %g/%g
- Semester Score: %g/%g (%g%%)
- Grade: %s
%s
Question-wise Performance:
%s

Teacher: %s (%s)

Your role:
1. Provide constructive feedback on their performance
2. Identify areas of strength and improvement based on question topics
3. Offer specific, actionable study tips
4. Be encouraging and supportive
5. Answer questions about their results

Keep responses concise but helpful. Use emojis sparingly for friendliness.`,
		r.Subject,
		r.StudentName,
		r.Subject,
		r.ExamName,
		r.ExamDate,
		r.ExamMarks, models.TotalExamMarks,
		r.SemesterMarks, models.TotalSemesterMarks, r.Percentage,
		r.Grade,
		rankLine,
		strings.Join(questionDetails, "\n"),
		r.Teacher.Name, teacherDetail,
	)
}
