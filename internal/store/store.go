package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/exam-portal/backend/internal/models"
	"github.com/exam-portal/backend/internal/results"
)

var ErrNotFound = errors.New("result not found")

// Store is the typed persistence adapter over the KV port. The result list
// is held as one JSON array under KeyResults; every mutation is a
// read-modify-write of the whole list, serialized by the mutex.
type Store struct {
	kv KV
	mu sync.Mutex
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

// List returns a snapshot of all stored results.
func (s *Store) List() ([]models.ExamResult, error) {
	raw, err := s.kv.Get(KeyResults, "[]")
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	var rs []models.ExamResult
	if err := json.Unmarshal([]byte(raw), &rs); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return rs, nil
}

// Get returns the result with the given ID.
func (s *Store) Get(id string) (*models.ExamResult, error) {
	rs, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range rs {
		if rs[i].ID == id {
			return &rs[i], nil
		}
	}
	return nil, ErrNotFound
}

// FindBySeat looks a result up by seat number, case-insensitively. Seat
// numbers are not guaranteed unique; the first match wins.
func (s *Store) FindBySeat(seatNumber string) (*models.ExamResult, error) {
	rs, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range rs {
		if strings.EqualFold(rs[i].SeatNumber, seatNumber) {
			return &rs[i], nil
		}
	}
	return nil, ErrNotFound
}

// Add appends a single result.
func (s *Store) Add(r models.ExamResult) error {
	return s.Append([]models.ExamResult{r})
}

// Append adds a batch of results in one write (CSV import).
func (s *Store) Append(batch []models.ExamResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, err := s.List()
	if err != nil {
		return err
	}
	return s.save(append(rs, batch...))
}

// Update applies a partial edit to the result with the given ID and returns
// the updated record.
func (s *Store) Update(id string, u results.Update) (*models.ExamResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range rs {
		if rs[i].ID == id {
			rs[i] = results.Apply(rs[i], u)
			if err := s.save(rs); err != nil {
				return nil, err
			}
			return &rs[i], nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the result with the given ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, err := s.List()
	if err != nil {
		return err
	}
	kept := rs[:0]
	for _, r := range rs {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(rs) {
		return ErrNotFound
	}
	return s.save(kept)
}

// Clear removes every stored result.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save([]models.ExamResult{})
}

func (s *Store) save(rs []models.ExamResult) error {
	raw, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := s.kv.Set(KeyResults, string(raw)); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// AISettings reads the stored assistant settings, defaulting to an
// unconfigured state with the default model.
func (s *Store) AISettings() (models.AISettings, error) {
	fallback, _ := json.Marshal(models.AISettings{Model: models.DefaultAIModel})
	raw, err := s.kv.Get(KeyAISettings, string(fallback))
	if err != nil {
		return models.AISettings{}, fmt.Errorf("read ai settings: %w", err)
	}

	var settings models.AISettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return models.AISettings{}, fmt.Errorf("decode ai settings: %w", err)
	}
	return settings, nil
}

func (s *Store) SaveAISettings(settings models.AISettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.kv.Set(KeyAISettings, string(raw))
}

// AdminAuthenticated reads the persisted admin session flag.
func (s *Store) AdminAuthenticated() (bool, error) {
	raw, err := s.kv.Get(KeyAdminAuth, "false")
	if err != nil {
		return false, err
	}
	return raw == "true", nil
}

func (s *Store) SetAdminAuthenticated(authenticated bool) error {
	if authenticated {
		return s.kv.Set(KeyAdminAuth, "true")
	}
	return s.kv.Set(KeyAdminAuth, "false")
}
