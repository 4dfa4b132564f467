package predictor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Session owns one user's result store: two append-only lists in submission order.
// Nothing is ever cleared, merged or persisted.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	sensitivity []SensitivityRecord
	detection   []DetectionRecord
	predictor   *Predictor
}

// NewSession creates a session with empty result lists.
func NewSession(id string, predictor *Predictor) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		predictor: predictor,
	}
}

// PredictSensitivity validates the form, calls the model and appends one record.
// Empty drug or cell line returns ErrValidation and appends nothing.
// A failed call is still appended, with the error text as the prediction.
func (s *Session) PredictSensitivity(ctx context.Context, drug, cellLine string) (Outcome, error) {
	if drug == "" || cellLine == "" {
		return Outcome{}, fmt.Errorf("%w: please fill out both drug and cell line fields", ErrValidation)
	}
	out := s.predictor.run(ctx, "sensitivity", BuildSensitivityPrompt(drug, cellLine))

	s.mu.Lock()
	s.sensitivity = append(s.sensitivity, SensitivityRecord{
		Drug:       drug,
		CellLine:   cellLine,
		Prediction: out.Verdict,
	})
	s.mu.Unlock()
	return out, nil
}

// DetectCancer formats the clinical fields, calls the model and appends one record.
func (s *Session) DetectCancer(ctx context.Context, fields ClinicalFields) (Outcome, error) {
	fields.LymphNodes = strings.ToLower(fields.LymphNodes)
	fields.Menopause = strings.ToLower(fields.Menopause)
	if err := fields.Validate(); err != nil {
		return Outcome{}, err
	}
	info := fields.Format()
	out := s.predictor.run(ctx, "detection", BuildDetectionPrompt(info))

	s.mu.Lock()
	s.detection = append(s.detection, DetectionRecord{
		ClinicalInfo: info,
		Diagnosis:    out.Verdict,
	})
	s.mu.Unlock()
	return out, nil
}

// SensitivityRecords returns a copy of the sensitivity list.
func (s *Session) SensitivityRecords() []SensitivityRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SensitivityRecord(nil), s.sensitivity...)
}

// DetectionRecords returns a copy of the detection list.
func (s *Session) DetectionRecords() []DetectionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DetectionRecord(nil), s.detection...)
}
