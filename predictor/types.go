package predictor

import (
	"errors"
	"fmt"
)

// ErrValidation marks form input that blocks the LLM call entirely.
var ErrValidation = errors.New("validation failed")

// SensitivityRecord is one stored drug sensitivity prediction.
type SensitivityRecord struct {
	Drug       string `json:"drug"`
	CellLine   string `json:"cell_line"`
	Prediction string `json:"prediction"`
}

// DetectionRecord is one stored cancer detection result.
type DetectionRecord struct {
	ClinicalInfo string `json:"clinical_info"`
	Diagnosis    string `json:"diagnosis"`
}

// Outcome describes a single prediction action as shown to the user.
// Err is set when the model call failed; Verdict then holds the error text.
type Outcome struct {
	Prompt  string
	Raw     string
	Verdict string
	Err     error
}

// Allowed values for the detection selectors.
var (
	LymphNodeOptions = []string{"positive", "negative"}
	MenopauseOptions = []string{"pre", "post"}
	GradeOptions     = []int{1, 2, 3}
)

// Bounds of the numeric detection inputs.
const (
	MinAge       = 20
	MaxAge       = 100
	MinTumorSize = 1
	MaxTumorSize = 100
)

// ClinicalFields are the structured detection inputs.
type ClinicalFields struct {
	Age         int
	TumorSizeMM int
	LymphNodes  string
	Menopause   string
	Grade       int
}

// DefaultClinicalFields mirrors the initial widget values of the detection form.
func DefaultClinicalFields() ClinicalFields {
	return ClinicalFields{
		Age:         45,
		TumorSizeMM: 20,
		LymphNodes:  LymphNodeOptions[0],
		Menopause:   MenopauseOptions[0],
		Grade:       GradeOptions[0],
	}
}

// Format renders the clinical summary stored alongside the diagnosis.
func (c ClinicalFields) Format() string {
	return fmt.Sprintf("Age: %d, Tumor Size: %dmm, Lymph Node Status: %s, Menopause Status: %s, Tumor Grade: %d",
		c.Age, c.TumorSizeMM, c.LymphNodes, c.Menopause, c.Grade)
}

// Validate enforces the bounded ranges and enumerations of the detection widgets.
func (c ClinicalFields) Validate() error {
	if c.Age < MinAge || c.Age > MaxAge {
		return fmt.Errorf("%w: age must be between %d and %d", ErrValidation, MinAge, MaxAge)
	}
	if c.TumorSizeMM < MinTumorSize || c.TumorSizeMM > MaxTumorSize {
		return fmt.Errorf("%w: tumor size must be between %d and %d mm", ErrValidation, MinTumorSize, MaxTumorSize)
	}
	if !contains(LymphNodeOptions, c.LymphNodes) {
		return fmt.Errorf("%w: lymph node status must be positive or negative", ErrValidation)
	}
	if !contains(MenopauseOptions, c.Menopause) {
		return fmt.Errorf("%w: menopause status must be pre or post", ErrValidation)
	}
	if !contains(GradeOptions, c.Grade) {
		return fmt.Errorf("%w: tumor grade must be 1, 2 or 3", ErrValidation)
	}
	return nil
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
