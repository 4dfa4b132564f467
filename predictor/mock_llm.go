package predictor

import (
	"context"
	"strings"
)

// MockLLM is an offline stand-in for local demos; it never calls a model.
// The verdict is derived from the prompt so repeated runs are stable.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt string) (string, error) {
	var sb strings.Builder
	sb.WriteString("Mock response generated offline.\n")
	// user input is only ever appended, so the preamble identifies the prompt kind
	if strings.HasPrefix(prompt, detectionInstructions) {
		if strings.Contains(prompt, "Lymph Node Status: positive") {
			sb.WriteString("Lymph node involvement raises the likelihood of malignancy.\n")
			sb.WriteString("Diagnosis: Positive")
		} else {
			sb.WriteString("No nodal involvement reported.\n")
			sb.WriteString("Diagnosis: Negative")
		}
		return sb.String(), nil
	}
	if len(prompt)%2 == 0 {
		sb.WriteString("Prediction: Sensitive")
	} else {
		sb.WriteString("Prediction: Resistant")
	}
	return sb.String(), nil
}
