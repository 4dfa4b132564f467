package predictor

import (
	"fmt"
	"strings"
)

// TissueType is fixed; the sensitivity model only covers breast invasive carcinoma.
const TissueType = "BRCA"

const sensitivityInstructions = `
You are a biomedical expert AI assistant specialized in predicting anti-cancer drug sensitivity.

Your task is to predict whether a given drug is likely to be effective ("Sensitive") or not effective ("Resistant") for a specific cell line and cancer tissue type, based on known mechanisms, targets, and patterns.

Always end with: Prediction: Sensitive or Prediction: Resistant

Examples:
`

const detectionInstructions = `
You are a medical AI assistant that detects whether a patient is likely to have breast cancer based on clinical indicators.

The format of the input includes: Age, Tumor Size (in mm), Lymph Node Status (positive/negative), Menopause Status (pre/post), and Tumor Grade (1-3). Provide a short explanation and end with: "Diagnosis: Positive" or "Diagnosis: Negative".

Now respond to:
`

// Example is one worked few-shot case in the sensitivity prompt.
type Example struct {
	Tissue   string
	Drug     string
	CellLine string
	Verdict  string
}

// SensitivityExamples are the three shots shown to the model before the query.
var SensitivityExamples = []Example{
	{Tissue: "LUAD", Drug: "Gefitinib", CellLine: "PC9", Verdict: "Sensitive"},
	{Tissue: "BRCA", Drug: "Paclitaxel", CellLine: "MDA-MB-231", Verdict: "Resistant"},
	{Tissue: "COREAD", Drug: "Cetuximab", CellLine: "HCT116", Verdict: "Resistant"},
}

// SensitivityQuery is the user sentence interpolated into the prompt.
// Values go in verbatim: no escaping, no length limit.
func SensitivityQuery(drug, cellLine string) string {
	return fmt.Sprintf("The drug is %s. The cell line is %s.", drug, cellLine)
}

// BuildSensitivityPrompt assembles preamble, worked examples and the query.
func BuildSensitivityPrompt(drug, cellLine string) string {
	var sb strings.Builder
	sb.WriteString(sensitivityInstructions)
	for _, ex := range SensitivityExamples {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Tissue: %s\n", ex.Tissue))
		sb.WriteString(fmt.Sprintf("Drug: %s\n", ex.Drug))
		sb.WriteString(fmt.Sprintf("Cell line: %s\n", ex.CellLine))
		sb.WriteString(fmt.Sprintf("Prediction: %s\n", ex.Verdict))
	}
	sb.WriteString("\nNow respond to:\n")
	sb.WriteString(fmt.Sprintf("\nTissue: %s\n", TissueType))
	sb.WriteString(SensitivityQuery(drug, cellLine))
	return sb.String()
}

// BuildDetectionPrompt wraps the formatted clinical summary in the detection instructions.
func BuildDetectionPrompt(clinicalInfo string) string {
	return detectionInstructions + clinicalInfo + "\n"
}
