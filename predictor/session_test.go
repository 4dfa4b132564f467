package predictor

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestPredictSensitivityAppendsOneRecord(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"USP1 inhibition impairs DNA repair.\nPrediction: Sensitive"}}
	sess := newTestSession(t, llm)

	out, err := sess.PredictSensitivity(context.Background(), "ML323", "USP1")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Prediction: Sensitive", out.Verdict)
	assert.Equal(t, 1, llm.calls())
	assert.Equal(t, []SensitivityRecord{
		{Drug: "ML323", CellLine: "USP1", Prediction: "Prediction: Sensitive"},
	}, sess.SensitivityRecords())
	assert.Equal(t, 0, len(sess.DetectionRecords()))
}

func TestPredictSensitivityRejectsEmptyFields(t *testing.T) {
	tests := []struct {
		name     string
		drug     string
		cellLine string
	}{
		{name: "empty drug", drug: "", cellLine: "USP1"},
		{name: "empty cell line", drug: "ML323", cellLine: ""},
		{name: "both empty", drug: "", cellLine: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &scriptedLLM{replies: []string{"Prediction: Sensitive"}}
			sess := newTestSession(t, llm)

			_, err := sess.PredictSensitivity(context.Background(), tt.drug, tt.cellLine)

			assert.Equal(t, true, errors.Is(err, ErrValidation))
			assert.Equal(t, 0, llm.calls())
			assert.Equal(t, 0, len(sess.SensitivityRecords()))
		})
	}
}

func TestCallErrorIsStoredAsVerdict(t *testing.T) {
	callErr := errors.New("403 API key not valid")
	llm := &scriptedLLM{err: callErr}
	sess := newTestSession(t, llm)

	out, err := sess.PredictSensitivity(context.Background(), "ML323", "USP1")
	assert.Equal(t, nil, err)
	assert.Equal(t, callErr, out.Err)
	assert.Equal(t, "403 API key not valid", out.Verdict)

	recs := sess.SensitivityRecords()
	assert.Equal(t, 1, len(recs))
	assert.Equal(t, "403 API key not valid", recs[0].Prediction)

	dout, err := sess.DetectCancer(context.Background(), DefaultClinicalFields())
	assert.Equal(t, nil, err)
	assert.Equal(t, callErr, dout.Err)
	drecs := sess.DetectionRecords()
	assert.Equal(t, 1, len(drecs))
	assert.Equal(t, "403 API key not valid", drecs[0].Diagnosis)
}

func TestUnavailableClientPollutesRecords(t *testing.T) {
	sess := newTestSession(t, Unavailable(errors.New("gemini api key missing")))

	out, err := sess.PredictSensitivity(context.Background(), "ML323", "USP1")

	assert.Equal(t, nil, err)
	assert.NotEqual(t, nil, out.Err)
	assert.Equal(t, "llm client not configured: gemini api key missing", sess.SensitivityRecords()[0].Prediction)
}

func TestDetectCancerStoresFormattedClinicalInfo(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"Grade 3 with nodal spread.\nDiagnosis: Positive"}}
	sess := newTestSession(t, llm)
	fields := ClinicalFields{Age: 62, TumorSizeMM: 35, LymphNodes: "positive", Menopause: "post", Grade: 3}

	out, err := sess.DetectCancer(context.Background(), fields)

	assert.Equal(t, nil, err)
	assert.Equal(t, "Diagnosis: Positive", out.Verdict)
	assert.Equal(t, []DetectionRecord{{
		ClinicalInfo: "Age: 62, Tumor Size: 35mm, Lymph Node Status: positive, Menopause Status: post, Tumor Grade: 3",
		Diagnosis:    "Diagnosis: Positive",
	}}, sess.DetectionRecords())
	assert.Equal(t, BuildDetectionPrompt(fields.Format()), llm.prompts[0])
}

func TestDetectCancerRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClinicalFields)
	}{
		{name: "age too low", mutate: func(c *ClinicalFields) { c.Age = 19 }},
		{name: "age too high", mutate: func(c *ClinicalFields) { c.Age = 101 }},
		{name: "tumor size zero", mutate: func(c *ClinicalFields) { c.TumorSizeMM = 0 }},
		{name: "unknown lymph status", mutate: func(c *ClinicalFields) { c.LymphNodes = "unknown" }},
		{name: "unknown menopause", mutate: func(c *ClinicalFields) { c.Menopause = "peri" }},
		{name: "grade four", mutate: func(c *ClinicalFields) { c.Grade = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &scriptedLLM{replies: []string{"Diagnosis: Negative"}}
			sess := newTestSession(t, llm)
			fields := DefaultClinicalFields()
			tt.mutate(&fields)

			_, err := sess.DetectCancer(context.Background(), fields)

			assert.Equal(t, true, errors.Is(err, ErrValidation))
			assert.Equal(t, 0, llm.calls())
			assert.Equal(t, 0, len(sess.DetectionRecords()))
		})
	}
}

func TestIdenticalSubmissionsAreNotDeduplicated(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"Prediction: Resistant", "Prediction: Sensitive"}}
	sess := newTestSession(t, llm)

	_, _ = sess.PredictSensitivity(context.Background(), "Paclitaxel", "MCF7")
	_, _ = sess.PredictSensitivity(context.Background(), "Paclitaxel", "MCF7")

	assert.Equal(t, 2, llm.calls())
	assert.Equal(t, []SensitivityRecord{
		{Drug: "Paclitaxel", CellLine: "MCF7", Prediction: "Prediction: Resistant"},
		{Drug: "Paclitaxel", CellLine: "MCF7", Prediction: "Prediction: Sensitive"},
	}, sess.SensitivityRecords())
}

func TestTrailingNewlineReplyIsTrimmedBeforeExtraction(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"Prediction: Sensitive\n"}}
	sess := newTestSession(t, llm)

	out, _ := sess.PredictSensitivity(context.Background(), "ML323", "USP1")

	assert.Equal(t, "Prediction: Sensitive", out.Verdict)
	assert.Equal(t, "Prediction: Sensitive", out.Raw)
}

func TestSessionsAreIsolated(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"Prediction: Sensitive"}}
	p, err := NewPredictor(llm)
	assert.Equal(t, nil, err)
	a := NewSession("a", p)
	b := NewSession("b", p)

	_, _ = a.PredictSensitivity(context.Background(), "ML323", "USP1")

	assert.Equal(t, 1, len(a.SensitivityRecords()))
	assert.Equal(t, 0, len(b.SensitivityRecords()))
}

func TestSnapshotsAreCopies(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"Prediction: Sensitive"}}
	sess := newTestSession(t, llm)
	_, _ = sess.PredictSensitivity(context.Background(), "ML323", "USP1")

	recs := sess.SensitivityRecords()
	recs[0].Prediction = "tampered"

	assert.Equal(t, "Prediction: Sensitive", sess.SensitivityRecords()[0].Prediction)
}

func TestNewPredictorRequiresClient(t *testing.T) {
	_, err := NewPredictor(nil)
	assert.NotEqual(t, nil, err)
}
