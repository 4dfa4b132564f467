package predictor

import "sort"

// LabelCount is one bar or slice of a verdict chart.
type LabelCount struct {
	Label string
	Count int
}

// Tally counts label frequencies, most frequent first; ties keep first-seen order.
func Tally(labels []string) []LabelCount {
	index := make(map[string]int, len(labels))
	var counts []LabelCount
	for _, l := range labels {
		if i, ok := index[l]; ok {
			counts[i].Count++
			continue
		}
		index[l] = len(counts)
		counts = append(counts, LabelCount{Label: l, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// PredictionLabels extracts the prediction column.
func PredictionLabels(records []SensitivityRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Prediction)
	}
	return out
}

// DiagnosisLabels extracts the diagnosis column.
func DiagnosisLabels(records []DetectionRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Diagnosis)
	}
	return out
}
