package predictor

import (
	"fmt"
	"strings"
)

// VerdictMode selects how the verdict line is picked out of the model reply.
type VerdictMode string

const (
	// VerdictPositional takes the last line, whatever it says.
	VerdictPositional VerdictMode = "positional"
	// VerdictMarker prefers the last "Prediction:"/"Diagnosis:" line and falls
	// back to positional extraction when no marker is present.
	VerdictMarker VerdictMode = "marker"
)

var verdictMarkers = []string{"Prediction:", "Diagnosis:"}

// ParseVerdictMode accepts "" as positional.
func ParseVerdictMode(s string) (VerdictMode, error) {
	switch VerdictMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", VerdictPositional:
		return VerdictPositional, nil
	case VerdictMarker:
		return VerdictMarker, nil
	default:
		return "", fmt.Errorf("unknown verdict mode %q", s)
	}
}

// LastLine splits on "\n" and returns the final element. A trailing newline
// therefore yields "".
func LastLine(text string) string {
	lines := strings.Split(text, "\n")
	return lines[len(lines)-1]
}

// ExtractVerdict trims the raw reply and picks the verdict line.
// Nothing checks that the chosen line is a real verdict. Trimming runs before
// LastLine, so a reply ending in "\n" keeps its last text line, not "".
func ExtractVerdict(raw string, mode VerdictMode) string {
	out := strings.TrimSpace(raw)
	if mode == VerdictMarker {
		lines := strings.Split(out, "\n")
		for i := len(lines) - 1; i >= 0; i-- {
			line := strings.TrimSpace(lines[i])
			for _, m := range verdictMarkers {
				if strings.HasPrefix(line, m) {
					return line
				}
			}
		}
	}
	return LastLine(out)
}

// ErrorVerdict is the text stored in place of a verdict when the call fails:
// the error string itself.
func ErrorVerdict(err error) string {
	return err.Error()
}
