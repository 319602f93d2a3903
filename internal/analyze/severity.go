package analyze

import "gasscope/internal/model"

// ClassifySeverity maps a detector's total finding count to a severity
// bucket using the two configured cutoffs.
func ClassifySeverity(count, medium, high int) model.Severity {
	switch {
	case count >= high:
		return model.SeverityHigh
	case count >= medium:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}
