package analyze

import (
	"testing"

	"gasscope/internal/model"
)

func TestClassifySeverity(t *testing.T) {
	cases := []struct {
		count int
		want  model.Severity
	}{
		{0, model.SeverityLow},
		{1, model.SeverityLow},
		{2, model.SeverityMedium},
		{3, model.SeverityHigh},
		{10, model.SeverityHigh},
	}

	for _, tc := range cases {
		if got := ClassifySeverity(tc.count, 2, 3); got != tc.want {
			t.Fatalf("severity(%d, 2, 3) = %s, want %s", tc.count, got, tc.want)
		}
	}
}
