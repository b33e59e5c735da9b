package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/agenda/internal/timezone"
)

// WorkingWindow is the daily range in which appointments may start:
// Start inclusive, End exclusive.
type WorkingWindow struct {
	Start string
	End   string
}

func NewWorkingWindow(start, end string) (WorkingWindow, error) {
	s, err := time.Parse(timezone.TimeLayout, start)
	if err != nil {
		return WorkingWindow{}, fmt.Errorf("invalid window start %q: %w", start, err)
	}
	e, err := time.Parse(timezone.TimeLayout, end)
	if err != nil {
		return WorkingWindow{}, fmt.Errorf("invalid window end %q: %w", end, err)
	}
	if !s.Before(e) {
		return WorkingWindow{}, fmt.Errorf("window start %s must be before end %s", start, end)
	}

	return WorkingWindow{
		Start: s.Format(timezone.TimeLayout),
		End:   e.Format(timezone.TimeLayout),
	}, nil
}

// IsWithinWorkingHours expects hm already normalized to HH:MM.
func (w WorkingWindow) IsWithinWorkingHours(hm string) bool {
	return hm >= w.Start && hm < w.End
}
