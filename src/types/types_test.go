package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestHistorySeries_Last(t *testing.T) {
	var empty HistorySeries
	if _, ok := empty.Last(); ok || !empty.Empty() {
		t.Fatalf("empty series must report no last entry")
	}
	s := HistorySeries{{Time: 1}, {Time: 5, Value: 3}}
	last, ok := s.Last()
	if !ok || last.Time != 5 || last.Value != 3 {
		t.Fatalf("unexpected last entry %+v ok=%v", last, ok)
	}
}

func TestTimeWindow_ContainsIsLeftExclusive(t *testing.T) {
	w := TimeWindow{Start: 100, End: 200}
	if w.Contains(100) {
		t.Fatalf("start boundary must be excluded")
	}
	if !w.Contains(101) || !w.Contains(200) {
		t.Fatalf("entries after start must be included")
	}
}

func TestParseError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("charge log: %w", &ParseError{Line: 3, Field: "value", Text: "1\tx\tcharging"})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("ParseError must match ErrParse: %v", err)
	}
	if errors.Is(err, ErrIO) {
		t.Fatalf("ParseError must not match ErrIO")
	}
	if !errors.Is(NoDataf("rate %s", "empty"), ErrNoData) {
		t.Fatalf("NoDataf must wrap ErrNoData")
	}
}
