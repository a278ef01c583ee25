package task

import (
	"sort"
	"testing"
)

func TestPriorityRank(t *testing.T) {
	if PriorityHigh.Rank() <= PriorityMedium.Rank() {
		t.Error("high must rank above medium")
	}
	if PriorityMedium.Rank() <= PriorityLow.Rank() {
		t.Error("medium must rank above low")
	}
	if Priority("urgent").Rank() != 0 {
		t.Errorf("unknown priority rank = %d, want 0", Priority("urgent").Rank())
	}
}

// Lexically "high" < "low" < "medium", so any sort relying on the
// string values instead of the rank produces the wrong order.
func TestPriorityRank_NotLexical(t *testing.T) {
	ps := []Priority{PriorityMedium, PriorityHigh, PriorityLow}
	sort.Slice(ps, func(i, j int) bool { return ps[i].Rank() > ps[j].Rank() })

	want := []Priority{PriorityHigh, PriorityMedium, PriorityLow}
	for i := range want {
		if ps[i] != want[i] {
			t.Fatalf("rank sort = %v, want %v", ps, want)
		}
	}

	lex := []Priority{PriorityMedium, PriorityHigh, PriorityLow}
	sort.Slice(lex, func(i, j int) bool { return lex[i] < lex[j] })
	if lex[0] != PriorityHigh || lex[1] != PriorityLow {
		t.Fatalf("expected lexical order high,low,medium as the defect case, got %v", lex)
	}
}

func TestValidStatusAndPriority(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("done") {
		t.Error(`ValidStatus("done") = true`)
	}
	for _, p := range Priorities {
		if !ValidPriority(p) {
			t.Errorf("ValidPriority(%q) = false", p)
		}
	}
	if ValidPriority("urgent") {
		t.Error(`ValidPriority("urgent") = true`)
	}
}
