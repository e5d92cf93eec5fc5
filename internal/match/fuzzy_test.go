package match

import "testing"

func TestFuzzyMatcher_ExactMatch(t *testing.T) {
	m := NewFuzzyMatcher()

	matches := m.Match("cardiac surgery", []string{"cardiac surgery", "dental care"}, 80)
	if len(matches) == 0 {
		t.Fatal("Expected a match for identical strings")
	}
	if matches[0].ClauseText != "cardiac surgery" {
		t.Errorf("Expected 'cardiac surgery' first, got %q", matches[0].ClauseText)
	}
	if matches[0].Confidence != 100 {
		t.Errorf("Expected confidence 100, got %d", matches[0].Confidence)
	}
}

func TestFuzzyMatcher_SubstringBonus(t *testing.T) {
	m := NewFuzzyMatcher()

	matches := m.Match("ivf", []string{"ivf treatment"}, 80)
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Confidence != 100 {
		t.Errorf("Expected containment to clamp at 100, got %d", matches[0].Confidence)
	}
}

func TestFuzzyMatcher_ThresholdExcludes(t *testing.T) {
	m := NewFuzzyMatcher()

	matches := m.Match("xyz", []string{"completely unrelated words"}, 80)
	if len(matches) != 0 {
		t.Errorf("Expected no matches below threshold, got %v", matches)
	}
}

func TestFuzzyMatcher_SortedByConfidence(t *testing.T) {
	m := NewFuzzyMatcher()

	matches := m.Match("cardiac surgery", []string{"dental care", "cardiac surgery"}, 60)
	if len(matches) == 0 {
		t.Fatal("Expected matches")
	}
	if matches[0].ClauseText != "cardiac surgery" {
		t.Errorf("Expected highest-confidence candidate first, got %q", matches[0].ClauseText)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Confidence > matches[i-1].Confidence {
			t.Error("Expected descending confidence order")
		}
	}
}

func TestEffectiveThreshold(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		threshold int
		want      int
	}{
		{"generic term relieves", "knee treatment", 80, 60},
		{"specific query unchanged", "angioplasty", 80, 80},
		{"relief bounded by floor", "knee treatment", 70, 60},
		{"threshold below floor untouched by relief", "general surgery", 90, 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := effectiveThreshold(tt.query, tt.threshold); got != tt.want {
				t.Errorf("effectiveThreshold(%q, %d): expected %d, got %d", tt.query, tt.threshold, tt.want, got)
			}
		})
	}
}

func TestWordOverlap(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"cardiac surgery", "cardiac care", 0.5},
		{"cardiac surgery", "cardiac surgery", 1.0},
		{"one two three", "four five", 0},
		{"", "cardiac", 0},
	}

	for _, tt := range tests {
		if got := wordOverlap(tt.a, tt.b); got != tt.want {
			t.Errorf("wordOverlap(%q, %q): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}
