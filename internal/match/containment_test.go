package match

import "testing"

func TestContainmentMatcher_Exact(t *testing.T) {
	m := NewContainmentMatcher()

	matches := m.Match("cardiac surgery", []string{"cardiac surgery"}, 80)
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Confidence != containExact {
		t.Errorf("Expected confidence %d, got %d", containExact, matches[0].Confidence)
	}
}

func TestContainmentMatcher_Partial(t *testing.T) {
	m := NewContainmentMatcher()

	matches := m.Match("ivf", []string{"ivf treatment"}, 80)
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Confidence != containPartial {
		t.Errorf("Expected confidence %d, got %d", containPartial, matches[0].Confidence)
	}
}

func TestContainmentMatcher_WordOverlap(t *testing.T) {
	m := NewContainmentMatcher()

	// 1 of 2 words in common scores 50, accepted at the widened threshold.
	matches := m.Match("cardiac surgery", []string{"cardiac treatment"}, 60)
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Confidence != 50 {
		t.Errorf("Expected confidence 50, got %d", matches[0].Confidence)
	}
}

func TestContainmentMatcher_NoMatch(t *testing.T) {
	m := NewContainmentMatcher()

	matches := m.Match("cardiac surgery", []string{"dental care"}, 80)
	if len(matches) != 0 {
		t.Errorf("Expected no matches, got %v", matches)
	}
}

func TestContainmentMatcher_ExactFirst(t *testing.T) {
	m := NewContainmentMatcher()

	matches := m.Match("ivf", []string{"ivf treatment", "ivf"}, 60)
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].ClauseText != "ivf" {
		t.Errorf("Expected exact match first, got %q", matches[0].ClauseText)
	}
}
