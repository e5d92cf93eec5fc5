package extract

import (
	"testing"

	"github.com/clausecheck/clausecheck/internal/model"
)

func TestClauseExtractor_BasicExtraction(t *testing.T) {
	extractor := NewClauseExtractor()

	text := `Policy Name: Acme Health Standard Plan

Cardiac surgery: covered up to ₹500000

Exclusions:
- IVF treatment
- cosmetic surgery

Waiting period: 24 months
`

	clauses := extractor.Extract(text)

	if clauses.PolicyName != "Acme Health Standard Plan" {
		t.Errorf("Expected policy name 'Acme Health Standard Plan', got %q", clauses.PolicyName)
	}

	amount, ok := clauses.Inclusions["cardiac surgery"]
	if !ok {
		t.Fatalf("Expected 'cardiac surgery' in inclusions, got %v", clauses.Inclusions)
	}
	if amount != 500000 {
		t.Errorf("Expected amount 500000, got %d", amount)
	}
	if clauses.CoverageAmounts["cardiac surgery"] != "₹500,000" {
		t.Errorf("Expected display amount '₹500,000', got %q", clauses.CoverageAmounts["cardiac surgery"])
	}

	if len(clauses.Exclusions) != 2 {
		t.Fatalf("Expected 2 exclusions, got %v", clauses.Exclusions)
	}
	if clauses.Exclusions[0] != "ivf treatment" {
		t.Errorf("Expected first exclusion 'ivf treatment', got %q", clauses.Exclusions[0])
	}

	wp, ok := clauses.WaitingPeriods["general"]
	if !ok {
		t.Fatalf("Expected general waiting period, got %v", clauses.WaitingPeriods)
	}
	if wp.Value != 24 || wp.Unit != model.UnitMonths {
		t.Errorf("Expected 24 months, got %d %s", wp.Value, wp.Unit)
	}
}

func TestClauseExtractor_AmountBearingMatchWins(t *testing.T) {
	extractor := NewClauseExtractor()

	// "Dental care: covered up to ₹100000" also satisfies the amount-less
	// "Service: covered" pattern later in the cascade; the amount must
	// survive.
	clauses := extractor.Extract("Dental care: covered up to ₹100000\n")

	if amount := clauses.Inclusions["dental care"]; amount != 100000 {
		t.Errorf("Expected amount 100000, got %d", amount)
	}
}

func TestClauseExtractor_InclusionPatternVariants(t *testing.T) {
	extractor := NewClauseExtractor()

	tests := []struct {
		name    string
		text    string
		service string
		amount  int64
	}{
		{"colon covered amount", "Maternity benefits: coverage up to ₹200,000", "maternity benefits", 200000},
		{"covered amount", "Knee surgery covered ₹150000", "knee surgery", 150000},
		{"amount for service", "₹100,000 for dental care", "dental care", 100000},
		{"dash amount", "Eye surgery - ₹50,000", "eye surgery", 50000},
		{"covered no amount", "Ambulance services: included", "ambulance services", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses := extractor.Extract(tt.text)
			amount, ok := clauses.Inclusions[tt.service]
			if !ok {
				t.Fatalf("Expected %q in inclusions, got %v", tt.service, clauses.Inclusions)
			}
			if amount != tt.amount {
				t.Errorf("Expected amount %d, got %d", tt.amount, amount)
			}
		})
	}
}

func TestClauseExtractor_UnspecifiedAmountDisplay(t *testing.T) {
	extractor := NewClauseExtractor()

	clauses := extractor.Extract("Ambulance services: included\n")

	if clauses.CoverageAmounts["ambulance services"] != "Covered" {
		t.Errorf("Expected display 'Covered', got %q", clauses.CoverageAmounts["ambulance services"])
	}
}

func TestClauseExtractor_ExclusionDedupAndFiller(t *testing.T) {
	extractor := NewClauseExtractor()

	text := "Exclusions: cosmetic surgery; cosmetic surgery; and dental implants\n"
	clauses := extractor.Extract(text)

	if len(clauses.Exclusions) != 2 {
		t.Fatalf("Expected 2 exclusions after dedup, got %v", clauses.Exclusions)
	}
	if clauses.Exclusions[1] != "dental implants" {
		t.Errorf("Expected leading 'and' stripped, got %q", clauses.Exclusions[1])
	}
}

func TestClauseExtractor_ExclusionLengthBounds(t *testing.T) {
	extractor := NewClauseExtractor()

	// "spa" is below the minimum item length and must be dropped.
	clauses := extractor.Extract("Exclusions: spa; cosmetic surgery\n")

	if len(clauses.Exclusions) != 1 {
		t.Fatalf("Expected 1 exclusion, got %v", clauses.Exclusions)
	}
	if clauses.Exclusions[0] != "cosmetic surgery" {
		t.Errorf("Expected 'cosmetic surgery', got %q", clauses.Exclusions[0])
	}
}

func TestClauseExtractor_ExclusionBeatsVerbatimInclusion(t *testing.T) {
	extractor := NewClauseExtractor()

	text := `Dental implants: covered up to ₹50000

Exclusions: dental implants; cosmetic surgery
`
	clauses := extractor.Extract(text)

	if _, ok := clauses.Inclusions["dental implants"]; ok {
		t.Error("Expected 'dental implants' removed from inclusions when excluded verbatim")
	}
	if _, ok := clauses.CoverageAmounts["dental implants"]; ok {
		t.Error("Expected 'dental implants' removed from coverage amounts when excluded verbatim")
	}

	found := false
	for _, e := range clauses.Exclusions {
		if e == "dental implants" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'dental implants' in exclusions, got %v", clauses.Exclusions)
	}
}

func TestClauseExtractor_MedicalTermSweep(t *testing.T) {
	extractor := NewClauseExtractor()

	clauses := extractor.Extract("All hospital expenses are fully covered under this plan.\n")

	if amount, ok := clauses.Inclusions["hospital"]; !ok || amount != 1 {
		t.Errorf("Expected 'hospital' swept as covered-unspecified, got %v", clauses.Inclusions)
	}
}

func TestClauseExtractor_WaitingPeriodUnits(t *testing.T) {
	extractor := NewClauseExtractor()

	tests := []struct {
		name     string
		text     string
		category string
		value    int
		unit     model.DurationUnit
	}{
		{"years to months", "Waiting period: 2 years", "general", 24, model.UnitMonths},
		{"days stay days", "Waiting period: 30 days", "general", 30, model.UnitDays},
		{"category specific", "Fertility treatments: 24 months waiting", "fertility treatments", 24, model.UnitMonths},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses := extractor.Extract(tt.text)
			wp, ok := clauses.WaitingPeriods[tt.category]
			if !ok {
				t.Fatalf("Expected waiting period for %q, got %v", tt.category, clauses.WaitingPeriods)
			}
			if wp.Value != tt.value || wp.Unit != tt.unit {
				t.Errorf("Expected %d %s, got %d %s", tt.value, tt.unit, wp.Value, wp.Unit)
			}
		})
	}
}

func TestWaitingPeriod_DaysNeverConvert(t *testing.T) {
	wp := model.WaitingPeriod{Value: 30, Unit: model.UnitDays}
	if wp.Months() != 0 {
		t.Errorf("Expected day-denominated period to report 0 months, got %d", wp.Months())
	}
}

func TestClauseExtractor_Classification(t *testing.T) {
	extractor := NewClauseExtractor()

	tests := []struct {
		name string
		text string
		want model.PolicyClass
	}{
		{"standard bias wins", "Health coverage: covered up to ₹100000", model.PolicyStandard},
		{"fertility", "This fertility plan covers ivf and reproductive care.", model.PolicyFertility},
		{"premium", "Our premium comprehensive deluxe plan.", model.PolicyPremium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses := extractor.Extract(tt.text)
			if clauses.Classification != tt.want {
				t.Errorf("Expected classification %s, got %s", tt.want, clauses.Classification)
			}
		})
	}
}

func TestClauseExtractor_EmptyText(t *testing.T) {
	extractor := NewClauseExtractor()

	clauses := extractor.Extract("   \n\t ")

	if clauses.Classification != model.PolicyUnknown {
		t.Errorf("Expected classification unknown, got %s", clauses.Classification)
	}
	if len(clauses.Inclusions) != 0 || len(clauses.Exclusions) != 0 || len(clauses.WaitingPeriods) != 0 {
		t.Error("Expected empty clause set for blank text")
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{500, "500"},
		{5000, "5,000"},
		{500000, "500,000"},
		{1500000, "1,500,000"},
	}

	for _, tt := range tests {
		if got := groupDigits(tt.in); got != tt.want {
			t.Errorf("groupDigits(%d): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
