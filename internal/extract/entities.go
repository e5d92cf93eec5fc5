package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/clausecheck/clausecheck/internal/model"
	"github.com/clausecheck/clausecheck/internal/taxonomy"
)

var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)[\s\-]*(?:year|yr)s?[\s\-]*old`),
	regexp.MustCompile(`(?i)\b(\d+)\s*[yfm]\b`),
	regexp.MustCompile(`(?i)age\s*[:\-]?\s*(\d+)`),
}

var (
	genderToken = regexp.MustCompile(`(?i)\b\d+\s*(m|f)\b`)
	genderWord  = regexp.MustCompile(`(?i)\b(male|female|man|woman)\b`)
)

// tenurePatterns capture the policy-holding duration. The unit group may be
// empty; a bare number is treated as years.
var tenurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)policy\s+(?:active|held|running)\s+(?:for\s+)?(\d+)\s+(years?|months?)`),
	regexp.MustCompile(`(?i)(\d+)\s+(years?|months?)\s+(?:policy|coverage)`),
	regexp.MustCompile(`(?i)policy\s+(?:duration|period)[:\-\s]*(\d+)\s*(years?|months?)?`),
}

var requestedAmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`₹\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)rs\.?\s*(\d+(?:,\d{3})*)`),
	regexp.MustCompile(`(?i)(\d+(?:,\d{3})*)\s*rupees?`),
}

var medicalActionWord = regexp.MustCompile(`(?i)\b(treatment|surgery|procedure|therapy|care|consultation|test|scan|operation|visit)\b`)

var urgencyKeywords = []string{"emergency", "urgent", "critical", "immediate", "asap"}

// fallbackConfidence is assigned when only a bare medical-action word was
// found instead of a taxonomy synonym.
const fallbackConfidence = 70

// EntityExtractor turns a free-text coverage query into structured entities.
// It is a total function: fields it cannot detect are simply left unset.
type EntityExtractor struct {
	taxonomy *taxonomy.Taxonomy
}

// NewEntityExtractor creates an entity extractor over the given taxonomy.
func NewEntityExtractor(tax *taxonomy.Taxonomy) *EntityExtractor {
	return &EntityExtractor{taxonomy: tax}
}

// Extract parses procedure, age, gender, policy tenure, requested amount and
// urgency from a query.
func (e *EntityExtractor) Extract(query string) model.QueryEntities {
	lower := strings.ToLower(query)

	entities := model.QueryEntities{
		Gender:  model.GenderUnknown,
		Urgency: model.UrgencyNormal,
	}

	e.extractProcedure(lower, &entities)
	extractAge(lower, &entities)
	extractGender(lower, &entities)
	extractTenure(lower, &entities)
	extractRequestedAmount(query, &entities)

	for _, kw := range urgencyKeywords {
		if strings.Contains(lower, kw) {
			entities.Urgency = model.UrgencyHigh
			break
		}
	}

	return entities
}

func (e *EntityExtractor) extractProcedure(lower string, entities *model.QueryEntities) {
	if m, ok := e.taxonomy.BestMatch(lower); ok {
		entities.ProcedureCategory = m.Category
		entities.MatchedSynonym = m.Synonym
		if m.Synonym == strings.TrimSpace(lower) {
			entities.MatchConfidence = 100
		} else {
			entities.MatchConfidence = 90
		}
		return
	}

	// No taxonomy hit: fall back to a bare medical-action word.
	if m := medicalActionWord.FindStringSubmatch(lower); m != nil {
		label := "medical " + strings.ToLower(m[1])
		entities.ProcedureCategory = label
		entities.MatchedSynonym = label
		entities.MatchConfidence = fallbackConfidence
	}
}

func extractAge(lower string, entities *model.QueryEntities) {
	for _, pattern := range agePatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 || n >= 120 {
			continue
		}
		entities.Age = &n
		return
	}
}

func extractGender(lower string, entities *model.QueryEntities) {
	if m := genderToken.FindStringSubmatch(lower); m != nil {
		if strings.EqualFold(m[1], "f") {
			entities.Gender = model.GenderFemale
		} else {
			entities.Gender = model.GenderMale
		}
		return
	}

	if m := genderWord.FindStringSubmatch(lower); m != nil {
		switch strings.ToLower(m[1]) {
		case "female", "woman":
			entities.Gender = model.GenderFemale
		case "male", "man":
			entities.Gender = model.GenderMale
		}
		return
	}

	if strings.Contains(lower, "pregnant") {
		entities.Gender = model.GenderFemale
	}
}

func extractTenure(lower string, entities *model.QueryEntities) {
	for _, pattern := range tenurePatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 0 {
			continue
		}

		// A bare duration number reads as years; only an explicit
		// "month" keeps the value as-is.
		months := n * 12
		if len(m) > 2 && strings.HasPrefix(strings.ToLower(m[2]), "month") {
			months = n
		}
		entities.PolicyTenureMonths = &months
		return
	}
}

func extractRequestedAmount(query string, entities *model.QueryEntities) {
	for _, pattern := range requestedAmountPatterns {
		m := pattern.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		cleaned := strings.ReplaceAll(m[1], ",", "")
		if i := strings.IndexByte(cleaned, '.'); i >= 0 {
			cleaned = cleaned[:i]
		}
		n, err := strconv.ParseInt(cleaned, 10, 64)
		if err != nil {
			continue
		}
		entities.RequestedAmount = &n
		return
	}
}
