package extract

import "regexp"

// inclusionPattern is one declarative capture rule for covered services.
// Patterns are applied in order with first-match semantics per service key.
// AmountGroup 0 means the pattern carries no amount and the service is
// recorded as covered-unspecified.
type inclusionPattern struct {
	name         string
	regex        *regexp.Regexp
	serviceGroup int
	amountGroup  int
}

var inclusionPatterns = []inclusionPattern{
	{
		// "Service: covered up to ₹500,000"
		name:         "colon-covered-amount",
		regex:        regexp.MustCompile(`(?im)([a-zA-Z][^:\n]{3,40})[:\-]\s*(?:covered|coverage|benefit)\s*(?:up\s*to)?\s*₹?\s*(\d+(?:,\d{3})*)`),
		serviceGroup: 1,
		amountGroup:  2,
	},
	{
		// "Service covered ₹200000"
		name:         "covered-amount",
		regex:        regexp.MustCompile(`(?im)([a-zA-Z][^:\n]{3,40})\s+covered\s*₹?\s*(\d+(?:,\d{3})*)`),
		serviceGroup: 1,
		amountGroup:  2,
	},
	{
		// "₹100,000 for dental care"
		name:         "amount-for-service",
		regex:        regexp.MustCompile(`(?im)₹?\s*(\d+(?:,\d{3})*)\s+(?:for|towards)\s+([a-zA-Z][^\n]{3,40})`),
		serviceGroup: 2,
		amountGroup:  1,
	},
	{
		// "Service - ₹50,000"
		name:         "dash-amount",
		regex:        regexp.MustCompile(`(?im)([a-zA-Z][^:\-\n]{3,40})\s*[\-–]\s*₹?\s*(\d+(?:,\d{3})*)`),
		serviceGroup: 1,
		amountGroup:  2,
	},
	{
		// "Service: covered" with no amount
		name:         "colon-covered",
		regex:        regexp.MustCompile(`(?im)([a-zA-Z][^:\n]{3,40})[:\-]\s*(?:covered|yes|included|available)`),
		serviceGroup: 1,
		amountGroup:  0,
	},
}

// exclusionTrigger captures the phrase run that follows an exclusion header
// until the next blank line, numbered list marker, or section header.
var exclusionTriggers = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?:exclusions?|not covered|excluded|does not cover|not payable)[:\-\s]*(.+?)(?:\n\s*\n|\d+\.|\bsection\b|\bcoverage\b|$)`),
	regexp.MustCompile(`(?is)(?:the following (?:are|is) (?:not )?(?:covered|excluded))[:\-\s]*(.+?)(?:\n\s*\n|\d+\.|\bsection\b|$)`),
	regexp.MustCompile(`(?is)(?:this policy does not cover)[:\-\s]*(.+?)(?:\n\s*\n|\d+\.|\bsection\b|$)`),
}

// exclusionSplit breaks a captured run into individual items.
var exclusionSplit = regexp.MustCompile(`[;\n•\-\*]|\d+\.`)

// leadingFiller strips a leading conjunction or article from an exclusion.
var leadingFiller = regexp.MustCompile(`(?i)^(?:and|or|the|a|an)\s+`)

var waitingPatterns = []*regexp.Regexp{
	// "waiting period: 24 months"
	regexp.MustCompile(`(?i)(?:waiting period|waiting time)[:\-\s]*(\d+)\s*(days?|months?|years?)`),
	// "fertility treatments 2 years waiting"
	regexp.MustCompile(`(?i)(\w+(?:\s+\w+)*?)[:\-\s]*(\d+)\s*(days?|months?|years?)\s*waiting`),
}

var policyNamePattern = regexp.MustCompile(`(?im)(?:policy\s+name|title)[:\-\s]*(.+?)(?:\n|$)`)

var (
	serviceTrim   = regexp.MustCompile(`^\W+|\W+$`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	amountJunk    = regexp.MustCompile(`[,₹\s]`)
	digitsOnly    = regexp.MustCompile(`^\d+$`)
)

// coverageContextPatterns match "<term> ... covered/benefit/₹N" within one
// sentence, one pre-compiled pattern per medical term.
var coverageContextPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(medicalTerms))
	for _, term := range medicalTerms {
		m[term] = regexp.MustCompile(regexp.QuoteMeta(term) + `[^.]*(?:covered|benefit|₹\d)`)
	}
	return m
}()

// serviceStopWords are captured strings that are never a service name.
var serviceStopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true,
}

// medicalTerms drive the sweep for services mentioned in a coverage context
// without matching any inclusion pattern.
var medicalTerms = []string{
	"surgery", "treatment", "care", "therapy", "procedure", "medical",
	"health", "hospital", "doctor", "consultation", "diagnosis",
	"emergency", "ambulance", "pharmacy", "medicine", "lab", "test",
	"scan", "xray", "mri", "ct scan",
}

// Policy classification keyword sets.
var (
	fertilityKeywords = []string{"fertility", "ivf", "reproductive"}
	premiumKeywords   = []string{"premium", "comprehensive", "deluxe"}
	standardKeywords  = []string{"standard", "basic", "essential"}
)
