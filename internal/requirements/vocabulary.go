package requirements

import "strings"

type vocabularyEntry struct {
	label string
	terms []string
}

var practiceAreaVocabulary = []vocabularyEntry{
	{"Fund Formation", []string{"fund formation", "fund structuring"}},
	{"Private Equity", []string{"private equity"}},
	{"Venture Capital", []string{"venture capital"}},
	{"M&A", []string{"m&a", "mergers and acquisitions", "merger"}},
	{"Corporate", []string{"corporate"}},
	{"Tax", []string{"tax"}},
	{"Litigation", []string{"litigation"}},
	{"Investment Management", []string{"investment management", "investment adviser"}},
	{"Real Estate", []string{"real estate"}},
	{"IP", []string{"intellectual property", "patent", "trademark"}},
}

var barVocabulary = []vocabularyEntry{
	{"Massachusetts", []string{"massachusetts bar", "admitted in massachusetts", "massachusetts"}},
	{"New York", []string{"new york bar", "admitted in new york", "new york"}},
	{"California", []string{"california bar", "admitted in california", "california"}},
}

var keywordVocabulary = []string{
	// funds, private equity, venture
	"fund formation", "private equity", "venture capital", "growth equity",
	"hedge fund", "credit fund", "real estate fund",
	"partnership agreement", "limited partnership", "LPA",
	"side letter", "subscription agreement", "offering document",
	"investor negotiation", "institutional investor",
	"carried interest", "GP commitment", "management fee", "GP economics",
	"co-investment", "secondary transaction",
	"emerging manager", "first-time fund",
	"fund structuring", "fund sponsor", "fund manager",
	"investment management", "portfolio company",
	"private investment fund", "registered investment adviser",
	// corporate
	"M&A", "mergers and acquisitions", "leveraged buyout",
	"securities offering", "capital markets",
	"corporate governance", "joint venture", "due diligence",
	"stock purchase", "asset purchase", "tender offer",
	"proxy statement", "board advisory", "shareholder",
	"purchase agreement", "merger agreement", "reorganization",
	// securities
	"Investment Advisers Act", "Investment Company Act", "Securities Act",
	"SEC compliance", "SEC examination", "regulatory compliance",
	"securities regulation", "broker-dealer", "public offering", "IPO",
	// real estate
	"real estate", "commercial real estate", "real property",
	"lease", "leasing", "commercial lease",
	"mortgage", "CMBS", "real estate finance",
	"zoning", "land use", "development", "construction",
	"acquisition and disposition", "title", "easement",
	"condominium", "cooperative", "mixed-use",
	"real estate joint venture", "REIT",
	"landlord", "tenant", "property management",
	// litigation
	"litigation", "trial", "arbitration", "mediation",
	"class action", "securities litigation", "commercial litigation",
	"antitrust litigation", "product liability", "tort",
	"discovery", "deposition", "motion practice",
	"appellate", "white collar", "government investigation",
	"insurance coverage", "employment litigation",
	// finance
	"banking", "lending", "credit facility", "loan",
	"leveraged finance", "syndicated loan", "asset-based lending",
	"project finance", "structured finance", "securitization",
	"debt financing", "mezzanine", "revolving credit",
	// ip
	"intellectual property", "patent", "trademark", "copyright",
	"trade secret", "licensing", "IP litigation",
	"patent prosecution", "patent litigation",
	// employment
	"labor", "employment", "ERISA", "employee benefits",
	"wage and hour", "discrimination", "workplace",
	"NLRB", "collective bargaining", "OSHA",
	// tax
	"tax", "tax planning", "tax controversy", "transfer pricing",
	"state and local tax", "SALT", "international tax",
	"tax-exempt", "partnership tax",
	// restructuring
	"bankruptcy", "restructuring", "insolvency",
	"chapter 11", "creditor", "debtor",
	"distressed debt", "workout",
	// energy
	"energy", "environmental", "renewable energy",
	"oil and gas", "power", "utilities", "clean energy",
	"climate", "ESG", "sustainability",
	// health
	"healthcare", "health care", "FDA", "life sciences",
	"pharmaceutical", "HIPAA", "medical device",
	// antitrust
	"antitrust", "competition", "FTC", "DOJ",
	"Hart-Scott-Rodino", "merger clearance",
	// general
	"regulatory", "compliance", "government contracts",
	"international trade", "sanctions", "CFIUS",
	"data privacy", "cybersecurity", "GDPR", "CCPA",
	"executive compensation", "equity incentive",
	"technology transactions", "SaaS", "cloud",
	"pro bono",
}

// PracticeAreas returns practice-area labels whose terms occur in text.
func PracticeAreas(text string) []string {
	return matchVocabulary(practiceAreaVocabulary, text)
}

// Bars returns the bar admissions mentioned in text.
func Bars(text string) []string {
	return matchVocabulary(barVocabulary, text)
}

// Keywords returns every vocabulary phrase contained in text, in vocabulary order.
func Keywords(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, keyword := range keywordVocabulary {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			found = append(found, keyword)
		}
	}
	return found
}

func matchVocabulary(vocabulary []vocabularyEntry, text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, entry := range vocabulary {
		for _, term := range entry.terms {
			if strings.Contains(lower, term) {
				found = append(found, entry.label)
				break
			}
		}
	}
	return found
}
