package account

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Sections a focal person can be designated to.
var Sections = []string{
	"School Management Monitoring and Evaluation Section",
	"Planning",
	"Research",
	"Human Resource Development Section",
	"Social Mobilization and Networking Section",
	"Education Facilities Section",
	"Disaster Risk Reduction and Management Unit",
	"Dental",
	"Medical",
	"School-Based Feeding Program",
	"Gulayan sa Paaralan Program",
	"Water Sanitation, and Hygiene in Schools",
	"National Drug Education Program",
	"Reproductive Health",
	"Youth Formation",
}

const minSuggestionRatio = .6

// LookupSection returns the canonical spelling of a known section, matched case-insensitively.
func LookupSection(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, section := range Sections {
		if strings.EqualFold(section, s) {
			return section, true
		}
	}
	return "", false
}

// SuggestSection returns the known section closest to s, or "" when none is close enough.
func SuggestSection(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	var (
		best      string
		bestRatio float64
	)
	for _, section := range Sections {
		m := difflib.NewMatcher(strings.Split(s, ""), strings.Split(strings.ToLower(section), ""))
		if ratio := m.Ratio(); ratio > bestRatio {
			best, bestRatio = section, ratio
		}
	}
	if bestRatio < minSuggestionRatio {
		return ""
	}
	return best
}
