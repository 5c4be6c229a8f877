package research

import (
	"strings"

	"github.com/heliowatt/feasibility-cli/internal/model"
)

// Signal keyword categories. Matching is case-insensitive substring
// search over title, description, and snippet; no dedup, ranking, or
// temporal weighting here.
var categoryKeywords = map[string][]string{
	// "ban" alone collides with "urban" and "banner"; keep it phrased.
	"moratorium": {
		"moratorium", "solar ban", "installation ban", "halt", "suspension",
		"restriction", "zoning limit",
	},
	"incentive": {
		"incentive", "rebate", "tax credit", "net metering", "subsidy", "grant program",
	},
	"interconnection": {
		"interconnection", "grid connection", "hookup delay", "transmission queue",
	},
}

// Extract tags articles against the signal keyword categories and counts
// total matches. An article counts once even when it matches several
// categories.
func Extract(articles []model.Article) model.ResearchFinding {
	finding := model.ResearchFinding{
		MatchedKeywords: make(map[string][]string),
	}

	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Description + " " + a.Snippet)

		matched := false
		for category, keywords := range categoryKeywords {
			for _, kw := range keywords {
				if strings.Contains(text, kw) {
					matched = true
					if !contains(finding.MatchedKeywords[category], kw) {
						finding.MatchedKeywords[category] = append(finding.MatchedKeywords[category], kw)
					}
				}
			}
		}
		if matched {
			finding.ArticleCount++
		}
	}

	finding.Moratorium = len(finding.MatchedKeywords["moratorium"]) > 0
	finding.Incentive = len(finding.MatchedKeywords["incentive"]) > 0
	finding.Interconnection = len(finding.MatchedKeywords["interconnection"]) > 0

	if len(finding.MatchedKeywords) == 0 {
		finding.MatchedKeywords = nil
	}

	return finding
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
