// Package research gathers news articles for a site and extracts
// regulatory risk signals from them.
package research

// searchTerms are the base queries sent to the news collaborator for
// every assessment.
var searchTerms = []string{
	"solar development moratorium",
	"solar project restriction",
	"renewable energy policy",
	"solar zoning restriction",
	"solar panel installation ban",
	"solar incentive program",
	"solar permit requirement",
	"utility interconnection solar",
}

// BuildQueries returns the search terms, scoped to a location when one is
// given.
func BuildQueries(location string) []string {
	queries := make([]string, len(searchTerms))
	for i, term := range searchTerms {
		if location != "" {
			queries[i] = term + " " + location
		} else {
			queries[i] = term
		}
	}
	return queries
}
