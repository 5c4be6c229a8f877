package model

import "time"

// Article is a single news search result from the news collaborator.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Snippet     string    `json:"snippet,omitempty"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// ResearchFinding summarizes regulatory signals extracted from news
// articles for one assessment. Created per request, discarded after scoring.
type ResearchFinding struct {
	ArticleCount    int                 `json:"article_count"`
	Moratorium      bool                `json:"moratorium"`
	Incentive       bool                `json:"incentive"`
	Interconnection bool                `json:"interconnection"`
	MatchedKeywords map[string][]string `json:"matched_keywords,omitempty"`
}
