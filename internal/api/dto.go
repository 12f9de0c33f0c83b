package api

// DocumentListItem is a lightweight item in a list response.
type DocumentListItem struct {
	Path    string   `json:"path"`
	Kind    string   `json:"kind"`
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Date    string   `json:"date,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags"`
	URL     string   `json:"url"`
}

// DocumentListResponse wraps paginated document listings.
type DocumentListResponse struct {
	Documents []DocumentListItem `json:"documents"`
	Total     int                `json:"total"`
}

// SearchHit is a single search hit in the API response.
type SearchHit struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchHit `json:"results"`
}

// TagInfo pairs a tag with its document count.
type TagInfo struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagListResponse wraps the tag listing.
type TagListResponse struct {
	Tags []TagInfo `json:"tags"`
}
