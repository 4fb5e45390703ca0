// Package crawler implements the category traversal pipeline and the
// JSONL output sink.
package crawler

import (
	"net/url"
	"strings"
)

// Record is one collected article, serialized as a single JSON line.
// Field order and names are the output contract; consumers parse these
// exact six fields.
type Record struct {
	Lang         string   `json:"lang"`
	CategoryPath []string `json:"category_path"`
	Title        string   `json:"title"`
	PageID       int64    `json:"pageid"`
	Text         string   `json:"text"`
	URL          string   `json:"url"`
}

// PageURL derives the canonical article URL from language and title:
// spaces become underscores, then the path is percent-encoded with
// slashes preserved (subpage titles stay readable).
func PageURL(lang, title string) string {
	u := url.URL{
		Scheme: "https",
		Host:   lang + ".wikipedia.org",
		Path:   "/wiki/" + strings.ReplaceAll(title, " ", "_"),
	}
	return u.String()
}
