// Package mediawiki implements a minimal client for the MediaWiki
// query API: category member enumeration and plaintext extracts.
package mediawiki

// MemberKind selects which kinds of category members to enumerate.
type MemberKind string

// Values accepted by the API's cmtype parameter.
const (
	MemberPages         MemberKind = "page"
	MemberSubcategories MemberKind = "subcat"
	MemberAll           MemberKind = "page|subcat"
)

// Member is one entry of a categorymembers listing.
type Member struct {
	PageID int64  `json:"pageid"`
	Ns     int    `json:"ns"`
	Title  string `json:"title"`
}

// Extract is the plaintext body of a single article.
type Extract struct {
	PageID int64
	Title  string
	Text   string
}

// PageRef identifies the page whose extract is requested. Exactly one
// field must be set.
type PageRef struct {
	PageID int64
	Title  string
}

// memberListResponse is the wire shape of a categorymembers query.
// The continue block is opaque; it is echoed back verbatim to resume
// pagination.
type memberListResponse struct {
	Continue map[string]string `json:"continue"`
	Query    struct {
		CategoryMembers []Member `json:"categorymembers"`
	} `json:"query"`
}

// extractResponse is the wire shape of an extracts query. Pages is
// keyed by page id as a string; missing pages use negative synthetic
// keys.
type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			PageID  int64  `json:"pageid"`
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}
