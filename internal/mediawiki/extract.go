package mediawiki

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// PageExtract fetches the plaintext extract for a single page. Exactly
// one of ref.PageID and ref.Title must be set; otherwise the call fails
// with ErrInvalidArgument before touching the network. A page the API
// reports as missing yields (nil, nil).
func (c *Client) PageExtract(ctx context.Context, endpoint string, ref PageRef) (*Extract, error) {
	if (ref.PageID == 0) == (ref.Title == "") {
		return nil, ErrInvalidArgument
	}

	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"prop":        {"extracts"},
		"explaintext": {"1"},
		"exlimit":     {"1"},
	}
	if ref.PageID != 0 {
		params.Set("pageids", strconv.FormatInt(ref.PageID, 10))
	} else {
		params.Set("titles", ref.Title)
	}

	var resp extractResponse
	if err := c.get(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}

	// Pages holds at most one entry here (exlimit=1); missing pages are
	// keyed by a negative synthetic id.
	for key, page := range resp.Query.Pages {
		if strings.HasPrefix(key, "-") {
			return nil, nil
		}
		return &Extract{
			PageID: page.PageID,
			Title:  page.Title,
			Text:   page.Extract,
		}, nil
	}
	return nil, nil
}
