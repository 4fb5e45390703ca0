package mediawiki

import (
	"context"
	"net/url"
	"strconv"
)

// MemberPager lazily enumerates the members of one category. Each batch
// is fetched only when the previous one is consumed, echoing the API's
// opaque continue block until the listing is exhausted. Forward-only,
// consumed once.
type MemberPager struct {
	client   *Client
	endpoint string
	category string
	kind     MemberKind
	limit    int

	buf  []Member
	cont map[string]string
	done bool
}

// CategoryMembers returns a pager over the members of category on the
// given endpoint, filtered by kind.
func (c *Client) CategoryMembers(endpoint, category string, kind MemberKind, limit int) *MemberPager {
	if limit <= 0 {
		limit = 500
	}
	return &MemberPager{
		client:   c,
		endpoint: endpoint,
		category: category,
		kind:     kind,
		limit:    limit,
	}
}

// Next returns the next member. The second result is false once the
// listing is exhausted.
func (p *MemberPager) Next(ctx context.Context) (Member, bool, error) {
	for len(p.buf) == 0 {
		if p.done {
			return Member{}, false, nil
		}
		if err := p.fetchBatch(ctx); err != nil {
			return Member{}, false, err
		}
	}
	m := p.buf[0]
	p.buf = p.buf[1:]
	return m, true, nil
}

func (p *MemberPager) fetchBatch(ctx context.Context) error {
	params := url.Values{
		"action":  {"query"},
		"format":  {"json"},
		"list":    {"categorymembers"},
		"cmtitle": {"Category:" + p.category},
		"cmlimit": {strconv.Itoa(p.limit)},
		"cmtype":  {string(p.kind)},
	}
	for k, v := range p.cont {
		params.Set(k, v)
	}

	var resp memberListResponse
	if err := p.client.get(ctx, p.endpoint, params, &resp); err != nil {
		return err
	}

	p.buf = resp.Query.CategoryMembers
	if len(resp.Continue) == 0 {
		p.done = true
	} else {
		p.cont = resp.Continue
	}
	return nil
}
