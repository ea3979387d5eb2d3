package domain

// Pagination defaults and bounds applied by NewPageRequest.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest builds a PageRequest from optional query values.
// Nil or non-positive values fall back to page 1 and DefaultPageLimit;
// the limit is capped at MaxPageLimit.
func NewPageRequest(page, limit *int) PageRequest {
	p := PageRequest{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}
