package pagination

import "strconv"

const (
	DefaultLimit = 10
	DefaultPage  = 1
)

type Params struct {
	Limit int
	Page  int
}

// FromQuery parses limit/page query values, falling back to the
// defaults on missing or non-positive input. Pages are 1-indexed.
func FromQuery(limitStr, pageStr string) Params {
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = DefaultPage
	}

	return Params{Limit: limit, Page: page}
}

func (p Params) Skip() int {
	return (p.Page - 1) * p.Limit
}
