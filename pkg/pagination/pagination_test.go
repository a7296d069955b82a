package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery_Defaults(t *testing.T) {
	p := FromQuery("", "")

	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Skip())
}

func TestFromQuery_Explicit(t *testing.T) {
	p := FromQuery("2", "2")

	assert.Equal(t, 2, p.Limit)
	assert.Equal(t, 2, p.Page)
	// page 2 with limit 2 skips the first two records
	assert.Equal(t, 2, p.Skip())
}

func TestFromQuery_Invalid(t *testing.T) {
	p := FromQuery("abc", "-3")

	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 1, p.Page)
}

func TestFromQuery_Zero(t *testing.T) {
	p := FromQuery("0", "0")

	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 1, p.Page)
}

func TestSkip_LaterPage(t *testing.T) {
	p := Params{Limit: 25, Page: 4}

	assert.Equal(t, 75, p.Skip())
}
