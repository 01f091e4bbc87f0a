package pagination

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit  = 100
	DefaultOffset = 0
)

// Params holds normalized limit/offset pagination parameters
type Params struct {
	Limit  int
	Offset int
}

// Normalize clamps limit and offset to their defaults. Non-positive limits
// and negative offsets are replaced, never rejected.
func Normalize(limit, offset int) Params {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = DefaultOffset
	}
	return Params{Limit: limit, Offset: offset}
}

// Parse extracts limit/offset from query parameters. Absent or non-numeric
// values fall back to the defaults.
func Parse(c *gin.Context) Params {
	return Normalize(QueryInt(c, "limit", DefaultLimit), QueryInt(c, "offset", DefaultOffset))
}

// QueryInt reads an integer query parameter, returning def when it is
// absent or not a whole number.
func QueryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		// "25.0" style input
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return def
		}
		return int(f)
	}
	return v
}
