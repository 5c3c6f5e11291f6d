package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/roamly/tour-booking-api/internal/config"
)

func cacheCtx(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/tours/:id")
	return c
}

var cacheTestCfg = config.CacheConfig{KeyStrategy: "path_query", Prefix: "cache"}

// Two tours resolved through the same route pattern must get distinct
// cache entries, while repeated requests for one tour share theirs.
func TestCacheKeyDistinguishesPathParams(t *testing.T) {
	k1 := cacheKey(cacheTestCfg, cacheCtx("/api/tours/1"))
	k2 := cacheKey(cacheTestCfg, cacheCtx("/api/tours/2"))
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, cacheKey(cacheTestCfg, cacheCtx("/api/tours/1")))
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	assert.NotEqual(t,
		cacheKey(cacheTestCfg, cacheCtx("/api/tours/1?page=1")),
		cacheKey(cacheTestCfg, cacheCtx("/api/tours/1?page=2")))
}
