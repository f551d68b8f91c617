package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}, "X-Custom": []string{"a", "b"}}
	body := []byte(`{"message":"halls fetched successfully"}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{0, 0, 0})
	assert.False(t, ok)

	payload, err := encodePayload(200, http.Header{"A": []string{"b"}}, []byte("x"))
	require.NoError(t, err)
	_, _, _, ok = decodePayload(payload[:9])
	assert.False(t, ok)
}

func TestCacheKeyDistinguishesQueries(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "halls-cache", KeyStrategy: "route_query"}
	e := echo.New()

	mk := func(target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/public/get-halls")
		return cacheKeyFrom(cfg, c)
	}

	k1 := mk("/public/get-halls?region=tashkent")
	k2 := mk("/public/get-halls?region=samarkand")
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, mk("/public/get-halls?region=tashkent"))
}

func TestResponseCacheDisabledPassesThrough(t *testing.T) {
	mw := NewResponseCache(config.CacheConfig{Enabled: false}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/public/get-halls", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "fresh") })
	require.NoError(t, h(c))
	assert.Equal(t, "fresh", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
