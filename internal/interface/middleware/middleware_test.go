package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func TestRequestIDReusesValidHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, incoming)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Body.String())
	assert.Equal(t, incoming, w.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
}

func TestAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	token, _, err := jwt.GenerateAccessToken("user_1")
	require.NoError(t, err)
	other := helpers.NewJWTManager("other-secret", time.Hour)
	forged, _, err := other.GenerateAccessToken("user_1")
	require.NoError(t, err)

	r := gin.New()
	r.Use(Auth(jwt))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxUserIDKey)) })

	cases := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{"bearer header", "Bearer " + token, "", http.StatusOK},
		{"lowercase scheme", "bearer " + token, "", http.StatusOK},
		{"cookie", "", token, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"basic scheme", "Basic " + token, token, http.StatusUnauthorized},
		{"wrong key", "Bearer " + forged, "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "user_1", w.Body.String())
			}
		})
	}
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(nil, Rule{Name: "api", Limit: 1, Window: time.Minute, Key: KeyByIP()}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestKeyByUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(CtxUserIDKey, "user_1")
	assert.Equal(t, "user:user_1", KeyByUserID()(c))

	anon, _ := gin.CreateTestContext(httptest.NewRecorder())
	anon.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	anon.Set(realIPKey, "203.0.113.7")
	assert.Equal(t, "anon:ip:203.0.113.7", KeyByUserID()(anon))
}

func TestQuota(t *testing.T) {
	cases := []struct {
		name      string
		count     int64
		pttl      int64
		remaining int
		reset     int
		exceeded  bool
	}{
		{"first hit", 1, 60_000, 4, 60, false},
		{"at limit", 5, 1_200, 0, 2, false},
		{"over limit", 6, 999, 0, 1, true},
		{"no ttl", 2, -1, 3, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := newQuota(5, tc.count, tc.pttl)
			assert.Equal(t, tc.remaining, q.remaining)
			assert.Equal(t, tc.reset, q.resetSec)
			assert.Equal(t, tc.exceeded, q.exceeded)

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			q.writeHeaders(c)
			assert.Equal(t, "5", c.Writer.Header().Get("X-RateLimit-Limit"))
			if tc.exceeded {
				assert.Equal(t, "1", c.Writer.Header().Get("Retry-After"))
			} else {
				assert.Empty(t, c.Writer.Header().Get("Retry-After"))
			}
		})
	}
}

func TestRealIPAndKeys(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		{"left-most forwarded", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.2"}, "198.51.100.1"},
		{"garbage falls back", map[string]string{"X-Forwarded-For": "nope"}, "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RealIP())
			r.GET("/items/:id", func(c *gin.Context) {
				assert.Equal(t, tc.want, c.GetString(realIPKey))
				assert.Equal(t, "ip:"+tc.want, KeyByIP()(c))
				assert.Equal(t, "route:/items/:id:ip:"+tc.want, KeyByIPAndPath()(c))
				c.Status(http.StatusNoContent)
			})
			req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
			req.RemoteAddr = "192.0.2.1:4321"
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusNoContent, w.Code)
		})
	}
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	for ip, want := range map[string]bool{"10.1.2.3": true, "127.0.0.1": true, "203.0.113.7": false, "": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(realIPKey, ip)
		if ip == "" {
			c.Request.RemoteAddr = ""
		}
		assert.Equal(t, want, allow(c), ip)
	}
}
