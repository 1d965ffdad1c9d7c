package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodec(now time.Time) *Codec {
	c := New([]byte("0123456789abcdef"), "admin_session", false)
	c.now = func() time.Time { return now }
	return c
}

func TestRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := newCodec(now)

	v, err := c.Encode(Session{Name: "ada", Token: "a.b.c", ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)

	s, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "ada", s.Name)
	assert.Equal(t, "a.b.c", s.Token)
}

func TestDecodeRejects(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := newCodec(now)

	expired, _ := c.Encode(Session{Name: "ada", Token: "t", ExpiresAt: now.Add(-time.Second)})
	noToken, _ := c.Encode(Session{Name: "ada", ExpiresAt: now.Add(time.Hour)})
	good, _ := c.Encode(Session{Name: "ada", Token: "t", ExpiresAt: now.Add(time.Hour)})
	other := New([]byte("another-secret-value"), "admin_session", false)
	foreign, _ := other.Encode(Session{Name: "ada", Token: "t", ExpiresAt: now.Add(time.Hour)})

	for name, v := range map[string]string{
		"expired":  expired,
		"no token": noToken,
		"tampered": good[:len(good)-2] + "xx",
		"foreign":  foreign,
		"no dot":   "abc",
		"empty":    "",
		"bad base": "!!!." + c.signer.Sign("!!!"),
	} {
		_, err := c.Decode(v)
		assert.ErrorIs(t, err, ErrInvalid, name)
	}
}

func TestGetClearsBadCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := newCodec(time.Now())
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx.Request.AddCookie(&http.Cookie{Name: "admin_session", Value: "garbage.sig"})

	_, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestSetThenGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := newCodec(time.Now())

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, c.Set(ctx, "ada", "tok"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	ctx2, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx2.Request.AddCookie(cookies[0])
	s, ok := c.Get(ctx2)
	require.True(t, ok)
	assert.Equal(t, "tok", s.Token)
}
