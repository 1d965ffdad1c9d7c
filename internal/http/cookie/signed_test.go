package cookie

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	A string `json:"a"`
	B int    `json:"b"`
}

func TestSealOpen(t *testing.T) {
	s := NewSigner([]byte("0123456789abcdef"))

	raw, err := s.Seal(payload{A: "x", B: 2})
	require.NoError(t, err)

	var got payload
	require.NoError(t, s.Open(raw, &got))
	assert.Equal(t, payload{A: "x", B: 2}, got)
}

func TestOpenRejects(t *testing.T) {
	s := NewSigner([]byte("0123456789abcdef"))
	good, _ := s.Seal(payload{A: "x"})
	foreign, _ := NewSigner([]byte("another-secret")).Seal(payload{A: "x"})

	for name, raw := range map[string]string{
		"tampered":   good[:len(good)-2] + "zz",
		"foreign":    foreign,
		"no dot":     "abc",
		"empty":      "",
		"bad base64": "!!!." + s.Sign("!!!"),
		"not json":   "bm9wZQ." + s.Sign("bm9wZQ"),
	} {
		var got payload
		assert.ErrorIs(t, s.Open(raw, &got), ErrInvalid, name)
	}
}

func TestWriteAndExpire(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Write(c, "k", "v", 60, true)
	Expire(c, "gone", false)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "v", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, "gone", cookies[1].Name)
	assert.Negative(t, cookies[1].MaxAge)
}
