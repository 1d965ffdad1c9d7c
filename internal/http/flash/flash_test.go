package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pehlione.com/admin/pkg/view"
)

func TestEncodeDecode(t *testing.T) {
	c := NewCodec([]byte("secret-secret-secret"), "flash", false)

	v, err := c.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Order ORD-1 is now shipped."})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashSuccess, f.Kind)
	assert.Equal(t, "Order ORD-1 is now shipped.", f.Message)
}

func TestDecodeRejectsTamperedOrEmpty(t *testing.T) {
	c := NewCodec([]byte("secret-secret-secret"), "flash", false)

	empty, _ := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "  "})
	_, err := c.Decode(empty)
	assert.ErrorIs(t, err, ErrInvalid)

	v, _ := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "hi"})
	other := NewCodec([]byte("different-secret-value"), "flash", false)
	_, err = other.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = c.Decode("nodot")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestPutThenPop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCodec([]byte("secret-secret-secret"), "flash", false)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	require.NoError(t, c.Put(ctx, view.Flash{Kind: view.FlashError, Message: "Sign in first."}))
	set := w.Result().Cookies()
	require.Len(t, set, 1)

	w = httptest.NewRecorder()
	ctx, _ = gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx.Request.AddCookie(set[0])

	f := c.Pop(ctx)
	require.NotNil(t, f)
	assert.Equal(t, "Sign in first.", f.Message)
	expired := w.Result().Cookies()
	require.Len(t, expired, 1)
	assert.Negative(t, expired[0].MaxAge)
}

func TestPopWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCodec([]byte("secret-secret-secret"), "flash", false)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, c.Pop(ctx))
	assert.Empty(t, w.Result().Cookies())
}
