// Package flash carries one-shot messages across a redirect in a signed,
// short-lived cookie.
package flash

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/cookie"
	"pehlione.com/admin/pkg/view"
)

var ErrInvalid = cookie.ErrInvalid

// TTL is long enough to survive one redirect.
const TTL = 2 * time.Minute

type Codec struct {
	CookieName string
	Secure     bool

	signer cookie.Signer
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	return &Codec{CookieName: cookieName, Secure: secure, signer: cookie.NewSigner(secret)}
}

func (c *Codec) Encode(f view.Flash) (string, error) {
	return c.signer.Seal(f)
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	var f view.Flash
	if err := c.signer.Open(v, &f); err != nil {
		return nil, err
	}
	if strings.TrimSpace(f.Message) == "" {
		return nil, ErrInvalid
	}
	return &f, nil
}

// Put queues f for the next request.
func (c *Codec) Put(ctx *gin.Context, f view.Flash) error {
	v, err := c.Encode(f)
	if err != nil {
		return err
	}
	cookie.Write(ctx, c.CookieName, v, int(TTL.Seconds()), c.Secure)
	return nil
}

// Pop returns the queued message, if any, and expires the cookie so it is
// shown once.
func (c *Codec) Pop(ctx *gin.Context) *view.Flash {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return nil
	}
	cookie.Expire(ctx, c.CookieName, c.Secure)
	f, err := c.Decode(v)
	if err != nil {
		return nil
	}
	return f
}
