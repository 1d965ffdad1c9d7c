// Package session keeps the signed-in admin in an HMAC-signed cookie. The
// cookie holds the API token the admin signed in with; nothing is stored
// server side.
package session

import (
	"time"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/cookie"
)

var ErrInvalid = cookie.ErrInvalid

const DefaultTTL = 12 * time.Hour

type Session struct {
	Name      string    `json:"n"`
	Token     string    `json:"t"`
	ExpiresAt time.Time `json:"e"`
}

type Codec struct {
	CookieName string
	Secure     bool
	TTL        time.Duration

	signer cookie.Signer
	now    func() time.Time
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{
		CookieName: name,
		Secure:     secure,
		TTL:        DefaultTTL,
		signer:     cookie.NewSigner(secret),
		now:        time.Now,
	}
}

func (c *Codec) Encode(s Session) (string, error) {
	return c.signer.Seal(s)
}

func (c *Codec) Decode(v string) (Session, error) {
	var s Session
	if err := c.signer.Open(v, &s); err != nil {
		return Session{}, err
	}
	if s.Token == "" || !c.now().Before(s.ExpiresAt) {
		return Session{}, ErrInvalid
	}
	return s, nil
}

// Get returns the session of the request; a bad or expired cookie is cleared.
func (c *Codec) Get(ctx *gin.Context) (Session, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return Session{}, false
	}
	s, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return Session{}, false
	}
	return s, true
}

func (c *Codec) Set(ctx *gin.Context, name, token string) error {
	val, err := c.Encode(Session{Name: name, Token: token, ExpiresAt: c.now().Add(c.TTL)})
	if err != nil {
		return err
	}
	cookie.Write(ctx, c.CookieName, val, int(c.TTL.Seconds()), c.Secure)
	return nil
}

func (c *Codec) Clear(ctx *gin.Context) {
	cookie.Expire(ctx, c.CookieName, c.Secure)
}
