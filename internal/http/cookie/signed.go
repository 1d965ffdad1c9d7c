// Package cookie seals small JSON values into tamper-evident cookie values
// and writes them with the attributes every admin cookie shares.
package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var ErrInvalid = errors.New("invalid signed cookie")

type Signer struct {
	secret []byte
}

func NewSigner(secret []byte) Signer {
	return Signer{secret: secret}
}

// Seal encodes v as base64(json).base64(hmac-sha256).
func (s Signer) Seal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + s.Sign(payload), nil
}

// Open verifies raw and decodes its payload into v.
func (s Signer) Open(raw string, v any) error {
	payload, sig, ok := strings.Cut(raw, ".")
	if !ok || payload == "" || !hmac.Equal([]byte(s.Sign(payload)), []byte(sig)) {
		return ErrInvalid
	}
	b, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return ErrInvalid
	}
	if err := json.Unmarshal(b, v); err != nil {
		return ErrInvalid
	}
	return nil
}

func (s Signer) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Write sets an HttpOnly, SameSite=Lax cookie on "/".
func Write(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}

func Expire(c *gin.Context, name string, secure bool) {
	Write(c, name, "", -1, secure)
}
