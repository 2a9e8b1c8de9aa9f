// Package draftcookie persists the filters-panel draft between requests in
// an HMAC-signed cookie, so half-typed filter edits survive navigation
// without ever touching the applied query.
package draftcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/querystate"
)

var ErrInvalid = errors.New("invalid draft cookie")

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// value format: base64(json).base64(hmac(payload))
func (c *Codec) Encode(d querystate.FiltersDraft) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (querystate.FiltersDraft, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 {
		return querystate.FiltersDraft{}, ErrInvalid
	}
	payload := parts[0]
	if !verify(c.Secret, payload, parts[1]) {
		return querystate.FiltersDraft{}, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return querystate.FiltersDraft{}, ErrInvalid
	}
	var d querystate.FiltersDraft
	if err := json.Unmarshal(raw, &d); err != nil {
		return querystate.FiltersDraft{}, ErrInvalid
	}
	return d, nil
}

// Get reads the draft; a missing or tampered cookie yields (zero, false)
// and clears itself.
func (c *Codec) Get(ctx *gin.Context) (querystate.FiltersDraft, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return querystate.FiltersDraft{}, false
	}
	d, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return querystate.FiltersDraft{}, false
	}
	return d, true
}

func (c *Codec) Set(ctx *gin.Context, d querystate.FiltersDraft) {
	val, err := c.Encode(d)
	if err != nil {
		return
	}
	maxAge := int((24 * time.Hour).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, val, maxAge, "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
