package cookies

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

// DefaultMaxAge bounds how long a signed value stays verifiable.
const DefaultMaxAge = 30 * 24 * time.Hour

// Codec signs and verifies cookie values with an HMAC key. Values are signed, not encrypted.
type Codec struct {
	sc     *securecookie.SecureCookie
	secure bool
	maxAge time.Duration
}

// NewCodec builds a codec from secret. secure marks issued cookies as HTTPS-only.
func NewCodec(secret string, secure bool) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("cookie secret must not be empty")
	}
	sc := securecookie.New([]byte(secret), nil).
		SetSerializer(securecookie.JSONEncoder{}).
		MaxAge(int(DefaultMaxAge.Seconds()))
	return &Codec{sc: sc, secure: secure, maxAge: DefaultMaxAge}, nil
}

// Encode returns the "s:"-prefixed cookie value for name.
func (c *Codec) Encode(name, value string) (string, error) {
	token, err := c.sc.Encode(name, value)
	if err != nil {
		return "", fmt.Errorf("failed to sign cookie %q: %w", name, err)
	}
	return signedPrefix + token, nil
}

// Decode verifies an "s:"-prefixed value issued for name.
func (c *Codec) Decode(name, raw string) (string, error) {
	token, ok := strings.CutPrefix(raw, signedPrefix)
	if !ok {
		return "", fmt.Errorf("cookie %q is not signed", name)
	}
	var value string
	if err := c.sc.Decode(name, token, &value); err != nil {
		return "", fmt.Errorf("failed to verify cookie %q: %w", name, err)
	}
	return value, nil
}

type SetOptions struct {
	Path   string
	MaxAge time.Duration
}

// SetSigned writes a signed, HTTP-only cookie on the response.
func (c *Codec) SetSigned(ec echo.Context, name, value string, opts SetOptions) error {
	encoded, err := c.Encode(name, value)
	if err != nil {
		return err
	}
	if opts.Path == "" {
		opts.Path = "/"
	}
	if opts.MaxAge <= 0 || opts.MaxAge > c.maxAge {
		opts.MaxAge = c.maxAge
	}
	ec.SetCookie(&http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     opts.Path,
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
