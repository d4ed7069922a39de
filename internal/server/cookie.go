package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const sessionCookie = "jobscout_session"

// CookieManager issues and verifies signed session identity cookies. The
// cookie value is "<uuid>.<hmac-sha256>"; a missing or tampered cookie simply
// gets a fresh identity.
type CookieManager struct {
	secret []byte
}

func NewCookieManager(secret string) *CookieManager {
	return &CookieManager{secret: []byte(secret)}
}

// SessionID returns the verified session id from the request cookie, issuing
// and setting a new one when none is valid.
func (m *CookieManager) SessionID(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		if id, ok := m.verify(cookie.Value); ok {
			return id
		}
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    m.sign(id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (m *CookieManager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

func (m *CookieManager) verify(value string) (string, bool) {
	id, _, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(m.sign(id)), []byte(value)) {
		return "", false
	}
	return id, true
}
