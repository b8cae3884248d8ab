package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const CookieName = "session"

// Signer mints and checks session ids of the form <uuid>.<mac>.
type Signer struct {
	key []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{key: []byte(secret)}
}

// New returns a fresh session id and its signed cookie value.
func (s *Signer) New() (id string, value string) {
	id = uuid.New().String()
	return id, id + "." + s.mac(id)
}

// Verify returns the session id carried by value if its signature matches.
func (s *Signer) Verify(value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.mac(id))) {
		return "", false
	}
	return id, true
}

// Ensure reads the session cookie from r, setting a new one on w when it is
// missing or has a bad signature.
func (s *Signer) Ensure(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, ok := s.Verify(c.Value); ok {
			return id
		}
	}
	id, value := s.New()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Signer) mac(id string) string {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
