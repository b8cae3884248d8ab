package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSigner_NewAndVerify(t *testing.T) {
	s := NewSigner("secret")
	id, value := s.New()

	if !strings.HasPrefix(value, id+".") {
		t.Errorf("value %q should start with id %q", value, id)
	}
	got, ok := s.Verify(value)
	if !ok {
		t.Fatal("Verify() rejected a freshly signed value")
	}
	if got != id {
		t.Errorf("Verify() id = %q, want %q", got, id)
	}
}

func TestSigner_RejectsTampered(t *testing.T) {
	s := NewSigner("secret")
	_, value := s.New()

	other := NewSigner("other-secret")
	if _, ok := other.Verify(value); ok {
		t.Error("value signed with another key should be rejected")
	}

	cases := []string{
		"",
		"no-dot",
		"not-a-uuid.abc",
		value + "x",
		"00000000-0000-0000-0000-000000000000." + strings.SplitN(value, ".", 2)[1],
	}
	for _, c := range cases {
		if _, ok := s.Verify(c); ok {
			t.Errorf("Verify(%q) should fail", c)
		}
	}
}

func TestSigner_UniqueIDs(t *testing.T) {
	s := NewSigner("secret")
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, _ := s.New()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestSigner_EnsureSetsCookie(t *testing.T) {
	s := NewSigner("secret")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	id := s.Ensure(rec, req)
	if id == "" {
		t.Fatal("Ensure() returned empty id")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected one %q cookie, got %v", CookieName, cookies)
	}
	if got, ok := s.Verify(cookies[0].Value); !ok || got != id {
		t.Errorf("cookie does not verify to %q", id)
	}
}

func TestSigner_EnsureReusesValidCookie(t *testing.T) {
	s := NewSigner("secret")
	id, value := s.New()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: value})

	if got := s.Ensure(rec, req); got != id {
		t.Errorf("Ensure() = %q, want %q", got, id)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("Ensure() should not reset a valid cookie")
	}
}

func TestSigner_EnsureReplacesBadCookie(t *testing.T) {
	s := NewSigner("secret")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged.value"})

	id := s.Ensure(rec, req)
	if id == "" || id == "forged" {
		t.Errorf("Ensure() = %q, want a new id", id)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Error("Ensure() should set a replacement cookie")
	}
}
