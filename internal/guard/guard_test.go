package guard

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/vitrine-shop/go-backend/internal/cfg"
	"github.com/vitrine-shop/go-backend/pkg/e"
)

func TestAuthorizePasswordCheck(t *testing.T) {
	g := NewGuard(&cfg.GuardCfg{AdminPassword: "s3cret"})

	if err := g.Authorize("", "1.2.3.4"); !errors.Is(err, e.ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
	if err := g.Authorize("wrong", "1.2.3.4"); !errors.Is(err, e.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if err := g.Authorize("s3cret", "1.2.3.4"); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestAuthorizePasswordCheckDisabled(t *testing.T) {
	g := NewGuard(&cfg.GuardCfg{})

	if err := g.Authorize("", "1.2.3.4"); err != nil {
		t.Fatalf("expected pass with no configured checks, got %v", err)
	}
}

func TestAuthorizeIPCheck(t *testing.T) {
	g := NewGuard(&cfg.GuardCfg{
		AllowedIPs:     []string{"127.0.0.1", "203.0.113.5"},
		IPCheckEnabled: true,
	})

	if err := g.Authorize("", "127.0.0.1"); err != nil {
		t.Fatalf("expected allow-listed address to pass, got %v", err)
	}
	if err := g.Authorize("", "10.0.0.1"); !errors.Is(err, e.ErrIPNotAllowed) {
		t.Fatalf("expected ErrIPNotAllowed, got %v", err)
	}
	if err := g.Authorize("", UnknownIP); !errors.Is(err, e.ErrIPNotAllowed) {
		t.Fatalf("expected ErrIPNotAllowed for unknown address, got %v", err)
	}
}

func TestAuthorizeIPCheckDisabled(t *testing.T) {
	g := NewGuard(&cfg.GuardCfg{
		AllowedIPs:     []string{"127.0.0.1"},
		IPCheckEnabled: false,
	})

	if err := g.Authorize("", "10.0.0.1"); err != nil {
		t.Fatalf("expected pass with disabled IP check, got %v", err)
	}
}

func TestAuthorizeBothChecks(t *testing.T) {
	g := NewGuard(&cfg.GuardCfg{
		AdminPassword:  "s3cret",
		AllowedIPs:     []string{"127.0.0.1"},
		IPCheckEnabled: true,
	})

	// Адрес вне списка: пароль не спасает
	if err := g.Authorize("s3cret", "10.0.0.1"); !errors.Is(err, e.ErrIPNotAllowed) {
		t.Fatalf("expected ErrIPNotAllowed, got %v", err)
	}
	// Адрес в списке, но пароль не передан
	if err := g.Authorize("", "127.0.0.1"); !errors.Is(err, e.ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
	if err := g.Authorize("s3cret", "127.0.0.1"); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestCanonicalIP(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"127.0.0.1", "127.0.0.1"},
		{"127.0.0.1:8080", "127.0.0.1"},
		{"::ffff:203.0.113.5", "203.0.113.5"},
		{"::ffff:203.0.113.5:51000", "203.0.113.5"},
		{"  192.0.2.7  ", "192.0.2.7"},
		{"::1", "::1"},
		{"[::1]:51000", "::1"},
		{"", "unknown"},
	}

	for _, tc := range cases {
		if got := CanonicalIP(tc.in); got != tc.want {
			t.Fatalf("CanonicalIP(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClientIPHeaderOrder(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/products", nil)
	r.RemoteAddr = "10.0.0.9:41000"

	if got := ClientIP(r); got != "10.0.0.9" {
		t.Fatalf("expected remote addr fallback, got %q", got)
	}

	r.Header.Set("X-Real-Ip", "198.51.100.2")
	if got := ClientIP(r); got != "198.51.100.2" {
		t.Fatalf("expected x-real-ip, got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.5, 70.41.3.18")
	if got := ClientIP(r); got != "203.0.113.5" {
		t.Fatalf("expected first x-forwarded-for hop, got %q", got)
	}
}
