// Package guard реализует контроль доступа к мутирующим операциям каталога:
// проверку общего админ-пароля и проверку адреса источника по allow-list.
// Обе проверки независимы и включаются конфигурацией.
package guard

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/vitrine-shop/go-backend/internal/cfg"
	"github.com/vitrine-shop/go-backend/pkg/e"
)

// UnknownIP — значение адреса, когда источник запроса определить не удалось.
const UnknownIP = "unknown"

// Guard принимает решение о допуске мутирующего запроса.
// Секрет и allow-list передаются при создании, ambient-окружение не читается.
type Guard struct {
	secret        string
	checkPassword bool
	checkIP       bool
	allowedIPs    map[string]struct{}
}

func NewGuard(cfg *cfg.GuardCfg) *Guard {
	allowed := make(map[string]struct{}, len(cfg.AllowedIPs))
	for _, ip := range cfg.AllowedIPs {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			allowed[ip] = struct{}{}
		}
	}

	return &Guard{
		secret:        cfg.AdminPassword,
		checkPassword: cfg.AdminPassword != "",
		checkIP:       cfg.IPCheckEnabled,
		allowedIPs:    allowed,
	}
}

// Authorize проверяет все включённые правила доступа.
// Запрос допускается, только если каждая включённая проверка прошла.
func (g *Guard) Authorize(password string, clientIP string) error {
	if g.checkIP {
		if _, ok := g.allowedIPs[clientIP]; !ok {
			return e.ErrIPNotAllowed
		}
	}

	if g.checkPassword {
		if password == "" {
			return e.ErrPasswordRequired
		}
		if subtle.ConstantTimeCompare([]byte(password), []byte(g.secret)) != 1 {
			return e.ErrWrongPassword
		}
	}

	return nil
}

// PasswordCheckEnabled сообщает, настроена ли проверка пароля.
func (g *Guard) PasswordCheckEnabled() bool {
	return g.checkPassword
}

// IPCheckEnabled сообщает, включена ли проверка адреса источника.
func (g *Guard) IPCheckEnabled() bool {
	return g.checkIP
}

// ClientIP определяет адрес источника запроса: первый hop из X-Forwarded-For,
// затем X-Real-IP, затем адрес соединения. Адрес канонизируется:
// префикс ::ffff: и порт отбрасываются.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return CanonicalIP(first)
	}

	if real := r.Header.Get("X-Real-Ip"); real != "" {
		return CanonicalIP(real)
	}

	return CanonicalIP(r.RemoteAddr)
}

// CanonicalIP приводит адрес к каноническому виду для сравнения с allow-list.
func CanonicalIP(addr string) string {
	addr = strings.TrimSpace(addr)

	// Форма [::1]:8080
	if strings.HasPrefix(addr, "[") {
		if host, _, err := net.SplitHostPort(addr); err == nil {
			addr = host
		}
	}

	addr = strings.TrimPrefix(addr, "::ffff:")

	// Порт отрезается только у IPv4/host:port; "голый" IPv6 не трогаем
	if idx := strings.LastIndex(addr, ":"); idx != -1 && strings.Count(addr, ":") == 1 {
		addr = addr[:idx]
	}

	if addr == "" {
		return UnknownIP
	}

	return addr
}
