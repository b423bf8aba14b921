package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vitrine-shop/go-backend/internal/guard"
	"github.com/vitrine-shop/go-backend/pkg/e"
	"github.com/vitrine-shop/go-backend/pkg/logger"
)

// maxGuardedBodySize ограничивает тело мутирующего запроса.
const maxGuardedBodySize = 1 << 20

// adminCredential извлекает только поле пароля из тела запроса.
type adminCredential struct {
	AdminPassword string `json:"adminPassword"`
}

// GuardMiddleware проверяет доступ к мутирующим операциям каталога.
// Пароль принимается из поля adminPassword тела запроса или из заголовка
// X-Admin-Password. Тело восстанавливается для последующего хендлера.
// Значение пароля в лог не попадает.
func GuardMiddleware(g *guard.Guard, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			password, restoredBody, err := extractPassword(w, r)
			if err != nil {
				WriteError(w, err)
				return
			}
			r.Body = restoredBody

			clientIP := guard.ClientIP(r)

			if err := g.Authorize(password, clientIP); err != nil {
				log.Warnf("access denied: method=%s path=%s ip=%s password_provided=%t",
					r.Method, r.URL.Path, clientIP, password != "")
				WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractPassword читает пароль из тела или заголовка и возвращает
// перечитываемое тело запроса. Тело сверх лимита — отдельная ошибка,
// а не обрезанный JSON в хендлере.
func extractPassword(w http.ResponseWriter, r *http.Request) (string, io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxGuardedBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return "", nil, e.ErrRequestTooLarge
		}
		return "", nil, e.Wrap("read body", e.ErrStatusBadRequest)
	}
	r.Body.Close()

	restored := io.NopCloser(bytes.NewReader(body))

	var cred adminCredential
	if len(body) > 0 {
		// Невалидный JSON не ошибка guard'а: хендлер сам отклонит тело
		_ = json.Unmarshal(body, &cred)
	}

	password := cred.AdminPassword
	if password == "" {
		password = r.Header.Get("X-Admin-Password")
	}

	return password, restored, nil
}
