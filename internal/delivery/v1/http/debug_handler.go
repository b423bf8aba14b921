package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vitrine-shop/go-backend/internal/guard"
)

// debugIP показывает, как сервер определяет адрес источника запроса.
// Полезно при настройке allow-list за прокси.
func debugIP(w http.ResponseWriter, r *http.Request) {
	diagnostics := map[string]any{
		"resolved_ip":     guard.ClientIP(r),
		"remote_addr":     r.RemoteAddr,
		"x-forwarded-for": r.Header.Get("X-Forwarded-For"),
		"x-real-ip":       r.Header.Get("X-Real-Ip"),
		"user-agent":      r.Header.Get("User-Agent"),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Envelope{
		Success: true,
		Data:    diagnostics,
		Message: "IP Detection Diagnostics",
	})
}
