package health

import (
	"encoding/json"
	"net/http"
)

// Check представляет именованную проверку готовности зависимости сервиса.
// Required=false означает, что зависимость опциональна: её недоступность
// отражается в ответе, но не переводит сервис в 503 (degraded mode).
type Check struct {
	Name     string
	Required bool
	Ready    func() bool
}

// Handler возвращает HTTP handler для health check endpoint.
// Возвращает 200 OK, если все required проверки проходят, иначе 503.
// Тело ответа содержит статус каждой проверки, чтобы деградация
// опциональных зависимостей (например, недоступный Kafka) была видна.
func Handler(checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		deps := make(map[string]bool, len(checks))

		for _, c := range checks {
			ready := c.Ready == nil || c.Ready()
			deps[c.Name] = ready
			if !ready {
				if c.Required {
					status = "not ready"
					code = http.StatusServiceUnavailable
				} else if status == "ok" {
					status = "degraded"
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"status": status,
			"checks": deps,
		})
	}
}
