package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	// HeaderSweepToken заголовок авторизации служебного запуска свипера
	HeaderSweepToken = "X-Sweep-Token"

	msgInvalidSweepToken = "некорректный токен"
)

// SweepAuth пропускает запрос только с верным служебным токеном.
// Сравнение токенов выполняется за постоянное время.
func SweepAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(HeaderSweepToken)
			if token == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondForbidden(w, msgInvalidSweepToken)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
