package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

type ctxKey string

const customerIDKey ctxKey = "customerID"

const (
	// HeaderCustomerID заголовок аутентификации клиента
	HeaderCustomerID = "X-Customer-ID"

	msgMissingCustomerID = "отсутствует заголовок X-Customer-ID"
	msgInvalidCustomerID = "некорректный X-Customer-ID"
)

// Auth проверяет наличие и формат заголовка X-Customer-ID и кладет
// ID клиента в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderCustomerID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingCustomerID)
			return
		}

		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || customerID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidCustomerID)
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey, customerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCustomerID извлекает ID клиента из контекста запроса
func GetCustomerID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(customerIDKey).(int64)
	return id, ok
}
