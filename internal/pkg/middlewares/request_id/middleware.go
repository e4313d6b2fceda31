package request_id

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const Header = "X-Request-ID"

// maxLength отсекает мусорные значения от клиента, они не попадут в логи.
const maxLength = 128

type ctxKey struct{}

// Middleware берёт X-Request-ID клиента или выдаёт новый uuid
// и возвращает его в ответе.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(Header)
			if reqID == "" || len(reqID) > maxLength {
				reqID = uuid.NewString()
			}

			w.Header().Set(Header, reqID)
			ctx := context.WithValue(r.Context(), ctxKey{}, reqID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) string {
	reqID, _ := ctx.Value(ctxKey{}).(string)
	return reqID
}
