package idempotency

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"carriers/internal/generated/dto"
	"carriers/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	Header         = "Idempotency-Key"
	ReplayedHeader = "Idempotent-Replayed"

	keyPrefix        = "idempotency:carriers:v1:"
	inProgressMarker = "__in_progress__"
	maxKeyLength     = 255
	maxBodyBytes     = 1 << 20
	cacheTimeout     = 2 * time.Second
)

type storedResponse struct {
	Fingerprint string            `json:"fingerprint"`
	Status      int               `json:"status"`
	Body        []byte            `json:"body"`
	Headers     map[string]string `json:"headers"`
}

// Middleware повторяет сохранённый ответ для уже обработанного Idempotency-Key.
// Без заголовка запрос проходит как есть. Если redis недоступен, middleware
// пропускает запрос дальше: повтор создаст дубликат, но сервис не падает.
// Ответы 5xx не сохраняются, такой запрос можно повторить.
func Middleware(log handlerLogger, cache Cache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(Header)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxKeyLength {
				writeError(w, log, http.StatusBadRequest, "Idempotency-Key is too long")
				return
			}

			body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
			if err != nil {
				writeError(w, log, http.StatusBadRequest, "Invalid request body")
				return
			}
			if len(body) > maxBodyBytes {
				writeError(w, log, http.StatusRequestEntityTooLarge, "Request body is too large")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			fingerprint := fingerprintOf(r, body)

			keyLog := log.With(logger.NewField("idempotency_key", key))
			cacheKey := keyPrefix + key

			// после ответа контекст запроса может быть уже отменён таймаутом
			cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), cacheTimeout)
			defer cancel()

			cached, err := cache.Get(cacheCtx, cacheKey).Result()
			switch {
			case err == nil:
				replay(w, keyLog, cached, fingerprint)
				return
			case !errors.Is(err, redis.Nil):
				keyLog.With(logger.NewField("error", err)).Warn("idempotency lookup failed, passing through")
				next.ServeHTTP(w, r)
				return
			}

			reserved, err := cache.SetNX(cacheCtx, cacheKey, inProgressMarker, ttl).Result()
			if err != nil {
				keyLog.With(logger.NewField("error", err)).Warn("idempotency reservation failed, passing through")
				next.ServeHTTP(w, r)
				return
			}
			if !reserved {
				writeError(w, keyLog, http.StatusConflict, "Request with this Idempotency-Key is already in progress")
				return
			}

			rec := &recorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= http.StatusInternalServerError {
				cache.Del(cacheCtx, cacheKey)
				return
			}

			stored := storedResponse{
				Fingerprint: fingerprint,
				Status:      rec.status,
				Body:        rec.body.Bytes(),
				Headers: map[string]string{
					"Content-Type": rec.Header().Get("Content-Type"),
				},
			}
			payload, err := json.Marshal(stored)
			if err != nil {
				keyLog.With(logger.NewField("error", err)).Error("failed to encode idempotent response")
				cache.Del(cacheCtx, cacheKey)
				return
			}

			if err := cache.Set(cacheCtx, cacheKey, payload, ttl).Err(); err != nil {
				keyLog.With(logger.NewField("error", err)).Error("failed to persist idempotent response")
				cache.Del(cacheCtx, cacheKey)
			}
		})
	}
}

func replay(w http.ResponseWriter, log logger.Logger, cached, fingerprint string) {
	if cached == inProgressMarker {
		writeError(w, log, http.StatusConflict, "Request with this Idempotency-Key is already in progress")
		return
	}

	var stored storedResponse
	if err := json.Unmarshal([]byte(cached), &stored); err != nil {
		log.With(logger.NewField("error", err)).Warn("failed to decode stored idempotent response")
		writeError(w, log, http.StatusConflict, "Request with this Idempotency-Key cannot be replayed")
		return
	}

	if stored.Fingerprint != fingerprint {
		writeError(w, log, http.StatusUnprocessableEntity, "Idempotency-Key was used with a different request")
		return
	}

	for header, value := range stored.Headers {
		if value != "" {
			w.Header().Set(header, value)
		}
	}
	w.Header().Set(ReplayedHeader, "true")
	w.WriteHeader(stored.Status)
	if _, err := w.Write(stored.Body); err != nil {
		log.With(logger.NewField("error", err)).Error("failed to write replayed response")
	}
}

func fingerprintOf(r *http.Request, body []byte) string {
	h := sha256.New()
	h.Write([]byte(r.Method))
	h.Write([]byte{0})
	h.Write([]byte(r.URL.Path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func writeError(w http.ResponseWriter, log logger.Logger, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dto.ErrorResponse{Message: message}); err != nil {
		log.With(logger.NewField("error", err)).Error("encode JSON response")
	}
}

// recorder пишет ответ клиенту и одновременно запоминает его.
type recorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
