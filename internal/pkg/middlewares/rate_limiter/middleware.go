package rate_limiter

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"carriers/internal/generated/dto"
	"carriers/pkg/logger"

	"github.com/gorilla/mux"
)

const (
	messageRateLimited     = "Rate limit exceeded. Try again later."
	messageTooManyAttempts = "Too many PIN attempts. Try again later."
)

// rateLimiterQPS - в будущем будет отдельный конфиг для rate limiter,
// пока принмаем поле от конфига сервера простым int
func Middleware(log handlerLogger, rateLimiterQPS int, rlimiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rlimiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			handlerPath := routeTemplate(r)
			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("path", r.URL.Path),
				logger.NewField("route", handlerPath),
				logger.NewField("remote_addr", r.RemoteAddr),
			).Warn("rate limit exceeded")

			RateLimitExceededTotal.WithLabelValues(r.Method, handlerPath).Inc()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimiterQPS))
			reject(w, log, messageRateLimited)
		})
	}
}

// PINAttempts ограничивает перебор PIN: бюджет ведётся на IP клиента,
// отказ не доходит до хранилища.
func PINAttempts(log handlerLogger, attemptsPerMinute int, limiter KeyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientIP(r)
			if limiter.AllowKey(client) {
				next.ServeHTTP(w, r)
				return
			}

			handlerPath := routeTemplate(r)
			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", handlerPath),
				logger.NewField("client", client),
			).Warn("PIN attempts exceeded")

			PINAttemptsExceededTotal.WithLabelValues(r.Method, handlerPath).Inc()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(attemptsPerMinute))
			reject(w, log, messageTooManyAttempts)
		})
	}
}

func reject(w http.ResponseWriter, log handlerLogger, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)

	err := json.NewEncoder(w).Encode(dto.ErrorResponse{Message: message})
	if err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("failed to write rate limit response")
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return r.URL.Path
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
