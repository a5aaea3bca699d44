package handler

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type apiKeyStatus int

const (
	apiKeyValid apiKeyStatus = iota
	apiKeyMissing
	apiKeyInvalid
)

// checkAPIKey 只判断请求头中的值是否和配置的密钥完全一致
func checkAPIKey(header http.Header, name, secret string) apiKeyStatus {
	value := header.Get(name)
	switch {
	case value == "":
		return apiKeyMissing
	case subtle.ConstantTimeCompare([]byte(value), []byte(secret)) != 1:
		return apiKeyInvalid
	default:
		return apiKeyValid
	}
}

func (h *Handler) apiKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch checkAPIKey(r.Header, h.config.APIKey.Header, h.config.APIKey.Value) {
		case apiKeyMissing:
			h.errorResponse(w, r, http.StatusUnauthorized, "缺少 API 密钥")
			return
		case apiKeyInvalid:
			h.errorResponse(w, r, http.StatusForbidden, "API 密钥无效")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) employeeID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 不是合法 UUID 的 ID 不可能对应任何员工
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.notFound(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), EmployeeIDCtx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
