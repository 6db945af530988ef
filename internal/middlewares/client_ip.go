package middlewares

import (
	"net"
	"net/http"
	"strings"
)

// The service runs behind the platform ingress, which sets X-Real-IP for the
// client and appends every hop to X-Forwarded-For. Only the first
// X-Forwarded-For entry is the client; the rest are proxies.
var proxyHeaders = []string{"X-Real-IP", "X-Forwarded-For"}

// ClientIPMiddleware rewrites RemoteAddr to "clientIP:port" so logs and
// rate decisions downstream see the real client rather than the ingress.
func ClientIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := clientIP(r); ip != "" {
			port := "0"
			if _, p, err := net.SplitHostPort(r.RemoteAddr); err == nil && p != "" {
				port = p
			}
			r.RemoteAddr = net.JoinHostPort(ip, port)
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		first, _, _ := strings.Cut(value, ",")
		if parsed := net.ParseIP(strings.TrimSpace(first)); parsed != nil {
			return parsed.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if parsed := net.ParseIP(host); parsed != nil {
		return parsed.String()
	}

	return ""
}
