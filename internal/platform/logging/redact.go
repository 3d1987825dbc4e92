package logging

import (
	"log/slog"
	"maps"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/m-mizutani/masq"
)

// Redacted replaces every value the logger must not write.
const Redacted = "[REDACTED]"

// sensitiveHeaders are lowercase header names that carry credentials. They
// double as attribute names masq redacts wherever they appear.
var sensitiveHeaders = []string{
	"authorization",
	"proxy-authorization",
	"cookie",
	"set-cookie",
	"x-api-key",
}

// Raw values that give themselves away even under an innocent attribute name.
var (
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)
	jwtPattern    = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`)
)

var redactAttr = newRedactAttr()

func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(apiKeyPattern),
	}
	for _, name := range sensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	return masq.New(opts...)
}

// IsSensitiveHeader reports whether the named header carries credentials.
func IsSensitiveHeader(name string) bool {
	return slices.Contains(sensitiveHeaders, strings.ToLower(name))
}

// Headers renders h as a "headers" group with credential values replaced by
// Redacted. Repeated values are joined with a comma.
func Headers(h http.Header) slog.Attr {
	attrs := make([]any, 0, len(h))
	for _, name := range slices.Sorted(maps.Keys(h)) {
		value := Redacted
		if !IsSensitiveHeader(name) {
			value = strings.Join(h[name], ",")
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return slog.Group("headers", attrs...)
}
