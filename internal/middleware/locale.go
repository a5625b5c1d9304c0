package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

// LocaleKey carries the negotiated UI locale through the request context.
var LocaleKey = localeContextKey{}

var supported = []language.Tag{
	language.Vietnamese, // default
	language.English,
}

var matcher = language.NewMatcher(supported)

// Locale negotiates the response language. An explicit X-Locale header wins,
// then Accept-Language, then the platform default (vi).
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := negotiate(r.Header.Get("X-Locale"), r.Header.Get("Accept-Language"))
		ctx := context.WithValue(r.Context(), LocaleKey, tag)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func negotiate(explicit, acceptLanguage string) language.Tag {
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			matched, _, _ := matcher.Match(tag)
			return matched
		}
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}
	matched, _, _ := matcher.Match(tags...)
	return matched
}

// LocaleFromContext returns the negotiated locale, falling back to Vietnamese.
func LocaleFromContext(ctx context.Context) language.Tag {
	if v, ok := ctx.Value(LocaleKey).(language.Tag); ok {
		return v
	}
	return supported[0]
}
