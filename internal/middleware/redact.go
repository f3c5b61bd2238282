package middleware

import (
	"net/url"
	"strings"
)

// redactToken masks a session token passed in the query string
func redactToken(path, rawQuery string) string {
	if rawQuery == "" || !strings.Contains(rawQuery, "token=") {
		return path
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil || values.Get("token") == "" {
		return path
	}
	values.Set("token", "REDACTED")
	base, _, _ := strings.Cut(path, "?")
	return base + "?" + values.Encode()
}
