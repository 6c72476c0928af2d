// Package urlutil renders URLs for diagnostics.
package urlutil

import (
	"errors"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// redactedValue replaces sensitive query values in Display output.
const redactedValue = "REDACTED"

// sensitiveParams are query keys whose values never reach the logs.
var sensitiveParams = map[string]struct{}{
	"token": {}, "access_token": {}, "api_key": {}, "apikey": {},
	"key": {}, "password": {}, "secret": {}, "sig": {}, "signature": {},
}

// Display returns raw in a form safe to put in a log line: userinfo is
// dropped, sensitive query values are masked, the fragment is removed and
// the host is lower-cased and converted to its ASCII (punycode) form.
// Strings that do not parse are returned unchanged, since the caller still
// wants to see what was attempted.
func Display(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return raw
	}

	u.User = nil
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)

	host := strings.ToLower(u.Hostname())
	if puny, err := idna.Lookup.ToASCII(host); err == nil {
		host = puny
	}
	port := u.Port()
	switch {
	case (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443"):
		u.Host = hostOnly(host)
	case port != "":
		u.Host = net.JoinHostPort(host, port)
	default:
		u.Host = hostOnly(host)
	}

	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			if _, ok := sensitiveParams[strings.ToLower(k)]; ok {
				q.Set(k, redactedValue)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// hostOnly re-brackets IPv6 literals that Hostname stripped.
func hostOnly(host string) string {
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}

// Host returns the lower-cased ASCII host of raw, or "" if raw has none.
func Host(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if puny, err := idna.Lookup.ToASCII(host); err == nil {
		return puny
	}
	return host
}

// ErrorText is err.Error() with the URL of any wrapped *url.Error passed
// through Display, so transport failures can be logged as-is.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	text := err.Error()
	var ue *url.Error
	if errors.As(err, &ue) {
		safe := &url.Error{Op: ue.Op, URL: Display(ue.URL), Err: ue.Err}
		text = strings.Replace(text, ue.Error(), safe.Error(), 1)
	}
	return text
}
