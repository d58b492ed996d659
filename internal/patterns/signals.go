package patterns

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cloudflare/ahocorasick"
)

var (
	urlPattern  = regexp.MustCompile(`(?i)https?://[^\s<>"']+`)
	ipv4Pattern = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)

	shortenerMatcher = ahocorasick.NewStringMatcher(ShortenerDomains)
)

// FindURLs returns every http(s) URL in raw, in order of appearance
func FindURLs(raw string) []string {
	return urlPattern.FindAllString(raw, -1)
}

// URLHost returns the lower-cased host of a URL matched by FindURLs, without
// userinfo or port
func URLHost(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.IndexAny(u, "/?#\\"); i >= 0 {
		u = u[:i]
	}
	if i := strings.LastIndex(u, "@"); i >= 0 {
		u = u[i+1:]
	}
	if strings.HasPrefix(u, "[") {
		if i := strings.Index(u, "]"); i >= 0 {
			return strings.ToLower(u[1:i])
		}
	}
	if i := strings.LastIndex(u, ":"); i >= 0 {
		u = u[:i]
	}
	return strings.ToLower(u)
}

// IsShortenerHost reports whether host is, or is a subdomain of, a known
// URL shortener
func IsShortenerHost(host string) bool {
	for _, idx := range shortenerMatcher.MatchThreadSafe([]byte(host)) {
		d := ShortenerDomains[idx]
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// IsIPv4Host reports whether host is a dotted-quad IPv4 literal
func IsIPv4Host(host string) bool {
	return ipv4Pattern.MatchString(host)
}

// CapitalRatio returns upper-case letters divided by all letters in raw, or 0
// when raw has no letters. The result is not rounded
func CapitalRatio(raw string) float64 {
	letters, upper := 0, 0
	for _, r := range raw {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}
