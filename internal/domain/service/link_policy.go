package service

import (
	"net/url"
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.\-]*://\S+`)

// LinkPolicy blocks text that links anywhere outside the platform.
type LinkPolicy struct {
	platformToken string
}

func NewLinkPolicy(platformToken string) *LinkPolicy {
	return &LinkPolicy{platformToken: strings.ToLower(platformToken)}
}

func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// Allowed reports whether every URL in text points at the platform. A URL
// that does not parse is treated as external.
func (p *LinkPolicy) Allowed(text string) bool {
	for _, raw := range ExtractURLs(text) {
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			return false
		}
		if !strings.Contains(strings.ToLower(u.Hostname()), p.platformToken) {
			return false
		}
	}
	return true
}
