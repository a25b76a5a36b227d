package urlutil

import (
	"fmt"
	"net/url"
)

// ValidateURL checks that urlStr is an absolute http(s) URL with a host
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// ResolveURL resolves a possibly-relative href against a base URL and returns a string
func ResolveURL(base, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(u).String()
}

// HomeURL returns the storefront root of productURL, e.g.
// https://www.amazon.com/dp/B0 -> https://www.amazon.com/
func HomeURL(productURL string) (string, error) {
	if err := ValidateURL(productURL); err != nil {
		return "", err
	}

	u, _ := url.Parse(productURL)
	home := url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
	return home.String(), nil
}

// Host returns the host part of urlStr, or "" when it cannot be parsed
func Host(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}
