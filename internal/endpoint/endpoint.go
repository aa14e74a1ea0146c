// Package endpoint decides which URL the generation request is posted to.
//
// Pages served from a loopback host talk to a locally running backend on
// its own port; everywhere else the backend is reached through a relative
// path on the configured base URL. The page's Host only picks between the
// two and never becomes part of the target.
package endpoint

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

const (
	DefaultLocalURL = "http://localhost:8000/api/generate"
	DefaultPath     = "/api/generate"
	DefaultBaseURL  = "http://localhost:8000"
)

var loopbackHosts = map[string]struct{}{
	"localhost": {},
	"127.0.0.1": {},
}

// Rules holds the endpoint selection inputs.
type Rules struct {
	LocalURL string
	Path     string
	// BaseURL is the trusted origin Path is resolved against.
	BaseURL string
}

// DefaultRules returns the rules with the stock local URL, path and base.
func DefaultRules() Rules {
	return Rules{LocalURL: DefaultLocalURL, Path: DefaultPath, BaseURL: DefaultBaseURL}
}

// IsLoopback reports whether host (optionally carrying a port) names the local machine.
func IsLoopback(host string) bool {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	_, ok := loopbackHosts[strings.ToLower(host)]
	return ok
}

// Select returns the endpoint for a page served from host: the absolute
// local URL on loopback hosts, the relative path otherwise.
func (r Rules) Select(host string) string {
	r = r.withDefaults()
	if IsLoopback(host) {
		return r.LocalURL
	}
	return r.Path
}

// Resolve returns the absolute endpoint URL for a page served from host.
// The result always points at the local URL's host or the base URL's host.
func (r Rules) Resolve(host string) (string, error) {
	r = r.withDefaults()
	selected := r.Select(host)
	ref, err := url.Parse(selected)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", selected, err)
	}

	target := ref
	if !ref.IsAbs() {
		base, err := url.Parse(r.BaseURL)
		if err != nil {
			return "", fmt.Errorf("parse base %q: %w", r.BaseURL, err)
		}
		target = base.ResolveReference(ref)
	}

	resolved := target.String()
	if err := r.validator().Validate(resolved); err != nil {
		return "", fmt.Errorf("endpoint %q: %w", resolved, err)
	}
	return resolved, nil
}

// Validate checks that the configured URLs are usable.
func (r Rules) Validate() error {
	r = r.withDefaults()
	v := NewURLValidator()
	if err := v.Validate(r.LocalURL); err != nil {
		return fmt.Errorf("local URL: %w", err)
	}
	if !strings.HasPrefix(r.Path, "/") || strings.HasPrefix(r.Path, "//") {
		return fmt.Errorf("path %q must start with a single /", r.Path)
	}
	if err := v.Validate(r.BaseURL); err != nil {
		return fmt.Errorf("base URL: %w", err)
	}
	return nil
}

// validator only admits the hosts of the configured URLs.
func (r Rules) validator() *URLValidator {
	var hosts []string
	for _, raw := range []string{r.LocalURL, r.BaseURL} {
		if u, err := url.Parse(raw); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
		}
	}
	return NewURLValidatorWithOptions([]string{"http", "https"}, hosts)
}

func (r Rules) withDefaults() Rules {
	if r.LocalURL == "" {
		r.LocalURL = DefaultLocalURL
	}
	if r.Path == "" {
		r.Path = DefaultPath
	}
	if r.BaseURL == "" {
		r.BaseURL = DefaultBaseURL
	}
	return r
}
