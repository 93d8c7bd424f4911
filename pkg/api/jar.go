package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// PersistentJar is a cookie jar that writes through to a JSON file, so a
// session cookie set by login survives process restarts. Only the fields
// needed to replay a cookie are persisted.
type PersistentJar struct {
	mu   sync.Mutex
	jar  http.CookieJar
	path string
}

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Domain  string    `json:"domain,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
	Secure  bool      `json:"secure,omitempty"`
}

type jarFile struct {
	Cookies map[string][]storedCookie `json:"cookies"`
}

// NewPersistentJar builds a jar persisted at path and rehydrates any
// cookies stored there. A corrupt file starts over empty.
func NewPersistentJar(path string) (*PersistentJar, error) {
	if path == "" {
		return nil, fmt.Errorf("cookie path required")
	}
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	p := &PersistentJar{jar: inner, path: path}
	p.load()
	return p, nil
}

// SetCookies stores cookies for u and persists the jar.
func (p *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jar.SetCookies(u, cookies)
	p.save(u, cookies)
}

// Cookies returns the cookies to send in a request for u.
func (p *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jar.Cookies(u)
}

// Clear drops every persisted cookie and the file behind it.
func (p *PersistentJar) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	inner, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("recreate cookie jar: %w", err)
	}
	p.jar = inner
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cookie file: %w", err)
	}
	return nil
}

func (p *PersistentJar) load() {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return
	}
	var file jarFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return
	}

	now := time.Now()
	for rawURL, stored := range file.Cookies {
		u, err := url.Parse(rawURL)
		if err != nil {
			continue
		}
		cookies := make([]*http.Cookie, 0, len(stored))
		for _, c := range stored {
			if !c.Expires.IsZero() && c.Expires.Before(now) {
				continue
			}
			cookies = append(cookies, &http.Cookie{
				Name:    c.Name,
				Value:   c.Value,
				Path:    c.Path,
				Domain:  c.Domain,
				Expires: c.Expires,
				Secure:  c.Secure,
			})
		}
		p.jar.SetCookies(u, cookies)
	}
}

// save must be called with p.mu held.
func (p *PersistentJar) save(u *url.URL, cookies []*http.Cookie) {
	file := jarFile{Cookies: map[string][]storedCookie{}}
	if raw, err := os.ReadFile(p.path); err == nil {
		_ = json.Unmarshal(raw, &file)
	}
	if file.Cookies == nil {
		file.Cookies = map[string][]storedCookie{}
	}

	// Merge by name so a response setting one cookie does not drop the
	// others already stored for the host.
	key := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}).String()
	stored := file.Cookies[key]
	for _, c := range cookies {
		stored = withoutCookie(stored, c.Name)
		if c.MaxAge < 0 {
			continue
		}
		stored = append(stored, storedCookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
			Secure:  c.Secure,
		})
	}
	file.Cookies[key] = stored

	raw, err := json.Marshal(file)
	if err != nil {
		return
	}
	if dir := filepath.Dir(p.path); dir != "." {
		_ = os.MkdirAll(dir, 0o700)
	}
	_ = os.WriteFile(p.path, raw, 0o600)
}

func withoutCookie(cookies []storedCookie, name string) []storedCookie {
	out := cookies[:0]
	for _, c := range cookies {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}
