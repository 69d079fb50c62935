package backend

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/article-avenue/avenue-cli/internal/logger"
)

// PersistentJar wraps the standard cookie jar and mirrors the backend's
// session cookies to disk, so a sign-in survives across process runs.
// Only cookies for the configured origin are persisted.
type PersistentJar struct {
	mu     sync.Mutex
	inner  *cookiejar.Jar
	path   string
	origin *url.URL
}

// storedCookie is the on-disk cookie format.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Domain  string    `json:"domain,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
	Secure  bool      `json:"secure,omitempty"`
}

// NewPersistentJar creates a jar persisted at dir/cookies.json for the
// given backend origin. If dir is empty, ~/.avenue is used.
func NewPersistentJar(dir, originURL string) (*PersistentJar, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".avenue")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	origin, err := url.Parse(originURL)
	if err != nil {
		return nil, err
	}

	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	j := &PersistentJar{
		inner:  inner,
		path:   filepath.Join(dir, "cookies.json"),
		origin: origin,
	}
	j.load()
	return j, nil
}

// SetCookies stores cookies and persists those for the backend origin.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)
	if u.Host == j.origin.Host {
		j.save()
	}
}

// Cookies returns the cookies to send with a request to u.
func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// Clear drops the persisted session.
func (j *PersistentJar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	inner, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.inner = inner

	if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// load restores persisted cookies. A missing or unreadable file starts
// the jar empty.
func (j *PersistentJar) load() {
	data, err := os.ReadFile(j.path)
	if err != nil {
		return
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn("discarding unreadable cookie file %s: %v", j.path, err)
		return
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	now := time.Now()
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
	j.inner.SetCookies(j.origin, cookies)
}

// save mirrors the origin's cookies to disk (caller must hold lock).
func (j *PersistentJar) save() {
	cookies := j.inner.Cookies(j.origin)
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
			Secure:  c.Secure,
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		logger.Warn("encode cookies: %v", err)
		return
	}
	if err := os.WriteFile(j.path, data, 0600); err != nil {
		logger.Warn("persist cookies to %s: %v", j.path, err)
	}
}
