// Package backend implements the persistence protocol client over HTTP.
// The session rides on a cookie jar; 401 and 403 responses map to
// domain.ErrUnauthorized so callers can drop their cached identity.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
	"github.com/article-avenue/avenue-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://artuckeavenuebackend-4.onrender.com"
	DefaultTimeout = 30 * time.Second

	// requestRate throttles outbound calls; the backend is a small
	// free-tier deployment and bursts make it shed requests.
	requestRate  = 5
	requestBurst = 5
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend origin (default: the hosted deployment).
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// Jar overrides the cookie jar, letting callers persist the
	// session across process runs.
	Jar http.CookieJar
}

// Client talks the blogging backend's HTTP protocol.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a new backend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	jar := cfg.Jar
	if jar == nil {
		var err error
		jar, err = cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(requestRate), requestBurst),
	}, nil
}

// do sends the request after waiting on the rate limiter and maps
// error statuses to domain errors. The caller owns the response body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// checkStatus translates an error status into a domain error.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", resp.Request.URL.Path, domain.ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", resp.Request.URL.Path, domain.ErrNotFound)
	default:
		return fmt.Errorf("%s %s: unexpected status %d", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode)
	}
}

// getJSON performs a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, domain.ErrMalformedResponse)
	}
	return nil
}

// postJSON performs a POST with a JSON body. When out is non-nil the
// response body is decoded into it.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, domain.ErrMalformedResponse)
	}
	return nil
}

// postForm performs a POST with a multipart form body. When out is
// non-nil the response body is decoded into it.
func (c *Client) postForm(ctx context.Context, path string, form *formBody, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(form.data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.contentType)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, domain.ErrMalformedResponse)
	}
	return nil
}

// delete performs a DELETE and discards the response body.
func (c *Client) delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// CheckSession reports whether the cookie session is authenticated.
func (c *Client) CheckSession(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/check-session/", nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// SessionData returns the authenticated identity. An anonymous session
// comes back with empty fields rather than an error; the service layer
// decides what that means.
func (c *Client) SessionData(ctx context.Context) (domain.Session, error) {
	var w wireSession
	if err := c.getJSON(ctx, "/get-session-data/", &w); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Email: w.Email, Username: w.Username}, nil
}

// SignIn establishes a cookie session from credentials.
func (c *Client) SignIn(ctx context.Context, creds domain.Credentials) error {
	in := map[string]string{"email": creds.Email, "password": creds.Password}
	if err := c.postJSON(ctx, "/signin/", in, nil); err != nil {
		return err
	}
	logger.Debug("signed in as %s", creds.Email)
	return nil
}

// SignOut discards the session cookie server-side.
func (c *Client) SignOut(ctx context.Context) error {
	return c.postJSON(ctx, "/signout/", map[string]string{}, nil)
}

// SignUp registers a new account. The profile picture rides in the
// form only when provided.
func (c *Client) SignUp(ctx context.Context, r domain.SignUpRequest) error {
	form, err := buildSignUpForm(r)
	if err != nil {
		return err
	}
	return c.postForm(ctx, "/signup/", form, nil)
}

// ArticlesByUsername lists an author's completed articles.
func (c *Client) ArticlesByUsername(ctx context.Context, username string) ([]domain.Article, error) {
	return c.listArticles(ctx, "/get-articles-by-username/", username, domain.KindCompleted)
}

// DraftsByUsername lists an author's drafts.
func (c *Client) DraftsByUsername(ctx context.Context, username string) ([]domain.Article, error) {
	return c.listArticles(ctx, "/get-draft-articles-by-username/", username, domain.KindDraft)
}

func (c *Client) listArticles(ctx context.Context, path, username string, kind domain.ArticleKind) ([]domain.Article, error) {
	var entries []wireArticle
	in := map[string]string{"username": username}
	if err := c.postJSON(ctx, path, in, &entries); err != nil {
		return nil, err
	}

	articles := make([]domain.Article, 0, len(entries))
	for _, e := range entries {
		a, err := e.toDomain(kind)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, nil
}

// CategorizedFeed fetches the public feed, bucketed by category.
func (c *Client) CategorizedFeed(ctx context.Context) (*domain.CategorizedFeed, error) {
	var w wireFeed
	if err := c.getJSON(ctx, "/get-articles-categories/", &w); err != nil {
		return nil, err
	}
	return w.toDomain()
}

// ArticleByUsernameAndName fetches one public article by author and
// exact title.
func (c *Client) ArticleByUsernameAndName(ctx context.Context, username, name string) (*domain.Article, error) {
	path := "/get-article-by-username-and-name/?" + url.Values{
		"username": {username},
		"name":     {name},
	}.Encode()

	var w wireArticle
	if err := c.getJSON(ctx, path, &w); err != nil {
		return nil, err
	}
	return w.toDomain(domain.KindCompleted)
}

// AuthorInfo fetches an author's public profile.
func (c *Client) AuthorInfo(ctx context.Context, username string) (*domain.AuthorProfile, error) {
	var w wireAuthorInfo
	in := map[string]string{"username": username}
	if err := c.postJSON(ctx, "/get-author-info/", in, &w); err != nil {
		return nil, err
	}
	return &domain.AuthorProfile{
		Name:        w.AuthorInfo.Name,
		Description: w.AuthorInfo.AuthorDesc,
		ProfilePic:  w.AuthorInfo.ProfilePic,
	}, nil
}

// CreateCompleted creates a publicly visible article and returns its id.
func (c *Client) CreateCompleted(ctx context.Context, p driven.ArticlePayload) (int64, error) {
	return c.createArticle(ctx, "/", p)
}

// CreateDraft creates a draft and returns its id.
func (c *Client) CreateDraft(ctx context.Context, p driven.ArticlePayload) (int64, error) {
	return c.createArticle(ctx, "/insert-draft-article/", p)
}

func (c *Client) createArticle(ctx context.Context, path string, p driven.ArticlePayload) (int64, error) {
	form, err := buildArticleForm(p, true)
	if err != nil {
		return 0, err
	}

	var w wireCreated
	if err := c.postForm(ctx, path, form, &w); err != nil {
		return 0, err
	}
	if w.ID == 0 {
		return 0, fmt.Errorf("create %s: missing id: %w", path, domain.ErrMalformedResponse)
	}
	return w.ID, nil
}

// UpdateDraft overwrites an existing draft in place.
func (c *Client) UpdateDraft(ctx context.Context, id int64, p driven.ArticlePayload) error {
	return c.updateArticle(ctx, fmt.Sprintf("/update-draft-article/%d/", id), p)
}

// UpdateCompleted overwrites an existing completed article in place.
func (c *Client) UpdateCompleted(ctx context.Context, id int64, p driven.ArticlePayload) error {
	return c.updateArticle(ctx, fmt.Sprintf("/update-completed-article/%d/", id), p)
}

func (c *Client) updateArticle(ctx context.Context, path string, p driven.ArticlePayload) error {
	form, err := buildArticleForm(p, false)
	if err != nil {
		return err
	}
	return c.postForm(ctx, path, form, nil)
}

// DeleteDraft removes a draft by id.
func (c *Client) DeleteDraft(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/delete-draft-article/%d/", id))
}

// DeleteCompleted removes a completed article by id.
func (c *Client) DeleteCompleted(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/delete-completed-article/%d/", id))
}

// SubmitAuthorResponse submits an author application.
func (c *Client) SubmitAuthorResponse(ctx context.Context, response string) error {
	return c.postJSON(ctx, "/submit-author-response/", map[string]string{"response": response}, nil)
}

// FetchImage downloads an image by backend-relative path.
func (c *Client) FetchImage(ctx context.Context, path string) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return data, nil
}
