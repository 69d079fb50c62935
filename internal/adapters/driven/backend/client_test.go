package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
	"github.com/article-avenue/avenue-cli/internal/rawdoc"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func encodedDoc(t *testing.T, text string) string {
	t.Helper()
	d := domain.NewDocument()
	d.Blocks[0].Text = text
	data, err := rawdoc.Encode(d)
	require.NoError(t, err)
	return string(data)
}

func TestClient_SignInCarriesCookie(t *testing.T) {
	var sawCookie bool
	mux := http.NewServeMux()
	mux.HandleFunc("/signin/", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice@example.com", creds["email"])
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "abc", Path: "/"})
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/get-session-data/", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("sessionid"); err == nil && c.Value == "abc" {
			sawCookie = true
		}
		json.NewEncoder(w).Encode(map[string]string{"email": "alice@example.com", "username": "alice"})
	})

	client := newTestClient(t, mux)
	ctx := context.Background()

	require.NoError(t, client.SignIn(ctx, domain.Credentials{Email: "alice@example.com", Password: "hunter2"}))

	sess, err := client.SessionData(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.True(t, sawCookie)
}

func TestClient_UnauthorizedMapsToDomainError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.SessionData(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = client.DeleteDraft(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClient_ForbiddenMapsToDomainError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	err := client.CheckSession(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClient_NotFoundMapsToDomainError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.ArticleByUsernameAndName(context.Background(), "alice", "Missing Post")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_ArticlesByUsername(t *testing.T) {
	body := encodedDoc(t, "hello world")
	desc := encodedDoc(t, "a summary")

	mux := http.NewServeMux()
	mux.HandleFunc("/get-articles-by-username/", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "alice", in["username"])

		json.NewEncoder(w).Encode([]map[string]any{{
			"id":          int64(3),
			"title":       "My First Post",
			"username":    "alice",
			"tag":         "Science",
			"thumbnail":   "/media/cover.png",
			"filename":    "cover.png",
			"contents":    body,
			"description": desc,
			"created_at":  "2026-08-01T10:00:00Z",
		}})
	})

	client := newTestClient(t, mux)

	articles, err := client.ArticlesByUsername(context.Background(), "alice")

	require.NoError(t, err)
	require.Len(t, articles, 1)
	a := articles[0]
	assert.Equal(t, int64(3), a.ID)
	assert.Equal(t, domain.KindCompleted, a.Kind)
	assert.Equal(t, domain.CategoryScience, a.Category)
	assert.Equal(t, "/media/cover.png", a.Thumbnail.Path)
	require.NotNil(t, a.Body)
	assert.Equal(t, "hello world", a.Body.Blocks[0].Text)
	require.NotNil(t, a.Description)
	assert.Equal(t, "a summary", a.Description.Blocks[0].Text)
	assert.Equal(t, 2026, a.CreatedAt.Year())
}

func TestClient_DraftsByUsernameMarksKind(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/get-draft-articles-by-username/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"id": int64(9), "title": "WIP"}})
	})

	client := newTestClient(t, mux)

	drafts, err := client.DraftsByUsername(context.Background(), "alice")

	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, domain.KindDraft, drafts[0].Kind)
}

func TestClient_MalformedArticleBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/get-articles-by-username/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"id": int64(1), "contents": "not json"}})
	})

	client := newTestClient(t, mux)

	_, err := client.ArticlesByUsername(context.Background(), "alice")

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClient_CategorizedFeed(t *testing.T) {
	body := encodedDoc(t, "feed entry")

	mux := http.NewServeMux()
	mux.HandleFunc("/get-articles-categories/", func(w http.ResponseWriter, r *http.Request) {
		entry := map[string]any{"id": int64(1), "title": "Hello", "tag": "Sports", "contents": body}
		json.NewEncoder(w).Encode(map[string]any{
			"all_articles": []any{entry},
			"sports":       []any{entry},
			"worldnews":    []any{},
		})
	})

	client := newTestClient(t, mux)

	feed, err := client.CategorizedFeed(context.Background())

	require.NoError(t, err)
	require.Len(t, feed.All, 1)
	require.Len(t, feed.Sports, 1)
	assert.Empty(t, feed.WorldNews)
	assert.Equal(t, "Hello", feed.All[0].Title)
}

func TestClient_ArticleByUsernameAndNameQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/get-article-by-username-and-name/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "alice", r.URL.Query().Get("username"))
		assert.Equal(t, "My First Post", r.URL.Query().Get("name"))
		json.NewEncoder(w).Encode(map[string]any{"id": int64(3), "title": "My First Post"})
	})

	client := newTestClient(t, mux)

	article, err := client.ArticleByUsernameAndName(context.Background(), "alice", "My First Post")

	require.NoError(t, err)
	assert.Equal(t, "My First Post", article.Title)
}

func TestClient_AuthorInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/get-author-info/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"authorInfo": map[string]string{
				"name":        "Alice Example",
				"author_desc": "writes about science",
				"profile_pic": "/media/alice.png",
			},
		})
	})

	client := newTestClient(t, mux)

	profile, err := client.AuthorInfo(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, "Alice Example", profile.Name)
	assert.Equal(t, "writes about science", profile.Description)
	assert.Equal(t, "/media/alice.png", profile.ProfilePic)
}

func articlePayload(t *testing.T) driven.ArticlePayload {
	t.Helper()
	body := domain.NewDocument()
	body.Blocks[0].Text = "content"
	return driven.ArticlePayload{
		Title:    "My First Post",
		Username: "alice",
		Category: domain.CategoryGeneral,
		Body:     body,
		Thumbnail: domain.Thumbnail{
			File:     []byte{0x89, 0x50, 0x4e, 0x47},
			Filename: "cover.png",
		},
	}
}

func TestClient_CreateCompletedForm(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "My First Post", r.FormValue("title"))
		assert.Equal(t, "alice", r.FormValue("username"))
		assert.Equal(t, "General", r.FormValue("category"))
		assert.Equal(t, "cover.png", r.FormValue("filename"))

		var raw map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("contents")), &raw))
		assert.Contains(t, raw, "blocks")
		assert.Contains(t, raw, "entityMap")

		file, header, err := r.FormFile("thumbnail")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cover.png", header.Filename)

		json.NewEncoder(w).Encode(map[string]int64{"id": 42})
	})

	client := newTestClient(t, mux)

	id, err := client.CreateCompleted(context.Background(), articlePayload(t))

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestClient_CreateDraftMissingID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/insert-draft-article/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	client := newTestClient(t, mux)

	_, err := client.CreateDraft(context.Background(), articlePayload(t))

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClient_UpdateDraftOmitsUsername(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/update-draft-article/7/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, ok := r.MultipartForm.Value["username"]
		assert.False(t, ok)
		w.Write([]byte(`{}`))
	})

	client := newTestClient(t, mux)

	err := client.UpdateDraft(context.Background(), 7, articlePayload(t))

	require.NoError(t, err)
}

func TestClient_UpdateKeepsThumbnailPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/update-completed-article/3/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "/media/cover.png", r.FormValue("thumbnail"))
		_, _, err := r.FormFile("thumbnail")
		assert.Error(t, err)
		w.Write([]byte(`{}`))
	})

	client := newTestClient(t, mux)

	p := articlePayload(t)
	p.Thumbnail = domain.Thumbnail{Path: "/media/cover.png", Filename: "cover.png"}

	require.NoError(t, client.UpdateCompleted(context.Background(), 3, p))
}

func TestClient_DeleteUsesDeleteMethod(t *testing.T) {
	var method string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		assert.Equal(t, "/delete-completed-article/5/", r.URL.Path)
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, client.DeleteCompleted(context.Background(), 5))
	assert.Equal(t, http.MethodDelete, method)
}

func TestClient_SignUpWithProfilePic(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/signup/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Alice Example", r.FormValue("name"))
		assert.Equal(t, "alice", r.FormValue("username"))
		assert.Equal(t, "likes writing", r.FormValue("author_desc"))

		file, header, err := r.FormFile("profile_pic")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "me.png", header.Filename)

		w.Write([]byte(`{}`))
	})

	client := newTestClient(t, mux)

	err := client.SignUp(context.Background(), domain.SignUpRequest{
		Name:       "Alice Example",
		Email:      "alice@example.com",
		Password:   "hunter2",
		Username:   "alice",
		AuthorDesc: "likes writing",
		ProfilePic: []byte{1, 2, 3},
		Filename:   "me.png",
	})

	require.NoError(t, err)
}

func TestClient_FetchImage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/media/cover.png", r.URL.Path)
		w.Write([]byte{0x89, 0x50})
	}))

	data, err := client.FetchImage(context.Background(), "media/cover.png")

	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50}, data)
}

func TestClient_SubmitAuthorResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submit-author-response/", r.URL.Path)
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "I want to write", in["response"])
		fmt.Fprint(w, `{}`)
	}))

	require.NoError(t, client.SubmitAuthorResponse(context.Background(), "I want to write"))
}
