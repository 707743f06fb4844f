//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/repository"
)

type idResponse struct {
	ID int64 `json:"id"`
}

type postResponse struct {
	ID     int64  `json:"id"`
	Author string `json:"author"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Tags   []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	} `json:"tags"`
}

type reminderResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Text  string `json:"text"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("INKWELL_BASE_URL", "http://localhost:8080")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatalf("DATABASE_URL is required for e2e tests")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		t.Fatalf("JWT_SECRET is required for e2e tests")
	}

	waitForServer(t, baseURL)

	owner, ownerToken := bootstrapAuthor(t, dbURL, jwtSecret, "e2e-owner")
	_, strangerToken := bootstrapAuthor(t, dbURL, jwtSecret, "e2e-stranger")

	client := &http.Client{Timeout: 10 * time.Second}

	var postID int64

	t.Run("create post", func(t *testing.T) {
		body := `{"title":"E2E post","text":"<p>hello</p><script>x()</script>","tags":["e2e","smoke"]}`
		resp := doJSON(t, client, "POST", baseURL+"/api/v1/posts", ownerToken, body)
		defer resp.Body.Close()

		requireStatus(t, resp, http.StatusCreated)

		var created idResponse
		decodeBody(t, resp, &created)
		if created.ID == 0 {
			t.Fatal("expected a post id")
		}
		postID = created.ID
	})

	t.Run("get post sanitized", func(t *testing.T) {
		resp := doJSON(t, client, "GET", fmt.Sprintf("%s/api/v1/posts/%d", baseURL, postID), "", "")
		defer resp.Body.Close()

		requireStatus(t, resp, http.StatusOK)

		var post postResponse
		decodeBody(t, resp, &post)
		if post.Author != owner.Username {
			t.Errorf("expected author %q, got %q", owner.Username, post.Author)
		}
		if strings.Contains(post.Text, "<script>") {
			t.Errorf("expected sanitized text, got %q", post.Text)
		}
		if len(post.Tags) != 2 {
			t.Errorf("expected 2 tags, got %d", len(post.Tags))
		}
	})

	t.Run("list includes post", func(t *testing.T) {
		resp := doJSON(t, client, "GET", baseURL+"/api/v1/posts", "", "")
		defer resp.Body.Close()

		requireStatus(t, resp, http.StatusOK)

		var posts []postResponse
		decodeBody(t, resp, &posts)

		found := false
		for _, p := range posts {
			if p.ID == postID {
				found = true
			}
		}
		if !found {
			t.Errorf("expected post %d in listing", postID)
		}
	})

	t.Run("create without token rejected", func(t *testing.T) {
		resp := doJSON(t, client, "POST", baseURL+"/api/v1/posts", "", `{"title":"x","text":"y"}`)
		defer resp.Body.Close()
		requireStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("update by stranger forbidden", func(t *testing.T) {
		resp := doJSON(t, client, "PUT", fmt.Sprintf("%s/api/v1/posts/%d", baseURL, postID), strangerToken, `{"title":"hijacked"}`)
		defer resp.Body.Close()
		requireStatus(t, resp, http.StatusForbidden)
	})

	t.Run("update by owner", func(t *testing.T) {
		resp := doJSON(t, client, "PUT", fmt.Sprintf("%s/api/v1/posts/%d", baseURL, postID), ownerToken, `{"title":"E2E post v2"}`)
		defer resp.Body.Close()
		requireStatus(t, resp, http.StatusOK)

		check := doJSON(t, client, "GET", fmt.Sprintf("%s/api/v1/posts/%d", baseURL, postID), "", "")
		defer check.Body.Close()
		var post postResponse
		decodeBody(t, check, &post)
		if post.Title != "E2E post v2" {
			t.Errorf("expected updated title, got %q", post.Title)
		}
	})

	t.Run("reminder round trip", func(t *testing.T) {
		resp := doJSON(t, client, "POST", baseURL+"/api/v1/reminders", ownerToken, `{"email":"e2e@example.com","text":"check the blog"}`)
		defer resp.Body.Close()
		requireStatus(t, resp, http.StatusCreated)

		var created idResponse
		decodeBody(t, resp, &created)

		get := doJSON(t, client, "GET", fmt.Sprintf("%s/api/v1/reminders/%d", baseURL, created.ID), ownerToken, "")
		defer get.Body.Close()
		requireStatus(t, get, http.StatusOK)

		var reminder reminderResponse
		decodeBody(t, get, &reminder)
		if reminder.Email != "e2e@example.com" {
			t.Errorf("unexpected email: %s", reminder.Email)
		}
	})

	t.Run("reminders require token", func(t *testing.T) {
		resp := doJSON(t, client, "GET", baseURL+"/api/v1/reminders", "", "")
		defer resp.Body.Close()
		requireStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("delete by stranger forbidden", func(t *testing.T) {
		resp := doJSON(t, client, "DELETE", fmt.Sprintf("%s/api/v1/posts/%d", baseURL, postID), strangerToken, "")
		defer resp.Body.Close()
		requireStatus(t, resp, http.StatusForbidden)
	})

	t.Run("delete by owner", func(t *testing.T) {
		resp := doJSON(t, client, "DELETE", fmt.Sprintf("%s/api/v1/posts/%d", baseURL, postID), ownerToken, "")
		defer resp.Body.Close()
		requireStatus(t, resp, http.StatusNoContent)

		check := doJSON(t, client, "GET", fmt.Sprintf("%s/api/v1/posts/%d", baseURL, postID), "", "")
		defer check.Body.Close()
		requireStatus(t, check, http.StatusNotFound)
	})
}

// ============================================================================
// Helpers
// ============================================================================

func bootstrapAuthor(t *testing.T, dbURL, jwtSecret, prefix string) (*model.User, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect database: %v", err)
	}
	defer repo.Close()

	suffix := ulid.Make().String()
	hash, err := auth.HashPassword("e2e-password-" + suffix)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &model.User{
		Username:     fmt.Sprintf("%s-%s", prefix, strings.ToLower(suffix)),
		Email:        fmt.Sprintf("%s-%s@example.com", prefix, strings.ToLower(suffix)),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := auth.NewVerifier(jwtSecret).Mint(user.ID, time.Hour, ulid.Make().String())
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	return user, token
}

func waitForServer(t *testing.T, baseURL string) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(15 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}

	t.Skipf("server at %s not reachable", baseURL)
}

func doJSON(t *testing.T, client *http.Client, method, url, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func requireStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(body))
	}
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
