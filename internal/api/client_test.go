package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeTokens struct {
	access  string
	refresh string
	saves   int
	err     error
}

var _ TokenStore = (*fakeTokens)(nil)

func (f *fakeTokens) Save(access, refresh string) error {
	if f.err != nil {
		return f.err
	}
	f.access = access
	f.refresh = refresh
	f.saves++
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenStore) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(Options{BaseURL: server.URL + "/api/v1", Tokens: tokens})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return c
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}

	u, err = parseBaseURL("example.com/api/v1")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "/api/v1/" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_LoginPersistsTokens(t *testing.T) {
	t.Parallel()

	var gotBody map[string]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(authResponse{
			User:   User{ID: 9, Name: "Sam", Email: "sam@example.com"},
			Tokens: Tokens{AccessToken: "A", RefreshToken: "R"},
		})
	})
	tokens := &fakeTokens{}
	c := newTestClient(t, handler, tokens)

	res := c.Login(context.Background(), "sam@example.com", "hunter2")
	if !res.OK() {
		t.Fatalf("Login failed: %q", res.Message())
	}
	if res.Value().Name != "Sam" {
		t.Fatalf("user = %#v, want Sam", res.Value())
	}
	if tokens.access != "A" || tokens.refresh != "R" || tokens.saves != 1 {
		t.Fatalf("tokens not persisted: %#v", tokens)
	}
	if gotBody["email"] != "sam@example.com" || gotBody["password"] != "hunter2" {
		t.Fatalf("request body = %#v", gotBody)
	}
}

func TestClient_ServerErrorMessageSurfaces(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email already registered"})
	})
	c := newTestClient(t, handler, &fakeTokens{})

	res := c.Register(context.Background(), "Sam", "sam@example.com", "hunter2")
	if !res.Failed() {
		t.Fatal("expected failure")
	}
	if res.Message() != "email already registered" {
		t.Fatalf("message = %q", res.Message())
	}
}

func TestClient_ServerErrorWithoutBodyGetsFallback(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := newTestClient(t, handler, nil)

	res := c.FetchProfile(context.Background())
	if !res.Failed() {
		t.Fatal("expected failure")
	}
	if res.Message() != "api profile returned status 500" {
		t.Fatalf("message = %q", res.Message())
	}
}

func TestClient_FetchGenerationsEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(generationsResponse{
			Generations: []Generation{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}},
		})
	})
	c := newTestClient(t, handler, nil)

	res := c.FetchGenerations(context.Background(), "music", 25)
	if !res.OK() {
		t.Fatalf("FetchGenerations failed: %q", res.Message())
	}
	if len(res.Value()) != 2 || res.Value()[0].ID != 1 {
		t.Fatalf("records = %#v", res.Value())
	}
	if gotQuery["type"][0] != "music" || gotQuery["limit"][0] != "25" {
		t.Fatalf("query = %#v", gotQuery)
	}
}

func TestClient_WatchEmitsLoadingThenTerminal(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generationsResponse{Generations: []Generation{{ID: 7}}})
	})
	c := newTestClient(t, handler, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	var results []Result[[]Generation]
	for res := range c.WatchGenerations(ctx, "music", 0) {
		results = append(results, res)
	}
	if len(results) != 2 {
		t.Fatalf("emitted %d results, want 2", len(results))
	}
	if !results[0].Loading() {
		t.Fatal("first emission should be loading")
	}
	if !results[1].OK() || results[1].Value()[0].ID != 7 {
		t.Fatalf("terminal emission = %#v", results[1])
	}
}

func TestClient_GenerateWithoutRecordIsError(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse{Message: "queued, check back later"})
	})
	c := newTestClient(t, handler, nil)

	res := c.Generate(context.Background(), GenerateRequest{Title: "t", Prompt: "p"})
	if !res.Failed() {
		t.Fatal("expected failure when no record returned")
	}
	if res.Message() != "queued, check back later" {
		t.Fatalf("message = %q", res.Message())
	}
}

func TestClient_MutationPathsAndMethods(t *testing.T) {
	t.Parallel()

	type call struct{ method, path string }
	var calls []call
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		_ = json.NewEncoder(w).Encode(messageResponse{Message: "ok"})
	})
	c := newTestClient(t, handler, nil)
	ctx := context.Background()

	if res := c.ToggleFavorite(ctx, 7); !res.OK() {
		t.Fatalf("ToggleFavorite failed: %q", res.Message())
	}
	if res := c.TogglePublic(ctx, 7); !res.OK() {
		t.Fatalf("TogglePublic failed: %q", res.Message())
	}
	if res := c.DeleteGeneration(ctx, 7); !res.OK() {
		t.Fatalf("DeleteGeneration failed: %q", res.Message())
	}

	want := []call{
		{http.MethodPost, "/api/v1/generations/7/favorite"},
		{http.MethodPost, "/api/v1/generations/7/public"},
		{http.MethodDelete, "/api/v1/generations/7"},
	}
	for i, w := range want {
		if calls[i] != w {
			t.Fatalf("call %d = %#v, want %#v", i, calls[i], w)
		}
	}
}

func TestClient_TransportFailureIsError(t *testing.T) {
	t.Parallel()

	c, err := New(Options{BaseURL: "http://127.0.0.1:1", Timeout: 500 * time.Millisecond})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	res := c.FetchProfile(context.Background())
	if !res.Failed() {
		t.Fatal("expected failure against closed port")
	}
	if res.Message() == "" {
		t.Fatal("failure should carry a message")
	}
}

func TestClient_Origin(t *testing.T) {
	c, err := New(Options{BaseURL: "https://example.com/api/v1"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if got := c.Origin(); got != "https://example.com" {
		t.Fatalf("Origin = %q", got)
	}
}
