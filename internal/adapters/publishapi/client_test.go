package publishapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-microsite/website"
)

func TestClientPublish(t *testing.T) {
	var got Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/publish" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"slug":"ana-luis","url":"https://bodas.test/ana-luis"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/v1/", WithBearerToken("secret"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	doc := website.NewDefault(website.WithTitle("Ana & Luis"), website.WithSlug("ana-luis"))
	resp, err := client.Publish(context.Background(), "owner", "wedding", doc)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if resp.URL != "https://bodas.test/ana-luis" || resp.Slug != "ana-luis" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if got.OwnerID != "owner" || got.WeddingID != "wedding" || got.Document.Meta.Slug != "ana-luis" {
		t.Fatalf("unexpected request payload %+v", got)
	}
}

func TestClientKeepsEndpointMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "message field", body: `{"error":"conflict","message":"Slug already in use"}`, want: "Slug already in use"},
		{name: "error field", body: `{"error":"quota exceeded"}`, want: "quota exceeded"},
		{name: "plain text", body: "upstream down", want: "upstream down"},
		{name: "empty", body: "", want: http.StatusText(http.StatusConflict)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client, _ := NewClient(server.URL)
			_, err := client.Publish(context.Background(), "o", "w", website.NewDefault())
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if statusErr.StatusCode != http.StatusConflict || err.Error() != tc.want {
				t.Fatalf("unexpected error %d %q", statusErr.StatusCode, err.Error())
			}
		})
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("  "); !errors.Is(err, ErrBaseURLRequired) {
		t.Fatalf("expected ErrBaseURLRequired, got %v", err)
	}
}

func TestMemoryEndpoint(t *testing.T) {
	ctx := context.Background()
	endpoint := NewMemoryEndpoint("https://bodas.test/")
	doc := website.NewDefault(website.WithSlug("ana-luis"))

	resp, err := endpoint.Publish(ctx, "o1", "w1", doc)
	if err != nil || resp.URL != "https://bodas.test/ana-luis" {
		t.Fatalf("unexpected publish %+v %v", resp, err)
	}
	if _, err := endpoint.Publish(ctx, "o1", "w1", doc); err != nil {
		t.Fatalf("republish same wedding: %v", err)
	}
	if _, err := endpoint.Publish(ctx, "o2", "w9", doc); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
	if _, ok := endpoint.Page("ana-luis"); !ok {
		t.Fatal("expected stored page")
	}
}
