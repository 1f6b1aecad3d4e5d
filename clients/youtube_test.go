package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchTravelVideo(t *testing.T) {
	t.Run("returns the top result", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			fmt.Fprint(w, `{"items":[{"id":{"videoId":"abc123"},"snippet":{"title":"Japan in 4K"}}]}`)
		}))
		defer server.Close()

		client := NewYouTubeClientWithURL("test-key", server.URL)

		videoID, title, err := client.SearchTravelVideo(context.Background(), "Japan")
		if err != nil {
			t.Fatalf("SearchTravelVideo: %v", err)
		}
		if videoID != "abc123" || title != "Japan in 4K" {
			t.Errorf("got (%q, %q), want (abc123, Japan in 4K)", videoID, title)
		}
		if gotQuery != "Japan travel 4k" {
			t.Errorf("search query = %q, want %q", gotQuery, "Japan travel 4k")
		}
	})

	t.Run("no results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"items":[]}`)
		}))
		defer server.Close()

		client := NewYouTubeClientWithURL("test-key", server.URL)

		if _, _, err := client.SearchTravelVideo(context.Background(), "Atlantis"); err != ErrNoVideos {
			t.Errorf("expected ErrNoVideos, got %v", err)
		}
	})

	t.Run("missing API key", func(t *testing.T) {
		client := NewYouTubeClient("")

		if _, _, err := client.SearchTravelVideo(context.Background(), "Japan"); err != ErrNoAPIKey {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
	})

	t.Run("placeholder API key", func(t *testing.T) {
		client := NewYouTubeClient("YOUR_API_KEY_HERE")

		if _, _, err := client.SearchTravelVideo(context.Background(), "Japan"); err != ErrNoAPIKey {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
	})

	t.Run("API error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusForbidden)
		}))
		defer server.Close()

		client := NewYouTubeClientWithURL("test-key", server.URL)

		if _, _, err := client.SearchTravelVideo(context.Background(), "Japan"); err == nil {
			t.Error("expected an error for a 403 response")
		}
	})
}
