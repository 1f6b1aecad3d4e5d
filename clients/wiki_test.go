package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSummarizeHTML(t *testing.T) {
	t.Run("strips references and keeps two paragraphs", func(t *testing.T) {
		html := `<p>First paragraph.<sup class="reference">[1]</sup></p>` +
			`<p>Second paragraph [2] here.</p>` +
			`<p>Third paragraph.</p>`

		got := SummarizeHTML(html, nil)

		if strings.Contains(got, "<sup") || strings.Contains(got, "[1]") || strings.Contains(got, "[2]") {
			t.Errorf("reference markers not stripped: %s", got)
		}
		if !strings.Contains(got, "First paragraph.") || !strings.Contains(got, "Second paragraph") {
			t.Errorf("paragraphs missing: %s", got)
		}
		if strings.Contains(got, "Third paragraph.") {
			t.Errorf("more than two paragraphs kept: %s", got)
		}
		if !strings.HasSuffix(got, "<p>...</p>") {
			t.Errorf("missing ellipsis paragraph: %s", got)
		}
	})

	t.Run("embedded image gets https and full-res rewrite", func(t *testing.T) {
		html := `<img src="//upload.wikimedia.org/wikipedia/commons/thumb/a1/b2/Tokyo.jpg/220px-Tokyo.jpg"/>` +
			`<p>Text.</p>`

		got := SummarizeHTML(html, nil)

		if !strings.Contains(got, `https://upload.wikimedia.org/wikipedia/commons/a1/b2/Tokyo.jpg`) {
			t.Errorf("thumb not rewritten to full-res https URL: %s", got)
		}
	})

	t.Run("icon images are skipped and the fallback is used", func(t *testing.T) {
		html := `<img src="//upload.wikimedia.org/IconSomething.png"/><p>Text.</p>`
		fallback := &WikiImage{URL: "https://example.org/photo.jpg"}

		got := SummarizeHTML(html, fallback)

		if strings.Contains(got, "IconSomething") {
			t.Errorf("icon image should be skipped: %s", got)
		}
		if !strings.Contains(got, "https://example.org/photo.jpg") {
			t.Errorf("fallback image not used: %s", got)
		}
	})

	t.Run("no paragraphs falls back to truncated text", func(t *testing.T) {
		html := strings.Repeat("x", 700)

		got := SummarizeHTML(html, nil)

		if len(got) > 610 {
			t.Errorf("expected truncation to ~600 chars, got %d", len(got))
		}
		if !strings.HasSuffix(got, "...") {
			t.Errorf("missing ellipsis: %s", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := SummarizeHTML("", nil); got != "" {
			t.Errorf("expected empty output, got %q", got)
		}
	})
}

func TestIsTravelPhoto(t *testing.T) {
	cases := []struct {
		name string
		img  WikiImage
		want bool
	}{
		{"plain photo", WikiImage{Title: "Tokyo at night", URL: "https://x/Tokyo_night.jpg"}, true},
		{"jpeg extension", WikiImage{Title: "Lima", URL: "https://x/Lima.JPEG"}, true},
		{"map url", WikiImage{Title: "Layout", URL: "https://x/japan_map.jpg"}, false},
		{"flag title", WikiImage{Title: "Flag of Japan", URL: "https://x/photo.jpg"}, false},
		{"svg", WikiImage{Title: "Emblem", URL: "https://x/emblem.svg"}, false},
		{"banner title", WikiImage{Title: "Page banner", URL: "https://x/photo.jpg"}, false},
		{"png photo not allowed", WikiImage{Title: "Shrine", URL: "https://x/shrine.png"}, false},
		{"user upload", WikiImage{Title: "User:Traveler42 pic", URL: "https://x/pic.jpg"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isTravelPhoto(tc.img); got != tc.want {
				t.Errorf("isTravelPhoto(%+v) = %v, want %v", tc.img, got, tc.want)
			}
		})
	}
}

func TestPickFallbackImage(t *testing.T) {
	images := []WikiImage{
		{Title: "Grand market hall", Description: "street food stalls"},
		{Title: "Mountain vista", Description: "alpine landscape"},
		{Title: "Old castle", Description: "medieval fort"},
	}

	t.Run("prefers matching terms", func(t *testing.T) {
		img := pickFallbackImage(images, "cuisine", 0)
		if img == nil || img.Title != "Grand market hall" {
			t.Errorf("expected the food image, got %+v", img)
		}

		img = pickFallbackImage(images, "history", 0)
		if img == nil || img.Title != "Old castle" {
			t.Errorf("expected the castle image, got %+v", img)
		}
	})

	t.Run("rotates through generic images when nothing matches", func(t *testing.T) {
		img := pickFallbackImage(images, "tourism", 1)
		if img == nil {
			t.Fatal("expected a fallback image")
		}
	})

	t.Run("nil for empty list", func(t *testing.T) {
		if img := pickFallbackImage(nil, "cuisine", 0); img != nil {
			t.Errorf("expected nil, got %+v", img)
		}
	})
}

func fakeWikivoyage(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":{
			"1":{"title":"File:Kyoto street.jpg","imageinfo":[{"url":"https://upload.example/Kyoto_street.jpg","extmetadata":{"ImageDescription":{"value":"<b>Old</b> street in Kyoto"}}}]},
			"2":{"title":"File:Japan map.jpg","imageinfo":[{"url":"https://upload.example/japan_map.jpg","extmetadata":{}}]},
			"3":{"title":"File:Flag of Japan.svg","imageinfo":[{"url":"https://upload.example/flag.svg","extmetadata":{}}]},
			"4":{"title":"File:Kyoto street.jpg","imageinfo":[{"url":"https://upload.example/Kyoto_street.jpg","extmetadata":{}}]},
			"5":{"title":"File:NoInfo.jpg"}
		}}}`)
	}))
}

func TestImages(t *testing.T) {
	voyage := fakeWikivoyage(t)
	defer voyage.Close()

	client := NewWikiClientWithURLs("http://unused.invalid", voyage.URL)

	images, err := client.Images(context.Background(), "Japan")
	if err != nil {
		t.Fatalf("Images: %v", err)
	}

	if len(images) != 1 {
		t.Fatalf("expected 1 image after filtering and dedupe, got %d: %+v", len(images), images)
	}
	img := images[0]
	if img.Title != "Kyoto street" {
		t.Errorf("File: prefix and extension should be stripped, got %q", img.Title)
	}
	if strings.Contains(img.Description, "<b>") {
		t.Errorf("description HTML should be stripped, got %q", img.Description)
	}
}

func TestCountrySections(t *testing.T) {
	voyage := fakeWikivoyage(t)
	defer voyage.Close()

	wikipedia := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("prop") {
		case "sections":
			fmt.Fprint(w, `{"parse":{"sections":[
				{"line":"Etymology","index":"1"},
				{"line":"History","index":"2"},
				{"line":"Cuisine","index":"5"}
			]}}`)
		case "text":
			section := r.URL.Query().Get("section")
			fmt.Fprintf(w, `{"parse":{"text":{"*":"<p>Section %s content.</p><p>More.</p>"}}}`, section)
		default:
			http.Error(w, "unexpected request", http.StatusBadRequest)
		}
	}))
	defer wikipedia.Close()

	client := NewWikiClientWithURLs(wikipedia.URL, voyage.URL)

	sections, err := client.CountrySections(context.Background(), "Japan")
	if err != nil {
		t.Fatalf("CountrySections: %v", err)
	}

	if len(sections) != 2 {
		t.Fatalf("expected history and cuisine, got %v", sections)
	}
	if !strings.Contains(sections["history"], "Section 2 content.") {
		t.Errorf("history section wrong: %s", sections["history"])
	}
	if !strings.Contains(sections["cuisine"], "Section 5 content.") {
		t.Errorf("cuisine section wrong: %s", sections["cuisine"])
	}
	if _, ok := sections["geography"]; ok {
		t.Error("geography section should be absent")
	}
}

func TestCountrySectionsPageNotFound(t *testing.T) {
	wikipedia := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"code":"missingtitle"}}`)
	}))
	defer wikipedia.Close()

	client := NewWikiClientWithURLs(wikipedia.URL, wikipedia.URL)

	if _, err := client.CountrySections(context.Background(), "Atlantis"); err != ErrPageNotFound {
		t.Errorf("expected ErrPageNotFound, got %v", err)
	}
}
