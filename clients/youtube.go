package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var ErrNoAPIKey = errors.New("YouTube API key not configured")
var ErrNoVideos = errors.New("no videos found")

// YouTubeClient searches the YouTube Data v3 API for a country's travel video.
type YouTubeClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		apiKey:     apiKey,
		baseURL:    "https://www.googleapis.com/youtube/v3/search",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewYouTubeClientWithURL is used by tests to point the client at a fake server.
func NewYouTubeClientWithURL(apiKey, baseURL string) *YouTubeClient {
	c := NewYouTubeClient(apiKey)
	c.baseURL = baseURL
	return c
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchTravelVideo returns the top embeddable HD travel video for a country.
func (c *YouTubeClient) SearchTravelVideo(ctx context.Context, countryName string) (videoID, videoTitle string, err error) {
	if c.apiKey == "" || c.apiKey == "YOUR_API_KEY_HERE" {
		return "", "", ErrNoAPIKey
	}

	params := url.Values{
		"part":            {"snippet"},
		"q":               {countryName + " travel 4k"},
		"type":            {"video"},
		"videoEmbeddable": {"true"},
		"videoDuration":   {"medium"}, // 4-20 minutes
		"videoDefinition": {"high"},
		"order":           {"relevance"},
		"safeSearch":      {"strict"},
		"maxResults":      {"1"},
		"key":             {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("YouTube API returned status %d", resp.StatusCode)
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return "", "", err
	}

	if len(search.Items) == 0 {
		return "", "", ErrNoVideos
	}
	return search.Items[0].ID.VideoID, search.Items[0].Snippet.Title, nil
}
