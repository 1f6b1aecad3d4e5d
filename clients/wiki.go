package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

const wikiUserAgent = "WanderlistDev/1.0 (contact@example.com)"

// Section keywords worth surfacing on a country page, in display order.
var sectionKeywords = []string{"History", "Culture", "Cuisine", "Geography", "Tourism"}

// Terms used to match a Wikivoyage photo to a section when the section HTML
// itself carries no usable image.
var sectionImageTerms = map[string][]string{
	"history":   {"history", "ancient", "old", "ruin", "castle", "fort", "palace", "museum", "statue", "monument", "war", "temple", "church", "mosque", "cathedral", "heritage"},
	"culture":   {"culture", "art", "dance", "music", "festival", "tradition", "people", "costume", "religious", "temple", "church", "mosque", "street"},
	"cuisine":   {"cuisine", "food", "dish", "meal", "drink", "wine", "bread", "cheese", "meat", "fish", "fruit", "restaurant", "market", "pastry", "coffee", "tea", "spice", "kebab", "rice"},
	"geography": {"geography", "mountain", "river", "lake", "sea", "coast", "forest", "park", "landscape", "nature", "valley", "waterfall", "desert", "bay", "beach"},
	"tourism":   {"tourism", "travel", "hotel", "resort", "beach", "city", "town", "street", "plaza", "square", "skyline", "night", "bridge", "harbor"},
}

type WikiImage struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// WikiClient talks to the Wikipedia and Wikivoyage action APIs.
type WikiClient struct {
	wikipediaURL  string
	wikivoyageURL string
	httpClient    *http.Client
}

func NewWikiClient() *WikiClient {
	return &WikiClient{
		wikipediaURL:  "https://en.wikipedia.org/w/api.php",
		wikivoyageURL: "https://en.wikivoyage.org/w/api.php",
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWikiClientWithURLs is used by tests to point the client at fake servers.
func NewWikiClientWithURLs(wikipediaURL, wikivoyageURL string) *WikiClient {
	c := NewWikiClient()
	c.wikipediaURL = wikipediaURL
	c.wikivoyageURL = wikivoyageURL
	return c
}

func (c *WikiClient) get(ctx context.Context, baseURL string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", wikiUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wiki API returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type parseSectionsResponse struct {
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
	Parse struct {
		Sections []struct {
			Line  string `json:"line"`
			Index string `json:"index"`
		} `json:"sections"`
	} `json:"parse"`
}

// ErrPageNotFound flags a missing Wikipedia page so the handler can 404.
var ErrPageNotFound = fmt.Errorf("wiki page not found")

// CountrySections fetches the History/Culture/Cuisine/Geography/Tourism
// sections of a country's Wikipedia page, summarized to a short HTML blurb
// each. Wikivoyage photos fill in when a section has no image of its own.
func (c *WikiClient) CountrySections(ctx context.Context, country string) (map[string]string, error) {
	var sectionsRes parseSectionsResponse
	err := c.get(ctx, c.wikipediaURL, url.Values{
		"action":    {"parse"},
		"page":      {country},
		"format":    {"json"},
		"prop":      {"sections"},
		"redirects": {"1"},
		"origin":    {"*"},
	}, &sectionsRes)
	if err != nil {
		return nil, err
	}
	if sectionsRes.Error != nil {
		return nil, ErrPageNotFound
	}

	// Fallback images are best-effort; a Wikivoyage failure never fails the page.
	fallbackImages, imgErr := c.Images(ctx, country)
	if imgErr != nil {
		fallbackImages = nil
	}

	result := make(map[string]string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, keyword := range sectionKeywords {
		var sectionIndex string
		for _, s := range sectionsRes.Parse.Sections {
			if strings.Contains(s.Line, keyword) {
				sectionIndex = s.Index
				break
			}
		}
		if sectionIndex == "" {
			continue
		}

		wg.Add(1)
		go func(i int, keyword, sectionIndex string) {
			defer wg.Done()

			html, err := c.sectionHTML(ctx, country, sectionIndex)
			if err != nil {
				return
			}

			key := strings.ToLower(keyword)
			fallback := pickFallbackImage(fallbackImages, key, i)

			mu.Lock()
			result[key] = SummarizeHTML(html, fallback)
			mu.Unlock()
		}(i, keyword, sectionIndex)
	}

	wg.Wait()
	return result, nil
}

func (c *WikiClient) sectionHTML(ctx context.Context, country, sectionIndex string) (string, error) {
	var textRes struct {
		Parse struct {
			Text map[string]string `json:"text"`
		} `json:"parse"`
	}
	err := c.get(ctx, c.wikipediaURL, url.Values{
		"action":       {"parse"},
		"page":         {country},
		"format":       {"json"},
		"prop":         {"text"},
		"section":      {sectionIndex},
		"redirects":    {"1"},
		"origin":       {"*"},
		"disabletoc":   {"1"},
		"mobileformat": {"1"},
	}, &textRes)
	if err != nil {
		return "", err
	}
	return textRes.Parse.Text["*"], nil
}

// pickFallbackImage prefers a photo whose title or description mentions one
// of the section's terms, rotating by section index to spread images out.
func pickFallbackImage(images []WikiImage, sectionKey string, index int) *WikiImage {
	if len(images) == 0 {
		return nil
	}

	terms := sectionImageTerms[sectionKey]
	if len(terms) == 0 {
		terms = []string{sectionKey}
	}

	var related []WikiImage
	for _, img := range images {
		text := strings.ToLower(img.Title + " " + img.Description)
		for _, term := range terms {
			if strings.Contains(text, term) {
				related = append(related, img)
				break
			}
		}
	}

	if len(related) > 0 {
		return &related[index%len(related)]
	}
	return &images[index%len(images)]
}

type imagesResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			ImageInfo []struct {
				URL         string `json:"url"`
				ExtMetadata struct {
					ImageDescription struct {
						Value string `json:"value"`
					} `json:"ImageDescription"`
				} `json:"extmetadata"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)
var filePrefixRe = regexp.MustCompile(`^File:`)
var imageExtRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|svg)$`)

// Images queries Wikivoyage for travel photos of a country, filtered down to
// actual photography (no maps, flags, banners or user uploads).
func (c *WikiClient) Images(ctx context.Context, country string) ([]WikiImage, error) {
	var res imagesResponse
	err := c.get(ctx, c.wikivoyageURL, url.Values{
		"action":    {"query"},
		"generator": {"images"},
		"titles":    {country},
		"gimlimit":  {"100"},
		"prop":      {"imageinfo"},
		"iiprop":    {"url|extmetadata"},
		"format":    {"json"},
		"origin":    {"*"},
	}, &res)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	images := []WikiImage{}
	for _, page := range res.Query.Pages {
		if len(page.ImageInfo) == 0 || page.ImageInfo[0].URL == "" {
			continue
		}
		info := page.ImageInfo[0]

		img := WikiImage{
			Title:       imageExtRe.ReplaceAllString(filePrefixRe.ReplaceAllString(page.Title, ""), ""),
			Description: htmlTagRe.ReplaceAllString(info.ExtMetadata.ImageDescription.Value, ""),
			URL:         info.URL,
		}

		if !isTravelPhoto(img) || seen[img.URL] {
			continue
		}
		seen[img.URL] = true
		images = append(images, img)
		if len(images) == 50 {
			break
		}
	}
	return images, nil
}

func isTravelPhoto(img WikiImage) bool {
	lowerURL := strings.ToLower(img.URL)
	lowerTitle := strings.ToLower(img.Title)

	for _, frag := range []string{"map", "flag", "svg", "coat_of_arms", "icon", "banner"} {
		if strings.Contains(lowerURL, frag) {
			return false
		}
	}
	for _, frag := range []string{"banner", "flag", "locator", "regions", "user:", "commit"} {
		if strings.Contains(lowerTitle, frag) {
			return false
		}
	}
	return strings.HasSuffix(lowerURL, ".jpg") || strings.HasSuffix(lowerURL, ".jpeg")
}

var imgTagRe = regexp.MustCompile(`<img[^>]+src="([^">]+)"[^>]*>`)
var thumbRe = regexp.MustCompile(`/thumb/([0-9a-fA-F]+/[0-9a-fA-F]+/[^/]+)/[^/]+$`)
var supRe = regexp.MustCompile(`(?is)<sup.*?</sup>`)
var refMarkerRe = regexp.MustCompile(`\[\d+\]`)
var paragraphRe = regexp.MustCompile(`(?is)<p\b[^>]*>.*?</p>`)

// SummarizeHTML trims a Wikipedia section down to its first image (or the
// fallback photo) followed by the first two paragraphs, with reference
// markers stripped.
func SummarizeHTML(html string, fallback *WikiImage) string {
	if html == "" {
		return ""
	}

	imageHTML := ""
	if m := imgTagRe.FindStringSubmatch(html); m != nil {
		src := m[1]
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}

		// Rewrite .../thumb/a/b/Name.jpg/Size-Name.jpg to the full-res original.
		fullRes := src
		if strings.Contains(src, "/thumb/") {
			fullRes = thumbRe.ReplaceAllString(src, "/$1")
		}

		if !strings.Contains(src, "Icon") && !strings.Contains(src, "Ambox") {
			imageHTML = sectionImageHTML(fullRes)
		}
	}

	if imageHTML == "" && fallback != nil {
		imageHTML = sectionImageHTML(fallback.URL)
	}

	clean := supRe.ReplaceAllString(html, "")
	clean = refMarkerRe.ReplaceAllString(clean, "")

	var text string
	if paragraphs := paragraphRe.FindAllString(clean, 2); len(paragraphs) > 0 {
		text = strings.Join(paragraphs, "") + "<p>...</p>"
	} else {
		if len(clean) > 600 {
			clean = clean[:600]
		}
		text = clean + "..."
	}

	return imageHTML + text
}

func sectionImageHTML(src string) string {
	return fmt.Sprintf(`<div class="wiki-section-image-container"><img src="%s" class="clickable-wiki-image" data-full-res="%s" alt="Section Image"/></div>`, src, src)
}
