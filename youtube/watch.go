package youtube

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ytt/captions"
)

var apiKeyPattern = regexp.MustCompile(`"INNERTUBE_API_KEY":\s*"([a-zA-Z0-9_-]+)"`)

const consentFormSelector = `form[action^="https://consent.youtube.com"]`

// watchPage holds what is needed from the watch page.
type watchPage struct {
	title  string
	apiKey string
	cookie string
}

// fetchWatchPage loads the watch page. When YouTube answers with the
// cookie consent interstitial, the consent cookie is built from the form
// and the page is requested once more.
func (c *Client) fetchWatchPage(ctx context.Context, videoID string) (*watchPage, error) {
	pageURL := c.baseURL + "/watch?v=" + url.QueryEscape(videoID)

	doc, err := c.loadDocument(ctx, pageURL, videoID, "")
	if err != nil {
		return nil, err
	}

	cookie := ""
	if doc.Find(consentFormSelector).Length() > 0 {
		v, ok := doc.Find(consentFormSelector + ` input[name="v"]`).Attr("value")
		if !ok || v == "" {
			return nil, fmt.Errorf("failed to accept cookie consent for video %s", videoID)
		}
		cookie = "CONSENT=YES+" + v

		doc, err = c.loadDocument(ctx, pageURL, videoID, cookie)
		if err != nil {
			return nil, err
		}
		if doc.Find(consentFormSelector).Length() > 0 {
			return nil, fmt.Errorf("failed to accept cookie consent for video %s", videoID)
		}
	}

	page := &watchPage{
		title:  pageTitle(doc),
		apiKey: innertubeAPIKey(doc),
		cookie: cookie,
	}

	if page.apiKey == "" {
		if doc.Find(".g-recaptcha").Length() > 0 {
			return nil, &captions.TooManyRequestsError{VideoID: videoID}
		}
		return nil, &captions.VideoUnavailableError{VideoID: videoID}
	}

	return page, nil
}

func (c *Client) loadDocument(ctx context.Context, pageURL, videoID, cookie string) (*goquery.Document, error) {
	body, err := c.get(ctx, pageURL, videoID, cookie)
	if err != nil {
		return nil, fmt.Errorf("failed to load watch page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse watch page: %w", err)
	}
	return doc, nil
}

func pageTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find(`meta[name="title"]`).AttrOr("content", "")); t != "" {
		return t
	}
	t := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.TrimSpace(strings.TrimSuffix(t, "- YouTube"))
}

func innertubeAPIKey(doc *goquery.Document) string {
	var key string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := apiKeyPattern.FindStringSubmatch(s.Text()); m != nil {
			key = m[1]
			return false
		}
		return true
	})
	return key
}
