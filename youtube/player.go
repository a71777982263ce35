package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"ytt/captions"
	"ytt/models"
)

// Innertube client identity used for the player request.
const (
	innertubeClientName    = "ANDROID"
	innertubeClientVersion = "20.10.38"
)

type playerRequest struct {
	Context struct {
		Client struct {
			ClientName    string `json:"clientName"`
			ClientVersion string `json:"clientVersion"`
		} `json:"client"`
	} `json:"context"`
	VideoID string `json:"videoId"`
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status      string `json:"status"`
		Reason      string `json:"reason"`
		ErrorScreen struct {
			PlayerErrorMessageRenderer struct {
				Subreason text `json:"subreason"`
			} `json:"playerErrorMessageRenderer"`
		} `json:"errorScreen"`
	} `json:"playabilityStatus"`
	Captions *struct {
		Renderer *struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	VideoDetails struct {
		VideoID string `json:"videoId"`
		Title   string `json:"title"`
	} `json:"videoDetails"`
}

type captionTrack struct {
	BaseURL        string `json:"baseUrl"`
	Name           text   `json:"name"`
	LanguageCode   string `json:"languageCode"`
	Kind           string `json:"kind"`
	IsTranslatable bool   `json:"isTranslatable"`
}

// text is the innertube text object: either simpleText or a list of runs.
type text struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t text) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func (c *Client) fetchPlayer(ctx context.Context, videoID string, page *watchPage) (*playerResponse, error) {
	var body playerRequest
	body.Context.Client.ClientName = innertubeClientName
	body.Context.Client.ClientVersion = innertubeClientVersion
	body.VideoID = videoID

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode player request: %w", err)
	}

	endpoint := c.baseURL + "/youtubei/v1/player?key=" + url.QueryEscape(page.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build player request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if page.cookie != "" {
		req.Header.Set("Cookie", page.cookie)
	}

	raw, err := c.do(req, videoID)
	if err != nil {
		return nil, fmt.Errorf("player request failed: %w", err)
	}

	var resp playerResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse player response: %w", err)
	}
	return &resp, nil
}

// checkPlayability maps a non-OK playability status to the error taxonomy.
func (p *playerResponse) checkPlayability(videoID string) error {
	status := p.PlayabilityStatus.Status
	reason := p.PlayabilityStatus.Reason

	switch {
	case status == "OK" || status == "":
		return nil
	case status == "LOGIN_REQUIRED" && strings.Contains(reason, "not a bot"):
		return &captions.TooManyRequestsError{VideoID: videoID}
	case status == "LOGIN_REQUIRED" && strings.Contains(reason, "inappropriate"):
		return &captions.AgeRestrictedError{VideoID: videoID}
	case status == "ERROR" && strings.Contains(reason, "unavailable"):
		return &captions.VideoUnavailableError{VideoID: videoID}
	}

	if sub := p.PlayabilityStatus.ErrorScreen.PlayerErrorMessageRenderer.Subreason.String(); sub != "" {
		reason = strings.TrimSpace(reason + " " + sub)
	}
	return &captions.VideoUnplayableError{VideoID: videoID, Reason: reason}
}

// captionTracks converts the caption track list. A response without a
// caption renderer means captions are disabled for the video.
func (p *playerResponse) captionTracks(videoID string) ([]models.CaptionTrack, error) {
	if p.Captions == nil || p.Captions.Renderer == nil || len(p.Captions.Renderer.CaptionTracks) == 0 {
		return nil, &captions.TranscriptsDisabledError{VideoID: videoID}
	}

	raw := p.Captions.Renderer.CaptionTracks
	tracks := make([]models.CaptionTrack, 0, len(raw))
	for _, ct := range raw {
		if ct.BaseURL == "" || ct.LanguageCode == "" {
			continue
		}
		name := ct.Name.String()
		if name == "" {
			name = captions.DisplayName(ct.LanguageCode)
		}
		tracks = append(tracks, models.CaptionTrack{
			VideoID:      videoID,
			Language:     name,
			LanguageCode: ct.LanguageCode,
			Generated:    ct.Kind == "asr",
			Translatable: ct.IsTranslatable,
			URL:          strings.Replace(ct.BaseURL, "&fmt=srv3", "", 1),
		})
	}

	if len(tracks) == 0 {
		return nil, &captions.TranscriptsDisabledError{VideoID: videoID}
	}
	return tracks, nil
}
