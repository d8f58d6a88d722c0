package platform

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ytget/yt-player/internal/model"
)

// URL templates
const (
	YouTubeVideoURLTemplate    = "https://www.youtube.com/watch?v=%s"
	YouTubePlaylistURLTemplate = "https://www.youtube.com/playlist?list=%s"
)

// Path prefixes that carry the id as the next segment
var videoPathPrefixes = []string{"/shorts/", "/embed/", "/live/", "/v/"}

// ExtractVideoID returns the video id from a bare id or any common YouTube
// URL form. The result is always a valid 11 character id.
func ExtractVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if model.IsValidVideoID(input) {
		return input, nil
	}

	u, err := parseLooseURL(input)
	if err != nil {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidVideoID, input)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = firstSegment(u.Path)
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			candidate = v
			break
		}
		for _, prefix := range videoPathPrefixes {
			if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
				candidate = firstSegment(rest)
				break
			}
		}
	}

	if !model.IsValidVideoID(candidate) {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidVideoID, input)
	}
	return candidate, nil
}

// ExtractPlaylistID returns the list= parameter of a playlist URL. A bare
// id starting with a known playlist prefix is accepted as is.
func ExtractPlaylistID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty playlist URL")
	}
	if !strings.Contains(input, "/") && !strings.Contains(input, "=") && isPlaylistIDLike(input) {
		return input, nil
	}

	u, err := parseLooseURL(input)
	if err != nil {
		return "", fmt.Errorf("invalid playlist URL: %s", input)
	}
	id := u.Query().Get("list")
	if id == "" {
		return "", fmt.Errorf("URL does not contain playlist parameter: %s", input)
	}
	return id, nil
}

// VideoURL returns the watch URL for id.
func VideoURL(id string) string {
	return fmt.Sprintf(YouTubeVideoURLTemplate, id)
}

func isPlaylistIDLike(s string) bool {
	for _, p := range []string{"PL", "UU", "LL", "FL", "OL", "RD"} {
		if strings.HasPrefix(s, p) && len(s) > len(p)+8 {
			return true
		}
	}
	return false
}

func parseLooseURL(s string) (*url.URL, error) {
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host")
	}
	return u, nil
}

func firstSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexAny(p, "/?#"); i >= 0 {
		p = p[:i]
	}
	return p
}
