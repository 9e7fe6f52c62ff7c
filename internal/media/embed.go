package media

import (
	"net/url"
	"strings"
)

type Kind int

const (
	KindNone Kind = iota
	KindImage
	KindYouTube
	KindVideo
)

type Embed struct {
	Kind Kind
	URL  string
}

var videoExts = []string{".mp4", ".webm", ".ogg", ".mov"}

// Resolve decides how a candidate's image link should be rendered. Anything
// that is not a recognised video is treated as an image.
func Resolve(link *string) Embed {
	if link == nil || strings.TrimSpace(*link) == "" {
		return Embed{Kind: KindNone}
	}
	l := strings.TrimSpace(*link)

	if id := youTubeID(l); id != "" {
		return Embed{Kind: KindYouTube, URL: "https://www.youtube.com/embed/" + id}
	}

	lower := strings.ToLower(l)
	if u, err := url.Parse(lower); err == nil {
		lower = u.Path
	}
	for _, ext := range videoExts {
		if strings.HasSuffix(lower, ext) {
			return Embed{Kind: KindVideo, URL: l}
		}
	}

	return Embed{Kind: KindImage, URL: l}
}

func youTubeID(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	switch host {
	case "youtu.be":
		return strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		if rest, ok := strings.CutPrefix(u.Path, "/embed/"); ok {
			return strings.Trim(rest, "/")
		}
	}
	return ""
}
