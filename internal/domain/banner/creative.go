package banner

import (
	"net/url"
	"strings"
)

// MaxBadges caps the number of badge labels on a creative.
const MaxBadges = 2

// Creative is the ad payload bound to a reservation: what actually renders
// when the public ad server resolves the slot.
type Creative struct {
	title       string
	description string
	imageURL    string
	targetURL   string
	badges      []string
}

// NewCreative validates and builds a creative.
func NewCreative(title, description, imageURL, targetURL string, badges []string) (Creative, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Creative{}, ErrCreativeTitleRequired
	}
	if err := validateHTTPURL(imageURL); err != nil {
		return Creative{}, ErrInvalidCreativeURL("image_url", imageURL)
	}
	if err := validateHTTPURL(targetURL); err != nil {
		return Creative{}, ErrInvalidCreativeURL("target_url", targetURL)
	}
	if len(badges) > MaxBadges {
		return Creative{}, ErrTooManyBadges
	}

	cleaned := make([]string, 0, len(badges))
	for _, b := range badges {
		if b = strings.TrimSpace(b); b != "" {
			cleaned = append(cleaned, b)
		}
	}

	return Creative{
		title:       title,
		description: strings.TrimSpace(description),
		imageURL:    imageURL,
		targetURL:   targetURL,
		badges:      cleaned,
	}, nil
}

// ReconstructCreative rebuilds a creative from persistence without
// re-validating; stored creatives were validated on the way in.
func ReconstructCreative(title, description, imageURL, targetURL string, badges []string) Creative {
	return Creative{
		title:       title,
		description: description,
		imageURL:    imageURL,
		targetURL:   targetURL,
		badges:      badges,
	}
}

func (c Creative) Title() string       { return c.title }
func (c Creative) Description() string { return c.description }
func (c Creative) ImageURL() string    { return c.imageURL }
func (c Creative) TargetURL() string   { return c.targetURL }

func (c Creative) Badges() []string {
	out := make([]string, len(c.badges))
	copy(out, c.badges)
	return out
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidCreativeURL("url", raw)
	}
	return nil
}
