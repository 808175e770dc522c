package domain

import (
	"image"
	"time"

	"github.com/aussiebroadwan/sharelinks/pkg/idx"
)

// LinkType identifies which provider a shared link came from. Only Spotify
// is implemented today; the enum leaves room for more.
type LinkType string

const (
	LinkTypeSpotify LinkType = "spotify"
)

// TargetPreference selects which form of outbound URL a resolved link
// carries: the provider's web page or its native-app URI.
type TargetPreference string

const (
	TargetWeb TargetPreference = "web"
	TargetApp TargetPreference = "app"
)

// ParseTargetPreference maps a config string onto a TargetPreference,
// defaulting to web for anything unrecognised.
func ParseTargetPreference(s string) TargetPreference {
	if TargetPreference(s) == TargetApp {
		return TargetApp
	}
	return TargetWeb
}

// LinkRecord is the display-ready representation of a shared media item.
// Produced once per successful resolution and immutable thereafter;
// ownership passes to whatever renders it.
type LinkRecord struct {
	ID        idx.ID
	Type      LinkType
	Title     string
	Subtitle  string
	TargetURL string
	CreatedAt time.Time

	// Artwork holds the raw cover image bytes, nil when no suitable
	// variant was available. ArtworkImage is the decoded form for
	// renderers that want pixels rather than bytes.
	Artwork      []byte
	ArtworkImage image.Image
}
