package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	// Album covers come back as JPEG in practice, but the decoder
	// registrations keep the other common formats working too.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/domain"
	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/store"
	"github.com/aussiebroadwan/sharelinks/pkg/idx"
	"github.com/aussiebroadwan/sharelinks/pkg/spotify"
)

// ArtworkHeight is the album cover variant the share panel renders.
const ArtworkHeight = 64

// ResolverConfig carries the collaborators and knobs for a Resolver.
type ResolverConfig struct {
	Client *spotify.Client
	Tokens *TokenManager
	Target domain.TargetPreference

	History store.Links      // optional, resolved records are appended when set
	Logger  *slog.Logger     // defaults to slog.Default()
	Now     func() time.Time // defaults to time.Now, overridable in tests
}

// Resolver turns a track ID into a display-ready LinkRecord: token via the
// manager, metadata and artwork over HTTP, target URL per preference.
type Resolver struct {
	client  *spotify.Client
	tokens  *TokenManager
	target  domain.TargetPreference
	history store.Links
	logger  *slog.Logger
	now     func() time.Time
}

func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Target == "" {
		cfg.Target = domain.TargetWeb
	}

	return &Resolver{
		client:  cfg.Client,
		tokens:  cfg.Tokens,
		target:  cfg.Target,
		history: cfg.History,
		logger:  cfg.Logger,
		now:     cfg.Now,
	}
}

// ResolveTrack resolves a Spotify track ID into an immutable LinkRecord.
// Metadata failures fail the whole resolution; artwork failures degrade to
// a record without artwork.
func (r *Resolver) ResolveTrack(ctx context.Context, trackID string) (domain.LinkRecord, error) {
	cred, err := r.tokens.EnsureValidToken(ctx)
	if err != nil {
		return domain.LinkRecord{}, fmt.Errorf("failed to obtain access token: %w", err)
	}

	track, err := r.client.GetTrack(ctx, cred.AuthorizationHeader(), trackID)
	if err != nil {
		return domain.LinkRecord{}, fmt.Errorf("failed to fetch track %q: %w", trackID, err)
	}

	subtitle := ""
	if len(track.Artists) > 0 {
		subtitle = track.Artists[0].Name
	}

	targetURL := track.ExternalURLs.Spotify
	if r.target == domain.TargetApp {
		targetURL = track.URI
	}

	artwork, decoded := r.fetchArtwork(ctx, track)

	record := domain.LinkRecord{
		ID:           idx.New(),
		Type:         domain.LinkTypeSpotify,
		Title:        track.Name,
		Subtitle:     subtitle,
		TargetURL:    targetURL,
		CreatedAt:    r.now(),
		Artwork:      artwork,
		ArtworkImage: decoded,
	}

	if r.history != nil {
		if err := r.history.Append(ctx, record); err != nil {
			r.logger.Warn("failed to record link in history", "track_id", trackID, "error", err)
		}
	}

	return record, nil
}

// fetchArtwork finds the cover variant with the expected height, fetches
// and decodes it. Every failure here degrades to no artwork; the record is
// still worth rendering without a cover.
func (r *Resolver) fetchArtwork(ctx context.Context, track *spotify.Track) ([]byte, image.Image) {
	var cover *spotify.Image
	for i := range track.Album.Images {
		if track.Album.Images[i].Height == ArtworkHeight {
			cover = &track.Album.Images[i]
			break
		}
	}
	if cover == nil {
		r.logger.Debug("track has no artwork variant at expected height",
			"track", track.Name, "height", ArtworkHeight)
		return nil, nil
	}

	raw, err := r.client.FetchImage(ctx, cover.URL)
	if err != nil {
		r.logger.Warn("failed to fetch track artwork", "track", track.Name, "error", err)
		return nil, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		r.logger.Warn("failed to decode track artwork", "track", track.Name, "error", err)
		return nil, nil
	}

	return raw, decoded
}
