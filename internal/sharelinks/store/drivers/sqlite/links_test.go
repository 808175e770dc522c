package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/domain"
	"github.com/aussiebroadwan/sharelinks/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "links.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func recordAt(tm time.Time, title string) domain.LinkRecord {
	return domain.LinkRecord{
		ID:        idx.NewAt(tm),
		Type:      domain.LinkTypeSpotify,
		Title:     title,
		Subtitle:  "Blur",
		TargetURL: "https://open.spotify.com/track/abc123",
		Artwork:   []byte{0x01, 0x02},
		CreatedAt: tm,
	}
}

func TestAppendRecent_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	links := s.Links()

	want := recordAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), "Song 2")
	require.NoError(t, links.Append(ctx, want))

	got, err := links.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, want, got[0])
}

func TestRecent_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	links := s.Links()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		require.NoError(t, links.Append(ctx, recordAt(base.Add(time.Duration(i)*time.Minute), title)))
	}

	got, err := links.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "third", got[0].Title)
	require.Equal(t, "second", got[1].Title)
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	links := s.Links()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, links.Append(ctx, recordAt(base.Add(time.Duration(i)*time.Minute), "song")))
	}

	require.NoError(t, links.Prune(ctx, 2))

	got, err := links.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestAppend_NilArtwork(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	links := s.Links()

	rec := recordAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), "no art")
	rec.Artwork = nil
	require.NoError(t, links.Append(ctx, rec))

	got, err := links.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Nil(t, got[0].Artwork)
}
