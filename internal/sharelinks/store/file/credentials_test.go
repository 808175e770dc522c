package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/domain"
	"github.com/stretchr/testify/require"
)

func testCredential() domain.Credential {
	return domain.Credential{
		AccessToken:  "acc-1",
		TokenType:    "Bearer",
		Scope:        "",
		ExpiresIn:    3600,
		RefreshToken: "ref-1",
		IssuedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credential.json")
	store := NewCredentialStore(path, nil)

	want := testCredential()
	require.NoError(t, store.Save(ctx, want))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestLoad_Absent(t *testing.T) {
	ctx := context.Background()
	store := NewCredentialStore(filepath.Join(t.TempDir(), "missing.json"), nil)

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoad_CorruptIsAbsent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credential.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewCredentialStore(path, nil)
	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoad_EmptyIsAbsent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credential.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	store := NewCredentialStore(path, nil)
	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSave_ReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credential.json")
	store := NewCredentialStore(path, nil)

	first := testCredential()
	require.NoError(t, store.Save(ctx, first))

	second := first
	second.AccessToken = "acc-2"
	second.RefreshToken = "ref-2"
	require.NoError(t, store.Save(ctx, second))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, second, got)

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credential.json")
	store := NewCredentialStore(path, nil)

	require.NoError(t, store.Save(ctx, testCredential()))
	require.NoError(t, store.Clear(ctx))

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// Clearing twice is fine
	require.NoError(t, store.Clear(ctx))
}
