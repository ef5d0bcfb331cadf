// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"time"

	"github.com/desertthunder/playdex/internal/services"
)

// MockService is a configurable test double for [services.Service]
type MockService struct {
	AuthenticateErr   error
	Expired           bool
	Expiry            time.Time
	BrowseIDs         []string
	BrowseErr         error
	Playlists         []services.Playlist
	PlaylistsErr      error
	Tracks            []services.Track
	TracksErr         error
	AuthenticateCalls int
}

func (m *MockService) Authenticate(ctx context.Context) error {
	m.AuthenticateCalls++
	return m.AuthenticateErr
}

func (m *MockService) TokenExpired() bool { return m.Expired }

func (m *MockService) TokenExpiry() time.Time { return m.Expiry }

func (m *MockService) BrowsePlaylists(ctx context.Context, categoryID string) ([]string, error) {
	return m.BrowseIDs, m.BrowseErr
}

func (m *MockService) UserPlaylists(ctx context.Context) ([]services.Playlist, error) {
	return m.Playlists, m.PlaylistsErr
}

func (m *MockService) PlaylistTracks(ctx context.Context, playlistID string) ([]services.Track, error) {
	return m.Tracks, m.TracksErr
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
