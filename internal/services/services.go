// package services defines interface Service for interacting with the Spotify Web API
package services

import (
	"context"
	"time"
)

// Service defines the read operations exposed by a music streaming provider authenticated with the client-credentials grant.
type Service interface {
	// Authenticate obtains a fresh access token from the provider.
	// The previous token is replaced wholesale on success and left untouched on failure.
	Authenticate(ctx context.Context) error

	// TokenExpired reports whether the current access token is past its expiry instant.
	TokenExpired() bool

	// TokenExpiry returns the absolute expiry instant of the current token (zero when unauthenticated).
	TokenExpiry() time.Time

	// BrowsePlaylists retrieves playlist IDs from the category listing when categoryID is set, or the featured listing otherwise.
	BrowsePlaylists(ctx context.Context, categoryID string) ([]string, error)

	// UserPlaylists retrieves the authenticated client's playlists in API order.
	UserPlaylists(ctx context.Context) ([]Playlist, error)

	// PlaylistTracks retrieves the tracks of a playlist by ID.
	PlaylistTracks(ctx context.Context, playlistID string) ([]Track, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// RawService is implemented by services that expose unprojected API access for debugging.
type RawService interface {
	// Get issues an authenticated GET to an arbitrary API path and returns the raw response.
	Get(ctx context.Context, endpoint string) (*APIResponse, error)
}

// Playlist represents a playlist summary projected from a listing response
type Playlist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TrackCount int    `json:"tracks_count"`
}

// Track represents a track summary projected from a playlist tracks response
type Track struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Artist string `json:"artist"` // First listed artist only
}
