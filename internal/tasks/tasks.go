// package tasks implements snapshot operations that pull listings from the Spotify API into the local cache.
//
// The core abstraction is SnapshotEngine, which orchestrates fetch-and-cache runs for a
// single playlist or the whole library. Operations emit progress updates via channels
// for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/playdex/internal/services"
	"github.com/desertthunder/playdex/internal/shared"
)

// PlaylistCacher persists playlist summaries fetched from a service.
type PlaylistCacher interface {
	CachePlaylist(service string, playlist services.Playlist) error
}

// TrackCacher persists track summaries fetched from a service playlist.
type TrackCacher interface {
	CacheTrack(service, playlistServiceID string, track services.Track) error
}

// PlaylistSnapshotResult contains the outcome of snapshotting one playlist.
type PlaylistSnapshotResult struct {
	PlaylistID   string           // Source playlist ID
	Tracks       []services.Track // Tracks fetched from the API
	CachedTracks int              // Tracks written to the cache
}

// LibrarySnapshotResult contains the outcome of snapshotting the whole library.
type LibrarySnapshotResult struct {
	Playlists       []services.Playlist // Playlists fetched from the API
	CachedPlaylists int                 // Playlists written to the cache
}

// SnapshotEngine orchestrates fetch-and-cache runs against a music service.
type SnapshotEngine struct {
	svc       services.Service
	playlists PlaylistCacher
	tracks    TrackCacher
}

// NewSnapshotEngine creates a SnapshotEngine with the provided service and cache writers.
func NewSnapshotEngine(svc services.Service, playlists PlaylistCacher, tracks TrackCacher) *SnapshotEngine {
	return &SnapshotEngine{
		svc:       svc,
		playlists: playlists,
		tracks:    tracks,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *SnapshotEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// SnapshotPlaylist fetches a playlist's tracks and caches each one.
func (e *SnapshotEngine) SnapshotPlaylist(ctx context.Context, playlistID string, progress chan<- ProgressUpdate) (*PlaylistSnapshotResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if e.tracks == nil {
		return nil, fmt.Errorf("%w: track cache not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchTracksUpdate(1, 1, playlistID))

	tracks, err := e.svc.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	result := &PlaylistSnapshotResult{
		PlaylistID: playlistID,
		Tracks:     tracks,
	}

	total := len(tracks)
	for i, track := range tracks {
		e.sendProgress(progress, cacheTrackUpdate(i+1, total, track))

		if err := e.tracks.CacheTrack(e.svc.Name(), playlistID, track); err != nil {
			return result, fmt.Errorf("failed to cache track %s: %w", track.ID, err)
		}
		result.CachedTracks++
	}

	return result, nil
}

// SnapshotLibrary fetches the client's playlists and caches each summary.
func (e *SnapshotEngine) SnapshotLibrary(ctx context.Context, progress chan<- ProgressUpdate) (*LibrarySnapshotResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if e.playlists == nil {
		return nil, fmt.Errorf("%w: playlist cache not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchLibraryUpdate(1, 1))

	playlists, err := e.svc.UserPlaylists(ctx)
	if err != nil {
		return nil, err
	}

	result := &LibrarySnapshotResult{Playlists: playlists}

	total := len(playlists)
	for i, playlist := range playlists {
		e.sendProgress(progress, cachePlaylistUpdate(i+1, total, playlist))

		if err := e.playlists.CachePlaylist(e.svc.Name(), playlist); err != nil {
			return result, fmt.Errorf("failed to cache playlist %s: %w", playlist.ID, err)
		}
		result.CachedPlaylists++
	}

	return result, nil
}
