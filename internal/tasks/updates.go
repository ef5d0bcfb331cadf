package tasks

import (
	"fmt"

	"github.com/desertthunder/playdex/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchLibrary Phase = iota
	FetchTracks
	CachePlaylists
	CacheTracks
)

func (p Phase) String() string {
	switch p {
	case FetchLibrary:
		return "fetch_library"
	case FetchTracks:
		return "fetch_tracks"
	case CachePlaylists:
		return "cache_playlists"
	case CacheTracks:
		return "cache_tracks"
	default:
		return ""
	}
}

func fetchLibraryUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLibrary,
		Step:    step,
		Total:   total,
		Message: "Fetching playlists from Spotify...",
	}
}

func fetchTracksUpdate(step, total int, playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching tracks for playlist %s...", playlistID),
	}
}

func cachePlaylistUpdate(step, total int, playlist services.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CachePlaylists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Caching playlist: %s", step, total, playlist.Name),
		Data:    playlist,
	}
}

func cacheTrackUpdate(step, total int, track services.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, track.Artist, track.Name),
	}
}
