package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/playdex/internal/services"
	tu "github.com/desertthunder/playdex/internal/testing"
)

// recordingCache captures cache writes for assertions.
type recordingCache struct {
	playlists []services.Playlist
	tracks    []services.Track
	err       error
}

func (c *recordingCache) CachePlaylist(service string, playlist services.Playlist) error {
	if c.err != nil {
		return c.err
	}
	c.playlists = append(c.playlists, playlist)
	return nil
}

func (c *recordingCache) CacheTrack(service, playlistServiceID string, track services.Track) error {
	if c.err != nil {
		return c.err
	}
	c.tracks = append(c.tracks, track)
	return nil
}

func TestSnapshotEngine(t *testing.T) {
	t.Run("SnapshotPlaylist", func(t *testing.T) {
		t.Run("Caches Every Track", func(t *testing.T) {
			svc := &tu.MockService{Tracks: []services.Track{
				{ID: "t1", Name: "One", Artist: "A"},
				{ID: "t2", Name: "Two", Artist: "B"},
			}}
			cache := &recordingCache{}
			engine := NewSnapshotEngine(svc, cache, cache)

			result, err := engine.SnapshotPlaylist(context.Background(), "p1", nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if result.CachedTracks != 2 {
				t.Errorf("expected 2 cached tracks, got %d", result.CachedTracks)
			}
			if len(cache.tracks) != 2 || cache.tracks[0].ID != "t1" {
				t.Errorf("unexpected cached tracks: %v", cache.tracks)
			}
		})

		t.Run("Reports Progress", func(t *testing.T) {
			svc := &tu.MockService{Tracks: []services.Track{{ID: "t1", Name: "One", Artist: "A"}}}
			cache := &recordingCache{}
			engine := NewSnapshotEngine(svc, cache, cache)

			progress := make(chan ProgressUpdate, 10)
			if _, err := engine.SnapshotPlaylist(context.Background(), "p1", progress); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			close(progress)

			var phases []Phase
			for update := range progress {
				phases = append(phases, update.Phase)
			}
			if len(phases) < 2 || phases[0] != FetchTracks {
				t.Errorf("expected fetch then cache updates, got %v", phases)
			}
		})

		t.Run("Fetch Error Propagates", func(t *testing.T) {
			svc := &tu.MockService{TracksErr: errors.New("boom")}
			engine := NewSnapshotEngine(svc, &recordingCache{}, &recordingCache{})

			if _, err := engine.SnapshotPlaylist(context.Background(), "p1", nil); err == nil {
				t.Error("expected fetch error to propagate")
			}
		})

		t.Run("Cache Error Propagates With Partial Result", func(t *testing.T) {
			svc := &tu.MockService{Tracks: []services.Track{{ID: "t1"}}}
			cache := &recordingCache{err: errors.New("disk full")}
			engine := NewSnapshotEngine(svc, cache, cache)

			result, err := engine.SnapshotPlaylist(context.Background(), "p1", nil)
			if err == nil {
				t.Fatal("expected cache error")
			}
			if result == nil || result.CachedTracks != 0 {
				t.Errorf("expected partial result with 0 cached tracks, got %+v", result)
			}
		})

		t.Run("Nil Service Fails", func(t *testing.T) {
			engine := NewSnapshotEngine(nil, &recordingCache{}, &recordingCache{})
			if _, err := engine.SnapshotPlaylist(context.Background(), "p1", nil); err == nil {
				t.Error("expected error for nil service")
			}
		})
	})

	t.Run("SnapshotLibrary", func(t *testing.T) {
		t.Run("Caches Every Playlist", func(t *testing.T) {
			svc := &tu.MockService{Playlists: []services.Playlist{
				{ID: "p1", Name: "Morning", TrackCount: 12},
				{ID: "p2", Name: "Evening", TrackCount: 3},
			}}
			cache := &recordingCache{}
			engine := NewSnapshotEngine(svc, cache, cache)

			result, err := engine.SnapshotLibrary(context.Background(), nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if result.CachedPlaylists != 2 {
				t.Errorf("expected 2 cached playlists, got %d", result.CachedPlaylists)
			}
			if len(cache.playlists) != 2 || cache.playlists[1].Name != "Evening" {
				t.Errorf("unexpected cached playlists: %v", cache.playlists)
			}
		})

		t.Run("Fetch Error Propagates", func(t *testing.T) {
			svc := &tu.MockService{PlaylistsErr: errors.New("boom")}
			engine := NewSnapshotEngine(svc, &recordingCache{}, &recordingCache{})

			if _, err := engine.SnapshotLibrary(context.Background(), nil); err == nil {
				t.Error("expected fetch error to propagate")
			}
		})
	})

	t.Run("Progress Never Blocks", func(t *testing.T) {
		svc := &tu.MockService{Tracks: []services.Track{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}}}
		cache := &recordingCache{}
		engine := NewSnapshotEngine(svc, cache, cache)

		// Unbuffered channel with no reader; sends must be skipped, not block.
		progress := make(chan ProgressUpdate)
		if _, err := engine.SnapshotPlaylist(context.Background(), "p1", progress); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}
