package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/playdex/internal/services"
	"github.com/desertthunder/playdex/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestNextSequence(t *testing.T) {
	db := newTestDB(t)

	first, err := NextSequence(db, "cached_playlists")
	if err != nil {
		t.Fatalf("failed to get sequence: %v", err)
	}
	second, err := NextSequence(db, "cached_playlists")
	if err != nil {
		t.Fatalf("failed to get sequence: %v", err)
	}

	if second != first+1 {
		t.Errorf("expected monotonic sequence, got %d then %d", first, second)
	}
}

func TestPlaylistRepository(t *testing.T) {
	t.Run("Create And GetByServiceID", func(t *testing.T) {
		repo := NewPlaylistRepository(newTestDB(t))

		p := &CachedPlaylist{Service: "spotify", ServiceID: "p1", Name: "Morning", TrackCount: 12}
		if err := repo.Create(p); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if p.ID == "" {
			t.Error("expected generated ID")
		}
		if p.Sequence == 0 {
			t.Error("expected sequence to be assigned")
		}

		got, err := repo.GetByServiceID("spotify", "p1")
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if got == nil {
			t.Fatal("expected playlist to be found")
		}
		if got.Name != "Morning" || got.TrackCount != 12 {
			t.Errorf("unexpected playlist: %+v", got)
		}
	})

	t.Run("GetByServiceID Missing Returns Nil", func(t *testing.T) {
		repo := NewPlaylistRepository(newTestDB(t))

		got, err := repo.GetByServiceID("spotify", "missing")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != nil {
			t.Errorf("expected nil for missing playlist, got %+v", got)
		}
	})

	t.Run("Create Without Service Fails", func(t *testing.T) {
		repo := NewPlaylistRepository(newTestDB(t))

		if err := repo.Create(&CachedPlaylist{Name: "No Service"}); err == nil {
			t.Error("expected error for missing service")
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewPlaylistRepository(newTestDB(t))

		p := &CachedPlaylist{Service: "spotify", ServiceID: "p1", Name: "Old", TrackCount: 1}
		if err := repo.Create(p); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		updated := &CachedPlaylist{Service: "spotify", ServiceID: "p1", Name: "New", TrackCount: 5}
		if err := repo.Update(updated); err != nil {
			t.Fatalf("failed to update playlist: %v", err)
		}

		got, _ := repo.GetByServiceID("spotify", "p1")
		if got.Name != "New" || got.TrackCount != 5 {
			t.Errorf("expected updated playlist, got %+v", got)
		}
	})

	t.Run("Update Missing Fails", func(t *testing.T) {
		repo := NewPlaylistRepository(newTestDB(t))

		err := repo.Update(&CachedPlaylist{Service: "spotify", ServiceID: "nope", Name: "X"})
		if err == nil {
			t.Error("expected error updating a missing playlist")
		}
	})

	t.Run("List Orders By Sequence", func(t *testing.T) {
		repo := NewPlaylistRepository(newTestDB(t))

		for _, id := range []string{"a", "b", "c"} {
			if err := repo.Create(&CachedPlaylist{Service: "spotify", ServiceID: id, Name: id}); err != nil {
				t.Fatalf("failed to create playlist %s: %v", id, err)
			}
		}

		playlists, err := repo.List("spotify")
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 3 {
			t.Fatalf("expected 3 playlists, got %d", len(playlists))
		}
		if playlists[0].ServiceID != "a" || playlists[2].ServiceID != "c" {
			t.Errorf("expected insertion order, got %v", playlists)
		}
	})

	t.Run("CachePlaylist Deduplicates", func(t *testing.T) {
		repo := NewPlaylistRepository(newTestDB(t))

		dto := services.Playlist{ID: "p1", Name: "Morning", TrackCount: 12}
		if err := repo.CachePlaylist("spotify", dto); err != nil {
			t.Fatalf("first cache failed: %v", err)
		}

		dto.TrackCount = 13
		if err := repo.CachePlaylist("spotify", dto); err != nil {
			t.Fatalf("second cache failed: %v", err)
		}

		playlists, _ := repo.List("spotify")
		if len(playlists) != 1 {
			t.Fatalf("expected 1 row after dedup, got %d", len(playlists))
		}
		if playlists[0].TrackCount != 13 {
			t.Errorf("expected refreshed track count, got %d", playlists[0].TrackCount)
		}
	})
}

func TestTrackRepository(t *testing.T) {
	t.Run("Create And GetByServiceID", func(t *testing.T) {
		repo := NewTrackRepository(newTestDB(t))

		track := &CachedTrack{Service: "spotify", ServiceID: "t1", PlaylistServiceID: "p1", Title: "Song", Artist: "Artist"}
		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		got, err := repo.GetByServiceID("spotify", "t1")
		if err != nil {
			t.Fatalf("failed to get track: %v", err)
		}
		if got == nil || got.Title != "Song" || got.Artist != "Artist" {
			t.Errorf("unexpected track: %+v", got)
		}
	})

	t.Run("CacheTrack Deduplicates", func(t *testing.T) {
		repo := NewTrackRepository(newTestDB(t))

		dto := services.Track{ID: "t1", Name: "Song", Artist: "Artist"}
		if err := repo.CacheTrack("spotify", "p1", dto); err != nil {
			t.Fatalf("first cache failed: %v", err)
		}
		if err := repo.CacheTrack("spotify", "p1", dto); err != nil {
			t.Fatalf("duplicate cache should be silent: %v", err)
		}

		tracks, err := repo.ListByPlaylist("spotify", "p1")
		if err != nil {
			t.Fatalf("failed to list tracks: %v", err)
		}
		if len(tracks) != 1 {
			t.Errorf("expected 1 row after dedup, got %d", len(tracks))
		}
	})

	t.Run("ListByPlaylist Scopes To Playlist", func(t *testing.T) {
		repo := NewTrackRepository(newTestDB(t))

		repo.CacheTrack("spotify", "p1", services.Track{ID: "t1", Name: "One", Artist: "A"})
		repo.CacheTrack("spotify", "p1", services.Track{ID: "t2", Name: "Two", Artist: "B"})
		repo.CacheTrack("spotify", "p2", services.Track{ID: "t3", Name: "Three", Artist: "C"})

		tracks, err := repo.ListByPlaylist("spotify", "p1")
		if err != nil {
			t.Fatalf("failed to list tracks: %v", err)
		}
		if len(tracks) != 2 {
			t.Errorf("expected 2 tracks for p1, got %d", len(tracks))
		}
	})
}
