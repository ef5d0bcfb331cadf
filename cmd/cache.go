package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/playdex/internal/repositories"
	"github.com/desertthunder/playdex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CachePlaylist caches a playlist's tracks to the database.
func (r *Runner) CachePlaylist(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	if playlistID == "" {
		return fmt.Errorf("playlist ID is required")
	}

	svc, err := r.ensureService(ctx)
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Infof("caching playlist: %s", playlistID)

	engine := tasks.NewSnapshotEngine(svc, repositories.NewPlaylistRepository(db), repositories.NewTrackRepository(db))

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.SnapshotPlaylist(ctx, playlistID, progress)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("failed to cache playlist: %w", err)
	}

	r.writePlainln("✓ Playlist cached: %s", result.PlaylistID)
	r.writePlain("  Tracks fetched: %d\n", len(result.Tracks))
	r.writePlain("  Tracks cached: %d\n", result.CachedTracks)

	return nil
}

// CacheLibrary caches the client's playlist summaries to the database.
func (r *Runner) CacheLibrary(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.ensureService(ctx)
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("caching playlist library")

	engine := tasks.NewSnapshotEngine(svc, repositories.NewPlaylistRepository(db), repositories.NewTrackRepository(db))

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.SnapshotLibrary(ctx, progress)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("failed to cache library: %w", err)
	}

	r.writePlainln("✓ Library cached")
	r.writePlain("  Playlists fetched: %d\n", len(result.Playlists))
	r.writePlain("  Playlists cached: %d\n", result.CachedPlaylists)

	return nil
}
