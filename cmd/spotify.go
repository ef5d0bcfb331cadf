package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/playdex/internal/shared"
	"github.com/urfave/cli/v3"
)

// SpotifyBrowse lists playlist IDs from the featured or a category listing.
func (r *Runner) SpotifyBrowse(ctx context.Context, cmd *cli.Command) error {
	categoryID := cmd.String("category")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	svc, err := r.ensureService(ctx)
	if err != nil {
		return err
	}

	if categoryID == "" {
		r.logger.Info("browsing featured playlists")
	} else {
		r.logger.Infof("browsing playlists for category %v", categoryID)
	}

	ids, err := svc.BrowsePlaylists(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(ids, pretty)
	}

	if len(ids) == 0 {
		r.writePlain("No playlists found.\n")
		return nil
	}

	r.writePlain("Found %d playlists:\n\n", len(ids))
	for i, id := range ids {
		r.writePlain("%d. %s\n", i+1, id)
	}

	return nil
}

// SpotifyPlaylists lists the client's playlists with optional limit.
func (r *Runner) SpotifyPlaylists(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")

	svc, err := r.ensureService(ctx)
	if err != nil {
		return err
	}

	r.logger.Infof("listing spotify playlists with limit %v", limit)

	playlists, err := svc.UserPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if limit > 0 && limit < len(playlists) {
		playlists = playlists[:limit]
	}

	if save {
		saveFile := "spotify_playlists.json"
		data, err := shared.MarshalJSON(playlists, true)
		if err != nil {
			return fmt.Errorf("failed to marshal playlists: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save playlists", "error", err)
		} else {
			r.logger.Info("playlists saved", "file", saveFile)
		}
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Tracks: %d\n", p.TrackCount)
		r.writePlain("\n")
	}

	return nil
}

// SpotifyTracks lists the tracks of a playlist.
func (r *Runner) SpotifyTracks(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if playlistID == "" {
		return fmt.Errorf("%w: --id flag is required", shared.ErrMissingArgument)
	}

	svc, err := r.ensureService(ctx)
	if err != nil {
		return err
	}

	r.logger.Infof("listing tracks for playlist %v", playlistID)

	tracks, err := svc.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	r.writePlain("Tracks: %d\n\n", len(tracks))
	for i, track := range tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Name)
	}

	return nil
}
