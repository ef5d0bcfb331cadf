package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/playdex/internal/services"
	"github.com/desertthunder/playdex/internal/shared"
)

// CachedTrack is a track summary persisted by a snapshot run.
type CachedTrack struct {
	ID                string
	Sequence          int
	Service           string
	ServiceID         string
	PlaylistServiceID string
	Title             string
	Artist            string
	CreatedAt         time.Time
}

// TrackRepository handles CRUD for cached tracks.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Create inserts a cached track with a generated ID and sequence number.
func (r *TrackRepository) Create(t *CachedTrack) error {
	if t.Service == "" || t.ServiceID == "" {
		return fmt.Errorf("service and service_id are required")
	}

	sequence, err := NextSequence(r.db, "cached_tracks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	t.ID = shared.GenerateID()
	t.Sequence = sequence
	t.CreatedAt = time.Now()

	query := `
		INSERT INTO cached_tracks (id, sequence, service, service_id, playlist_service_id, title, artist, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, t.ID, t.Sequence, t.Service, t.ServiceID, t.PlaylistServiceID, t.Title, t.Artist, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}

	return nil
}

// GetByServiceID retrieves a cached track by service and service_id.
// Returns nil without error when no row matches.
func (r *TrackRepository) GetByServiceID(service, serviceID string) (*CachedTrack, error) {
	query := `
		SELECT id, sequence, service, service_id, playlist_service_id, title, artist, created_at
		FROM cached_tracks
		WHERE service = ? AND service_id = ?
	`

	var t CachedTrack
	err := r.db.QueryRow(query, service, serviceID).Scan(
		&t.ID, &t.Sequence, &t.Service, &t.ServiceID, &t.PlaylistServiceID, &t.Title, &t.Artist, &t.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track: %w", err)
	}

	return &t, nil
}

// ListByPlaylist retrieves cached tracks for a playlist ordered by sequence.
func (r *TrackRepository) ListByPlaylist(service, playlistServiceID string) ([]CachedTrack, error) {
	query := `
		SELECT id, sequence, service, service_id, playlist_service_id, title, artist, created_at
		FROM cached_tracks
		WHERE service = ? AND playlist_service_id = ?
		ORDER BY sequence
	`

	rows, err := r.db.Query(query, service, playlistServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []CachedTrack
	for rows.Next() {
		var t CachedTrack
		if err := rows.Scan(&t.ID, &t.Sequence, &t.Service, &t.ServiceID, &t.PlaylistServiceID, &t.Title, &t.Artist, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}

	return tracks, rows.Err()
}

// CacheTrack caches a track fetched from a service playlist.
// Returns nil if the track already exists (deduplication).
// Only returns errors for actual failures (not constraint violations).
func (r *TrackRepository) CacheTrack(service, playlistServiceID string, track services.Track) error {
	existing, err := r.GetByServiceID(service, track.ID)
	if err == nil && existing != nil {
		return nil
	}

	cached := &CachedTrack{
		Service:           service,
		ServiceID:         track.ID,
		PlaylistServiceID: playlistServiceID,
		Title:             track.Name,
		Artist:            track.Artist,
	}

	if err := r.Create(cached); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache track: %w", err)
	}

	return nil
}
