package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/playdex/internal/services"
	"github.com/desertthunder/playdex/internal/shared"
)

// CachedPlaylist is a playlist summary persisted by a snapshot run.
type CachedPlaylist struct {
	ID         string
	Sequence   int
	Service    string
	ServiceID  string
	Name       string
	TrackCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PlaylistRepository handles CRUD for cached playlists.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a cached playlist with a generated ID and sequence number.
func (r *PlaylistRepository) Create(p *CachedPlaylist) error {
	if p.Service == "" || p.ServiceID == "" {
		return fmt.Errorf("service and service_id are required")
	}

	sequence, err := NextSequence(r.db, "cached_playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	p.ID = shared.GenerateID()
	p.Sequence = sequence
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO cached_playlists (id, sequence, service, service_id, name, track_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, p.ID, p.Sequence, p.Service, p.ServiceID, p.Name, p.TrackCount, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// GetByServiceID retrieves a cached playlist by service and service_id.
// Returns nil without error when no row matches.
func (r *PlaylistRepository) GetByServiceID(service, serviceID string) (*CachedPlaylist, error) {
	query := `
		SELECT id, sequence, service, service_id, name, track_count, created_at, updated_at
		FROM cached_playlists
		WHERE service = ? AND service_id = ?
	`

	var p CachedPlaylist
	err := r.db.QueryRow(query, service, serviceID).Scan(
		&p.ID, &p.Sequence, &p.Service, &p.ServiceID, &p.Name, &p.TrackCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	return &p, nil
}

// Update refreshes the name and track count of an existing cached playlist.
func (r *PlaylistRepository) Update(p *CachedPlaylist) error {
	query := `
		UPDATE cached_playlists
		SET name = ?, track_count = ?, updated_at = ?
		WHERE service = ? AND service_id = ?
	`

	now := time.Now()
	result, err := r.db.Exec(query, p.Name, p.TrackCount, now, p.Service, p.ServiceID)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("playlist %s/%s not found", p.Service, p.ServiceID)
	}

	p.UpdatedAt = now
	return nil
}

// List retrieves all cached playlists for a service ordered by sequence.
func (r *PlaylistRepository) List(service string) ([]CachedPlaylist, error) {
	query := `
		SELECT id, sequence, service, service_id, name, track_count, created_at, updated_at
		FROM cached_playlists
		WHERE service = ?
		ORDER BY sequence
	`

	rows, err := r.db.Query(query, service)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []CachedPlaylist
	for rows.Next() {
		var p CachedPlaylist
		if err := rows.Scan(&p.ID, &p.Sequence, &p.Service, &p.ServiceID, &p.Name, &p.TrackCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}

	return playlists, rows.Err()
}

// CachePlaylist inserts or refreshes a playlist summary fetched from a service.
func (r *PlaylistRepository) CachePlaylist(service string, playlist services.Playlist) error {
	existing, err := r.GetByServiceID(service, playlist.ID)
	if err != nil {
		return err
	}

	cached := &CachedPlaylist{
		Service:    service,
		ServiceID:  playlist.ID,
		Name:       playlist.Name,
		TrackCount: playlist.TrackCount,
	}

	if existing != nil {
		return r.Update(cached)
	}

	return r.Create(cached)
}
