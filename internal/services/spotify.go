// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playdex/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1/"
)

// tokenResponse is the token endpoint's client-credentials grant payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// playlistRef carries the bare playlist identifier used by the browse listings.
type playlistRef struct {
	ID string `json:"id"`
}

// browsePlaylistsResponse covers both the featured and category-scoped listings.
//
// playlists.items is optional: absence decodes to a nil slice and projects to an empty result.
type browsePlaylistsResponse struct {
	Playlists struct {
		Items []playlistRef `json:"items"`
	} `json:"playlists"`
}

type playlistTracksTotal struct {
	Total int `json:"total"`
}

// userPlaylistItem is a simplified playlist object from me/playlists.
// Scalar fields are optional and default to zero values.
type userPlaylistItem struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Tracks playlistTracksTotal `json:"tracks"`
}

type userPlaylistsResponse struct {
	Items []userPlaylistItem `json:"items"`
}

type trackArtist struct {
	Name string `json:"name"`
}

// trackObject is the nested track within a playlist item.
// The object itself and a non-empty artists array are required; their absence is a malformed response.
type trackObject struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Artists []trackArtist `json:"artists"`
}

type playlistTrackItem struct {
	Track *trackObject `json:"track"`
}

type playlistTracksResponse struct {
	Items []playlistTrackItem `json:"items"`
}

// RequestError is returned when a resource endpoint responds with a non-200 status.
// It carries the status code and raw body so callers can branch on specifics.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("error fetching data from Spotify API: %d, %s", e.StatusCode, e.Body)
}

func (e *RequestError) Unwrap() error {
	return shared.ErrAPIRequest
}

// SpotifyService implements [Service] for the Spotify Web API using the OAuth2 client-credentials grant.
//
// Token state (an [oauth2.Token] with an absolute expiry instant) is replaced wholesale on each
// successful authentication and guarded by a mutex so the ensure-fresh + request pair is safe
// under concurrent callers. Each call performs at most one proactive re-authentication; a failed
// re-authentication propagates without retry and leaves the prior token untouched.
type SpotifyService struct {
	creds      shared.Credentials
	tokenURL   string
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time

	mu    sync.Mutex
	token *oauth2.Token
}

// NewSpotifyService creates a Spotify service with the given resolved credentials and
// authenticates immediately. A constructor that cannot authenticate fails outright,
// leaving no half-initialized instance behind.
func NewSpotifyService(ctx context.Context, creds shared.Credentials, client *http.Client, logger *log.Logger) (*SpotifyService, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client id and secret are required", shared.ErrMissingCredentials)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &SpotifyService{
		creds:      creds,
		tokenURL:   spotifyTokenURL,
		baseURL:    spotifyBaseURL,
		httpClient: client,
		logger:     logger,
		now:        time.Now,
	}

	if err := s.Authenticate(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Authenticate obtains an access token via the client-credentials flow.
// On success the token and its expiry (now + expires_in seconds) replace any prior token.
// On failure the prior token state is left unchanged.
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticate(ctx)
}

// authenticate performs the token endpoint POST. Callers must hold s.mu.
func (s *SpotifyService) authenticate(ctx context.Context) error {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}

	basic := base64.StdEncoding.EncodeToString([]byte(s.creds.ClientID + ":" + s.creds.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: token endpoint returned status %d", shared.ErrAuthFailed, resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("%w: failed to decode token response: %v", shared.ErrAuthFailed, err)
	}

	s.token = &oauth2.Token{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		Expiry:      s.now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}

	s.logger.Debug("authenticated with Spotify", "expiry", s.token.Expiry)
	return nil
}

// TokenExpired reports whether the current time is strictly past the stored expiry instant.
// Equal time is not expired; there is no grace margin, so [oauth2.Token.Valid] is not used here.
func (s *SpotifyService) TokenExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenExpired()
}

// tokenExpired checks expiry without locking. Callers must hold s.mu.
func (s *SpotifyService) tokenExpired() bool {
	if s.token == nil {
		return true
	}
	return s.now().After(s.token.Expiry)
}

// TokenExpiry returns the current token's expiry instant, or the zero time when unauthenticated.
func (s *SpotifyService) TokenExpiry() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil {
		return time.Time{}
	}
	return s.token.Expiry
}

// freshToken returns a usable access token, re-authenticating first if the stored one expired.
func (s *SpotifyService) freshToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokenExpired() {
		s.logger.Info("token expired, refreshing...")
		if err := s.authenticate(ctx); err != nil {
			return "", err
		}
	}

	return s.token.AccessToken, nil
}

// doRequest issues an authenticated GET to baseURL + endpoint and returns the raw body.
// A non-200 status yields a [*RequestError] carrying the status and body.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	token, err := s.freshToken(ctx)
	if err != nil {
		return nil, err
	}

	apiURL := s.baseURL + endpoint
	s.logger.Debug("making request", "url", apiURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		reqErr := &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
		s.logger.Error("spotify API request failed", "status", resp.StatusCode, "endpoint", endpoint)
		return nil, reqErr
	}

	return body, nil
}

// get issues an authenticated GET and decodes the 200 body into result.
func (s *SpotifyService) get(ctx context.Context, endpoint string, result any) error {
	body, err := s.doRequest(ctx, endpoint)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	return nil
}

// BrowsePlaylists fetches playlist IDs from the category listing when categoryID is set,
// or the featured listing otherwise. A response without playlists.items yields an empty
// slice, not an error.
func (s *SpotifyService) BrowsePlaylists(ctx context.Context, categoryID string) ([]string, error) {
	endpoint := "browse/featured-playlists"
	if categoryID != "" {
		endpoint = fmt.Sprintf("browse/categories/%s/playlists", url.PathEscape(categoryID))
	}

	s.logger.Debug("fetching playlists", "endpoint", endpoint)

	var response browsePlaylistsResponse
	if err := s.get(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(response.Playlists.Items))
	for _, p := range response.Playlists.Items {
		ids = append(ids, p.ID)
	}

	s.logger.Info("fetched playlists", "count", len(ids))
	return ids, nil
}

// UserPlaylists fetches the client's own playlists and projects each item to a [Playlist].
// Order follows the API response order.
func (s *SpotifyService) UserPlaylists(ctx context.Context) ([]Playlist, error) {
	var response userPlaylistsResponse
	if err := s.get(ctx, "me/playlists", &response); err != nil {
		return nil, err
	}

	playlists := make([]Playlist, 0, len(response.Items))
	for _, item := range response.Items {
		playlists = append(playlists, Playlist{
			ID:         item.ID,
			Name:       item.Name,
			TrackCount: item.Tracks.Total,
		})
	}

	s.logger.Info("fetched user playlists", "count", len(playlists))
	return playlists, nil
}

// PlaylistTracks fetches tracks for the given playlist and projects each item to a [Track]
// with the first listed artist. An item without a track object or with an empty artists
// array fails the whole call with [shared.ErrMalformedResponse].
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	endpoint := fmt.Sprintf("playlists/%s/tracks", url.PathEscape(playlistID))

	var response playlistTracksResponse
	if err := s.get(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(response.Items))
	for i, item := range response.Items {
		if item.Track == nil {
			return nil, fmt.Errorf("%w: playlist item %d has no track object", shared.ErrMalformedResponse, i)
		}
		if len(item.Track.Artists) == 0 {
			return nil, fmt.Errorf("%w: track %q has no artists", shared.ErrMalformedResponse, item.Track.ID)
		}

		tracks = append(tracks, Track{
			ID:     item.Track.ID,
			Name:   item.Track.Name,
			Artist: item.Track.Artists[0].Name,
		})
	}

	s.logger.Info("fetched playlist tracks", "playlist", playlistID, "count", len(tracks))
	return tracks, nil
}
