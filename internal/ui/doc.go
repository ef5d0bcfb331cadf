// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing and caching playlists:
//  1. [PlaylistListView] : Browse the client's Spotify playlists
//  2. [TrackListView] : Inspect a playlist's tracks
//  3. [ConfirmView] : Confirm caching the playlist locally
//  4. [SnapshotView] : Monitor real-time progress updates
//  5. [ResultView] : Display cache counts
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the SnapshotEngine, providing
// non-blocking status reporting during cache runs.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
