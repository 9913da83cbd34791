package platform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultProbeTimeout = 20 * time.Second
)

// URL parameters
const (
	PlaylistParam = "list"
	VideoParam    = "v"
	ShortLinkHost = "youtu.be"
)

// ErrPlaylistURL is returned for URLs that name a playlist and no single item
var ErrPlaylistURL = errors.New("playlist URLs are not supported")

// PlaylistCounter counts the items of a playlist by ID
type PlaylistCounter func(ctx context.Context, playlistID string) (int, error)

// PlaylistProbe rejects playlist-only URLs before the engine runs
type PlaylistProbe struct {
	timeout time.Duration
	count   PlaylistCounter
}

// NewPlaylistProbe creates a probe backed by the ytdlp library
func NewPlaylistProbe() *PlaylistProbe {
	return &PlaylistProbe{
		timeout: DefaultProbeTimeout,
		count:   countPlaylistItems,
	}
}

// SetTimeout sets the timeout for the item count lookup
func (p *PlaylistProbe) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Check returns ErrPlaylistURL (wrapped, with the item count when it could be
// fetched) if rawURL points at a whole playlist
func (p *PlaylistProbe) Check(ctx context.Context, rawURL string) error {
	playlistID, ok := PlaylistOnlyID(rawURL)
	if !ok {
		return nil
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	n, err := p.count(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPlaylistURL, playlistID)
	}
	return fmt.Errorf("%w: %s has %d items", ErrPlaylistURL, playlistID, n)
}

// PlaylistOnlyID extracts the playlist ID when rawURL names a playlist without
// a specific item
func PlaylistOnlyID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	query := u.Query()
	playlistID := query.Get(PlaylistParam)
	if playlistID == "" {
		return "", false
	}
	if query.Get(VideoParam) != "" || strings.EqualFold(u.Hostname(), ShortLinkHost) {
		return "", false
	}
	return playlistID, true
}

func countPlaylistItems(ctx context.Context, playlistID string) (int, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to get playlist items: %w", err)
	}
	return len(items), nil
}
