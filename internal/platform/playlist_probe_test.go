package platform

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPlaylistOnlyID(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		expectedID string
		expectedOK bool
	}{
		{"playlist page", "https://www.youtube.com/playlist?list=PL123", "PL123", true},
		{"video in playlist", "https://www.youtube.com/watch?v=abc&list=PL123", "", false},
		{"plain video", "https://www.youtube.com/watch?v=abc", "", false},
		{"short link in playlist", "https://youtu.be/abc?list=PL123", "", false},
		{"other site", "https://example.com/v", "", false},
		{"garbage", "://bad", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := PlaylistOnlyID(tt.url)
			if id != tt.expectedID || ok != tt.expectedOK {
				t.Errorf("PlaylistOnlyID(%s) = (%s, %v), expected (%s, %v)", tt.url, id, ok, tt.expectedID, tt.expectedOK)
			}
		})
	}
}

func TestNewPlaylistProbe(t *testing.T) {
	probe := NewPlaylistProbe()
	if probe.timeout != DefaultProbeTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultProbeTimeout, probe.timeout)
	}

	probe.SetTimeout(5 * time.Second)
	if probe.timeout != 5*time.Second {
		t.Errorf("expected timeout %v, got %v", 5*time.Second, probe.timeout)
	}
}

func TestPlaylistProbe_Check(t *testing.T) {
	calls := 0
	probe := &PlaylistProbe{
		timeout: time.Second,
		count: func(ctx context.Context, playlistID string) (int, error) {
			calls++
			if _, ok := ctx.Deadline(); !ok {
				t.Error("expected counter context to carry a deadline")
			}
			if playlistID != "PL123" {
				t.Errorf("expected playlist ID PL123, got %s", playlistID)
			}
			return 12, nil
		},
	}

	if err := probe.Check(context.Background(), "https://www.youtube.com/watch?v=abc"); err != nil {
		t.Errorf("expected no error for single video, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected counter not to be called for single video, got %d calls", calls)
	}

	err := probe.Check(context.Background(), "https://www.youtube.com/playlist?list=PL123")
	if !errors.Is(err, ErrPlaylistURL) {
		t.Fatalf("expected ErrPlaylistURL, got %v", err)
	}
	if !strings.Contains(err.Error(), "12 items") {
		t.Errorf("expected item count in error, got %v", err)
	}
}

func TestPlaylistProbe_CheckCountFailure(t *testing.T) {
	probe := &PlaylistProbe{
		count: func(ctx context.Context, playlistID string) (int, error) {
			return 0, errors.New("network down")
		},
	}

	err := probe.Check(context.Background(), "https://www.youtube.com/playlist?list=PL9")
	if !errors.Is(err, ErrPlaylistURL) {
		t.Fatalf("expected ErrPlaylistURL, got %v", err)
	}
	if strings.Contains(err.Error(), "items") {
		t.Errorf("expected no item count in error, got %v", err)
	}
}
