package services

import (
	"context"
	"sync"
	"testing"

	"canpulse/internal/config"
	"canpulse/internal/files"
	"canpulse/internal/shared/testutil"
	"canpulse/pkg/contracts/domain"
	"canpulse/pkg/contracts/events"
)

type recordedEvent struct {
	Type events.MessageType
	Data interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, t events.MessageType, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Type: t, Data: data})
}

func (r *recordingBroadcaster) recorded() []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedEvent(nil), r.events...)
}

type fakeExtractor struct {
	matches []domain.MatchRecord
	err     error
	gotURL  string
}

func (f *fakeExtractor) FetchAndExtract(_ context.Context, url string) ([]domain.MatchRecord, error) {
	f.gotURL = url
	return f.matches, f.err
}

func newTestStore(t *testing.T) (*files.Store, string) {
	t.Helper()
	dir := t.TempDir()
	logger, _ := testutil.NewTestLogger(t)
	return files.NewStore(config.NewPaths(dir), logger), dir
}

func ptr[T any](v T) *T { return &v }
