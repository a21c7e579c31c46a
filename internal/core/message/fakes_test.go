package message

import (
	"context"
	"sort"
	"time"

	"github.com/ogurasousui/placement-crm/internal/core/analytics"
)

const (
	testMessageID = "00000000-0000-0000-0000-0000000000c1"
	testUnknownID = "00000000-0000-0000-0000-0000000000c9"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeStore struct {
	messages  map[string]*Message
	history   []*History
	appendErr error
}

func newFakeStore(messages ...*Message) *fakeStore {
	s := &fakeStore{messages: make(map[string]*Message)}
	for _, m := range messages {
		s.messages[m.ID] = m.Clone()
	}
	return s
}

type fakeMessageRepo struct{ s *fakeStore }

func (r fakeMessageRepo) Create(_ context.Context, m *Message) (*Message, error) {
	r.s.messages[m.ID] = m.Clone()
	return m.Clone(), nil
}

func (r fakeMessageRepo) FindByID(_ context.Context, id string) (*Message, error) {
	m, ok := r.s.messages[id]
	if !ok {
		return nil, ErrMessageNotFound
	}
	return m.Clone(), nil
}

func (r fakeMessageRepo) Update(_ context.Context, m *Message) (*Message, error) {
	existing, ok := r.s.messages[m.ID]
	if !ok || existing.Version != m.Version {
		return nil, ErrConcurrentModification
	}
	stored := m.Clone()
	stored.Version++
	r.s.messages[m.ID] = stored
	return stored.Clone(), nil
}

type fakeHistoryRepo struct{ s *fakeStore }

func (r fakeHistoryRepo) Append(_ context.Context, h *History) (*History, error) {
	if r.s.appendErr != nil {
		return nil, r.s.appendErr
	}
	stored := *h
	r.s.history = append(r.s.history, &stored)
	out := stored
	return &out, nil
}

func (r fakeHistoryRepo) ListByMessage(_ context.Context, messageID string) ([]*History, error) {
	var result []*History
	for _, h := range r.s.history {
		if h.MessageID == messageID {
			entry := *h
			result = append(result, &entry)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r fakeHistoryRepo) Latest(ctx context.Context, messageID string) (*History, error) {
	entries, _ := r.ListByMessage(ctx, messageID)
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[len(entries)-1], nil
}

// rollbackTx は fn が失敗したときにストアを呼び出し前の状態へ戻します。
type rollbackTx struct{ s *fakeStore }

func (m rollbackTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (m rollbackTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	messages := make(map[string]*Message, len(m.s.messages))
	for id, msg := range m.s.messages {
		messages[id] = msg.Clone()
	}
	history := append([]*History(nil), m.s.history...)

	if err := fn(ctx); err != nil {
		m.s.messages = messages
		m.s.history = history
		return err
	}
	return nil
}

type publishedEvent struct {
	channel analytics.Channel
	payload any
}

type recordingPublisher struct {
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, channel analytics.Channel, payload any) error {
	p.events = append(p.events, publishedEvent{channel: channel, payload: payload})
	return p.err
}

func (p *recordingPublisher) channels() []analytics.Channel {
	out := make([]analytics.Channel, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.channel)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
