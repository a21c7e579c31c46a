package message

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ogurasousui/placement-crm/internal/core/analytics"
)

type fixture struct {
	store     *fakeStore
	publisher *recordingPublisher
	clock     *stubClock
	svc       *Service
}

func newFixture(messages ...*Message) *fixture {
	store := newFakeStore(messages...)
	pub := &recordingPublisher{}
	clk := &stubClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	return &fixture{
		store:     store,
		publisher: pub,
		clock:     clk,
		svc:       NewService(fakeMessageRepo{s: store}, fakeHistoryRepo{s: store}, pub, clk, rollbackTx{s: store}, nil),
	}
}

func received() *Message {
	return &Message{ID: testMessageID, State: StateReceived, Priority: PriorityLow, Sender: "ana@example.com", Channel: "email"}
}

func TestService_CreateMessage(t *testing.T) {
	t.Parallel()

	f := newFixture()
	created, err := f.svc.CreateMessage(context.Background(), CreateMessageInput{
		Subject: " Hello ",
		Body:    "body",
		Channel: "email",
		Sender:  "ana@example.com",
	})
	if err != nil {
		t.Fatalf("CreateMessage returned error: %v", err)
	}
	if created.State != StateReceived || created.Priority != PriorityLow || created.Subject != "Hello" {
		t.Fatalf("unexpected message: %+v", created)
	}
	if !created.Date.Equal(f.clock.now) {
		t.Fatalf("expected creation date %v, got %v", f.clock.now, created.Date)
	}
	if len(f.store.history) != 0 {
		t.Fatalf("creation must not write history, got %d entries", len(f.store.history))
	}
}

func TestService_CreateMessage_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   CreateMessageInput
		want error
	}{
		{name: "missing sender", in: CreateMessageInput{Channel: "email"}, want: ErrInvalidSender},
		{name: "missing channel", in: CreateMessageInput{Sender: "a"}, want: ErrInvalidChannel},
		{name: "bad priority", in: CreateMessageInput{Sender: "a", Channel: "email", Priority: ptr(Priority("TOP"))}, want: ErrInvalidPriority},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture()
			if _, err := f.svc.CreateMessage(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestService_UpdateMessage_TransitionsRecordHistoryInOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(received())
	ctx := context.Background()

	steps := []State{StateRead, StateProcessing, StateDone}
	for i, state := range steps {
		f.clock.now = f.clock.now.Add(time.Duration(i) * time.Second)
		updated, err := f.svc.UpdateMessage(ctx, UpdateMessageInput{ID: testMessageID, State: ptr(state), Comment: "step"})
		if err != nil {
			t.Fatalf("UpdateMessage(%s) returned error: %v", state, err)
		}
		if updated.State != state {
			t.Fatalf("expected state %s, got %s", state, updated.State)
		}
	}

	entries, err := f.svc.GetHistory(ctx, GetHistoryInput{MessageID: testMessageID})
	if err != nil {
		t.Fatalf("GetHistory returned error: %v", err)
	}
	got := make([]State, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.State)
	}
	if !reflect.DeepEqual(got, steps) {
		t.Fatalf("expected history %v, got %v", steps, got)
	}
}

func TestService_UpdateMessage_InvalidTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from State
		to   State
	}{
		{from: StateReceived, to: StateReceived},
		{from: StateReceived, to: StateDone},
		{from: StateDone, to: StateRead},
		{from: StateProcessing, to: StateDiscarded},
		{from: StateDiscarded, to: StateDiscarded},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			t.Parallel()

			msg := received()
			msg.State = tc.from
			f := newFixture(msg)

			_, err := f.svc.UpdateMessage(context.Background(), UpdateMessageInput{ID: testMessageID, State: ptr(tc.to), Comment: "x"})
			if !errors.Is(err, ErrInvalidStateTransition) {
				t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
			}
			if f.store.messages[testMessageID].State != tc.from || len(f.store.history) != 0 {
				t.Fatalf("rejected transition must not write anything")
			}
			if len(f.publisher.events) != 0 {
				t.Fatalf("rejected transition must not publish")
			}
		})
	}
}

func TestService_UpdateMessage_RequestValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   UpdateMessageInput
		want error
	}{
		{name: "nothing to change", in: UpdateMessageInput{ID: testMessageID, Comment: "x"}, want: ErrInvalidUpdateMessageRequest},
		{name: "state without comment", in: UpdateMessageInput{ID: testMessageID, State: ptr(StateRead), Comment: "  "}, want: ErrInvalidUpdateMessageRequest},
		{name: "unknown state", in: UpdateMessageInput{ID: testMessageID, State: ptr(State("ARCHIVED")), Comment: "x"}, want: ErrInvalidState},
		{name: "unknown priority", in: UpdateMessageInput{ID: testMessageID, Priority: ptr(Priority("TOP"))}, want: ErrInvalidPriority},
		{name: "malformed id", in: UpdateMessageInput{ID: "abc", Priority: ptr(PriorityHigh)}, want: ErrInvalidID},
		{name: "unknown message", in: UpdateMessageInput{ID: testUnknownID, Priority: ptr(PriorityHigh)}, want: ErrMessageNotFound},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(received())
			if _, err := f.svc.UpdateMessage(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(f.store.history) != 0 {
				t.Fatalf("validation failure must not write history")
			}
		})
	}
}

func TestService_UpdateMessage_PriorityOnly(t *testing.T) {
	t.Parallel()

	msg := received()
	msg.State = StateDone
	f := newFixture(msg)

	updated, err := f.svc.UpdateMessage(context.Background(), UpdateMessageInput{ID: testMessageID, Priority: ptr(PriorityHigh)})
	if err != nil {
		t.Fatalf("UpdateMessage returned error: %v", err)
	}
	if updated.Priority != PriorityHigh || updated.State != StateDone {
		t.Fatalf("unexpected message: %+v", updated)
	}
	if len(f.store.history) != 0 {
		t.Fatalf("priority change must not write history")
	}
	if got := f.publisher.channels(); !reflect.DeepEqual(got, []analytics.Channel{analytics.ChannelMessage}) {
		t.Fatalf("unexpected channels %v", got)
	}
}

func TestService_UpdateMessage_StateAndPriority(t *testing.T) {
	t.Parallel()

	f := newFixture(received())
	updated, err := f.svc.UpdateMessage(context.Background(), UpdateMessageInput{
		ID:       testMessageID,
		State:    ptr(StateRead),
		Comment:  "triaged",
		Priority: ptr(PriorityMediumHigh),
	})
	if err != nil {
		t.Fatalf("UpdateMessage returned error: %v", err)
	}
	if updated.State != StateRead || updated.Priority != PriorityMediumHigh {
		t.Fatalf("unexpected message: %+v", updated)
	}
	if len(f.store.history) != 1 || f.store.history[0].Comment != "triaged" {
		t.Fatalf("expected one history entry, got %+v", f.store.history)
	}
}

func TestService_UpdateMessage_DonePublishesCompletion(t *testing.T) {
	t.Parallel()

	msg := received()
	msg.State = StateRead
	f := newFixture(msg)

	if _, err := f.svc.UpdateMessage(context.Background(), UpdateMessageInput{ID: testMessageID, State: ptr(StateDone), Comment: "ok"}); err != nil {
		t.Fatalf("UpdateMessage returned error: %v", err)
	}
	want := []analytics.Channel{analytics.ChannelMessage, analytics.ChannelCompletedMessage}
	if got := f.publisher.channels(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected channels %v, got %v", want, got)
	}
}

func TestService_UpdateMessage_HistoryFailureRollsBack(t *testing.T) {
	t.Parallel()

	f := newFixture(received())
	injected := errors.New("history write failed")
	f.store.appendErr = injected

	_, err := f.svc.UpdateMessage(context.Background(), UpdateMessageInput{ID: testMessageID, State: ptr(StateRead), Comment: "x"})
	if !errors.Is(err, injected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	stored := f.store.messages[testMessageID]
	if stored.State != StateReceived || stored.Version != 0 {
		t.Fatalf("message must be rolled back, got %+v", stored)
	}
}

func TestService_UpdateMessage_PublishFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	f := newFixture(received())
	f.publisher.err = errors.New("redis down")

	if _, err := f.svc.UpdateMessage(context.Background(), UpdateMessageInput{ID: testMessageID, State: ptr(StateRead), Comment: "x"}); err != nil {
		t.Fatalf("publish failure must not fail the update: %v", err)
	}
	if f.store.messages[testMessageID].State != StateRead {
		t.Fatalf("update must be committed")
	}
}

func TestService_GetMessageAndHistoryNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.GetMessage(ctx, GetMessageInput{ID: testUnknownID}); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
	if _, err := f.svc.GetHistory(ctx, GetHistoryInput{MessageID: testUnknownID}); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}
