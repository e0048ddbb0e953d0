package chat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/wedplan/internal/domain"
)

var demo = Identity{UserID: "u1"}

func TestSubmitEmptyDraftIsNoop(t *testing.T) {
	for _, draft := range []string{"", "   ", "\n\t"} {
		next, _, ok := Submit(State{}, draft, demo)
		require.False(t, ok)
		require.Empty(t, next.Transcript)
		require.False(t, next.Busy)
	}
}

func TestSubmitWithoutUserIsNoop(t *testing.T) {
	next, _, ok := Submit(State{}, "hello", Identity{})
	require.False(t, ok)
	require.Empty(t, next.Transcript)
}

func TestSubmitWhileBusyIsRejected(t *testing.T) {
	s, _, ok := Submit(State{}, "first", demo)
	require.True(t, ok)

	again, _, ok := Submit(s, "second", demo)
	require.False(t, ok)
	require.Len(t, again.Transcript, 1)
	require.Equal(t, "first", again.Transcript[0].Content)
}

func TestSubmitAppendsTrimmedUserMessageAndCarriesSession(t *testing.T) {
	s, req, ok := Submit(State{}, "  budget for 200 guests?  ", Identity{UserID: "u1", SessionID: "s1"})
	require.True(t, ok)
	require.True(t, s.Busy)
	require.Equal(t, req.Seq, s.Pending)
	require.Equal(t, []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "budget for 200 guests?"}}, s.Transcript)
	require.Equal(t, Request{Seq: 1, UserID: "u1", Message: "budget for 200 guests?", SessionID: "s1"}, req)
}

func TestTwoPhaseConfirmed(t *testing.T) {
	pending, req, ok := Submit(State{}, "hi", demo)
	require.True(t, ok)

	done, ok := Confirm(pending, req, Reply{Text: "Hello!", WebSearchUsed: true, Suggestions: []string{"a", "b"}})
	require.True(t, ok)
	require.False(t, done.Busy)
	require.Zero(t, done.Pending)
	require.Len(t, done.Transcript, 2)
	require.Equal(t, domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: "Hello!", WebSearchUsed: true}, done.Transcript[1])
	require.Equal(t, []string{"a", "b"}, done.Suggestions)

	require.Len(t, pending.Transcript, 1, "earlier state must not change")
}

func TestTwoPhaseDegraded(t *testing.T) {
	pending, req, _ := Submit(State{Suggestions: []string{"old"}}, "hi", demo)

	done, ok := Degrade(pending, req)
	require.True(t, ok)
	require.False(t, done.Busy)
	require.Len(t, done.Transcript, 2)
	require.Equal(t, domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: FallbackReply}, done.Transcript[1])
	require.Empty(t, done.Suggestions)
}

func TestCompletionForOtherRequestIsDiscarded(t *testing.T) {
	pending, req, _ := Submit(State{}, "hi", demo)

	stale := req
	stale.Seq = req.Seq + 7
	same, ok := Confirm(pending, stale, Reply{Text: "late"})
	require.False(t, ok)
	require.Equal(t, pending, same)

	idle, _ := Degrade(pending, req)
	_, ok = Confirm(idle, req, Reply{Text: "twice"})
	require.False(t, ok)
	_, ok = Degrade(idle, req)
	require.False(t, ok)
}

func TestTranscriptOrderFollowsInvocationOrder(t *testing.T) {
	s := State{}
	for i, text := range []string{"one", "two", "three"} {
		var req Request
		var ok bool
		s, req, ok = Submit(s, text, demo)
		require.True(t, ok)
		if i%2 == 0 {
			s, _ = Confirm(s, req, Reply{Text: "re " + text})
		} else {
			s, _ = Degrade(s, req)
		}
	}
	got := make([]string, 0, len(s.Transcript))
	for _, m := range s.Transcript {
		got = append(got, m.Content)
	}
	require.Equal(t, []string{"one", "re one", "two", FallbackReply, "three", "re three"}, got)
}
