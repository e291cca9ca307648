package question_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ymatsux/gyakuaki/backend/internal/model/chat"
	"github.com/ymatsux/gyakuaki/backend/internal/model/person"
	"github.com/ymatsux/gyakuaki/backend/internal/service/oracle"
	"github.com/ymatsux/gyakuaki/backend/internal/service/question"
	"github.com/ymatsux/gyakuaki/backend/internal/service/session"
)

type fakeOracle struct {
	answer string
	err    error
	calls  int
	system string
}

func (f *fakeOracle) Ask(_ context.Context, system, _ string) (string, error) {
	f.calls++
	f.system = system
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func setup(t *testing.T, oracleClient oracle.Client) (*question.Service, *session.Service, session.Session) {
	t.Helper()

	sessions := session.NewService()
	store := person.NewMemoryStore(person.Seed())
	svc := question.NewService(oracleClient, sessions, store)
	return svc, sessions, sessions.Create()
}

func TestAskReturnsAnswerAndRemaining(t *testing.T) {
	fake := &fakeOracle{answer: "はい"}
	svc, _, sess := setup(t, fake)

	result, err := svc.Ask(context.Background(), sess.ID, 1, "武士ですか？")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}

	if result.Answer != "はい" {
		t.Fatalf("unexpected answer %q", result.Answer)
	}
	if result.Highlight != chat.HighlightYes {
		t.Fatalf("unexpected highlight %s", result.Highlight)
	}
	if result.Remaining != session.AIQuestionLimit-1 {
		t.Fatalf("expected %d remaining, got %d", session.AIQuestionLimit-1, result.Remaining)
	}
	if result.Message != "AI質問は残り4回です" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestAskPromptNamesTargetButAnswerIsVerbatim(t *testing.T) {
	fake := &fakeOracle{answer: "どちらとも言えない"}
	svc, _, sess := setup(t, fake)

	result, err := svc.Ask(context.Background(), sess.ID, 1, "戦国時代の人ですか？")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}

	if fake.system == "" {
		t.Fatal("expected a system prompt")
	}
	if result.Answer != "どちらとも言えない" {
		t.Fatalf("answer must be returned verbatim, got %q", result.Answer)
	}
	if result.Highlight != chat.HighlightNeutral {
		t.Fatalf("unexpected highlight %s", result.Highlight)
	}
}

func TestAskEmptyQuestion(t *testing.T) {
	svc, sessions, sess := setup(t, &fakeOracle{answer: "はい"})

	if _, err := svc.Ask(context.Background(), sess.ID, 1, "   "); !errors.Is(err, question.ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
	// validation failures must not spend quota
	if remaining := sessions.Remaining(sess.ID); remaining != session.AIQuestionLimit {
		t.Fatalf("expected untouched quota, got %d", remaining)
	}
}

func TestAskInvalidSession(t *testing.T) {
	svc, _, _ := setup(t, &fakeOracle{answer: "はい"})

	if _, err := svc.Ask(context.Background(), "missing", 1, "武士ですか？"); !errors.Is(err, question.ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestAskUnknownPersonStillConsumesQuota(t *testing.T) {
	svc, sessions, sess := setup(t, &fakeOracle{answer: "はい"})

	if _, err := svc.Ask(context.Background(), sess.ID, 9999, "武士ですか？"); !errors.Is(err, question.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
	// fail-closed: the slot was spent before the lookup
	if remaining := sessions.Remaining(sess.ID); remaining != session.AIQuestionLimit-1 {
		t.Fatalf("expected %d remaining, got %d", session.AIQuestionLimit-1, remaining)
	}
}

func TestAskOracleFailureStillConsumesQuota(t *testing.T) {
	fake := &fakeOracle{err: errors.New("connection reset")}
	svc, sessions, sess := setup(t, fake)

	if _, err := svc.Ask(context.Background(), sess.ID, 1, "武士ですか？"); err == nil {
		t.Fatal("expected error from oracle")
	}
	if remaining := sessions.Remaining(sess.ID); remaining != session.AIQuestionLimit-1 {
		t.Fatalf("failed call must consume the slot, got %d remaining", remaining)
	}
	if fake.calls != 1 {
		t.Fatalf("expected a single oracle call, got %d", fake.calls)
	}
}

func TestAskQuotaExhaustion(t *testing.T) {
	fake := &fakeOracle{answer: "いいえ"}
	svc, _, sess := setup(t, fake)

	var last question.Result
	for i := 0; i < session.AIQuestionLimit; i++ {
		result, err := svc.Ask(context.Background(), sess.ID, 1, "武士ですか？")
		if err != nil {
			t.Fatalf("question %d err: %v", i+1, err)
		}
		last = result
	}

	if last.Remaining != 0 {
		t.Fatalf("fifth response should report 0 remaining, got %d", last.Remaining)
	}

	if _, err := svc.Ask(context.Background(), sess.ID, 1, "武士ですか？"); !errors.Is(err, question.ErrQuotaExceeded) {
		t.Fatalf("sixth question should hit the quota, got %v", err)
	}
	if fake.calls != session.AIQuestionLimit {
		t.Fatalf("the blocked question must not reach the oracle, calls=%d", fake.calls)
	}
}

func TestAskWithoutOracle(t *testing.T) {
	svc, sessions, sess := setup(t, nil)

	if _, err := svc.Ask(context.Background(), sess.ID, 1, "武士ですか？"); !errors.Is(err, oracle.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	// even a misconfigured oracle consumes the slot
	if remaining := sessions.Remaining(sess.ID); remaining != session.AIQuestionLimit-1 {
		t.Fatalf("expected %d remaining, got %d", session.AIQuestionLimit-1, remaining)
	}
}
