// Package question mediates one free-text player question through the LLM
// oracle, under the session's AI-question quota.
package question

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ymatsux/gyakuaki/backend/internal/model/chat"
	"github.com/ymatsux/gyakuaki/backend/internal/model/person"
	"github.com/ymatsux/gyakuaki/backend/internal/service/oracle"
	"github.com/ymatsux/gyakuaki/backend/internal/service/session"
)

var (
	ErrSessionInvalid = errors.New("invalid or expired session")
	ErrEmptyQuestion  = errors.New("question is required")
	ErrQuotaExceeded  = errors.New("ai question quota exceeded")
	ErrPersonNotFound = errors.New("person not found")
)

const systemPromptFormat = `あなたは「アキネーター」のような推理ゲームのAIゲームマスターです。
正解の歴史上の人物は「%s」です。
ユーザーはこの人物を特定するために「はい」か「いいえ」で答えられる質問をしてきます。
ユーザーの質問に対して、以下のいずれかの言葉だけで答えてください。

回答の選択肢:
- "はい"
- "いいえ"
- "どちらとも言えない" (史実が曖昧な場合や、質問が的外れな場合)

絶対に正解の人物名を明かさないでください。`

// Sessions is the quota surface this gateway needs from the session store.
type Sessions interface {
	Get(id string) (session.Session, bool)
	Consume(id string) bool
	Remaining(id string) int
}

// Result carries the oracle's verbatim answer plus the post-decrement quota
// state.
type Result struct {
	Answer    string
	Highlight chat.Highlight
	Remaining int
	Message   string
}

// Service is the quota-gated free-text question gateway.
type Service struct {
	oracle   oracle.Client
	sessions Sessions
	persons  person.Store
}

// NewService wires the gateway. oracleClient may be nil when no credential
// is configured; calls then fail with oracle.ErrNotConfigured.
func NewService(oracleClient oracle.Client, sessions Sessions, persons person.Store) *Service {
	return &Service{
		oracle:   oracleClient,
		sessions: sessions,
		persons:  persons,
	}
}

// Ask runs one free-text question. The quota slot is consumed before the
// oracle call, so a failed call still spends it. No retry on this path;
// failures surface immediately.
func (s *Service) Ask(ctx context.Context, sessionID string, targetPersonID int, questionText string) (Result, error) {
	if _, ok := s.sessions.Get(sessionID); !ok {
		return Result{}, ErrSessionInvalid
	}

	if strings.TrimSpace(questionText) == "" {
		return Result{}, ErrEmptyQuestion
	}

	if !s.sessions.Consume(sessionID) {
		return Result{}, ErrQuotaExceeded
	}

	target, ok := s.persons.FindPerson(targetPersonID)
	if !ok {
		return Result{}, ErrPersonNotFound
	}

	if s.oracle == nil {
		return Result{}, oracle.ErrNotConfigured
	}

	systemPrompt := fmt.Sprintf(systemPromptFormat, target.DisplayName())
	answer, err := s.oracle.Ask(ctx, systemPrompt, questionText)
	if err != nil {
		return Result{}, oracle.Classify(err)
	}

	remaining := s.sessions.Remaining(sessionID)
	log.Printf("[question] session=%s person=%d remaining=%d", sessionID, targetPersonID, remaining)

	return Result{
		Answer:    answer,
		Highlight: chat.ClassifyAnswer(answer),
		Remaining: remaining,
		Message:   fmt.Sprintf("AI質問は残り%d回です", remaining),
	}, nil
}
