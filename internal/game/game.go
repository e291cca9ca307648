// Package game drives one player's turn-by-turn flow: questions append to
// the transcript and bump the question counter until a final guess resolves
// the game. One Game instance serves one player; it is not shared.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/ymatsux/gyakuaki/backend/internal/model/chat"
	"github.com/ymatsux/gyakuaki/backend/internal/model/person"
	"github.com/ymatsux/gyakuaki/backend/internal/service/answer"
	"github.com/ymatsux/gyakuaki/backend/internal/service/hint"
	"github.com/ymatsux/gyakuaki/backend/internal/service/oracle"
	"github.com/ymatsux/gyakuaki/backend/internal/service/question"
	"github.com/ymatsux/gyakuaki/backend/internal/service/session"
)

// Phase is the game's lifecycle state.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseGuessing Phase = "guessing"
	PhaseWin      Phase = "result_win"
	PhaseLose     Phase = "result_lose"
)

var (
	ErrNotPlaying  = errors.New("action only valid while playing")
	ErrFinished    = errors.New("game already finished")
	ErrBusy        = errors.New("an ai call is already in flight")
	ErrNoHints     = errors.New("no hints remaining")
	ErrNoQuestions = errors.New("no ai questions remaining")
	ErrNoSession   = errors.New("session not initialized")
	ErrNoTarget    = errors.New("no persons available for this difficulty")
)

const openingLine = "私は誰でしょう？質問して当ててみてください！"

// QuestionGateway is the free-text question surface the game drives.
type QuestionGateway interface {
	Ask(ctx context.Context, sessionID string, targetPersonID int, questionText string) (question.Result, error)
}

// HintGateway is the hint surface the game drives.
type HintGateway interface {
	Generate(ctx context.Context, targetName string, hintNumber int) (string, error)
}

// Config wires one game instance.
type Config struct {
	Store      person.Store
	Difficulty Difficulty
	Questions  QuestionGateway
	Hints      HintGateway
	SessionID  string
	// Rand drives target selection; nil falls back to the global source.
	Rand *rand.Rand
}

// Game is the orchestrator state machine.
type Game struct {
	mu sync.Mutex

	cfg       Config
	evaluator *answer.Evaluator

	phase         Phase
	target        person.Person
	transcript    []chat.Message
	questionCount int
	aiRemaining   int
	hintRemaining int
	busy          bool
}

// New draws a target for the difficulty and starts a game in the playing
// phase.
func New(cfg Config) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		evaluator: answer.NewEvaluator(cfg.Store),
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Restart begins an entirely new game: fresh target, transcript and
// counters. The caller supplies the new session token.
func (g *Game) Restart(sessionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.busy {
		return ErrBusy
	}
	g.cfg.SessionID = sessionID
	return g.reset()
}

func (g *Game) reset() error {
	candidates := FilterByDifficulty(g.cfg.Store.Persons(), g.cfg.Difficulty)
	if len(candidates) == 0 {
		return ErrNoTarget
	}

	pick := rand.Intn(len(candidates))
	if g.cfg.Rand != nil {
		pick = g.cfg.Rand.Intn(len(candidates))
	}

	g.phase = PhasePlaying
	g.target = candidates[pick]
	g.transcript = []chat.Message{{Role: chat.RoleAI, Text: openingLine}}
	g.questionCount = 0
	g.aiRemaining = session.AIQuestionLimit
	g.hintRemaining = hint.Levels
	return nil
}

// AskAttribute answers a predefined attribute question deterministically.
func (g *Game) AskAttribute(attr person.Attribute) (chat.Answer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return "", ErrNotPlaying
	}

	result := g.evaluator.Attribute(g.target.ID, attr.ID)
	g.appendExchange(attr.Question, string(result), result.Highlight())
	return result, nil
}

// AskYear answers an "entirely before/after year" question.
func (g *Game) AskYear(year int, direction answer.Direction) (chat.Answer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return "", ErrNotPlaying
	}

	result := g.evaluator.Year(g.target, year, direction)
	g.appendExchange(answer.YearQuestion(year, direction), string(result), result.Highlight())
	return result, nil
}

// AskAI routes a free-text question through the question gateway. The
// transcript gains the question and either the answer or an inline error
// bubble; the question counter increments either way, matching the
// fail-closed quota.
func (g *Game) AskAI(ctx context.Context, questionText string) (question.Result, error) {
	g.mu.Lock()
	if err := g.beginAICallLocked(); err != nil {
		g.mu.Unlock()
		return question.Result{}, err
	}
	if g.aiRemaining == 0 {
		g.busy = false
		g.mu.Unlock()
		return question.Result{}, ErrNoQuestions
	}

	g.transcript = append(g.transcript, chat.Message{Role: chat.RoleUser, Text: questionText})
	g.questionCount++
	sessionID := g.cfg.SessionID
	targetID := g.target.ID
	g.mu.Unlock()

	result, err := g.cfg.Questions.Ask(ctx, sessionID, targetID, questionText)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy = false

	if err != nil {
		g.transcript = append(g.transcript, chat.Message{
			Role:      chat.RoleAI,
			Text:      questionErrorText(err),
			Highlight: chat.HighlightNeutral,
		})
		return question.Result{}, err
	}

	g.aiRemaining = result.Remaining
	g.transcript = append(g.transcript, chat.Message{
		Role:      chat.RoleAI,
		Text:      result.Answer,
		Highlight: result.Highlight,
	})
	return result, nil
}

// AskHint requests the next hint. The local hint countdown is spent up
// front and restored when the attempt yields no usable output. Hints do not
// count as questions.
func (g *Game) AskHint(ctx context.Context) (string, error) {
	g.mu.Lock()
	if err := g.beginAICallLocked(); err != nil {
		g.mu.Unlock()
		return "", err
	}
	if g.hintRemaining == 0 {
		g.busy = false
		g.mu.Unlock()
		return "", ErrNoHints
	}

	hintNumber := hint.Levels + 1 - g.hintRemaining
	g.hintRemaining--
	g.transcript = append(g.transcript, chat.Message{
		Role:      chat.RoleUser,
		Text:      "ヒントをください",
		Highlight: chat.HighlightNeutral,
	})
	targetName := g.target.Name
	g.mu.Unlock()

	text, err := g.cfg.Hints.Generate(ctx, targetName, hintNumber)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy = false

	if err != nil {
		// compensating credit: the attempt produced nothing usable
		g.hintRemaining++
		g.transcript = append(g.transcript, chat.Message{
			Role:      chat.RoleAI,
			Text:      "ヒントの取得に失敗しました",
			Highlight: chat.HighlightNeutral,
		})
		return "", err
	}

	g.transcript = append(g.transcript, chat.Message{
		Role:      chat.RoleAI,
		Text:      "💡 " + text,
		Highlight: chat.HighlightNeutral,
	})
	return text, nil
}

// OpenGuess moves to the final-guess phase.
func (g *Game) OpenGuess() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return ErrNotPlaying
	}
	g.phase = PhaseGuessing
	return nil
}

// CancelGuess returns to playing without resolving the game.
func (g *Game) CancelGuess() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseGuessing {
		return fmt.Errorf("cannot cancel guess in phase %s", g.phase)
	}
	g.phase = PhasePlaying
	return nil
}

// Guess resolves the game. A matching identifier wins, anything else loses;
// the resulting phase is terminal.
func (g *Game) Guess(personID int) (Phase, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.phase {
	case PhasePlaying, PhaseGuessing:
	default:
		return g.phase, ErrFinished
	}

	if personID == g.target.ID {
		g.phase = PhaseWin
	} else {
		g.phase = PhaseLose
	}
	return g.phase, nil
}

// Phase reports the current lifecycle state.
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Target exposes the secret person, for result display after the game ends.
func (g *Game) Target() person.Person {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.target
}

// Transcript returns a copy of the exchange log in strict call order.
func (g *Game) Transcript() []chat.Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]chat.Message(nil), g.transcript...)
}

// QuestionCount reports how many questions have been asked.
func (g *Game) QuestionCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.questionCount
}

// AIRemaining mirrors the server-side quota as last reported.
func (g *Game) AIRemaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.aiRemaining
}

// HintRemaining reports the local hint countdown.
func (g *Game) HintRemaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hintRemaining
}

// beginAICallLocked enforces the single in-flight guard for oracle-backed
// actions. Callers must hold g.mu.
func (g *Game) beginAICallLocked() error {
	if g.phase != PhasePlaying {
		return ErrNotPlaying
	}
	if g.busy {
		return ErrBusy
	}
	if g.cfg.SessionID == "" {
		return ErrNoSession
	}
	g.busy = true
	return nil
}

// appendExchange records one question/answer pair and bumps the counter.
// Callers must hold g.mu.
func (g *Game) appendExchange(questionText, answerText string, highlight chat.Highlight) {
	g.transcript = append(g.transcript,
		chat.Message{Role: chat.RoleUser, Text: questionText},
		chat.Message{Role: chat.RoleAI, Text: answerText, Highlight: highlight},
	)
	g.questionCount++
}

func questionErrorText(err error) string {
	switch {
	case errors.Is(err, question.ErrQuotaExceeded):
		return "AI質問の回数制限に達しました（最大5回）"
	case errors.Is(err, question.ErrSessionInvalid):
		return "セッションが無効です。ページを再読み込みしてください。"
	case errors.Is(err, oracle.ErrRateLimited):
		return "AI機能の利用制限に達しました。しばらく待ってから再度お試しください。"
	case errors.Is(err, oracle.ErrOverloaded):
		return "AIが混み合っています。しばらく待ってから再度お試しください。"
	case errors.Is(err, oracle.ErrNotConfigured):
		return "AI service not available"
	default:
		return "AI質問の処理に失敗しました"
	}
}
