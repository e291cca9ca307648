// Package hint generates one progressively-easier hint per invocation,
// without ever naming the target. Hint availability is a client-side
// countdown; this gateway does not enforce it.
package hint

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ymatsux/gyakuaki/backend/internal/service/oracle"
)

// Levels is the number of hint difficulty steps a game offers.
const Levels = 3

// difficultyPolicy maps the hint index to its prompt constraint. Index 1 is
// the hardest hint, index 3 the easiest.
var difficultyPolicy = map[int]string{
	1: "難しいヒント（抽象的・間接的、時代背景や雰囲気を示唆する程度。職業や具体的な功績には触れない）",
	2: "中程度のヒント（やや具体的、職業分野や活動領域をほのめかす。具体的な作品名や出来事は避ける）",
	3: "簡単なヒント（具体的、代表的な業績や出来事・作品を示してよい）",
}

const promptFormat = `あなたは「アキネーター」のような推理ゲームのAIゲームマスターです。
正解の歴史上の人物は「%s」です。

プレイヤーがこの人物を特定しやすくなるように、面白くて有益なヒントを1つ出してください。

今回のヒントの難易度: %s

ヒントの要件：
- 正解の人物名を明かさないこと
- 歴史的事実や特徴を活用
- 1〜2文で簡潔に
- 面白く、魅力的に

ヒントのみを返してください（前置きや説明は不要）。`

// Service is the hint gateway. Overload errors are retried with the fixed
// backoff schedule; everything else propagates immediately.
type Service struct {
	oracle oracle.Client
	policy oracle.Policy
}

// NewService wires the gateway with the standard overload policy.
// oracleClient may be nil when no credential is configured.
func NewService(oracleClient oracle.Client) *Service {
	return NewServiceWithPolicy(oracleClient, oracle.OverloadPolicy())
}

// NewServiceWithPolicy lets tests substitute the retry schedule.
func NewServiceWithPolicy(oracleClient oracle.Client, policy oracle.Policy) *Service {
	return &Service{oracle: oracleClient, policy: policy}
}

// Generate produces the hint for the given target name and hint index
// (clamped to 1..Levels).
func (s *Service) Generate(ctx context.Context, targetName string, hintNumber int) (string, error) {
	if s.oracle == nil {
		return "", oracle.ErrNotConfigured
	}

	if hintNumber < 1 {
		hintNumber = 1
	}
	if hintNumber > Levels {
		hintNumber = Levels
	}

	prompt := fmt.Sprintf(promptFormat, targetName, difficultyPolicy[hintNumber])

	hint, err := oracle.Do(ctx, s.policy, func(ctx context.Context) (string, error) {
		text, askErr := s.oracle.Ask(ctx, prompt, "ヒントをください")
		if askErr != nil {
			log.Printf("[hint] oracle call failed (hint %d): %v", hintNumber, askErr)
			return "", oracle.Classify(askErr)
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(hint), nil
}
