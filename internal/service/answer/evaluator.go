package answer

import (
	"fmt"

	"github.com/ymatsux/gyakuaki/backend/internal/model/chat"
	"github.com/ymatsux/gyakuaki/backend/internal/model/person"
)

// Direction selects which side of a year the player is asking about.
type Direction string

const (
	Before Direction = "before"
	After  Direction = "after"
)

// Evaluator resolves deterministic yes/no questions against the loaded
// dataset. It has no state of its own and never errs.
type Evaluator struct {
	store person.Store
}

// NewEvaluator wraps the dataset store.
func NewEvaluator(store person.Store) *Evaluator {
	return &Evaluator{store: store}
}

// Attribute answers a predefined attribute question for the target person.
// A missing truth-table row reads as false, so this path is strictly binary.
func (e *Evaluator) Attribute(targetPersonID, attributeID int) chat.Answer {
	if e.store.Value(targetPersonID, attributeID) {
		return chat.AnswerYes
	}
	return chat.AnswerNo
}

// Year answers "is this person's life entirely before/after year".
// An unknown birth or death year answers no; the rule is deliberately
// conservative and lives only here.
func (e *Evaluator) Year(target person.Person, year int, direction Direction) chat.Answer {
	if target.BirthYear == nil || target.DeathYear == nil {
		return chat.AnswerNo
	}

	var yes bool
	if direction == Before {
		yes = *target.DeathYear < year
	} else {
		yes = *target.BirthYear > year
	}

	if yes {
		return chat.AnswerYes
	}
	return chat.AnswerNo
}

// YearQuestion renders the canonical transcript text for a year question.
func YearQuestion(year int, direction Direction) string {
	side := "前"
	if direction == After {
		side = "後"
	}
	return fmt.Sprintf("%d年より%sの人ですか？", year, side)
}
