package game

import "github.com/ymatsux/gyakuaki/backend/internal/model/person"

// Difficulty buckets persons by trivia level when drawing a target.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyAll    Difficulty = "all"
)

// FilterByDifficulty selects the persons eligible for a difficulty. A
// missing trivia level counts as 0, landing the person in the hard bucket.
func FilterByDifficulty(persons []person.Person, difficulty Difficulty) []person.Person {
	if difficulty == DifficultyAll || difficulty == "" {
		return persons
	}

	var filtered []person.Person
	for _, p := range persons {
		level := 0
		if p.TriviaLevel != nil {
			level = *p.TriviaLevel
		}

		switch difficulty {
		case DifficultyEasy:
			if level >= 85 {
				filtered = append(filtered, p)
			}
		case DifficultyNormal:
			if level >= 70 && level < 85 {
				filtered = append(filtered, p)
			}
		case DifficultyHard:
			if level < 70 {
				filtered = append(filtered, p)
			}
		}
	}
	return filtered
}
