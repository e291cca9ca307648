package person

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// MemoryStore implements Store with the dataset snapshot held in memory.
// The snapshot is read-only after construction, so no locking is needed.
type MemoryStore struct {
	persons    []Person
	attributes []Attribute
	relations  []PersonAttribute
	byID       map[int]Person
	values     map[[2]int]bool
}

// NewMemoryStore builds a MemoryStore from a snapshot. Attributes are
// ordered by (category, id) for stable presentation.
func NewMemoryStore(snap Snapshot) *MemoryStore {
	attributes := append([]Attribute(nil), snap.Attributes...)
	sort.SliceStable(attributes, func(i, j int) bool {
		if attributes[i].Category != attributes[j].Category {
			return attributes[i].Category < attributes[j].Category
		}
		return attributes[i].ID < attributes[j].ID
	})

	byID := make(map[int]Person, len(snap.Persons))
	for _, p := range snap.Persons {
		byID[p.ID] = p
	}

	values := make(map[[2]int]bool, len(snap.PersonAttributes))
	for _, rel := range snap.PersonAttributes {
		values[[2]int{rel.PersonID, rel.AttributeID}] = rel.Value
	}

	return &MemoryStore{
		persons:    append([]Person(nil), snap.Persons...),
		attributes: attributes,
		relations:  append([]PersonAttribute(nil), snap.PersonAttributes...),
		byID:       byID,
		values:     values,
	}
}

// LoadSnapshot reads a gameData.json-style snapshot from disk.
func LoadSnapshot(path string) (Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return snap, nil
}

// Persons returns the full person list.
func (s *MemoryStore) Persons() []Person {
	return append([]Person(nil), s.persons...)
}

// FindPerson looks up a person by identifier.
func (s *MemoryStore) FindPerson(id int) (Person, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Attributes returns the attribute list ordered by (category, id).
func (s *MemoryStore) Attributes() []Attribute {
	return append([]Attribute(nil), s.attributes...)
}

// PersonAttributes returns the raw truth-table rows.
func (s *MemoryStore) PersonAttributes() []PersonAttribute {
	return append([]PersonAttribute(nil), s.relations...)
}

// Value resolves the truth table for one (person, attribute) pair. A
// missing row is false.
func (s *MemoryStore) Value(personID, attributeID int) bool {
	return s.values[[2]int{personID, attributeID}]
}
