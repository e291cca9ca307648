package person_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ymatsux/gyakuaki/backend/internal/model/person"
)

func TestMemoryStoreLookups(t *testing.T) {
	store := person.NewMemoryStore(person.Seed())

	p, ok := store.FindPerson(1)
	if !ok {
		t.Fatal("expected person 1")
	}
	if p.Name != "織田信長" {
		t.Fatalf("unexpected person %q", p.Name)
	}

	if _, ok := store.FindPerson(9999); ok {
		t.Fatal("expected person 9999 to be absent")
	}
}

func TestMemoryStoreValueAbsentRowIsFalse(t *testing.T) {
	store := person.NewMemoryStore(person.Seed())

	if !store.Value(1, 4) {
		t.Fatal("seeded true row should read true")
	}
	if store.Value(3, 5) {
		t.Fatal("seeded false row should read false")
	}
	if store.Value(1, 9999) {
		t.Fatal("absent row should read false")
	}
}

func TestMemoryStoreOrdersAttributes(t *testing.T) {
	store := person.NewMemoryStore(person.Snapshot{
		Attributes: []person.Attribute{
			{ID: 3, Category: person.CategoryTrait},
			{ID: 1, Category: person.CategoryEra},
			{ID: 2, Category: person.CategoryEra},
		},
	})

	attrs := store.Attributes()
	if attrs[0].ID != 1 || attrs[1].ID != 2 || attrs[2].ID != 3 {
		t.Fatalf("unexpected order: %v", attrs)
	}
}

func TestLoadSnapshotFromFile(t *testing.T) {
	raw, err := json.Marshal(person.Seed())
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}

	path := filepath.Join(t.TempDir(), "gameData.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write err: %v", err)
	}

	snap, err := person.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot err: %v", err)
	}
	if len(snap.Persons) != len(person.Seed().Persons) {
		t.Fatalf("expected %d persons, got %d", len(person.Seed().Persons), len(snap.Persons))
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persons.db")

	db, err := person.OpenDB(ctx, path)
	if err != nil {
		t.Fatalf("OpenDB err: %v", err)
	}
	if err := person.InitSchema(ctx, db); err != nil {
		t.Fatalf("InitSchema err: %v", err)
	}

	seed := person.Seed()
	if err := person.WriteSnapshot(ctx, db, seed); err != nil {
		t.Fatalf("WriteSnapshot err: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close err: %v", err)
	}

	store, err := person.OpenSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore err: %v", err)
	}

	if len(store.Persons()) != len(seed.Persons) {
		t.Fatalf("expected %d persons, got %d", len(seed.Persons), len(store.Persons()))
	}

	nobunaga, ok := store.FindPerson(1)
	if !ok {
		t.Fatal("expected person 1 after round trip")
	}
	if nobunaga.BirthYear == nil || *nobunaga.BirthYear != 1534 {
		t.Fatalf("unexpected birth year %v", nobunaga.BirthYear)
	}

	himiko, ok := store.FindPerson(4)
	if !ok {
		t.Fatal("expected person 4 after round trip")
	}
	if himiko.BirthYear != nil || himiko.DeathYear != nil {
		t.Fatal("null years should survive the round trip")
	}

	if !store.Value(1, 4) {
		t.Fatal("true relation should survive the round trip")
	}
	if store.Value(3, 5) {
		t.Fatal("false relation should stay false")
	}
}

func TestDisplayName(t *testing.T) {
	en := "Oda Nobunaga"
	p := person.Person{Name: "織田信長", NameEn: &en}
	if got := p.DisplayName(); got != "織田信長 (Oda Nobunaga)" {
		t.Fatalf("unexpected display name %q", got)
	}

	p.NameEn = nil
	if got := p.DisplayName(); got != "織田信長" {
		t.Fatalf("unexpected display name %q", got)
	}
}
