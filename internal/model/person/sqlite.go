package person

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenDB opens the SQLite dataset file with the pragmas the importer uses.
func OpenDB(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't support multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// InitSchema creates the dataset tables if they don't exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS persons (
		id                      INTEGER PRIMARY KEY,
		name                    TEXT NOT NULL,
		name_en                 TEXT,
		birth_year              INTEGER,
		death_year              INTEGER,
		era                     TEXT,
		region                  TEXT,
		gender                  TEXT,
		occupation              TEXT,
		major_achievement       TEXT,
		historical_significance TEXT,
		famous_quote            TEXT,
		personality_trait       TEXT,
		fun_fact                TEXT,
		modern_comparison       TEXT,
		if_alive_today          TEXT,
		recommended_for         TEXT,
		trivia_level            INTEGER,
		catchphrase             TEXT,
		description             TEXT,
		image_url               TEXT,
		hint1                   TEXT,
		hint2                   TEXT,
		hint3                   TEXT
	);

	CREATE TABLE IF NOT EXISTS attributes (
		id            INTEGER PRIMARY KEY,
		category      TEXT NOT NULL,
		question      TEXT NOT NULL,
		attribute_key TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS person_attributes (
		person_id    INTEGER NOT NULL,
		attribute_id INTEGER NOT NULL,
		value        INTEGER NOT NULL,
		PRIMARY KEY (person_id, attribute_id)
	);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LoadFromDB reads the whole dataset into memory. The game only ever works
// against the snapshot loaded at startup, matching the /data/init contract.
func LoadFromDB(ctx context.Context, db *sql.DB) (Snapshot, error) {
	persons, err := loadPersons(ctx, db)
	if err != nil {
		return Snapshot{}, err
	}

	attributes, err := loadAttributes(ctx, db)
	if err != nil {
		return Snapshot{}, err
	}

	relations, err := loadPersonAttributes(ctx, db)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Persons: persons, Attributes: attributes, PersonAttributes: relations}, nil
}

// OpenSQLiteStore opens the dataset file and returns a MemoryStore over its
// contents.
func OpenSQLiteStore(ctx context.Context, path string) (*MemoryStore, error) {
	db, err := OpenDB(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	snap, err := LoadFromDB(ctx, db)
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(snap), nil
}

// WriteSnapshot upserts the full snapshot, used by cmd/seed.
func WriteSnapshot(ctx context.Context, db *sql.DB, snap Snapshot) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	personStmt := `
	INSERT OR REPLACE INTO persons (
		id, name, name_en, birth_year, death_year, era, region, gender,
		occupation, major_achievement, historical_significance, famous_quote,
		personality_trait, fun_fact, modern_comparison, if_alive_today,
		recommended_for, trivia_level, catchphrase, description, image_url,
		hint1, hint2, hint3
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, p := range snap.Persons {
		if _, err := tx.ExecContext(ctx, personStmt,
			p.ID, p.Name, p.NameEn, p.BirthYear, p.DeathYear, p.Era, p.Region,
			p.Gender, p.Occupation, p.MajorAchievement, p.HistoricalSignificance,
			p.FamousQuote, p.PersonalityTrait, p.FunFact, p.ModernComparison,
			p.IfAliveToday, p.RecommendedFor, p.TriviaLevel, p.Catchphrase,
			p.Description, p.ImageURL, p.Hint1, p.Hint2, p.Hint3,
		); err != nil {
			return fmt.Errorf("failed to insert person %d: %w", p.ID, err)
		}
	}

	for _, a := range snap.Attributes {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO attributes (id, category, question, attribute_key) VALUES (?, ?, ?, ?)`,
			a.ID, string(a.Category), a.Question, a.AttributeKey,
		); err != nil {
			return fmt.Errorf("failed to insert attribute %d: %w", a.ID, err)
		}
	}

	for _, rel := range snap.PersonAttributes {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO person_attributes (person_id, attribute_id, value) VALUES (?, ?, ?)`,
			rel.PersonID, rel.AttributeID, rel.Value,
		); err != nil {
			return fmt.Errorf("failed to insert relation (%d, %d): %w", rel.PersonID, rel.AttributeID, err)
		}
	}

	return tx.Commit()
}

func loadPersons(ctx context.Context, db *sql.DB) ([]Person, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, name_en, birth_year, death_year, era, region, gender,
			occupation, major_achievement, historical_significance, famous_quote,
			personality_trait, fun_fact, modern_comparison, if_alive_today,
			recommended_for, trivia_level, catchphrase, description, image_url,
			hint1, hint2, hint3
		FROM persons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	var persons []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(
			&p.ID, &p.Name, &p.NameEn, &p.BirthYear, &p.DeathYear, &p.Era,
			&p.Region, &p.Gender, &p.Occupation, &p.MajorAchievement,
			&p.HistoricalSignificance, &p.FamousQuote, &p.PersonalityTrait,
			&p.FunFact, &p.ModernComparison, &p.IfAliveToday, &p.RecommendedFor,
			&p.TriviaLevel, &p.Catchphrase, &p.Description, &p.ImageURL,
			&p.Hint1, &p.Hint2, &p.Hint3,
		); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

func loadAttributes(ctx context.Context, db *sql.DB) ([]Attribute, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, category, question, attribute_key FROM attributes ORDER BY category, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query attributes: %w", err)
	}
	defer rows.Close()

	var attributes []Attribute
	for rows.Next() {
		var a Attribute
		var category string
		if err := rows.Scan(&a.ID, &category, &a.Question, &a.AttributeKey); err != nil {
			return nil, fmt.Errorf("failed to scan attribute: %w", err)
		}
		a.Category = Category(category)
		attributes = append(attributes, a)
	}
	return attributes, rows.Err()
}

func loadPersonAttributes(ctx context.Context, db *sql.DB) ([]PersonAttribute, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT person_id, attribute_id, value FROM person_attributes`)
	if err != nil {
		return nil, fmt.Errorf("failed to query person_attributes: %w", err)
	}
	defer rows.Close()

	var relations []PersonAttribute
	for rows.Next() {
		var rel PersonAttribute
		if err := rows.Scan(&rel.PersonID, &rel.AttributeID, &rel.Value); err != nil {
			return nil, fmt.Errorf("failed to scan person_attribute: %w", err)
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}
