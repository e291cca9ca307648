// Command seed loads a gameData.json snapshot into the SQLite dataset file.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/ymatsux/gyakuaki/backend/internal/model/person"
)

func main() {
	dbPath := flag.String("db", "data/persons.db", "path to the SQLite dataset file")
	dataPath := flag.String("data", "data/gameData.json", "path to the JSON snapshot to import")
	useSeed := flag.Bool("builtin", false, "import the built-in seed instead of a snapshot file")
	flag.Parse()

	ctx := context.Background()

	var snap person.Snapshot
	if *useSeed {
		snap = person.Seed()
	} else {
		loaded, err := person.LoadSnapshot(*dataPath)
		if err != nil {
			log.Fatalf("failed to load snapshot: %v", err)
		}
		snap = loaded
	}

	db, err := person.OpenDB(ctx, *dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := person.InitSchema(ctx, db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	if err := person.WriteSnapshot(ctx, db, snap); err != nil {
		log.Fatalf("failed to write snapshot: %v", err)
	}

	log.Printf("imported %d persons, %d attributes, %d relations into %s",
		len(snap.Persons), len(snap.Attributes), len(snap.PersonAttributes), *dbPath)
}
