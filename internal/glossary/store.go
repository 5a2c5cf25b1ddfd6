package glossary

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Store keeps the glossary in Neo4j, as Term nodes keyed by their source.
type Store struct {
	driver neo4j.DriverWithContext
}

// NewStore creates a glossary store.
func NewStore(driver neo4j.DriverWithContext) *Store {
	return &Store{driver: driver}
}

// EnsureSchema creates constraints on the Neo4j database.
func (s *Store) EnsureSchema(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (t:Term) REQUIRE t.source IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Glossary schema ensured")
	return nil
}

// Import upserts terms.
func (s *Store) Import(ctx context.Context, terms []Term) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	for _, t := range terms {
		_, err := session.Run(ctx, `
			MERGE (t:Term {source: $source})
			SET t.target = $target,
			    t.category = $category
		`, map[string]any{
			"source":   t.Source,
			"target":   t.Target,
			"category": t.Category,
		})
		if err != nil {
			return fmt.Errorf("upsert term %s: %w", t.Source, err)
		}
	}

	log.Info().Int("terms", len(terms)).Msg("Imported glossary terms")
	return nil
}

// Load reads every term.
func (s *Store) Load(ctx context.Context) ([]Term, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (t:Term)
		RETURN t.source AS source, t.target AS target, t.category AS category
		ORDER BY t.source
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("load glossary: %w", err)
	}

	var terms []Term
	for result.Next(ctx) {
		record := result.Record()
		source, _ := record.Get("source")
		target, _ := record.Get("target")
		category, _ := record.Get("category")

		terms = append(terms, Term{
			Source:   fmt.Sprintf("%v", source),
			Target:   fmt.Sprintf("%v", target),
			Category: fmt.Sprintf("%v", category),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("load glossary: %w", err)
	}

	log.Info().Int("count", len(terms)).Msg("Loaded glossary from graph")
	return terms, nil
}
