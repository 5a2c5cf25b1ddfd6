package gamedata

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"l10n-checker/internal/dictpath"
	"l10n-checker/internal/worker"
)

// importBatchSize is the number of rows sent per round trip by Import.
const importBatchSize = 500

const schemaSQL = `
CREATE TABLE IF NOT EXISTS string_cache (
	path      text PRIMARY KEY,
	langlabel jsonb NOT NULL,
	tags      text NOT NULL DEFAULT ''
)`

const upsertSQL = `
INSERT INTO string_cache (path, langlabel, tags)
VALUES ($1, $2, $3)
ON CONFLICT (path) DO UPDATE SET langlabel = EXCLUDED.langlabel, tags = EXCLUDED.tags`

// StringCache serves game strings from a PostgreSQL table filled by Import,
// instead of browsing the game files. Rows are read once by Preload and then
// served from memory; entries carry their tags but no parent objects.
type StringCache struct {
	pool   *pgxpool.Pool
	locale string

	mu     sync.RWMutex
	memory map[string]Entry // serialized reference → entry
}

// NewStringCache creates a cache backed by PostgreSQL.
func NewStringCache(pool *pgxpool.Pool, locale string) *StringCache {
	return &StringCache{
		pool:   pool,
		locale: locale,
		memory: make(map[string]Entry),
	}
}

// EnsureSchema creates the cache table.
func (c *StringCache) EnsureSchema(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create string cache table: %w", err)
	}
	return nil
}

// Preload loads all cached strings into memory.
func (c *StringCache) Preload(ctx context.Context) error {
	rows, err := c.pool.Query(ctx, `SELECT path, langlabel, tags FROM string_cache`)
	if err != nil {
		return fmt.Errorf("preload string cache: %w", err)
	}
	defer rows.Close()

	loaded := make(map[string]Entry)
	for rows.Next() {
		var path, tagList string
		var label map[string]string
		if err := rows.Scan(&path, &label, &tagList); err != nil {
			return fmt.Errorf("scan string cache row: %w", err)
		}
		ref, err := dictpath.Parse(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping cached string")
			continue
		}
		loaded[path] = Entry{Ref: ref, LangLabel: label, Tags: strings.Fields(tagList)}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("preload string cache: %w", err)
	}

	c.mu.Lock()
	c.memory = loaded
	c.mu.Unlock()

	log.Info().Int("count", len(loaded)).Msg("Preloaded string cache")
	return nil
}

// Import upserts entries, in batches, into the table and the memory cache.
func (c *StringCache) Import(ctx context.Context, entries []Entry) error {
	for _, chunk := range worker.Batch(entries, importBatchSize) {
		batch := &pgx.Batch{}
		for _, e := range chunk {
			batch.Queue(upsertSQL, e.Ref.String(), e.LangLabel, strings.Join(e.Tags, " "))
		}
		br := c.pool.SendBatch(ctx, batch)
		for range chunk {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("import strings: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("import strings: %w", err)
		}

		c.mu.Lock()
		for _, e := range chunk {
			c.memory[e.Ref.String()] = e
		}
		c.mu.Unlock()
	}

	log.Info().Int("count", len(entries)).Msg("Imported strings into cache")
	return nil
}

// Len returns the number of strings in memory.
func (c *StringCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memory)
}

// Get implements Reader.
func (c *StringCache) Get(ref dictpath.Ref) (any, bool) {
	e, ok := c.Complete(ref)
	if !ok {
		return nil, false
	}
	text, ok := e.LangLabel[c.locale]
	if !ok {
		return nil, false
	}
	return text, true
}

// Complete implements Reader.
func (c *StringCache) Complete(ref dictpath.Ref) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.memory[ref.String()]
	return e, ok
}

// Walk calls fn for every cached string, sorted by reference.
func (c *StringCache) Walk(fn func(Entry) error) error {
	c.mu.RLock()
	keys := make([]string, 0, len(c.memory))
	for k := range c.memory {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)

	for _, k := range keys {
		c.mu.RLock()
		e, ok := c.memory[k]
		c.mu.RUnlock()
		if !ok {
			continue
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}
