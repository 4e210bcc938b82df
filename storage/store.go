// Package storage gives a spreadsheet.Sheet durability across process
// restarts, adapted from the teacher's SheetRepository.go/
// CellDependencyTree.go/CellSerializer.go: a bbolt bucket per sheet holds
// each cell's raw text, and a parallel reverse-dependency bucket lets a
// caller answer "what depends on this cell" without re-parsing formulas.
package storage

import (
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/sheetcore/spreadsheet"
)

// Store persists cell text for any number of sheets in one bbolt file.
type Store struct {
	db         *bbolt.DB
	serializer cellSerializer
	deps       dependencyIndex
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func bucketName(sheetID string) []byte {
	return []byte(strings.ToLower(sheetID))
}

// SaveCell persists one cell's raw text and the set of positions its
// formula (if any) depends on. An empty dependsOn clears the cell's
// recorded edges.
func (s *Store) SaveCell(sheetID string, pos spreadsheet.Position, text string, dependsOn []spreadsheet.Position) error {
	key := pos.String()
	dependsOnKeys := make([]string, len(dependsOn))
	for i, p := range dependsOn {
		dependsOnKeys[i] = p.String()
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName(sheetID))
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(key), s.serializer.Marshal(key, text)); err != nil {
			return err
		}
		return s.deps.SetDependsOn(tx, bucketName(sheetID), key, dependsOnKeys)
	})
}

// DeleteCell removes a cell's record and its dependency edges.
func (s *Store) DeleteCell(sheetID string, pos spreadsheet.Position) error {
	key := pos.String()
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName(sheetID))
		if bucket == nil {
			return nil
		}
		if err := bucket.Delete([]byte(key)); err != nil {
			return err
		}
		return s.deps.SetDependsOn(tx, bucketName(sheetID), key, nil)
	})
}

// LoadSheet returns every stored cell's text for sheetID, keyed by
// position, in no particular order. The caller replays them through
// Sheet.SetCell to rehydrate an in-memory sheet; dependency edges rebuild
// themselves as a side effect of that replay, so the index here is only
// consulted for Dependants, never to drive loading order.
func (s *Store) LoadSheet(sheetID string) (map[spreadsheet.Position]string, error) {
	cells := map[spreadsheet.Position]string{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName(sheetID))
		if bucket == nil {
			return nil
		}
		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			key, text, err := s.serializer.Unmarshal(v)
			if err != nil {
				return fmt.Errorf("sheet %s cell %s: %w", sheetID, k, err)
			}
			pos := spreadsheet.FromString(key)
			if !pos.IsValid() {
				continue
			}
			cells[pos] = text
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cells, nil
}

// Dependants returns every position that transitively reads pos's value,
// for callers that need to react to a write without going through a
// spreadsheet.Notifier (e.g. a cache warmer, or diagnostics).
func (s *Store) Dependants(sheetID string, pos spreadsheet.Position) ([]spreadsheet.Position, error) {
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		keys = s.deps.Dependants(tx, bucketName(sheetID), pos.String())
		return nil
	})
	if err != nil {
		return nil, err
	}

	positions := make([]spreadsheet.Position, 0, len(keys))
	for _, k := range keys {
		if pos := spreadsheet.FromString(k); pos.IsValid() {
			positions = append(positions, pos)
		}
	}
	return positions, nil
}
