package storage

import (
	"bytes"

	"go.etcd.io/bbolt"
)

// dependencyIndex is a reverse dependency lookup, adapted from the
// teacher's CellDependencyTree.go: for a cell, which other cells depend
// on it. It is stored in its own bucket per sheet (prefixed so it never
// collides with the sheet's cell bucket), with keys of the form
// "<dependingOnKey>\x00<dependantKey>" so every dependant of a cell shares
// one seekable prefix.
type dependencyIndex struct{}

const delimiter = byte(0x00)

var indexBucketPrefix = []byte("__deps__")

func (dependencyIndex) bucketName(sheetID []byte) []byte {
	return append(append([]byte{}, indexBucketPrefix...), sheetID...)
}

// SetDependsOn replaces dependantKey's full dependency list in one
// transaction, diffing against what was previously recorded so unchanged
// edges are left untouched.
func (d dependencyIndex) SetDependsOn(tx *bbolt.Tx, sheetID []byte, dependantKey string, dependsOn []string) error {
	bucket, err := tx.CreateBucketIfNotExists(d.bucketName(sheetID))
	if err != nil {
		return err
	}

	listKey := d.listKey(dependantKey)
	stale := map[string]bool{}
	if previous := bucket.Get(listKey); previous != nil {
		for _, k := range bytes.Split(previous, []byte{delimiter}) {
			stale[string(k)] = true
		}
	}

	for _, dependsOnKey := range dependsOn {
		if stale[dependsOnKey] {
			delete(stale, dependsOnKey)
			continue
		}
		if err := bucket.Put(d.edgeKey(dependsOnKey, dependantKey), []byte{}); err != nil {
			return err
		}
	}
	for dependsOnKey := range stale {
		if err := bucket.Delete(d.edgeKey(dependsOnKey, dependantKey)); err != nil {
			return err
		}
	}

	if len(dependsOn) == 0 {
		return bucket.Delete(listKey)
	}
	joined := make([][]byte, len(dependsOn))
	for i, k := range dependsOn {
		joined[i] = []byte(k)
	}
	return bucket.Put(listKey, bytes.Join(joined, []byte{delimiter}))
}

// Dependants returns every cell key that transitively depends on key,
// deduplicated, by walking the reverse edges breadth-first.
func (d dependencyIndex) Dependants(tx *bbolt.Tx, sheetID []byte, key string) []string {
	bucket := tx.Bucket(d.bucketName(sheetID))
	if bucket == nil {
		return nil
	}

	seen := map[string]bool{key: true}
	var result []string
	frontier := []string{key}
	for len(frontier) > 0 {
		var next []string
		for _, k := range frontier {
			for _, dep := range d.directDependants(bucket, k) {
				if !seen[dep] {
					seen[dep] = true
					result = append(result, dep)
					next = append(next, dep)
				}
			}
		}
		frontier = next
	}
	return result
}

func (d dependencyIndex) directDependants(bucket *bbolt.Bucket, dependsOnKey string) []string {
	prefix := d.edgePrefix(dependsOnKey)
	var dependants []string
	c := bucket.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		dependants = append(dependants, string(k[len(prefix):]))
	}
	return dependants
}

func (dependencyIndex) listKey(dependantKey string) []byte {
	return append([]byte{delimiter, delimiter}, []byte(dependantKey)...)
}

func (dependencyIndex) edgePrefix(dependsOnKey string) []byte {
	return append([]byte(dependsOnKey), delimiter)
}

func (d dependencyIndex) edgeKey(dependsOnKey, dependantKey string) []byte {
	return append(d.edgePrefix(dependsOnKey), []byte(dependantKey)...)
}
