package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

// CurrentSchemaVersion is bumped on breaking changes to the storage format.
const CurrentSchemaVersion = 1

var keySchemaVersion = []byte("schema_version")

// checkSchema stamps new databases with the current schema version and
// refuses to open databases written by an incompatible version. There is no
// in-place migration; articles are never updated, so a rebuild means
// re-crawling into a fresh file.
func (s *BoltStore) checkSchema() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketStats)

		data := b.Get(keySchemaVersion)
		if data == nil {
			version, err := json.Marshal(CurrentSchemaVersion)
			if err != nil {
				return err
			}
			return b.Put(keySchemaVersion, version)
		}

		var version int
		if err := json.Unmarshal(data, &version); err != nil {
			return fmt.Errorf("corrupt schema version: %w", err)
		}
		if version != CurrentSchemaVersion {
			return fmt.Errorf("store schema version %d is not supported (want %d); re-crawl into a new database file", version, CurrentSchemaVersion)
		}
		return nil
	})
}
