package icon

import (
	"encoding/binary"
	"fmt"
	"sort"
	"time"

	"github.com/coyove/bbolt"
	"github.com/k1LoW/errors"
)

const (
	latestBucket  = "latest"
	historyPrefix = "history-"
	// historyLimit caps the records kept per icon file.
	historyLimit = 50
)

// Manifest records every generated icon in a bbolt database: the latest
// record per path, and a bounded history per path.
type Manifest struct {
	db *bbolt.DB
}

func OpenManifest(path string) (_ *Manifest, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	db, err := bbolt.Open(path, filePerm, &bbolt.Options{
		Timeout:      time.Second,
		FreelistType: bbolt.FreelistMapType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	return &Manifest{db: db}, nil
}

func (m *Manifest) Close() error {
	return m.db.Close()
}

func (m *Manifest) Put(r Record) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	data := r.Marshal()
	return m.db.Update(func(tx *bbolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists([]byte(latestBucket))
		if err != nil {
			return err
		}
		if err := bk.Put([]byte(r.Path), data); err != nil {
			return err
		}

		bk, err = tx.CreateBucketIfNotExists([]byte(historyPrefix + r.Path))
		if err != nil {
			return err
		}
		n, err := bk.NextSequence()
		if err != nil {
			return err
		}
		if err := bk.Put(binary.BigEndian.AppendUint64(nil, n), data); err != nil {
			return err
		}
		if n > historyLimit {
			k, _ := bk.Cursor().First()
			return bk.Delete(k)
		}
		return nil
	})
}

// Latest returns the last record of every icon path, smallest size first.
func (m *Manifest) Latest() (res []Record, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	err = m.db.View(func(tx *bbolt.Tx) error {
		bk := tx.Bucket([]byte(latestBucket))
		if bk == nil {
			return nil
		}
		return bk.ForEach(func(k, v []byte) error {
			r := Record{}
			if err := r.Unmarshal(v); err != nil {
				return fmt.Errorf("manifest entry %s: %w", k, err)
			}
			res = append(res, r)
			return nil
		})
	})
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Size != res[j].Size {
			return res[i].Size < res[j].Size
		}
		return res[i].Path < res[j].Path
	})
	return res, err
}

// History returns the records of path, oldest first.
func (m *Manifest) History(path string) (res []Record, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	err = m.db.View(func(tx *bbolt.Tx) error {
		bk := tx.Bucket([]byte(historyPrefix + path))
		if bk == nil {
			return nil
		}
		c := bk.Cursor()
		for k, v := c.First(); len(k) > 0; k, v = c.Next() {
			r := Record{}
			if err := r.Unmarshal(v); err != nil {
				return err
			}
			res = append(res, r)
		}
		return nil
	})
	return res, err
}
