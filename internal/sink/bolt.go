package sink

import (
	"errors"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/cmmoran/objc2hx/internal/binding"
	"github.com/cmmoran/objc2hx/internal/model"
)

var ErrUnitNotFound = errors.New("binding unit not found")

var bucketUnits = []byte("units")

// Bolt keeps rendered units in a bbolt database, keyed by class name.
type Bolt struct {
	db *bbolt.DB
}

func OpenBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketUnits); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketUnits, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Put(unit *model.BindingUnit) error {
	data, err := binding.RenderBytes(unit)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUnits).Put([]byte(unit.Class), data)
	})
}

// Get returns the rendered unit for class.
func (b *Bolt) Get(class string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketUnits).Get([]byte(class))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrUnitNotFound, class)
		}
		// bbolt memory is only valid inside the transaction
		out = append([]byte(nil), data...)
		return nil
	})
	return out, err
}

// List returns the stored class names in key order.
func (b *Bolt) List() ([]string, error) {
	var classes []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUnits).ForEach(func(k, _ []byte) error {
			classes = append(classes, string(k))
			return nil
		})
	})
	sort.Strings(classes)
	return classes, err
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
