// Package recurring persists recurring-payment templates and classifies new
// documents against them.
package recurring

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.etcd.io/bbolt"

	"github.com/thepesz/dueasy-sub004/internal/common"
	"github.com/thepesz/dueasy-sub004/internal/entity"
)

const templateBucket = "templates"

// Template is one remembered vendor/amount pattern.
type Template struct {
	ID           uuid.UUID          `json:"id"`
	Vendor       string             `json:"vendor"`
	TaxID        string             `json:"tax_id,omitempty"`
	Amounts      entity.AmountRange `json:"amounts"`
	Observations int                `json:"observations"`
	LastSeen     time.Time          `json:"last_seen"`
}

// Store is a bbolt-backed template store.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the template database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening template db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(templateBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating template bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Create persists a new template seeded with one amount observation.
func (s *Store) Create(vendor, taxID string, amount decimal.Decimal) (*Template, error) {
	t := &Template{
		ID:           uuid.New(),
		Vendor:       vendor,
		TaxID:        taxID,
		Amounts:      entity.NewAmountRange(amount),
		Observations: 1,
		LastSeen:     time.Now().UTC(),
	}
	if err := s.put(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get retrieves a template by ID.
func (s *Store) Get(id uuid.UUID) (*Template, error) {
	var t *Template
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(templateBucket)).Get(id[:])
		if data == nil {
			return common.ErrNotFound
		}
		t = &Template{}
		return json.Unmarshal(data, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all templates.
func (s *Store) List() ([]*Template, error) {
	var out []*Template
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(templateBucket)).ForEach(func(_, v []byte) error {
			t := &Template{}
			if err := json.Unmarshal(v, t); err != nil {
				return err
			}
			out = append(out, t)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ObserveAmount widens the template's amount range to cover amount, inside
// one write transaction so concurrent observers cannot lose updates.
func (s *Store) ObserveAmount(id uuid.UUID, amount decimal.Decimal) (*Template, error) {
	var t *Template
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(templateBucket))
		data := bucket.Get(id[:])
		if data == nil {
			return common.ErrNotFound
		}
		t = &Template{}
		if err := json.Unmarshal(data, t); err != nil {
			return err
		}
		t.Amounts = t.Amounts.Widen(amount)
		t.Observations++
		t.LastSeen = time.Now().UTC()
		updated, err := json.Marshal(t)
		if err != nil {
			return err
		}
		return bucket.Put(id[:], updated)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a template.
func (s *Store) Delete(id uuid.UUID) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(templateBucket)).Delete(id[:])
	})
}

func (s *Store) put(t *Template) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshaling template: %w", err)
		}
		return tx.Bucket([]byte(templateBucket)).Put(t.ID[:], data)
	})
}
