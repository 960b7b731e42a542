// Package store persists built style documents with gorm and keeps recently
// read documents in a ristretto cache.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khankhulgun/mapstyle/models"
	"github.com/khankhulgun/mapstyle/style"
)

// ErrNotFound is returned when no style has the requested id.
var ErrNotFound = errors.New("store: style not found")

// Store reads and writes style records.
type Store struct {
	db    *gorm.DB
	cache *ristretto.Cache
	ttl   time.Duration
}

// New returns a Store backed by db. Documents read through Get stay cached
// for ttl.
func New(db *gorm.DB, ttl time.Duration) (*Store, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,     // number of keys to track frequency of
		MaxCost:     1 << 27, // maximum cost of cache (128MB of encoded documents)
		BufferItems: 64,      // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("store: init cache: %w", err)
	}
	return &Store{db: db, cache: cache, ttl: ttl}, nil
}

// Save stores doc under a new id.
func (s *Store) Save(name string, description *string, doc style.Document) (models.StyleRecord, error) {
	record, err := NewRecord(name, description, doc)
	if err != nil {
		return models.StyleRecord{}, err
	}
	if err := s.db.Create(&record).Error; err != nil {
		return models.StyleRecord{}, fmt.Errorf("store: save %q: %w", name, err)
	}
	s.remember(record.ID, doc, len(record.Document))
	return record, nil
}

// Get returns the document stored under id.
func (s *Store) Get(id string) (style.Document, error) {
	id = strings.TrimSpace(id)

	if cached, found := s.cache.Get(id); found {
		if doc, ok := cached.(style.Document); ok {
			return doc, nil
		}
	}

	if _, err := uuid.Parse(id); err != nil {
		return style.Document{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	var record models.StyleRecord
	err := s.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return style.Document{}, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return style.Document{}, fmt.Errorf("store: get %q: %w", id, err)
	}

	doc, err := DocumentOf(record)
	if err != nil {
		return style.Document{}, err
	}
	s.remember(id, doc, len(record.Document))
	return doc, nil
}

// List returns the stored records without their documents, newest first.
func (s *Store) List() ([]models.StyleRecord, error) {
	var records []models.StyleRecord
	err := s.db.Omit("document").Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return records, nil
}

// Exists reports whether a style named name is stored.
func (s *Store) Exists(name string) (bool, error) {
	var n int64
	if err := s.db.Model(&models.StyleRecord{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return false, fmt.Errorf("store: lookup %q: %w", name, err)
	}
	return n > 0, nil
}

// Close releases the cache.
func (s *Store) Close() {
	s.cache.Close()
}

func (s *Store) remember(id string, doc style.Document, cost int) {
	s.cache.SetWithTTL(id, doc, int64(cost), s.ttl)
	s.cache.Wait()
}

// NewRecord encodes doc into a record with a fresh id.
func NewRecord(name string, description *string, doc style.Document) (models.StyleRecord, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return models.StyleRecord{}, fmt.Errorf("store: encode %q: %w", name, err)
	}
	return models.StyleRecord{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Document:    b,
		LayerCount:  len(doc.LayerIDs()),
		SourceCount: len(doc.SourceNames()),
	}, nil
}

// DocumentOf decodes the document held by record.
func DocumentOf(record models.StyleRecord) (style.Document, error) {
	var doc style.Document
	if err := json.Unmarshal(record.Document, &doc); err != nil {
		return style.Document{}, fmt.Errorf("store: decode %q: %w", record.ID, err)
	}
	return doc, nil
}
