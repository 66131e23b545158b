package links

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/myth3x/mythex-snapshare/internal/models"
	"github.com/myth3x/mythex-snapshare/internal/shortcode"
	"gorm.io/gorm"
)

// maxCodeRetries bounds regeneration after a short-code collision. With a
// 62^7 code space and tens of thousands of rows, exhausting this means
// the generator is broken, not that the space filled up.
const maxCodeRetries = 5

const cacheTTL = time.Minute

// Draft carries everything needed to register an upload except the short
// code, which the registry mints itself. Register must only be called
// after the bytes are durably stored under StorageKey.
type Draft struct {
	OwnerID      string
	StorageKey   string
	OriginalName string
	MimeType     string
	ByteSize     int64
	IsPublic     bool
}

// Cache is an optional read-through cache for code lookups. Implemented
// by the Redis layer; nil disables caching.
type Cache interface {
	Get(key string, dest interface{}) error
	Set(key string, value interface{}, ttl time.Duration) error
	Delete(keys ...string) error
}

// Registry is the durable code -> screenshot mapping. Uniqueness is
// enforced by the short_code unique index, not application locking, so
// any number of instances can register concurrently.
type Registry struct {
	db       *gorm.DB
	generate func() string
	cache    Cache
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db, generate: shortcode.Generate}
}

// WithGenerator swaps the code generator. Tests use it to force
// collisions.
func (r *Registry) WithGenerator(gen func() string) *Registry {
	r.generate = gen
	return r
}

// WithCache enables read-through caching of code lookups.
func (r *Registry) WithCache(c Cache) *Registry {
	r.cache = c
	return r
}

// Register persists a new record under a freshly generated short code.
// A duplicate-code insert is retried with a new code up to maxCodeRetries
// times, then fails with ErrCodeSpaceExhausted. The insert is a single
// row write, so a failed attempt is never visible to Lookup.
func (r *Registry) Register(ctx context.Context, draft Draft) (*models.Screenshot, error) {
	if draft.OwnerID == "" || draft.StorageKey == "" {
		return nil, errors.New("links: draft requires owner and storage key")
	}

	for attempt := 0; attempt <= maxCodeRetries; attempt++ {
		rec := &models.Screenshot{
			ID:           uuid.New().String(),
			OwnerID:      draft.OwnerID,
			StorageKey:   draft.StorageKey,
			OriginalName: draft.OriginalName,
			MimeType:     draft.MimeType,
			ByteSize:     draft.ByteSize,
			ShortCode:    r.generate(),
			IsPublic:     draft.IsPublic,
			CreatedAt:    time.Now(),
		}

		err := r.db.WithContext(ctx).Create(rec).Error
		if err == nil {
			return rec, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		// Code collision: generate a fresh one and try again.
	}

	return nil, ErrCodeSpaceExhausted
}

// Lookup returns the record for a short code. Pure read, no side effects.
func (r *Registry) Lookup(ctx context.Context, code string) (*models.Screenshot, error) {
	if r.cache != nil {
		var cached models.Screenshot
		if err := r.cache.Get(codeKey(code), &cached); err == nil && cached.ID != "" {
			return &cached, nil
		}
	}

	var rec models.Screenshot
	err := r.db.WithContext(ctx).Where("short_code = ?", code).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.Set(codeKey(code), &rec, cacheTTL)
	}
	return &rec, nil
}

// Get returns the record by primary id.
func (r *Registry) Get(ctx context.Context, id string) (*models.Screenshot, error) {
	var rec models.Screenshot
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SetVisibility flips the public flag. Owner-only: admins manage
// accounts, not other people's link visibility.
func (r *Registry) SetVisibility(ctx context.Context, id, callerID string, isPublic bool) (*models.Screenshot, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.OwnerID != callerID {
		return nil, ErrUnauthorized
	}

	err = r.db.WithContext(ctx).Model(&models.Screenshot{}).
		Where("id = ? AND owner_id = ?", id, callerID).
		Update("is_public", isPublic).Error
	if err != nil {
		return nil, err
	}
	rec.IsPublic = isPublic

	r.invalidate(rec.ShortCode)
	return rec, nil
}

// Delete removes the record; owner or admin. Deleting an id that does
// not exist returns ErrNotFound rather than succeeding silently, so the
// HTTP layer can answer 404 consistently. The caller is responsible for
// removing the stored bytes afterwards (the returned record carries the
// storage key).
func (r *Registry) Delete(ctx context.Context, id string, req Requester) (*models.Screenshot, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.OwnerID != req.ID && !req.Admin() {
		return nil, ErrUnauthorized
	}

	if err := r.db.WithContext(ctx).Delete(&models.Screenshot{}, "id = ?", id).Error; err != nil {
		return nil, err
	}

	r.invalidate(rec.ShortCode)
	return rec, nil
}

// ListForOwner returns the owner's records created inside [from, to),
// newest first. A non-empty search pattern (pre-escaped LIKE pattern)
// filters on the original file name or storage key, matching the old
// dashboard behavior.
func (r *Registry) ListForOwner(ctx context.Context, ownerID string, from, to time.Time, search string) ([]models.Screenshot, error) {
	q := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC")

	if search != "" {
		q = q.Where("LOWER(original_name) LIKE LOWER(?) OR LOWER(storage_key) LIKE LOWER(?)", search, search)
	}

	var recs []models.Screenshot
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// ListAllForOwner returns every record of one owner. Used when an
// account is deleted and its objects need cleaning up.
func (r *Registry) ListAllForOwner(ctx context.Context, ownerID string) ([]models.Screenshot, error) {
	var recs []models.Screenshot
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// countView bumps the view counter via an in-place increment and returns
// the stored value. Never read-modify-write: concurrent resolves across
// instances must not lose updates.
func (r *Registry) countView(ctx context.Context, id string) (int64, error) {
	err := r.db.WithContext(ctx).Model(&models.Screenshot{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(&models.Screenshot{}).
		Select("view_count").
		Where("id = ?", id).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Registry) invalidate(code string) {
	if r.cache != nil {
		_ = r.cache.Delete(codeKey(code))
	}
}

func codeKey(code string) string {
	return "link:" + code
}

// isUniqueViolation recognizes duplicate-key errors across the drivers
// we run on: pgx via gorm's translation, lib/pq, and sqlite in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
