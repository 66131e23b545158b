package handlers

import (
	"context"
	"io"
	"testing"

	"github.com/myth3x/mythex-snapshare/internal/config"
	"github.com/myth3x/mythex-snapshare/internal/database"
	"github.com/myth3x/mythex-snapshare/internal/links"
	"github.com/myth3x/mythex-snapshare/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeStore records calls instead of talking to R2.
type fakeStore struct {
	put     []string
	deleted []string
}

func (f *fakeStore) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	f.put = append(f.put, key)
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

// SetupTestDB initializes an in-memory SQLite DB and wires the handler
// package against it with a fake object store.
func SetupTestDB(t *testing.T) *fakeStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	database.DB = db
	if err := db.AutoMigrate(&models.User{}, &models.Screenshot{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	config.AppConfig = &config.Config{
		JWTSecret:      "test-secret",
		PublicBaseURL:  "https://pics.test",
		MaxUploadBytes: 10 << 20,
		DailyUploadCap: 100,
		AllowSignup:    true,
	}

	store := &fakeStore{}
	reg := links.NewRegistry(db)
	Init(reg, links.NewResolver(reg, store), store)
	return store
}
