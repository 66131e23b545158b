package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/links"
	"github.com/myth3x/mythex-snapshare/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestUpdateVisibilityByNonOwner(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	rec, err := Registry.Register(context.Background(), links.Draft{
		OwnerID:    "h_vis_u1",
		StorageKey: "h_vis_u1/a.png",
		MimeType:   "image/png",
	})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"isPublic": true}`)
	c.Request, _ = http.NewRequest("PATCH", "/api/screenshots/"+rec.ID+"/visibility", body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: rec.ID}}
	c.Set("userId", "h_vis_intruder")
	c.Set("role", models.RoleUser)

	UpdateVisibility(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	got, err := Registry.Lookup(context.Background(), rec.ShortCode)
	assert.NoError(t, err)
	assert.False(t, got.IsPublic)
}

func TestUpdateVisibilityByOwner(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	rec, err := Registry.Register(context.Background(), links.Draft{
		OwnerID:    "h_vis_u2",
		StorageKey: "h_vis_u2/a.png",
		MimeType:   "image/png",
	})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"isPublic": true}`)
	c.Request, _ = http.NewRequest("PATCH", "/api/screenshots/"+rec.ID+"/visibility", body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: rec.ID}}
	c.Set("userId", "h_vis_u2")
	c.Set("role", models.RoleUser)

	UpdateVisibility(c)

	assert.Equal(t, http.StatusOK, w.Code)

	got, err := Registry.Lookup(context.Background(), rec.ShortCode)
	assert.NoError(t, err)
	assert.True(t, got.IsPublic)
}

func TestDeleteScreenshotCascadesToStorage(t *testing.T) {
	store := SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	rec, err := Registry.Register(context.Background(), links.Draft{
		OwnerID:    "h_del_u1",
		StorageKey: "h_del_u1/gone.png",
		MimeType:   "image/png",
	})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/screenshots/"+rec.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: rec.ID}}
	c.Set("userId", "h_del_u1")
	c.Set("role", models.RoleUser)

	DeleteScreenshot(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, store.deleted, "h_del_u1/gone.png")

	_, err = Registry.Lookup(context.Background(), rec.ShortCode)
	assert.ErrorIs(t, err, links.ErrNotFound)
}

func TestListScreenshotsFiltersByOwner(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	for _, owner := range []string{"h_list_u1", "h_list_u1", "h_list_u2"} {
		_, err := Registry.Register(context.Background(), links.Draft{
			OwnerID:      owner,
			StorageKey:   owner + "/x.png",
			OriginalName: "x.png",
			MimeType:     "image/png",
		})
		assert.NoError(t, err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/screenshots", nil)
	c.Set("userId", "h_list_u1")

	ListScreenshots(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Screenshots []struct {
			ID       string `json:"id"`
			ShortURL string `json:"shortUrl"`
		} `json:"screenshots"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Screenshots, 2)
	for _, s := range resp.Screenshots {
		assert.Contains(t, s.ShortURL, "https://pics.test/")
	}
}

func TestListScreenshotsRejectsBadMonth(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/screenshots?month=June", nil)
	c.Set("userId", "h_list_u3")

	ListScreenshots(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
