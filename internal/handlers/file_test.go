package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sodo-hospital/admin-api/internal/services"
)

func newFileTestRouter(t *testing.T, ttl time.Duration) *gin.Engine {
	t.Helper()

	storage, err := services.NewStorageService(t.TempDir(), "http://localhost:8080", ttl)
	require.NoError(t, err)
	handler := NewFileHandler(storage)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/files/upload-url", handler.GenerateUploadURL)
	r.GET("/api/files/download-url", handler.GetDownloadURL)
	r.PUT("/api/files/upload/:token", handler.Upload)
	r.GET("/api/files/content/:id", handler.Content)
	return r
}

// TestFileUpload_FullFlow: issue an upload URL, upload against it, then fetch
// the blob back through its download URL
func TestFileUpload_FullFlow(t *testing.T) {
	router := newFileTestRouter(t, time.Minute)

	// Issue upload URL
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/files/upload-url", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var issued struct {
		UploadURL string `json:"upload_url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issued))
	uploadPath := strings.TrimPrefix(issued.UploadURL, "http://localhost:8080")

	// Upload
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("PUT", uploadPath, strings.NewReader("license scan bytes")))
	require.Equal(t, http.StatusCreated, w.Code)

	var stored struct {
		StorageID string `json:"storage_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	require.NotEmpty(t, stored.StorageID)

	// Second upload on the same token is refused
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("PUT", uploadPath, strings.NewReader("again")))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Resolve and fetch
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/files/download-url?storage_id="+stored.StorageID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resolved struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	assert.Equal(t, "http://localhost:8080/api/files/content/"+stored.StorageID, resolved.URL)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/files/content/"+stored.StorageID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "license scan bytes", w.Body.String())
}

// TestGetDownloadURL_UnknownID answers a null URL, not an error
func TestGetDownloadURL_UnknownID(t *testing.T) {
	router := newFileTestRouter(t, time.Minute)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/files/download-url?storage_id=00000000-0000-0000-0000-000000000000", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url": null}`, w.Body.String())
}

// TestGetDownloadURL_MissingID is a caller error
func TestGetDownloadURL_MissingID(t *testing.T) {
	router := newFileTestRouter(t, time.Minute)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/files/download-url", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestUpload_ExpiredToken is refused
func TestUpload_ExpiredToken(t *testing.T) {
	router := newFileTestRouter(t, -time.Second)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/files/upload-url", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var issued struct {
		UploadURL string `json:"upload_url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issued))
	uploadPath := strings.TrimPrefix(issued.UploadURL, "http://localhost:8080")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("PUT", uploadPath, strings.NewReader("too late")))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
