package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StorageService is the blob-storage facility behind the file URL handlers.
// Uploads are authorized with short-lived single-use tokens; stored blobs are
// addressed by opaque uuid storage ids.
type StorageService struct {
	dir       string
	baseURL   string
	uploadTTL time.Duration

	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
}

// NewStorageService creates the storage directory if needed.
func NewStorageService(dir, baseURL string, uploadTTL time.Duration) (*StorageService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &StorageService{
		dir:       dir,
		baseURL:   baseURL,
		uploadTTL: uploadTTL,
		tokens:    make(map[string]time.Time),
	}, nil
}

// GenerateUploadURL issues a short-lived URL a client can PUT one file to.
func (s *StorageService) GenerateUploadURL() string {
	token := uuid.NewString()

	s.mu.Lock()
	s.tokens[token] = time.Now().Add(s.uploadTTL)
	s.mu.Unlock()

	return fmt.Sprintf("%s/api/files/upload/%s", s.baseURL, token)
}

// ConsumeUploadToken invalidates the token and reports whether it was still
// valid. Each token admits exactly one upload.
func (s *StorageService) ConsumeUploadToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.tokens[token]
	if !ok {
		return false
	}
	delete(s.tokens, token)

	return time.Now().Before(expiry)
}

// Save stores the blob and returns its storage id.
func (s *StorageService) Save(r io.Reader) (string, error) {
	storageID := uuid.NewString()

	f, err := os.Create(filepath.Join(s.dir, storageID))
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	return storageID, nil
}

// GetDownloadURL returns a URL for a stored blob, or false when the storage
// id is unknown. Unknown ids are not an error; absence is an expected answer.
func (s *StorageService) GetDownloadURL(storageID string) (string, bool) {
	if _, ok := s.Path(storageID); !ok {
		return "", false
	}
	return fmt.Sprintf("%s/api/files/content/%s", s.baseURL, storageID), true
}

// Path resolves a storage id to its on-disk path. Ids must be uuids, which
// also keeps path traversal out.
func (s *StorageService) Path(storageID string) (string, bool) {
	if _, err := uuid.Parse(storageID); err != nil {
		return "", false
	}

	path := filepath.Join(s.dir, storageID)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}

	return path, true
}
