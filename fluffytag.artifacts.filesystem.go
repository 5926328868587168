package fluffytag

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FilesystemStorage persists artifacts as one JSON file per artifact under
// a root directory. Suitable for local capture and small deployments; for
// multi-process setups use the postgres backend.
type FilesystemStorage struct {
	root   string
	mu     sync.RWMutex
	closed bool
}

// FilesystemStorageDriver is the driver for creating FilesystemStorage
// instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterArtifactDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a FilesystemStorage rooted at the connection string path.
func (d *FilesystemStorageDriver) Open(connectionString string) (ArtifactStorage, error) {
	return NewFilesystemStorage(connectionString)
}

// Filesystem storage constants
const (
	artifactFileExt  = ".json"
	artifactFileMode = 0o644
	artifactDirMode  = 0o755
)

// Filesystem storage error messages
const (
	ErrMsgInvalidStorageRoot = "storage root cannot be empty"
	ErrMsgCreateStorageDir   = "failed to create storage directory"
	ErrMsgReadStorageDir     = "failed to read storage directory"
	ErrMsgMarshalArtifact    = "failed to marshal artifact"
	ErrMsgUnmarshalArtifact  = "failed to unmarshal artifact"
	ErrMsgWriteArtifact      = "failed to write artifact file"
	ErrMsgReadArtifact       = "failed to read artifact file"
	ErrMsgDeleteArtifact     = "failed to delete artifact file"
)

// NewFilesystemStorage creates a filesystem artifact storage rooted at root,
// creating the directory if needed.
func NewFilesystemStorage(root string) (*FilesystemStorage, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}
	if err := os.MkdirAll(root, artifactDirMode); err != nil {
		return nil, &StorageError{Message: ErrMsgCreateStorageDir, Name: root, Cause: err}
	}
	return &FilesystemStorage{root: root}, nil
}

// Save stores an artifact, assigning ID and CreatedAt when empty.
func (s *FilesystemStorage) Save(ctx context.Context, artifact *Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if artifact.Tag == "" {
		return &StorageError{Message: ErrMsgInvalidArtifactTag}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if artifact.ID == "" {
		artifact.ID = generateArtifactID()
	}
	if artifact.CreatedAt.IsZero() {
		artifact.CreatedAt = time.Now()
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return &StorageError{Message: ErrMsgMarshalArtifact, Name: string(artifact.ID), Cause: err}
	}

	path := s.artifactPath(artifact.ID)
	if err := os.WriteFile(path, data, artifactFileMode); err != nil {
		return &StorageError{Message: ErrMsgWriteArtifact, Name: path, Cause: err}
	}
	return nil
}

// Get retrieves an artifact by ID.
func (s *FilesystemStorage) Get(ctx context.Context, id ArtifactID) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}
	return s.readArtifact(id)
}

// List returns artifacts matching the query, newest first.
func (s *FilesystemStorage) List(ctx context.Context, query *ArtifactQuery) ([]*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgReadStorageDir, Name: s.root, Cause: err}
	}

	var matched []*Artifact
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), artifactFileExt) {
			continue
		}
		id := ArtifactID(strings.TrimSuffix(entry.Name(), artifactFileExt))
		artifact, err := s.readArtifact(id)
		if err != nil {
			// Skip unreadable entries rather than failing the whole list.
			continue
		}
		if query.matches(artifact) {
			matched = append(matched, artifact)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return applyPagination(matched, query), nil
}

// Delete removes an artifact by ID.
func (s *FilesystemStorage) Delete(ctx context.Context, id ArtifactID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	path := s.artifactPath(id)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewArtifactNotFoundError(id)
		}
		return &StorageError{Message: ErrMsgDeleteArtifact, Name: path, Cause: err}
	}
	return nil
}

// Close marks the storage as closed.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Root returns the storage root directory.
func (s *FilesystemStorage) Root() string {
	return s.root
}

func (s *FilesystemStorage) artifactPath(id ArtifactID) string {
	return filepath.Join(s.root, string(id)+artifactFileExt)
}

func (s *FilesystemStorage) readArtifact(id ArtifactID) (*Artifact, error) {
	path := s.artifactPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewArtifactNotFoundError(id)
		}
		return nil, &StorageError{Message: ErrMsgReadArtifact, Name: path, Cause: err}
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, &StorageError{Message: ErrMsgUnmarshalArtifact, Name: path, Cause: err}
	}
	return &artifact, nil
}
