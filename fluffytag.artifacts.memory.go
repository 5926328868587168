package fluffytag

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of ArtifactStorage.
// It is primarily intended for testing and development.
// All data is lost when the process terminates.
type MemoryStorage struct {
	mu        sync.RWMutex
	artifacts map[ArtifactID]*Artifact
	order     []ArtifactID // insertion order, oldest first
	closed    bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterArtifactDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage instance.
// The connection string is ignored for memory storage.
func (d *MemoryStorageDriver) Open(connectionString string) (ArtifactStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory artifact storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		artifacts: make(map[ArtifactID]*Artifact),
	}
}

// Save stores an artifact, assigning ID and CreatedAt when empty.
func (s *MemoryStorage) Save(ctx context.Context, artifact *Artifact) error {
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

	s.artifacts[artifact.ID] = copyArtifact(artifact)
	s.order = append(s.order, artifact.ID)
	return nil
}

// Get retrieves an artifact by ID.
func (s *MemoryStorage) Get(ctx context.Context, id ArtifactID) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	artifact, ok := s.artifacts[id]
	if !ok {
		return nil, NewArtifactNotFoundError(id)
	}
	return copyArtifact(artifact), nil
}

// List returns artifacts matching the query, newest first.
func (s *MemoryStorage) List(ctx context.Context, query *ArtifactQuery) ([]*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	var matched []*Artifact
	for _, id := range s.order {
		artifact, ok := s.artifacts[id]
		if !ok {
			continue
		}
		if query.matches(artifact) {
			matched = append(matched, artifact)
		}
	}

	// Newest first; insertion order breaks ties deterministically.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	matched = applyPagination(matched, query)

	out := make([]*Artifact, len(matched))
	for i, artifact := range matched {
		out[i] = copyArtifact(artifact)
	}
	return out, nil
}

// Delete removes an artifact by ID.
func (s *MemoryStorage) Delete(ctx context.Context, id ArtifactID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.artifacts[id]; !ok {
		return NewArtifactNotFoundError(id)
	}
	delete(s.artifacts, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close marks the storage as closed.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// applyPagination applies query offset and limit to a result slice.
func applyPagination(artifacts []*Artifact, query *ArtifactQuery) []*Artifact {
	if query == nil {
		return artifacts
	}
	if query.Offset > 0 {
		if query.Offset >= len(artifacts) {
			return nil
		}
		artifacts = artifacts[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(artifacts) {
		artifacts = artifacts[:query.Limit]
	}
	return artifacts
}
