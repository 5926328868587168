package fluffytag

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ArtifactID is a unique identifier for a captured artifact.
// Uses prefixed random format (e.g., "art_6ByTSYmGzT2c").
type ArtifactID string

// Artifact is a completed tag captured from a stream, persisted by an
// ArtifactStorage backend.
type Artifact struct {
	// ID is the unique identifier for this artifact.
	ID ArtifactID `json:"id"`

	// SessionID groups artifacts captured from the same stream.
	SessionID string `json:"session_id,omitempty"`

	// Tag is the tag name the artifact was captured from.
	Tag string `json:"tag"`

	// Attributes are the tag's attributes at capture time.
	Attributes Attributes `json:"attributes,omitempty"`

	// Content is the tag's full body content.
	Content string `json:"content"`

	// Source identifies where the stream came from (e.g., a model name).
	Source string `json:"source,omitempty"`

	// CreatedAt is when the artifact was captured.
	CreatedAt time.Time `json:"created_at"`
}

// ArtifactQuery defines filters for listing artifacts.
type ArtifactQuery struct {
	// SessionID filters by capture session (empty matches all).
	SessionID string

	// Tag filters by tag name (empty matches all).
	Tag string

	// Since filters to artifacts captured at or after this time.
	Since time.Time

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip (for pagination).
	Offset int
}

// ArtifactStorage is the interface for pluggable artifact storage backends.
// Implementations must be safe for concurrent use.
type ArtifactStorage interface {
	// Save stores an artifact. The artifact's ID and CreatedAt fields are
	// set by the storage implementation when empty.
	Save(ctx context.Context, artifact *Artifact) error

	// Get retrieves an artifact by ID.
	// Returns a storage error if the ID doesn't exist.
	Get(ctx context.Context, id ArtifactID) (*Artifact, error)

	// List returns artifacts matching the query, newest first.
	List(ctx context.Context, query *ArtifactQuery) ([]*Artifact, error)

	// Delete removes an artifact by ID.
	// Returns a storage error if the ID doesn't exist.
	Delete(ctx context.Context, id ArtifactID) error

	// Close releases any resources held by the storage.
	// After Close, the storage should not be used.
	Close() error
}

// ArtifactStorageDriver is a factory for creating storage instances.
// Drivers register themselves during init().
type ArtifactStorageDriver interface {
	// Open creates a new storage instance with the given connection string.
	// The format of the connection string is driver-specific.
	Open(connectionString string) (ArtifactStorage, error)
}

// Storage driver registry
var (
	artifactDriversMu sync.RWMutex
	artifactDrivers   = make(map[string]ArtifactStorageDriver)
)

// Storage driver names
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)

// RegisterArtifactDriver registers a storage driver by name.
// This is typically called from a driver's init() function.
// Panics if a driver with the same name is already registered.
func RegisterArtifactDriver(name string, driver ArtifactStorageDriver) {
	artifactDriversMu.Lock()
	defer artifactDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := artifactDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	artifactDrivers[name] = driver
}

// OpenArtifactStorage opens a storage connection using the named driver.
// The connection string format is driver-specific.
//
// Example:
//
//	store, err := fluffytag.OpenArtifactStorage("memory", "")
//	store, err := fluffytag.OpenArtifactStorage("filesystem", "/var/lib/artifacts")
func OpenArtifactStorage(driverName, connectionString string) (ArtifactStorage, error) {
	artifactDriversMu.RLock()
	driver, ok := artifactDrivers[driverName]
	artifactDriversMu.RUnlock()

	if !ok {
		return nil, &StorageError{Message: ErrMsgUnknownStorageDriver, Name: driverName}
	}
	return driver.Open(connectionString)
}

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg += ": " + e.Name
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageClosedError creates an error for operations on closed storage.
func NewStorageClosedError() error {
	return &StorageError{Message: ErrMsgStorageClosed}
}

// NewArtifactNotFoundError creates an error for a missing artifact.
func NewArtifactNotFoundError(id ArtifactID) error {
	return &StorageError{Message: ErrMsgArtifactNotFound, Name: string(id)}
}

// Storage error message constants
const (
	ErrMsgNilStorageDriver        = "storage driver cannot be nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgUnknownStorageDriver    = "unknown storage driver"
	ErrMsgStorageClosed           = "storage is closed"
	ErrMsgArtifactNotFound        = "artifact not found"
	ErrMsgInvalidArtifactTag      = "artifact tag cannot be empty"
)

// generateArtifactID generates a unique artifact ID.
func generateArtifactID() ArtifactID {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	id := base64.RawURLEncoding.EncodeToString(b)
	return ArtifactID("art_" + id)
}

// NewSessionID returns a fresh session identifier for grouping the
// artifacts of one stream.
func NewSessionID() string {
	return uuid.NewString()
}

// matchesQuery reports whether an artifact passes the query filters
// (excluding limit/offset, which are applied by the backend).
func (q *ArtifactQuery) matches(a *Artifact) bool {
	if q == nil {
		return true
	}
	if q.SessionID != "" && a.SessionID != q.SessionID {
		return false
	}
	if q.Tag != "" && a.Tag != q.Tag {
		return false
	}
	if !q.Since.IsZero() && a.CreatedAt.Before(q.Since) {
		return false
	}
	return true
}

// copyArtifact returns a defensive copy so callers cannot mutate stored
// state.
func copyArtifact(a *Artifact) *Artifact {
	out := *a
	if a.Attributes != nil {
		out.Attributes = make(Attributes, len(a.Attributes))
		for k, v := range a.Attributes {
			out.Attributes[k] = v
		}
	}
	return &out
}
