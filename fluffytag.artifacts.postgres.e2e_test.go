//go:build integration

package fluffytag

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer creates an ephemeral PostgreSQL container for testing.
func setupPostgresContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("fluffytag_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	cleanup := func() {
		if container != nil {
			_ = container.Terminate(ctx)
		}
	}
	return connStr, cleanup
}

func TestPostgres_E2E_StorageContract(t *testing.T) {
	connStr, cleanup := setupPostgresContainer(t)
	defer cleanup()

	// Each storage gets its own table so the shared contract subtests are
	// isolated from each other.
	var tableSeq int
	runArtifactStorageTests(t, func(t *testing.T) ArtifactStorage {
		tableSeq++
		storage, err := NewPostgresStorage(PostgresConfig{
			ConnectionString: connStr,
			TablePrefix:      fmt.Sprintf("e2e_%d_", tableSeq),
			AutoMigrate:      true,
			QueryTimeout:     30 * time.Second,
		})
		require.NoError(t, err, "failed to create postgres storage")
		return storage
	})
}

func TestPostgres_E2E_Migrations(t *testing.T) {
	connStr, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("AutoMigrate", func(t *testing.T) {
		storage, err := NewPostgresStorage(PostgresConfig{
			ConnectionString: connStr,
			AutoMigrate:      true,
		})
		require.NoError(t, err)
		defer storage.Close()

		err = storage.Save(ctx, &Artifact{Tag: "code", Content: "migrated"})
		require.NoError(t, err)
	})

	t.Run("IdempotentRerun", func(t *testing.T) {
		storage, err := NewPostgresStorage(PostgresConfig{
			ConnectionString: connStr,
			AutoMigrate:      true,
		})
		require.NoError(t, err)
		defer storage.Close()

		// Data from the previous instance is still there.
		got, err := storage.List(ctx, &ArtifactQuery{Tag: "code"})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("ManualMigration", func(t *testing.T) {
		storage, err := NewPostgresStorage(PostgresConfig{
			ConnectionString: connStr,
			TablePrefix:      "manual_",
			AutoMigrate:      false,
		})
		require.NoError(t, err)
		defer storage.Close()

		require.NoError(t, storage.RunMigrations(ctx))
		require.NoError(t, storage.RunMigrations(ctx))

		err = storage.Save(ctx, &Artifact{Tag: "code", Content: "x"})
		require.NoError(t, err)
	})
}

func TestPostgres_E2E_ConcurrentSaves(t *testing.T) {
	connStr, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	storage, err := NewPostgresStorage(PostgresConfig{
		ConnectionString: connStr,
		AutoMigrate:      true,
	})
	require.NoError(t, err)
	defer storage.Close()

	const numGoroutines = 50
	var wg sync.WaitGroup
	errChan := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			artifact := &Artifact{
				SessionID: "concurrent",
				Tag:       "code",
				Content:   fmt.Sprintf("content from goroutine %d", id),
			}
			if err := storage.Save(ctx, artifact); err != nil {
				errChan <- err
			}
		}(i)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	assert.Empty(t, errs, "expected no errors from concurrent saves")

	got, err := storage.List(ctx, &ArtifactQuery{SessionID: "concurrent"})
	require.NoError(t, err)
	assert.Len(t, got, numGoroutines)
}

func TestPostgres_E2E_DriverRegistry(t *testing.T) {
	connStr, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	storage, err := OpenArtifactStorage(StorageDriverNamePostgres, connStr)
	require.NoError(t, err)
	defer storage.Close()

	a := &Artifact{Tag: "code", Content: "via driver"}
	require.NoError(t, storage.Save(ctx, a))

	got, err := storage.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "via driver", got.Content)
}

func TestPostgres_E2E_RecorderIntegration(t *testing.T) {
	connStr, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	storage, err := NewPostgresStorage(PostgresConfig{
		ConnectionString: connStr,
		AutoMigrate:      true,
	})
	require.NoError(t, err)
	defer storage.Close()

	p := NewProcessor()
	r, err := NewRecorder(p, storage, RecorderConfig{
		Tags:   []string{"artifact"},
		Source: "e2e",
	})
	require.NoError(t, err)

	p.ProcessString(`<artifact id="a1" lang="go">package main</artifact>`)

	artifacts, err := r.Artifacts(ctx)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "package main", artifacts[0].Content)
	assert.Equal(t, Attributes{"id": "a1", "lang": "go"}, artifacts[0].Attributes)
	assert.Equal(t, "e2e", artifacts[0].Source)
}

func TestPostgres_E2E_EdgeCases(t *testing.T) {
	connStr, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	storage, err := NewPostgresStorage(PostgresConfig{
		ConnectionString: connStr,
		TablePrefix:      "edge_",
		AutoMigrate:      true,
	})
	require.NoError(t, err)
	defer storage.Close()

	t.Run("UnicodeContent", func(t *testing.T) {
		a := &Artifact{
			Tag:        "note",
			Content:    "Hello 世界! Привет мир! 🎉",
			Attributes: Attributes{"title": "こんにちは"},
		}
		require.NoError(t, storage.Save(ctx, a))

		got, err := storage.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Contains(t, got.Content, "世界")
		assert.Equal(t, "こんにちは", got.Attributes["title"])
	})

	t.Run("LargeContent", func(t *testing.T) {
		a := &Artifact{Tag: "code", Content: strings.Repeat("x", 1<<20)}
		require.NoError(t, storage.Save(ctx, a))

		got, err := storage.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Len(t, got.Content, 1<<20)
	})

	t.Run("NilAttributes", func(t *testing.T) {
		a := &Artifact{Tag: "note", Content: "bare"}
		require.NoError(t, storage.Save(ctx, a))

		got, err := storage.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Attributes)
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := storage.Get(cancelCtx, "any-id")
		require.Error(t, err)
	})
}
