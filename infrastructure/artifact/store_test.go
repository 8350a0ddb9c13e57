package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightlabs/sitesync/domain/corpus"
)

func testArtifact(content string) corpus.Artifact {
	return corpus.NewArtifact("site-latest", "townhall", time.Now(), []byte(content))
}

func staticGenerator(content string) Generator {
	return GeneratorFunc(func(context.Context) (corpus.Artifact, error) {
		return testArtifact(content), nil
	})
}

func TestResolvePathPrecedence(t *testing.T) {
	override := NewStore("/tmp/custom.txt", true, "/data", "site-latest", nil, nil)
	assert.Equal(t, "/tmp/custom.txt", override.ResolvePath())

	ephemeral := NewStore("", true, "/data", "site-latest", nil, nil)
	assert.Equal(t, filepath.Join(os.TempDir(), "sitesync", "site-latest.txt"), ephemeral.ResolvePath())

	persistent := NewStore("", false, "/data", "site-latest", nil, nil)
	assert.Equal(t, filepath.Join("/data", "site-latest.txt"), persistent.ResolvePath())
}

func TestEnsureExistsSkipsPresentArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site-latest.txt")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o644))

	called := false
	store := NewStore("", false, "", "site-latest", GeneratorFunc(func(context.Context) (corpus.Artifact, error) {
		called = true
		return testArtifact("fresh"), nil
	}), nil)

	require.NoError(t, store.EnsureExists(context.Background(), path))
	assert.False(t, called)

	data, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestEnsureExistsRegenerates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "site-latest.txt")
	store := NewStore("", false, "", "site-latest", staticGenerator("generated content"), nil)

	require.NoError(t, store.EnsureExists(context.Background(), path))

	data, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "generated content", string(data))
}

func TestEnsureExistsTreatsEmptyFileAsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site-latest.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	store := NewStore("", false, "", "site-latest", staticGenerator("regenerated"), nil)
	require.NoError(t, store.EnsureExists(context.Background(), path))

	data, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "regenerated", string(data))
}

func TestEnsureExistsGeneratorFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site-latest.txt")
	store := NewStore("", false, "", "site-latest", GeneratorFunc(func(context.Context) (corpus.Artifact, error) {
		return corpus.Artifact{}, errors.New("scrape failed")
	}), nil)

	err := store.EnsureExists(context.Background(), path)
	require.ErrorIs(t, err, ErrArtifactGeneration)
}

func TestEnsureExistsEmptyGeneration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site-latest.txt")
	store := NewStore("", false, "", "site-latest", staticGenerator(""), nil)

	err := store.EnsureExists(context.Background(), path)
	require.ErrorIs(t, err, ErrArtifactGeneration)
}

func TestWriteRejectsEmptyArtifact(t *testing.T) {
	store := NewStore("", false, "", "site-latest", nil, nil)
	err := store.Write(testArtifact(""), filepath.Join(t.TempDir(), "a.txt"))
	require.Error(t, err)
}
