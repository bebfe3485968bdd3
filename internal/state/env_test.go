package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/boky-t/internal/config"
	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/internal/nav"
)

func writeCorpus(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0600))
	}
}

func TestEnvFromContext(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	require.NotNil(t, env)
	assert.Same(t, env, EnvFromContext(ctx))
	assert.GreaterOrEqual(t, env.Uptime().Nanoseconds(), int64(0))

	assert.Panics(t, func() { EnvFromContext(context.Background()) })
}

func TestIndexNeedsConfig(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	_, err := env.Index()
	assert.Error(t, err)
}

func TestIndexAndEngine(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{
		corpus.BooksFile:     `[{"id": 1, "cat_name": "Vavaka"}]`,
		corpus.ChaptersFile:  `[{"id": 10, "book_id": 1, "chp_title": "Maraina"}]`,
		corpus.TitlesFile:    `[{"id": 100, "chapter_id": 10, "text": "Vavaka maraina", "number": null}]`,
		corpus.FragmentsFile: `[{"id_title": 100, "ct_lyrics": "<p>Ry Raiko</p>", "ct_page_number": null}]`,
	})

	env := EnvFromContext(ContextWithEnv(context.Background()))
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	cfg.Corpus.Dir = dir
	env.Cfg = cfg

	idx, err := env.Index()
	require.NoError(t, err)
	require.Len(t, idx.Books(), 1)

	again, err := env.Index()
	require.NoError(t, err)
	assert.Same(t, idx, again)

	e, err := env.Engine("<p>about</p>")
	require.NoError(t, err)
	assert.Equal(t, cfg.Library.RootTitle, e.Screen().Header.Title)

	s, err := e.About()
	require.NoError(t, err)
	assert.Equal(t, nav.ViewAbout, s.Route.Kind)
}

func TestIndexReportsInconsistentCorpus(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{
		corpus.BooksFile:     `[{"id": 1, "cat_name": "Vavaka"}]`,
		corpus.ChaptersFile:  `[{"id": 10, "book_id": 2, "chp_title": "Maraina"}]`,
		corpus.TitlesFile:    `[]`,
		corpus.FragmentsFile: `[]`,
	})

	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Cfg = config.Default()
	env.Cfg.Corpus.Dir = dir

	_, err := env.Index()
	require.Error(t, err)
	assert.ErrorIs(t, err, corpus.ErrIntegrity)
}
