// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/justyntemme/boky-t/internal/config"
	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/internal/nav"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Log *zap.Logger

	idx *corpus.Index

	start         time.Time
	restoreStdLog func()
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}

// Index loads the corpus from the configured directory once and returns
// the validated index
func (e *LocalEnv) Index() (*corpus.Index, error) {
	if e.idx != nil {
		return e.idx, nil
	}
	if e.Cfg == nil {
		return nil, fmt.Errorf("configuration is not loaded")
	}
	c, err := corpus.LoadDir(e.Cfg.Corpus.Dir)
	if err != nil {
		return nil, fmt.Errorf("unable to load corpus from %s: %w", e.Cfg.Corpus.Dir, err)
	}
	idx, err := corpus.NewIndex(c, e.Cfg.Classification(), e.Log)
	if err != nil {
		return nil, fmt.Errorf("corpus in %s is inconsistent: %w", e.Cfg.Corpus.Dir, err)
	}
	e.idx = idx
	return idx, nil
}

// Engine builds a navigation engine over the corpus; zoom changes are
// persisted to the configuration
func (e *LocalEnv) Engine(about string) (*nav.Engine, error) {
	idx, err := e.Index()
	if err != nil {
		return nil, err
	}
	return nav.NewEngine(idx, nav.Options{
		RootTitle: e.Cfg.Library.RootTitle,
		About:     about,
		Store:     e.Cfg,
		Log:       e.Log,
	})
}
