package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/app"
	"github.com/abhisek/verbiz/internal/config"
	"github.com/abhisek/verbiz/internal/logging"
	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/progress"
	"github.com/abhisek/verbiz/internal/quiz"
	"github.com/abhisek/verbiz/internal/screen"
	"github.com/abhisek/verbiz/internal/settings"
	"github.com/abhisek/verbiz/internal/store"
	"github.com/abhisek/verbiz/internal/vocab"
)

// deps holds everything a command needs, opened from the flags and config.
type deps struct {
	cfg    *config.Config
	dbPath string
	log    *logrus.Logger
	store  *store.Store

	registry *vocab.Registry
	configs  *vocab.ConfigStore
	mastery  *mastery.Tracker
	settings *settings.Provider
	progress *progress.Tracker

	closers []io.Closer
}

// bootstrap loads config, opens the log file and the store, and loads the
// trackers. Call Close when done.
func bootstrap(cmd *cobra.Command) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}

	d := &deps{cfg: cfg}
	d.dbPath, err = resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logger, closer, err := logging.NewFile(cfg.Log, cfg.LogFile(d.dbPath))
	if err != nil {
		return nil, err
	}
	d.log = logger
	d.closers = append(d.closers, closer)

	d.store, err = store.Open(d.dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.closers = append(d.closers, d.store)

	d.registry, err = vocab.NewRegistry(cfg.Datasets.Dir, d.log)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	d.configs = vocab.NewConfigStore(d.store, d.log)
	d.mastery = mastery.Load(ctx, d.store, d.log)
	d.settings = settings.NewProvider(ctx, d.store, d.log)
	d.progress = progress.Load(ctx, d.store, d.log, nowFunc())

	d.log.WithFields(logrus.Fields{
		"db":       d.dbPath,
		"datasets": len(d.registry.Names()),
	}).Debug("bootstrap complete")
	return d, nil
}

// Close releases the store and the log file in reverse order.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i].Close()
	}
	d.closers = nil
}

// env wires the test engine and returns the screen environment.
func (d *deps) env(ctx context.Context, effects quiz.Effects) *screen.Env {
	provider := vocab.NewProvider(d.registry, d.mastery)
	engine := quiz.New(quiz.Deps{
		KV:       d.store,
		Datasets: provider,
		Settings: d.settings,
		Mastery:  d.mastery,
		Rewards:  d.progress,
		Effects:  effects,
		Log:      d.log,
	}, quiz.WithAutoAdvanceDelay(d.cfg.UI.AutoAdvanceDelay))

	return &screen.Env{
		Ctx:      ctx,
		Engine:   engine,
		Registry: d.registry,
		Datasets: provider,
		Configs:  d.configs,
		Progress: d.progress,
		Mastery:  d.mastery,
		Settings: d.settings,
		Log:      d.log,
		Debounce: d.cfg.UI.Debounce,
	}
}

// resolveDataset checks a --dataset value against the registry. An empty
// name is returned unchanged.
func (d *deps) resolveDataset(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if _, err := d.registry.Get(name); err != nil {
		return "", err
	}
	return name, nil
}

// runApp launches the TUI, optionally straight into a test.
func runApp(cmd *cobra.Command, dataset string, startTest bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	dataset, err = d.resolveDataset(dataset)
	if err != nil {
		return err
	}

	var bell io.Writer
	if d.settings.Settings().SoundEffects {
		bell = os.Stderr
	}
	effects := app.NewEffects(bell, d.log)

	return app.Run(ctx, app.Options{
		Env:       d.env(ctx, effects),
		Effects:   effects,
		Dataset:   dataset,
		StartTest: startTest,
		Splash:    d.cfg.UI.Splash && !startTest,
	})
}
