package vocab

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/verbiz/internal/logging"
	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/store"
)

// Storage keys for dataset selection state.
const (
	KeyDatasetConfigs = "datasetConfigs"
	KeyLastDataset    = "lastDataset"
)

// DatasetConfig remembers the test category and direction per dataset.
type DatasetConfig struct {
	Category  mastery.Category `json:"category"`
	IsReverse bool             `json:"isReverse"`
}

// DefaultDatasetConfig is used for datasets never opened before.
func DefaultDatasetConfig() DatasetConfig {
	return DatasetConfig{Category: mastery.CategoryAll}
}

// ConfigStore persists dataset configs and the last opened dataset.
type ConfigStore struct {
	kv  store.KV
	log logrus.FieldLogger
}

// NewConfigStore returns a ConfigStore backed by kv.
func NewConfigStore(kv store.KV, log logrus.FieldLogger) *ConfigStore {
	return &ConfigStore{kv: kv, log: logging.OrDiscard(log)}
}

func (c *ConfigStore) all(ctx context.Context) map[string]DatasetConfig {
	configs := make(map[string]DatasetConfig)
	if _, err := store.GetJSON(ctx, c.kv, KeyDatasetConfigs, &configs); err != nil {
		c.log.WithError(err).WithField("key", KeyDatasetConfigs).Warn("dataset configs unreadable")
		return make(map[string]DatasetConfig)
	}
	return configs
}

// Get returns the config for dataset. Unknown categories fall back to all.
func (c *ConfigStore) Get(ctx context.Context, dataset string) DatasetConfig {
	cfg, ok := c.all(ctx)[dataset]
	if !ok {
		return DefaultDatasetConfig()
	}
	if _, err := mastery.ParseCategory(string(cfg.Category)); err != nil {
		cfg.Category = mastery.CategoryAll
	}
	return cfg
}

// Save stores cfg for dataset.
func (c *ConfigStore) Save(ctx context.Context, dataset string, cfg DatasetConfig) {
	configs := c.all(ctx)
	configs[dataset] = cfg
	if err := store.SetJSON(ctx, c.kv, KeyDatasetConfigs, configs); err != nil {
		c.log.WithError(err).WithField("key", KeyDatasetConfigs).Warn("persist dataset config failed")
	}
}

// LastDataset returns the most recently opened dataset, or fallback.
func (c *ConfigStore) LastDataset(ctx context.Context, fallback string) string {
	return store.GetString(ctx, c.kv, KeyLastDataset, fallback)
}

// SetLastDataset remembers name as the most recently opened dataset.
func (c *ConfigStore) SetLastDataset(ctx context.Context, name string) {
	if err := c.kv.Set(ctx, KeyLastDataset, name); err != nil {
		c.log.WithError(err).WithField("key", KeyLastDataset).Warn("persist last dataset failed")
	}
}
