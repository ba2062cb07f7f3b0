package settings

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/verbiz/internal/logging"
	"github.com/abhisek/verbiz/internal/store"
)

// Provider caches the current settings and refreshes them on demand.
type Provider struct {
	kv      store.KV
	log     logrus.FieldLogger
	current Settings
}

// NewProvider loads the settings from kv. Read failures leave the defaults
// in place.
func NewProvider(ctx context.Context, kv store.KV, log logrus.FieldLogger) *Provider {
	p := &Provider{kv: kv, log: logging.OrDiscard(log), current: Defaults()}
	p.Refresh(ctx)
	return p
}

// Settings returns the cached settings.
func (p *Provider) Settings() Settings {
	return p.current
}

// Refresh reloads the settings from storage.
func (p *Provider) Refresh(ctx context.Context) {
	s, err := Load(ctx, p.kv)
	if err != nil {
		p.log.WithError(err).Warn("load settings failed, keeping previous values")
		return
	}
	p.current = s
}

// Set updates one setting and refreshes the cache.
func (p *Provider) Set(ctx context.Context, name, value string) error {
	if err := Update(ctx, p.kv, name, value); err != nil {
		return err
	}
	p.Refresh(ctx)
	return nil
}
