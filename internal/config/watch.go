package config

import (
	"errors"

	"github.com/brianly1003/notifyhub/internal/registry"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// ErrNoConfigFile is returned by Watch when there is no file to watch.
var ErrNoConfigFile = errors.New("no config file to watch")

// Watcher republishes the configuration every time its file changes.
// Listeners registered on Updates receive each valid reloaded *Config.
// Invalid edits are logged and skipped, so the last valid config remains
// the registry state.
type Watcher struct {
	v       *viper.Viper
	updates *registry.Registry[*Config]
}

// Watch loads the configuration like Load and starts watching the file it
// was read from.
func Watch(configPath string, opts ...registry.Option) (*Watcher, error) {
	w, err := newWatcher(configPath, opts...)
	if err != nil {
		return nil, err
	}

	w.v.OnConfigChange(w.onChange)
	w.v.WatchConfig()

	log.Info().Str("file", w.File()).Msg("watching config file")
	return w, nil
}

func newWatcher(configPath string, opts ...registry.Option) (*Watcher, error) {
	v, err := newViper(configPath)
	if err != nil {
		return nil, err
	}
	if v.ConfigFileUsed() == "" {
		return nil, ErrNoConfigFile
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	opts = append([]registry.Option{registry.WithName("config")}, opts...)
	w := &Watcher{
		v:       v,
		updates: registry.New[*Config](opts...),
	}
	// No listeners yet; this only seeds the state.
	_ = w.updates.SetState(cfg)
	return w, nil
}

// Updates returns the registry that carries reloaded configs.
func (w *Watcher) Updates() *registry.Registry[*Config] {
	return w.updates
}

// Current returns the last valid configuration.
func (w *Watcher) Current() *Config {
	return w.updates.State()
}

// File returns the path of the watched file.
func (w *Watcher) File() string {
	return w.v.ConfigFileUsed()
}

func (w *Watcher) onChange(e fsnotify.Event) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	log.Debug().Str("file", e.Name).Str("op", e.Op.String()).Msg("config file changed")
	if err := w.reload(); err != nil {
		log.Warn().Err(err).Str("file", e.Name).Msg("config reload rejected")
	}
}

func (w *Watcher) reload() error {
	cfg, err := decode(w.v)
	if err != nil {
		return err
	}
	if err := w.updates.SetState(cfg); err != nil {
		return err
	}
	log.Info().
		Str("failure_policy", cfg.Registry.FailurePolicy).
		Strs("scenarios", cfg.Scenarios.Enabled).
		Msg("config reloaded")
	return nil
}
