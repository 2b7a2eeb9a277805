// Package settings persists viewer preferences across runs using gdata,
// which picks a platform-appropriate storage location. A nil storage
// manager degrades to in-memory settings so headless tools and tests never
// touch the filesystem.
package settings

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ViewerSettings are the user-tunable viewer preferences.
type ViewerSettings struct {
	WindowWidth  int  `yaml:"windowWidth"`
	WindowHeight int  `yaml:"windowHeight"`
	ShowDebug    bool `yaml:"showDebug"`
	Captions     bool `yaml:"captions"`
}

// DefaultSettings returns the out-of-the-box viewer preferences.
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		WindowWidth:  960,
		WindowHeight: 640,
		ShowDebug:    false,
		Captions:     true,
	}
}

const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// Manager loads and saves viewer settings.
type Manager struct {
	storage  *gdata.Manager
	settings *ViewerSettings
	log      *zap.Logger
}

// NewManager builds a settings manager backed by storage. storage may be
// nil, in which case settings live only in memory.
func NewManager(storage *gdata.Manager, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		storage:  storage,
		settings: DefaultSettings(),
		log:      log,
	}
	if err := m.Load(); err != nil {
		log.Warn("settings: load failed, using defaults", zap.Error(err))
	}
	return m
}

// Load reads the persisted settings. Missing storage or a missing record
// keeps the defaults without error.
func (m *Manager) Load() error {
	if m.storage == nil {
		return nil
	}
	if !m.storage.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.storage.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}

	var loaded ViewerSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("settings: unmarshal: %w", err)
	}
	if loaded.WindowWidth <= 0 || loaded.WindowHeight <= 0 {
		return fmt.Errorf("settings: stored window size %dx%d invalid", loaded.WindowWidth, loaded.WindowHeight)
	}

	m.settings = &loaded
	return nil
}

// Save writes the current settings. A nil storage manager makes this a
// no-op.
func (m *Manager) Save() error {
	if m.storage == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := m.storage.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

// Settings returns the live settings struct. Callers mutate it and then
// call Save.
func (m *Manager) Settings() *ViewerSettings {
	return m.settings
}
