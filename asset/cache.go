package asset

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNoLoader is returned when an uncached asset is requested and no loader
// was configured to fall back on.
var ErrNoLoader = errors.New("asset: no loader configured")

// Loader is the external model-decoding collaborator: given a logical
// identifier it returns a template or a load error (network, parse).
type Loader interface {
	Load(id string) (*Template, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(id string) (*Template, error)

func (f LoaderFunc) Load(id string) (*Template, error) {
	return f(id)
}

// Cache maps logical identifiers to loaded templates. Load-once semantics:
// a template is fetched at most one time, then cloned per use.
type Cache struct {
	loader    Loader
	templates map[string]*Template
	log       *zap.Logger
}

func NewCache(loader Loader, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		loader:    loader,
		templates: make(map[string]*Template),
		log:       log,
	}
}

// Preload loads every identifier that is not already cached. Individual
// failures are logged and skipped: a failed asset simply never populates
// the cache and will be retried on demand. Preload itself never fails.
func (c *Cache) Preload(ids ...string) {
	if c == nil {
		return
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := c.templates[id]; ok {
			continue
		}
		if _, err := c.load(id); err != nil {
			c.log.Warn("asset preload failed, will retry on demand",
				zap.String("asset", id), zap.Error(err))
		}
	}
}

// Get returns the cached template for id, if present.
func (c *Cache) Get(id string) (*Template, bool) {
	if c == nil {
		return nil, false
	}
	t, ok := c.templates[id]
	return t, ok
}

// Instantiate returns a fresh deep clone of the template for id, loading it
// first if the preload skipped or missed it. A load failure here is the
// caller's problem: it sits on the critical path of a user action.
func (c *Cache) Instantiate(id string) (*Instance, error) {
	if c == nil {
		return nil, ErrNoLoader
	}
	t, ok := c.templates[id]
	if !ok {
		var err error
		t, err = c.load(id)
		if err != nil {
			return nil, err
		}
	}
	inst := t.instantiate()
	if inst == nil {
		return nil, fmt.Errorf("asset: template %q has no root node", id)
	}
	return inst, nil
}

func (c *Cache) load(id string) (*Template, error) {
	if c.loader == nil {
		return nil, ErrNoLoader
	}
	t, err := c.loader.Load(id)
	if err != nil {
		return nil, fmt.Errorf("asset: load %s: %w", id, err)
	}
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("asset: load %s: loader returned empty template", id)
	}
	t.ID = id
	c.templates[id] = t
	return t, nil
}
