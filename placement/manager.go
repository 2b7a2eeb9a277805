// Package placement owns the single placed tooth entity: creating it at the
// user's placement pose, swapping it between health-state models, and
// disposing whatever it replaces. No other component may add or remove the
// placed entity from the scene.
package placement

import (
	"errors"
	"fmt"

	"github.com/adiwidya/kariesar/asset"
	"github.com/adiwidya/kariesar/common"
	"github.com/adiwidya/kariesar/progress"
	"github.com/adiwidya/kariesar/scene"
	"go.uber.org/zap"
)

var (
	ErrAlreadyPlaced = errors.New("placement: entity already placed")
	ErrUnknownKey    = errors.New("placement: no asset mapped for health key")
)

// Pose is a placement transform delivered by the AR session driver.
type Pose struct {
	Position common.Vec3
	Rotation common.Vec3
}

// Manager tracks the one live tooth entity and its visual health key.
type Manager struct {
	cache     *asset.Cache
	sceneRoot *scene.Node
	assets    map[progress.HealthKey]string
	baseScale float64
	log       *zap.Logger

	current    *scene.Node
	currentKey progress.HealthKey
	lastPose   Pose
}

// NewManager wires the manager to the scene root it may attach entities to
// and the health-key -> asset-id mapping from the manifest.
func NewManager(cache *asset.Cache, sceneRoot *scene.Node, assets map[progress.HealthKey]string, baseScale float64, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if baseScale <= 0 {
		baseScale = 1
	}
	return &Manager{
		cache:     cache,
		sceneRoot: sceneRoot,
		assets:    assets,
		baseScale: baseScale,
		log:       log,
	}
}

// Current returns the placed entity, or nil before placement.
func (m *Manager) Current() *scene.Node {
	if m == nil {
		return nil
	}
	return m.current
}

// CurrentKey returns the health key the placed entity renders.
func (m *Manager) CurrentKey() progress.HealthKey {
	if m == nil {
		return progress.Key100
	}
	return m.currentKey
}

// Placed reports whether an entity is currently in the scene.
func (m *Manager) Placed() bool {
	return m != nil && m.current != nil
}

// PlaceInitial creates the fully healthy tooth at the given pose. It is a
// failure if something is already placed; callers treat that as a no-op.
func (m *Manager) PlaceInitial(pose Pose) (*scene.Node, error) {
	if m == nil {
		return nil, ErrUnknownKey
	}
	if m.current != nil {
		return nil, ErrAlreadyPlaced
	}
	node, err := m.instantiate(progress.Key100)
	if err != nil {
		return nil, err
	}
	node.Position = pose.Position
	node.Rotation = pose.Rotation
	node.Scale = common.Splat(m.baseScale)

	m.sceneRoot.Attach(node)
	m.current = node
	m.currentKey = progress.Key100
	m.lastPose = pose
	return node, nil
}

// SwapTo replaces the placed entity with the model for key. The old
// entity's world transform is captured first - including its current scale,
// so user resizing survives the swap. If the replacement model cannot be
// produced the swap is abandoned and the old entity stays: stale but valid
// beats a blank scene.
func (m *Manager) SwapTo(key progress.HealthKey) error {
	if m == nil {
		return ErrUnknownKey
	}
	if m.current != nil && m.currentKey == key {
		return nil
	}

	pos, rot, scale := m.lastPose.Position, m.lastPose.Rotation, common.Splat(m.baseScale)
	if m.current != nil {
		pos = m.current.Position
		rot = m.current.Rotation
		scale = m.current.Scale
	}

	node, err := m.instantiate(key)
	if err != nil {
		m.log.Warn("swap abandoned, keeping previous entity",
			zap.Int("health_key", int(key)), zap.Error(err))
		return err
	}

	// Disposal and re-pointing happen together, with no await in between:
	// no observer can see a disposed-but-referenced entity.
	if m.current != nil {
		m.current.RemoveFromParent()
		m.current.Dispose()
	}
	node.Position = pos
	node.Rotation = rot
	node.Scale = scale
	m.sceneRoot.Attach(node)
	m.current = node
	m.currentKey = key
	return nil
}

// Remove disposes the placed entity and clears placement state. Used on
// explicit reset and when the AR session ends.
func (m *Manager) Remove() {
	if m == nil || m.current == nil {
		return
	}
	m.current.RemoveFromParent()
	m.current.Dispose()
	m.current = nil
	m.currentKey = progress.Key100
}

func (m *Manager) instantiate(key progress.HealthKey) (*scene.Node, error) {
	id, ok := m.assets[key]
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, int(key))
	}
	inst, err := m.cache.Instantiate(id)
	if err != nil {
		return nil, err
	}
	inst.Root.Name = id
	return inst.Root, nil
}

// AssetIDs returns every mapped asset identifier, for preloading.
func (m *Manager) AssetIDs() []string {
	if m == nil {
		return nil
	}
	ids := make([]string, 0, len(m.assets))
	for _, key := range progress.Keys() {
		if id, ok := m.assets[key]; ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
