package prefabs

import (
	"fmt"

	"github.com/adiwidya/kariesar/common"
	"github.com/adiwidya/kariesar/interactor"
	"github.com/adiwidya/kariesar/progress"
	"gopkg.in/yaml.v3"
)

// LoadSpec loads and unmarshals one prefab yaml file.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// VecSpec is a [x, y, z] triple in yaml.
type VecSpec [3]float64

func (v VecSpec) Vec3() common.Vec3 {
	return common.V3(v[0], v[1], v[2])
}

// ManifestSpec maps the five health buckets and the three interactor kinds
// to asset identifiers.
type ManifestSpec struct {
	Name        string            `yaml:"name"`
	Tooth       map[int]string    `yaml:"tooth"`
	Interactors map[string]string `yaml:"interactors"`
}

func LoadManifestSpec() (*ManifestSpec, error) {
	spec, err := LoadSpec[ManifestSpec]("manifest.yaml")
	if err != nil {
		return nil, err
	}
	for _, key := range progress.Keys() {
		if spec.Tooth[int(key)] == "" {
			return nil, fmt.Errorf("prefabs: manifest.yaml: no tooth asset for health key %d", int(key))
		}
	}
	return &spec, nil
}

// ToothAssets returns the health-key -> asset-id mapping.
func (m *ManifestSpec) ToothAssets() map[progress.HealthKey]string {
	out := make(map[progress.HealthKey]string, len(m.Tooth))
	for k, id := range m.Tooth {
		out[progress.HealthKey(k)] = id
	}
	return out
}

// PoseSpec is a local start transform. Scale is uniform.
type PoseSpec struct {
	Position VecSpec `yaml:"position"`
	Rotation VecSpec `yaml:"rotation"`
	Scale    float64 `yaml:"scale"`
}

func (p PoseSpec) pose() interactor.Pose {
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	return interactor.Pose{
		Position: p.Position.Vec3(),
		Rotation: p.Rotation.Vec3(),
		Scale:    common.Splat(scale),
	}
}

// OrbitSpec tunes the procedural brush motion.
type OrbitSpec struct {
	Approach       float64 `yaml:"approach"`
	Orbit          float64 `yaml:"orbit"`
	Retreat        float64 `yaml:"retreat"`
	Revolutions    float64 `yaml:"revolutions"`
	Radius         float64 `yaml:"radius"`
	ApproachOffset float64 `yaml:"approach_offset"`
	Dip            float64 `yaml:"dip"`
	Pulse          float64 `yaml:"pulse"`
}

// DropSpec tunes the food fall/settle/fade motion.
type DropSpec struct {
	Fall       float64 `yaml:"fall"`
	Settle     float64 `yaml:"settle"`
	Fade       float64 `yaml:"fade"`
	DropHeight float64 `yaml:"drop_height"`
	DropDepth  float64 `yaml:"drop_depth"`
	Bounce     float64 `yaml:"bounce"`
	Bounces    float64 `yaml:"bounces"`
	Drift      float64 `yaml:"drift"`
	FadeScale  float64 `yaml:"fade_scale"`
}

// InteractorSpec is one action's preset.
type InteractorSpec struct {
	Asset string    `yaml:"asset"`
	Start PoseSpec  `yaml:"start"`
	Orbit OrbitSpec `yaml:"orbit"`
	Drop  DropSpec  `yaml:"drop"`
}

// InteractorsSpec is the whole interactors.yaml document.
type InteractorsSpec struct {
	Brush   InteractorSpec `yaml:"brush"`
	Sweet   InteractorSpec `yaml:"sweet"`
	Healthy InteractorSpec `yaml:"healthy"`
}

func LoadInteractorsSpec() (*InteractorsSpec, error) {
	spec, err := LoadSpec[InteractorsSpec]("interactors.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Presets converts the loaded document into animator presets.
func (s *InteractorsSpec) Presets() map[progress.Action]interactor.Preset {
	return map[progress.Action]interactor.Preset{
		progress.ActionBrush:   s.Brush.preset(),
		progress.ActionSweet:   s.Sweet.preset(),
		progress.ActionHealthy: s.Healthy.preset(),
	}
}

func (s InteractorSpec) preset() interactor.Preset {
	return interactor.Preset{
		AssetID: s.Asset,
		Start:   s.Start.pose(),
		Orbit: interactor.OrbitParams{
			Approach:       s.Orbit.Approach,
			Orbit:          s.Orbit.Orbit,
			Retreat:        s.Orbit.Retreat,
			Revolutions:    s.Orbit.Revolutions,
			Radius:         s.Orbit.Radius,
			ApproachOffset: s.Orbit.ApproachOffset,
			DipAmplitude:   s.Orbit.Dip,
			PulseAmplitude: s.Orbit.Pulse,
		},
		Drop: interactor.DropParams{
			Fall:            s.Drop.Fall,
			Settle:          s.Drop.Settle,
			Fade:            s.Drop.Fade,
			DropHeight:      s.Drop.DropHeight,
			DropDepth:       s.Drop.DropDepth,
			BounceAmplitude: s.Drop.Bounce,
			Bounces:         s.Drop.Bounces,
			DriftHeight:     s.Drop.Drift,
			FadeScale:       s.Drop.FadeScale,
		},
	}
}

// SessionSpec is the session.yaml document.
type SessionSpec struct {
	ActionTimeout float64 `yaml:"action_timeout"`
	BaseScale     float64 `yaml:"base_scale"`
}

func LoadSessionSpec() (*SessionSpec, error) {
	spec, err := LoadSpec[SessionSpec]("session.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadRules loads the optional tuning script and resolves the progression
// rules. No script means defaults.
func LoadRules() (progress.Rules, error) {
	src, err := LoadScript("rules.tengo")
	if err != nil {
		return progress.DefaultRules(), nil
	}
	return progress.LoadRules(src)
}
