// Package asset caches loaded model templates and stamps out per-use clones.
// Templates are immutable after insertion; everything handed to the scene is
// a deep copy, so cache entries live for the whole session while instances
// come and go.
package asset

import "github.com/adiwidya/kariesar/scene"

// Clip is a baked animation embedded in a model file. The core never
// inspects keyframes; it only needs identity and duration to drive playback.
type Clip struct {
	Name     string
	Duration float64 // seconds
}

// Template is the cached form of a loaded asset: a renderable node graph
// plus zero or more baked clips. Never mutated after creation.
type Template struct {
	ID    string
	Root  *scene.Node
	Clips []Clip
}

// Instance is one deep copy of a template, ready to be attached to the
// scene. Clips are value copies, so players on one instance never interfere
// with another.
type Instance struct {
	Root  *scene.Node
	Clips []Clip
}

// HasClips reports whether the template carries baked animation.
func (t *Template) HasClips() bool {
	return t != nil && len(t.Clips) > 0
}

func (t *Template) instantiate() *Instance {
	if t == nil || t.Root == nil {
		return nil
	}
	clips := make([]Clip, len(t.Clips))
	copy(clips, t.Clips)
	return &Instance{Root: t.Root.Clone(), Clips: clips}
}
