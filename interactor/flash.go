package interactor

import "github.com/adiwidya/kariesar/scene"

// flashEffect is the time-boxed emissive feedback on the placed tooth: every
// material flashes warm yellow and reverts to its captured prior emissive.
// Revert is unconditional - it also runs from the playback's cleanup path if
// the animation ends before the flash deadline.
type flashEffect struct {
	remaining float64
	captured  map[*scene.Material]uint32
	reverted  bool
}

func startFlash(target *scene.Node, color uint32, duration float64) *flashEffect {
	if target == nil || duration <= 0 {
		return nil
	}
	f := &flashEffect{
		remaining: duration,
		captured:  make(map[*scene.Material]uint32),
	}
	target.Traverse(func(n *scene.Node) {
		if n.Mesh == nil || n.Mesh.Material == nil {
			return
		}
		mat := n.Mesh.Material
		if _, ok := f.captured[mat]; !ok {
			f.captured[mat] = mat.Emissive
		}
		mat.Emissive = color
	})
	return f
}

func (f *flashEffect) update(dt float64) {
	if f == nil || f.reverted {
		return
	}
	f.remaining -= dt
	if f.remaining <= 0 {
		f.revert()
	}
}

func (f *flashEffect) revert() {
	if f == nil || f.reverted {
		return
	}
	f.reverted = true
	for mat, emissive := range f.captured {
		if !mat.Disposed() {
			mat.Emissive = emissive
		}
	}
	f.captured = nil
}
