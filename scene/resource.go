package scene

import "sync/atomic"

// Live resource counters. Construction increments, Dispose decrements.
// Tests use deltas of these to prove nothing leaks across swaps.
var (
	liveGeometries atomic.Int64
	liveMaterials  atomic.Int64
	liveTextures   atomic.Int64
)

func LiveGeometries() int64 { return liveGeometries.Load() }
func LiveMaterials() int64  { return liveMaterials.Load() }
func LiveTextures() int64   { return liveTextures.Load() }

// Geometry is an opaque GPU-side vertex buffer stand-in. The real renderer
// owns the actual buffers; the core only tracks identity and lifetime.
type Geometry struct {
	Name     string
	disposed bool
}

func NewGeometry(name string) *Geometry {
	liveGeometries.Add(1)
	return &Geometry{Name: name}
}

func (g *Geometry) Dispose() {
	if g == nil || g.disposed {
		return
	}
	g.disposed = true
	liveGeometries.Add(-1)
}

func (g *Geometry) Disposed() bool {
	return g == nil || g.disposed
}

func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	return NewGeometry(g.Name)
}

// Texture is an opaque image resource referenced by a material.
type Texture struct {
	Name     string
	disposed bool
}

func NewTexture(name string) *Texture {
	liveTextures.Add(1)
	return &Texture{Name: name}
}

func (t *Texture) Dispose() {
	if t == nil || t.disposed {
		return
	}
	t.disposed = true
	liveTextures.Add(-1)
}

func (t *Texture) Disposed() bool {
	return t == nil || t.disposed
}

func (t *Texture) Clone() *Texture {
	if t == nil {
		return nil
	}
	return NewTexture(t.Name)
}

// Material carries the per-instance surface state the animations touch:
// opacity for fade-outs and emissive for the action flash.
type Material struct {
	Name     string
	Color    uint32
	Emissive uint32
	Opacity  float64
	Texture  *Texture
	disposed bool
}

func NewMaterial(name string, color uint32) *Material {
	liveMaterials.Add(1)
	return &Material{Name: name, Color: color, Opacity: 1}
}

// Dispose releases the material and any texture it references.
func (m *Material) Dispose() {
	if m == nil || m.disposed {
		return
	}
	m.disposed = true
	liveMaterials.Add(-1)
	m.Texture.Dispose()
}

func (m *Material) Disposed() bool {
	return m == nil || m.disposed
}

func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	c := NewMaterial(m.Name, m.Color)
	c.Emissive = m.Emissive
	c.Opacity = m.Opacity
	c.Texture = m.Texture.Clone()
	return c
}

// Mesh pairs a geometry with its material.
type Mesh struct {
	Geometry *Geometry
	Material *Material
}

func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	return &Mesh{Geometry: m.Geometry.Clone(), Material: m.Material.Clone()}
}

func (m *Mesh) Dispose() {
	if m == nil {
		return
	}
	m.Geometry.Dispose()
	m.Material.Dispose()
}
