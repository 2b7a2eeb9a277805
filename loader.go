package main

import (
	"fmt"

	"github.com/adiwidya/kariesar/asset"
	"github.com/adiwidya/kariesar/common"
	"github.com/adiwidya/kariesar/scene"
)

// modelLoader builds the stand-in primitive models the desktop viewer uses
// in place of the AR asset bundle. Every asset id referenced by the prefab
// manifest resolves to a small node graph of colored spheres.
type modelLoader struct{}

func (modelLoader) Load(id string) (*asset.Template, error) {
	switch id {
	case "tooth_100":
		return buildTooth(id, 0xf7f3ea, false), nil
	case "tooth_75":
		return buildTooth(id, 0xe8dcb8, false), nil
	case "tooth_50":
		return buildTooth(id, 0xcdb183, true), nil
	case "tooth_25":
		return buildTooth(id, 0x9a7b4f, true), nil
	case "tooth_0":
		return buildTooth(id, 0x4a3b2e, true), nil
	case "brush":
		return buildBrush(id), nil
	case "candy":
		return buildCandy(id), nil
	case "broccoli":
		return buildBroccoli(id), nil
	default:
		return nil, fmt.Errorf("viewer: unknown asset %q", id)
	}
}

func part(name string, color uint32, pos common.Vec3, scale float64) *scene.Node {
	n := scene.NewNode(name)
	n.Position = pos
	n.Scale = common.Splat(scale)
	n.Mesh = &scene.Mesh{
		Geometry: scene.NewGeometry(name),
		Material: scene.NewMaterial(name, color),
	}
	return n
}

func buildTooth(id string, enamel uint32, decaySpot bool) *asset.Template {
	root := scene.NewNode(id)
	root.Attach(part("crown", enamel, common.V3(0, 0.35, 0), 0.9))
	root.Attach(part("root_left", 0xe0d6c4, common.V3(-0.18, -0.25, 0), 0.35))
	root.Attach(part("root_right", 0xe0d6c4, common.V3(0.18, -0.25, 0), 0.35))
	if decaySpot {
		root.Attach(part("cavity", 0x2b1d12, common.V3(0.12, 0.55, 0.1), 0.22))
	}
	return &asset.Template{ID: id, Root: root}
}

func buildBrush(id string) *asset.Template {
	root := scene.NewNode(id)

	handle := part("handle", 0x3b7dd8, common.V3(0, -0.3, 0), 0.5)
	handle.Scale = common.V3(0.18, 0.7, 0.18)
	root.Attach(handle)
	root.Attach(part("head", 0xffffff, common.V3(0, 0.25, 0), 0.3))

	// The baked scrub clip drives the brush when present; the orbit preset
	// is only the fallback.
	return &asset.Template{
		ID:    id,
		Root:  root,
		Clips: []asset.Clip{{Name: "scrub", Duration: 2.4}},
	}
}

func buildCandy(id string) *asset.Template {
	root := scene.NewNode(id)

	stick := part("stick", 0xf0f0f0, common.V3(0, -0.4, 0), 0.5)
	stick.Scale = common.V3(0.08, 0.5, 0.08)
	root.Attach(stick)
	root.Attach(part("drop", 0xff6fa0, common.V3(0, 0.1, 0), 0.45))
	return &asset.Template{ID: id, Root: root}
}

func buildBroccoli(id string) *asset.Template {
	root := scene.NewNode(id)

	stalk := part("stalk", 0xb9d8a0, common.V3(0, -0.3, 0), 0.5)
	stalk.Scale = common.V3(0.16, 0.5, 0.16)
	root.Attach(stalk)
	root.Attach(part("floret", 0x4f9e3f, common.V3(0, 0.2, 0), 0.5))
	root.Attach(part("floret_left", 0x55a844, common.V3(-0.22, 0.08, 0.05), 0.3))
	root.Attach(part("floret_right", 0x55a844, common.V3(0.22, 0.08, -0.05), 0.3))
	return &asset.Template{ID: id, Root: root}
}
