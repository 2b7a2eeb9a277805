package scene

import (
	"math"

	"github.com/adiwidya/kariesar/common"
)

// Node is a scene-graph node with a local TRS transform. It mirrors the
// subset of the renderer's node type the core needs: attach/detach of
// children, deep cloning, and recursive resource disposal. Rotation is an
// XYZ Euler triple in radians.
type Node struct {
	Name     string
	Position common.Vec3
	Rotation common.Vec3
	Scale    common.Vec3
	Mesh     *Mesh

	parent   *Node
	children []*Node
	disposed bool
}

func NewNode(name string) *Node {
	return &Node{Name: name, Scale: common.Splat(1)}
}

func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns the live child slice; callers must not mutate it.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// Attach parents child under n, detaching it from any previous parent first.
func (n *Node) Attach(child *Node) {
	if n == nil || child == nil || child == n {
		return
	}
	child.RemoveFromParent()
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n == nil || n.parent == nil {
		return
	}
	p := n.parent
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Traverse visits n and every descendant depth-first.
func (n *Node) Traverse(fn func(*Node)) {
	if n == nil || fn == nil {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Clone deep-copies the subtree rooted at n, including per-instance copies
// of every mesh resource. The clone has no parent.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Name:     n.Name,
		Position: n.Position,
		Rotation: n.Rotation,
		Scale:    n.Scale,
		Mesh:     n.Mesh.Clone(),
	}
	for _, child := range n.children {
		c.Attach(child.Clone())
	}
	return c
}

// Dispose releases every mesh resource in the subtree, depth-first, and
// marks the nodes disposed. Safe to call more than once.
func (n *Node) Dispose() {
	if n == nil {
		return
	}
	n.Traverse(func(node *Node) {
		if node.disposed {
			return
		}
		node.disposed = true
		node.Mesh.Dispose()
	})
}

func (n *Node) Disposed() bool {
	return n == nil || n.disposed
}

// WorldTransform composes the transform along the parent chain and returns
// world position, accumulated Euler rotation, and component-wise scale.
func (n *Node) WorldTransform() (pos, rot, scale common.Vec3) {
	if n == nil {
		return common.Vec3{}, common.Vec3{}, common.Splat(1)
	}
	if n.parent == nil {
		return n.Position, n.Rotation, n.Scale
	}
	pPos, pRot, pScale := n.parent.WorldTransform()
	local := rotateEuler(n.Position.Mul(pScale), pRot)
	return pPos.Add(local), pRot.Add(n.Rotation), pScale.Mul(n.Scale)
}

// rotateEuler applies an intrinsic XYZ Euler rotation to v.
func rotateEuler(v, e common.Vec3) common.Vec3 {
	// X axis
	sx, cx := math.Sincos(e.X)
	v = common.V3(v.X, cx*v.Y-sx*v.Z, sx*v.Y+cx*v.Z)
	// Y axis
	sy, cy := math.Sincos(e.Y)
	v = common.V3(cy*v.X+sy*v.Z, v.Y, -sy*v.X+cy*v.Z)
	// Z axis
	sz, cz := math.Sincos(e.Z)
	return common.V3(cz*v.X-sz*v.Y, sz*v.X+cz*v.Y, v.Z)
}
