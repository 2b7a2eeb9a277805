package placement

import (
	"errors"
	"testing"

	"github.com/adiwidya/kariesar/asset"
	"github.com/adiwidya/kariesar/common"
	"github.com/adiwidya/kariesar/progress"
	"github.com/adiwidya/kariesar/scene"
	"go.uber.org/zap"
)

func testAssets() map[progress.HealthKey]string {
	return map[progress.HealthKey]string{
		progress.Key100: "tooth_100",
		progress.Key75:  "tooth_75",
		progress.Key50:  "tooth_50",
		progress.Key25:  "tooth_25",
		progress.Key0:   "tooth_0",
	}
}

type fakeLoader struct {
	fail map[string]bool
}

func (l *fakeLoader) Load(id string) (*asset.Template, error) {
	if l.fail[id] {
		return nil, errors.New("load failed")
	}
	root := scene.NewNode(id)
	root.Mesh = &scene.Mesh{
		Geometry: scene.NewGeometry(id),
		Material: scene.NewMaterial(id, 0xffffff),
	}
	return &asset.Template{Root: root}, nil
}

func newTestManager(failIDs ...string) (*Manager, *scene.Node) {
	fail := make(map[string]bool)
	for _, id := range failIDs {
		fail[id] = true
	}
	cache := asset.NewCache(&fakeLoader{fail: fail}, zap.NewNop())
	root := scene.NewNode("world")
	return NewManager(cache, root, testAssets(), 0.2, zap.NewNop()), root
}

func TestPlaceInitial(t *testing.T) {
	m, root := newTestManager()
	pose := Pose{Position: common.V3(0.1, 0, -0.5)}

	node, err := m.PlaceInitial(pose)
	if err != nil {
		t.Fatalf("PlaceInitial: %v", err)
	}
	if node.Position != pose.Position {
		t.Fatalf("placed at %+v, want %+v", node.Position, pose.Position)
	}
	if node.Scale != common.Splat(0.2) {
		t.Fatalf("base scale not applied: %+v", node.Scale)
	}
	if node.Parent() != root {
		t.Fatalf("entity not attached to scene root")
	}
	if m.CurrentKey() != progress.Key100 {
		t.Fatalf("initial key = %v, want 100", m.CurrentKey())
	}

	// Second placement is a failure the caller treats as a no-op.
	if _, err := m.PlaceInitial(pose); !errors.Is(err, ErrAlreadyPlaced) {
		t.Fatalf("second placement error = %v, want ErrAlreadyPlaced", err)
	}
	if len(root.Children()) != 1 {
		t.Fatalf("scene has %d placed entities, want 1", len(root.Children()))
	}
}

func TestSwapPreservesTransformAndScale(t *testing.T) {
	m, _ := newTestManager()
	if _, err := m.PlaceInitial(Pose{Position: common.V3(1, 2, 3)}); err != nil {
		t.Fatalf("place: %v", err)
	}

	// Simulate a user pinch-resize and nudge before the swap.
	cur := m.Current()
	cur.Scale = common.Splat(0.35)
	cur.Rotation = common.V3(0, 1.2, 0)

	if err := m.SwapTo(progress.Key75); err != nil {
		t.Fatalf("SwapTo: %v", err)
	}

	next := m.Current()
	if next == cur {
		t.Fatalf("swap did not replace the entity")
	}
	if next.Position != common.V3(1, 2, 3) || next.Rotation != common.V3(0, 1.2, 0) || next.Scale != common.Splat(0.35) {
		t.Fatalf("transform not preserved: pos %+v rot %+v scale %+v", next.Position, next.Rotation, next.Scale)
	}
	if !cur.Disposed() {
		t.Fatalf("previous entity not disposed")
	}
	if m.CurrentKey() != progress.Key75 {
		t.Fatalf("key = %v, want 75", m.CurrentKey())
	}
}

func TestSwapToSameKeyIsNoop(t *testing.T) {
	m, _ := newTestManager()
	if _, err := m.PlaceInitial(Pose{}); err != nil {
		t.Fatalf("place: %v", err)
	}
	cur := m.Current()
	if err := m.SwapTo(progress.Key100); err != nil {
		t.Fatalf("SwapTo same key: %v", err)
	}
	if m.Current() != cur {
		t.Fatalf("no-op swap replaced the entity")
	}
}

func TestAbandonedSwapKeepsOldEntity(t *testing.T) {
	m, root := newTestManager("tooth_50")
	if _, err := m.PlaceInitial(Pose{}); err != nil {
		t.Fatalf("place: %v", err)
	}
	cur := m.Current()

	if err := m.SwapTo(progress.Key50); err == nil {
		t.Fatalf("expected swap failure")
	}
	if m.Current() != cur || cur.Disposed() {
		t.Fatalf("failed swap must keep the previous entity alive")
	}
	if m.CurrentKey() != progress.Key100 {
		t.Fatalf("key changed on failed swap: %v", m.CurrentKey())
	}
	if len(root.Children()) != 1 {
		t.Fatalf("scene corrupted by failed swap")
	}
}

func TestRepeatedSwapsNeverLeak(t *testing.T) {
	m, root := newTestManager()
	if _, err := m.PlaceInitial(Pose{}); err != nil {
		t.Fatalf("place: %v", err)
	}

	keys := []progress.HealthKey{
		progress.Key75, progress.Key50, progress.Key25, progress.Key0,
		progress.Key100, progress.Key50, progress.Key100,
	}
	for _, k := range keys {
		if err := m.SwapTo(k); err != nil {
			t.Fatalf("SwapTo(%v): %v", k, err)
		}
		if len(root.Children()) != 1 {
			t.Fatalf("%d live entities after swap to %v, want 1", len(root.Children()), k)
		}
	}
}

func TestRemove(t *testing.T) {
	m, root := newTestManager()
	if _, err := m.PlaceInitial(Pose{}); err != nil {
		t.Fatalf("place: %v", err)
	}
	cur := m.Current()

	m.Remove()
	if m.Placed() || len(root.Children()) != 0 {
		t.Fatalf("remove left placement state behind")
	}
	if !cur.Disposed() {
		t.Fatalf("removed entity not disposed")
	}

	// Removing again is harmless, and placement works afterwards.
	m.Remove()
	if _, err := m.PlaceInitial(Pose{}); err != nil {
		t.Fatalf("re-place after remove: %v", err)
	}
}

func TestSwapAfterRemoveUsesLastPose(t *testing.T) {
	m, _ := newTestManager()
	pose := Pose{Position: common.V3(4, 5, 6)}
	if _, err := m.PlaceInitial(pose); err != nil {
		t.Fatalf("place: %v", err)
	}
	m.Remove()

	if err := m.SwapTo(progress.Key25); err != nil {
		t.Fatalf("SwapTo after remove: %v", err)
	}
	if m.Current().Position != pose.Position {
		t.Fatalf("swap after remove placed at %+v, want last pose %+v", m.Current().Position, pose.Position)
	}
}
