package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.design/x/clipboard"

	"github.com/adiwidya/kariesar/common"
	"github.com/adiwidya/kariesar/interactor"
	"github.com/adiwidya/kariesar/placement"
	"github.com/adiwidya/kariesar/prefabs"
	"github.com/adiwidya/kariesar/progress"
	"github.com/adiwidya/kariesar/scene"
	"github.com/adiwidya/kariesar/session"
	"github.com/adiwidya/kariesar/settings"
)

const (
	baseWidth  = 960
	baseHeight = 640

	// Orthographic projection of the model space onto the screen. One scene
	// unit is pixelsPerUnit pixels; depth leans the Z axis up-right a little
	// so the drop animations read as coming from behind.
	pixelsPerUnit = 220.0
	groundY      = baseHeight * 0.62

	captionHold = 4.0 // seconds before the caption falls back to the stage text
)

type Game struct {
	log      *zap.Logger
	session  *session.Session
	placer   *placement.Manager
	animator *interactor.Animator
	root     *scene.Node
	settings *settings.Manager
	watcher  *prefabs.Watcher
	hud      *HUD

	frames      int
	captionAge  float64
	clipboardOK bool
}

func NewGame(
	log *zap.Logger,
	sess *session.Session,
	placer *placement.Manager,
	animator *interactor.Animator,
	root *scene.Node,
	settingsMgr *settings.Manager,
	watcher *prefabs.Watcher,
) *Game {
	g := &Game{
		log:      log,
		session:  sess,
		placer:   placer,
		animator: animator,
		root:     root,
		settings: settingsMgr,
		watcher:  watcher,
	}
	g.hud = NewHUD(sess.HandleAction, sess.HandleReset)
	g.hud.SetCaption("Tap above to place the tooth")

	if err := clipboard.Init(); err != nil {
		log.Warn("viewer: clipboard unavailable", zap.Error(err))
	} else {
		g.clipboardOK = true
	}

	sess.Bus().Subscribe(g.onEvent)
	return g
}

func (g *Game) onEvent(e session.Event) {
	switch ev := e.(type) {
	case session.ModelPlaced:
		g.setCaption("Choose an action below")
	case session.StateChanged:
		if g.settings.Settings().Captions && ev.Message != "" {
			g.setCaption(ev.Message)
		}
	case session.TerminalReached:
		g.setCaption(ev.Reason)
	case session.AnimationFinished:
		if ev.Status == session.StatusError {
			g.setCaption("Something went wrong, try again")
		}
	}
}

func (g *Game) setCaption(s string) {
	g.hud.SetCaption(s)
	g.captionAge = 0
}

func (g *Game) Update() error {
	g.frames++

	dt := 1.0 / 60.0
	if tps := ebiten.ActualTPS(); tps > 1 {
		dt = 1.0 / tps
	}
	if dt > 0.25 {
		dt = 0.25
	}

	g.pollWatcher()
	g.handleInput()
	g.session.Step(dt)
	g.updateCaption(dt)

	state := g.session.State()
	g.hud.SetActionsEnabled(g.placer.Placed() && !g.session.InputLocked() && !state.Terminal())
	g.hud.SetResetEnabled(state.Terminal())
	g.hud.Update()

	return nil
}

// pollWatcher drains pending prefab edits and re-applies presets and rules.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Info("viewer: prefab changed", zap.String("file", name))
			reload = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("viewer: prefab watcher", zap.Error(err))
		default:
			if reload {
				g.reloadPrefabs()
			}
			return
		}
	}
}

func (g *Game) reloadPrefabs() {
	if spec, err := prefabs.LoadInteractorsSpec(); err != nil {
		g.log.Warn("viewer: reload interactor presets", zap.Error(err))
	} else {
		g.animator.SetPresets(spec.Presets())
	}
	if rules, err := prefabs.LoadRules(); err != nil {
		g.log.Warn("viewer: reload rules script", zap.Error(err))
	} else {
		g.session.SetRules(rules)
	}
}

func (g *Game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !g.placer.Placed() {
		mx, my := ebiten.CursorPosition()
		if float64(my) < hudTop {
			g.session.HandlePlacement(poseFromScreen(mx, my))
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.session.HandleAction(progress.ActionBrush)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.session.HandleAction(progress.ActionSweet)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.session.HandleAction(progress.ActionHealthy)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.session.HandleReset()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.session.HandleSessionEnded()
		g.setCaption("Session ended, tap to place again")
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.settings.Settings().ShowDebug = !g.settings.Settings().ShowDebug
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyStateToClipboard()
	}
}

func (g *Game) copyStateToClipboard() {
	if !g.clipboardOK {
		return
	}
	s := g.session.State()
	clipboard.Write(clipboard.FmtText, fmt.Appendf(nil,
		"cleanliness=%.1f health=%.1f stage=%d streak=%d terminal=%v",
		s.Cleanliness, s.Health, s.Stage, s.HealthyStreak, s.Terminal()))
	g.log.Debug("viewer: state copied to clipboard")
}

func (g *Game) updateCaption(dt float64) {
	g.captionAge += dt
	if g.captionAge < captionHold || !g.placer.Placed() {
		return
	}
	state := g.session.State()
	if state.Terminal() {
		return
	}
	g.hud.SetCaption(progress.StageMessage(state.Stage))
}

func poseFromScreen(mx, my int) placement.Pose {
	return placement.Pose{
		Position: common.V3(
			(float64(mx)-baseWidth/2)/pixelsPerUnit,
			0,
			(float64(my)-groundY)/(0.3*pixelsPerUnit),
		),
	}
}

func projectPoint(p common.Vec3) (float32, float32) {
	x := baseWidth/2 + p.X*pixelsPerUnit
	y := groundY - p.Y*pixelsPerUnit + p.Z*0.3*pixelsPerUnit
	return float32(x), float32(y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(rgb(0x1c2230, 1))

	// ground reference line
	vector.StrokeLine(screen, 0, groundY, baseWidth, groundY, 1, rgb(0x2e3850, 1), true)

	g.drawScene(screen)
	g.drawBars(screen)
	g.hud.Draw(screen)

	if g.settings.Settings().ShowDebug {
		g.drawDebug(screen)
	}
}

// drawScene projects every meshed node orthographically and paints it as a
// circle. Good enough to eyeball the animations without a 3D renderer.
func (g *Game) drawScene(screen *ebiten.Image) {
	g.root.Traverse(func(n *scene.Node) {
		if n.Mesh == nil || n.Mesh.Material == nil {
			return
		}
		pos, _, scale := n.WorldTransform()
		x, y := projectPoint(pos)
		r := float32(scale.X * pixelsPerUnit * 0.5)
		if r <= 0 {
			return
		}

		mat := n.Mesh.Material
		if mat.Emissive != 0 {
			vector.DrawFilledCircle(screen, x, y, r*1.25, rgb(mat.Emissive, 0.45*mat.Opacity), true)
		}
		vector.DrawFilledCircle(screen, x, y, r, rgb(mat.Color, mat.Opacity), true)
	})
}

func (g *Game) drawBars(screen *ebiten.Image) {
	state := g.session.State()
	drawBar(screen, 16, 16, "clean", state.Cleanliness, 0x4fc3f7)
	drawBar(screen, 16, 40, "health", state.Health, 0x81c784)
}

func drawBar(screen *ebiten.Image, x, y float32, label string, value float64, fill uint32) {
	const w, h = 180, 12
	vector.DrawFilledRect(screen, x, y, w, h, rgb(0x11141c, 1), false)
	vector.DrawFilledRect(screen, x, y, w*float32(value/100), h, rgb(fill, 1), false)
	vector.StrokeRect(screen, x, y, w, h, 1, rgb(0x5a6478, 1), false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %.0f", label, value), int(x)+w+8, int(y)-2)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	state := g.session.State()
	msg := fmt.Sprintf(
		"FPS: %.1f  frames: %d\nstate: clean=%.1f health=%.1f stage=%d streak=%d\nkey=%d locked=%v terminal=%v\nlive: geo=%d mat=%d tex=%d",
		ebiten.ActualFPS(), g.frames,
		state.Cleanliness, state.Health, state.Stage, state.HealthyStreak,
		int(state.Key()), g.session.InputLocked(), state.Terminal(),
		scene.LiveGeometries(), scene.LiveMaterials(), scene.LiveTextures(),
	)
	ebitenutil.DebugPrintAt(screen, msg, 16, 64)
}

func rgb(c uint32, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: uint8(opacity * 0xff),
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
