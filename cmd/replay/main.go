// Command replay runs a scripted action sequence through the full
// progression stack headlessly and prints every committed transition. The
// same sequence always prints the same lines, which makes it useful for
// checking rule tweaks before opening the viewer.
//
// Usage:
//
//	replay -actions "sweet,sweet,brush,healthy,healthy"
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/adiwidya/kariesar/asset"
	"github.com/adiwidya/kariesar/interactor"
	"github.com/adiwidya/kariesar/logger"
	"github.com/adiwidya/kariesar/placement"
	"github.com/adiwidya/kariesar/prefabs"
	"github.com/adiwidya/kariesar/progress"
	"github.com/adiwidya/kariesar/scene"
	"github.com/adiwidya/kariesar/session"
)

const frameDt = 1.0 / 60.0

func main() {
	actionsArg := flag.String("actions", "", "comma-separated actions: brush, sweet, healthy, reset")
	logLevel := flag.String("loglevel", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	if *actionsArg == "" {
		fmt.Fprintln(os.Stderr, "replay: no actions given, use -actions \"sweet,brush,...\"")
		os.Exit(2)
	}

	actions, err := parseActions(*actionsArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(2)
	}

	log := logger.New(*logLevel, "")
	defer func() { _ = log.Sync() }()

	if err := run(actions, log); err != nil {
		log.Fatal("replay", zap.Error(err))
	}
}

func parseActions(arg string) ([]progress.Action, error) {
	var out []progress.Action
	for _, field := range strings.Split(arg, ",") {
		action := progress.Action(strings.TrimSpace(field))
		if !action.Valid() {
			return nil, fmt.Errorf("unknown action %q", field)
		}
		out = append(out, action)
	}
	return out, nil
}

func run(actions []progress.Action, log *zap.Logger) error {
	manifest, err := prefabs.LoadManifestSpec()
	if err != nil {
		return err
	}
	interactorsSpec, err := prefabs.LoadInteractorsSpec()
	if err != nil {
		return err
	}
	sessionSpec, err := prefabs.LoadSessionSpec()
	if err != nil {
		return err
	}
	rules, err := prefabs.LoadRules()
	if err != nil {
		return err
	}

	cache := asset.NewCache(asset.LoaderFunc(stubTemplate), log)
	root := scene.NewNode("world")
	placer := placement.NewManager(cache, root, manifest.ToothAssets(), sessionSpec.BaseScale, log)
	animator := interactor.NewAnimator(cache, interactorsSpec.Presets(), log)

	sess := session.New(
		session.Config{ActionTimeout: sessionSpec.ActionTimeout},
		placer, animator, &session.Bus{}, rules, log,
	)
	sess.Bus().Subscribe(printEvent)

	sess.HandlePlacement(placement.Pose{})
	for _, action := range actions {
		sess.HandleAction(action)
		for i := 0; sess.InputLocked() && i < 60*30; i++ {
			sess.Step(frameDt)
		}
	}

	state := sess.State()
	fmt.Printf("final: clean=%.1f health=%.1f stage=%d terminal=%v\n",
		state.Cleanliness, state.Health, state.Stage, state.Terminal())
	return nil
}

// stubTemplate satisfies every asset id with a single meshed node; the
// replay only cares about progression, not what gets drawn.
func stubTemplate(id string) (*asset.Template, error) {
	node := scene.NewNode(id)
	node.Mesh = &scene.Mesh{
		Geometry: scene.NewGeometry(id),
		Material: scene.NewMaterial(id, 0xffffff),
	}
	return &asset.Template{ID: id, Root: node}, nil
}

func printEvent(e session.Event) {
	switch ev := e.(type) {
	case session.StateChanged:
		fmt.Printf("state: clean=%.1f health=%.1f stage=%d key=%d  %s\n",
			ev.Cleanliness, ev.Health, ev.Stage, int(ev.Key), ev.Message)
	case session.AnimationFinished:
		if ev.Status != session.StatusOK {
			fmt.Printf("action %s: %s\n", ev.Action, ev.Status)
		}
	case session.TerminalReached:
		fmt.Printf("terminal: %s\n", ev.Reason)
	}
}
