package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/adiwidya/kariesar/asset"
	"github.com/adiwidya/kariesar/interactor"
	"github.com/adiwidya/kariesar/logger"
	"github.com/adiwidya/kariesar/placement"
	"github.com/adiwidya/kariesar/prefabs"
	"github.com/adiwidya/kariesar/scene"
	"github.com/adiwidya/kariesar/session"
	"github.com/adiwidya/kariesar/settings"
)

func main() {
	debug := flag.Bool("debug", false, "start with the debug overlay enabled")
	logLevel := flag.String("loglevel", "info", "log level: debug, info, warn, error")
	logFile := flag.String("log", "", "also write logs to this file (rotated)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	log := logger.New(*logLevel, *logFile)
	defer func() { _ = log.Sync() }()

	storage, err := gdata.Open(gdata.Config{AppName: "kariesar"})
	if err != nil {
		log.Warn("viewer: settings storage unavailable", zap.Error(err))
		storage = nil
	}
	settingsMgr := settings.NewManager(storage, log)
	if *debug {
		settingsMgr.Settings().ShowDebug = true
	}

	manifest, err := prefabs.LoadManifestSpec()
	if err != nil {
		log.Fatal("viewer: load manifest", zap.Error(err))
	}
	interactorsSpec, err := prefabs.LoadInteractorsSpec()
	if err != nil {
		log.Fatal("viewer: load interactor presets", zap.Error(err))
	}
	sessionSpec, err := prefabs.LoadSessionSpec()
	if err != nil {
		log.Fatal("viewer: load session settings", zap.Error(err))
	}
	rules, err := prefabs.LoadRules()
	if err != nil {
		log.Fatal("viewer: load rules script", zap.Error(err))
	}

	cache := asset.NewCache(modelLoader{}, log)
	root := scene.NewNode("world")
	placer := placement.NewManager(cache, root, manifest.ToothAssets(), sessionSpec.BaseScale, log)
	animator := interactor.NewAnimator(cache, interactorsSpec.Presets(), log)
	cache.Preload(placer.AssetIDs()...)
	cache.Preload(animator.PresetAssetIDs()...)

	sess := session.New(
		session.Config{ActionTimeout: sessionSpec.ActionTimeout},
		placer, animator, &session.Bus{}, rules, log,
	)

	// Watch the on-disk prefab overrides when they exist so preset and rule
	// edits apply without restarting.
	var watcher *prefabs.Watcher
	if dirs := watchableDirs("prefabs", "prefabs/scripts"); len(dirs) > 0 {
		watcher, err = prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Warn("viewer: prefab watcher unavailable", zap.Error(err))
			watcher = nil
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(settingsMgr.Settings().WindowWidth, settingsMgr.Settings().WindowHeight)
	ebiten.SetWindowTitle("karies-ar viewer")

	game := NewGame(log, sess, placer, animator, root, settingsMgr, watcher)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal("viewer: run", zap.Error(err))
	}

	if err := settingsMgr.Save(); err != nil {
		log.Warn("viewer: save settings", zap.Error(err))
	}
}

func watchableDirs(dirs ...string) []string {
	var out []string
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			out = append(out, dir)
		}
	}
	return out
}
