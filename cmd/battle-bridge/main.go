package main

import (
	"context"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/api"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/battle"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/config"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/constants"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/emulator"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/logging"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/snapshot"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/storage"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/watch"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", err, nil)
	}
	logging.SetLevel(cfg.LogLevel)

	mmap, err := config.LoadMemoryMap(cfg.LayoutPath)
	if err != nil {
		logging.Fatal("invalid memory map", err, logging.Fields{"layout_path": cfg.LayoutPath})
	}

	emu := emulator.NewClient(cfg.MgbaURL)
	if cfg.ScreenshotDir != "" {
		emu.SetScreenshotDir(cfg.ScreenshotDir)
	}
	if !emu.Connected(context.Background()) {
		logging.Warn("emulator not reachable at startup, continuing anyway", logging.Fields{constants.LogFieldMgbaURL: cfg.MgbaURL})
	} else if code, err := emu.GameCode(context.Background()); err == nil {
		logging.Info("connected to emulator", logging.Fields{constants.LogFieldMgbaURL: cfg.MgbaURL, "game_code": code})
	}

	db, err := storage.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		logging.Fatal("failed to initialize database", err, logging.Fields{"db_path": cfg.DBPath})
	}
	repo := storage.NewSQLiteRepository(db)

	reader := snapshot.NewReader(emu, mmap)
	detector := battle.NewDetector(reader)

	timings := battle.DefaultTimings()
	timings.PollInterval = cfg.PollInterval
	timings.SettleDelay = cfg.SettleDelay
	timings.AttackTimeout = cfg.AttackTimeout
	timings.SwitchTimeout = cfg.SwitchTimeout
	controller := battle.NewController(emu, emu, reader, detector, mmap, timings)

	// The watcher gets its own detector so transition edge state never
	// races with request handling.
	watcher := watch.NewWatcher(battle.NewDetector(reader), repo, cfg.WatchInterval)
	go watcher.Run(context.Background())

	// Each new battle starts counting turns from zero.
	events, _ := watcher.Subscribe()
	go func() {
		for ev := range events {
			if ev.Type == battle.TransitionStarted {
				controller.ResetTurns()
			}
		}
	}()

	handler := api.NewBridgeHandler(emu, reader, detector, controller, watcher, repo)

	router := gin.Default()
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	apiRoutes.Use(api.AuthRequired(cfg.AuthToken))
	{
		apiRoutes.GET(constants.RouteStatus, handler.GetStatus)
		apiRoutes.GET(constants.RouteBattle, handler.GetBattle)
		apiRoutes.GET(constants.RouteBattlePlayer, handler.GetPlayer)
		apiRoutes.GET(constants.RouteBattleEnemy, handler.GetEnemy)
		apiRoutes.GET(constants.RouteParty, handler.GetParty)
		apiRoutes.GET(constants.RouteScreenshot, handler.GetScreenshot)
		apiRoutes.GET(constants.RouteHistory, handler.GetHistory)
		apiRoutes.GET(constants.RouteEncounters, handler.GetEncounters)
		apiRoutes.GET(constants.RouteEvents, handler.Events)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		apiRoutes.POST(constants.RouteBattleAttack, handler.Attack)
		apiRoutes.POST(constants.RouteBattleSwitch, handler.Switch)
	}

	displayAddr := cfg.Addr
	if len(displayAddr) > 0 && displayAddr[0] == ':' {
		displayAddr = "http://localhost" + displayAddr
	}
	logging.Info("battle bridge started", logging.Fields{constants.LogFieldAddr: displayAddr})
	if err := router.Run(cfg.Addr); err != nil {
		logging.Fatal("failed to start server", err, nil)
	}
}
