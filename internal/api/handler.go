package api

import (
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/battle"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/emulator"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/snapshot"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/storage"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/watch"
)

// BridgeHandler serves the agent-facing battle API.
type BridgeHandler struct {
	emu        *emulator.Client
	reader     *snapshot.Reader
	detector   *battle.Detector
	controller *battle.Controller
	watcher    *watch.Watcher
	repo       storage.Repository
}

func NewBridgeHandler(emu *emulator.Client, reader *snapshot.Reader, detector *battle.Detector, controller *battle.Controller, watcher *watch.Watcher, repo storage.Repository) *BridgeHandler {
	return &BridgeHandler{
		emu:        emu,
		reader:     reader,
		detector:   detector,
		controller: controller,
		watcher:    watcher,
		repo:       repo,
	}
}
