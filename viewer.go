package main

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/camera"
	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/game"
	"github.com/pthm-cable/wormsoup/inspector"
	"github.com/pthm-cable/wormsoup/renderer"
	"github.com/pthm-cable/wormsoup/telemetry"
	"github.com/pthm-cable/wormsoup/ui"
)

const controlsLegend = "[Space] pause  [Tab] next colony  [B] buy  [M] mutate  [F] follow  [H] panel  [F5] snapshot  [Wheel] zoom  [MMB] pan"

// viewer observes a simulation: it steps it once per frame, refreshes the
// drawn snapshot at screen.render_hz and routes input to the control surface.
type viewer struct {
	cfg *config.Config
	sim *game.Simulation

	cam       *camera.Camera
	scene     *renderer.Scene
	overlays  *ui.OverlayRegistry
	controls  *ui.ControlsPanel
	hud       *ui.HUD
	events    *ui.EventPanel
	colony    *ui.ColonyPanel
	perf      *ui.PerfPanel
	economy   *inspector.EconomyPanel
	inspector *inspector.Inspector

	paused    bool
	following bool
	clock     float64
	renderAcc float64
}

func newViewer(cfg *config.Config, sim *game.Simulation, seed int64) *viewer {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())

	v := &viewer{
		cfg:       cfg,
		sim:       sim,
		cam:       camera.New(float32(w), float32(h)),
		scene:     renderer.NewScene(cfg, w, h, seed),
		overlays:  ui.NewOverlayRegistry(),
		controls:  ui.NewControlsPanel(10, 10, 220),
		hud:       ui.NewHUD(),
		events:    ui.NewEventPanel(240, 10, 420, 8),
		colony:    ui.NewColonyPanel(240, 0),
		perf:      ui.NewPerfPanel(0, 0),
		economy:   inspector.NewEconomyPanel(w, h, cfg.Economy),
		inspector: inspector.NewInspector(w, h),
		following: true,
	}
	v.layout(w, h)

	sim.Bus().Subscribe(v.scene.OnEvent)
	sim.OnStats(v.economy.Update)
	v.scene.SetSnapshot(sim.Snapshot())
	return v
}

// layout positions screen-anchored panels.
func (v *viewer) layout(w, h int32) {
	v.colony.SetPosition(240, 20+v.events.Height())
	v.perf.SetPosition(w-310, h-190)
}

// Update handles input and advances the simulation by one frame.
func (v *viewer) Update() {
	dt := rl.GetFrameTime()
	v.clock += float64(dt)

	if rl.IsWindowResized() {
		w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		v.cam.Resize(float32(w), float32(h))
		v.scene.Resize(w, h)
		v.economy.Resize(w, h)
		v.inspector.Resize(w, h)
		v.layout(w, h)
	}

	v.handleKeys()
	v.handleMouse()

	if !v.paused {
		v.sim.Step(float64(dt))
	}
	v.sim.RecordFrame()

	// Observation is throttled; the simulation itself runs every frame
	v.renderAcc += float64(dt)
	if hz := v.cfg.Screen.RenderHz; hz <= 0 || v.renderAcc >= 1/float64(hz) {
		v.scene.SetSnapshot(v.sim.Snapshot())
		v.renderAcc = 0
	}

	if v.following {
		if c := v.selectedColony(); c != nil {
			v.cam.Follow(float32(c.X), float32(c.Y), dt)
		}
	}
	v.scene.Update(dt)
}

func (v *viewer) handleKeys() {
	v.overlays.PollKeys()

	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		v.sim.NextColony()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		v.sim.Buy(int(v.controls.Steps.Buyers))
	}
	if rl.IsKeyPressed(rl.KeyM) {
		v.sim.TriggerMutation()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		v.following = !v.following
	}
	if rl.IsKeyPressed(rl.KeyH) {
		v.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		v.saveSnapshot()
	}
}

func (v *viewer) handleMouse() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(1 + 0.1*wheel)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X/v.cam.Zoom, -d.Y/v.cam.Zoom)
		v.following = false
	}

	mx, my := rl.GetMouseX(), rl.GetMouseY()
	if v.controls.Contains(mx, my) {
		return
	}
	if v.overlays.IsEnabled(ui.OverlayEconomy) {
		v.economy.HandleInput()
	}
	v.inspector.HandleInput(float32(mx), float32(my), v.cam, v.scene)
}

// Draw renders the world and the UI.
func (v *viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	v.scene.Layers = v.overlays.Layers()
	v.scene.Draw(v.cam, v.clock)

	rl.BeginMode2D(renderer.Camera2D(v.cam))
	v.inspector.DrawSelectionHighlight(v.sim.Registry())
	rl.EndMode2D()

	v.apply(v.controls.Draw(v.overlays, v.paused))

	snap := v.scene.Snapshot()
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	v.hud.Draw(v.hudData(snap), w)

	if v.overlays.IsEnabled(ui.OverlayEvents) {
		v.events.Draw(v.sim.Events())
		v.colony.Draw(v.selectedColony())
	}
	if v.overlays.IsEnabled(ui.OverlayEconomy) {
		v.economy.Draw()
	}
	if v.overlays.IsEnabled(ui.OverlayPerf) {
		v.perf.Draw(v.sim.Perf())
	}
	v.inspector.Draw(v.sim.Registry())

	v.hud.DrawControls(h, controlsLegend)
	rl.EndDrawing()
}

// apply routes panel actions to the control surface.
func (v *viewer) apply(actions []ui.Action) {
	for _, a := range actions {
		switch a.Kind {
		case ui.ActionBuy:
			v.sim.Buy(int(a.Amount))
		case ui.ActionVolume:
			v.sim.AddVolume(a.Amount)
		case ui.ActionMarketCap:
			v.sim.AddMarketCap(a.Amount)
		case ui.ActionMutate:
			v.sim.TriggerMutation()
		case ui.ActionNextColony:
			v.sim.NextColony()
		case ui.ActionPause:
			v.paused = !v.paused
		case ui.ActionSnapshot:
			v.saveSnapshot()
		}
		slog.Debug("control", "action", a.Kind.String(), "amount", a.Amount)
	}
}

func (v *viewer) saveSnapshot() {
	path, err := v.sim.SaveSnapshot("")
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path)
}

func (v *viewer) hudData(snap *telemetry.WorldSnapshot) ui.HUDData {
	d := ui.HUDData{
		Title:  "Worm Soup",
		Target: v.sim.TargetPopulation(),
		FPS:    rl.GetFPS(),
		Paused: v.paused,
	}
	if snap == nil {
		return d
	}
	d.Buyers = snap.Buyers
	d.Volume = snap.Volume
	d.MarketCap = snap.MarketCap
	d.Growth = snap.Growth
	d.NextSplit = snap.NextSplit
	d.Colonies = len(snap.Colonies)
	d.Worms = snap.WormCount()
	d.Selected = snap.Selected
	d.Tick = snap.Tick
	d.SimTime = snap.Time
	if snap.Boss != nil {
		d.BossPhase = snap.Boss.Phase
	}
	return d
}

// selectedColony returns the selected colony in the drawn snapshot.
func (v *viewer) selectedColony() *telemetry.ColonyState {
	snap := v.scene.Snapshot()
	if snap == nil {
		return nil
	}
	for i := range snap.Colonies {
		if snap.Colonies[i].ID == snap.Selected {
			return &snap.Colonies[i]
		}
	}
	return nil
}

// Unload frees GPU resources.
func (v *viewer) Unload() {
	v.scene.Unload()
}
