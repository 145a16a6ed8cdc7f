package renderer

import (
	_ "embed"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed shaders/background.fs
var backgroundFS string

// BackgroundRenderer renders a drifting noise haze tinted by the biome of the
// followed colony.
type BackgroundRenderer struct {
	shader        rl.Shader
	timeLoc       int32
	resolutionLoc int32
	cameraPosLoc  int32
	cameraZoomLoc int32
	baseColorLoc  int32

	screenW, screenH float32
	baseColor        [3]float32
	initialized      bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32) *BackgroundRenderer {
	b := &BackgroundRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
	}
	b.SetBaseColor(BiomeColor(0))
	return b
}

// Init initializes the renderer (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShaderFromMemory("", backgroundFS)
	b.timeLoc = rl.GetShaderLocation(b.shader, "time")
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.cameraPosLoc = rl.GetShaderLocation(b.shader, "cameraPos")
	b.cameraZoomLoc = rl.GetShaderLocation(b.shader, "cameraZoom")
	b.baseColorLoc = rl.GetShaderLocation(b.shader, "baseColor")

	rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{b.screenW, b.screenH}, rl.ShaderUniformVec2)

	b.initialized = true
}

// Resize updates the resolution uniform.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = float32(screenW)
	b.screenH = float32(screenH)
	if b.initialized {
		rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{b.screenW, b.screenH}, rl.ShaderUniformVec2)
	}
}

// SetBaseColor sets the haze tint.
func (b *BackgroundRenderer) SetBaseColor(c rl.Color) {
	b.baseColor = [3]float32{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
	}
}

// Draw renders the background in screen space.
func (b *BackgroundRenderer) Draw(time float32, cameraX, cameraY, cameraZoom float32) {
	if !b.initialized {
		b.Init()
	}

	rl.BeginShaderMode(b.shader)

	rl.SetShaderValue(b.shader, b.timeLoc, []float32{time}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.cameraPosLoc, []float32{cameraX, cameraY}, rl.ShaderUniformVec2)
	rl.SetShaderValue(b.shader, b.cameraZoomLoc, []float32{cameraZoom}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.baseColorLoc, b.baseColor[:], rl.ShaderUniformVec3)

	rl.DrawRectangle(0, 0, int32(b.screenW), int32(b.screenH), rl.White)

	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}
