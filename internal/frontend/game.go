// Package frontend is the demo presentation layer: an ebiten.Game that
// drives an internal/nes.Console one frame at a time, presents its rented
// framebuffer, streams APU samples to ebiten's audio player, and polls
// keyboard state into controller port 1. None of this is part of the core -
// it is one concrete collaborator of the typed interfaces the core exposes
// (framebuffer.Framebuffer, Console.DrainAudio sample draining,
// controller.Port).
package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/nescore/nescore/internal/controller"
	"github.com/nescore/nescore/internal/nes"
)

const (
	screenWidth  = 256
	screenHeight = 240
	sampleRate   = 44100
)

// Game wires a Console to ebiten's update/draw/audio loop.
type Game struct {
	console *nes.Console
	scale   int

	img *ebiten.Image

	audioCtx    *audio.Context
	audioPlayer *audio.Player
	pcm         *pcmStream

	keymap map[ebiten.Key]controller.Button
}

// New builds a Game around console, scaling the 256x240 native picture by
// scale for the window.
func New(console *nes.Console, scale int) *Game {
	g := &Game{
		console: console,
		scale:   scale,
		img:     ebiten.NewImage(screenWidth, screenHeight),
		keymap:  defaultKeymap(),
	}
	console.APU().SetSampleRate(sampleRate)
	g.audioCtx = audio.NewContext(sampleRate)
	g.pcm = newPCMStream(sampleRate)
	player, err := g.audioCtx.NewPlayer(g.pcm)
	if err == nil {
		g.audioPlayer = player
		g.audioPlayer.Play()
	}
	return g
}

func defaultKeymap() map[ebiten.Key]controller.Button {
	return map[ebiten.Key]controller.Button{
		ebiten.KeyZ:         controller.ButtonA,
		ebiten.KeyX:         controller.ButtonB,
		ebiten.KeyBackspace: controller.ButtonSelect,
		ebiten.KeyEnter:     controller.ButtonStart,
		ebiten.KeyUp:        controller.ButtonUp,
		ebiten.KeyDown:      controller.ButtonDown,
		ebiten.KeyLeft:      controller.ButtonLeft,
		ebiten.KeyRight:     controller.ButtonRight,
	}
}

// Update polls keyboard state into controller port 1 and runs the console
// forward until it reports a completed frame, matching the cooperative
// scheduling model: ebiten's own event loop is the only goroutine driving
// the core.
func (g *Game) Update() error {
	pad := g.console.Controller1()
	for key, button := range g.keymap {
		if ebiten.IsKeyPressed(key) {
			pad.Press(button)
		} else {
			pad.Release(button)
		}
	}
	for {
		reason := g.console.Progress(g.console.Bus.CPU.Cycles() + 200000)
		if reason == nes.StopFrameComplete || reason == nes.StopHalted {
			break
		}
	}
	g.pcm.enqueue(g.console.DrainAudio())
	return nil
}

// Draw presents the console's most recently completed frame.
func (g *Game) Draw(screen *ebiten.Image) {
	pixels := g.console.SwapFrame()
	if pixels == nil {
		return
	}
	g.img.WritePixels(pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)
}

// Layout reports the window's logical pixel size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth * g.scale, screenHeight * g.scale
}
