// Command nesdemo is a minimal ebiten-backed front-end for the core: it
// loads an iNES ROM, wires it into an internal/nes.Console, and presents
// frames/audio/input through internal/frontend.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/nescore/nescore/internal/frontend"
	"github.com/nescore/nescore/internal/inesfile"
	"github.com/nescore/nescore/internal/nes"
	"github.com/nescore/nescore/internal/ppu"
	"github.com/nescore/nescore/internal/version"
)

func main() {
	var scale int
	var pal bool

	root := &cobra.Command{
		Use:     "nesdemo <rom.nes>",
		Short:   "Run an NES ROM against the nescore emulation core",
		Version: version.GetDetailedVersion(),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], scale, pal)
		},
	}
	root.Flags().IntVar(&scale, "scale", 3, "window scale factor")
	root.Flags().BoolVar(&pal, "pal", false, "use PAL timing instead of NTSC")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(romPath string, scale int, pal bool) error {
	cart, err := inesfile.Load(romPath)
	if err != nil {
		return err
	}

	model := ppu.NTSC
	if pal {
		model = ppu.PAL
	}

	console := nes.New(cart, model)
	console.PowerCycle()

	game := frontend.New(console, scale)

	ebiten.SetWindowSize(256*scale, 240*scale)
	ebiten.SetWindowTitle("nescore: " + romPath)

	if err := ebiten.RunGame(game); err != nil {
		log.Printf("nesdemo: ebiten run loop exited: %v", err)
		return err
	}
	return nil
}
