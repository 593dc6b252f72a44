package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/noriah/wavepix"
	"github.com/noriah/wavepix/input"

	_ "github.com/noriah/wavepix/input/all"

	"github.com/integrii/flaggy"
)

// AppName is the app name
const AppName = "wavepix"

// AppDesc is the app description
const AppDesc = "waveform pixel renderer for your terminal"

// AppSite is the app website
const AppSite = "https://github.com/noriah/wavepix"

var version = "unknown"

func main() {
	log.SetFlags(0)

	cfg := newZeroConfig()

	if doFlags(&cfg) {
		return
	}

	wpxCfg, err := cfg.build()
	chk(err, "invalid config")

	// Root Context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	chk(wavepix.Run(&wpxCfg, ctx), "failed to run wavepix")
}

func doFlags(cfg *config) bool {

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	listBackendsCmd := flaggy.Subcommand{
		Name:                 "list-backends",
		ShortName:            "lb",
		Description:          "list all supported backends",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listBackendsCmd, 1)

	listDevicesCmd := flaggy.Subcommand{
		Name:                 "list-devices",
		ShortName:            "ld",
		Description:          "list all devices for a backend",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listDevicesCmd, 1)

	parser.String(&cfg.backend, "b", "backend", "backend name")
	parser.String(&cfg.device, "d", "device", "device name")
	parser.Float64(&cfg.sampleRate, "r", "rate", "sample rate")
	parser.Int(&cfg.sampleSize, "n", "samples", "sample size")
	parser.Int(&cfg.frameRate, "f", "fps", "frame rate (0 to draw on every sample window)")
	parser.Int(&cfg.border, "bd", "border", "border inset in pixels [0, +Inf)")
	parser.Int(&cfg.drawType, "dt", "draw", "draw type (0 bars, 1 line)")
	parser.Bool(&cfg.spectrum, "s", "spectrum", "draw the frequency spectrum instead of the waveform")
	parser.Bool(&cfg.green, "g", "green", "clear to the classic dark green background")
	parser.Bool(&cfg.logErrors, "v", "verbose", "log renderer errors to stderr")
	parser.String(&cfg.foreground, "fg", "foreground", "waveform color as RRGGBB hex")
	parser.String(&cfg.marker, "mk", "marker", "write-cursor color as RRGGBB hex")

	chk(parser.Parse(), "failed to parse arguments")

	switch {
	case listBackendsCmd.Used:
		for _, backend := range input.Backends {
			fmt.Printf("- %s\n", backend.Name)
		}

		return true

	case listDevicesCmd.Used:
		backendName := cfg.backend
		if backendName == "" {
			backendName = input.DefaultBackend()
		}

		backend, err := input.InitBackend(backendName)
		chk(err, "failed to init backend")

		devices, err := backend.Devices()
		chk(err, "failed to get devices")

		// We don't really need the default device to be indicated.
		defaultDevice, _ := backend.DefaultDevice()

		fmt.Printf("all devices for %q backend. '*' marks default\n", backendName)

		for idx := range devices {
			star := ' '
			if defaultDevice != nil && devices[idx].String() == defaultDevice.String() {
				star = '*'
			}

			fmt.Printf("- %v %c\n", devices[idx], star)
		}

		return true
	}

	return false
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
