// Command sstv_encoder encodes a PNG image into an SSTV transmission
// stored as a WAV file.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/iosupport/pngio"
	"github.com/skywave-radio/radiocore/iosupport/wavio"
	"github.com/skywave-radio/radiocore/picture/sstv"
)

func main() {
	flags := pflag.NewFlagSet("sstv_encoder", pflag.ExitOnError)
	modeName := flags.String("mode", "PD120", "SSTV mode (PD90/PD120/PD160/PD180/PD240/PD290)")
	sampleRate := flags.Int("rate", 44100, "output sample rate in Hz")
	flags.Parse(os.Args[1:])

	if flags.NArg() != 2 {
		log.Fatal("usage: sstv_encoder [flags] <input.png> <output.wav>")
	}

	mode := parseMode(*modeName)
	if mode == sstv.ModeUnknown {
		log.Fatal("unsupported SSTV mode", "mode", *modeName)
	}

	inFile, err := os.Open(flags.Arg(0))
	if err != nil {
		log.Fatal("opening input image", "err", err)
	}
	defer inFile.Close()

	pixels, width, height, err := pngio.ReadRGB(inFile)
	if err != nil {
		log.Fatal("decoding input image", "err", err)
	}

	outFile, err := os.Create(flags.Arg(1))
	if err != nil {
		log.Fatal("creating output file", "err", err)
	}
	defer outFile.Close()

	writer, err := wavio.NewWriter(outFile, *sampleRate, 16, 1)
	if err != nil {
		log.Fatal("configuring WAV writer", "err", err)
	}

	encoder := sstv.NewEncoder(dspmath.Real(*sampleRate))
	message := sstv.Message{Mode: mode, Pixels: pixels, Width: width, Height: height}

	var samples []dspmath.Real
	err = encoder.Encode(message, func(sample dspmath.Real) {
		samples = append(samples, sample)
	})
	if err != nil {
		log.Fatal("encoding transmission", "err", err)
	}

	if err := writer.WriteSamples(samples); err != nil {
		log.Fatal("writing samples", "err", err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal("finalizing WAV file", "err", err)
	}

	log.Info("encoded transmission", "mode", mode, "samples", len(samples))
}

func parseMode(name string) sstv.Mode {
	for _, mode := range []sstv.Mode{
		sstv.ModePD90, sstv.ModePD120, sstv.ModePD160,
		sstv.ModePD180, sstv.ModePD240, sstv.ModePD290,
	} {
		if mode.String() == name {
			return mode
		}
	}
	return sstv.ModeUnknown
}
