// Command vis_generator writes a WAV file containing only the VOX preamble
// and the VIS header of an SSTV mode, for exercising decoders and
// transmitter chains without a full picture.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/iosupport/wavio"
	"github.com/skywave-radio/radiocore/picture/sstv"
	"github.com/skywave-radio/radiocore/signal"
)

func main() {
	flags := pflag.NewFlagSet("vis_generator", pflag.ExitOnError)
	modeName := flags.String("mode", "PD120", "SSTV mode whose VIS code to generate")
	sampleRate := flags.Int("rate", 44100, "output sample rate in Hz")
	withVOX := flags.Bool("vox", true, "prepend the VOX preamble tones")
	flags.Parse(os.Args[1:])

	if flags.NArg() != 1 {
		log.Fatal("usage: vis_generator [flags] <output.wav>")
	}

	var spec sstv.ModeSpec
	for _, mode := range []sstv.Mode{
		sstv.ModePD90, sstv.ModePD120, sstv.ModePD160,
		sstv.ModePD180, sstv.ModePD240, sstv.ModePD290,
	} {
		if mode.String() == *modeName {
			spec = sstv.GetModeSpec(mode)
		}
	}
	if spec.Mode == sstv.ModeUnknown {
		log.Fatal("unsupported SSTV mode", "mode", *modeName)
	}

	generator := signal.NewGenerator(dspmath.Real(*sampleRate))

	var samples []dspmath.Real
	tone := func(t dspmath.FreqDuration) {
		generator.PushTone(t, func(sample dspmath.Real) {
			samples = append(samples, sample)
		})
	}

	if *withVOX {
		sstv.EncodeVOX(tone)
	}
	sstv.EncodeVIS(spec.VISCode, tone)
	generator.FadeToZero(func(sample dspmath.Real) {
		samples = append(samples, sample)
	})

	outFile, err := os.Create(flags.Arg(0))
	if err != nil {
		log.Fatal("creating output file", "err", err)
	}
	defer outFile.Close()

	writer, err := wavio.NewWriter(outFile, *sampleRate, 16, 1)
	if err != nil {
		log.Fatal("configuring WAV writer", "err", err)
	}
	if err := writer.WriteSamples(samples); err != nil {
		log.Fatal("writing samples", "err", err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal("finalizing WAV file", "err", err)
	}

	log.Info("generated VIS header", "mode", spec.Mode, "code", spec.VISCode, "samples", len(samples))
}
