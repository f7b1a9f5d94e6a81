// Command debug_interpolator runs one channel of a WAV file through the
// polyphase interpolator and writes the result to another WAV, for offline
// inspection of the reconstruction response.
package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/iosupport/wavio"
	"github.com/skywave-radio/radiocore/signal"
)

func main() {
	flags := pflag.NewFlagSet("debug_interpolator", pflag.ExitOnError)
	ratio := flags.Int("ratio", 2, "interpolation ratio")
	channel := flags.Int("channel", 1, "1-based channel of the input file")
	flags.Parse(os.Args[1:])

	if flags.NArg() != 2 {
		log.Fatal("usage: debug_interpolator [flags] <input.wav> <output.wav>")
	}
	if *ratio < 1 {
		log.Fatal("ratio must be at least 1", "ratio", *ratio)
	}

	inFile, err := os.Open(flags.Arg(0))
	if err != nil {
		log.Fatal("opening input file", "err", err)
	}
	defer inFile.Close()

	reader, err := wavio.NewReader(inFile, *channel)
	if err != nil {
		log.Fatal("reading WAV file", "err", err)
	}

	outFile, err := os.Create(flags.Arg(1))
	if err != nil {
		log.Fatal("creating output file", "err", err)
	}
	defer outFile.Close()

	writer, err := wavio.NewWriter(outFile, reader.SampleRate()*(*ratio), 16, 1)
	if err != nil {
		log.Fatal("configuring WAV writer", "err", err)
	}

	interpolator := signal.NewInterpolator[dspmath.Real](*ratio)

	in := make([]dspmath.Real, 4096)
	out := make([]dspmath.Real, interpolator.CalcNeededOutputBufferSize(len(in)))
	numOut := 0
	for {
		n, err := reader.Read(in)
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal("reading samples", "err", err)
		}

		produced := interpolator.Process(in[:n], out)
		if err := writer.WriteSamples(produced); err != nil {
			log.Fatal("writing samples", "err", err)
		}
		numOut += len(produced)
	}

	if err := writer.Close(); err != nil {
		log.Fatal("finalizing WAV file", "err", err)
	}

	log.Info("done", "ratio", *ratio, "output_samples", numOut)
}
