// Command signal_path runs a recorded IQ stream (two-channel WAV) through
// the tuned receive chain and writes the demodulated audio to a mono WAV.
package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/iosupport/wavio"
	"github.com/skywave-radio/radiocore/modulation/analog"
	"github.com/skywave-radio/radiocore/signalpath"
)

func main() {
	flags := pflag.NewFlagSet("signal_path", pflag.ExitOnError)
	modeName := flags.String("mode", "NFM", "modulation type (AM/NFM/WFM/USB/LSB/CW)")
	bandwidth := flags.Float32("bandwidth", 12000, "receive filter bandwidth in Hz")
	shift := flags.Float32("shift", 0, "frequency shift applied to the input in Hz")
	afRate := flags.Int("af-rate", 48000, "audio output sample rate in Hz")
	flags.Parse(os.Args[1:])

	if flags.NArg() != 2 {
		log.Fatal("usage: signal_path [flags] <input_iq.wav> <output.wav>")
	}

	modulationType, err := analog.ParseType(*modeName)
	if err != nil {
		log.Fatal("parsing modulation type", "err", err)
	}

	inFile, err := os.Open(flags.Arg(0))
	if err != nil {
		log.Fatal("opening input file", "err", err)
	}
	defer inFile.Close()

	reader, err := wavio.NewReader(inFile, 1)
	if err != nil {
		log.Fatal("reading WAV file", "err", err)
	}

	options := signalpath.DefaultOptions(reader.SampleRate(), *afRate, modulationType)
	options.Input.FrequencyShift = dspmath.Real(*shift)
	options.ReceiveFilter.Bandwidth = dspmath.Real(*bandwidth)

	path, err := signalpath.NewSignalPath(options)
	if err != nil {
		log.Fatal("configuring signal path", "err", err)
	}

	outFile, err := os.Create(flags.Arg(1))
	if err != nil {
		log.Fatal("creating output file", "err", err)
	}
	defer outFile.Close()

	writer, err := wavio.NewWriter(outFile, *afRate, 16, 1)
	if err != nil {
		log.Fatal("configuring WAV writer", "err", err)
	}

	var writeErr error
	numAFSamples := 0
	levelMeter := dspmath.NewPeakDetector(0.0001)
	path.AddAFSink(signalpath.NewSinkFunc(func(samples []dspmath.Real) {
		if writeErr == nil {
			writeErr = writer.WriteSamples(samples)
			numAFSamples += len(samples)
		}
		for _, sample := range samples {
			levelMeter.Push(sample)
		}
	}))

	filterBW, filterTransition, kernelSize, decimation := path.ReceiveFilterInfo()
	log.Info("signal path configured",
		"mode", modulationType,
		"if_rate", path.IFSampleRate(),
		"filter_bandwidth", filterBW,
		"filter_transition", filterTransition,
		"filter_taps", kernelSize,
		"filter_decimation", decimation)

	buf := make([]complex64, 8192)
	for {
		n, err := reader.ReadIQ(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal("reading samples", "err", err)
		}
		path.PushSamples(buf[:n])
		if writeErr != nil {
			log.Fatal("writing samples", "err", writeErr)
		}
	}

	if err := writer.Close(); err != nil {
		log.Fatal("finalizing WAV file", "err", err)
	}

	log.Info("done", "audio_samples", numAFSamples, "peak_level", levelMeter.Peak())
}
