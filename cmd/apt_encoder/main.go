// Command apt_encoder encodes grayscale images into an APT transmission
// stored as a WAV file.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/iosupport/pngio"
	"github.com/skywave-radio/radiocore/iosupport/wavio"
	"github.com/skywave-radio/radiocore/picture/apt"
)

func main() {
	flags := pflag.NewFlagSet("apt_encoder", pflag.ExitOnError)
	sampleRate := flags.Int("rate", 24960, "output sample rate in Hz")
	imageBPath := flags.String("image-b", "", "channel B image (defaults to the channel A image)")
	flags.Parse(os.Args[1:])

	if flags.NArg() != 2 {
		log.Fatal("usage: apt_encoder [flags] <input.png> <output.wav>")
	}

	imageA, err := loadImage(flags.Arg(0))
	if err != nil {
		log.Fatal("loading channel A image", "err", err)
	}

	imageB := imageA
	if *imageBPath != "" {
		imageB, err = loadImage(*imageBPath)
		if err != nil {
			log.Fatal("loading channel B image", "err", err)
		}
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

	encoder := apt.NewEncoder(dspmath.Real(*sampleRate))

	var samples []dspmath.Real
	err = encoder.Encode(apt.Message{ImageA: imageA, ImageB: imageB}, func(sample dspmath.Real) {
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

	log.Info("encoded transmission", "rows", imageA.Height, "samples", len(samples))
}

func loadImage(path string) (apt.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return apt.Image{}, err
	}
	defer f.Close()

	pixels, width, height, err := pngio.ReadGray(f)
	if err != nil {
		return apt.Image{}, err
	}
	return apt.Image{Pixels: pixels, Width: width, Height: height}, nil
}
