// Command apt_decoder decodes an APT transmission from a WAV recording and
// stores the received raster as a grayscale PNG.
package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/iosupport/pngio"
	"github.com/skywave-radio/radiocore/iosupport/wavio"
	"github.com/skywave-radio/radiocore/picture/apt"
)

func main() {
	flags := pflag.NewFlagSet("apt_decoder", pflag.ExitOnError)
	channel := flags.Int("channel", 1, "1-based channel of the input file to decode")
	flags.Parse(os.Args[1:])

	if flags.NArg() != 2 {
		log.Fatal("usage: apt_decoder [flags] <input.wav> <output.png>")
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

	decoder := apt.NewDecoder(apt.DefaultDecoderOptions(dspmath.Real(reader.SampleRate())))

	var raster []uint8
	numLines := 0
	numSyncs := 0

	buf := make([]dspmath.Real, 4096)
	for {
		n, err := reader.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal("reading samples", "err", err)
		}

		for _, sample := range buf[:n] {
			events, ok := decoder.Push(sample).Value()
			if !ok {
				continue
			}
			for _, event := range events {
				switch event.Kind {
				case apt.EventLineSynchronization:
					numSyncs++
				case apt.EventLine:
					raster = append(raster, event.Pixels...)
					numLines++
				}
			}
		}
	}

	if numLines == 0 {
		log.Fatal("no APT lines decoded")
	}

	outFile, err := os.Create(flags.Arg(1))
	if err != nil {
		log.Fatal("creating output file", "err", err)
	}
	defer outFile.Close()

	if err := pngio.WriteGray(outFile, raster, apt.NumPixelsPerLine, numLines); err != nil {
		log.Fatal("writing PNG", "err", err)
	}

	log.Info("decoded transmission", "lines", numLines, "syncs", numSyncs, "path", flags.Arg(1))
}
