// Command sstv_decoder decodes SSTV transmissions from a WAV recording and
// stores each received picture as a PNG in the output directory.
package main

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/iosupport/pngio"
	"github.com/skywave-radio/radiocore/iosupport/wavio"
	"github.com/skywave-radio/radiocore/picture/sstv"
)

// pictureAssembler accumulates decoded rows until the end-of-picture event
// and writes the finished raster out.
type pictureAssembler struct {
	outputDir string

	spec       sstv.ModeSpec
	rows       []dspmath.Color3[uint8]
	numRows    int
	inProgress bool

	numSaved int
}

func (a *pictureAssembler) handle(event sstv.Event) error {
	switch event.Kind {
	case sstv.EventDecodedVISCode:
		log.Info("decoded VIS code", "code", fmt.Sprintf("0x%02x", event.VISCode),
			"mode", sstv.GetModeFromVISCode(event.VISCode))

	case sstv.EventImagePixelsBegin:
		a.spec = sstv.GetModeSpec(event.Mode)
		a.rows = a.rows[:0]
		a.numRows = 0
		a.inProgress = true

	case sstv.EventImagePixelsRow:
		if !a.inProgress {
			return nil
		}
		a.rows = append(a.rows, event.Row...)
		a.numRows++

	case sstv.EventImagePixelsEnd:
		if !a.inProgress {
			return nil
		}
		a.inProgress = false
		return a.save()
	}
	return nil
}

func (a *pictureAssembler) save() error {
	sum := md5.Sum(colorBytes(a.rows))
	name := fmt.Sprintf("sstv_%s_%s.png", a.spec.Mode, hex.EncodeToString(sum[:8]))
	path := filepath.Join(a.outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := pngio.WriteRGB(f, a.rows, a.spec.ImageWidth, a.numRows); err != nil {
		return err
	}
	a.numSaved++
	log.Info("saved picture", "path", path, "rows", a.numRows)
	return nil
}

func colorBytes(pixels []dspmath.Color3[uint8]) []byte {
	out := make([]byte, 0, len(pixels)*3)
	for _, p := range pixels {
		out = append(out, p.R, p.G, p.B)
	}
	return out
}

func main() {
	flags := pflag.NewFlagSet("sstv_decoder", pflag.ExitOnError)
	channel := flags.Int("channel", 1, "1-based channel of the input file to decode")
	flags.Parse(os.Args[1:])

	if flags.NArg() != 2 {
		log.Fatal("usage: sstv_decoder [flags] <input.wav> <output_directory>")
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

	if err := os.MkdirAll(flags.Arg(1), 0o755); err != nil {
		log.Fatal("creating output directory", "err", err)
	}

	decoder := sstv.NewDecoder(dspmath.Real(reader.SampleRate()), sstv.ModeUnknown)
	assembler := &pictureAssembler{outputDir: flags.Arg(1)}

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
			decodeResult := decoder.Push(sample)
			events, ok := decodeResult.Value()
			if !ok {
				log.Warn("decode error", "err", decodeResult.Err())
				continue
			}
			for _, event := range events {
				if err := assembler.handle(event); err != nil {
					log.Fatal("saving picture", "err", err)
				}
			}
		}
	}

	log.Info("done", "pictures", assembler.numSaved)
}
