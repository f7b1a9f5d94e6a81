// Command aprs_decoder demodulates Bell-202 AFSK from a WAV recording,
// deframes the HDLC bit stream and prints every AX.25 frame it finds.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/skywave-radio/radiocore/datalink/ax25"
	"github.com/skywave-radio/radiocore/datalink/hdlc"
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/iosupport/wavio"
	"github.com/skywave-radio/radiocore/modulation/digital/fsk"
	"github.com/skywave-radio/radiocore/result"
)

func main() {
	flags := pflag.NewFlagSet("aprs_decoder", pflag.ExitOnError)
	channel := flags.Int("channel", 1, "1-based channel of the input file to decode")
	printBad := flags.Bool("print-bad", false, "also print frames whose FCS check failed")
	flags.Parse(os.Args[1:])

	if flags.NArg() != 1 {
		log.Fatal("usage: aprs_decoder [flags] <input.wav>")
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

	demodulator := fsk.NewDemodulator(fsk.DefaultOptions(dspmath.Real(reader.SampleRate())))
	deframer := hdlc.NewDecoder()

	numFrames := 0
	numBadFrames := 0

	// AFSK carries NRZI on top of the tone pair: a tone transition encodes
	// a 0 bit, no transition a 1 bit.
	prevTone := false

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
			tone, bitReady := demodulator.Push(sample)
			if !bitReady {
				continue
			}

			dataBit := tone == prevTone
			prevTone = tone

			if deframer.PushBit(dataBit) != hdlc.EventFrameEnd {
				continue
			}

			decoded := ax25.Decode(deframer.FrameBytes)
			if message, ok := decoded.Value(); ok {
				numFrames++
				fmt.Println(message)
				continue
			}

			if decoded.Err().Kind == result.KindChecksumMismatch {
				numBadFrames++
				if *printBad {
					if partial, ok := decoded.Err().Partial.(ax25.Message); ok {
						fmt.Printf("[bad FCS] %s\n", partial)
					}
				}
			}
		}
	}

	log.Info("done", "frames", numFrames, "bad_frames", numBadFrames)
}
