// Command sound plays or renders a composed tone: an oscillator graph with
// optional detuned second voice, lowpass filter and softclip, delivered to
// the default audio device or to a wav/mp3 file.
package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dudk/sound"
	"github.com/dudk/sound/adapter"
	"github.com/dudk/sound/filter"
	"github.com/dudk/sound/log"
	"github.com/dudk/sound/mp3"
	"github.com/dudk/sound/node"
	"github.com/dudk/sound/osc"
	"github.com/dudk/sound/portaudio"
	"github.com/dudk/sound/signal"
	"github.com/dudk/sound/wav"
)

var (
	waveName  = flag.String("wave", "sine", "waveform: sine, triangle, square, ramp, gauss or parabola")
	freq      = flag.Float64("freq", 440, "tone frequency in Hz")
	detune    = flag.Float64("detune", 0, "second voice offset in Hz, mixed in when non-zero")
	amplitude = flag.Float64("amp", 0.25, "peak amplitude")
	duration  = flag.Duration("duration", 2*time.Second, "tone duration")
	cutoff    = flag.Float64("cutoff", 0, "lowpass cutoff in Hz, applied when non-zero")
	softclip  = flag.Float64("softclip", 0, "softclip threshold, applied when non-zero")
	rate      = flag.Int("rate", 44100, "sample rate")
	blockSize = flag.Int("block", 512, "sink block size")
	pull      = flag.Int("pull", 1000, "samples pulled from the graph per write")
	out       = flag.String("out", "", "output file (.wav or .mp3); plays on the default device when empty")
)

func main() {
	flag.Parse()
	logger := log.GetLogger()

	if err := run(); err != nil {
		logger.Fatal(err)
	}
}

func run() error {
	logger := log.GetLogger()

	graph, err := buildGraph()
	if err != nil {
		return err
	}
	for _, n := range node.Graph(graph) {
		logger.Debug("graph node: ", n)
	}

	sink, err := buildSink()
	if err != nil {
		return err
	}
	w, err := adapter.NewWriter(sink)
	if err != nil {
		sink.Close()
		return err
	}

	start := time.Now()
	if err := pump(graph, w); err != nil {
		// the buffered tail is still flushed on the error path
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	logger.Info("done in ", time.Since(start))
	return nil
}

// pump pulls the graph until end of stream, feeding the writer.
func pump(graph sound.Node, w *adapter.Writer) error {
	for {
		b, err := graph.Sample(*pull)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if writeErr := w.Write([]sound.Block{b}); writeErr != nil {
			return writeErr
		}
	}
}

func buildGraph() (sound.Node, error) {
	wave, err := waveByName(*waveName)
	if err != nil {
		return nil, err
	}
	options := func() []osc.Option {
		return []osc.Option{
			osc.WithSampleRate(*rate),
			osc.WithAmplitude(*amplitude),
			osc.WithDuration(*duration),
		}
	}

	var graph sound.Node = osc.New(wave, *freq, options()...)
	if *detune != 0 {
		graph, err = node.Add(graph, osc.New(wave, *freq+*detune, options()...))
		if err != nil {
			return nil, err
		}
	}
	if *cutoff > 0 {
		graph = node.Filtered(graph, filter.Lowpass(*rate, *cutoff, 0.7071))
	}
	if *softclip > 0 {
		graph = node.Softclip(graph, *softclip)
	}
	return graph, nil
}

func buildSink() (sound.Sink, error) {
	switch {
	case *out == "":
		return portaudio.NewSink(*rate, 1, *blockSize)
	case strings.HasSuffix(*out, ".wav"):
		return wav.NewSink(*out, *rate, 1, *blockSize, signal.BitDepth16)
	case strings.HasSuffix(*out, ".mp3"):
		return mp3.NewSink(*out, *rate, 1, *blockSize, 192, 2)
	default:
		return nil, fmt.Errorf("unsupported output %q", *out)
	}
}

func waveByName(name string) (osc.Wave, error) {
	switch name {
	case "sine":
		return osc.Sine, nil
	case "triangle":
		return osc.Triangle, nil
	case "square":
		return osc.Square, nil
	case "ramp":
		return osc.Ramp, nil
	case "gauss":
		return osc.Gauss, nil
	case "parabola":
		return osc.Parabola, nil
	}
	return 0, fmt.Errorf("unknown waveform %q", name)
}
