// Package vst2 adapts vst2 plugins to the sound.Filter capability, so a
// plugin can be wrapped around any node of the signal graph.
package vst2

import (
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
	vst2sdk "github.com/dudk/vst2"

	"github.com/dudk/sound"
)

// impulseLength is the length of the impulse response probe.
const impulseLength = 512

// processor is the processing surface of a loaded plugin.
type processor interface {
	Process(samples [][]float64) [][]float64
}

// Filter processes signal blocks with a loaded vst2 plugin.
type Filter struct {
	lib    *vst2sdk.Library
	plugin processor
}

// Open loads the plugin library at path and instantiates its plugin.
func Open(path string) (*Filter, error) {
	lib, err := vst2sdk.Open(path)
	if err != nil {
		return nil, err
	}
	plugin, err := lib.Open()
	if err != nil {
		lib.Close()
		return nil, err
	}
	return &Filter{lib: lib, plugin: plugin}, nil
}

// Close unloads the plugin library.
func (f *Filter) Close() {
	f.lib.Close()
}

// Process runs the block through the plugin and returns a block over the
// plugin's output buffer. Plugins are real-valued effects: a complex block
// is narrowed to its real part.
func (f *Filter) Process(b sound.Block) sound.Block {
	processed := f.plugin.Process([][]float64{realSamples(b)})
	return sound.Real(processed[0])
}

// realSamples returns the block's samples as float64, narrowing a complex
// block to its real part.
func realSamples(b sound.Block) []float64 {
	if !b.IsComplex() {
		return b.Floats()
	}
	s := make([]float64, b.Len())
	for i, v := range b.Complexes() {
		s[i] = real(v)
	}
	return s
}

// ImpulseResponse returns the plugin's response to a unit impulse. The
// plugin is an opaque stateful processor, so probing it advances its
// internal state.
func (f *Filter) ImpulseResponse() sound.Block {
	in := make([]float64, impulseLength)
	in[0] = 1
	return f.Process(sound.Real(in))
}

// FrequencyResponse returns the plugin's transfer function at n
// frequencies, the spectrum of its impulse response.
func (f *Filter) FrequencyResponse(n int) sound.Block {
	ir := f.ImpulseResponse().Floats()
	in := make([]complex128, n)
	for i := 0; i < n && i < len(ir); i++ {
		in[i] = complex(ir[i], 0)
	}
	out := make([]complex128, n)
	if plan, err := algofft.NewPlan64(n); err == nil {
		if err := plan.Forward(out, in); err == nil {
			return sound.Complex(out)
		}
	}
	// fall back to a direct transform for sizes the plan rejects
	for k := range out {
		var sum complex128
		for i, v := range in {
			sum += v * cmplx.Exp(complex(0, -2*math.Pi*float64(k)*float64(i)/float64(n)))
		}
		out[k] = sum
	}
	return sound.Complex(out)
}

// Wrap returns a node filtering the source's output through the plugin.
// When inPlace is false, sampled blocks are copied before processing.
func (f *Filter) Wrap(src sound.Node, inPlace bool) sound.Node {
	return &processed{src: src, f: f, inPlace: inPlace}
}

type processed struct {
	src     sound.Node
	f       *Filter
	inPlace bool
}

func (n *processed) Sample(count int) (sound.Block, error) {
	b, err := n.src.Sample(count)
	if err != nil {
		return sound.Block{}, err
	}
	if !n.inPlace {
		b = b.Clone()
	}
	return n.f.Process(b), nil
}

func (n *processed) Sources() []sound.Node {
	return []sound.Node{n.src}
}

// Scan walks the default plugin locations and the given paths and returns
// the plugin libraries found.
func Scan(paths ...string) []string {
	var found []string
	ext := fileExtension()
	for _, root := range uniquePaths(append(vst2sdk.DefaultScanPaths(), paths...)) {
		filepath.Walk(root, func(path string, file os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if strings.HasSuffix(file.Name(), ext) {
				found = append(found, path)
			}
			return nil
		})
	}
	return found
}

// fileExtension returns the plugin library extension of the current
// platform.
func fileExtension() string {
	switch runtime.GOOS {
	case "darwin":
		return ".vst"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

func uniquePaths(paths []string) []string {
	u := make([]string, 0, len(paths))
	m := make(map[string]bool)
	for _, path := range paths {
		if !m[path] {
			m[path] = true
			u = append(u, path)
		}
	}
	return u
}
