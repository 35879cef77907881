package main

import (
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/conv"
	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
	"github.com/cwbudde/algo-xcorr/dsp/match"
	"github.com/cwbudde/algo-xcorr/dsp/spectrum"
)

// search runs a cosine search for a template in an image and returns the best
// match together with the score surface.
func search(backend fft2d.Backend, template, image mat.Matrix) (match.Match, *mat.Dense, error) {
	tr, tc := template.Dims()
	ir, ic := image.Dims()

	s, err := match.NewCosineSearch(fft2d.Size{Rows: tr, Cols: tc}, fft2d.Size{Rows: ir, Cols: ic},
		conv.WithBackend(backend))
	if err != nil {
		return match.Match{}, nil, errors.Wrap(err, "failed to create search")
	}
	defer s.Close()

	scores, err := s.Scores(template, image)
	if err != nil {
		return match.Match{}, nil, errors.Wrap(err, "failed to score offsets")
	}

	row, col, score := conv.FindPeak(scores)
	return match.Match{X: col, Y: row, Score: score}, scores, nil
}

func runSearch(cfg *config) error {
	backend, err := backendByName(cfg.backend)
	if err != nil {
		return err
	}

	template, err := readMatrix(cfg.templatePath)
	if err != nil {
		return err
	}
	image, err := readMatrix(cfg.imagePath)
	if err != nil {
		return err
	}

	if cfg.normalize {
		template = spectrum.Normalize(template)
		image = spectrum.Normalize(image)
	}

	best, scores, err := search(backend, template, image)
	if err != nil {
		return err
	}

	fmt.Printf("x=%d y=%d score=%.6f\n", best.X, best.Y, best.Score)

	if cfg.scoresPath != "" {
		return writeMatrixFile(cfg.scoresPath, scores)
	}
	return nil
}

// demoScene builds a rows × cols noise image in [0, 1) with a constant patch
// embedded at (patchY, patchX), and returns it with the patch as template.
func demoScene(cfg *config) (template, image *mat.Dense) {
	rng := rand.New(rand.NewSource(cfg.seed))

	image = mat.NewDense(cfg.rows, cfg.cols, nil)
	image.Apply(func(_, _ int, _ float64) float64 { return rng.Float64() }, image)

	template = mat.NewDense(cfg.patch, cfg.patch, nil)
	template.Apply(func(_, _ int, _ float64) float64 { return cfg.value }, template)

	image.Slice(cfg.patchY, cfg.patchY+cfg.patch, cfg.patchX, cfg.patchX+cfg.patch).(*mat.Dense).Copy(template)

	return template, image
}

func runDemo(cfg *config) error {
	backend, err := backendByName(cfg.backend)
	if err != nil {
		return err
	}

	template, image := demoScene(cfg)

	best, _, err := search(backend, template, image)
	if err != nil {
		return err
	}

	fmt.Printf("scene %dx%d, %dx%d patch of %g planted at x=%d y=%d\n",
		cfg.rows, cfg.cols, cfg.patch, cfg.patch, cfg.value, cfg.patchX, cfg.patchY)
	fmt.Printf("found x=%d y=%d score=%.6f (%s)\n", best.X, best.Y, best.Score, backend.Name())

	if best.X != cfg.patchX || best.Y != cfg.patchY {
		return errors.Errorf("patch found at x=%d y=%d, want x=%d y=%d", best.X, best.Y, cfg.patchX, cfg.patchY)
	}
	return nil
}

func runInfo(cfg *config) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	features := cpu.DetectFeatures()
	fmt.Fprintf(tw, "arch\t%s\n", features.Architecture)
	fmt.Fprintf(tw, "simd\tsse2=%t avx2=%t neon=%t\n", features.HasSSE2, features.HasAVX2, features.HasNEON)

	for _, b := range backends {
		fmt.Fprintf(tw, "backend\t%s\n", b.Name())
	}

	p := fft2d.Padded(fft2d.Size{Rows: cfg.size, Cols: cfg.size})
	fmt.Fprintf(tw, "padded %d\t%v (stride %d, %d bins per row)\n",
		cfg.size, p, fft2d.Stride(p.Cols), fft2d.SpectrumCols(p.Cols))

	return errors.Wrap(tw.Flush(), "failed to write info")
}
