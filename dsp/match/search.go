package match

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/conv"
	"github.com/cwbudde/algo-xcorr/dsp/core"
	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
)

// ZeroEnergy is the fraction of the largest window energy below which a window
// counts as empty and scores 0.
const ZeroEnergy = 1e-12

// Match is the best template position found by a search.
type Match struct {
	X     int // column of the template's top-left corner
	Y     int // row of the template's top-left corner
	Score float64
}

func (m Match) String() string {
	return fmt.Sprintf("(%d, %d) score=%.6f", m.X, m.Y, m.Score)
}

// CosineSearch finds a template in images of a fixed maximum size.
//
// A CosineSearch owns its buffers and is not safe for concurrent use.
type CosineSearch struct {
	template fft2d.Size
	image    fft2d.Size

	cache     *fft2d.PlanCache
	ownsCache bool

	num    *conv.Correlator
	energy *conv.Correlator
	ones   *mat.Dense
}

// NewCosineSearch creates a search for templates up to template in images up to
// image. Unless opts supply a plan cache, the search creates its own so that
// both correlators share one set of plans.
func NewCosineSearch(template, image fft2d.Size, opts ...conv.Option) (*CosineSearch, error) {
	if !template.Valid() || !image.Valid() {
		return nil, fmt.Errorf("%w: template %v, image %v", fft2d.ErrInvalidArgument, template, image)
	}
	if !template.Fits(image) {
		return nil, fmt.Errorf("%w: template %v larger than image %v", fft2d.ErrInvalidArgument, template, image)
	}

	s := &CosineSearch{template: template, image: image}

	cfg := conv.ApplyOptions(opts...)
	if cfg.Cache == nil {
		s.cache = fft2d.NewPlanCache(cfg.Backend)
		s.ownsCache = true
		opts = append(opts, conv.WithPlanCache(s.cache))
	} else {
		s.cache = cfg.Cache
	}

	var err error
	if s.num, err = conv.NewCorrelator(image, opts...); err != nil {
		s.Close()
		return nil, err
	}
	if s.energy, err = conv.NewCorrelator(image, opts...); err != nil {
		s.Close()
		return nil, err
	}

	s.ones = mat.NewDense(template.Rows, template.Cols, nil)
	s.ones.Apply(func(_, _ int, _ float64) float64 { return 1 }, s.ones)

	return s, nil
}

// Template returns the largest template size the search accepts.
func (s *CosineSearch) Template() fft2d.Size { return s.template }

// Image returns the largest image size the search accepts.
func (s *CosineSearch) Image() fft2d.Size { return s.image }

// Search returns the offset with the highest score. Ties resolve to the first
// offset in row-major order.
func (s *CosineSearch) Search(template, image mat.Matrix) (Match, error) {
	scores, err := s.Scores(template, image)
	if err != nil {
		return Match{}, err
	}

	row, col, score := conv.FindPeak(scores)
	return Match{X: col, Y: row, Score: score}, nil
}

// Scores returns the score of every valid offset as a
// (rows_I − rows_T + 1) × (cols_I − cols_T + 1) matrix indexed by (row, col).
func (s *CosineSearch) Scores(template, image mat.Matrix) (*mat.Dense, error) {
	tr, tc := template.Dims()
	ir, ic := image.Dims()
	ts := fft2d.Size{Rows: tr, Cols: tc}
	is := fft2d.Size{Rows: ir, Cols: ic}

	if !ts.Fits(s.template) || !is.Fits(s.image) {
		return nil, fmt.Errorf("%w: template %v in image %v exceeds search %v in %v",
			fft2d.ErrInvalidArgument, ts, is, s.template, s.image)
	}
	if !ts.Fits(is) {
		return nil, fmt.Errorf("%w: template %v larger than image %v", fft2d.ErrInvalidArgument, ts, is)
	}

	num, err := s.num.Correlate(template, image)
	if err != nil {
		return nil, fmt.Errorf("match: template correlation: %w", err)
	}

	energy, err := s.windowEnergy(ts, image)
	if err != nil {
		return nil, fmt.Errorf("match: window energy: %w", err)
	}

	norm := mat.Norm(template, 2)
	rows, cols := ir-tr+1, ic-tc+1

	numM := num.ToMat(false)
	energyM := energy.ToMat(false)

	peak := 0.0
	for i := range rows {
		for j := range cols {
			peak = math.Max(peak, energyM.At(i, j))
		}
	}
	floor := ZeroEnergy * peak

	scores := mat.NewDense(rows, cols, nil)
	if norm == 0 {
		return scores, nil
	}

	for i := range rows {
		for j := range cols {
			e := energyM.At(i, j)
			if e <= floor {
				continue
			}
			v := numM.At(i, j) / (math.Sqrt(e) * norm)
			if !core.IsFinite(v) {
				continue
			}
			scores.Set(i, j, math.Max(-1, math.Min(1, v)))
		}
	}

	return scores, nil
}

// windowEnergy correlates a window of ones of the template size with the
// squared image, giving Σ I(x+t)² for every offset t.
func (s *CosineSearch) windowEnergy(template fft2d.Size, image mat.Matrix) (*fft2d.Signal, error) {
	inputs := s.energy.Inputs()

	window, err := inputs.At(0)
	if err != nil {
		return nil, err
	}
	squared, err := inputs.At(1)
	if err != nil {
		return nil, err
	}

	if err := window.Set(s.ones.Slice(0, template.Rows, 0, template.Cols)); err != nil {
		return nil, err
	}
	if err := squared.Set(image); err != nil {
		return nil, err
	}
	if err := squared.Real().Mul(squared, squared); err != nil {
		return nil, err
	}

	return s.energy.Run()
}

// Close releases the correlators and, if the search created it, the plan cache.
func (s *CosineSearch) Close() {
	if s.num != nil {
		s.num.Close()
		s.num = nil
	}
	if s.energy != nil {
		s.energy.Close()
		s.energy = nil
	}
	if s.ownsCache {
		s.cache.Close()
		s.ownsCache = false
	}
}
