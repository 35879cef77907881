package main

import (
	"errors"
	"strings"

	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
)

// config holds every flag value of the command line.
type config struct {
	// backend is the transform backend name (see info)
	backend string

	// search
	templatePath string
	imagePath    string
	scoresPath   string
	normalize    bool

	// demo
	seed   int64
	rows   int
	cols   int
	patch  int
	patchY int
	patchX int
	value  float64

	// info
	size int
}

// newZeroConfig returns the defaults, which reproduce the classic
// constant-patch scene: a 6×6 block of 5.0 at row 10, column 18 of 32×32 noise.
func newZeroConfig() config {
	return config{
		backend: "algo-fft",
		seed:    1,
		rows:    32,
		cols:    32,
		patch:   6,
		patchY:  10,
		patchX:  18,
		value:   5.0,
		size:    100,
	}
}

func (cfg *config) validate() error {
	if _, err := backendByName(cfg.backend); err != nil {
		return err
	}

	if cfg.rows < 1 || cfg.cols < 1 {
		return errors.New("scene size must be positive")
	}
	if cfg.patch < 1 {
		return errors.New("patch size must be positive")
	}
	if cfg.patchY < 0 || cfg.patchX < 0 || cfg.patchY+cfg.patch > cfg.rows || cfg.patchX+cfg.patch > cfg.cols {
		return errors.New("patch does not fit inside the scene")
	}
	if cfg.size < 1 {
		return errors.New("info size must be positive")
	}

	return nil
}

// backends lists the selectable transform backends.
var backends = []fft2d.Backend{fft2d.AlgoFFT(), fft2d.Gonum()}

func backendByName(name string) (fft2d.Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, b := range backends {
		if b.Name() == name {
			return b, nil
		}
	}
	return nil, errors.New("unknown backend " + name)
}
