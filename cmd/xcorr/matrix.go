package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// readMatrix loads a matrix from a CSV file with one row per line.
func readMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open matrix file")
	}
	defer f.Close()

	m, err := decodeMatrix(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return m, nil
}

// decodeMatrix parses comma-separated rows of numbers. Every row must have
// the same number of fields.
func decodeMatrix(r io.Reader) (*mat.Dense, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "invalid csv")
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, errors.New("empty matrix")
	}

	rows, cols := len(records), len(records[0])
	data := make([]float64, 0, rows*cols)
	for i, rec := range records {
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d, column %d", i+1, j+1)
			}
			data = append(data, v)
		}
	}

	return mat.NewDense(rows, cols, data), nil
}

// writeMatrix writes m as CSV, one row per line.
func writeMatrix(w io.Writer, m mat.Matrix) error {
	cw := csv.NewWriter(w)

	rows, cols := m.Dims()
	rec := make([]string, cols)
	for i := range rows {
		for j := range cols {
			rec[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "failed to write row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}

// writeMatrixFile writes m to path, or to stdout when path is "-".
func writeMatrixFile(path string, m mat.Matrix) error {
	if path == "-" {
		return writeMatrix(os.Stdout, m)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create scores file")
	}

	if err := writeMatrix(f, m); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close scores file")
}
