package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/cwbudde/algo-roomir/measure/ir"
)

// DecayPoint is one row of an exported decay curve.
type DecayPoint struct {
	TimeS   float64 `parquet:"time_s"`
	LevelDB float64 `parquet:"level_db"`
}

// DecayPoints pairs every curve sample with its time in seconds.
func DecayPoints(curve []float64, sampleRate float64) []DecayPoint {
	rows := make([]DecayPoint, len(curve))
	for i, v := range curve {
		rows[i] = DecayPoint{TimeS: float64(i) / sampleRate, LevelDB: v}
	}

	return rows
}

// IsParquet reports whether path names a Parquet file.
func IsParquet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".parquet")
}

// WriteDecayCurve writes curve to path. A .parquet path produces a
// snappy-compressed Parquet file of DecayPoint rows; any other path gets
// the tab-separated text form, compressed according to its extension.
// A file left incomplete by a failed write is removed.
func WriteDecayCurve(path string, curve []float64, sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("export: %w", ir.ErrInvalidSampleRate)
	}

	if IsParquet(path) {
		return removeOnError(path, writeParquet(path, DecayPoints(curve, sampleRate)))
	}

	return writeText(path, func(w io.Writer) error {
		return ir.WriteDecayCurve(w, curve, sampleRate)
	})
}

func writeText(path string, write func(io.Writer) error) error {
	w, err := Create(path)
	if err != nil {
		return err
	}

	err = write(w)
	if cerr := w.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("export: failed to close %s: %w", path, cerr)
	}

	return removeOnError(path, err)
}

func removeOnError(path string, err error) error {
	if err != nil {
		_ = os.Remove(path)
	}

	return err
}

func writeParquet(path string, rows []DecayPoint) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: failed to create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: failed to close %s: %w", path, cerr)
		}
	}()

	pw := parquet.NewGenericWriter[DecayPoint](f, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("export: failed to write parquet rows: %w", err)
	}

	if err := pw.Close(); err != nil {
		return fmt.Errorf("export: failed to finish parquet file: %w", err)
	}

	return nil
}

// ReadDecayCurve reads a curve written by WriteDecayCurve to a .parquet
// path.
func ReadDecayCurve(path string) ([]DecayPoint, error) {
	rows, err := parquet.ReadFile[DecayPoint](path)
	if err != nil {
		return nil, fmt.Errorf("export: failed to read %s: %w", path, err)
	}

	return rows, nil
}
