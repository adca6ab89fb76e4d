package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// File permission constants.
const (
	dataDirPermission  = 0o750
	dataFilePermission = 0o600
)

// WriteCSV writes rows to path, creating parent directories as needed.
func WriteCSV(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), dataDirPermission); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, dataFilePermission)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer f.Close() //nolint:errcheck // write errors surface from MarshalFile

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// ReadCSV loads rows from path. A missing file maps to ErrDatasetMissing and
// a file with no data rows to ErrDatasetEmpty, so the trainer can abort
// cleanly without writing a partial model.
func ReadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrDatasetMissing)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var rows []Row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		// gocsv reports a bare empty file as an error; fold it into the
		// empty-dataset condition the trainer expects.
		return nil, fmt.Errorf("%s: %w", path, ErrDatasetEmpty)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrDatasetEmpty)
	}
	return rows, nil
}
