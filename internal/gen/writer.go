package gen

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Each file is written under a
// temporary name and renamed into place.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)
		tmpPath := outputPath + ".tmp"

		if err := os.WriteFile(tmpPath, file.Content, filePerm); err != nil {
			return errors.Wrapf(err, "writing file %s", file.Filename)
		}

		if err := os.Rename(tmpPath, outputPath); err != nil {
			_ = os.Remove(tmpPath)

			return errors.Wrapf(err, "replacing file %s", file.Filename)
		}
	}

	return nil
}
