package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/justyntemme/boky-t/pkg/models"
)

// File names of the four collections inside a corpus directory
const (
	BooksFile     = "books.json"
	ChaptersFile  = "chapters.json"
	TitlesFile    = "titles.json"
	FragmentsFile = "contents.json"
)

// LoadDir reads the four JSON arrays from dir
func LoadDir(dir string) (models.Corpus, error) {
	var (
		c    models.Corpus
		errs error
	)
	errs = multierr.Append(errs, readArray(filepath.Join(dir, BooksFile), &c.Books))
	errs = multierr.Append(errs, readArray(filepath.Join(dir, ChaptersFile), &c.Chapters))
	errs = multierr.Append(errs, readArray(filepath.Join(dir, TitlesFile), &c.Titles))
	errs = multierr.Append(errs, readArray(filepath.Join(dir, FragmentsFile), &c.Fragments))
	if errs != nil {
		return models.Corpus{}, errs
	}
	return c, nil
}

func readArray[T any](path string, out *[]T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read corpus file: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unable to parse corpus file '%s': %w", path, err)
	}
	return nil
}
