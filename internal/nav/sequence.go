package nav

import (
	"cmp"
	"slices"

	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/pkg/models"
)

// Sequence returns every title of a book ordered for linear reading:
// chapter order, then title order, stably sorted by number with a missing
// number counted as 0.
func Sequence(idx *corpus.Index, bookID models.ID) ([]models.Title, error) {
	chapters, err := idx.ChaptersOf(bookID)
	if err != nil {
		return nil, err
	}
	var seq []models.Title
	for _, ch := range chapters {
		titles, err := idx.TitlesOf(ch.ID)
		if err != nil {
			return nil, err
		}
		seq = append(seq, titles...)
	}
	sortByNumber(seq)
	return seq, nil
}

// Position returns the index of titleID in seq, or -1
func Position(seq []models.Title, titleID models.ID) int {
	return slices.IndexFunc(seq, func(t models.Title) bool {
		return t.ID == titleID
	})
}

// Neighbors reports whether prev and next exist around position i
func Neighbors(seq []models.Title, i int) (hasPrev, hasNext bool) {
	if i < 0 {
		return false, false
	}
	return i > 0, i < len(seq)-1
}

func sortByNumber(titles []models.Title) {
	slices.SortStableFunc(titles, func(a, b models.Title) int {
		return cmp.Compare(a.Number.Key(), b.Number.Key())
	})
}
