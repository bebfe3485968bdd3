package corpus

import "github.com/justyntemme/boky-t/pkg/models"

// Default book names, as shipped with the prayer book corpus
var (
	DefaultNumbered      = []string{"Fihirana", "H.A.A"}
	DefaultSingleChapter = []string{"Salamo"}
)

// Classification maps book display names onto navigation classes. It is
// only consulted while the index is built; afterwards classes are looked
// up by book id, so a renamed book keeps its class for the life of the
// index.
type Classification struct {
	Numbered      []string
	SingleChapter []string
}

// DefaultClassification returns the stock table
func DefaultClassification() Classification {
	return Classification{
		Numbered:      append([]string(nil), DefaultNumbered...),
		SingleChapter: append([]string(nil), DefaultSingleChapter...),
	}
}

// Classify returns the class for a book name. Matching is exact.
func (c Classification) Classify(name string) models.Class {
	var class models.Class
	for _, n := range c.Numbered {
		if n == name {
			class |= models.ClassNumbered
			break
		}
	}
	for _, n := range c.SingleChapter {
		if n == name {
			class |= models.ClassSingleChapter
			break
		}
	}
	return class
}
