// Package content rebuilds a title's displayable text from its fragment
// run and scales its inline font sizes.
package content

import (
	"strings"

	"go.uber.org/zap"

	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/pkg/models"
)

// Renderable is an assembled title ready for display
type Renderable struct {
	TitleID models.ID
	Subtext string // note shown above the body, special books only
	Body    string // concatenated fragment HTML after zoom
	Zoom    int
	Page    models.Number // printed page of the first fragment that has one
}

// HTML returns the body with the subtext block in front of it
func (r Renderable) HTML() string {
	if r.Subtext == "" {
		return r.Body
	}
	return `<div class="subtext">` + r.Subtext + `</div><hr/>` + r.Body
}

// Assembler builds renderables from the corpus
type Assembler struct {
	idx *corpus.Index
	log *zap.Logger
}

// NewAssembler creates an assembler over idx
func NewAssembler(idx *corpus.Index, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{idx: idx, log: log.Named("content")}
}

// Assemble concatenates the fragment run of titleID and applies zoom. The
// stored HTML is never modified, so repeated calls with different zoom
// values always scale from the original sizes.
func (a *Assembler) Assemble(titleID models.ID, zoom int) (Renderable, error) {
	frags, err := a.idx.Fragments(titleID)
	if err != nil {
		return Renderable{}, err
	}

	var (
		body strings.Builder
		page models.Number
	)
	for _, f := range frags {
		body.WriteString(f.HTML)
		if !page.Valid && f.PageNumber.Valid {
			page = f.PageNumber
		}
	}

	r := Renderable{
		TitleID: titleID,
		Body:    ApplyZoom(body.String(), zoom),
		Zoom:    zoom,
		Page:    page,
	}

	special, err := a.special(titleID)
	if err != nil {
		return Renderable{}, err
	}
	if special {
		for _, f := range frags {
			if s := strings.TrimSpace(f.Subtext); s != "" {
				r.Subtext = ApplyZoom(s, zoom)
				break
			}
		}
	}

	a.log.Debug("Assembled title", zap.Stringer("title", titleID), zap.Int("fragments", len(frags)), zap.Int("zoom", zoom))
	return r, nil
}

func (a *Assembler) special(titleID models.ID) (bool, error) {
	book, _, _, err := a.idx.Path(titleID)
	if err != nil {
		return false, err
	}
	class, err := a.idx.Class(book.ID)
	if err != nil {
		return false, err
	}
	return class.Special(), nil
}
