package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/justyntemme/boky-t/internal/content"
	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/internal/nav"
	"github.com/justyntemme/boky-t/internal/search"
	"github.com/justyntemme/boky-t/internal/state"
	"github.com/justyntemme/boky-t/internal/ui"
	"github.com/justyntemme/boky-t/pkg/models"
)

const aboutHTML = `<h1>Boky Fivavahana Anglikana</h1>
<p>Voninahitra ho an'Andriamanitra irery ihany.</p>
<p>Raha misy olana na fanamarihana dia mifandraisa amin'ny mpamorona.</p>
<p>Mampiasà finaritra.</p>
<footer>Credits to <i>Lead Code Group</i>.</footer>`

func runReader(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	engine, err := env.Engine(aboutHTML)
	if err != nil {
		return err
	}
	idx, _ := env.Index()

	app := ui.NewApp(env.Cfg, engine, idx.Books(), env.Log)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("reader failed: %w", err)
	}
	return nil
}

func runSearch(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	query := strings.Join(cmd.Args().Slice(), " ")
	idx, err := env.Index()
	if err != nil {
		return err
	}

	var scope models.ID
	if name := cmd.String("book"); name != "" {
		b, err := idx.BookByName(name)
		if err != nil {
			return err
		}
		scope = b.ID
	}

	se, err := search.NewEngine(idx, env.Log)
	if err != nil {
		return err
	}
	hits, err := se.Search(query, scope)
	if errors.Is(err, search.ErrEmptyQuery) {
		return fmt.Errorf("nothing to search for")
	}
	if err != nil {
		return err
	}

	env.Log.Debug("Search done", zap.String("query", se.Normalize(query)), zap.Stringer("scope", scope), zap.Int("hits", len(hits)))
	for _, h := range hits {
		line := fmt.Sprintf("%-8s %-8s %s", h.Kind, h.ID, h.Label)
		if h.Subtitle != "" {
			line += " (" + h.Subtitle + ")"
		}
		fmt.Println(line)
	}
	return nil
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("exactly one title id expected")
	}
	id := models.ID(cmd.Args().First())

	idx, err := env.Index()
	if err != nil {
		return err
	}
	book, chapter, title, err := idx.Path(id)
	if err != nil {
		return err
	}
	if !idx.HasContent(id) {
		return fmt.Errorf("title %q has no content", id)
	}

	r, err := content.NewAssembler(idx, env.Log).Assemble(id, content.ClampZoom(int(cmd.Int("zoom"))))
	if err != nil {
		return err
	}
	if cmd.Bool("html") {
		fmt.Println(r.HTML())
		return nil
	}

	fmt.Printf("%s / %s / %s\n", book.Name, chapter.Title, title.Text)
	if r.Page.Valid {
		fmt.Printf("p. %s\n", r.Page)
	}
	fmt.Println()
	if r.Subtext != "" {
		for _, p := range content.Paragraphs(r.Subtext) {
			fmt.Println(p)
		}
		fmt.Println()
	}
	for _, p := range content.Paragraphs(r.Body) {
		fmt.Println(p)
	}
	return nil
}

func runList(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	name := strings.Join(cmd.Args().Slice(), " ")
	if name == "" {
		return fmt.Errorf("book name expected")
	}
	idx, err := env.Index()
	if err != nil {
		return err
	}
	book, err := idx.BookByName(name)
	if err != nil {
		return err
	}
	seq, err := nav.Sequence(idx, book.ID)
	if err != nil {
		return err
	}
	for _, t := range seq {
		fmt.Printf("%-8s %-6s %s\n", t.ID, t.Number, t.Text)
	}
	return nil
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	c, err := corpus.LoadDir(env.Cfg.Corpus.Dir)
	if err != nil {
		return err
	}
	idx, err := corpus.NewIndex(c, env.Cfg.Classification(), env.Log)
	if err != nil {
		problems := multierr.Errors(err)
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, p)
		}
		return fmt.Errorf("corpus in %s has %d problem(s)", env.Cfg.Corpus.Dir, len(problems))
	}

	var empty int
	for _, t := range idx.AllTitles() {
		if !idx.HasContent(t.ID) {
			empty++
		}
	}
	fmt.Printf("books:     %d\nchapters:  %d\ntitles:    %d (%d without content)\nfragments: %d\n",
		len(c.Books), len(c.Chapters), len(c.Titles), empty, len(c.Fragments))
	for _, b := range idx.Books() {
		class, _ := idx.Class(b.ID)
		if class.Special() {
			fmt.Printf("%-8s %s: %s\n", b.ID, b.Name, class)
		}
	}
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var err error
	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if err := env.Cfg.Dump(out); err != nil {
		return fmt.Errorf("unable to dump configuration: %w", err)
	}
	if len(fname) > 0 {
		env.Log.Info("Configuration dumped", zap.String("file", fname))
	}
	return nil
}
