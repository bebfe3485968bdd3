package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "Salamo", TruncateText("Salamo", 10))
	assert.Equal(t, "", TruncateText("Salamo", 0))

	got := TruncateText("Fanahy Masina ô, midina", 10)
	assert.LessOrEqual(t, lipgloss.Width(got), 10)
	assert.Contains(t, got, "…")
}

func TestThemeCycle(t *testing.T) {
	t.Cleanup(func() { SetCurrentTheme(DefaultTheme.Name) })

	SetCurrentTheme("unknown")
	assert.Equal(t, DefaultTheme.Name, CurrentTheme().Name)

	seen := map[string]bool{CurrentTheme().Name: true}
	for range len(BuiltinThemes) - 1 {
		seen[NextTheme()] = true
	}
	assert.Len(t, seen, len(BuiltinThemes))
	assert.Equal(t, DefaultTheme.Name, NextTheme())
	assert.Equal(t, []string{"default", "light", "sepia", "advent", "ordinary"}, GetThemeNames())
}
