package payload_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardarb-go/internal/adapters/payload"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/test/helpers"
)

func TestFileLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "charizard.json")
	require.NoError(t, os.WriteFile(path, []byte(helpers.CharizardPayload), 0o644))

	card, err := payload.NewFileLoader(nil).Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "Charizard", card.Name)
	assert.Equal(t, "Evolving Skies", card.SetName)
	assert.Len(t, card.Sources, 3)
}

func TestFileLoader_LoadStdin(t *testing.T) {
	loader := payload.NewFileLoader(strings.NewReader(helpers.PikachuPayload))

	card, err := loader.Load(context.Background(), payload.StdinRef)

	require.NoError(t, err)
	assert.Equal(t, "Pikachu", card.Name)
}

func TestFileLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o644))
	loader := payload.NewFileLoader(nil)

	_, err := loader.Load(context.Background(), filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = loader.Load(context.Background(), broken)
	assert.ErrorContains(t, err, "broken.json")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = loader.Load(ctx, broken)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileLoader_LoadRaw(t *testing.T) {
	loader := payload.NewFileLoader(strings.NewReader(`{"trendPrice": 30.5, "averagePrice": 28}`))

	raw, err := loader.LoadRaw(context.Background(), payload.StdinRef)

	require.NoError(t, err)
	amount, ok := pricing.ToAmount(raw["trendPrice"])
	require.True(t, ok)
	assert.Equal(t, 30.5, amount)
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.JSON", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	refs, err := payload.ListDir(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.JSON"), filepath.Join(dir, "b.json")}, refs)
}

func TestExactNameMatcher(t *testing.T) {
	matcher := payload.NewExactNameMatcher()
	candidates := []pricing.CardIdentity{
		{Name: "Charizard", Number: "11", SetName: "Obsidian Flames"},
		{Name: "charizard ", Number: "4", SetName: "Base"},
		{Name: "Charizard ex", Number: "199"},
	}

	best, score, ok := matcher.FindBestMatch(payload.ParseProduct("Charizard #4"), candidates)
	require.True(t, ok)
	assert.Equal(t, "4", best.Number)
	assert.InDelta(t, 0.9, score, 1e-9)

	best, _, ok = matcher.FindBestMatch(pricing.CardIdentity{Name: "CHARIZARD"}, candidates)
	require.True(t, ok)
	assert.Equal(t, "11", best.Number)

	_, _, ok = matcher.FindBestMatch(pricing.CardIdentity{Name: "Blastoise"}, candidates)
	assert.False(t, ok)

	_, _, ok = matcher.FindBestMatch(pricing.CardIdentity{}, candidates)
	assert.False(t, ok)
}
