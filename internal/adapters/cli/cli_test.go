package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardarb-go/internal/adapters/cli"
	"github.com/andrescamacho/cardarb-go/test/helpers"
)

// writeTestConfig creates a quiet config whose history database lives in a temp dir
func writeTestConfig(t *testing.T, historyEnabled bool) string {
	t.Helper()
	return writeTestConfigWith(t, historyEnabled, "")
}

func writeTestConfigWith(t *testing.T, historyEnabled bool, extra string) string {
	t.Helper()
	dir := t.TempDir()
	body := "logging:\n  level: error\n  output: stderr\n" +
		"database:\n  type: sqlite\n  path: " + filepath.Join(dir, "history.db") + "\n"
	if historyEnabled {
		body += "  enabled: true\n"
	}
	body += extra
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func writePayloads(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func runCLI(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	if stdin != nil {
		root.SetIn(stdin)
	}
	err := root.Execute()
	return out.String(), err
}

func TestScanCommand_Text(t *testing.T) {
	cfg := writeTestConfig(t, false)
	dir := writePayloads(t, map[string]string{"charizard.json": helpers.CharizardPayload})

	out, err := runCLI(t, nil, "scan", filepath.Join(dir, "charizard.json"), "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, "Charizard (Evolving Skies)")
	assert.Contains(t, out, "tcgplayer=swsh7")
	assert.Contains(t, out, "rejected placeholder=1")
	assert.Contains(t, out, "Found ")
	assert.Contains(t, out, "RANK")
}

func TestScanCommand_JSONFromStdin(t *testing.T) {
	cfg := writeTestConfig(t, false)

	out, err := runCLI(t, strings.NewReader(helpers.CharizardPayload), "scan", "-", "--json", "--limit", "1", "--config", cfg)
	require.NoError(t, err)

	var result struct {
		CardName           string           `json:"card_name"`
		HasArbitrage       bool             `json:"has_arbitrage"`
		PricePoints        []map[string]any `json:"price_points"`
		Opportunities      []map[string]any `json:"opportunities"`
		TotalOpportunities int              `json:"total_opportunities"`
		Rejected           map[string]int   `json:"rejected"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Charizard", result.CardName)
	assert.True(t, result.HasArbitrage)
	assert.Len(t, result.PricePoints, 7)
	assert.Len(t, result.Opportunities, 1)
	assert.GreaterOrEqual(t, result.TotalOpportunities, 1)
	assert.Equal(t, 1, result.Rejected["placeholder"])
}

func TestScanCommand_Explain(t *testing.T) {
	cfg := writeTestConfig(t, false)

	out, err := runCLI(t, strings.NewReader(helpers.CharizardPayload), "scan", "-", "--explain", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, "Pair decisions:")
	assert.Contains(t, out, "same_source")
	assert.Contains(t, out, "accepted:")
}

func TestScanCommand_MissingFile(t *testing.T) {
	cfg := writeTestConfig(t, false)

	_, err := runCLI(t, nil, "scan", filepath.Join(t.TempDir(), "missing.json"), "--config", cfg)

	assert.Error(t, err)
}

func TestScanCommand_RecordAndHistory(t *testing.T) {
	cfg := writeTestConfig(t, true)

	_, err := runCLI(t, strings.NewReader(helpers.CharizardPayload), "scan", "-", "--record", "--config", cfg)
	require.NoError(t, err)
	_, err = runCLI(t, strings.NewReader(helpers.PikachuPayload), "scan", "-", "--record", "--config", cfg)
	require.NoError(t, err)

	out, err := runCLI(t, nil, "history", "--json", "--config", cfg)
	require.NoError(t, err)
	var all struct {
		Records []map[string]any `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	assert.Len(t, all.Records, 2)

	out, err = runCLI(t, nil, "history", "--card", "Charizard", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Charizard")
	assert.NotContains(t, out, "Pikachu")
}

func TestExtractCommand(t *testing.T) {
	cfg := writeTestConfig(t, false)

	out, err := runCLI(t, strings.NewReader(`{"trendPrice": 30, "averagePrice": 28}`), "extract", "cardmarket", "-", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, "2 price points from cardmarket")
	assert.Contains(t, out, "30.00 EUR")
	assert.Contains(t, out, "32.70")
}

func TestExtractCommand_UnknownSource(t *testing.T) {
	cfg := writeTestConfig(t, false)

	_, err := runCLI(t, strings.NewReader(`{}`), "extract", "ebay", "-", "--config", cfg)

	assert.ErrorContains(t, err, "unknown")
}

func TestValidateCommand(t *testing.T) {
	cfg := writeTestConfig(t, false)

	out, err := runCLI(t, nil, "validate", "--price", "999.99", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "rejected: placeholder")

	out, err = runCLI(t, nil, "validate", "--price", "45", "--rarity", "Rare Holo", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "Rarity class: holofoil")

	_, err = runCLI(t, nil, "validate", "--config", cfg)
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	cfg := writeTestConfig(t, false)
	dir := writePayloads(t, map[string]string{
		"charizard.json": helpers.CharizardPayload,
		"pikachu.json":   helpers.PikachuPayload,
		"broken.json":    "{",
		"readme.txt":     "ignored",
	})

	out, err := runCLI(t, nil, "batch", dir, "--json", "--workers", "2", "--config", cfg)
	require.NoError(t, err)

	var entries []struct {
		File          string         `json:"file"`
		Card          string         `json:"card"`
		Opportunities int            `json:"opportunities"`
		Best          map[string]any `json:"best"`
		Error         string         `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "broken.json", entries[0].File)
	assert.NotEmpty(t, entries[0].Error)
	assert.Equal(t, "Charizard", entries[1].Card)
	assert.NotNil(t, entries[1].Best)
	assert.Equal(t, "Pikachu", entries[2].Card)
	assert.Zero(t, entries[2].Opportunities)
}

func TestBatchCommand_ProductFilter(t *testing.T) {
	cfg := writeTestConfig(t, false)
	dir := writePayloads(t, map[string]string{
		"charizard.json": helpers.CharizardPayload,
		"pikachu.json":   helpers.PikachuPayload,
	})

	out, err := runCLI(t, nil, "batch", dir, "--product", "pikachu #25", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, "Pikachu")
	assert.NotContains(t, out, "Charizard")
	assert.Contains(t, out, "1 cards, 0 with arbitrage, 0 failed")
}

func TestWatchCommand_Once(t *testing.T) {
	cfg := writeTestConfig(t, true)
	dir := writePayloads(t, map[string]string{
		"charizard.json": helpers.CharizardPayload,
		"pikachu.json":   helpers.PikachuPayload,
	})

	out, err := runCLI(t, nil, "watch", dir, "--once", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Scanned 2 cards, 1 with arbitrage.")

	out, err = runCLI(t, nil, "history", "--json", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, `"scan_id"`))
}

func TestConfigCommands(t *testing.T) {
	cfg := writeTestConfig(t, false)

	out, err := runCLI(t, nil, "config", "show", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Base currency:     USD")
	assert.Contains(t, out, "tcgplayer")

	out, err = runCLI(t, nil, "config", "validate", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestFetchCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/swsh7-4" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"data": {
			"id": "swsh7-4", "name": "Charizard", "number": "4", "rarity": "Rare Holo",
			"set": {"name": "Evolving Skies"},
			"tcgplayer": {"prices": {"normal": {"market": 20.0}}},
			"cardmarket": {"prices": {"trendPrice": 30.0}}
		}}`))
	}))
	defer server.Close()

	cfg := writeTestConfigWith(t, false,
		"api:\n  pokemontcg:\n    base_url: "+server.URL+"\n  retry:\n    max_attempts: 0\n")
	saved := filepath.Join(t.TempDir(), "charizard.json")

	out, err := runCLI(t, nil, "fetch", "swsh7-4", "--save", saved, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Charizard (Evolving Skies)")
	assert.Contains(t, out, "Found 1 arbitrage opportunities")

	// the saved payload scans the same way offline
	out, err = runCLI(t, nil, "scan", saved, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 arbitrage opportunities")

	_, err = runCLI(t, nil, "fetch", "missing-1", "--config", cfg)
	assert.ErrorContains(t, err, "not found")
}
