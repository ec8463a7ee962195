package pricing

import "strings"

// SetIDs are the catalogue identifiers of one expansion on each marketplace.
type SetIDs struct {
	TCGPlayerID     string
	PriceChartingID string
}

// SetMapping resolves expansion names to marketplace identifiers.
type SetMapping struct {
	entries map[string]SetIDs
}

// DefaultSetMapping covers recent Scarlet & Violet and Sword & Shield sets.
func DefaultSetMapping() *SetMapping {
	return NewSetMapping(map[string]SetIDs{
		"Twilight Masquerade": {TCGPlayerID: "sv5", PriceChartingID: "65957"},
		"Temporal Forces":     {TCGPlayerID: "sv4", PriceChartingID: "65269"},
		"Paradox Rift":        {TCGPlayerID: "sv3", PriceChartingID: "63241"},
		"Scarlet & Violet":    {TCGPlayerID: "sv1", PriceChartingID: "57223"},
		"Paldea Evolved":      {TCGPlayerID: "sv2", PriceChartingID: "58963"},
		"Crown Zenith":        {TCGPlayerID: "swsh12pt5", PriceChartingID: "56688"},
		"Silver Tempest":      {TCGPlayerID: "swsh12", PriceChartingID: "54662"},
		"Lost Origin":         {TCGPlayerID: "swsh11", PriceChartingID: "54087"},
		"Astral Radiance":     {TCGPlayerID: "swsh10", PriceChartingID: "53062"},
		"Brilliant Stars":     {TCGPlayerID: "swsh9", PriceChartingID: "52455"},
		"Fusion Strike":       {TCGPlayerID: "swsh8", PriceChartingID: "51414"},
		"Evolving Skies":      {TCGPlayerID: "swsh7", PriceChartingID: "50472"},
		"Chilling Reign":      {TCGPlayerID: "swsh6", PriceChartingID: "49525"},
		"Battle Styles":       {TCGPlayerID: "swsh5", PriceChartingID: "48581"},
		"Pokemon 151":         {TCGPlayerID: "sv3pt5", PriceChartingID: "63941"},
		"151":                 {TCGPlayerID: "sv3pt5", PriceChartingID: "63941"},
	})
}

func NewSetMapping(entries map[string]SetIDs) *SetMapping {
	m := &SetMapping{entries: make(map[string]SetIDs, len(entries))}
	for name, ids := range entries {
		m.entries[foldSetName(name)] = ids
	}
	return m
}

// Lookup finds a set by name, ignoring case and surrounding whitespace.
func (m *SetMapping) Lookup(setName string) (SetIDs, bool) {
	if m == nil {
		return SetIDs{}, false
	}
	ids, ok := m.entries[foldSetName(setName)]
	return ids, ok
}

func (m *SetMapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

func foldSetName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
