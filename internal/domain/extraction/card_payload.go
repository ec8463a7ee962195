package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// CardPayload is one card with the raw price payloads already fetched from
// each marketplace.
type CardPayload struct {
	Name    string
	Number  string
	Rarity  string
	SetName string
	Sources map[pricing.Source]map[string]interface{}
}

// ParseCardPayload decodes the card JSON document produced by the fetch
// layer. Marketplace sections are recognised by key ("tcgplayer",
// "cardmarket", "price_charting", ...); unknown keys are ignored.
func ParseCardPayload(data []byte) (*CardPayload, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw map[string]interface{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCardPayload, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedCardPayload)
	}

	return CardPayloadFromMap(raw), nil
}

// CardPayloadFromMap builds a payload from an already decoded document.
func CardPayloadFromMap(raw map[string]interface{}) *CardPayload {
	card := &CardPayload{
		Name:    stringField(raw, "name"),
		Number:  stringField(raw, "number"),
		Rarity:  stringField(raw, "rarity"),
		Sources: make(map[pricing.Source]map[string]interface{}),
	}

	switch set := raw["set"].(type) {
	case map[string]interface{}:
		card.SetName = stringField(set, "name")
	case string:
		card.SetName = set
	}
	if card.SetName == "" {
		card.SetName = stringField(raw, "set_name")
	}

	for key, value := range raw {
		source, ok := pricing.ParseSource(key)
		if !ok {
			continue
		}
		section, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		card.Sources[source] = section
	}

	return card
}

// Item returns the validation context for this card.
func (c *CardPayload) Item() *pricing.ItemContext {
	if c == nil {
		return nil
	}
	return &pricing.ItemContext{Name: c.Name, Rarity: c.Rarity}
}

// Identity returns the matching identity for this card.
func (c *CardPayload) Identity() pricing.CardIdentity {
	return pricing.CardIdentity{Name: c.Name, Number: c.Number, SetName: c.SetName, Rarity: c.Rarity}
}

func stringField(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	}
	return ""
}
