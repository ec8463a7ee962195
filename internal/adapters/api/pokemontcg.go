package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PokemonTCGClient reads cards from the Pokémon TCG API. Card documents
// embed TCGPlayer (USD) and Cardmarket (EUR) price blocks.
type PokemonTCGClient struct {
	client  *Client
	baseURL string
	apiKey  string
}

func NewPokemonTCGClient(client *Client, baseURL, apiKey string) *PokemonTCGClient {
	return &PokemonTCGClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (p *PokemonTCGClient) headers() map[string]string {
	if p.apiKey == "" {
		return nil
	}
	return map[string]string{"X-Api-Key": p.apiKey}
}

// GetCard returns the raw card document for a card id such as "swsh7-215"
func (p *PokemonTCGClient) GetCard(ctx context.Context, id string) (map[string]interface{}, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("card id required")
	}

	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := p.client.GetJSON(ctx, p.baseURL+"/cards/"+url.PathEscape(id), nil, p.headers(), &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	return resp.Data, nil
}

// SearchCards runs a Lucene-style query (e.g. `name:"Charizard" set.name:"Base"`)
func (p *PokemonTCGClient) SearchCards(ctx context.Context, query string, pageSize int) ([]map[string]interface{}, error) {
	params := url.Values{"q": {query}}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := p.client.GetJSON(ctx, p.baseURL+"/cards", params, p.headers(), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// FlattenCard converts a Pokémon TCG API card into a scan payload: identity
// fields are kept and each marketplace block is replaced by its prices.
func FlattenCard(card map[string]interface{}) map[string]interface{} {
	payload := make(map[string]interface{}, 8)
	for _, key := range []string{"id", "name", "number", "rarity", "set"} {
		if v, ok := card[key]; ok {
			payload[key] = v
		}
	}
	for _, key := range []string{"tcgplayer", "cardmarket"} {
		block, ok := card[key].(map[string]interface{})
		if !ok {
			continue
		}
		if prices, ok := block["prices"].(map[string]interface{}); ok {
			payload[key] = prices
		}
	}
	return payload
}
