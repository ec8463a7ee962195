package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// PriceChartingClient reads products from the PriceCharting API. Prices are
// integer cents.
type PriceChartingClient struct {
	client  *Client
	baseURL string
	token   string
}

func NewPriceChartingClient(client *Client, baseURL, token string) *PriceChartingClient {
	return &PriceChartingClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// SearchProducts returns the products matching a free-text query
func (p *PriceChartingClient) SearchProducts(ctx context.Context, query string) ([]map[string]interface{}, error) {
	var resp struct {
		Status       string                   `json:"status"`
		ErrorMessage string                   `json:"error-message"`
		Products     []map[string]interface{} `json:"products"`
	}
	params := url.Values{"t": {p.token}, "q": {query}}
	if err := p.client.GetJSON(ctx, p.baseURL+"/products", params, nil, &resp); err != nil {
		return nil, err
	}
	if strings.EqualFold(resp.Status, "error") {
		return nil, fmt.Errorf("pricecharting search %q: %s", query, resp.ErrorMessage)
	}
	return resp.Products, nil
}

// GetProduct returns a product document with all of its prices. Error
// statuses are returned as documents; the extractor reports them.
func (p *PriceChartingClient) GetProduct(ctx context.Context, id string) (map[string]interface{}, error) {
	var product map[string]interface{}
	params := url.Values{"t": {p.token}, "id": {id}}
	if err := p.client.GetJSON(ctx, p.baseURL+"/product", params, nil, &product); err != nil {
		return nil, err
	}
	return product, nil
}
