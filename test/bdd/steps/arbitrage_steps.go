package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

const amountTolerance = 0.01

type arbitrageContext struct {
	thresholds    trading.Thresholds
	normalizer    *pricing.CurrencyNormalizer
	points        []*pricing.PricePoint
	opportunities []*trading.ArbitrageOpportunity
}

func (ac *arbitrageContext) reset() {
	ac.thresholds = trading.DefaultThresholds()
	ac.normalizer = pricing.NewCurrencyNormalizer(pricing.DefaultCurrencySettings(), nil)
	ac.points = nil
	ac.opportunities = nil
}

func (ac *arbitrageContext) calculator() *trading.ArbitrageCalculator {
	return trading.NewArbitrageCalculator(nil, nil, ac.thresholds, nil)
}

// Given steps

func (ac *arbitrageContext) theDefaultArbitrageThresholds() error {
	ac.thresholds = trading.DefaultThresholds()
	return nil
}

func (ac *arbitrageContext) aMinimumProfitAndMargin(profit, margin float64) error {
	ac.thresholds.MinProfit = profit
	ac.thresholds.MinMarginPercent = margin
	return ac.thresholds.Validate()
}

func (ac *arbitrageContext) theFollowingPricePoints(table *messages.PickleTable) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("price point table needs a header and at least one row")
	}

	columns := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}
	for _, required := range []string{"source", "variant", "price_type", "price"} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("price point table is missing column %q", required)
		}
	}

	for _, row := range table.Rows[1:] {
		cell := func(name, fallback string) string {
			if i, ok := columns[name]; ok {
				return strings.TrimSpace(row.Cells[i].Value)
			}
			return fallback
		}

		price, err := strconv.ParseFloat(cell("price", ""), 64)
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		fee, err := strconv.ParseFloat(cell("fee_rate", "0"), 64)
		if err != nil {
			return fmt.Errorf("invalid fee rate: %w", err)
		}
		shipping, err := strconv.ParseFloat(cell("shipping", "0"), 64)
		if err != nil {
			return fmt.Errorf("invalid shipping: %w", err)
		}
		currency := pricing.ParseCurrency(cell("currency", "USD"))

		point, err := pricing.NewPricePoint(
			pricing.Source(cell("source", "")),
			pricing.Variant(cell("variant", "")),
			pricing.ParsePriceType(cell("price_type", "")),
			pricing.ConditionNearMint,
			ac.normalizer.Normalize(price, currency),
			pricing.MarketplaceTerms{FeeRate: fee, ShippingCost: shipping},
		)
		if err != nil {
			return err
		}
		if currency != ac.normalizer.BaseCurrency() {
			point = point.WithOriginalQuote(price, currency)
		}
		ac.points = append(ac.points, point)
	}
	return nil
}

// When steps

func (ac *arbitrageContext) iSearchForArbitrageOpportunities() error {
	ac.opportunities = ac.calculator().FindOpportunities(ac.points)
	return nil
}

// Then steps

func (ac *arbitrageContext) opportunitiesShouldBeFound(expected int) error {
	if len(ac.opportunities) != expected {
		return fmt.Errorf("expected %d opportunities, got %d", expected, len(ac.opportunities))
	}
	return nil
}

func (ac *arbitrageContext) noOpportunitiesShouldBeFound() error {
	return ac.opportunitiesShouldBeFound(0)
}

func (ac *arbitrageContext) opportunity(n int) (*trading.ArbitrageOpportunity, error) {
	if n < 1 || n > len(ac.opportunities) {
		return nil, fmt.Errorf("opportunity %d does not exist (found %d)", n, len(ac.opportunities))
	}
	return ac.opportunities[n-1], nil
}

func (ac *arbitrageContext) opportunityShouldBuyFromAndSellTo(n int, buy, sell string) error {
	opp, err := ac.opportunity(n)
	if err != nil {
		return err
	}
	if string(opp.BuyPoint().Source()) != buy || string(opp.SellPoint().Source()) != sell {
		return fmt.Errorf("expected %s -> %s, got %s", buy, sell, opp)
	}
	return nil
}

func (ac *arbitrageContext) opportunityShouldHaveBuyCostAndSellNet(n int, buyCost, sellNet float64) error {
	opp, err := ac.opportunity(n)
	if err != nil {
		return err
	}
	if math.Abs(opp.BuyCost()-buyCost) > amountTolerance {
		return fmt.Errorf("expected buy cost %.3f, got %.3f", buyCost, opp.BuyCost())
	}
	if math.Abs(opp.SellNet()-sellNet) > amountTolerance {
		return fmt.Errorf("expected sell net %.3f, got %.3f", sellNet, opp.SellNet())
	}
	return nil
}

func (ac *arbitrageContext) opportunityShouldHaveProfitAndMargin(n int, profit, margin float64) error {
	opp, err := ac.opportunity(n)
	if err != nil {
		return err
	}
	if math.Abs(opp.Profit()-profit) > amountTolerance {
		return fmt.Errorf("expected profit %.3f, got %.3f", profit, opp.Profit())
	}
	if math.Abs(opp.ProfitMargin()-margin) > amountTolerance {
		return fmt.Errorf("expected margin %.2f%%, got %.2f%%", margin, opp.ProfitMargin())
	}
	return nil
}

func (ac *arbitrageContext) evaluatingPointAgainstPointShouldGive(buy, sell int, expected string) error {
	if buy < 1 || buy > len(ac.points) || sell < 1 || sell > len(ac.points) {
		return fmt.Errorf("points %d and %d do not both exist (have %d)", buy, sell, len(ac.points))
	}
	_, decision := ac.calculator().Evaluate(ac.points[buy-1], ac.points[sell-1])
	if string(decision) != expected {
		return fmt.Errorf("expected decision %q, got %q", expected, decision)
	}
	return nil
}

func (ac *arbitrageContext) theMarginsOfOpportunitiesBuyingFromShouldBe(source, list string) error {
	var expected []float64
	for _, raw := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("invalid margin %q: %w", raw, err)
		}
		expected = append(expected, v)
	}

	var actual []float64
	for _, opp := range ac.opportunities {
		if string(opp.BuyPoint().Source()) == source {
			actual = append(actual, opp.ProfitMargin())
		}
	}
	if len(actual) != len(expected) {
		return fmt.Errorf("expected %d opportunities buying from %s, got %d", len(expected), source, len(actual))
	}
	for i := range expected {
		if math.Abs(actual[i]-expected[i]) > amountTolerance {
			return fmt.Errorf("margin %d: expected %.2f, got %.2f", i+1, expected[i], actual[i])
		}
	}
	return nil
}

func (ac *arbitrageContext) theOpportunitiesShouldBeSortedByMargin() error {
	for i := 1; i < len(ac.opportunities); i++ {
		if ac.opportunities[i-1].ProfitMargin() < ac.opportunities[i].ProfitMargin() {
			return fmt.Errorf("opportunity %d (%.2f%%) ranked above %d (%.2f%%)",
				i, ac.opportunities[i-1].ProfitMargin(), i+1, ac.opportunities[i].ProfitMargin())
		}
	}
	return nil
}

func (ac *arbitrageContext) searchingAgainWithThePointsReversedShouldGiveTheSameOpportunities() error {
	reversed := make([]*pricing.PricePoint, len(ac.points))
	for i, p := range ac.points {
		reversed[len(ac.points)-1-i] = p
	}
	again := ac.calculator().FindOpportunities(reversed)

	if len(ac.opportunities) == 0 {
		return fmt.Errorf("expected the first search to find opportunities")
	}
	if len(again) != len(ac.opportunities) {
		return fmt.Errorf("expected %d opportunities, got %d", len(ac.opportunities), len(again))
	}
	for i := range again {
		if again[i].String() != ac.opportunities[i].String() {
			return fmt.Errorf("opportunity %d differs: %s vs %s", i+1, ac.opportunities[i], again[i])
		}
	}
	return nil
}

func InitializeArbitrageScenario(ctx *godog.ScenarioContext) {
	ac := &arbitrageContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		ac.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the default arbitrage thresholds$`, ac.theDefaultArbitrageThresholds)
	ctx.Step(`^a minimum profit of ([0-9.]+) and a minimum margin of ([0-9.]+)%$`, ac.aMinimumProfitAndMargin)
	ctx.Step(`^the following price points:$`, ac.theFollowingPricePoints)

	// When steps
	ctx.Step(`^I search for arbitrage opportunities$`, ac.iSearchForArbitrageOpportunities)

	// Then steps
	ctx.Step(`^(\d+) opportunit(?:y|ies) should be found$`, ac.opportunitiesShouldBeFound)
	ctx.Step(`^no opportunities should be found$`, ac.noOpportunitiesShouldBeFound)
	ctx.Step(`^opportunity (\d+) should buy from "([^"]*)" and sell to "([^"]*)"$`, ac.opportunityShouldBuyFromAndSellTo)
	ctx.Step(`^opportunity (\d+) should have buy cost ([0-9.]+) and sell net ([0-9.]+)$`, ac.opportunityShouldHaveBuyCostAndSellNet)
	ctx.Step(`^opportunity (\d+) should have profit ([0-9.]+) and margin ([0-9.]+)%$`, ac.opportunityShouldHaveProfitAndMargin)
	ctx.Step(`^evaluating point (\d+) against point (\d+) should give "([^"]*)"$`, ac.evaluatingPointAgainstPointShouldGive)
	ctx.Step(`^the margins of opportunities buying from "([^"]*)" should be ([0-9., ]+)$`, ac.theMarginsOfOpportunitiesBuyingFromShouldBe)
	ctx.Step(`^the opportunities should be sorted by margin$`, ac.theOpportunitiesShouldBeSortedByMargin)
	ctx.Step(`^searching again with the points reversed should give the same opportunities$`,
		ac.searchingAgainWithThePointsReversedShouldGiveTheSameOpportunities)
}
