package trading

import (
	"sort"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// PairDecision records why a buy/sell pair was kept or skipped.
type PairDecision string

const (
	DecisionAccepted            PairDecision = "accepted"
	DecisionInvalidPoint        PairDecision = "invalid_point"
	DecisionSameIdentity        PairDecision = "same_identity"
	DecisionSameSource          PairDecision = "same_source"
	DecisionIncomparableVariant PairDecision = "incomparable_variant"
	DecisionDisallowedPriceType PairDecision = "disallowed_price_type"
	DecisionUnreliablePriceType PairDecision = "unreliable_price_type"
	DecisionImplausibleSell     PairDecision = "implausible_sell_price"
	DecisionSuspiciousPair      PairDecision = "suspicious_pair"
	DecisionZeroBuyCost         PairDecision = "zero_buy_cost"
	DecisionExcessiveMargin     PairDecision = "excessive_margin"
	DecisionBelowThreshold      PairDecision = "below_threshold"
)

// ArbitrageCalculator provides pure business logic for pairing price points
// across marketplaces and ranking the profitable pairs.
//
// This is a domain service with no infrastructure dependencies (no database, API, etc.).
// All methods are stateless and deterministic; one calculator may serve
// concurrent callers.
type ArbitrageCalculator struct {
	validator     *pricing.PriceValidator
	comparability *pricing.VariantComparability
	thresholds    Thresholds
	disallowed    map[pricing.PriceType]bool
	reliable      map[pricing.PriceType]bool
	logger        pricing.Logger
}

// NewArbitrageCalculator creates a calculator. Nil collaborators are replaced
// by their default configurations.
func NewArbitrageCalculator(
	validator *pricing.PriceValidator,
	comparability *pricing.VariantComparability,
	thresholds Thresholds,
	logger pricing.Logger,
) *ArbitrageCalculator {
	if validator == nil {
		validator = pricing.NewPriceValidator(pricing.DefaultValidationSettings(), logger)
	}
	if comparability == nil {
		comparability = pricing.NewVariantComparability(pricing.DefaultComparabilitySettings())
	}
	if logger == nil {
		logger = pricing.NopLogger{}
	}

	disallowed := make(map[pricing.PriceType]bool, len(thresholds.DisallowedPriceTypes))
	for _, pt := range thresholds.DisallowedPriceTypes {
		disallowed[pt] = true
	}
	var reliable map[pricing.PriceType]bool
	if len(thresholds.ReliablePriceTypes) > 0 {
		reliable = make(map[pricing.PriceType]bool, len(thresholds.ReliablePriceTypes))
		for _, pt := range thresholds.ReliablePriceTypes {
			reliable[pt] = true
		}
	}

	return &ArbitrageCalculator{
		validator:     validator,
		comparability: comparability,
		thresholds:    thresholds,
		disallowed:    disallowed,
		reliable:      reliable,
		logger:        logger,
	}
}

// Thresholds returns the calculator's thresholds.
func (c *ArbitrageCalculator) Thresholds() Thresholds {
	return c.thresholds
}

// FindOpportunities returns every profitable, plausible pair in points,
// ranked by margin. Input order does not affect the output.
func (c *ArbitrageCalculator) FindOpportunities(points []*pricing.PricePoint) []*ArbitrageOpportunity {
	return c.FindOpportunitiesForItem(points, nil)
}

// FindOpportunitiesForItem is FindOpportunities with rarity-aware validation.
//
// Steps:
//  1. Drop points the validator rejects.
//  2. Enumerate ordered (buy, sell) pairs of distinct points.
//  3. Apply the pair rules in Evaluate order and keep accepted pairs.
//  4. Sort by margin desc, profit desc, then by point identity.
//
// Returns an empty slice (never nil) when fewer than two points survive
// validation or nothing qualifies.
func (c *ArbitrageCalculator) FindOpportunitiesForItem(
	points []*pricing.PricePoint,
	item *pricing.ItemContext,
) []*ArbitrageOpportunity {
	opportunities := make([]*ArbitrageOpportunity, 0)

	valid := make([]*pricing.PricePoint, 0, len(points))
	for _, p := range points {
		if c.validator.Check(p, item).Valid {
			valid = append(valid, p)
		}
	}
	if len(valid) < 2 {
		return opportunities
	}

	skipped := make(map[PairDecision]int)
	for _, buy := range valid {
		for _, sell := range valid {
			if buy == sell {
				continue
			}
			opp, decision := c.evaluate(buy, sell, item)
			if decision != DecisionAccepted {
				skipped[decision]++
				continue
			}
			opportunities = append(opportunities, opp)
		}
	}

	sortOpportunities(opportunities)

	metadata := map[string]interface{}{
		"points":        len(points),
		"valid_points":  len(valid),
		"opportunities": len(opportunities),
	}
	for decision, n := range skipped {
		metadata["skipped_"+string(decision)] = n
	}
	c.logger.Log(pricing.LevelDebug, "arbitrage scan complete", metadata)

	return opportunities
}

// Evaluate applies validation and every pair rule to one buy/sell pair and
// reports the first rule that rejected it. The opportunity is non-nil only
// when the decision is DecisionAccepted.
func (c *ArbitrageCalculator) Evaluate(buy, sell *pricing.PricePoint) (*ArbitrageOpportunity, PairDecision) {
	return c.EvaluateForItem(buy, sell, nil)
}

// EvaluateForItem is Evaluate with rarity-aware validation, matching what
// FindOpportunitiesForItem decides for the same item.
func (c *ArbitrageCalculator) EvaluateForItem(
	buy, sell *pricing.PricePoint,
	item *pricing.ItemContext,
) (*ArbitrageOpportunity, PairDecision) {
	if !c.validator.IsValidFor(buy, item) || !c.validator.IsValidFor(sell, item) {
		return nil, DecisionInvalidPoint
	}
	return c.evaluate(buy, sell, item)
}

func (c *ArbitrageCalculator) evaluate(
	buy, sell *pricing.PricePoint,
	item *pricing.ItemContext,
) (*ArbitrageOpportunity, PairDecision) {
	if buy.SameIdentity(sell) {
		return nil, DecisionSameIdentity
	}
	if buy.Source() == sell.Source() {
		return nil, DecisionSameSource
	}
	if !c.comparability.Comparable(buy.Variant(), sell.Variant()) {
		return nil, DecisionIncomparableVariant
	}
	if c.disallowed[buy.PriceType()] || c.disallowed[sell.PriceType()] {
		return nil, DecisionDisallowedPriceType
	}
	if c.reliable != nil && (!c.reliable[buy.PriceType()] || !c.reliable[sell.PriceType()]) {
		return nil, DecisionUnreliablePriceType
	}

	t := c.thresholds
	if ceiling := c.sellCeiling(item); ceiling > 0 && sell.Price() > ceiling {
		return nil, DecisionImplausibleSell
	}
	if buy.Price() < t.SuspiciousLowBuy && sell.Price() > t.SuspiciousHighSell {
		return nil, DecisionSuspiciousPair
	}

	opp, err := NewArbitrageOpportunity(buy, sell)
	if err != nil {
		return nil, DecisionZeroBuyCost
	}

	if t.MaxMarginPercent > 0 && opp.ProfitMargin() > t.MaxMarginPercent {
		c.logger.Log(pricing.LevelDebug, "unrealistic margin skipped", map[string]interface{}{
			"buy":    buy.Key(),
			"sell":   sell.Key(),
			"margin": opp.ProfitMargin(),
		})
		return nil, DecisionExcessiveMargin
	}
	if !(opp.Profit() > t.MinProfit && opp.ProfitMargin() > t.MinMarginPercent) {
		return nil, DecisionBelowThreshold
	}

	return opp, DecisionAccepted
}

func sortOpportunities(opps []*ArbitrageOpportunity) {
	sort.SliceStable(opps, func(i, j int) bool {
		a, b := opps[i], opps[j]
		if a.ProfitMargin() != b.ProfitMargin() {
			return a.ProfitMargin() > b.ProfitMargin()
		}
		if a.Profit() != b.Profit() {
			return a.Profit() > b.Profit()
		}
		return identityLess(a, b)
	})
}

// sellCeiling is the explicit threshold, or the validator's ceiling for the
// item when none is set.
func (c *ArbitrageCalculator) sellCeiling(item *pricing.ItemContext) float64 {
	if c.thresholds.SellPriceCeiling > 0 {
		return c.thresholds.SellPriceCeiling
	}
	return c.validator.CeilingFor(item)
}

func identityLess(a, b *ArbitrageOpportunity) bool {
	keys := [][2]string{
		{string(a.buyPoint.Source()), string(b.buyPoint.Source())},
		{string(a.sellPoint.Source()), string(b.sellPoint.Source())},
		{string(a.buyPoint.Variant()), string(b.buyPoint.Variant())},
		{string(a.sellPoint.Variant()), string(b.sellPoint.Variant())},
		{string(a.buyPoint.PriceType()), string(b.buyPoint.PriceType())},
		{string(a.sellPoint.PriceType()), string(b.sellPoint.PriceType())},
	}
	for _, k := range keys {
		if k[0] != k[1] {
			return k[0] < k[1]
		}
	}
	if a.buyPoint.Price() != b.buyPoint.Price() {
		return a.buyPoint.Price() < b.buyPoint.Price()
	}
	return a.sellPoint.Price() < b.sellPoint.Price()
}
