package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

type pricingContext struct {
	normalizer *pricing.CurrencyNormalizer
	normalized float64

	settings pricing.ValidationSettings
	result   pricing.ValidationResult
}

func (pc *pricingContext) reset() {
	pc.normalizer = nil
	pc.normalized = 0
	pc.settings = pricing.DefaultValidationSettings()
	pc.result = pricing.ValidationResult{}
}

// Given steps

func (pc *pricingContext) theDefaultExchangeRates() error {
	pc.normalizer = pricing.NewCurrencyNormalizer(pricing.DefaultCurrencySettings(), nil)
	return nil
}

func (pc *pricingContext) theDefaultValidationSettings() error {
	pc.settings = pricing.DefaultValidationSettings()
	return nil
}

func (pc *pricingContext) aCeilingOverrideForTheClass(ceiling float64, class string) error {
	rc, ok := pricing.ParseRarityClass(class)
	if !ok {
		return fmt.Errorf("unknown rarity class %q", class)
	}
	overrides := make(map[pricing.RarityClass]float64, len(pc.settings.ClassCeilingOverrides)+1)
	for k, v := range pc.settings.ClassCeilingOverrides {
		overrides[k] = v
	}
	overrides[rc] = ceiling
	pc.settings.ClassCeilingOverrides = overrides
	return nil
}

// When steps

func (pc *pricingContext) iNormalize(amount float64, currency string) error {
	if pc.normalizer == nil {
		return fmt.Errorf("no normalizer configured")
	}
	pc.normalized = pc.normalizer.Normalize(amount, pricing.ParseCurrency(currency))
	return nil
}

func (pc *pricingContext) iValidateAPriceOf(price float64) error {
	pc.result = pricing.NewPriceValidator(pc.settings, nil).CheckPrice(price, nil)
	return nil
}

func (pc *pricingContext) iValidateAPriceOfForACard(price float64, rarity string) error {
	item := &pricing.ItemContext{Rarity: rarity}
	pc.result = pricing.NewPriceValidator(pc.settings, nil).CheckPrice(price, item)
	return nil
}

// Then steps

func (pc *pricingContext) theNormalizedPriceShouldBe(expected float64) error {
	if math.Abs(pc.normalized-expected) > 0.005 {
		return fmt.Errorf("expected normalized price %.4f, got %.4f", expected, pc.normalized)
	}
	return nil
}

func (pc *pricingContext) thePriceShouldBeAccepted() error {
	if !pc.result.Valid {
		return fmt.Errorf("expected price to be accepted, but it was rejected as %q", pc.result.Reason)
	}
	return nil
}

func (pc *pricingContext) thePriceShouldBeRejectedAs(reason string) error {
	if pc.result.Valid {
		return fmt.Errorf("expected price to be rejected as %q, but it was accepted", reason)
	}
	if string(pc.result.Reason) != reason {
		return fmt.Errorf("expected rejection reason %q, got %q", reason, pc.result.Reason)
	}
	return nil
}

func InitializePricingScenario(ctx *godog.ScenarioContext) {
	pc := &pricingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the default exchange rates$`, pc.theDefaultExchangeRates)
	ctx.Step(`^the default validation settings$`, pc.theDefaultValidationSettings)
	ctx.Step(`^a ceiling override of ([0-9.]+) for the "([^"]*)" class$`, pc.aCeilingOverrideForTheClass)

	// When steps
	ctx.Step(`^I normalize (-?[0-9.]+) (\w+)$`, pc.iNormalize)
	ctx.Step(`^I validate a price of (-?[0-9.]+)$`, pc.iValidateAPriceOf)
	ctx.Step(`^I validate a price of (-?[0-9.]+) for a "([^"]*)" card$`, pc.iValidateAPriceOfForACard)

	// Then steps
	ctx.Step(`^the normalized price should be ([0-9.]+)$`, pc.theNormalizedPriceShouldBe)
	ctx.Step(`^the price should be accepted$`, pc.thePriceShouldBeAccepted)
	ctx.Step(`^the price should be rejected as "([^"]*)"$`, pc.thePriceShouldBeRejectedAs)
}
