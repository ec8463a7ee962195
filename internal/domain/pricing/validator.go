package pricing

import "math"

// RejectionReason explains why a price was rejected.
type RejectionReason string

const (
	ReasonNone              RejectionReason = ""
	ReasonMalformed         RejectionReason = "malformed"
	ReasonNonPositive       RejectionReason = "non_positive"
	ReasonPlaceholder       RejectionReason = "placeholder"
	ReasonAboveCeiling      RejectionReason = "above_ceiling"
	ReasonAboveClassCeiling RejectionReason = "above_class_ceiling"
)

// ValidationResult is the outcome of a single check.
type ValidationResult struct {
	Valid  bool
	Reason RejectionReason
}

func valid() ValidationResult { return ValidationResult{Valid: true} }

func rejected(reason RejectionReason) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason}
}

// ValidationSettings drives PriceValidator.
type ValidationSettings struct {
	// PriceCeiling is the absolute upper bound for any quote.
	PriceCeiling float64
	// Placeholders are sentinel values marketplaces use for "no real price".
	Placeholders       []float64
	PlaceholderEpsilon float64
	// ClassCeilingMultiplier scales ClassCeilings when an item context is known.
	ClassCeilingMultiplier float64
	ClassCeilings          map[RarityClass]float64
	// ClassCeilingOverrides replace PriceCeiling for items of the given class.
	ClassCeilingOverrides map[RarityClass]float64
}

// DefaultValidationSettings returns the stock thresholds.
func DefaultValidationSettings() ValidationSettings {
	return ValidationSettings{
		PriceCeiling:           1000,
		Placeholders:           []float64{999.99, 9999.99, 0.01},
		PlaceholderEpsilon:     0.01,
		ClassCeilingMultiplier: 3,
		ClassCeilings:          DefaultClassCeilings(),
		ClassCeilingOverrides:  map[RarityClass]float64{},
	}
}

// PriceValidator decides whether a quote is real enough to trade on.
// It holds no mutable state and is safe for concurrent use.
type PriceValidator struct {
	settings ValidationSettings
	logger   Logger
}

func NewPriceValidator(settings ValidationSettings, logger Logger) *PriceValidator {
	if settings.PlaceholderEpsilon < 0 {
		settings.PlaceholderEpsilon = 0
	}
	if settings.ClassCeilingMultiplier <= 0 {
		settings.ClassCeilingMultiplier = 1
	}
	ceilings := DefaultClassCeilings()
	for class, ceiling := range settings.ClassCeilings {
		if ceiling > 0 {
			ceilings[class] = ceiling
		}
	}
	settings.ClassCeilings = ceilings

	overrides := make(map[RarityClass]float64, len(settings.ClassCeilingOverrides))
	for class, ceiling := range settings.ClassCeilingOverrides {
		if ceiling > 0 {
			overrides[class] = ceiling
		}
	}
	settings.ClassCeilingOverrides = overrides
	settings.Placeholders = append([]float64(nil), settings.Placeholders...)

	return &PriceValidator{settings: settings, logger: loggerOrNop(logger)}
}

// Settings returns a copy of the validator thresholds.
func (v *PriceValidator) Settings() ValidationSettings {
	return v.settings
}

// IsValid checks a point without item context.
func (v *PriceValidator) IsValid(point *PricePoint) bool {
	return v.Check(point, nil).Valid
}

// IsValidFor checks a point against the item's rarity class.
func (v *PriceValidator) IsValidFor(point *PricePoint, item *ItemContext) bool {
	return v.Check(point, item).Valid
}

// IsValidPrice checks a raw amount.
func (v *PriceValidator) IsValidPrice(price float64, item *ItemContext) bool {
	return v.CheckPrice(price, item).Valid
}

// Check validates a point and reports why it was rejected. Placeholders are
// matched against the amount the marketplace quoted; every other rule uses the
// normalized price.
func (v *PriceValidator) Check(point *PricePoint, item *ItemContext) ValidationResult {
	if point == nil {
		return rejected(ReasonMalformed)
	}
	result := v.check(point.Price(), point.OriginalPrice(), item)
	if !result.Valid {
		v.logger.Log(LevelDebug, "price point rejected", map[string]interface{}{
			"point":  point.Key(),
			"price":  point.Price(),
			"quoted": point.OriginalPrice(),
			"reason": string(result.Reason),
		})
	}
	return result
}

// CheckPrice validates a raw base-currency amount.
func (v *PriceValidator) CheckPrice(price float64, item *ItemContext) ValidationResult {
	return v.check(price, price, item)
}

// CeilingFor returns the absolute ceiling that applies to the item, taking
// class overrides into account.
func (v *PriceValidator) CeilingFor(item *ItemContext) float64 {
	if item != nil {
		if override, ok := v.settings.ClassCeilingOverrides[item.Class()]; ok {
			return override
		}
	}
	return v.settings.PriceCeiling
}

func (v *PriceValidator) check(price, quoted float64, item *ItemContext) ValidationResult {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return rejected(ReasonMalformed)
	}
	if price <= 0 {
		return rejected(ReasonNonPositive)
	}
	if v.isPlaceholder(quoted) {
		return rejected(ReasonPlaceholder)
	}

	if ceiling := v.CeilingFor(item); ceiling > 0 && price > ceiling {
		return rejected(ReasonAboveCeiling)
	}

	if item != nil {
		typical := v.settings.ClassCeilings[item.Class()]
		if typical > 0 && price > typical*v.settings.ClassCeilingMultiplier {
			return rejected(ReasonAboveClassCeiling)
		}
	}

	return valid()
}

func (v *PriceValidator) isPlaceholder(price float64) bool {
	for _, p := range v.settings.Placeholders {
		d := math.Abs(price - p)
		if d == 0 || d < v.settings.PlaceholderEpsilon {
			return true
		}
	}
	return false
}
