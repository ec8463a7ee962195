package pricing

import "strings"

// RarityClass buckets free-form rarity labels for price plausibility checks.
type RarityClass string

const (
	RarityCommon     RarityClass = "common"
	RarityUncommon   RarityClass = "uncommon"
	RarityRare       RarityClass = "rare"
	RarityHolofoil   RarityClass = "holofoil"
	RarityUltraRare  RarityClass = "ultra_rare"
	RaritySecretRare RarityClass = "secret_rare"
	RarityPromo      RarityClass = "promo"
	RarityDefault    RarityClass = "default"
)

// AllRarityClasses lists every class in classification order.
func AllRarityClasses() []RarityClass {
	return []RarityClass{
		RarityPromo,
		RaritySecretRare,
		RarityUltraRare,
		RarityUncommon,
		RarityCommon,
		RarityHolofoil,
		RarityRare,
		RarityDefault,
	}
}

// DefaultClassCeilings are typical maximum prices per class. A quote above
// multiplier x ceiling is treated as implausible.
func DefaultClassCeilings() map[RarityClass]float64 {
	return map[RarityClass]float64{
		RarityCommon:     2,
		RarityUncommon:   5,
		RarityRare:       20,
		RarityHolofoil:   50,
		RarityUltraRare:  200,
		RaritySecretRare: 500,
		RarityPromo:      100,
		RarityDefault:    1000,
	}
}

var (
	secretRareMarkers = []string{"secret", "hyper", "rainbow"}
	ultraRareMarkers  = []string{"ultra", "vmax", "vstar", "gx"}
)

// ClassifyRarity maps a rarity label such as "Rare Holo" to its class.
// "uncommon" is checked before "common" since it contains it.
func ClassifyRarity(rarity string) RarityClass {
	r := strings.ToLower(strings.TrimSpace(rarity))
	switch {
	case r == "":
		return RarityDefault
	case strings.Contains(r, "promo"):
		return RarityPromo
	case containsAny(r, secretRareMarkers):
		return RaritySecretRare
	case containsAny(r, ultraRareMarkers):
		return RarityUltraRare
	case strings.Contains(r, "uncommon"):
		return RarityUncommon
	case strings.Contains(r, "common"):
		return RarityCommon
	case strings.Contains(r, "rare") && strings.Contains(r, "holo"):
		return RarityHolofoil
	case strings.Contains(r, "rare"):
		return RarityRare
	}
	return RarityDefault
}

// ParseRarityClass parses a class name as written in configuration.
func ParseRarityClass(raw string) (RarityClass, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, c := range AllRarityClasses() {
		if string(c) == raw {
			return c, true
		}
	}
	return "", false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// ItemContext carries optional per-card information used by validation.
type ItemContext struct {
	Name   string
	Rarity string
}

// Class returns the rarity class, or RarityDefault for a nil context.
func (c *ItemContext) Class() RarityClass {
	if c == nil {
		return RarityDefault
	}
	return ClassifyRarity(c.Rarity)
}
