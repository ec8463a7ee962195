package payload

import (
	"strings"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// ExactNameMatcher matches cards whose names are equal after case and
// whitespace folding. Number and set equality only raise the score.
type ExactNameMatcher struct{}

func NewExactNameMatcher() *ExactNameMatcher {
	return &ExactNameMatcher{}
}

// FindBestMatch returns the highest scoring candidate with the same name.
func (m *ExactNameMatcher) FindBestMatch(
	card pricing.CardIdentity,
	candidates []pricing.CardIdentity,
) (pricing.CardIdentity, float64, bool) {
	name := fold(card.Name)
	if name == "" {
		return pricing.CardIdentity{}, 0, false
	}

	var (
		best      pricing.CardIdentity
		bestScore float64
		found     bool
	)
	for _, c := range candidates {
		if fold(c.Name) != name {
			continue
		}
		score := 0.6
		if card.Number != "" && fold(c.Number) == fold(card.Number) {
			score += 0.3
		}
		if card.SetName != "" && fold(c.SetName) == fold(card.SetName) {
			score += 0.1
		}
		if !found || score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, bestScore, found
}

// ParseProduct reads a "Name #Number" filter into an identity.
func ParseProduct(product string) pricing.CardIdentity {
	name, number, _ := strings.Cut(product, "#")
	return pricing.CardIdentity{
		Name:   strings.TrimSpace(name),
		Number: strings.TrimSpace(number),
	}
}

func fold(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
