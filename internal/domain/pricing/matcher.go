package pricing

// CardIdentity is the minimal description used to match a card across
// marketplaces.
type CardIdentity struct {
	Name    string
	Number  string
	SetName string
	Rarity  string
}

// CardMatcher selects which marketplace product corresponds to a card.
// Fuzzy matching lives outside the pricing core; implementations return the
// best candidate, a confidence in [0,1] and whether anything matched.
type CardMatcher interface {
	FindBestMatch(card CardIdentity, candidates []CardIdentity) (CardIdentity, float64, bool)
}
