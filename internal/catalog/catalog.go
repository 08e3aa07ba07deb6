package catalog

import (
	"errors"
	"fmt"
	"path"

	"deckview/internal/card"
)

var (
	// ErrNotFound is returned for an ID outside the 52-card universe.
	ErrNotFound = errors.New("card not found")
	// ErrOutOfRange is returned for an ordinal outside [0, 52).
	ErrOutOfRange = errors.New("card index out of range")
)

// Namer supplies display name overrides by card ID. A Namer that has no
// override for an ID reports false and the default name is used.
type Namer interface {
	TryGet(id string) (string, bool)
}

// Catalog holds the fixed, ordered 52-card collection: suit-major
// (clubs, diamonds, hearts, spades), rank-minor (ace through king).
// It is immutable after New and safe for concurrent use.
type Catalog struct {
	cards []card.Card
	index map[string]int
}

// Option configures catalog construction.
type Option func(*Catalog)

// WithNamer applies name overrides while building the catalog.
// Cards without an override keep their default name.
func WithNamer(n Namer) Option {
	return func(c *Catalog) {
		for i := range c.cards {
			if name, ok := n.TryGet(c.cards[i].ID); ok {
				c.cards[i].DisplayName = name
			}
		}
	}
}

// New builds the 52-card catalog. The backing sequence is constructed
// fresh on every call, so a catalog can be rebuilt after name overrides
// become available.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		cards: make([]card.Card, 0, len(card.Suits)*len(card.Ranks)),
		index: make(map[string]int, len(card.Suits)*len(card.Ranks)),
	}

	for _, suit := range card.Suits {
		for _, rank := range card.Ranks {
			id := string(suit) + string(rank)
			c.index[id] = len(c.cards)
			c.cards = append(c.cards, card.Card{
				ID:          id,
				Suit:        suit,
				Rank:        rank,
				DisplayName: card.DefaultName(suit, rank),
				ImagePath:   path.Join("images", id+".png"),
				ModelPath:   path.Join("models", id+".glb"),
			})
		}
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Len returns the number of cards (always 52).
func (c *Catalog) Len() int {
	return len(c.cards)
}

// AllCards returns the cards in catalog order. The returned slice is a
// copy; callers may not mutate catalog state through it.
func (c *Catalog) AllCards() []card.Card {
	out := make([]card.Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// ByID returns the card with the given ID.
func (c *Catalog) ByID(id string) (card.Card, error) {
	i, ok := c.index[id]
	if !ok {
		return card.Card{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.cards[i], nil
}

// IndexOf returns the ordinal position of the given ID in catalog order.
func (c *Catalog) IndexOf(id string) (int, error) {
	i, ok := c.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return i, nil
}

// ByIndex returns the card at ordinal position i.
func (c *Catalog) ByIndex(i int) (card.Card, error) {
	if i < 0 || i >= len(c.cards) {
		return card.Card{}, fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	return c.cards[i], nil
}

// PopularIDs returns the fixed priority subset used to seed proactive
// loading: the four aces and the twelve face cards, in catalog order.
func (c *Catalog) PopularIDs() []string {
	ids := make([]string, 0, 16)
	for _, cd := range c.cards {
		if cd.Rank == card.Ace || cd.Face() {
			ids = append(ids, cd.ID)
		}
	}
	return ids
}

// Neighbors returns the IDs adjacent to id in catalog order, nearest
// first (distance 1 before, distance 1 after, distance 2 before, ...).
// Positions outside the catalog are omitted; there is no wraparound.
func (c *Catalog) Neighbors(id string, radius int) ([]string, error) {
	center, err := c.IndexOf(id)
	if err != nil {
		return nil, err
	}

	var ids []string
	for d := 1; d <= radius; d++ {
		if i := center - d; i >= 0 {
			ids = append(ids, c.cards[i].ID)
		}
		if i := center + d; i < len(c.cards) {
			ids = append(ids, c.cards[i].ID)
		}
	}
	return ids, nil
}
