package card

import "fmt"

// Suit is one of the four standard playing card suits.
type Suit string

const (
	Clubs    Suit = "c"
	Diamonds Suit = "d"
	Hearts   Suit = "h"
	Spades   Suit = "s"
)

// Suits lists the four suits in catalog order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Rank is a card rank code as it appears in card IDs and asset filenames
// ("a" for ace, "2".."10", then "j", "q", "k").
type Rank string

const (
	Ace   Rank = "a"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "j"
	Queen Rank = "q"
	King  Rank = "k"
)

// Ranks lists the thirteen ranks in catalog order, ace low.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Card represents one card of the 52-card collection
type Card struct {
	ID          string // suit letter + rank code, e.g. "ha", "d10"
	Suit        Suit
	Rank        Rank
	DisplayName string // overridden or default name
	ImagePath   string // store key of the raster face, e.g. "images/ha.png"
	ModelPath   string // store key of the 3D asset, e.g. "models/ha.glb"
}

// Face reports whether the card is a jack, queen or king.
func (c Card) Face() bool {
	return c.Rank == Jack || c.Rank == Queen || c.Rank == King
}

var suitNames = map[Suit]string{
	Clubs:    "Clubs",
	Diamonds: "Diamonds",
	Hearts:   "Hearts",
	Spades:   "Spades",
}

var rankNames = map[Rank]string{
	Ace:   "Ace",
	Two:   "Two",
	Three: "Three",
	Four:  "Four",
	Five:  "Five",
	Six:   "Six",
	Seven: "Seven",
	Eight: "Eight",
	Nine:  "Nine",
	Ten:   "Ten",
	Jack:  "Jack",
	Queen: "Queen",
	King:  "King",
}

// Name returns the English name of the suit ("Hearts").
func (s Suit) Name() string {
	return suitNames[s]
}

// Name returns the English name of the rank ("Ace").
func (r Rank) Name() string {
	return rankNames[r]
}

// DefaultName returns the default display name for a suit/rank pair,
// e.g. "Ace of Hearts". Used whenever no name override exists.
func DefaultName(suit Suit, rank Rank) string {
	return fmt.Sprintf("%s of %s", rank.Name(), suit.Name())
}
