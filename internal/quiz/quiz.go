// Package quiz generates multiple-choice questions over the card
// collection: identify a card by its display name among distractors
// drawn from the rest of the deck.
package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"deckview/internal/card"
	"deckview/internal/catalog"
)

// OptionCount is the number of answer options per question.
const OptionCount = 4

// ErrTooManyQuestions is returned when a session asks for more
// questions than there are cards.
var ErrTooManyQuestions = errors.New("quiz: more questions than cards")

// Question asks which display name belongs to Card. Exactly one of
// Options is correct; Answer is its index.
type Question struct {
	Card    card.Card
	Options []string
	Answer  int
}

// Session is one quiz run over distinct cards.
type Session struct {
	ID        uuid.UUID
	Questions []Question

	answered int
	correct  int
}

// Generator builds quiz sessions from a catalog.
type Generator struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

// NewGenerator creates a generator. The seed makes sessions
// reproducible; pass different seeds for different runs.
func NewGenerator(cat *catalog.Catalog, seed uint64) *Generator {
	return &Generator{
		catalog: cat,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewSession builds a session of n questions over n distinct cards.
func (g *Generator) NewSession(n int) (*Session, error) {
	cards := g.catalog.AllCards()
	if n < 1 || n > len(cards) {
		return nil, fmt.Errorf("%w: %d of %d", ErrTooManyQuestions, n, len(cards))
	}

	order := g.rng.Perm(len(cards))
	s := &Session{
		ID:        uuid.New(),
		Questions: make([]Question, 0, n),
	}
	for _, i := range order[:n] {
		s.Questions = append(s.Questions, g.question(cards, i))
	}
	return s, nil
}

// question builds one question for cards[i] with distractor names from
// three other cards.
func (g *Generator) question(cards []card.Card, i int) Question {
	options := []string{cards[i].DisplayName}
	for _, j := range g.rng.Perm(len(cards)) {
		if len(options) == OptionCount {
			break
		}
		// Skip the card itself and any name already present, so the
		// options are distinct and exactly one is right.
		if j == i || slices.Contains(options, cards[j].DisplayName) {
			continue
		}
		options = append(options, cards[j].DisplayName)
	}

	g.rng.Shuffle(len(options), func(a, b int) {
		options[a], options[b] = options[b], options[a]
	})

	answer := 0
	for k, name := range options {
		if name == cards[i].DisplayName {
			answer = k
			break
		}
	}
	return Question{Card: cards[i], Options: options, Answer: answer}
}

// Grade records the answer for question q and reports whether choice
// was correct. An out-of-range question index is not an answer and
// grades false without being counted.
func (s *Session) Grade(q int, choice int) bool {
	if q < 0 || q >= len(s.Questions) {
		return false
	}
	s.answered++
	if choice == s.Questions[q].Answer {
		s.correct++
		return true
	}
	return false
}

// Score returns how many answers were correct out of those given.
func (s *Session) Score() (correct, answered int) {
	return s.correct, s.answered
}
