// Package card defines the immutable playing-card value types and the
// normalization of the many rank/suit spellings the game service accepts.
package card

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Suit identifies one of the four suits.
type Suit int

// Rank identifies a card value of the reduced deck.
type Rank int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// A reduced 36-card deck, six through ace.
const (
	Rank6 Rank = iota + 6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
)

// TotalDeckCards is the size of the full reduced deck.
const TotalDeckCards = 36

// Card is an immutable playing card. Equality is structural, so cards are
// directly comparable with ==.
type Card struct {
	Rank Rank
	Suit Suit
}

// suitLetters maps suits to their single-letter wire form.
var suitLetters = map[Suit]string{
	Spades:   "S",
	Hearts:   "H",
	Diamonds: "D",
	Clubs:    "C",
}

// suitSymbols maps suits to display glyphs.
var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
}

var suitNames = map[Suit]string{
	Spades:   "spades",
	Hearts:   "hearts",
	Diamonds: "diamonds",
	Clubs:    "clubs",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

// Letter returns the wire form: "S", "H", "D" or "C".
func (s Suit) Letter() string {
	return suitLetters[s]
}

// Symbol returns the display glyph for the suit.
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// suitSynonyms is the lookup table for every accepted suit spelling.
var suitSynonyms = map[string]Suit{
	"s": Spades, "spades": Spades, "spade": Spades, "♠": Spades,
	"h": Hearts, "hearts": Hearts, "heart": Hearts, "♥": Hearts,
	"d": Diamonds, "diamonds": Diamonds, "diamond": Diamonds, "♦": Diamonds,
	"c": Clubs, "clubs": Clubs, "club": Clubs, "♣": Clubs,
}

// ParseSuit normalizes any accepted suit spelling (letter, word or glyph,
// any casing) to its canonical Suit.
func ParseSuit(s string) (Suit, error) {
	if suit, ok := suitSynonyms[strings.ToLower(strings.TrimSpace(s))]; ok {
		return suit, nil
	}
	return -1, fmt.Errorf("unrecognized suit: %q", s)
}

var rankNames = map[Rank]string{
	Rank6:  "6",
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	RankA:  "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// rankSynonyms is the lookup table for every accepted rank spelling.
var rankSynonyms = map[string]Rank{
	"j": RankJ, "jack": RankJ, "11": RankJ,
	"q": RankQ, "queen": RankQ, "12": RankQ,
	"k": RankK, "king": RankK, "13": RankK,
	"a": RankA, "ace": RankA, "14": RankA,
	"6": Rank6, "six": Rank6,
	"7": Rank7, "seven": Rank7,
	"8": Rank8, "eight": Rank8,
	"9": Rank9, "nine": Rank9,
	"10": Rank10, "ten": Rank10,
}

// ParseRank normalizes any accepted rank spelling (numeric "6".."14", face
// letter or face word, any casing) to its canonical Rank.
func ParseRank(s string) (Rank, error) {
	if rank, ok := rankSynonyms[strings.ToLower(strings.TrimSpace(s))]; ok {
		return rank, nil
	}
	return -1, fmt.Errorf("unrecognized rank: %q", s)
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// wireCard is the JSON shape the game service speaks. Rank is kept raw
// because peers emit it both as a number and as a string.
type wireCard struct {
	Rank json.RawMessage `json:"rank"`
	Suit string          `json:"suit"`
}

// MarshalJSON encodes the canonical wire form, e.g. {"rank":"14","suit":"S"}.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"rank": strconv.Itoa(int(c.Rank)),
		"suit": c.Suit.Letter(),
	})
}

// UnmarshalJSON accepts any synonym form: rank as a JSON number or string,
// suit as a letter or a word.
func (c *Card) UnmarshalJSON(data []byte) error {
	var w wireCard
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	rank, err := ParseRank(strings.Trim(string(w.Rank), `"`))
	if err != nil {
		return err
	}
	suit, err := ParseSuit(w.Suit)
	if err != nil {
		return err
	}
	c.Rank = rank
	c.Suit = suit
	return nil
}

// Parse builds a Card from loose rank and suit spellings.
func Parse(rank, suit string) (Card, error) {
	r, err := ParseRank(rank)
	if err != nil {
		return Card{}, err
	}
	s, err := ParseSuit(suit)
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: r, Suit: s}, nil
}
