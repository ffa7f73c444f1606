package card

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRank(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Rank
		wantErr  bool
	}{
		{name: "numeric six", input: "6", expected: Rank6},
		{name: "numeric ten", input: "10", expected: Rank10},
		{name: "numeric jack", input: "11", expected: RankJ},
		{name: "numeric ace", input: "14", expected: RankA},
		{name: "letter queen", input: "Q", expected: RankQ},
		{name: "lowercase letter", input: "k", expected: RankK},
		{name: "word ace", input: "ace", expected: RankA},
		{name: "capitalized word", input: "Jack", expected: RankJ},
		{name: "padded", input: " 9 ", expected: Rank9},
		{name: "five not in deck", input: "5", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "joker", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseRank(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseSuit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Suit
		wantErr  bool
	}{
		{name: "letter", input: "S", expected: Spades},
		{name: "lowercase letter", input: "h", expected: Hearts},
		{name: "word", input: "diamonds", expected: Diamonds},
		{name: "capitalized word", input: "Clubs", expected: Clubs},
		{name: "singular word", input: "spade", expected: Spades},
		{name: "glyph", input: "♦", expected: Diamonds},
		{name: "garbage", input: "stars", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSuit(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCardJSON(t *testing.T) {
	t.Run("marshal canonical form", func(t *testing.T) {
		data, err := json.Marshal(Card{Rank: RankA, Suit: Spades})
		require.NoError(t, err)
		assert.JSONEq(t, `{"rank":"14","suit":"S"}`, string(data))
	})

	t.Run("unmarshal string rank and letter suit", func(t *testing.T) {
		var c Card
		require.NoError(t, json.Unmarshal([]byte(`{"rank":"14","suit":"S"}`), &c))
		assert.Equal(t, Card{Rank: RankA, Suit: Spades}, c)
	})

	t.Run("unmarshal word synonyms", func(t *testing.T) {
		var c Card
		require.NoError(t, json.Unmarshal([]byte(`{"rank":"ace","suit":"spades"}`), &c))
		assert.Equal(t, Card{Rank: RankA, Suit: Spades}, c)
	})

	t.Run("unmarshal numeric rank", func(t *testing.T) {
		var c Card
		require.NoError(t, json.Unmarshal([]byte(`{"rank":10,"suit":"hearts"}`), &c))
		assert.Equal(t, Card{Rank: Rank10, Suit: Hearts}, c)
	})

	t.Run("unmarshal rejects unknown rank", func(t *testing.T) {
		var c Card
		assert.Error(t, json.Unmarshal([]byte(`{"rank":"2","suit":"hearts"}`), &c))
	})
}

func TestCardEquality(t *testing.T) {
	a, err := Parse("A", "spades")
	require.NoError(t, err)
	b, err := Parse("14", "S")
	require.NoError(t, err)

	assert.Equal(t, a, b, "synonym spellings must normalize to the same value")
	assert.True(t, a == b)
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", Card{Rank: RankA, Suit: Spades}.String())
	assert.Equal(t, "10♥", Card{Rank: Rank10, Suit: Hearts}.String())
}
