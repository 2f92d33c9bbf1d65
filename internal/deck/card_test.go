package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "blackjack hand",
			input: "AsKd",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Diamonds, Rank: King},
			},
		},
		{
			name:  "mixed suits",
			input: "Th7h6c2s",
			expected: []Card{
				{Suit: Hearts, Rank: Ten},
				{Suit: Hearts, Rank: Seven},
				{Suit: Clubs, Rank: Six},
				{Suit: Spades, Rank: Two},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "odd length",
			input:   "AsK",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for input %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cards) != len(tt.expected) {
				t.Fatalf("expected %d cards, got %d", len(tt.expected), len(cards))
			}
			for i, card := range cards {
				if card != tt.expected[i] {
					t.Errorf("card %d: expected %v, got %v", i, tt.expected[i], card)
				}
			}
		})
	}
}

func TestBlackjackValue(t *testing.T) {
	tests := []struct {
		card     string
		expected int
	}{
		{"2s", 2},
		{"9d", 9},
		{"Th", 10},
		{"Jc", 10},
		{"Qs", 10},
		{"Kh", 10},
		{"Ad", 11},
	}

	for _, tt := range tests {
		card, err := ParseCard(tt.card)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", tt.card, err)
		}
		if got := card.BlackjackValue(); got != tt.expected {
			t.Errorf("BlackjackValue(%s) = %d, want %d", tt.card, got, tt.expected)
		}
	}
}

func TestCardString(t *testing.T) {
	card := NewCard(Hearts, Ace)
	if card.String() != "A♥" {
		t.Errorf("expected A♥, got %s", card.String())
	}
	if !card.IsRed() {
		t.Error("hearts should be red")
	}
	if !card.IsAce() {
		t.Error("expected ace")
	}

	king := NewCard(Spades, King)
	if !king.IsFaceCard() {
		t.Error("king should be a face card")
	}
	if king.IsRed() {
		t.Error("spades should not be red")
	}
}
