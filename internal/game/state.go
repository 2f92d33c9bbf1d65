package game

// GameState represents the phase of the round state machine
type GameState int

const (
	WaitingForPlayers GameState = iota
	PlayerTurn
	AiTurn
	DealerTurn
	RoundOver
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case WaitingForPlayers:
		return "WaitingForPlayers"
	case PlayerTurn:
		return "PlayerTurn"
	case AiTurn:
		return "AiTurn"
	case DealerTurn:
		return "DealerTurn"
	case RoundOver:
		return "RoundOver"
	default:
		return "Unknown"
	}
}
