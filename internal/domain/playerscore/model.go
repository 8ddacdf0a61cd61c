package playerscore

// WinPoints is awarded to the winner of every completed match.
const WinPoints = 100

// PlayerScore accumulates points for one player inside one match record.
// It is unique by (MatchID, PlayerID).
type PlayerScore struct {
	MatchID  string
	PlayerID string
	Points   int
}
