package entity

const (
	EventMove    = "move"
	EventResult  = "result"
	EventAborted = "aborted"

	ResultDraw = "draw"
)

// Event describes one step of a session for spectators.
type Event struct {
	SessionID string `json:"session_id"`
	Type      string `json:"type"`
	Player    string `json:"player,omitempty"`
	Cell      *int   `json:"cell,omitempty"`
	TurnCount int    `json:"turn_count"`
	Board     string `json:"board"`
	Result    string `json:"result,omitempty"`
}
