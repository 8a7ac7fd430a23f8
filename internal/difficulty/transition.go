package difficulty

// Direction says which way a level change went.
type Direction string

const (
	DirectionPromoted Direction = "promoted"
	DirectionDemoted  Direction = "demoted"
)

// Transition records a level change for display and event logging.
type Transition struct {
	Direction Direction
	From      Level
	To        Level
	FromName  string
	ToName    string
}
