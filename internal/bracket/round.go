package bracket

type Round string

const (
	Round32 Round = "round32"
	Round16 Round = "round16"
	Round8  Round = "round8"
	Round4  Round = "round4"
	Final   Round = "final"
)

// Points awarded to the overall winner on top of the final's round points.
const ChampionBonus = 32

var roundOrder = []Round{Round32, Round16, Round8, Round4, Final}

var roundPoints = map[Round]int{
	Round32: 1,
	Round16: 2,
	Round8:  4,
	Round4:  8,
	Final:   16,
}

var roundLabels = map[Round]string{
	Round32: "Round of 32",
	Round16: "Round of 16",
	Round8:  "Quarterfinals",
	Round4:  "Semifinals",
	Final:   "Final",
}

// Points is the score a submitter earns each time one of their candidates
// wins a match in round r.
func (r Round) Points() int {
	return roundPoints[r]
}

func (r Round) Label() string {
	if l, ok := roundLabels[r]; ok {
		return l
	}
	return string(r)
}

func (r Round) Valid() bool {
	_, ok := roundPoints[r]
	return ok
}

// Next returns the round that follows r. The final has no successor.
func (r Round) Next() (Round, bool) {
	for i, round := range roundOrder {
		if round == r && i+1 < len(roundOrder) {
			return roundOrder[i+1], true
		}
	}
	return "", false
}
