package forest

import "math"

// State enumerates the per-cell states of the forest grid.
type State uint8

const (
	Empty State = iota
	Sapling
	YoungTree
	MatureTree
	Ignite
	Flame2
	Flame3
	Flame4
	Ember1
	Ember2
	Ash
	Char

	stateCount
)

// NumStates is the number of distinct cell states.
const NumStates = int(stateCount)

var stateNames = [stateCount]string{
	Empty:      "empty",
	Sapling:    "sapling",
	YoungTree:  "young_tree",
	MatureTree: "mature_tree",
	Ignite:     "ignite",
	Flame2:     "flame2",
	Flame3:     "flame3",
	Flame4:     "flame4",
	Ember1:     "ember1",
	Ember2:     "ember2",
	Ash:        "ash",
	Char:       "char",
}

// intensity of each burning state as seen by a neighbour; halves each tick.
var intensity = [stateCount]float64{
	Ignite: 1,
	Flame2: 0.5,
	Flame3: 0.25,
	Flame4: 0.125,
	Ember1: 0.0625,
	Ember2: 0.03125,
}

// fuel scales ignition pressure for the tree family.
var fuel = [stateCount]float64{
	Sapling:    0.25,
	YoungTree:  0.5,
	MatureTree: 1,
}

var diagonalWeight = 1 / math.Sqrt2

func (s State) String() string {
	if s >= stateCount {
		return "invalid"
	}
	return stateNames[s]
}

// Valid reports whether s is one of the declared states.
func (s State) Valid() bool { return s < stateCount }

// IsTree reports whether s belongs to the flammable tree family.
func (s State) IsTree() bool {
	return s == Sapling || s == YoungTree || s == MatureTree
}

// Burning reports whether s is part of the flame/ember decay chain.
func (s State) Burning() bool {
	return s >= Ignite && s <= Ember2
}

// Intensity is the fire intensity s radiates to its neighbours.
func (s State) Intensity() float64 {
	if s >= stateCount {
		return 0
	}
	return intensity[s]
}

// ParseState maps a state name back to its value.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return Empty, false
}
