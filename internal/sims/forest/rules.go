package forest

// Fixed per-step probabilities of the growth and decomposition paths.
const (
	GrowthChance = 0.25
	DecayChance  = 0.25
)

// Bernoulli draws independent trials from a sequential stream.
type Bernoulli interface {
	Chance(p float64) bool
}

// decayChain maps each burning state to its successor.
var decayChain = [stateCount]State{
	Ignite: Flame2,
	Flame2: Flame3,
	Flame3: Flame4,
	Flame4: Ember1,
	Ember1: Ember2,
	Ember2: Ash,
}

// Transition computes the next state of a cell from its current state, the
// ignition pressure of its neighbourhood and the tunables.
func Transition(s State, pressure float64, p Params, rng Bernoulli) State {
	switch s {
	case Sapling, YoungTree, MatureTree:
		pressure *= fuel[s]
		if rng.Chance(p.SpreadChance*pressure) || rng.Chance(p.StrikeChance) {
			return Ignite
		}
		switch s {
		case YoungTree:
			if rng.Chance(GrowthChance) {
				return MatureTree
			}
		case Sapling:
			if rng.Chance(GrowthChance) {
				return YoungTree
			}
		}
		return s
	case Ignite, Flame2, Flame3, Flame4, Ember1, Ember2:
		return decayChain[s]
	case Ash:
		if rng.Chance(DecayChance) {
			return Char
		}
		return Ash
	case Char:
		if rng.Chance(DecayChance) {
			return Empty
		}
		return Char
	case Empty:
		if rng.Chance(p.GrowChance) {
			return Sapling
		}
		return Empty
	default:
		return Empty
	}
}
