// Package predictor implements the GShare branch predictor the predicted
// pipeline variant consults at fetch and retrains at writeback (spec.md
// §4.11). Structurally grounded on the teacher's branch_predictor.go
// (Config/Stats/Prediction/NewBranchPredictor/Predict/Update/Reset
// organization), but the prediction algorithm itself is new: the
// teacher's predictor is a plain bimodal table indexed by pc alone, with
// a separate BTB; GShare folds a global history vector into the index
// via XOR and has no BTB — targets live in the predictor's own jump-map.
package predictor

const (
	historyLen     = 10
	tableBits      = 9
	tableSize      = 1 << tableBits
	counterDefault = 2
	counterMax     = 3
	counterMin     = 0
)

// Prediction is what Predict returns: whether the branch at pc is
// expected to be taken, and the address fetch should go to next.
type Prediction struct {
	Taken  bool
	Target uint32
}

// GShare holds the global history ring buffer, the saturating-counter
// table, and the jump-map (spec.md §4.11).
type GShare struct {
	history [historyLen]bool // history[0] is the most recent outcome
	table   [tableSize]uint8
	jumpMap map[uint32]uint32
}

// New constructs a GShare predictor with every counter at its default
// (weakly-taken) value and an empty history and jump-map.
func New() *GShare {
	g := &GShare{jumpMap: make(map[uint32]uint32)}
	for i := range g.table {
		g.table[i] = counterDefault
	}
	return g
}

// historyVector folds the history ring into a small integer, oldest bit
// at the LSB (spec.md §4.11 — any consistent order satisfies the spec;
// this is the one this implementation commits to).
func (g *GShare) historyVector() uint32 {
	var v uint32
	for i, taken := range g.history {
		if taken {
			v |= 1 << uint(historyLen-1-i)
		}
	}
	return v
}

func (g *GShare) index(pc uint32) uint32 {
	return (pc & (tableSize - 1)) ^ (g.historyVector() & (tableSize - 1))
}

func (g *GShare) shift(taken bool) {
	copy(g.history[1:], g.history[:historyLen-1])
	g.history[0] = taken
}

// Predict reports whether the branch at pc is expected taken (its counter
// is 2 or above) and the address fetch should continue at: the
// most-recently-observed target from the jump-map (spec.md §4.11) when
// the counter predicts taken and pc has a jump-map entry, otherwise the
// fall-through pc+4. An address with no jump-map entry therefore never
// redirects fetch, even while its counter predicts taken.
func (g *GShare) Predict(pc uint32) Prediction {
	idx := g.index(pc)
	if g.table[idx] < 2 {
		return Prediction{Taken: false, Target: pc + 4}
	}
	target, ok := g.jumpMap[pc]
	if !ok {
		target = pc + 4
	}
	return Prediction{Taken: true, Target: target}
}

// TrainTaken records an actually-taken outcome at pc with the given
// observed target: the counter saturates up, history shifts true, and
// the jump-map is refreshed (spec.md §4.11 "train on taken").
func (g *GShare) TrainTaken(pc, target uint32) {
	idx := g.index(pc)
	if g.table[idx] < counterMax {
		g.table[idx]++
	}
	g.jumpMap[pc] = target
	g.shift(true)
}

// TrainNotTaken records an actually-not-taken outcome at pc: the counter
// saturates down and history shifts false (spec.md §4.11 "train on
// not-taken").
func (g *GShare) TrainNotTaken(pc uint32) {
	idx := g.index(pc)
	if g.table[idx] > counterMin {
		g.table[idx]--
	}
	g.shift(false)
}

// Reset clears the predictor back to its construction-time state.
func (g *GShare) Reset() {
	*g = *New()
}
