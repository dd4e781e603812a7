package hostval

import (
	"fmt"
	"strings"
)

// CostType identifies what a budget charge pays for.
type CostType int

const (
	CostCompare CostType = iota
	CostConvert
	CostAlloc
	CostResolve

	numCostTypes
)

var costTypeNames = [...]string{
	CostCompare: "compare",
	CostConvert: "convert",
	CostAlloc:   "alloc",
	CostResolve: "resolve",
}

func (t CostType) String() string {
	if t >= 0 && t < numCostTypes {
		return costTypeNames[t]
	}
	return fmt.Sprintf("CostType(%d)", int(t))
}

// Budget counts the cost of compare, convert and store operations. It
// only meters; it never refuses work. A Budget is not safe for
// concurrent use.
type Budget struct {
	counts [numCostTypes]uint64
}

// NewBudget returns an empty budget.
func NewBudget() *Budget {
	return &Budget{}
}

// Charge adds n units of the given cost type. Unknown types are ignored.
func (b *Budget) Charge(t CostType, n uint64) {
	if t >= 0 && t < numCostTypes {
		b.counts[t] += n
	}
}

// Count returns the units charged for a cost type.
func (b *Budget) Count(t CostType) uint64 {
	if t >= 0 && t < numCostTypes {
		return b.counts[t]
	}
	return 0
}

// Total returns the units charged across all cost types.
func (b *Budget) Total() uint64 {
	var total uint64
	for _, n := range b.counts {
		total += n
	}
	return total
}

// Reset zeroes every counter.
func (b *Budget) Reset() {
	b.counts = [numCostTypes]uint64{}
}

func (b *Budget) String() string {
	var sb strings.Builder
	for t := CostType(0); t < numCostTypes; t++ {
		if t > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%d", t, b.counts[t])
	}
	return sb.String()
}

// Compare orders two external values like CompareScVal, charging one
// CostCompare unit per visited node pair. It fails on nil values.
func (b *Budget) Compare(x, y ScVal) (int, error) {
	if hasNil(x) || hasNil(y) {
		return 0, fmt.Errorf("%w: nil external value", ErrInvalidShape)
	}
	return compareScVal(x, y, func() { b.counts[CostCompare]++ }), nil
}
