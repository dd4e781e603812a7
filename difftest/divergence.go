package difftest

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	hostval "github.com/branched-services/go-hostval"
)

// Properties checked by CheckVals and CheckScVals.
const (
	PropCompareConsistency = "compare consistency"
	PropEqualCoherence     = "equality coherence"
	PropPartialTotal       = "partial order totality"
	PropBudgetCompare      = "budget compare"
	PropRoundTrip          = "round trip"
	PropReverseRoundTrip   = "reverse round trip"
	PropScenario           = "scenario"
)

// ErrSkipped reports a case whose values legitimately have no counterpart in
// the other form.
var ErrSkipped = errors.New("difftest: case skipped")

// ConversionMightFail returns true if err is a conversion failure that
// valid inputs can produce: an unserializable status or an external shape
// with no tagged counterpart.
func ConversionMightFail(err error) bool {
	return errors.Is(err, hostval.ErrNotSerializable) || errors.Is(err, hostval.ErrInvalidShape)
}

func skipped(err error) error {
	return fmt.Errorf("%w: %v", ErrSkipped, err)
}

// Divergence is a violated property, carrying every input involved.
type Divergence struct {
	Property string
	Detail   string

	// Tagged holds the tagged inputs, if any.
	Tagged []hostval.Val

	// External holds the external inputs or the external forms of the
	// tagged inputs.
	External []hostval.ScVal
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (d *Divergence) Error() string {
	return fmt.Sprintf("difftest: %s violated: %s\ntagged: %s\nexternal: %s",
		d.Property, d.Detail, dumper.Sdump(d.Tagged), dumper.Sdump(d.External))
}

// KnownException returns true if d is a comparison divergence involving a
// 128- or 256-bit integer. Ordering of those integers is not guaranteed to
// agree between the two forms, so such divergences are tolerated.
func KnownException(d *Divergence) bool {
	switch d.Property {
	case PropCompareConsistency, PropEqualCoherence:
	default:
		return false
	}
	for _, sv := range d.External {
		if containsBigInt(sv) {
			return true
		}
	}
	return false
}

func containsBigInt(sv hostval.ScVal) bool {
	switch x := sv.(type) {
	case nil:
		return false
	case hostval.ScvVec:
		if x.Vec != nil {
			for _, e := range *x.Vec {
				if containsBigInt(e) {
					return true
				}
			}
		}
		return false
	case hostval.ScvMap:
		if x.Map != nil {
			for _, e := range *x.Map {
				if containsBigInt(e.Key) || containsBigInt(e.Val) {
					return true
				}
			}
		}
		return false
	}
	return sv.Type().IsBigInt()
}
