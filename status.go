package hostval

import (
	"cmp"
	"fmt"
	"math"
)

// StatusType classifies a Status.
type StatusType uint32

const (
	StatusOk StatusType = iota
	StatusUnknownError
	StatusHostValueError
	StatusHostObjectError
	StatusHostFunctionError
	StatusHostStorageError
	StatusHostContextError
	StatusVmError
	StatusContractError
	StatusHostAuthError

	// NumStatusTypes is the number of status types with an external form.
	NumStatusTypes = int(StatusHostAuthError) + 1
)

var statusTypeNames = [...]string{
	StatusOk:                "Ok",
	StatusUnknownError:      "UnknownError",
	StatusHostValueError:    "HostValueError",
	StatusHostObjectError:   "HostObjectError",
	StatusHostFunctionError: "HostFunctionError",
	StatusHostStorageError:  "HostStorageError",
	StatusHostContextError:  "HostContextError",
	StatusVmError:           "VmError",
	StatusContractError:     "ContractError",
	StatusHostAuthError:     "HostAuthError",
}

// statusCodeCounts is the number of codes each type defines, codes 0..n-1.
var statusCodeCounts = [...]uint64{
	StatusOk:                1,
	StatusUnknownError:      2,
	StatusHostValueError:    12,
	StatusHostObjectError:   7,
	StatusHostFunctionError: 4,
	StatusHostStorageError:  6,
	StatusHostContextError:  2,
	StatusVmError:           19,
	StatusContractError:     math.MaxUint32 + 1,
	StatusHostAuthError:     4,
}

func (t StatusType) String() string {
	if int(t) < NumStatusTypes {
		return statusTypeNames[t]
	}
	return fmt.Sprintf("StatusType(%d)", uint32(t))
}

// CodeCount returns the number of codes defined for this type, 0 if the
// type itself is undefined.
func (t StatusType) CodeCount() uint64 {
	if int(t) < NumStatusTypes {
		return statusCodeCounts[t]
	}
	return 0
}

// Status is the payload of an Error value: a type and a type-specific code.
type Status struct {
	Type StatusType
	Code uint32
}

// Serializable returns true if the status has an external representation.
func (s Status) Serializable() bool {
	return uint64(s.Code) < s.Type.CodeCount()
}

func (s Status) String() string {
	return fmt.Sprintf("%s/%d", s.Type, s.Code)
}

// compareStatus orders statuses by type, then code.
func compareStatus(a, b Status) int {
	if c := cmp.Compare(a.Type, b.Type); c != 0 {
		return c
	}
	return cmp.Compare(a.Code, b.Code)
}
