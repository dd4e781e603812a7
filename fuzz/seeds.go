// Package fuzz holds native fuzz targets for the tagged and external value
// forms.
//
// Run a target with
//
//	go test ./fuzz -run=^$ -fuzz=FuzzValPair
//
// Each input is used as a byte oracle for the generators in package
// arbitrary, or decoded directly as an RLP external value.
package fuzz

import (
	"github.com/ethereum/go-ethereum/common"

	hostval "github.com/branched-services/go-hostval"
)

// seedValues are external values whose encodings seed every target.
func seedValues() []hostval.ScVal {
	return []hostval.ScVal{
		hostval.ScvVoid{},
		hostval.ScvBool(true),
		hostval.ScvError{Status: hostval.Status{Type: hostval.StatusVmError, Code: 3}},
		hostval.ScvU32(0),
		hostval.ScvI32(-1),
		hostval.ScvU64(hostval.MaxSmallUnsigned),
		hostval.ScvU64(hostval.MaxSmallUnsigned + 1),
		hostval.ScvI64(hostval.MinSmallSigned - 1),
		hostval.ScvTimepoint(1700000000),
		hostval.ScvDuration(3600),
		hostval.ScvU128{Hi: 1},
		hostval.ScvI128{Hi: -1, Lo: 1},
		hostval.ScvU256{HiHi: 1},
		hostval.ScvI256{HiHi: -1, HiLo: ^uint64(0), LoHi: ^uint64(0), LoLo: ^uint64(0)},
		hostval.ScvBytes("bytes"),
		hostval.ScvString("string"),
		hostval.ScvSymbol("short"),
		hostval.ScvSymbol("a_much_longer_symbol"),
		hostval.ScvSymbol("bad symbol"),
		hostval.ScvAddress{ContractID: common.HexToHash("0x01")},
		hostval.ScvVec{},
		hostval.NewScVec(hostval.ScvU32(0)),
		hostval.NewScVec(hostval.ScvU32(0), hostval.ScvU32(1)),
		hostval.ScvMap{},
		hostval.NewScMap(
			hostval.ScMapEntry{Key: hostval.ScvSymbol("a"), Val: hostval.ScvU32(1)},
			hostval.ScMapEntry{Key: hostval.ScvSymbol("b"), Val: hostval.NewScVec()},
		),
		hostval.NewScMap(
			hostval.ScMapEntry{Key: hostval.ScvU32(2), Val: hostval.ScvVoid{}},
			hostval.ScMapEntry{Key: hostval.ScvU32(1), Val: hostval.ScvVoid{}},
		),
	}
}

// Seeds returns the RLP encodings of the seed values.
func Seeds() [][]byte {
	values := seedValues()
	seeds := make([][]byte, 0, len(values))
	for _, sv := range values {
		data, err := hostval.MarshalScVal(sv)
		if err != nil {
			panic(err)
		}
		seeds = append(seeds, data)
	}
	return seeds
}
