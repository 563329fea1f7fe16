// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"math/big"
	"strconv"
)

// Integer values are 128-bit two's complement. They are stored as *big.Int
// normalized to [minInt128, maxInt128], and a stored *big.Int is never
// modified after construction, so it may be shared between copies.

var (
	one       = big.NewInt(1)
	mod128    = new(big.Int).Lsh(one, 128)
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(one, 127), one)
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(one, 127))
)

func inRange128(z *big.Int) bool {
	return z.Cmp(minInt128) >= 0 && z.Cmp(maxInt128) <= 0
}

// wrap128 reduces z modulo 2^128 into the signed 128-bit range. It may modify
// and return z.
func wrap128(z *big.Int) *big.Int {
	if inRange128(z) {
		return z
	}
	z.Mod(z, mod128) // Euclidean: 0 <= z < 2^128
	if z.Cmp(maxInt128) > 0 {
		z.Sub(z, mod128)
	}
	return z
}

// parseInt128 parses a base-10 integer with an optional sign. Failures are
// reported as *strconv.NumError, matching strconv.ParseInt.
func parseInt128(s string) (*big.Int, error) {
	z, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &strconv.NumError{Func: "ParseInt", Num: s, Err: strconv.ErrSyntax}
	} else if !inRange128(z) {
		return nil, &strconv.NumError{Func: "ParseInt", Num: s, Err: strconv.ErrRange}
	}
	return z, nil
}

func bigFloat(z *big.Int) float64 {
	f, _ := new(big.Float).SetInt(z).Float64()
	return f
}

// shiftCount reports the shift distance denoted by z, which must be in the
// range [0, 128).
func shiftCount(z *big.Int) (uint, bool) {
	if z.Sign() < 0 || z.Cmp(big.NewInt(128)) >= 0 {
		return 0, false
	}
	return uint(z.Int64()), true
}
