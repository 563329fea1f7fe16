// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"
	"math"
	"math/big"
	"slices"
	"strings"
)

// Op is a binary operator over values.
type Op byte

// Constants defining the binary operators.
const (
	OpMul    Op = iota + 1 // *  product, string repetition, object mixin
	OpDiv                  // /  quotient, string split
	OpRem                  // %  remainder
	OpAdd                  // +  sum, concatenation, object merge
	OpSub                  // -  difference, array removal
	OpShl                  // << left shift
	OpShr                  // >> arithmetic right shift
	OpBitAnd               // &
	OpBitXor               // ^
	OpBitOr                // |
	OpAnd                  // and
	OpOr                   // or
)

var opStr = [...]string{
	OpMul:    "*",
	OpDiv:    "/",
	OpRem:    "%",
	OpAdd:    "+",
	OpSub:    "-",
	OpShl:    "<<",
	OpShr:    ">>",
	OpBitAnd: "&",
	OpBitXor: "^",
	OpBitOr:  "|",
	OpAnd:    "and",
	OpOr:     "or",
}

func (op Op) String() string {
	if op == 0 || int(op) >= len(opStr) {
		return fmt.Sprintf("Op(%d)", op)
	}
	return opStr[op]
}

// ParseOp returns the operator denoted by sym, and reports whether sym is a
// known operator symbol.
func ParseOp(sym string) (Op, bool) {
	i := slices.Index(opStr[:], sym)
	if i <= 0 {
		return 0, false
	}
	return Op(i), true
}

// Apply applies op to lhs and rhs and returns the result as a new value.
// The operands are not modified. Combinations of kinds for which op is not
// defined yield null. Apply panics if op is not a valid operator.
//
// Numeric operators promote an integer operand to float when the other
// operand is a float. Integer arithmetic wraps at 128 bits. Division always
// yields a float, and division or remainder by zero yields null.
func Apply(op Op, lhs, rhs *Value) *Value {
	switch op {
	case OpMul:
		return mul(lhs, rhs)
	case OpDiv:
		return div(lhs, rhs)
	case OpRem:
		return rem(lhs, rhs)
	case OpAdd:
		return add(lhs, rhs)
	case OpSub:
		return sub(lhs, rhs)
	case OpShl, OpShr, OpBitAnd, OpBitXor, OpBitOr:
		return bitwise(op, lhs, rhs)
	case OpAnd:
		return Bool(lhs.Truthy() && rhs.Truthy())
	case OpOr:
		return Bool(lhs.Truthy() || rhs.Truthy())
	}
	panic(fmt.Sprintf("invalid operator %v", op))
}

// Neg returns the arithmetic negation of a number, or null for other kinds.
func Neg(v *Value) *Value {
	switch v.Kind() {
	case IntegerKind:
		return intValue(new(big.Int).Neg(v.i))
	case FloatKind:
		return Float(-v.f)
	}
	return Null()
}

// Not returns the Boolean negation of the truth value of v.
func Not(v *Value) *Value { return Bool(!v.Truthy()) }

func isNumber(v *Value) bool { k := v.Kind(); return k == IntegerKind || k == FloatKind }

// asFloat returns the value of a number as a float64.
func asFloat(v *Value) float64 {
	if v.kind == IntegerKind {
		return bigFloat(v.i)
	}
	return v.f
}

// arith applies an arithmetic operation to numbers, with integer-to-float
// promotion. It reports false if either operand is not a number.
func arith(lhs, rhs *Value, zop func(z, x, y *big.Int) *big.Int, fop func(x, y float64) float64) (*Value, bool) {
	if !isNumber(lhs) || !isNumber(rhs) {
		return nil, false
	}
	if lhs.kind == IntegerKind && rhs.kind == IntegerKind {
		return intValue(zop(new(big.Int), lhs.i, rhs.i)), true
	}
	return Float(fop(asFloat(lhs), asFloat(rhs))), true
}

func isZero(v *Value) bool {
	switch v.Kind() {
	case IntegerKind:
		return v.i.Sign() == 0
	case FloatKind:
		return v.f == 0
	}
	return false
}

func mul(lhs, rhs *Value) *Value {
	if v, ok := arith(lhs, rhs, (*big.Int).Mul, func(x, y float64) float64 { return x * y }); ok {
		return v
	} else if isNumber(lhs) {
		return mul(rhs, lhs) // commute
	}
	switch {
	case lhs.Kind() == StringKind && rhs.Kind() == IntegerKind:
		return repeat(lhs.s, rhs.i)
	case lhs.Kind() == ObjectKind && rhs.Kind() == ObjectKind:
		return Mixin(lhs, rhs)
	}
	return Null()
}

// repeat returns s repeated n times. A zero count yields null rather than an
// empty string, and so does a negative count or one whose result length does
// not fit in an int.
func repeat(s string, n *big.Int) *Value {
	if n.Sign() <= 0 || !n.IsInt64() || n.Int64() > math.MaxInt {
		return Null()
	} else if len(s) > 0 && n.Int64() > math.MaxInt/int64(len(s)) {
		return Null()
	}
	return String(strings.Repeat(s, int(n.Int64())))
}

func div(lhs, rhs *Value) *Value {
	switch {
	case isNumber(lhs) && isNumber(rhs):
		if isZero(rhs) {
			return Null()
		}
		return Float(asFloat(lhs) / asFloat(rhs))
	case lhs.Kind() == StringKind && rhs.Kind() == StringKind:
		parts := strings.Split(lhs.s, rhs.s)
		out := make([]*Value, len(parts))
		for i, p := range parts {
			out[i] = String(p)
		}
		return &Value{kind: ArrayKind, arr: out}
	}
	return Null()
}

func rem(lhs, rhs *Value) *Value {
	if !isNumber(lhs) || !isNumber(rhs) || isZero(rhs) {
		return Null()
	}
	v, _ := arith(lhs, rhs, (*big.Int).Rem, math.Mod)
	return v
}

func add(lhs, rhs *Value) *Value {
	if v, ok := arith(lhs, rhs, (*big.Int).Add, func(x, y float64) float64 { return x + y }); ok {
		return v
	} else if isNumber(lhs) {
		return add(rhs, lhs) // commute
	}
	if lhs.Kind() != rhs.Kind() {
		return Null()
	}
	switch lhs.Kind() {
	case StringKind:
		return String(lhs.s + rhs.s)
	case ArrayKind:
		out := make([]*Value, 0, len(lhs.arr)+len(rhs.arr))
		for _, elt := range lhs.arr {
			out = append(out, elt.Clone())
		}
		for _, elt := range rhs.arr {
			out = append(out, elt.Clone())
		}
		return &Value{kind: ArrayKind, arr: out}
	case ObjectKind:
		// Members of rhs replace members of lhs with the same key, without
		// merging their contents.
		out := lhs.Clone()
		out.AppendMembers(rhs.obj.clone()...)
		return out
	}
	return Null()
}

func sub(lhs, rhs *Value) *Value {
	if v, ok := arith(lhs, rhs, (*big.Int).Sub, func(x, y float64) float64 { return x - y }); ok {
		return v
	} else if isNumber(lhs) {
		return Null() // the commuted form is never defined
	}
	if lhs.Kind() == ArrayKind && rhs.Kind() == ArrayKind {
		// Remove the first element equal to each element of rhs, in order.
		out := slices.Clone(lhs.arr)
		for _, elt := range rhs.arr {
			if i := slices.IndexFunc(out, elt.Equal); i >= 0 {
				out = slices.Delete(out, i, i+1)
			}
		}
		for i, elt := range out {
			out[i] = elt.Clone()
		}
		return &Value{kind: ArrayKind, arr: out}
	}
	return Null()
}

func bitwise(op Op, lhs, rhs *Value) *Value {
	if lhs.Kind() != IntegerKind || rhs.Kind() != IntegerKind {
		return Null()
	}
	z := new(big.Int)
	switch op {
	case OpShl, OpShr:
		n, ok := shiftCount(rhs.i)
		if !ok {
			return Null()
		} else if op == OpShl {
			return intValue(z.Lsh(lhs.i, n))
		}
		return intValue(z.Rsh(lhs.i, n))
	case OpBitAnd:
		z.And(lhs.i, rhs.i)
	case OpBitXor:
		z.Xor(lhs.i, rhs.i)
	case OpBitOr:
		z.Or(lhs.i, rhs.i)
	}
	return intValue(z)
}
