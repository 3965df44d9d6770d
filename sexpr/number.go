/*
 * Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

package sexpr

import (
	"math"
	"strconv"
)

type numberKind uint8

const (
	posInt numberKind = iota
	negInt
	floatNum
)

// A Number is an unsigned 64-bit integer, a negative signed 64-bit integer,
// or a finite 64-bit float. Non-negative integers always use the unsigned
// form, so two Numbers holding the same value compare equal with ==.
type Number struct {
	kind numberKind
	u    uint64
	i    int64
	f    float64
}

// NumberFromInt64 returns a Number holding i.
func NumberFromInt64(i int64) Number {
	if i < 0 {
		return Number{kind: negInt, i: i}
	}
	return Number{kind: posInt, u: uint64(i)}
}

// NumberFromUint64 returns a Number holding u.
func NumberFromUint64(u uint64) Number {
	return Number{kind: posInt, u: u}
}

// NumberFromFloat64 returns a Number holding f. It reports false, and
// returns the zero Number, if f is NaN or infinite.
func NumberFromFloat64(f float64) (Number, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, false
	}
	return Number{kind: floatNum, f: f}, true
}

// IsInt64 returns true if the number is an integer representable as an int64.
func (n Number) IsInt64() bool {
	switch n.kind {
	case posInt:
		return n.u <= math.MaxInt64
	case negInt:
		return true
	}
	return false
}

// IsUint64 returns true if the number is a non-negative integer.
func (n Number) IsUint64() bool {
	return n.kind == posInt
}

// IsFloat64 returns true if the number is a float.
func (n Number) IsFloat64() bool {
	return n.kind == floatNum
}

// Int64 returns the number as an int64, if it is one.
func (n Number) Int64() (int64, bool) {
	switch n.kind {
	case posInt:
		if n.u <= math.MaxInt64 {
			return int64(n.u), true
		}
	case negInt:
		return n.i, true
	}
	return 0, false
}

// Uint64 returns the number as a uint64, if it is one.
func (n Number) Uint64() (uint64, bool) {
	if n.kind == posInt {
		return n.u, true
	}
	return 0, false
}

// Float64 returns the number converted to a float64. Large integers may
// lose precision.
func (n Number) Float64() float64 {
	switch n.kind {
	case posInt:
		return float64(n.u)
	case negInt:
		return float64(n.i)
	}
	return n.f
}

// String formats the number in decimal. Floats always carry a fractional
// part so that they read back as floats.
func (n Number) String() string {
	switch n.kind {
	case posInt:
		return strconv.FormatUint(n.u, 10)
	case negInt:
		return strconv.FormatInt(n.i, 10)
	}
	return formatFloat(n.f)
}

// writeTo offers the number to w using the arm it is stored in.
func (n Number) writeTo(w Writer) error {
	switch n.kind {
	case posInt:
		return w.WriteUint(n.u)
	case negInt:
		return w.WriteInt(n.i)
	}
	return w.WriteFloat(n.f)
}
