package kaja

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
)

var (
	valueFalse Value = valueBool(false)
	valueTrue  Value = valueBool(true)
	_null      Value = valueNull{}
	_undefined Value = valueUndefined{}
	_NaN       Value = valueFloat(math.NaN())
)

// Value is the tagged union over every runtime value. Primitives are
// self-contained; objects are references (*Object) into a Realm's heap.
type Value interface {
	ToInteger() int64
	ToFloat() float64
	ToBoolean() bool
	String() string
	ToObject(r *Realm) (*Object, error)
	SameAs(other Value) bool
	StrictEquals(other Value) bool
	Export() interface{}
}

type valueInt int64
type valueFloat float64
type valueBool bool
type valueString string
type valueNull struct{}
type valueUndefined struct {
	valueNull
}

type valueSymbol struct {
	desc string
}

type valueBigInt struct {
	i *big.Int
}

func intToValue(i int64) Value {
	return valueInt(i)
}

func floatToValue(f float64) Value {
	return valueFloat(f)
}

func newStringValue(s string) Value {
	return valueString(s)
}

// isNumber reports whether v is a Number. BigInt is deliberately not a
// Number: new Array(1n) creates a one-element array.
func isNumber(v Value) bool {
	switch v.(type) {
	case valueInt, valueFloat:
		return true
	}
	return false
}

// IsUndefined reports whether v is the undefined value.
func IsUndefined(v Value) bool {
	_, ok := v.(valueUndefined)
	return ok
}

// IsNull reports whether v is the null value.
func IsNull(v Value) bool {
	if _, ok := v.(valueUndefined); ok {
		return false
	}
	_, ok := v.(valueNull)
	return ok
}

// Undefined returns the undefined value.
func Undefined() Value {
	return _undefined
}

// Null returns the null value.
func Null() Value {
	return _null
}

func (i valueInt) ToInteger() int64 {
	return int64(i)
}

func (i valueInt) ToFloat() float64 {
	return float64(i)
}

func (i valueInt) ToBoolean() bool {
	return i != 0
}

func (i valueInt) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i valueInt) ToObject(r *Realm) (*Object, error) {
	return r.newPrimitiveObject(i, r.global.NumberPrototype, classNumber), nil
}

func (i valueInt) SameAs(other Value) bool {
	switch o := other.(type) {
	case valueInt:
		return i == o
	case valueFloat:
		f := float64(o)
		return float64(i) == f && !(i == 0 && math.Signbit(f))
	}
	return false
}

func (i valueInt) StrictEquals(other Value) bool {
	switch o := other.(type) {
	case valueInt:
		return i == o
	case valueFloat:
		return float64(i) == float64(o)
	}
	return false
}

func (i valueInt) Export() interface{} {
	return int64(i)
}

var matchLeading0Exponent = regexp.MustCompile(`([eE][+\-])0+([1-9])`) // 1e-07 => 1e-7

func (f valueFloat) String() string {
	value := float64(f)
	if math.IsNaN(value) {
		return "NaN"
	} else if math.IsInf(value, 0) {
		if math.Signbit(value) {
			return "-Infinity"
		}
		return "Infinity"
	} else if value == 0 {
		return "0"
	}
	exponent := math.Log10(math.Abs(value))
	if exponent >= 21 || exponent < -6 {
		return matchLeading0Exponent.ReplaceAllString(strconv.FormatFloat(value, 'g', -1, 64), "$1$2")
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func (f valueFloat) ToInteger() int64 {
	switch {
	case math.IsNaN(float64(f)):
		return 0
	case math.IsInf(float64(f), 1):
		return math.MaxInt64
	case math.IsInf(float64(f), -1):
		return math.MinInt64
	}
	return int64(f)
}

func (f valueFloat) ToFloat() float64 {
	return float64(f)
}

func (f valueFloat) ToBoolean() bool {
	return float64(f) != 0 && !math.IsNaN(float64(f))
}

func (f valueFloat) ToObject(r *Realm) (*Object, error) {
	return r.newPrimitiveObject(f, r.global.NumberPrototype, classNumber), nil
}

func (f valueFloat) SameAs(other Value) bool {
	switch o := other.(type) {
	case valueFloat:
		f1, f2 := float64(f), float64(o)
		if math.IsNaN(f1) && math.IsNaN(f2) {
			return true
		}
		return f1 == f2 && math.Signbit(f1) == math.Signbit(f2)
	case valueInt:
		f1 := float64(f)
		return f1 == float64(o) && !(f1 == 0 && math.Signbit(f1))
	}
	return false
}

func (f valueFloat) StrictEquals(other Value) bool {
	switch o := other.(type) {
	case valueFloat:
		return f == o
	case valueInt:
		return float64(f) == float64(o)
	}
	return false
}

func (f valueFloat) Export() interface{} {
	return float64(f)
}

func (b valueBool) ToInteger() int64 {
	if b {
		return 1
	}
	return 0
}

func (b valueBool) ToFloat() float64 {
	if b {
		return 1
	}
	return 0
}

func (b valueBool) ToBoolean() bool {
	return bool(b)
}

func (b valueBool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b valueBool) ToObject(r *Realm) (*Object, error) {
	return r.newPrimitiveObject(b, r.global.BooleanPrototype, classBoolean), nil
}

func (b valueBool) SameAs(other Value) bool {
	if o, ok := other.(valueBool); ok {
		return b == o
	}
	return false
}

func (b valueBool) StrictEquals(other Value) bool {
	return b.SameAs(other)
}

func (b valueBool) Export() interface{} {
	return bool(b)
}

func (s valueString) ToInteger() int64 {
	return int64(s.ToFloat())
}

func (s valueString) ToFloat() float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func (s valueString) ToBoolean() bool {
	return len(s) > 0
}

func (s valueString) String() string {
	return string(s)
}

func (s valueString) ToObject(r *Realm) (*Object, error) {
	return r.newPrimitiveObject(s, r.global.StringPrototype, classString), nil
}

func (s valueString) SameAs(other Value) bool {
	if o, ok := other.(valueString); ok {
		return s == o
	}
	return false
}

func (s valueString) StrictEquals(other Value) bool {
	return s.SameAs(other)
}

func (s valueString) Export() interface{} {
	return string(s)
}

func (n valueNull) ToInteger() int64 {
	return 0
}

func (n valueNull) ToFloat() float64 {
	return 0
}

func (n valueNull) ToBoolean() bool {
	return false
}

func (n valueNull) String() string {
	return "null"
}

func (n valueNull) ToObject(r *Realm) (*Object, error) {
	return nil, r.NewTypeError("Cannot convert undefined or null to object")
}

func (n valueNull) SameAs(other Value) bool {
	return IsNull(other)
}

func (n valueNull) StrictEquals(other Value) bool {
	return IsNull(other)
}

func (n valueNull) Export() interface{} {
	return nil
}

func (u valueUndefined) ToFloat() float64 {
	return math.NaN()
}

func (u valueUndefined) String() string {
	return "undefined"
}

func (u valueUndefined) SameAs(other Value) bool {
	return IsUndefined(other)
}

func (u valueUndefined) StrictEquals(other Value) bool {
	return IsUndefined(other)
}

func (s *valueSymbol) ToInteger() int64 {
	panic(fmt.Errorf("cannot convert a Symbol value to a number"))
}

func (s *valueSymbol) ToFloat() float64 {
	panic(fmt.Errorf("cannot convert a Symbol value to a number"))
}

func (s *valueSymbol) ToBoolean() bool {
	return true
}

func (s *valueSymbol) String() string {
	return fmt.Sprintf("Symbol(%s)", s.desc)
}

func (s *valueSymbol) ToObject(r *Realm) (*Object, error) {
	return r.newPrimitiveObject(s, r.global.SymbolPrototype, classSymbol), nil
}

func (s *valueSymbol) SameAs(other Value) bool {
	if o, ok := other.(*valueSymbol); ok {
		return s == o
	}
	return false
}

func (s *valueSymbol) StrictEquals(other Value) bool {
	return s.SameAs(other)
}

func (s *valueSymbol) Export() interface{} {
	return s.String()
}

func (b *valueBigInt) ToInteger() int64 {
	return b.i.Int64()
}

func (b *valueBigInt) ToFloat() float64 {
	f, _ := new(big.Float).SetInt(b.i).Float64()
	return f
}

func (b *valueBigInt) ToBoolean() bool {
	return b.i.Sign() != 0
}

func (b *valueBigInt) String() string {
	return b.i.String()
}

func (b *valueBigInt) ToObject(r *Realm) (*Object, error) {
	return r.newPrimitiveObject(b, r.global.BigIntPrototype, classBigInt), nil
}

func (b *valueBigInt) SameAs(other Value) bool {
	if o, ok := other.(*valueBigInt); ok {
		return b.i.Cmp(o.i) == 0
	}
	return false
}

func (b *valueBigInt) StrictEquals(other Value) bool {
	return b.SameAs(other)
}

func (b *valueBigInt) Export() interface{} {
	return new(big.Int).Set(b.i)
}

// toUint32 implements ToUint32 for Number values.
func toUint32(v Value) uint32 {
	switch n := v.(type) {
	case valueInt:
		return uint32(n)
	case valueFloat:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return uint32(int64(math.Trunc(f)))
	}
	return 0
}

// toLength clamps v to [0, maxArrayLikeIndex] for use as an array-like
// length.
func toLength(v Value) int64 {
	if v == nil {
		return 0
	}
	i := v.ToInteger()
	if i < 0 {
		return 0
	}
	if i > maxArrayLikeIndex {
		return maxArrayLikeIndex
	}
	return i
}
