package kaja

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// maxArrayLikeIndex is the largest index an array-like or iterator-driven
// build may reach (2^53-1). It is deliberately distinct from the 2^32-1
// bound on a stored Array "length": one caps indexable positions, the
// other the length property's width.
const maxArrayLikeIndex = 1<<53 - 1

// global holds a Realm's intrinsics: the well-known prototype and
// constructor objects. Populated once during Realm initialisation and
// never mutated afterwards.
type global struct {
	ObjectPrototype   *Object
	FunctionPrototype *Object

	Array          *Object
	ArrayPrototype *Object

	StringPrototype  *Object
	NumberPrototype  *Object
	BooleanPrototype *Object
	SymbolPrototype  *Object
	BigIntPrototype  *Object

	ErrorPrototype      *Object
	TypeErrorPrototype  *Object
	RangeErrorPrototype *Object

	IteratorPrototype       *Object
	ArrayIteratorPrototype  *Object
	StringIteratorPrototype *Object
}

// Realm is an isolated execution context owning one set of intrinsics.
// Objects created inside a Realm keep a back-reference to it for default
// prototype lookups; the Realm outlives every object it created.
type Realm struct {
	global       global
	globalObject *Object
}

// New creates a Realm with fully initialised intrinsics.
func New() *Realm {
	r := &Realm{}
	r.init()
	return r
}

func (r *Realm) init() {
	r.global.ObjectPrototype = r.newBaseObject(nil, classObject).val
	r.global.FunctionPrototype = r.newBaseObject(r.global.ObjectPrototype, classFunction).val

	r.global.NumberPrototype = r.newBaseObject(r.global.ObjectPrototype, classNumber).val
	r.global.BooleanPrototype = r.newBaseObject(r.global.ObjectPrototype, classBoolean).val
	r.global.SymbolPrototype = r.newBaseObject(r.global.ObjectPrototype, classSymbol).val
	r.global.BigIntPrototype = r.newBaseObject(r.global.ObjectPrototype, classBigInt).val

	r.initErrors()
	r.initIterators()
	r.initArray()
	r.initString()

	r.globalObject = r.newBaseObject(r.global.ObjectPrototype, classObject).val
	r.addToGlobal("Array", r.global.Array)
}

func (r *Realm) addToGlobal(name string, v Value) {
	r.globalObject.self._putProp(name, v, true, false, true)
}

// GlobalObject returns the realm's global object.
func (r *Realm) GlobalObject() *Object {
	return r.globalObject
}

func (r *Realm) newBaseObject(proto *Object, class string) *baseObject {
	v := &Object{realm: r}
	o := &baseObject{
		class:      class,
		val:        v,
		prototype:  proto,
		extensible: true,
	}
	v.self = o
	o.init()
	return o
}

// NewObject creates a plain empty object with the realm's Object
// prototype.
func (r *Realm) NewObject() *Object {
	return r.newBaseObject(r.global.ObjectPrototype, classObject).val
}

func (r *Realm) newPrimitiveObject(value Value, proto *Object, class string) *Object {
	v := &Object{realm: r}
	o := &primitiveValueObject{}
	o.class = class
	o.val = v
	o.prototype = proto
	o.extensible = true
	v.self = o
	o.init()
	o.pValue = value
	return v
}

// call invokes f with the given receiver and arguments, or throws
// TypeError when f is not callable.
func (r *Realm) call(f *Object, this Value, args ...Value) (Value, error) {
	fn, ok := f.self.assertCallable()
	if !ok {
		return nil, r.NewTypeError("%s is not a function", f)
	}
	return fn(FunctionCall{This: this, Arguments: args})
}

// construct invokes c as a constructor with itself as the new target.
func (r *Realm) construct(c *Object, args ...Value) (*Object, error) {
	ctor, ok := c.self.assertConstructor()
	if !ok {
		return nil, r.NewTypeError("%s is not a constructor", c)
	}
	return ctor(args, c)
}

// constructorObject returns v as a constructor object, or nil.
func constructorObject(v Value) *Object {
	if o, ok := v.(*Object); ok {
		if _, ok := o.self.assertConstructor(); ok {
			return o
		}
	}
	return nil
}

func (r *Realm) getV(v Value, name string) (Value, error) {
	o, err := v.ToObject(r)
	if err != nil {
		return nil, err
	}
	return o.self.getStr(name, v)
}

func (r *Realm) getVSym(v Value, s *valueSymbol) (Value, error) {
	o, err := v.ToObject(r)
	if err != nil {
		return nil, err
	}
	return o.self.getSym(s, v)
}

func (r *Realm) toMethod(v Value) (*Object, error) {
	if v == nil || IsUndefined(v) || IsNull(v) {
		return nil, nil
	}
	if o, ok := v.(*Object); ok {
		if _, ok := o.self.assertCallable(); ok {
			return o, nil
		}
	}
	return nil, r.NewTypeError("%s is not a function", v)
}

// getMethodSym looks up a method by symbol key. A nil result (with nil
// error) means the property is undefined or null; a present non-callable
// value throws TypeError.
func (r *Realm) getMethodSym(v Value, s *valueSymbol) (*Object, error) {
	prop, err := r.getVSym(v, s)
	if err != nil {
		return nil, err
	}
	return r.toMethod(prop)
}

func (r *Realm) getMethodStr(v Value, name string) (*Object, error) {
	prop, err := r.getV(v, name)
	if err != nil {
		return nil, err
	}
	return r.toMethod(prop)
}

// createDataPropertyOrThrow defines an own writable/enumerable/
// configurable data property, throwing TypeError when the target is
// non-extensible or holds a conflicting non-configurable key.
func (r *Realm) createDataPropertyOrThrow(o *Object, name string, v Value) error {
	_, err := o.self.defineOwnPropertyStr(name, PropertyDescriptor{
		Value:        v,
		Writable:     FLAG_TRUE,
		Enumerable:   FLAG_TRUE,
		Configurable: FLAG_TRUE,
	}, true)
	return err
}

func (r *Realm) createDataPropertyOrThrowIdx(o *Object, idx int64, v Value) error {
	return r.createDataPropertyOrThrow(o, strconv.FormatInt(idx, 10), v)
}

// set performs generic assignment; on failure it either throws TypeError
// or reports false, per the throw flag.
func (r *Realm) set(o *Object, name string, v Value, throw bool) (bool, error) {
	return o.self.setOwnStr(name, v, throw)
}

// lengthOfArrayLike reads and clamps the "length" property.
func (r *Realm) lengthOfArrayLike(o *Object) (int64, error) {
	v, err := o.self.getStr("length", nil)
	if err != nil {
		return 0, err
	}
	return toLength(v), nil
}

// getPrototypeFromConstructor resolves the prototype a constructed object
// should use: the new target's own "prototype" property when that is an
// object, the supplied realm intrinsic otherwise. The property read may
// run arbitrary user code and its failure propagates.
func (r *Realm) getPrototypeFromConstructor(newTarget *Object, intrinsicDefault *Object) (*Object, error) {
	if newTarget != nil {
		v, err := newTarget.self.getStr("prototype", nil)
		if err != nil {
			return nil, err
		}
		if p, ok := v.(*Object); ok {
			return p, nil
		}
	}
	return intrinsicDefault, nil
}

// ToValue converts a plain Go value to a runtime Value. Unhandled types
// panic; this is a programmer-facing convenience, not a coercion
// algorithm.
func (r *Realm) ToValue(i interface{}) Value {
	switch i := i.(type) {
	case nil:
		return _null
	case Value:
		return i
	case bool:
		if i {
			return valueTrue
		}
		return valueFalse
	case int:
		return intToValue(int64(i))
	case int64:
		return intToValue(i)
	case uint32:
		return intToValue(int64(i))
	case float64:
		if i == math.Trunc(i) && !(i == 0 && math.Signbit(i)) && math.Abs(i) <= maxArrayLikeIndex {
			return intToValue(int64(i))
		}
		return floatToValue(i)
	case string:
		return newStringValue(i)
	case *big.Int:
		return &valueBigInt{i: new(big.Int).Set(i)}
	case []interface{}:
		values := make([]Value, len(i))
		for idx, item := range i {
			values[idx] = r.ToValue(item)
		}
		return r.NewArray(values...)
	case map[string]interface{}:
		o := r.NewObject()
		for k, item := range i {
			o.self._putProp(k, r.ToValue(item), true, true, true)
		}
		return o
	}
	panic(fmt.Errorf("kaja: cannot convert %T to a value", i))
}
