package kaja

import (
	"math"
	"strconv"
)

func (r *Realm) newArrayObject(length int64, proto *Object) *arrayObject {
	v := &Object{realm: r}
	a := &arrayObject{}
	a.class = classArray
	a.val = v
	a.prototype = proto
	a.extensible = true
	v.self = a
	a.init()
	a.length = length
	return a
}

// createArray allocates an Array of the given length with no elements
// populated. Lengths beyond the 32-bit bound are a RangeError.
func (r *Realm) createArray(length int64, proto *Object) (*Object, error) {
	if length < 0 || length > math.MaxUint32 {
		return nil, r.NewRangeError("Invalid array length")
	}
	if proto == nil {
		proto = r.global.ArrayPrototype
	}
	return r.newArrayObject(length, proto).val, nil
}

// NewArray creates an array populated with the given items.
func (r *Realm) NewArray(items ...Value) *Object {
	array := mustObject(r.createArray(int64(len(items)), nil))
	a := array.self.(*arrayObject)
	a.values = append(a.values, items...)
	return array
}

// constructArray is the Array constructor's own algorithm. The branch on
// a single Number argument is load-bearing: new Array(5) is a sparse
// length-5 array, new Array(5, 6) a dense pair.
func (r *Realm) constructArray(args []Value, newTarget *Object) (*Object, error) {
	proto, err := r.getPrototypeFromConstructor(newTarget, r.global.ArrayPrototype)
	if err != nil {
		return nil, err
	}

	if len(args) == 0 {
		return mustObject(r.createArray(0, proto)), nil
	}

	if len(args) == 1 {
		length := args[0]
		array := mustObject(r.createArray(0, proto))
		var intLen int64
		if !isNumber(length) {
			must(r.createDataPropertyOrThrowIdx(array, 0, length))
			intLen = 1
		} else {
			n := toUint32(length)
			if float64(n) != length.ToFloat() {
				return nil, r.NewRangeError("Invalid array length")
			}
			intLen = int64(n)
		}
		if _, err := r.set(array, "length", intToValue(intLen), true); err != nil {
			return nil, err
		}
		return array, nil
	}

	array, err := r.createArray(int64(len(args)), proto)
	if err != nil {
		return nil, err
	}
	for k, arg := range args {
		must(r.createDataPropertyOrThrowIdx(array, int64(k), arg))
	}
	return array, nil
}

func (r *Realm) array_from(call FunctionCall) (Value, error) {
	constructor := call.This
	items := call.Argument(0)

	var mapFn *Object
	if arg := call.Argument(1); !IsUndefined(arg) {
		fn, ok := arg.(*Object)
		if ok {
			_, ok = fn.self.assertCallable()
		}
		if !ok {
			return nil, r.NewTypeError("%s is not a function", arg)
		}
		mapFn = fn
	}
	thisArg := call.Argument(2)

	usingIterator, err := r.getMethodSym(items, symIterator)
	if err != nil {
		return nil, err
	}

	if usingIterator != nil {
		var array *Object
		if c := constructorObject(constructor); c != nil {
			array, err = r.construct(c)
		} else {
			array, err = r.createArray(0, nil)
		}
		if err != nil {
			return nil, err
		}

		iterator, err := r.getIterator(items, usingIterator)
		if err != nil {
			return nil, err
		}

		var k int64
		for {
			if k >= maxArrayLikeIndex {
				_, cerr := r.iteratorClose(iterator, nil, r.NewRangeError("Maximum array size exceeded"))
				return nil, cerr
			}

			next, err := r.iteratorStep(iterator)
			if err != nil {
				return nil, err
			}
			if next == nil {
				if _, err := r.set(array, "length", intToValue(k), true); err != nil {
					return nil, err
				}
				return array, nil
			}

			nextValue, err := r.iteratorValue(next)
			if err != nil {
				return nil, err
			}

			mappedValue := nextValue
			if mapFn != nil {
				mappedValue, err = r.call(mapFn, thisArg, nextValue, intToValue(k))
				if err != nil {
					_, cerr := r.iteratorClose(iterator, nil, err)
					return nil, cerr
				}
			}

			if err := r.createDataPropertyOrThrowIdx(array, k, mappedValue); err != nil {
				_, cerr := r.iteratorClose(iterator, nil, err)
				return nil, cerr
			}

			k++
		}
	}

	arrayLike := mustObject(items.ToObject(r))

	length, err := r.lengthOfArrayLike(arrayLike)
	if err != nil {
		return nil, err
	}

	var array *Object
	if c := constructorObject(constructor); c != nil {
		array, err = r.construct(c, intToValue(length))
	} else {
		array, err = r.createArray(length, nil)
	}
	if err != nil {
		return nil, err
	}

	for k := int64(0); k < length; k++ {
		kValue, err := arrayLike.self.getStr(strconv.FormatInt(k, 10), nil)
		if err != nil {
			return nil, err
		}
		mappedValue := kValue
		if mapFn != nil {
			mappedValue, err = r.call(mapFn, thisArg, kValue, intToValue(k))
			if err != nil {
				return nil, err
			}
		}
		if err := r.createDataPropertyOrThrowIdx(array, k, mappedValue); err != nil {
			return nil, err
		}
	}

	if _, err := r.set(array, "length", intToValue(length), true); err != nil {
		return nil, err
	}
	return array, nil
}

func (r *Realm) array_of(call FunctionCall) (Value, error) {
	count := int64(len(call.Arguments))
	var array *Object
	var err error
	if c := constructorObject(call.This); c != nil {
		array, err = r.construct(c, intToValue(count))
	} else {
		array, err = r.createArray(count, nil)
	}
	if err != nil {
		return nil, err
	}
	for k, arg := range call.Arguments {
		if err := r.createDataPropertyOrThrowIdx(array, int64(k), arg); err != nil {
			return nil, err
		}
	}
	if _, err := r.set(array, "length", intToValue(count), true); err != nil {
		return nil, err
	}
	return array, nil
}

func (r *Realm) array_isArray(call FunctionCall) (Value, error) {
	if o, ok := call.Argument(0).(*Object); ok {
		if _, ok := o.self.(*arrayObject); ok {
			return valueTrue, nil
		}
	}
	return valueFalse, nil
}

// get Array [ @@species ]: the receiver itself. Derived operations use
// this to decide what to instantiate for their results.
func (r *Realm) array_species_getter(call FunctionCall) (Value, error) {
	return call.This, nil
}

func (r *Realm) arrayIterProto_next(call FunctionCall) (Value, error) {
	if o, ok := call.This.(*Object); ok {
		if ai, ok := o.self.(*arrayIterObject); ok {
			return ai.next()
		}
	}
	return nil, r.NewTypeError("Method Array Iterator.prototype.next called on incompatible receiver")
}

func (r *Realm) arrayIterKind(call FunctionCall, kind iterationKind) (Value, error) {
	this, err := call.This.ToObject(r)
	if err != nil {
		return nil, err
	}
	return r.createArrayIterator(this, kind), nil
}

func (r *Realm) arrayproto_values(call FunctionCall) (Value, error) {
	return r.arrayIterKind(call, iterationKindValue)
}

func (r *Realm) arrayproto_keys(call FunctionCall) (Value, error) {
	return r.arrayIterKind(call, iterationKindKey)
}

func (r *Realm) arrayproto_entries(call FunctionCall) (Value, error) {
	return r.arrayIterKind(call, iterationKindKeyValue)
}

func (r *Realm) createArrayIterProto() *Object {
	o := r.newBaseObject(r.global.IteratorPrototype, classObject)
	o._putProp("next", r.newNativeFunc(r.arrayIterProto_next, nil, "next", nil, 0), true, false, true)
	return o.val
}

func (r *Realm) createArrayProto() *Object {
	proto := r.newArrayObject(0, r.global.ObjectPrototype).val

	values := r.newNativeFunc(r.arrayproto_values, nil, "values", nil, 0)
	proto.self._putProp("values", values, true, false, true)
	proto.self._putProp("keys", r.newNativeFunc(r.arrayproto_keys, nil, "keys", nil, 0), true, false, true)
	proto.self._putProp("entries", r.newNativeFunc(r.arrayproto_entries, nil, "entries", nil, 0), true, false, true)
	// Array.prototype[Symbol.iterator] is the values function itself
	proto.self._putSym(symIterator, valueProp(values, true, false, true))

	return proto
}

func (r *Realm) createArrayConstructor() *Object {
	v := &Object{realm: r}
	f := r.newNativeFuncObj(v, nil, nil, "Array", r.global.ArrayPrototype, 1)
	f.f = func(call FunctionCall) (Value, error) {
		obj, err := r.constructArray(call.Arguments, v)
		if err != nil {
			return nil, err
		}
		return obj, nil
	}
	f.construct = func(args []Value, newTarget *Object) (*Object, error) {
		if newTarget == nil {
			newTarget = v
		}
		return r.constructArray(args, newTarget)
	}

	f._putProp("from", r.newNativeFunc(r.array_from, nil, "from", nil, 1), true, false, true)
	f._putProp("isArray", r.newNativeFunc(r.array_isArray, nil, "isArray", nil, 1), true, false, true)
	f._putProp("of", r.newNativeFunc(r.array_of, nil, "of", nil, 0), true, false, true)

	f._putSym(symSpecies, &valueProperty{
		accessor:     true,
		configurable: true,
		getterFunc:   r.newNativeFunc(r.array_species_getter, nil, "get [Symbol.species]", nil, 0),
	})

	return v
}

func (r *Realm) initArray() {
	r.global.ArrayIteratorPrototype = r.createArrayIterProto()
	r.global.ArrayPrototype = r.createArrayProto()
	r.global.Array = r.createArrayConstructor()
	r.global.ArrayPrototype.self._putProp("constructor", r.global.Array, true, false, true)
}
