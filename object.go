package kaja

import (
	"fmt"
)

const (
	classObject   = "Object"
	classArray    = "Array"
	classFunction = "Function"
	classNumber   = "Number"
	classString   = "String"
	classBoolean  = "Boolean"
	classSymbol   = "Symbol"
	classBigInt   = "BigInt"
	classError    = "Error"

	classArrayIterator  = "Array Iterator"
	classStringIterator = "String Iterator"
)

// Object is a reference to an object inside a Realm. The actual behaviour
// lives in self; exotic objects (arrays, functions, iterators) substitute
// their own objectImpl.
type Object struct {
	realm *Realm
	self  objectImpl
}

// Flag represents a boolean value which can also be "not set".
type Flag int

const (
	FLAG_NOT_SET Flag = iota
	FLAG_FALSE
	FLAG_TRUE
)

func (f Flag) Bool() bool {
	return f == FLAG_TRUE
}

func ToFlag(b bool) Flag {
	if b {
		return FLAG_TRUE
	}
	return FLAG_FALSE
}

// PropertyDescriptor describes a data or accessor property. A nil Value
// together with nil Getter/Setter means the corresponding attribute is
// left alone.
type PropertyDescriptor struct {
	Value Value

	Writable, Configurable, Enumerable Flag

	Getter, Setter Value
}

type nativeFunc func(FunctionCall) (Value, error)
type constructFunc func(args []Value, newTarget *Object) (*Object, error)

type objectImpl interface {
	className() string
	getStr(name string, receiver Value) (Value, error)
	getSym(s *valueSymbol, receiver Value) (Value, error)
	getOwnPropStr(name string) Value
	getOwnPropSym(s *valueSymbol) Value
	setOwnStr(name string, val Value, throw bool) (bool, error)
	defineOwnPropertyStr(name string, descr PropertyDescriptor, throw bool) (bool, error)
	hasPropertyStr(name string) bool
	hasOwnPropertyStr(name string) bool
	deleteStr(name string, throw bool) (bool, error)
	ownKeys(all bool, accum []Value) []Value
	proto() *Object
	isExtensible() bool
	preventExtensions()
	assertCallable() (nativeFunc, bool)
	assertConstructor() (constructFunc, bool)
	export() interface{}

	_putProp(name string, value Value, writable, enumerable, configurable bool) Value
	_putSym(s *valueSymbol, prop Value)
}

// valueProperty is a property slot carrying non-default attributes or an
// accessor pair. Plain writable/enumerable/configurable data properties
// are stored as bare Values instead.
type valueProperty struct {
	value        Value
	writable     bool
	configurable bool
	enumerable   bool
	accessor     bool
	getterFunc   *Object
	setterFunc   *Object
}

func (p *valueProperty) get(this Value) (Value, error) {
	if p.getterFunc == nil {
		if p.value != nil {
			return p.value, nil
		}
		return _undefined, nil
	}
	call, _ := p.getterFunc.self.assertCallable()
	return call(FunctionCall{This: this})
}

func (p *valueProperty) set(this, v Value) error {
	if p.setterFunc == nil {
		p.value = v
		return nil
	}
	call, _ := p.setterFunc.self.assertCallable()
	_, err := call(FunctionCall{This: this, Arguments: []Value{v}})
	return err
}

func (p *valueProperty) isWritable() bool {
	return p.writable || p.setterFunc != nil
}

// valueProperty values only ever live inside property tables; the Value
// methods below exist to satisfy the interface and must not be reached.
func (p *valueProperty) ToInteger() int64                  { panic("valueProperty used as a value") }
func (p *valueProperty) ToFloat() float64                  { panic("valueProperty used as a value") }
func (p *valueProperty) ToBoolean() bool                   { panic("valueProperty used as a value") }
func (p *valueProperty) String() string                    { panic("valueProperty used as a value") }
func (p *valueProperty) ToObject(*Realm) (*Object, error)  { panic("valueProperty used as a value") }
func (p *valueProperty) SameAs(Value) bool                 { panic("valueProperty used as a value") }
func (p *valueProperty) StrictEquals(Value) bool           { panic("valueProperty used as a value") }
func (p *valueProperty) Export() interface{}               { panic("valueProperty used as a value") }

type baseObject struct {
	class      string
	val        *Object
	prototype  *Object
	extensible bool

	values    map[string]Value
	propNames []string

	symValues map[*valueSymbol]Value
}

type primitiveValueObject struct {
	baseObject
	pValue Value
}

func (o *primitiveValueObject) export() interface{} {
	return o.pValue.Export()
}

// FunctionCall carries the receiver and argument list of a native call.
type FunctionCall struct {
	This      Value
	Arguments []Value
}

// Argument returns the idx-th argument or undefined when absent.
func (f FunctionCall) Argument(idx int) Value {
	if idx < len(f.Arguments) {
		return f.Arguments[idx]
	}
	return _undefined
}

func (o *baseObject) init() {
	o.values = make(map[string]Value)
}

func (o *baseObject) className() string {
	return o.class
}

func (o *baseObject) proto() *Object {
	return o.prototype
}

func (o *baseObject) isExtensible() bool {
	return o.extensible
}

func (o *baseObject) preventExtensions() {
	o.extensible = false
}

func (o *baseObject) getOwnPropStr(name string) Value {
	return o.values[name]
}

func (o *baseObject) getOwnPropSym(s *valueSymbol) Value {
	return o.symValues[s]
}

func (o *baseObject) getStr(name string, receiver Value) (Value, error) {
	if receiver == nil {
		receiver = o.val
	}
	prop := o.val.self.getOwnPropStr(name)
	if prop == nil {
		if o.prototype != nil {
			return o.prototype.self.getStr(name, receiver)
		}
		return _undefined, nil
	}
	if p, ok := prop.(*valueProperty); ok {
		return p.get(receiver)
	}
	return prop, nil
}

func (o *baseObject) getSym(s *valueSymbol, receiver Value) (Value, error) {
	if receiver == nil {
		receiver = o.val
	}
	prop := o.val.self.getOwnPropSym(s)
	if prop == nil {
		if o.prototype != nil {
			return o.prototype.self.getSym(s, receiver)
		}
		return _undefined, nil
	}
	if p, ok := prop.(*valueProperty); ok {
		return p.get(receiver)
	}
	return prop, nil
}

// protoPropStr finds the first property named name anywhere up the
// prototype chain, or nil.
func (o *baseObject) protoPropStr(name string) Value {
	for p := o.prototype; p != nil; p = p.self.proto() {
		if v := p.self.getOwnPropStr(name); v != nil {
			return v
		}
	}
	return nil
}

func (o *baseObject) setOwnStr(name string, val Value, throw bool) (bool, error) {
	own := o.values[name]
	if own == nil {
		if prop, ok := o.protoPropStr(name).(*valueProperty); ok {
			if prop.accessor {
				if prop.setterFunc == nil {
					return o.val.realm.typeErrorResult(throw, "Cannot set property %s of %s which has only a getter", name, o.val)
				}
				return true, prop.set(o.val, val)
			}
			if !prop.writable {
				return o.val.realm.typeErrorResult(throw, "Cannot assign to read only property '%s'", name)
			}
		}
		if !o.extensible {
			return o.val.realm.typeErrorResult(throw, "Cannot add property %s, object is not extensible", name)
		}
		o._put(name, val)
		return true, nil
	}
	if prop, ok := own.(*valueProperty); ok {
		if prop.accessor {
			if prop.setterFunc == nil {
				return o.val.realm.typeErrorResult(throw, "Cannot set property %s of %s which has only a getter", name, o.val)
			}
			return true, prop.set(o.val, val)
		}
		if !prop.writable {
			return o.val.realm.typeErrorResult(throw, "Cannot assign to read only property '%s'", name)
		}
		prop.value = val
		return true, nil
	}
	o.values[name] = val
	return true, nil
}

func (o *baseObject) hasPropertyStr(name string) bool {
	if o.val.self.hasOwnPropertyStr(name) {
		return true
	}
	if o.prototype != nil {
		return o.prototype.self.hasPropertyStr(name)
	}
	return false
}

func (o *baseObject) hasOwnPropertyStr(name string) bool {
	return o.values[name] != nil
}

func (o *baseObject) deleteStr(name string, throw bool) (bool, error) {
	if val, exists := o.values[name]; exists {
		if p, ok := val.(*valueProperty); ok && !p.configurable {
			return o.val.realm.typeErrorResult(throw, "Cannot delete property '%s' of %s", name, o.val)
		}
		o._delete(name)
	}
	return true, nil
}

func (o *baseObject) _delete(name string) {
	delete(o.values, name)
	for i, n := range o.propNames {
		if n == name {
			copy(o.propNames[i:], o.propNames[i+1:])
			o.propNames = o.propNames[:len(o.propNames)-1]
			break
		}
	}
}

func (o *baseObject) propGetter(v Value) (*Object, error) {
	if IsUndefined(v) {
		return nil, nil
	}
	if obj, ok := v.(*Object); ok {
		if _, ok := obj.self.assertCallable(); ok {
			return obj, nil
		}
	}
	return nil, o.val.realm.NewTypeError("Getter must be a function: %s", v)
}

func (o *baseObject) propSetter(v Value) (*Object, error) {
	if IsUndefined(v) {
		return nil, nil
	}
	if obj, ok := v.(*Object); ok {
		if _, ok := obj.self.assertCallable(); ok {
			return obj, nil
		}
	}
	return nil, o.val.realm.NewTypeError("Setter must be a function: %s", v)
}

func (o *baseObject) _defineOwnProperty(name string, existingValue Value, descr PropertyDescriptor, throw bool) (Value, bool, error) {
	getterObj, _ := descr.Getter.(*Object)
	setterObj, _ := descr.Setter.(*Object)

	var existing *valueProperty

	if existingValue == nil {
		if !o.extensible {
			_, err := o.val.realm.typeErrorResult(throw, "Cannot define property %s, object is not extensible", name)
			return nil, false, err
		}
		existing = &valueProperty{}
	} else {
		if existing, _ = existingValue.(*valueProperty); existing == nil {
			existing = &valueProperty{
				writable:     true,
				enumerable:   true,
				configurable: true,
				value:        existingValue,
			}
		}

		if !existing.configurable {
			if descr.Configurable == FLAG_TRUE {
				goto Reject
			}
			if descr.Enumerable != FLAG_NOT_SET && descr.Enumerable.Bool() != existing.enumerable {
				goto Reject
			}
			// a fixed-shape property cannot change between data and accessor
			if existing.accessor && descr.Value != nil || !existing.accessor && (getterObj != nil || setterObj != nil) {
				goto Reject
			}
			if !existing.accessor {
				if !existing.writable {
					if descr.Writable == FLAG_TRUE {
						goto Reject
					}
					if descr.Value != nil && !descr.Value.SameAs(existing.value) {
						goto Reject
					}
				}
			} else {
				if descr.Getter != nil && existing.getterFunc != getterObj || descr.Setter != nil && existing.setterFunc != setterObj {
					goto Reject
				}
			}
		}
	}

	if descr.Writable == FLAG_TRUE && descr.Enumerable == FLAG_TRUE && descr.Configurable == FLAG_TRUE && descr.Value != nil {
		return descr.Value, true, nil
	}

	if descr.Writable != FLAG_NOT_SET {
		existing.writable = descr.Writable.Bool()
	}
	if descr.Enumerable != FLAG_NOT_SET {
		existing.enumerable = descr.Enumerable.Bool()
	}
	if descr.Configurable != FLAG_NOT_SET {
		existing.configurable = descr.Configurable.Bool()
	}

	if descr.Value != nil {
		existing.value = descr.Value
		existing.getterFunc = nil
		existing.setterFunc = nil
		existing.accessor = false
	}

	if descr.Getter != nil {
		g, err := o.propGetter(descr.Getter)
		if err != nil {
			return nil, false, err
		}
		existing.getterFunc = g
		existing.value = nil
		existing.accessor = true
	}

	if descr.Setter != nil {
		s, err := o.propSetter(descr.Setter)
		if err != nil {
			return nil, false, err
		}
		existing.setterFunc = s
		existing.value = nil
		existing.accessor = true
	}

	if !existing.accessor && existing.value == nil {
		existing.value = _undefined
	}

	return existing, true, nil

Reject:
	_, err := o.val.realm.typeErrorResult(throw, "Cannot redefine property: %s", name)
	return nil, false, err
}

func (o *baseObject) defineOwnPropertyStr(name string, descr PropertyDescriptor, throw bool) (bool, error) {
	existingVal := o.values[name]
	v, ok, err := o._defineOwnProperty(name, existingVal, descr, throw)
	if !ok {
		return false, err
	}
	o.values[name] = v
	if existingVal == nil {
		o.propNames = append(o.propNames, name)
	}
	return true, nil
}

func (o *baseObject) _put(name string, v Value) {
	if _, exists := o.values[name]; !exists {
		o.propNames = append(o.propNames, name)
	}
	o.values[name] = v
}

func valueProp(value Value, writable, enumerable, configurable bool) Value {
	if writable && enumerable && configurable {
		return value
	}
	return &valueProperty{
		value:        value,
		writable:     writable,
		enumerable:   enumerable,
		configurable: configurable,
	}
}

func (o *baseObject) _putProp(name string, value Value, writable, enumerable, configurable bool) Value {
	prop := valueProp(value, writable, enumerable, configurable)
	o._put(name, prop)
	return prop
}

func (o *baseObject) _putSym(s *valueSymbol, prop Value) {
	if o.symValues == nil {
		o.symValues = make(map[*valueSymbol]Value, 1)
	}
	o.symValues[s] = prop
}

func (o *baseObject) ownKeys(all bool, keys []Value) []Value {
	for _, k := range o.propNames {
		if !all {
			if prop, ok := o.values[k].(*valueProperty); ok && !prop.enumerable {
				continue
			}
		}
		keys = append(keys, newStringValue(k))
	}
	return keys
}

func (o *baseObject) assertCallable() (nativeFunc, bool) {
	return nil, false
}

func (o *baseObject) assertConstructor() (constructFunc, bool) {
	return nil, false
}

func (o *baseObject) export() interface{} {
	m := make(map[string]interface{})
	for _, k := range o.val.self.ownKeys(false, nil) {
		name := k.String()
		v, err := o.val.self.getStr(name, nil)
		if err == nil && v != nil {
			m[name] = v.Export()
		} else {
			m[name] = nil
		}
	}
	return m
}

func (o *Object) ToInteger() int64 {
	return 0
}

func (o *Object) ToFloat() float64 {
	return 0
}

func (o *Object) ToBoolean() bool {
	return true
}

func (o *Object) String() string {
	return fmt.Sprintf("[object %s]", o.self.className())
}

func (o *Object) ToObject(*Realm) (*Object, error) {
	return o, nil
}

func (o *Object) SameAs(other Value) bool {
	if other, ok := other.(*Object); ok {
		return o == other
	}
	return false
}

func (o *Object) StrictEquals(other Value) bool {
	return o.SameAs(other)
}

func (o *Object) Export() interface{} {
	return o.self.export()
}

// Get reads a named property, running getters as needed.
func (o *Object) Get(name string) (Value, error) {
	return o.self.getStr(name, nil)
}

// Set writes a named property with throw-on-failure semantics.
func (o *Object) Set(name string, val Value) error {
	_, err := o.self.setOwnStr(name, val, true)
	return err
}

// Keys returns the object's own enumerable property keys in insertion
// order (indices first for arrays).
func (o *Object) Keys() []string {
	names := o.self.ownKeys(false, nil)
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, name.String())
	}
	return keys
}

// DefineDataProperty is a Go equivalent of Object.defineProperty(o, name,
// {value: value, writable: writable, configurable: configurable,
// enumerable: enumerable}).
func (o *Object) DefineDataProperty(name string, value Value, writable, configurable, enumerable Flag) error {
	_, err := o.self.defineOwnPropertyStr(name, PropertyDescriptor{
		Value:        value,
		Writable:     writable,
		Configurable: configurable,
		Enumerable:   enumerable,
	}, true)
	return err
}

// DefineAccessorProperty is a Go equivalent of Object.defineProperty(o,
// name, {get: getter, set: setter, configurable: configurable,
// enumerable: enumerable}).
func (o *Object) DefineAccessorProperty(name string, getter, setter Value, configurable, enumerable Flag) error {
	_, err := o.self.defineOwnPropertyStr(name, PropertyDescriptor{
		Getter:       getter,
		Setter:       setter,
		Configurable: configurable,
		Enumerable:   enumerable,
	}, true)
	return err
}

// ClassName returns the class name.
func (o *Object) ClassName() string {
	return o.self.className()
}

// Prototype returns the object's prototype or nil.
func (o *Object) Prototype() *Object {
	return o.self.proto()
}
