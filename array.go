package kaja

import (
	"math"
	"strconv"
)

type iterationKind int

const (
	iterationKindKey iterationKind = iota
	iterationKindValue
	iterationKindKeyValue
)

type arrayIterObject struct {
	baseObject
	obj     *Object
	nextIdx int64
	kind    iterationKind
}

func (ai *arrayIterObject) next() (Value, error) {
	r := ai.val.realm
	if ai.obj == nil {
		return r.createIterResultObject(_undefined, true), nil
	}
	lv, err := ai.obj.self.getStr("length", nil)
	if err != nil {
		return nil, err
	}
	// re-read the length every step: the previous result may have
	// resized the array
	l := toLength(lv)
	index := ai.nextIdx
	if index >= l {
		ai.obj = nil
		return r.createIterResultObject(_undefined, true), nil
	}
	ai.nextIdx++
	idxVal := intToValue(index)
	if ai.kind == iterationKindKey {
		return r.createIterResultObject(idxVal, false), nil
	}
	elementValue, err := ai.obj.self.getStr(strconv.FormatInt(index, 10), nil)
	if err != nil {
		return nil, err
	}
	var result Value
	if ai.kind == iterationKindValue {
		result = elementValue
	} else {
		result = r.NewArray(idxVal, elementValue)
	}
	return r.createIterResultObject(result, false), nil
}

func (r *Realm) createArrayIterator(iterObj *Object, kind iterationKind) Value {
	o := &Object{realm: r}

	ai := &arrayIterObject{
		obj:  iterObj,
		kind: kind,
	}
	ai.class = classArrayIterator
	ai.val = o
	ai.extensible = true
	o.self = ai
	ai.prototype = r.global.ArrayIteratorPrototype
	ai.init()

	return o
}

// arrayObject is the exotic Array: a dense value slice plus the length
// invariant. length always equals one greater than the highest present
// index and stays within [0, 2^32-1]; every length change funnels through
// setLengthInt, never through the generic property table.
type arrayObject struct {
	baseObject
	values         []Value
	length         int64
	propValueCount int
	lengthProp     valueProperty
}

func (a *arrayObject) init() {
	a.baseObject.init()
	a.lengthProp.writable = true

	a._put("length", &a.lengthProp)
}

func (a *arrayObject) _setLengthInt(l int64, throw bool) (bool, error) {
	if l < 0 || l > math.MaxUint32 {
		return false, a.val.realm.NewRangeError("Invalid array length")
	}
	ret := true
	if l <= a.length && a.propValueCount > 0 {
		// can't shrink past a non-configurable element
		s := int64(len(a.values)) - 1
		if a.length < int64(len(a.values)) {
			s = a.length - 1
		}
		for i := s; i >= l; i-- {
			if prop, ok := a.values[i].(*valueProperty); ok {
				if !prop.configurable {
					l = i + 1
					ret = false
					break
				}
				a.propValueCount--
			}
		}
	}
	if l < int64(len(a.values)) {
		tail := a.values[l:]
		for i := range tail {
			tail[i] = nil
		}
		a.values = a.values[:l]
	}
	a.length = l
	if !ret {
		return a.val.realm.typeErrorResult(throw, "Cannot redefine property: length")
	}
	return true, nil
}

func (a *arrayObject) setLengthInt(l int64, throw bool) (bool, error) {
	if l == a.length {
		return true, nil
	}
	if !a.lengthProp.writable {
		return a.val.realm.typeErrorResult(throw, "length is not writable")
	}
	return a._setLengthInt(l, throw)
}

func (a *arrayObject) setLength(v Value, throw bool) (bool, error) {
	f := v.ToFloat()
	l := int64(toUint32(floatToValue(f)))
	if float64(l) != f {
		return false, a.val.realm.NewRangeError("Invalid array length")
	}
	if l == a.length {
		return true, nil
	}
	if !a.lengthProp.writable {
		return a.val.realm.typeErrorResult(throw, "length is not writable")
	}
	return a._setLengthInt(l, throw)
}

func strToIdx(s string) int64 {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil || i < 0 || i >= math.MaxUint32 {
		return -1
	}
	return i
}

func (a *arrayObject) getIdx(idx int64) Value {
	if idx >= 0 && idx < int64(len(a.values)) {
		return a.values[idx]
	}
	return nil
}

func (a *arrayObject) getLengthProp() Value {
	a.lengthProp.value = intToValue(a.length)
	return &a.lengthProp
}

func (a *arrayObject) getOwnPropStr(name string) Value {
	if idx := strToIdx(name); idx >= 0 {
		return a.getIdx(idx)
	}
	if name == "length" {
		return a.getLengthProp()
	}
	return a.baseObject.getOwnPropStr(name)
}

func (a *arrayObject) hasOwnPropertyStr(name string) bool {
	if idx := strToIdx(name); idx >= 0 {
		return idx < int64(len(a.values)) && a.values[idx] != nil
	}
	if name == "length" {
		return true
	}
	return a.baseObject.hasOwnPropertyStr(name)
}

func (a *arrayObject) expand(idx int64) {
	targetLen := idx + 1
	if targetLen <= int64(len(a.values)) {
		return
	}
	if targetLen <= int64(cap(a.values)) {
		a.values = a.values[:targetLen]
		return
	}
	newcap := int64(cap(a.values)) * 2
	if newcap < targetLen {
		newcap = targetLen
	}
	newValues := make([]Value, targetLen, newcap)
	copy(newValues, a.values)
	a.values = newValues
}

func (a *arrayObject) putIdx(idx int64, val Value, throw bool) (bool, error) {
	var prop Value
	if idx < int64(len(a.values)) {
		prop = a.values[idx]
	}

	if prop == nil {
		if p, ok := a.protoPropStr(strconv.FormatInt(idx, 10)).(*valueProperty); ok {
			if p.accessor {
				if p.setterFunc == nil {
					return a.val.realm.typeErrorResult(throw, "Cannot set property %d of %s which has only a getter", idx, a.val)
				}
				return true, p.set(a.val, val)
			}
			if !p.writable {
				return a.val.realm.typeErrorResult(throw, "Cannot assign to read only property '%d'", idx)
			}
		}
		if !a.extensible {
			return a.val.realm.typeErrorResult(throw, "Cannot add property %d, object is not extensible", idx)
		}
		if idx >= a.length {
			if ok, err := a.setLengthInt(idx+1, throw); !ok {
				return false, err
			}
		}
		a.expand(idx)
		a.values[idx] = val
		return true, nil
	}

	if p, ok := prop.(*valueProperty); ok {
		if p.accessor {
			if p.setterFunc == nil {
				return a.val.realm.typeErrorResult(throw, "Cannot set property %d of %s which has only a getter", idx, a.val)
			}
			return true, p.set(a.val, val)
		}
		if !p.writable {
			return a.val.realm.typeErrorResult(throw, "Cannot assign to read only property '%d'", idx)
		}
		p.value = val
		return true, nil
	}

	a.values[idx] = val
	return true, nil
}

func (a *arrayObject) setOwnStr(name string, val Value, throw bool) (bool, error) {
	if idx := strToIdx(name); idx >= 0 {
		return a.putIdx(idx, val, throw)
	}
	if name == "length" {
		return a.setLength(val, throw)
	}
	return a.baseObject.setOwnStr(name, val, throw)
}

func (a *arrayObject) defineLength(descr PropertyDescriptor, throw bool) (bool, error) {
	if descr.Configurable == FLAG_TRUE || descr.Enumerable == FLAG_TRUE || descr.Getter != nil || descr.Setter != nil {
		return a.val.realm.typeErrorResult(throw, "Cannot redefine property: length")
	}

	if newLen := descr.Value; newLen != nil {
		if ok, err := a.setLength(newLen, throw); !ok {
			return false, err
		}
	}

	if descr.Writable != FLAG_NOT_SET {
		w := descr.Writable.Bool()
		if a.lengthProp.writable {
			a.lengthProp.writable = w
		} else if w {
			return a.val.realm.typeErrorResult(throw, "Cannot redefine property: length")
		}
	}
	return true, nil
}

func (a *arrayObject) defineOwnPropertyStr(name string, descr PropertyDescriptor, throw bool) (bool, error) {
	if idx := strToIdx(name); idx >= 0 {
		existing := a.getIdx(idx)
		prop, ok, err := a._defineOwnProperty(name, existing, descr, throw)
		if !ok {
			return false, err
		}
		if idx >= a.length {
			if ok, err := a.setLengthInt(idx+1, throw); !ok {
				return false, err
			}
		}
		a.expand(idx)
		a.values[idx] = prop
		_, wasProp := existing.(*valueProperty)
		_, isProp := prop.(*valueProperty)
		if isProp && !wasProp {
			a.propValueCount++
		} else if wasProp && !isProp {
			a.propValueCount--
		}
		return true, nil
	}
	if name == "length" {
		return a.defineLength(descr, throw)
	}
	return a.baseObject.defineOwnPropertyStr(name, descr, throw)
}

func (a *arrayObject) deleteStr(name string, throw bool) (bool, error) {
	if idx := strToIdx(name); idx >= 0 {
		if idx < int64(len(a.values)) {
			if v := a.values[idx]; v != nil {
				if p, ok := v.(*valueProperty); ok {
					if !p.configurable {
						return a.val.realm.typeErrorResult(throw, "Cannot delete property '%d' of %s", idx, a.val)
					}
					a.propValueCount--
				}
				a.values[idx] = nil
			}
		}
		return true, nil
	}
	return a.baseObject.deleteStr(name, throw)
}

func (a *arrayObject) ownKeys(all bool, accum []Value) []Value {
	for i, v := range a.values {
		if v == nil {
			continue
		}
		if !all {
			if p, ok := v.(*valueProperty); ok && !p.enumerable {
				continue
			}
		}
		accum = append(accum, newStringValue(strconv.Itoa(i)))
	}
	return a.baseObject.ownKeys(all, accum)
}

func (a *arrayObject) export() interface{} {
	arr := make([]interface{}, a.length)
	for i, v := range a.values {
		if v == nil {
			continue
		}
		if p, ok := v.(*valueProperty); ok {
			if ev, err := p.get(a.val); err == nil {
				arr[i] = ev.Export()
			}
			continue
		}
		arr[i] = v.Export()
	}
	return arr
}
