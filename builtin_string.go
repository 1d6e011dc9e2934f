package kaja

import (
	"unicode/utf8"
)

type stringIterObject struct {
	baseObject
	s   string
	pos int
}

func (si *stringIterObject) next() Value {
	r := si.val.realm
	if si.pos >= len(si.s) {
		return r.createIterResultObject(_undefined, true)
	}
	_, size := utf8.DecodeRuneInString(si.s[si.pos:])
	result := newStringValue(si.s[si.pos : si.pos+size])
	si.pos += size
	return r.createIterResultObject(result, false)
}

func (r *Realm) createStringIterator(s string) Value {
	o := &Object{realm: r}

	si := &stringIterObject{s: s}
	si.class = classStringIterator
	si.val = o
	si.extensible = true
	o.self = si
	si.prototype = r.global.StringIteratorPrototype
	si.init()

	return o
}

func (r *Realm) stringIterProto_next(call FunctionCall) (Value, error) {
	if o, ok := call.This.(*Object); ok {
		if si, ok := o.self.(*stringIterObject); ok {
			return si.next(), nil
		}
	}
	return nil, r.NewTypeError("Method String Iterator.prototype.next called on incompatible receiver")
}

func (r *Realm) stringproto_iterator(call FunctionCall) (Value, error) {
	switch t := call.This.(type) {
	case valueString:
		return r.createStringIterator(string(t)), nil
	case *Object:
		if p, ok := t.self.(*primitiveValueObject); ok {
			if s, ok := p.pValue.(valueString); ok {
				return r.createStringIterator(string(s)), nil
			}
		}
	}
	if IsUndefined(call.This) || IsNull(call.This) {
		return nil, r.NewTypeError("String.prototype[Symbol.iterator] called on null or undefined")
	}
	return r.createStringIterator(call.This.String()), nil
}

func (r *Realm) createStringIterProto() *Object {
	o := r.newBaseObject(r.global.IteratorPrototype, classObject)
	o._putProp("next", r.newNativeFunc(r.stringIterProto_next, nil, "next", nil, 0), true, false, true)
	return o.val
}

func (r *Realm) initString() {
	r.global.StringIteratorPrototype = r.createStringIterProto()

	proto := r.newBaseObject(r.global.ObjectPrototype, classString)
	proto._putSym(symIterator, valueProp(r.newNativeFunc(r.stringproto_iterator, nil, "[Symbol.iterator]", nil, 0), true, false, true))
	r.global.StringPrototype = proto.val
}
