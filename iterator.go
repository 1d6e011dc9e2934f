package kaja

// iteratorRecord tracks one in-flight iteration: the iterator object and
// its next method. Records are scoped to a single consuming operation and
// never persisted.
type iteratorRecord struct {
	iterator *Object
	next     *Object
}

// getIterator invokes the iterator-producing method on obj and wraps the
// result into an iterator record. method may be nil, in which case it is
// looked up via @@iterator.
func (r *Realm) getIterator(obj Value, method *Object) (*iteratorRecord, error) {
	if method == nil {
		m, err := r.getMethodSym(obj, symIterator)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, r.NewTypeError("%s is not iterable", obj)
		}
		method = m
	}
	it, err := r.call(method, obj)
	if err != nil {
		return nil, err
	}
	iter, ok := it.(*Object)
	if !ok {
		return nil, r.NewTypeError("Result of the Symbol.iterator method is not an object")
	}
	nextV, err := iter.self.getStr("next", nil)
	if err != nil {
		return nil, err
	}
	next, _ := nextV.(*Object)
	return &iteratorRecord{iterator: iter, next: next}, nil
}

// iteratorStep advances the iterator once. It returns the result object,
// or nil when the iterator reports exhaustion.
func (r *Realm) iteratorStep(ir *iteratorRecord) (*Object, error) {
	if ir.next == nil {
		return nil, r.NewTypeError("Iterator's next method is not a function")
	}
	res, err := r.call(ir.next, ir.iterator)
	if err != nil {
		return nil, err
	}
	result, ok := res.(*Object)
	if !ok {
		return nil, r.NewTypeError("Iterator result %s is not an object", res)
	}
	done, err := result.self.getStr("done", nil)
	if err != nil {
		return nil, err
	}
	if done.ToBoolean() {
		return nil, nil
	}
	return result, nil
}

// iteratorValue extracts the value of one iteration result.
func (r *Realm) iteratorValue(result *Object) (Value, error) {
	return result.self.getStr("value", nil)
}

// iteratorClose calls the iterator's return method, if present, and
// merges its outcome with the completion that triggered the close. A
// Throw trigger is always preserved, no matter how the close itself
// fares; a Normal trigger surfaces failures from return(), including a
// TypeError when return() produces a non-object.
func (r *Realm) iteratorClose(ir *iteratorRecord, val Value, err error) (Value, error) {
	retMethod, gerr := r.getMethodStr(ir.iterator, "return")
	if gerr != nil {
		if err != nil {
			return nil, err
		}
		return nil, gerr
	}
	if retMethod == nil {
		return val, err
	}
	inner, ierr := r.call(retMethod, ir.iterator)
	if err != nil {
		return nil, err
	}
	if ierr != nil {
		return nil, ierr
	}
	if _, ok := inner.(*Object); !ok {
		return nil, r.NewTypeError("Iterator's return method returned a non-object value")
	}
	return val, err
}

func (r *Realm) createIterResultObject(value Value, done bool) *Object {
	o := r.NewObject()
	o.self._putProp("value", value, true, true, true)
	o.self._putProp("done", valueBool(done), true, true, true)
	return o
}

func (r *Realm) initIterators() {
	proto := r.newBaseObject(r.global.ObjectPrototype, classObject)
	proto._putSym(symIterator, valueProp(r.newNativeFunc(func(call FunctionCall) (Value, error) {
		return call.This, nil
	}, nil, "[Symbol.iterator]", nil, 0), true, false, true))
	r.global.IteratorPrototype = proto.val
}
