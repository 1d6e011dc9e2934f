package kaja

import (
	"fmt"
)

// Exception wraps a thrown runtime value as a Go error. Fallible
// operations return (Value, error) pairs; a non-nil error is the Throw
// completion and propagates unchanged until a caller chooses to inspect
// it (iterator close being the one internal inspector).
type Exception struct {
	val Value
}

// Value returns the thrown value.
func (e *Exception) Value() Value {
	return e.val
}

func (e *Exception) Error() string {
	if o, ok := e.val.(*Object); ok {
		name, err1 := o.self.getStr("name", nil)
		msg, err2 := o.self.getStr("message", nil)
		if err1 == nil && err2 == nil && !IsUndefined(name) {
			if IsUndefined(msg) || msg.String() == "" {
				return name.String()
			}
			return name.String() + ": " + msg.String()
		}
	}
	return e.val.String()
}

// Throw wraps an arbitrary value for propagation as an abrupt completion.
func Throw(v Value) *Exception {
	return &Exception{val: v}
}

// NewTypeError returns a Throw completion carrying a TypeError object.
func (r *Realm) NewTypeError(format string, args ...interface{}) *Exception {
	return &Exception{val: r.newErrorObject(r.global.TypeErrorPrototype, fmt.Sprintf(format, args...))}
}

// NewRangeError returns a Throw completion carrying a RangeError object.
func (r *Realm) NewRangeError(format string, args ...interface{}) *Exception {
	return &Exception{val: r.newErrorObject(r.global.RangeErrorPrototype, fmt.Sprintf(format, args...))}
}

// typeErrorResult reports a failed operation either as a Throw completion
// or as a plain false result, depending on the caller's throw flag.
func (r *Realm) typeErrorResult(throw bool, format string, args ...interface{}) (bool, error) {
	if throw {
		return false, r.NewTypeError(format, args...)
	}
	return false, nil
}

// must asserts that a step which is statically known to be infallible
// indeed produced a normal completion. A failure here is a bug in the
// engine, never a user-facing error path.
func must(err error) {
	if err != nil {
		panic(fmt.Errorf("kaja: operation unexpectedly failed: %w", err))
	}
}

func mustObject(o *Object, err error) *Object {
	must(err)
	return o
}
