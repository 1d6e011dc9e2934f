package kaja

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errKind extracts the "name" of the thrown error object, or "" when err
// is not a thrown error object.
func errKind(t *testing.T, err error) string {
	t.Helper()
	ex, ok := err.(*Exception)
	if !ok {
		return ""
	}
	o, ok := ex.Value().(*Object)
	if !ok {
		return ""
	}
	name, gerr := o.self.getStr("name", nil)
	require.NoError(t, gerr)
	return name.String()
}

func errMessage(t *testing.T, err error) string {
	t.Helper()
	ex, ok := err.(*Exception)
	require.True(t, ok, "expected a thrown value, got %v", err)
	o, ok := ex.Value().(*Object)
	require.True(t, ok, "expected a thrown error object, got %v", ex.Value())
	msg, gerr := o.self.getStr("message", nil)
	require.NoError(t, gerr)
	return msg.String()
}

func asArray(t *testing.T, v Value) *arrayObject {
	t.Helper()
	o, ok := v.(*Object)
	require.True(t, ok, "expected an object, got %v", v)
	a, ok := o.self.(*arrayObject)
	require.True(t, ok, "expected an Array, got class %s", o.ClassName())
	return a
}

func negZero() float64 {
	z := 0.0
	return -z
}

func TestRealmIsolation(t *testing.T) {
	r1 := New()
	r2 := New()

	require.NotSame(t, r1.global.Array, r2.global.Array)
	require.NotSame(t, r1.global.ArrayPrototype, r2.global.ArrayPrototype)

	a1 := r1.NewArray(intToValue(1))
	assert.Same(t, r1.global.ArrayPrototype, a1.Prototype())
	assert.NotSame(t, r2.global.ArrayPrototype, a1.Prototype())
}

func TestGlobalObjectArrayBinding(t *testing.T) {
	r := New()
	v, err := r.GlobalObject().Get("Array")
	require.NoError(t, err)
	assert.Same(t, r.global.Array, v)
}

func TestGetPrototypeFromConstructor(t *testing.T) {
	r := New()

	// the new target's "prototype" wins when it is an object
	proto := r.NewObject()
	ctor := r.newNativeFunc(nil, func(args []Value, newTarget *Object) (*Object, error) {
		return r.NewObject(), nil
	}, "C", proto, 0)
	got, err := r.getPrototypeFromConstructor(ctor, r.global.ArrayPrototype)
	require.NoError(t, err)
	assert.Same(t, proto, got)

	// a non-object "prototype" falls back to the intrinsic default
	ctor2 := r.newNativeFunc(nil, func(args []Value, newTarget *Object) (*Object, error) {
		return r.NewObject(), nil
	}, "C2", nil, 0)
	ctor2.self._putProp("prototype", intToValue(42), false, false, false)
	got, err = r.getPrototypeFromConstructor(ctor2, r.global.ArrayPrototype)
	require.NoError(t, err)
	assert.Same(t, r.global.ArrayPrototype, got)

	// nil new target falls back as well
	got, err = r.getPrototypeFromConstructor(nil, r.global.ArrayPrototype)
	require.NoError(t, err)
	assert.Same(t, r.global.ArrayPrototype, got)
}

func TestGetPrototypeFromConstructorGetterThrows(t *testing.T) {
	r := New()
	ctor := r.newNativeFunc(nil, func(args []Value, newTarget *Object) (*Object, error) {
		return r.NewObject(), nil
	}, "C", nil, 0)
	getter := r.NewNativeFunction("get prototype", 0, func(call FunctionCall) (Value, error) {
		return nil, Throw(newStringValue("boom"))
	})
	require.NoError(t, ctor.DefineAccessorProperty("prototype", getter, Undefined(), FLAG_TRUE, FLAG_FALSE))

	_, err := r.getPrototypeFromConstructor(ctor, r.global.ArrayPrototype)
	require.Error(t, err)
	ex, ok := err.(*Exception)
	require.True(t, ok)
	assert.True(t, ex.Value().SameAs(newStringValue("boom")))
}

func TestToValue(t *testing.T) {
	r := New()

	assert.True(t, r.ToValue(nil).SameAs(Null()))
	assert.Equal(t, int64(5), r.ToValue(5).ToInteger())
	assert.True(t, r.ToValue(true).ToBoolean())
	assert.Equal(t, "abc", r.ToValue("abc").String())

	// integral floats collapse to ints, non-integral stay floats
	assert.IsType(t, valueInt(0), r.ToValue(float64(-5)))
	assert.IsType(t, valueFloat(0), r.ToValue(5.5))
	assert.IsType(t, valueFloat(0), r.ToValue(negZero()))

	arr := r.ToValue([]interface{}{1, "two"})
	a := asArray(t, arr)
	assert.Equal(t, int64(2), a.length)
}

func TestCallNonCallable(t *testing.T) {
	r := New()
	_, err := r.call(r.NewObject(), Undefined())
	assert.Equal(t, "TypeError", errKind(t, err))
}

func TestConstructNonConstructor(t *testing.T) {
	r := New()
	fn := r.NewNativeFunction("f", 0, func(call FunctionCall) (Value, error) {
		return Undefined(), nil
	})
	_, err := r.construct(fn)
	assert.Equal(t, "TypeError", errKind(t, err))
}

func TestToObjectOnNullAndUndefined(t *testing.T) {
	r := New()
	_, err := Null().ToObject(r)
	assert.Equal(t, "TypeError", errKind(t, err))
	_, err = Undefined().ToObject(r)
	assert.Equal(t, "TypeError", errKind(t, err))
}
