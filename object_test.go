package kaja

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectGetSet(t *testing.T) {
	r := New()
	o := r.NewObject()

	require.NoError(t, o.Set("x", intToValue(1)))
	v, err := o.Get("x")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.ToInteger())

	v, err = o.Get("missing")
	require.NoError(t, err)
	assert.True(t, IsUndefined(v))
}

func TestObjectPrototypeLookup(t *testing.T) {
	r := New()
	proto := r.NewObject()
	require.NoError(t, proto.Set("shared", newStringValue("yes")))

	child := r.newBaseObject(proto, classObject).val
	v, err := child.Get("shared")
	require.NoError(t, err)
	assert.Equal(t, "yes", v.String())

	// assignment shadows, never writes through
	require.NoError(t, child.Set("shared", newStringValue("own")))
	v, _ = child.Get("shared")
	assert.Equal(t, "own", v.String())
	v, _ = proto.Get("shared")
	assert.Equal(t, "yes", v.String())
}

func TestObjectNonExtensible(t *testing.T) {
	r := New()
	o := r.NewObject()
	require.NoError(t, o.Set("present", intToValue(1)))
	o.self.preventExtensions()

	err := o.Set("fresh", intToValue(2))
	assert.Equal(t, "TypeError", errKind(t, err))

	// existing properties stay writable
	require.NoError(t, o.Set("present", intToValue(3)))
	v, _ := o.Get("present")
	assert.Equal(t, int64(3), v.ToInteger())

	err = o.DefineDataProperty("fresh", intToValue(2), FLAG_TRUE, FLAG_TRUE, FLAG_TRUE)
	assert.Equal(t, "TypeError", errKind(t, err))
}

func TestObjectNonConfigurableRedefine(t *testing.T) {
	r := New()
	o := r.NewObject()
	require.NoError(t, o.DefineDataProperty("k", intToValue(1), FLAG_FALSE, FLAG_FALSE, FLAG_FALSE))

	err := o.DefineDataProperty("k", intToValue(1), FLAG_NOT_SET, FLAG_TRUE, FLAG_NOT_SET)
	assert.Equal(t, "TypeError", errKind(t, err))

	err = o.DefineDataProperty("k", intToValue(2), FLAG_NOT_SET, FLAG_NOT_SET, FLAG_NOT_SET)
	assert.Equal(t, "TypeError", errKind(t, err))

	// redefining to the same value is allowed
	require.NoError(t, o.DefineDataProperty("k", intToValue(1), FLAG_NOT_SET, FLAG_NOT_SET, FLAG_NOT_SET))

	err = o.Set("k", intToValue(5))
	assert.Equal(t, "TypeError", errKind(t, err))
}

func TestObjectNonConfigurableDelete(t *testing.T) {
	r := New()
	o := r.NewObject()
	require.NoError(t, o.DefineDataProperty("k", intToValue(1), FLAG_TRUE, FLAG_FALSE, FLAG_TRUE))

	_, err := o.self.deleteStr("k", true)
	assert.Equal(t, "TypeError", errKind(t, err))
	assert.True(t, o.self.hasOwnPropertyStr("k"))

	// deleting an absent property succeeds
	_, err = o.self.deleteStr("nothing", true)
	assert.NoError(t, err)
}

func TestObjectAccessorProperty(t *testing.T) {
	r := New()
	o := r.NewObject()

	var store Value = intToValue(10)
	var getterThis, setterThis Value
	getter := r.NewNativeFunction("get k", 0, func(call FunctionCall) (Value, error) {
		getterThis = call.This
		return store, nil
	})
	setter := r.NewNativeFunction("set k", 1, func(call FunctionCall) (Value, error) {
		setterThis = call.This
		store = call.Argument(0)
		return Undefined(), nil
	})
	require.NoError(t, o.DefineAccessorProperty("k", getter, setter, FLAG_TRUE, FLAG_TRUE))

	v, err := o.Get("k")
	require.NoError(t, err)
	assert.Equal(t, int64(10), v.ToInteger())
	assert.Same(t, o, getterThis)

	require.NoError(t, o.Set("k", intToValue(99)))
	assert.Same(t, o, setterThis)
	v, _ = o.Get("k")
	assert.Equal(t, int64(99), v.ToInteger())
}

func TestObjectGetterOnlyAssignment(t *testing.T) {
	r := New()
	o := r.NewObject()
	getter := r.NewNativeFunction("get k", 0, func(call FunctionCall) (Value, error) {
		return intToValue(1), nil
	})
	require.NoError(t, o.DefineAccessorProperty("k", getter, Undefined(), FLAG_TRUE, FLAG_TRUE))

	err := o.Set("k", intToValue(2))
	assert.Equal(t, "TypeError", errKind(t, err))
}

func TestObjectInheritedAccessorReceiver(t *testing.T) {
	r := New()
	proto := r.NewObject()
	var seenThis Value
	getter := r.NewNativeFunction("get k", 0, func(call FunctionCall) (Value, error) {
		seenThis = call.This
		return intToValue(7), nil
	})
	require.NoError(t, proto.DefineAccessorProperty("k", getter, Undefined(), FLAG_TRUE, FLAG_TRUE))

	child := r.newBaseObject(proto, classObject).val
	v, err := child.Get("k")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.ToInteger())
	assert.Same(t, child, seenThis, "inherited getter runs with the original receiver")
}

func TestObjectKeysInsertionOrder(t *testing.T) {
	r := New()
	o := r.NewObject()
	require.NoError(t, o.Set("b", intToValue(1)))
	require.NoError(t, o.Set("a", intToValue(2)))
	require.NoError(t, o.Set("c", intToValue(3)))
	_, err := o.self.deleteStr("a", true)
	require.NoError(t, err)
	require.NoError(t, o.Set("a", intToValue(4)))

	assert.Equal(t, []string{"b", "c", "a"}, o.Keys())
}

func TestObjectKeysSkipNonEnumerable(t *testing.T) {
	r := New()
	o := r.NewObject()
	require.NoError(t, o.Set("visible", intToValue(1)))
	require.NoError(t, o.DefineDataProperty("hidden", intToValue(2), FLAG_TRUE, FLAG_TRUE, FLAG_FALSE))

	assert.Equal(t, []string{"visible"}, o.Keys())
}

func TestDefineAccessorNonCallable(t *testing.T) {
	r := New()
	o := r.NewObject()
	err := o.DefineAccessorProperty("k", intToValue(1), Undefined(), FLAG_TRUE, FLAG_TRUE)
	assert.Equal(t, "TypeError", errKind(t, err))

	err = o.DefineAccessorProperty("k", Undefined(), intToValue(1), FLAG_TRUE, FLAG_TRUE)
	assert.Equal(t, "TypeError", errKind(t, err))
}

func TestObjectStringTag(t *testing.T) {
	r := New()
	assert.Equal(t, "[object Object]", r.NewObject().String())
	assert.Equal(t, "[object Array]", r.NewArray().String())
}
