package kaja

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainStringIterator(t *testing.T, r *Realm, s Value) []string {
	t.Helper()
	m, err := r.getMethodSym(s, symIterator)
	require.NoError(t, err)
	require.NotNil(t, m)
	ir, err := r.getIterator(s, m)
	require.NoError(t, err)

	var out []string
	for {
		res, err := r.iteratorStep(ir)
		require.NoError(t, err)
		if res == nil {
			return out
		}
		v, err := r.iteratorValue(res)
		require.NoError(t, err)
		out = append(out, v.String())
	}
}

func TestStringIteratorASCII(t *testing.T) {
	r := New()
	assert.Equal(t, []string{"a", "b", "c"}, drainStringIterator(t, r, newStringValue("abc")))
}

func TestStringIteratorEmpty(t *testing.T) {
	r := New()
	assert.Empty(t, drainStringIterator(t, r, newStringValue("")))
}

func TestStringIteratorCodePoints(t *testing.T) {
	r := New()
	// multi-byte runes come out whole
	assert.Equal(t, []string{"a", "é", "\U0001F600"}, drainStringIterator(t, r, newStringValue("aé\U0001F600")))
}

func TestStringIteratorOnWrapperObject(t *testing.T) {
	r := New()
	wrapper, err := newStringValue("hi").ToObject(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"h", "i"}, drainStringIterator(t, r, wrapper))
}

func TestStringIteratorNextOnWrongReceiver(t *testing.T) {
	r := New()
	nextV, err := r.global.StringIteratorPrototype.Get("next")
	require.NoError(t, err)
	_, err = r.call(nextV.(*Object), r.NewObject())
	assert.Equal(t, "TypeError", errKind(t, err))
}

func TestArrayIteratorNextOnWrongReceiver(t *testing.T) {
	r := New()
	nextV, err := r.global.ArrayIteratorPrototype.Get("next")
	require.NoError(t, err)
	_, err = r.call(nextV.(*Object), r.NewObject())
	assert.Equal(t, "TypeError", errKind(t, err))
}
