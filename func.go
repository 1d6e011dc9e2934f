package kaja

type baseFuncObject struct {
	baseObject

	nameProp, lenProp valueProperty
}

// nativeFuncObject is a function whose [[Call]] and/or [[Construct]]
// behaviour is a fixed native algorithm. A nil construct means the
// function is not a constructor.
type nativeFuncObject struct {
	baseFuncObject

	f         nativeFunc
	construct constructFunc
}

func (f *baseFuncObject) init(name string, length int) {
	f.baseObject.init()

	f.nameProp.configurable = true
	f.nameProp.value = newStringValue(name)
	f._put("name", &f.nameProp)

	f.lenProp.configurable = true
	f.lenProp.value = intToValue(int64(length))
	f._put("length", &f.lenProp)
}

func (f *nativeFuncObject) assertCallable() (nativeFunc, bool) {
	if f.f != nil {
		return f.f, true
	}
	return nil, false
}

func (f *nativeFuncObject) assertConstructor() (constructFunc, bool) {
	if f.construct != nil {
		return f.construct, true
	}
	return nil, false
}

func (f *nativeFuncObject) export() interface{} {
	return f.f
}

func (r *Realm) newNativeFuncObj(v *Object, call nativeFunc, construct constructFunc, name string, prototype *Object, length int) *nativeFuncObject {
	f := &nativeFuncObject{
		f:         call,
		construct: construct,
	}
	f.class = classFunction
	f.val = v
	f.extensible = true
	f.prototype = r.global.FunctionPrototype
	v.self = f
	f.init(name, length)
	if prototype != nil {
		f._putProp("prototype", prototype, false, false, false)
	}
	return f
}

func (r *Realm) newNativeFunc(call nativeFunc, construct constructFunc, name string, prototype *Object, length int) *Object {
	v := &Object{realm: r}
	r.newNativeFuncObj(v, call, construct, name, prototype, length)
	return v
}

// NewNativeFunction exposes a Go function as a callable (non-constructor)
// function object.
func (r *Realm) NewNativeFunction(name string, length int, fn func(FunctionCall) (Value, error)) *Object {
	return r.newNativeFunc(fn, nil, name, nil, length)
}
