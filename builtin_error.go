package kaja

func (r *Realm) newErrorObject(proto *Object, msg string) *Object {
	o := r.newBaseObject(proto, classError)
	o._putProp("message", newStringValue(msg), true, false, true)
	return o.val
}

func (r *Realm) createErrorProto(proto *Object, name string) *Object {
	o := r.newBaseObject(proto, classError)
	o._putProp("name", newStringValue(name), true, false, true)
	o._putProp("message", newStringValue(""), true, false, true)
	return o.val
}

func (r *Realm) initErrors() {
	r.global.ErrorPrototype = r.createErrorProto(r.global.ObjectPrototype, "Error")
	r.global.TypeErrorPrototype = r.createErrorProto(r.global.ErrorPrototype, "TypeError")
	r.global.RangeErrorPrototype = r.createErrorProto(r.global.ErrorPrototype, "RangeError")
}
