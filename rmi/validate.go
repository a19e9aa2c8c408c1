package rmi

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// checkRemoteInterface panics (a construction-time fatal error, matching the
// source's non-recoverable Error()) unless t is an interface type every
// method of which declares error as its last return value — the Go analogue
// of declaring RemoteError.
func checkRemoteInterface(t reflect.Type) {
	if t == nil || t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("rmi: %v does not represent a remote interface (not an interface type)", t))
	}
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		numOut := m.Type.NumOut()
		if numOut == 0 || m.Type.Out(numOut-1) != errorType {
			panic(fmt.Sprintf("rmi: method %s.%s does not declare error as its final return value", t.Name(), m.Name))
		}
	}
}

// checkImplements panics unless target's dynamic type implements iface.
func checkImplements(iface reflect.Type, target interface{}) {
	if target == nil {
		panic("rmi: nil target")
	}
	if !reflect.TypeOf(target).Implements(iface) {
		panic(fmt.Sprintf("rmi: %T does not implement %v", target, iface))
	}
}
