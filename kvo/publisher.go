package kvo

import (
	"github.com/7vars/avrx"
	"github.com/7vars/avrx/rx"
)

// NewPublisher publishes the value at path every time object reports a
// change of path.Key. The publisher is named "kvo.<key>" unless rx.WithName
// says otherwise.
func NewPublisher[O Observable, V any](object O, path KeyPath[O, V], opts ...rx.Option) rx.Publisher[V] {
	if path.Get == nil {
		panic(avrx.RuntimeError("kvo: key path " + path.Key + " has no getter"))
	}
	bridge := rx.BridgeFuncs[V]{
		OnRegister: func(fn func(V)) avrx.Token {
			return object.AddObserver(path.Key, func(c Change) {
				if v, ok := c.New.(V); ok {
					fn(v)
					return
				}
				fn(path.Get(object))
			})
		},
		OnUnregister: object.RemoveObserver,
	}
	return rx.NewPublisher[V](bridge, append([]rx.Option{rx.WithName("kvo." + path.Key)}, opts...)...)
}
