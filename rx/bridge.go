package rx

import "github.com/7vars/avrx"

// Bridge adapts an external callback registry to a subscription.
//
// Register starts observing and calls onEvent, on any goroutine, for every
// change. Unregister stops it; unknown or already stopped tokens must be
// ignored.
type Bridge[T any] interface {
	Register(onEvent func(T)) avrx.Token
	Unregister(avrx.Token)
}

// BridgeFuncs builds a Bridge from two functions.
type BridgeFuncs[T any] struct {
	OnRegister   func(func(T)) avrx.Token
	OnUnregister func(avrx.Token)
}

func (b BridgeFuncs[T]) Register(onEvent func(T)) avrx.Token {
	if b.OnRegister == nil {
		return avrx.Token{}
	}
	return b.OnRegister(onEvent)
}

func (b BridgeFuncs[T]) Unregister(token avrx.Token) {
	if b.OnUnregister != nil {
		b.OnUnregister(token)
	}
}
