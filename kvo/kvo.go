// Package kvo provides observable property stores and adapts them to rx
// publishers.
package kvo

import (
	"github.com/pkg/errors"

	"github.com/7vars/avrx"
)

var ErrUnknownKey = errors.New("kvo: unknown key")

// Change describes one property write. Old holds the value before the write.
type Change struct {
	Key string
	Old interface{}
	New interface{}
}

// Observable is anything that reports changes to named properties.
type Observable interface {
	AddObserver(key string, fn func(Change)) avrx.Token
	RemoveObserver(token avrx.Token)
}

// KeyPath names a property of O and knows how to read its current value.
type KeyPath[O any, V any] struct {
	Key string
	Get func(O) V
}

func (k KeyPath[O, V]) Path() string {
	return k.Key
}
