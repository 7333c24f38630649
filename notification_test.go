package avrx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	url string
}

func TestNotificationMatches(t *testing.T) {
	a, b := &item{"a"}, &item{"b"}
	n := Notification{Name: "end", Object: a}

	assert.True(t, n.Matches("end", nil))
	assert.True(t, n.Matches("end", a))
	assert.False(t, n.Matches("end", b))
	assert.False(t, n.Matches("start", a))
	assert.False(t, n.Matches("end", map[string]int{}))
}

func TestNotificationCenterPost(t *testing.T) {
	center := NewNotificationCenter()
	a, b := &item{"a"}, &item{"b"}

	var forA, forAny []Notification
	center.AddObserver("end", a, func(n Notification) { forA = append(forA, n) })
	center.AddObserver("end", nil, func(n Notification) { forAny = append(forAny, n) })

	center.Post("end", a, map[string]interface{}{"reason": "done"})
	center.Post("end", b, nil)
	center.Post("other", a, nil)

	require.Len(t, forA, 1)
	assert.Equal(t, a, forA[0].Object)
	assert.Equal(t, "done", forA[0].UserInfo["reason"])
	assert.Len(t, forAny, 2)
}

func TestNotificationCenterRemoveObserver(t *testing.T) {
	center := NewNotificationCenter()
	count := 0
	token := center.AddObserver("end", nil, func(Notification) { count++ })
	assert.Equal(t, 1, center.ObserverCount())

	center.RemoveObserver(token)
	center.RemoveObserver(token)
	center.RemoveObserver(Token{})
	center.Post("end", nil, nil)

	assert.Equal(t, 0, count)
	assert.Equal(t, 0, center.ObserverCount())
}

func TestNotificationCenterNilObserver(t *testing.T) {
	center := NewNotificationCenter()
	assert.Panics(t, func() {
		center.AddObserver("end", nil, nil)
	})
}

func TestToken(t *testing.T) {
	var zero Token
	assert.True(t, zero.IsZero())
	assert.Equal(t, "none", zero.String())

	a, b := NewToken(), NewToken()
	assert.False(t, a.IsZero())
	assert.NotEqual(t, a, b)
	assert.Len(t, a.String(), 36)
}

func TestRuntimeError(t *testing.T) {
	err := RuntimeError("boom")
	assert.EqualError(t, err, "runtime-error: boom")

	cause := RuntimeErr{assert.AnError}
	assert.ErrorIs(t, RuntimeError(cause.err), assert.AnError)
}

func TestIsRuntimeError(t *testing.T) {
	var recovered interface{}
	func() {
		defer func() { recovered = recover() }()
		NewNotificationCenter().AddObserver("x", nil, nil)
	}()

	assert.True(t, IsRuntimeError(recovered))
	assert.False(t, IsRuntimeError("boom"))
	assert.False(t, IsRuntimeError(assert.AnError))
}
