package player

import (
	"time"

	"github.com/7vars/avrx/kvo"
)

const (
	KeyStatus                   = "status"
	KeyDuration                 = "duration"
	KeyIsPlaybackLikelyToKeepUp = "isPlaybackLikelyToKeepUp"
	KeyIsPlaybackBufferEmpty    = "isPlaybackBufferEmpty"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusReadyToPlay
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusReadyToPlay:
		return "ready-to-play"
	case StatusFailed:
		return "failed"
	}
	return "invalid"
}

// Item is a piece of media loaded into a Player. Its properties are
// observable through the embedded kvo.Object.
type Item struct {
	*kvo.Object
	name string
}

// NewItem returns an item in StatusUnknown with an empty buffer.
func NewItem(name string, duration time.Duration) *Item {
	return &Item{
		Object: kvo.NewObject(map[string]interface{}{
			KeyStatus:                   StatusUnknown,
			KeyDuration:                 duration,
			KeyIsPlaybackLikelyToKeepUp: false,
			KeyIsPlaybackBufferEmpty:    true,
		}),
		name: name,
	}
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) String() string {
	if i == nil {
		return "none"
	}
	return i.name
}

func (i *Item) Status() Status {
	return get[Status](i.Object, KeyStatus)
}

func (i *Item) Duration() time.Duration {
	return get[time.Duration](i.Object, KeyDuration)
}

func (i *Item) IsPlaybackLikelyToKeepUp() bool {
	return get[bool](i.Object, KeyIsPlaybackLikelyToKeepUp)
}

func (i *Item) IsPlaybackBufferEmpty() bool {
	return get[bool](i.Object, KeyIsPlaybackBufferEmpty)
}

func (i *Item) SetStatus(s Status) {
	set(i.Object, KeyStatus, s)
}

func (i *Item) SetDuration(d time.Duration) {
	set(i.Object, KeyDuration, d)
}

func (i *Item) SetPlaybackLikelyToKeepUp(v bool) {
	set(i.Object, KeyIsPlaybackLikelyToKeepUp, v)
}

func (i *Item) SetPlaybackBufferEmpty(v bool) {
	set(i.Object, KeyIsPlaybackBufferEmpty, v)
}

// MarkReady simulates a finished load: the item becomes playable and its
// buffer fills.
func (i *Item) MarkReady() {
	i.SetStatus(StatusReadyToPlay)
	i.SetPlaybackBufferEmpty(false)
	i.SetPlaybackLikelyToKeepUp(true)
}

func get[V any](o *kvo.Object, key string) V {
	var zero V
	v, err := o.Get(key)
	if err != nil {
		return zero
	}
	if tv, ok := v.(V); ok {
		return tv
	}
	return zero
}

// set only writes declared keys, so the error is always nil.
func set(o *kvo.Object, key string, v interface{}) {
	_ = o.Set(key, v)
}
