package player

import (
	"time"

	"github.com/pkg/errors"

	"github.com/7vars/avrx"
	"github.com/7vars/avrx/kvo"
	"github.com/7vars/avrx/rx"
)

// TimeSource is a player-like source of periodic playhead updates.
type TimeSource interface {
	AddPeriodicTimeObserver(interval time.Duration, fn func(time.Duration)) (avrx.Token, error)
	RemoveTimeObserver(token avrx.Token)
}

// IntervalFromConfig reads avrx.KeyPlayheadInterval, falling back to
// DefaultInterval.
func IntervalFromConfig(conf avrx.Config) (time.Duration, error) {
	interval := conf.GetDurationDefault(avrx.KeyPlayheadInterval, DefaultInterval)
	if interval <= 0 {
		return 0, errors.Wrapf(ErrInvalidInterval, "%s=%s", avrx.KeyPlayheadInterval, interval)
	}
	return interval, nil
}

// NewPlayheadProgressPublisher samples the playhead of source every interval.
// The periodic observer is added once a subscriber first requests values and
// removed when its demand runs out or it cancels. Subscriptions always
// respect demand; a rx.WithPolicy option is overridden.
func NewPlayheadProgressPublisher(source TimeSource, interval time.Duration, opts ...rx.Option) (rx.Publisher[time.Duration], error) {
	if source == nil {
		return nil, errors.New("player: playhead progress without time source")
	}
	if interval <= 0 {
		return nil, errors.Wrapf(ErrInvalidInterval, "interval %s", interval)
	}
	o := append([]rx.Option{rx.WithName("player.playheadProgress")}, opts...)
	o = append(o, rx.WithPolicy(rx.RespectDemand))

	bridge := rx.BridgeFuncs[time.Duration]{
		OnRegister: func(fn func(time.Duration)) avrx.Token {
			token, err := source.AddPeriodicTimeObserver(interval, fn)
			if err != nil {
				avrx.NewLogger().WithField("interval", interval).Errorf("adding time observer: %v", err)
				return avrx.Token{}
			}
			return token
		},
		OnUnregister: source.RemoveTimeObserver,
	}
	return rx.NewPublisher[time.Duration](bridge, o...), nil
}

var (
	ratePath = kvo.KeyPath[*Player, float64]{
		Key: KeyRate,
		Get: (*Player).Rate,
	}
	currentItemPath = kvo.KeyPath[*Player, *Item]{
		Key: KeyCurrentItem,
		Get: (*Player).CurrentItem,
	}
	statusPath = kvo.KeyPath[*Item, Status]{
		Key: KeyStatus,
		Get: (*Item).Status,
	}
	durationPath = kvo.KeyPath[*Item, time.Duration]{
		Key: KeyDuration,
		Get: (*Item).Duration,
	}
	likelyToKeepUpPath = kvo.KeyPath[*Item, bool]{
		Key: KeyIsPlaybackLikelyToKeepUp,
		Get: (*Item).IsPlaybackLikelyToKeepUp,
	}
	bufferEmptyPath = kvo.KeyPath[*Item, bool]{
		Key: KeyIsPlaybackBufferEmpty,
		Get: (*Item).IsPlaybackBufferEmpty,
	}
)

func RatePublisher(p *Player, opts ...rx.Option) rx.Publisher[float64] {
	return kvo.NewPublisher(p, ratePath, opts...)
}

func CurrentItemPublisher(p *Player, opts ...rx.Option) rx.Publisher[*Item] {
	return kvo.NewPublisher(p, currentItemPath, opts...)
}

func StatusPublisher(item *Item, opts ...rx.Option) rx.Publisher[Status] {
	return kvo.NewPublisher(item, statusPath, opts...)
}

func DurationPublisher(item *Item, opts ...rx.Option) rx.Publisher[time.Duration] {
	return kvo.NewPublisher(item, durationPath, opts...)
}

func IsPlaybackLikelyToKeepUpPublisher(item *Item, opts ...rx.Option) rx.Publisher[bool] {
	return kvo.NewPublisher(item, likelyToKeepUpPath, opts...)
}

func IsPlaybackBufferEmptyPublisher(item *Item, opts ...rx.Option) rx.Publisher[bool] {
	return kvo.NewPublisher(item, bufferEmptyPath, opts...)
}

// DidPlayToEndTimePublisher publishes every item of p that plays to its end.
func DidPlayToEndTimePublisher(p *Player, opts ...rx.Option) rx.Publisher[*Item] {
	center := p.NotificationCenter()
	bridge := rx.BridgeFuncs[*Item]{
		OnRegister: func(fn func(*Item)) avrx.Token {
			return center.AddObserver(DidPlayToEndTime, nil, func(n avrx.Notification) {
				if item, ok := n.Object.(*Item); ok {
					fn(item)
				}
			})
		},
		OnUnregister: center.RemoveObserver,
	}
	return rx.NewPublisher[*Item](bridge, append([]rx.Option{rx.WithName("player.didPlayToEndTime")}, opts...)...)
}
