// Package player is a simulated media player. It exposes observable
// properties, periodic time observers and an end-of-playback notification,
// and adapts each of them into an rx publisher.
package player

import (
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/pkg/errors"

	"github.com/7vars/avrx"
	"github.com/7vars/avrx/kvo"
)

const (
	KeyRate        = "rate"
	KeyCurrentItem = "currentItem"

	// DidPlayToEndTime is posted with the finished *Item as object.
	DidPlayToEndTime avrx.NotificationName = "player.didPlayToEndTime"

	DefaultInterval = 250 * time.Millisecond
	DefaultRate     = 1.0
)

var (
	ErrInvalidInterval = errors.New("player: interval must be positive")
	ErrInvalidRate     = errors.New("player: rate must not be negative")
	ErrNoItem          = errors.New("player: no current item")
	ErrSeekOutOfRange  = errors.New("player: seek target out of range")
)

type Option func(*Player)

func WithLogger(logger avrx.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

// WithNotificationCenter sets the center DidPlayToEndTime is posted to.
func WithNotificationCenter(center *avrx.NotificationCenter) Option {
	return func(p *Player) {
		p.center = center
	}
}

// WithDefaultRate sets the rate Play starts playback at.
func WithDefaultRate(rate float64) Option {
	return func(p *Player) {
		p.defaultRate = rate
	}
}

type timeObserver struct {
	interval time.Duration
	fn       func(time.Duration)
	timer    clock.Timer
}

// Player plays at most one Item at a time against a clock. Its position
// advances at rate times the clock's pace and stops at the item's duration.
type Player struct {
	*kvo.Object

	clock       clock.Clock
	center      *avrx.NotificationCenter
	logger      avrx.Logger
	defaultRate float64

	mu        sync.Mutex
	item      *Item
	rate      float64
	anchor    time.Time
	position  time.Duration
	observers map[avrx.Token]*timeObserver
}

func New(clk clock.Clock, opts ...Option) *Player {
	p := &Player{
		Object: kvo.NewObject(map[string]interface{}{
			KeyRate:        0.0,
			KeyCurrentItem: (*Item)(nil),
		}),
		clock:       clk,
		defaultRate: DefaultRate,
		observers:   make(map[avrx.Token]*timeObserver),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.center == nil {
		p.center = avrx.NewNotificationCenter()
	}
	if p.logger == nil {
		p.logger = avrx.NewLogger()
	}
	p.anchor = clk.Now()
	return p
}

// NewFromConfig reads the default rate from avrx.KeyPlayerRate.
func NewFromConfig(clk clock.Clock, conf avrx.Config, opts ...Option) *Player {
	rate := conf.GetFloat64Default(avrx.KeyPlayerRate, DefaultRate)
	return New(clk, append([]Option{WithDefaultRate(rate)}, opts...)...)
}

func (p *Player) NotificationCenter() *avrx.NotificationCenter {
	return p.center
}

func (p *Player) Rate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rate
}

func (p *Player) CurrentItem() *Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.item
}

// CurrentTime returns the playhead position. Reaching the end of the item
// while reading it ends playback.
func (p *Player) CurrentTime() time.Duration {
	pos, ended := p.advance()
	if ended != nil {
		p.finish(ended)
	}
	return pos
}

func (p *Player) Play() error {
	return p.SetRate(p.defaultRate)
}

func (p *Player) Pause() error {
	return p.SetRate(0)
}

// SetRate changes the playback rate; 0 pauses. A positive rate needs an item.
func (p *Player) SetRate(rate float64) error {
	if rate < 0 {
		return errors.Wrapf(ErrInvalidRate, "rate %v", rate)
	}

	p.mu.Lock()
	if rate > 0 && p.item == nil {
		p.mu.Unlock()
		return ErrNoItem
	}
	p.rebase()
	p.rate = rate
	p.mu.Unlock()

	p.logger.Debugf("rate set to %v", rate)
	set(p.Object, KeyRate, rate)
	return nil
}

// ReplaceCurrentItem loads item at position zero. A nil item unloads the
// player and pauses it.
func (p *Player) ReplaceCurrentItem(item *Item) {
	p.mu.Lock()
	p.item = item
	p.anchor = p.clock.Now()
	p.position = 0
	paused := item == nil && p.rate != 0
	if paused {
		p.rate = 0
	}
	p.mu.Unlock()

	p.logger.WithField("item", item).Debug("current item replaced")
	set(p.Object, KeyCurrentItem, item)
	if paused {
		set(p.Object, KeyRate, 0.0)
	}
}

// Seek moves the playhead to a position within the current item.
func (p *Player) Seek(to time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.item == nil {
		return ErrNoItem
	}
	if to < 0 || to > p.item.Duration() {
		return errors.Wrapf(ErrSeekOutOfRange, "seek to %s of %s", to, p.item.Duration())
	}
	p.anchor = p.clock.Now()
	p.position = to
	return nil
}

// AddPeriodicTimeObserver calls fn with the playhead position every interval
// of clock time until the returned token is removed. fn runs on a clock
// goroutine.
func (p *Player) AddPeriodicTimeObserver(interval time.Duration, fn func(time.Duration)) (avrx.Token, error) {
	if interval <= 0 {
		return avrx.Token{}, errors.Wrapf(ErrInvalidInterval, "interval %s", interval)
	}
	if fn == nil {
		panic(avrx.RuntimeError("player: nil time observer"))
	}
	token := avrx.NewToken()
	obs := &timeObserver{
		interval: interval,
		fn:       fn,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers[token] = obs
	obs.timer = p.clock.AfterFunc(interval, func() { p.tick(token) })
	p.logger.WithField("interval", interval).Debugf("time observer %s added", token)
	return token, nil
}

// RemoveTimeObserver is a no-op for unknown tokens.
func (p *Player) RemoveTimeObserver(token avrx.Token) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if obs, ok := p.observers[token]; ok {
		obs.timer.Stop()
		delete(p.observers, token)
	}
}

func (p *Player) TimeObserverCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.observers)
}

func (p *Player) tick(token avrx.Token) {
	p.mu.Lock()
	obs, ok := p.observers[token]
	p.mu.Unlock()
	if !ok {
		return
	}

	pos, ended := p.advance()
	obs.fn(pos)
	if ended != nil {
		p.finish(ended)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if current, ok := p.observers[token]; ok && current == obs {
		obs.timer = p.clock.AfterFunc(obs.interval, func() { p.tick(token) })
	}
}

// advance returns the current position and, when it reached the end of the
// item during playback, the item that ended. Playback is stopped in that case.
func (p *Player) advance() (time.Duration, *Item) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pos := p.positionLocked()
	if p.item == nil || p.rate == 0 {
		return pos, nil
	}
	if end := p.item.Duration(); pos >= end {
		p.anchor = p.clock.Now()
		p.position = end
		p.rate = 0
		return end, p.item
	}
	return pos, nil
}

func (p *Player) finish(item *Item) {
	p.logger.WithField("item", item).Info("played to end")
	set(p.Object, KeyRate, 0.0)
	p.center.Post(DidPlayToEndTime, item, nil)
}

func (p *Player) rebase() {
	p.position = p.positionLocked()
	p.anchor = p.clock.Now()
}

func (p *Player) positionLocked() time.Duration {
	pos := p.position
	if p.rate > 0 {
		elapsed := p.clock.Now().Sub(p.anchor)
		pos += time.Duration(float64(elapsed) * p.rate)
	}
	if p.item != nil {
		if end := p.item.Duration(); pos > end {
			pos = end
		}
	}
	return pos
}
