package avrx

import (
	"time"

	"github.com/spf13/viper"
)

const (
	KeyLogLevel         = "avrx.log.level"
	KeyLogFormatter     = "avrx.log.formatter"
	KeyPlayheadInterval = "avrx.playhead.interval"
	KeyPlayerRate       = "avrx.player.rate"
)

type Config interface {
	GetString(string) string
	GetFloat64(string) float64
	GetDuration(string) time.Duration

	IsSet(string) bool

	GetStringDefault(string, string) string
	GetFloat64Default(string, float64) float64
	GetDurationDefault(string, time.Duration) time.Duration
}

// Settings returns the process wide configuration held by viper.
func Settings() Config {
	return NewConfig(viper.GetViper())
}

func NewConfig(v *viper.Viper) Config {
	return &viperWrapper{v}
}

type viperWrapper struct {
	*viper.Viper
}

func (w *viperWrapper) GetStringDefault(key string, v string) string {
	if w.IsSet(key) {
		return w.GetString(key)
	}
	return v
}

func (w *viperWrapper) GetFloat64Default(key string, v float64) float64 {
	if w.IsSet(key) {
		return w.GetFloat64(key)
	}
	return v
}

func (w *viperWrapper) GetDurationDefault(key string, v time.Duration) time.Duration {
	if w.IsSet(key) {
		return w.GetDuration(key)
	}
	return v
}
