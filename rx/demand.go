package rx

import (
	"math"
	"strconv"
)

// Demand is the number of values a subscriber is willing to receive.
// Finite additions saturate at Unlimited.
type Demand uint64

const (
	None      Demand = 0
	Unlimited Demand = math.MaxUint64
)

// Max returns a finite demand of n; negative n is treated as None.
func Max(n int) Demand {
	if n <= 0 {
		return None
	}
	return Demand(n)
}

func (d Demand) IsUnlimited() bool {
	return d == Unlimited
}

func (d Demand) Add(n Demand) Demand {
	if d > Unlimited-n {
		return Unlimited
	}
	return d + n
}

func (d Demand) String() string {
	if d.IsUnlimited() {
		return "unlimited"
	}
	return strconv.FormatUint(uint64(d), 10)
}

// Counter tracks outstanding demand. It is not safe for concurrent use;
// the owning subscription serialises access.
type Counter struct {
	demand Demand
}

func (c *Counter) Add(n Demand) {
	c.demand = c.demand.Add(n)
}

// TryConsumeOne takes one unit of demand. It reports false when no demand
// is left, in which case no value may be delivered.
func (c *Counter) TryConsumeOne() bool {
	switch c.demand {
	case None:
		return false
	case Unlimited:
		return true
	}
	c.demand--
	return true
}

func (c *Counter) Demand() Demand {
	return c.demand
}

func (c *Counter) IsZero() bool {
	return c.demand == None
}
