package payment

import "errors"

var ErrNegativeAmount = errors.New("money cannot be negative")

// Money is an amount in the currency's minor unit.
type Money struct {
	minor    int64
	currency string
}

func NewMoney(minor int64, currency string) (Money, error) {
	if minor < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{minor: minor, currency: currency}, nil
}

func (m Money) Minor() int64     { return m.minor }
func (m Money) Currency() string { return m.currency }
func (m Money) Major() float64   { return float64(m.minor) / 100.0 }
