package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Wheel is the ordered list of segments of a prize wheel.
type Wheel []WheelValue

// NormalWheel is used in normal rounds.
var NormalWheel = Wheel{
	WheelBankrupt, WheelPrize(1000), WheelPrize(200), WheelPrize(700), WheelPrize(300), WheelPrize(600),
	WheelPass, WheelPrize(800), WheelPrize(400), WheelPrize(100), WheelPrize(500), WheelPrize(300),
	WheelBankrupt, WheelPrize(800), WheelPrize(200), WheelPrize(600), WheelPrize(300), WheelPrize(500),
	WheelPass, WheelPrize(400), WheelPrize(200), WheelPrize(700), WheelPrize(100), WheelPrize(500),
}

// ExpressWheel is used in express rounds.
var ExpressWheel = Wheel{
	WheelBankrupt, WheelPrize(4000), WheelPrize(200), WheelPrize(700), WheelPrize(300), WheelPrize(600),
	WheelPass, WheelPrize(800), WheelExpress, WheelPrize(100), WheelPrize(500), WheelPrize(300),
	WheelBankrupt, WheelPrize(800), WheelExpress, WheelPrize(600), WheelPrize(300), WheelPrize(500),
	WheelPass, WheelPrize(400), WheelPrize(200), WheelPrize(700), WheelExpress, WheelPrize(500),
}

// ParseWheelValue accepts a positive integer or one of bankrupt, pass, express
// (Italian labels bancarotta and passa are accepted too).
func ParseWheelValue(s string) (WheelValue, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bankrupt", "bancarotta":
		return WheelBankrupt, nil
	case "pass", "passa":
		return WheelPass, nil
	case "express":
		return WheelExpress, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return WheelValue{}, fmt.Errorf("invalid wheel value %q", s)
	}
	if n <= 0 {
		return WheelValue{}, fmt.Errorf("wheel prize must be positive, got %d", n)
	}
	return WheelPrize(n), nil
}

// MarshalText implements encoding.TextMarshaler.
func (v WheelValue) MarshalText() ([]byte, error) {
	switch v.kind {
	case WheelKindBankrupt:
		return []byte("bankrupt"), nil
	case WheelKindPass:
		return []byte("pass"), nil
	case WheelKindExpress:
		return []byte("express"), nil
	default:
		return []byte(strconv.Itoa(v.amount)), nil
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *WheelValue) UnmarshalText(b []byte) error {
	parsed, err := ParseWheelValue(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
