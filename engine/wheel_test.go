package engine

import (
	"encoding/json"
	"testing"
)

func TestWheelTables(t *testing.T) {
	if len(NormalWheel) != 24 || len(ExpressWheel) != 24 {
		t.Fatalf("wheel sizes = %d/%d, want 24/24", len(NormalWheel), len(ExpressWheel))
	}
	count := func(w Wheel, k WheelKind) int {
		n := 0
		for _, v := range w {
			if v.Kind() == k {
				n++
			}
		}
		return n
	}
	if got := count(NormalWheel, WheelKindExpress); got != 0 {
		t.Errorf("normal wheel express segments = %d, want 0", got)
	}
	if got := count(ExpressWheel, WheelKindExpress); got != 3 {
		t.Errorf("express wheel express segments = %d, want 3", got)
	}
	if NormalWheel[DefaultHouseRules().JollySegment].Kind() != WheelKindPrize {
		t.Error("Jolly segment is not a prize")
	}
}

func TestParseWheelValue(t *testing.T) {
	tests := []struct {
		in      string
		want    WheelValue
		wantErr bool
	}{
		{"bankrupt", WheelBankrupt, false},
		{"Bancarotta", WheelBankrupt, false},
		{"passa", WheelPass, false},
		{"EXPRESS", WheelExpress, false},
		{" 300 ", WheelPrize(300), false},
		{"0", WheelValue{}, true},
		{"jackpot", WheelValue{}, true},
	}
	for _, tt := range tests {
		got, err := ParseWheelValue(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWheelValue(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWheelValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWheelValueJSON(t *testing.T) {
	var w Wheel
	if err := json.Unmarshal([]byte(`["bankrupt", "500", "express"]`), &w); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(w) != 3 || w[0] != WheelBankrupt || w[1] != WheelPrize(500) || w[2] != WheelExpress {
		t.Errorf("w = %v", w)
	}
}

func TestPrizeCue(t *testing.T) {
	if PrizeCue(300) != "s300" || PrizeCue(1000) != CueHigh || PrizeCue(4000) != CueHigh {
		t.Error("PrizeCue tiers wrong")
	}
}
