package db

import (
	"testing"
)

func TestUtilizationPercent(t *testing.T) {
	cases := []struct {
		inUse, max int32
		want       string
	}{
		{0, 20, "0%"},
		{5, 20, "25%"},
		{20, 20, "100%"},
		{3, 0, "0%"},
	}
	for _, tc := range cases {
		if got := utilizationPercent(tc.inUse, tc.max); got != tc.want {
			t.Errorf("utilizationPercent(%d, %d) = %s, want %s", tc.inUse, tc.max, got, tc.want)
		}
	}
}

func TestPoolStatus_Saturated(t *testing.T) {
	if (PoolStatus{InUse: 19, Max: 20}).Saturated() {
		t.Error("pool with a free connection must not report saturated")
	}
	if !(PoolStatus{InUse: 20, Max: 20}).Saturated() {
		t.Error("fully acquired pool must report saturated")
	}
	if (PoolStatus{InUse: 0, Max: 0}).Saturated() {
		t.Error("unconfigured pool must not report saturated")
	}
}
