package service

import "testing"

func TestIsMilestone(t *testing.T) {
	tests := []struct {
		count int64
		want  bool
	}{
		{0, false},
		{1, false},
		{4, false},
		{5, true},
		{6, false},
		{10, true},
		{11, false},
		{50, true},
		{100, true},
		{499, false},
		{500, true},
		{1000, true},
		{5000, true},
		{9999, false},
		{10000, true},
		{10001, false},
		{15000, false},
		{20000, true},
		{100000, true},
		{100001, false},
	}
	for _, tt := range tests {
		if got := IsMilestone(tt.count); got != tt.want {
			t.Errorf("IsMilestone(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}
