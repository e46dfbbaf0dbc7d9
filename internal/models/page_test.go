package models

import "testing"

func TestPageSpecNormalized(t *testing.T) {
	cases := []struct {
		name string
		in   PageSpec
		want PageSpec
	}{
		{"zero value gets defaults", PageSpec{}, PageSpec{Page: 1, Size: DefaultPageSize}},
		{"negative page clamps to one", PageSpec{Page: -3, Size: 20}, PageSpec{Page: 1, Size: 20}},
		{"oversized page size clamps to max", PageSpec{Page: 2, Size: 500}, PageSpec{Page: 2, Size: MaxPageSize}},
		{"in-range values pass through", PageSpec{Page: 4, Size: 25}, PageSpec{Page: 4, Size: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalized(DefaultPageSize, MaxPageSize); got != tc.want {
				t.Fatalf("Normalized(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestPageSpecOffset(t *testing.T) {
	if got := (PageSpec{Page: 1, Size: 10}).Offset(); got != 0 {
		t.Fatalf("first page offset = %d, want 0", got)
	}
	if got := (PageSpec{Page: 3, Size: 25}).Offset(); got != 50 {
		t.Fatalf("third page offset = %d, want 50", got)
	}
}
