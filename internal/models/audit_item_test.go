package models

import "testing"

func fptr(v float64) *float64 { return &v }

func TestComputeCountVariance(t *testing.T) {
	cases := []struct {
		name          string
		onHand        *float64
		physicalCount *float64
		want          *float64
	}{
		{"both nil", nil, nil, nil},
		{"on hand nil", nil, fptr(3), nil},
		{"physical nil", fptr(3), nil, nil},
		{"simple", fptr(10), fptr(7), fptr(3)},
		{"negative", fptr(2), fptr(5), fptr(-3)},
		{"zero", fptr(4), fptr(4), fptr(0)},
		{"fractional", fptr(1.5), fptr(0.25), fptr(1.25)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeCountVariance(tc.onHand, tc.physicalCount)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("got %v, want %v", *got, *tc.want)
			}
		})
	}
}
