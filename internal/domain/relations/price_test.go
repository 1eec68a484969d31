package relations

import "testing"

func TestRecomputePrice(t *testing.T) {
	twenty := 20.0
	cases := []struct {
		name     string
		prices   []*float64
		enabled  bool
		discount float64
		want     float64
	}{
		{"sum without discount", Prices(10, 20), false, 25, 30.00},
		{"discount applied", Prices(10, 20), true, 25, 22.50},
		{"no members", nil, true, 50, 0.00},
		{"nil price counts as zero", []*float64{nil, &twenty}, false, 0, 20.00},
		{"discount above 100 is clamped", Prices(10, 20), true, 150, 0.00},
		{"negative discount is clamped", Prices(10, 20), true, -10, 30.00},
		{"rounds to cents", Prices(9.99, 0.015), true, 33.333, 6.67},
		{"negative sum floors at zero", Prices(-5), false, 0, 0.00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RecomputePrice(tc.prices, tc.enabled, tc.discount)
			if got != tc.want {
				t.Fatalf("RecomputePrice = %.4f, want %.2f", got, tc.want)
			}
		})
	}
}
