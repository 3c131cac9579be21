package rates

import (
	"testing"

	"sangamtransport/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeCharge(t *testing.T) {
	tests := []struct {
		name    string
		rate    models.TransportHubRate
		weight  float64
		packets int
		want    float64
	}{
		{
			name:   "per-kg",
			rate:   models.TransportHubRate{PricingMode: models.PricingPerKG, RatePerKG: 2},
			weight: 100, packets: 5,
			want: 200,
		},
		{
			name:   "per-pkg ignores weight",
			rate:   models.TransportHubRate{PricingMode: models.PricingPerPkg, RatePerPkg: 30},
			weight: 999, packets: 4,
			want: 120,
		},
		{
			name:   "hybrid sums both components",
			rate:   models.TransportHubRate{PricingMode: models.PricingHybrid, RatePerKG: 2, RatePerPkg: 30},
			weight: 100, packets: 4,
			want: 320,
		},
		{
			name:   "minimum charge floors the freight",
			rate:   models.TransportHubRate{PricingMode: models.PricingPerKG, RatePerKG: 1, MinCharge: 150},
			weight: 40, packets: 0,
			want: 150,
		},
		{
			name: "surcharges are added after the floor",
			rate: models.TransportHubRate{
				PricingMode: models.PricingPerKG, RatePerKG: 1, MinCharge: 150,
				HamaliPerPkt: 5, DDCharge: 40,
			},
			weight: 40, packets: 3,
			want: 150 + 15 + 40,
		},
		{
			name: "surcharges on top of real freight",
			rate: models.TransportHubRate{
				PricingMode: models.PricingHybrid, RatePerKG: 2, RatePerPkg: 10,
				HamaliPerPkt: 5, DDCharge: 20,
			},
			weight: 100, packets: 2,
			want: 220 + 10 + 20,
		},
		{
			name:   "zero everything",
			rate:   models.TransportHubRate{PricingMode: models.PricingPerKG},
			weight: 0, packets: 0,
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeCharge(&tc.rate, tc.weight, tc.packets))
		})
	}
}
