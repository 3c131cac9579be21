// Package rates computes transit charges from transport hub ("kaat") rates.
package rates

import "sangamtransport/models"

// ComputeCharge prices a consignment against a hub rate.
//
// per-kg charges weight only, per-pkg charges packet count only, hybrid sums
// both components. The minimum charge floors the freight component before
// hamali and delivery surcharges are added on top.
func ComputeCharge(rate *models.TransportHubRate, weightKG float64, packets int) float64 {
	var freight float64
	switch rate.PricingMode {
	case models.PricingPerKG:
		freight = rate.RatePerKG * weightKG
	case models.PricingPerPkg:
		freight = rate.RatePerPkg * float64(packets)
	case models.PricingHybrid:
		freight = rate.RatePerKG*weightKG + rate.RatePerPkg*float64(packets)
	}
	if freight < rate.MinCharge {
		freight = rate.MinCharge
	}
	return freight + rate.HamaliPerPkt*float64(packets) + rate.DDCharge
}
