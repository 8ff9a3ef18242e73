/*
charges.go - Social charges on gross pay

PURPOSE:
  Derives employee and employer social contributions from gross pay.
  Intermittents du spectacle (entertainment-industry workers on fixed-term
  engagements) fall under a different contribution scheme with lower
  headline rates, selected by the intermittent flag.

  No rounding is applied here; callers round at presentation only so that
  chained calculations keep full precision.
*/
package labor

import "github.com/shopspring/decimal"

// ChargeRates is one employee/employer contribution-rate pair.
type ChargeRates struct {
	Employee decimal.Decimal
	Employer decimal.Decimal
}

var (
	// StandardChargeRates applies to workers under the general regime.
	StandardChargeRates = ChargeRates{Employee: dec("0.22"), Employer: dec("0.45")}

	// IntermittentChargeRates applies to intermittents du spectacle.
	IntermittentChargeRates = ChargeRates{Employee: dec("0.12"), Employer: dec("0.23")}
)

// SocialCharges is the contribution breakdown for one gross amount.
type SocialCharges struct {
	EmployeeCharges decimal.Decimal
	EmployerCharges decimal.Decimal
	NetPay          decimal.Decimal
	TotalCost       decimal.Decimal
}

// CalculateSocialCharges derives contributions, net pay and total employer
// cost from gross pay.
func CalculateSocialCharges(grossPay decimal.Decimal, intermittent bool) SocialCharges {
	rates := StandardChargeRates
	if intermittent {
		rates = IntermittentChargeRates
	}

	employee := grossPay.Mul(rates.Employee)
	employer := grossPay.Mul(rates.Employer)

	return SocialCharges{
		EmployeeCharges: employee,
		EmployerCharges: employer,
		NetPay:          grossPay.Sub(employee),
		TotalCost:       grossPay.Add(employer),
	}
}
