/*
report.go - Compliance report composition

PURPOSE:
  Composes the calculator operations into one report for a team member
  over a period: hour/pay breakdown, social charges, compliance check and
  advisory recommendations. Reports are derived on demand and never
  persisted by this package.
*/
package labor

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComplianceReport aggregates everything a payroll or planning screen
// needs for one member and period.
type ComplianceReport struct {
	MemberID string
	From     time.Time
	To       time.Time

	Breakdown  TimeBreakdown
	Charges    SocialCharges
	Compliance Compliance

	// Recommendations are advisory strings keyed to specific findings.
	Recommendations []string
}

// Report composes CalculateTimeAndPay, CheckCompliance and
// CalculateSocialCharges into a full compliance report.
func (c *Calculator) Report(memberID string, from, to time.Time, hourlyRate decimal.Decimal, intermittent bool) (ComplianceReport, error) {
	breakdown, err := c.CalculateTimeAndPay(from, to, hourlyRate, intermittent)
	if err != nil {
		return ComplianceReport{}, err
	}

	report := ComplianceReport{
		MemberID:   memberID,
		From:       from,
		To:         to,
		Breakdown:  breakdown,
		Charges:    CalculateSocialCharges(breakdown.TotalPay, intermittent),
		Compliance: c.CheckCompliance(from, to, nil),
	}

	if !report.Compliance.Compliant || !breakdown.Compliant {
		report.Recommendations = append(report.Recommendations,
			"Réduire le volume horaire et augmenter les temps de repos pour revenir dans les limites légales")
	}
	if breakdown.OvertimeHours.IsPositive() {
		report.Recommendations = append(report.Recommendations,
			"Prévoir la compensation des heures supplémentaires (majoration ou repos compensateur)")
	}
	if breakdown.NightHours.IsPositive() {
		report.Recommendations = append(report.Recommendations,
			"Vérifier l'autorisation de travail de nuit et les contreparties associées")
	}

	return report, nil
}
