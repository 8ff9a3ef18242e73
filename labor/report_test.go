package labor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucascenseur/plannitech/labor"
)

func TestReport_ComposesBreakdownChargesAndCompliance(t *testing.T) {
	// GIVEN: A two-day engagement for an intermittent at 25/h
	// WHEN: Generating the compliance report
	// THEN: Breakdown, charges and compliance agree with the standalone
	//       operations and no recommendations fire

	calc := frenchCalculator()
	from := at(2024, time.June, 3, 9)
	to := at(2024, time.June, 4, 9)

	report, err := calc.Report("member-1", from, to, d("25"), true)
	require.NoError(t, err)

	assert.Equal(t, "member-1", report.MemberID)
	assertDecimal(t, "16", report.Breakdown.TotalHours)
	assertDecimal(t, "400", report.Breakdown.TotalPay)

	// Charges derive from the breakdown's gross pay, intermittent scheme.
	assertDecimal(t, "48", report.Charges.EmployeeCharges) // 400 x 0.12
	assertDecimal(t, "352", report.Charges.NetPay)

	assert.True(t, report.Compliance.Compliant)
	assert.Empty(t, report.Recommendations)
}

func TestReport_RecommendationsKeyedToFindings(t *testing.T) {
	// GIVEN: A full week producing overtime and an annual-projection finding
	// THEN: The reduce-hours and overtime recommendations are present

	calc := frenchCalculator()
	from := at(2024, time.June, 3, 9)
	to := at(2024, time.June, 7, 9)

	report, err := calc.Report("member-2", from, to, d("18"), false)
	require.NoError(t, err)

	assert.True(t, report.Breakdown.OvertimeHours.IsPositive())
	assert.False(t, report.Compliance.Compliant)

	require.Len(t, report.Recommendations, 2)
	assert.Contains(t, report.Recommendations[0], "Réduire le volume horaire")
	assert.Contains(t, report.Recommendations[1], "heures supplémentaires")
}

func TestReport_NightWorkRecommendation(t *testing.T) {
	calc := frenchCalculator()
	night := at(2024, time.June, 4, 23)

	report, err := calc.Report("member-3", night, night, d("18"), false)
	require.NoError(t, err)

	require.NotEmpty(t, report.Recommendations)
	assert.Contains(t, report.Recommendations[len(report.Recommendations)-1], "travail de nuit")
}

func TestReport_InvalidRangePropagates(t *testing.T) {
	calc := frenchCalculator()

	_, err := calc.Report("member-4", at(2024, time.June, 7, 9), at(2024, time.June, 3, 9), d("18"), false)
	assert.ErrorIs(t, err, labor.ErrInvalidRange)
}
