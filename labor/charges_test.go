package labor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucascenseur/plannitech/labor"
)

func TestCalculateSocialCharges_StandardWorker(t *testing.T) {
	got := labor.CalculateSocialCharges(d("1000"), false)

	assertDecimal(t, "220", got.EmployeeCharges)
	assertDecimal(t, "450", got.EmployerCharges)
	assertDecimal(t, "780", got.NetPay)
	assertDecimal(t, "1450", got.TotalCost)
}

func TestCalculateSocialCharges_Intermittent(t *testing.T) {
	got := labor.CalculateSocialCharges(d("1000"), true)

	assertDecimal(t, "120", got.EmployeeCharges)
	assertDecimal(t, "230", got.EmployerCharges)
	assertDecimal(t, "880", got.NetPay)
	assertDecimal(t, "1230", got.TotalCost)
}

func TestCalculateSocialCharges_PreservesPrecision(t *testing.T) {
	// No internal rounding: 100.10 x 0.22 should come back exact.
	got := labor.CalculateSocialCharges(d("100.10"), false)

	assertDecimal(t, "22.022", got.EmployeeCharges)
	assertDecimal(t, "78.078", got.NetPay)
}

func TestCalculateSocialCharges_ZeroGross(t *testing.T) {
	got := labor.CalculateSocialCharges(d("0"), true)

	assert.True(t, got.EmployeeCharges.IsZero())
	assert.True(t, got.EmployerCharges.IsZero())
	assert.True(t, got.NetPay.IsZero())
	assert.True(t, got.TotalCost.IsZero())
}
