package labor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucascenseur/plannitech/labor"
)

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "39,5 h", labor.FormatHours(d("39.5")))
	assert.Equal(t, "40 h", labor.FormatHours(d("40")))
	assert.Equal(t, "8,3 h", labor.FormatHours(d("8.25")))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "1 234,50 €", labor.FormatCurrency(d("1234.5")))
	assert.Equal(t, "412,50 €", labor.FormatCurrency(d("412.5")))
	assert.Equal(t, "0,00 €", labor.FormatCurrency(d("0")))
	assert.Equal(t, "-1 000 000,00 €", labor.FormatCurrency(d("-1000000")))
}
