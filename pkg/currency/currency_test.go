package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/erp-lite/pkg/currency"
)

// Formateo con separadores de miles en la moneda configurada.
func TestFormat_SeparadoresDeMiles(t *testing.T) {
	f := currency.New("USD")
	out := f.Format(decimal.NewFromFloat(1250.50))

	assert.Contains(t, out, "1,250.50")
	assert.Equal(t, "USD", f.Code())
}

// Código ISO desconocido cae a ETB (moneda por defecto de la aplicación).
func TestNew_CodigoDesconocidoCaeAETB(t *testing.T) {
	f := currency.New("no-es-iso")
	assert.Equal(t, "ETB", f.Code())

	out := f.Format(decimal.NewFromInt(100))
	assert.NotEmpty(t, out)
}
