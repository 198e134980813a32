package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formatea montos en la moneda configurada de la empresa (APP_CURRENCY).
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// New crea un formateador para el código ISO 4217 indicado. Código desconocido cae a ETB.
func New(code string) *Formatter {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.MustParseISO("ETB")
	}
	return &Formatter{
		unit:    unit,
		printer: message.NewPrinter(language.English),
	}
}

// Format devuelve el monto con símbolo de moneda y separadores de miles (ej. "ETB 1,250.00").
func (f *Formatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Float64()
	return f.printer.Sprintf("%v", currency.NarrowSymbol(f.unit.Amount(v)))
}

// Code devuelve el código ISO de la moneda activa.
func (f *Formatter) Code() string {
	return f.unit.String()
}
