package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// one printer for the whole process; message.Printer is safe for concurrent use
var idPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders a whole-rupiah amount with Indonesian digit grouping,
// e.g. 1200000 -> "Rp 1.200.000". Input stays int64 so no precision is lost.
func FormatIDR(amount int64) string {
	return idPrinter.Sprintf("Rp %v", number.Decimal(amount))
}
