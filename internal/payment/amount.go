package payment

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var vndPrinter = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount with Vietnamese digit grouping, e.g. 100.000 ₫.
func FormatVND(amount int64) string {
	return vndPrinter.Sprintf("%d ₫", amount)
}
