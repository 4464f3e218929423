package pdf

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// formatRupiah formatea con separadores indonesios: "Rp 1.234.567,50".
// La parte entera se agrupa con x/text; los centavos se añaden aparte para no pasar por float.
func formatRupiah(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("Rp %s%s,%02d", sign, idPrinter.Sprintf("%d", whole.IntPart()), cents)
}

// formatQuantity muestra la cantidad sin ceros decimales sobrantes ("2", "1,5").
func formatQuantity(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

var smallNumbers = []string{
	"", "satu", "dua", "tiga", "empat", "lima", "enam", "tujuh", "delapan", "sembilan", "sepuluh", "sebelas",
}

// spell escribe n (>= 0) en palabras en indonesio.
func spell(n int64) string {
	switch {
	case n < 12:
		return smallNumbers[n]
	case n < 20:
		return spell(n-10) + " belas"
	case n < 100:
		return joinWords(spell(n/10)+" puluh", spell(n%10))
	case n < 200:
		return joinWords("seratus", spell(n-100))
	case n < 1000:
		return joinWords(spell(n/100)+" ratus", spell(n%100))
	case n < 2000:
		return joinWords("seribu", spell(n-1000))
	case n < 1_000_000:
		return joinWords(spell(n/1000)+" ribu", spell(n%1000))
	case n < 1_000_000_000:
		return joinWords(spell(n/1_000_000)+" juta", spell(n%1_000_000))
	case n < 1_000_000_000_000:
		return joinWords(spell(n/1_000_000_000)+" miliar", spell(n%1_000_000_000))
	default:
		return joinWords(spell(n/1_000_000_000_000)+" triliun", spell(n%1_000_000_000_000))
	}
}

func joinWords(a, b string) string {
	if b == "" {
		return a
	}
	return a + " " + b
}

// amountInWords texto "terbilang" de un importe (se ignoran los centavos).
func amountInWords(d decimal.Decimal) string {
	n := d.Abs().Truncate(0).IntPart()
	words := "nol"
	if n > 0 {
		words = spell(n)
	}
	if d.IsNegative() {
		words = "minus " + words
	}
	return strings.ToUpper(words[:1]) + words[1:] + " rupiah"
}
