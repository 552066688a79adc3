package extracto

import (
	"strings"
	"time"
)

// This file holds the static multilingual vocabulary of the statement
// family: section markers, column labels, month names, transaction types
// and description prefixes. Entries are written as they appear in the
// statements; they are normalized (see normalizeText) before comparison.

// keywordRule matches a normalized text either exactly (Equals) or when it
// contains every one of the Contains fragments.
type keywordRule struct {
	Equals   string
	Contains []string
}

// keywordSet matches a text when any of its rules does.
type keywordSet []keywordRule

// compile normalizes every keyword of the set.
func (set keywordSet) compile() keywordSet {
	res := make(keywordSet, len(set))
	for i, r := range set {
		res[i].Equals = normalizeText(r.Equals)
		for _, c := range r.Contains {
			res[i].Contains = append(res[i].Contains, normalizeText(c))
		}
	}
	return res
}

// match reports whether the already normalized text matches the set.
func (set keywordSet) match(norm string) bool {
	for _, r := range set {
		if r.Equals != "" && norm == r.Equals {
			return true
		}
		if len(r.Contains) == 0 {
			continue
		}
		all := true
		for _, c := range r.Contains {
			if !strings.Contains(norm, c) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func eq(s string) keywordRule              { return keywordRule{Equals: s} }
func has(fragments ...string) keywordRule { return keywordRule{Contains: fragments} }

// Section markers.
var (
	cashStartMarkers = keywordSet{
		eq("UMSATZÜBERSICHT"),
		eq("TRANSAZIONI SUL CONTO"),
		eq("ACCOUNT TRANSACTIONS"),
		has("RESUMEN", "MOVIMIENT"),
		has("TRANSACCIONES DE CUENTA"),
		has("TRANSACCION", "CUENTA"),
		has("RESUMEN DE CUENTA"),
	}.compile()

	cashEndMarkers = keywordSet{
		has("BARMITTELÜBERSICHT"),
		has("BARMITTELUEBERSICHT"),
		has("CASH SUMMARY"),
		has("BALANCE OVERVIEW"),
		has("PANORAMICA DEL SALDO"),
		has("RESUMEN", "SALDO"),
		has("RESUMEN DEL BALANCE"),
	}.compile()

	incomeStartMarkers = keywordSet{
		eq("TRANSAKTIONSÜBERSICHT"),
		eq("TRANSAKTIONSUEBERSICHT"),
		eq("TRANSACTION OVERVIEW"),
		eq("TRANSACTIONS"),
		eq("PANORAMICA DELLE TRANSAZIONI"),
		has("RESUMEN", "TRANSACC"),
		has("DETALLE", "FONDO"),
	}.compile()

	incomeEndMarkers = keywordSet{
		has("HINWEISE ZUM KONTOAUSZUG"),
		has("NOTES TO ACCOUNT STATEMENT"),
		has("ACCOUNT STATEMENT NOTES"),
		has("NOTE ALL'ESTRATTO CONTO"),
		has("NOTAS", "EXTRACTO"),
		has("NOTAS SOBRE"),
	}.compile()
)

// Column labels of the cash ledger table.
var (
	cashHeaderKeywords = normalizeAll(
		"DATUM", "TYP", "BESCHREIBUNG", "ZAHLUNGSEINGANG", "ZAHLUNGSAUSGANG", "SALDO",
		"DATA", "TIPO", "DESCRIZIONE", "IN ENTRATA", "IN USCITA",
		"DATE", "TYPE", "DESCRIPTION", "MONEY", "IN", "OUT", "BALANCE",
		"FECHA", "DESCRIPCIÓN", "INGRESOS", "INGRESO", "EGRESOS", "EGRESO",
		"ABONOS", "CARGOS", "ENTRADA", "SALIDA", "IMPORTE", "MONTO",
	)

	cashDateLabels        = normalizeAll("DATUM", "DATA", "DATE", "FECHA")
	cashTypeLabels        = normalizeAll("TYP", "TIPO", "TYPE")
	cashDescriptionLabels = normalizeAll("BESCHREIBUNG", "DESCRIZIONE", "DESCRIPTION", "DESCRIPCIÓN")
	cashBalanceLabels     = normalizeAll("SALDO", "BALANCE")
	cashInLabels          = normalizeAll("ZAHLUNGSEINGANG", "IN ENTRATA", "INGRESOS", "INGRESO", "ENTRADA", "ENTRADA DE", "MONEY IN", "ABONOS")
	cashOutLabels         = normalizeAll("ZAHLUNGSAUSGANG", "IN USCITA", "EGRESOS", "EGRESO", "SALIDA", "SALIDA DE", "MONEY OUT", "CARGOS")

	// cashInOutPairs are the label pairs found together in a single merged
	// "in/out" header.
	cashInOutPairs = [][2]string{
		{"ZAHLUNGSEINGANG", "ZAHLUNGSAUSGANG"},
		{"IN ENTRATA", "IN USCITA"},
		{"MONEY IN", "MONEY OUT"},
		{"INGRESOS", "EGRESOS"},
		{"INGRESO", "EGRESO"},
		{"ENTRADA", "SALIDA"},
		{"ABONOS", "CARGOS"},
	}

	// cashSplitLabels are the in/out labels that the PDF may draw as two
	// separate words.
	cashSplitLabels = map[ColumnName][2]string{
		ColIn:  {"MONEY", "IN"},
		ColOut: {"MONEY", "OUT"},
	}
)

// Column labels of the income (money market fund) table.
var (
	incomeHeaderKeywords = normalizeAll(
		"DATUM", "ZAHLUNGSART", "GELDMARKTFONDS", "STÜCK", "STUECK", "KURS PRO STÜCK", "BETRAG",
		"FECHA", "TIPO", "FONDO", "FONDOS", "UNIDADES", "UNIDAD", "PRECIO", "IMPORTE", "MONTO",
		"DATE", "PAYMENT TYPE", "MONEY MARKET FUND", "QUANTITY", "PRICE PER UNIT", "AMOUNT",
	)

	incomeDateLabels     = normalizeAll("DATUM", "FECHA", "DATE", "DATA")
	incomeTypeLabels     = normalizeAll("ZAHLUNGSART", "TIPO", "TIPO DE PAGO", "PAYMENT TYPE")
	incomeFundLabels     = normalizeAll("GELDMARKTFONDS", "FONDO", "FONDOS", "FONDO DEL MERCADO MONETARIO", "MONEY MARKET FUND")
	incomeQuantityLabels = normalizeAll("STÜCK", "STUECK", "UNIDADES", "UNIDAD", "CANTIDAD", "QUANTITY")
	incomePriceLabels    = normalizeAll("KURS PRO STÜCK", "PRECIO POR UNIDAD", "PRECIO", "PRECIO/UNIDAD", "PRICE PER UNIT")
	incomeAmountLabels   = normalizeAll("BETRAG", "IMPORTE", "MONTO", "AMOUNT")
)

// monthNames maps lower case month names and abbreviations to months.
// Lookups fall back on the first three letters of the token.
var monthNames = map[string]time.Month{
	// es
	"ene": time.January, "enero": time.January, "feb": time.February, "febrero": time.February,
	"mar": time.March, "marzo": time.March, "abr": time.April, "abril": time.April,
	"may": time.May, "mayo": time.May, "jun": time.June, "junio": time.June,
	"jul": time.July, "julio": time.July, "ago": time.August, "agosto": time.August,
	"sep": time.September, "sept": time.September, "septiembre": time.September,
	"oct": time.October, "octubre": time.October, "nov": time.November, "noviembre": time.November,
	"dic": time.December, "diciembre": time.December,
	// en
	"jan": time.January, "january": time.January, "february": time.February, "march": time.March,
	"apr": time.April, "april": time.April, "june": time.June, "july": time.July,
	"aug": time.August, "august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "dec": time.December, "december": time.December,
	// de
	"januar": time.January, "februar": time.February, "mär": time.March, "märz": time.March,
	"mrz": time.March, "maerz": time.March, "mai": time.May, "juni": time.June, "juli": time.July,
	"okt": time.October, "oktober": time.October, "dez": time.December, "dezember": time.December,
	// it
	"gen": time.January, "gennaio": time.January, "febbraio": time.February, "aprile": time.April,
	"mag": time.May, "maggio": time.May, "giu": time.June, "giugno": time.June,
	"lug": time.July, "luglio": time.July, "set": time.September, "settembre": time.September,
	"ott": time.October, "ottobre": time.October, "novembre": time.November, "dicembre": time.December,
}

// kindNames maps normalized transaction type labels to kinds.
var kindNames = map[string]Kind{
	"OPERAR": KindTrade, "TRADE": KindTrade, "HANDEL": KindTrade, "COMMERCIO": KindTrade,
	"OPERACION": KindTrade, "OPERAZIONE": KindTrade,

	"INTERES": KindInterest, "INTERESES": KindInterest, "ZINSEN": KindInterest,
	"ZINSZAHLUNG": KindInterest, "INTEREST": KindInterest, "INTEREST PAYMENT": KindInterest,
	"INTERESSI": KindInterest,

	"RENTABILIDAD": KindDividend, "ERTRAG": KindDividend, "ERTRAGE": KindDividend,
	"DIVIDENDE": KindDividend, "DIVIDEND": KindDividend, "DIVIDENDO": KindDividend,
	"DIVIDENDOS": KindDividend, "EARNINGS": KindDividend, "PROVENTI": KindDividend,

	"BONIFICACION": KindBonus, "SAVEBACK": KindBonus, "PRAMIE": KindBonus,
	"BONUS": KindBonus, "REWARD": KindBonus,

	"TRANSFERENCIA": KindTransfer, "UBERWEISUNG": KindTransfer, "TRANSFER": KindTransfer,
	"BONIFICO": KindTransfer, "EINZAHLUNG": KindTransfer, "DEPOSIT": KindTransfer,
}

// actionPrefixes are the localized phrases that precede the instrument in
// trade descriptions. Longer phrases come first: the regexp alternation
// picks the first one that matches. A prefix only matches as whole words.
var actionPrefixes = []string{
	"Savings plan execution",
	"Sparplanausführung",
	"Ejecución Compra directa",
	"Ejecución Venta directa",
	"Ejecución de plan de inversión",
	"Ejecución Compra",
	"Ejecución Venta",
	"Buy trade",
	"Sell trade",
	"Ingreso aceptado:",
	"Ingreso aceptado",
	"Operación",
	"Operacion",
	"Ejecutar",
	"Compra directa",
	"Venta directa",
	"Operar",
	"Trade:",
	"Verkauf",
	"Kauf",
	"Acquisto",
	"Vendita",
	"Venta",
	"Compra",
	"Sell",
	"Buy",
}

// quantityKeywords introduce an explicit quantity in a description.
var quantityKeywords = []string{
	"quantity", "cantidad", "qty", "unidades", "unidad", "stück", "stueck", "quantità", "quantita",
}

// normalizeAll normalizes every label.
func normalizeAll(labels ...string) []string {
	res := make([]string, len(labels))
	for i, l := range labels {
		res[i] = normalizeText(l)
	}
	return res
}
