// Package codec converts between a flat sheet row and a Faktura record.
// Decoding is deliberately lenient: missing cells and unparseable numbers
// fall back to field defaults instead of erroring, because the sheet is
// edited by hand and partial rows are normal.
package codec

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/fakturio/faktury-api/internal/dates"
	"github.com/fakturio/faktury-api/internal/models"
	"github.com/fakturio/faktury-api/internal/schema"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// cell returns row[i] or "" when the row is shorter than i+1 cells.
// The Sheets API drops trailing empty cells, so short rows are expected.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// number parses a cell as a decimal, falling back to def on empty or
// unparseable input. Decimal commas occur in hand-edited cells.
func number(row []string, i int, def float64) float64 {
	s := strings.TrimSpace(cell(row, i))
	if s == "" {
		return def
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// Decode maps one sheet row onto a Faktura. It never fails.
func Decode(row []string) models.Faktura {
	return models.Faktura{
		Cislo:                   cell(row, schema.ColCislo),
		Typ:                     cell(row, schema.ColTyp),
		DatumVystavenia:         cell(row, schema.ColDatumVystavenia),
		DatumDodaniaObjednavky:  cell(row, schema.ColDatumDodaniaObjednavky),
		DatumDodania:            cell(row, schema.ColDatumDodania),
		DatumSplatnosti:         cell(row, schema.ColDatumSplatnosti),
		Partner:                 cell(row, schema.ColPartner),
		CisloPartnera:           cell(row, schema.ColCisloPartnera),
		Ulica:                   cell(row, schema.ColUlica),
		PSC:                     cell(row, schema.ColPSC),
		Mesto:                   cell(row, schema.ColMesto),
		KodKrajiny:              cell(row, schema.ColKodKrajiny),
		Krajina:                 cell(row, schema.ColKrajina),
		ICO:                     cell(row, schema.ColICO),
		DIC:                     cell(row, schema.ColDIC),
		ICDPH:                   cell(row, schema.ColICDPH),
		CelkomSDPH:              number(row, schema.ColCelkomSDPH, 0),
		CelkomBezDPH:            number(row, schema.ColCelkomBezDPH, 0),
		ZakladVyssiaSadzba:      number(row, schema.ColZakladVyssiaSadzba, 0),
		ZakladNizsiaSadzba:      number(row, schema.ColZakladNizsiaSadzba, 0),
		ZakladNulaSadzba:        number(row, schema.ColZakladNulaSadzba, 0),
		SadzbaDPHVyssia:         number(row, schema.ColSadzbaDPHVyssia, 20),
		SadzbaDPHNizsia:         number(row, schema.ColSadzbaDPHNizsia, 10),
		SumaDPHVyssia:           number(row, schema.ColSumaDPHVyssia, 0),
		SumaDPHNizsia:           number(row, schema.ColSumaDPHNizsia, 0),
		Mena:                    textDefault(cell(row, schema.ColMena), "EUR"),
		SposobUhrady:            cell(row, schema.ColSposobUhrady),
		Ucet:                    cell(row, schema.ColUcet),
		IBAN:                    cell(row, schema.ColIBAN),
		SWIFT:                   cell(row, schema.ColSWIFT),
		VariabilnySymbol:        cell(row, schema.ColVariabilnySymbol),
		SpecifickySymbol:        cell(row, schema.ColSpecifickySymbol),
		KonstantnySymbol:        cell(row, schema.ColKonstantnySymbol),
		CisloObjednavky:         cell(row, schema.ColCisloObjednavky),
		Firma:                   cell(row, schema.ColFirma),
		Vystavil:                cell(row, schema.ColVystavil),
		UhradeneZalohovou:       number(row, schema.ColUhradeneZalohovou, 0),
		UhradeneZalohovouBezDPH: number(row, schema.ColUhradeneZalohovouBezDPH, 0),
		CelkomBezZalohy:         number(row, schema.ColCelkomBezZalohy, 0),
		CelkomBezZalohyBezDPH:   number(row, schema.ColCelkomBezZalohyBezDPH, 0),
		ZostavaUhradit:          number(row, schema.ColZostavaUhradit, 0),
		DatumUhrady:             cell(row, schema.ColDatumUhrady),
		CisloDanDokladu:         cell(row, schema.ColCisloDanDokladu),
		InternaPoznamka:         cell(row, schema.ColInternaPoznamka),
		Kategoria:               cell(row, schema.ColKategoria),
		Podkategoria:            cell(row, schema.ColPodkategoria),
		CisloZakazky:            cell(row, schema.ColCisloZakazky),
		Stredisko:               cell(row, schema.ColStredisko),
		UvodnyText:              cell(row, schema.ColUvodnyText),
	}
}

func textDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func numDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Encode produces the full 49-cell row for a record. Zero values count as
// unset and receive their defaults, including the cross-field fallbacks
// (variable symbol from the invoice number, settlement amounts from the
// invoice totals). Encode never fails and always yields exactly 49 cells.
func Encode(f models.Faktura) []any {
	row := make([]any, schema.FieldCount())
	for i := range row {
		row[i] = ""
	}

	row[schema.ColCislo] = f.Cislo
	row[schema.ColTyp] = textDefault(f.Typ, "Faktúra - vydaná")
	row[schema.ColDatumVystavenia] = textDefault(f.DatumVystavenia, timeNow().Format(dates.Layout))
	row[schema.ColDatumDodaniaObjednavky] = f.DatumDodaniaObjednavky
	row[schema.ColDatumDodania] = f.DatumDodania
	row[schema.ColDatumSplatnosti] = f.DatumSplatnosti
	row[schema.ColPartner] = f.Partner
	row[schema.ColCisloPartnera] = f.CisloPartnera
	row[schema.ColUlica] = f.Ulica
	row[schema.ColPSC] = f.PSC
	row[schema.ColMesto] = f.Mesto
	row[schema.ColKodKrajiny] = textDefault(f.KodKrajiny, "SK")
	row[schema.ColKrajina] = textDefault(f.Krajina, "Slovensko")
	row[schema.ColICO] = f.ICO
	row[schema.ColDIC] = f.DIC
	row[schema.ColICDPH] = f.ICDPH
	row[schema.ColCelkomSDPH] = f.CelkomSDPH
	row[schema.ColCelkomBezDPH] = f.CelkomBezDPH
	row[schema.ColZakladVyssiaSadzba] = f.ZakladVyssiaSadzba
	row[schema.ColZakladNizsiaSadzba] = f.ZakladNizsiaSadzba
	row[schema.ColZakladNulaSadzba] = f.ZakladNulaSadzba
	row[schema.ColSadzbaDPHVyssia] = numDefault(f.SadzbaDPHVyssia, 20)
	row[schema.ColSadzbaDPHNizsia] = numDefault(f.SadzbaDPHNizsia, 10)
	row[schema.ColSumaDPHVyssia] = f.SumaDPHVyssia
	row[schema.ColSumaDPHNizsia] = f.SumaDPHNizsia
	row[schema.ColMena] = textDefault(f.Mena, "EUR")
	row[schema.ColSposobUhrady] = f.SposobUhrady
	row[schema.ColUcet] = f.Ucet
	row[schema.ColIBAN] = f.IBAN
	row[schema.ColSWIFT] = f.SWIFT
	row[schema.ColVariabilnySymbol] = textDefault(f.VariabilnySymbol, f.Cislo)
	row[schema.ColSpecifickySymbol] = f.SpecifickySymbol
	row[schema.ColKonstantnySymbol] = f.KonstantnySymbol
	row[schema.ColCisloObjednavky] = f.CisloObjednavky
	row[schema.ColFirma] = f.Firma
	row[schema.ColVystavil] = f.Vystavil
	row[schema.ColUhradeneZalohovou] = f.UhradeneZalohovou
	row[schema.ColUhradeneZalohovouBezDPH] = f.UhradeneZalohovouBezDPH
	row[schema.ColCelkomBezZalohy] = numDefault(f.CelkomBezZalohy, f.CelkomSDPH)
	row[schema.ColCelkomBezZalohyBezDPH] = numDefault(f.CelkomBezZalohyBezDPH, f.CelkomBezDPH)
	// A fresh invoice starts with the full gross amount outstanding, but a
	// recorded payment date means zero outstanding is real, not unset.
	if f.ZostavaUhradit == 0 && f.DatumUhrady == "" {
		row[schema.ColZostavaUhradit] = f.CelkomSDPH
	} else {
		row[schema.ColZostavaUhradit] = f.ZostavaUhradit
	}
	row[schema.ColDatumUhrady] = f.DatumUhrady
	row[schema.ColCisloDanDokladu] = f.CisloDanDokladu
	row[schema.ColInternaPoznamka] = f.InternaPoznamka
	row[schema.ColKategoria] = f.Kategoria
	row[schema.ColPodkategoria] = f.Podkategoria
	row[schema.ColCisloZakazky] = f.CisloZakazky
	row[schema.ColStredisko] = f.Stredisko
	row[schema.ColUvodnyText] = f.UvodnyText

	return row
}

// Merge overlays a request body onto an existing record. A key present in
// patch always wins, even with an empty value; absent keys keep the existing
// value. The invoice number is pinned to cislo so an update can never move a
// record under a different number. Unknown keys and wrong-typed values are
// tolerated: numbers are coerced, garbage degrades to the zero value.
func Merge(existing models.Faktura, patch map[string]any, cislo string) models.Faktura {
	base := map[string]any{}
	raw, _ := json.Marshal(existing)
	_ = json.Unmarshal(raw, &base)

	for k, v := range patch {
		if !schema.Known(k) {
			continue
		}
		if schema.KindOf(k) == schema.Number {
			base[k] = coerceFloat(v)
		} else {
			base[k] = coerceString(v)
		}
	}
	base["cislo"] = cislo

	var out models.Faktura
	raw, _ = json.Marshal(base)
	_ = json.Unmarshal(raw, &out)
	return out
}

// FromMap builds a new record from a request body, applying the same
// coercion rules as Merge.
func FromMap(patch map[string]any, cislo string) models.Faktura {
	return Merge(models.Faktura{}, patch, cislo)
}

func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", "."), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// CellString renders an encoded cell back to its textual sheet form.
// Used by stores that persist rows as text.
func CellString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}
