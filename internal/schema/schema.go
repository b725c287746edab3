// Package schema describes the fixed 49-column layout of the invoice sheet.
// Column positions are 0-based and match the production spreadsheet exactly;
// they are not configurable at runtime.
package schema

// Column positions (sheet columns A..AW).
const (
	ColCislo                   = 0  // A - Číslo
	ColTyp                     = 1  // B - Typ
	ColDatumVystavenia         = 2  // C - Dátum vystavenia
	ColDatumDodaniaObjednavky  = 3  // D - Dátum dodania objednávky
	ColDatumDodania            = 4  // E - Dátum dodania
	ColDatumSplatnosti         = 5  // F - Dátum splatnosti
	ColPartner                 = 6  // G - Partner
	ColCisloPartnera           = 7  // H - Číslo partnera
	ColUlica                   = 8  // I - Ulica
	ColPSC                     = 9  // J - PSČ
	ColMesto                   = 10 // K - Mesto
	ColKodKrajiny              = 11 // L - Kód krajiny
	ColKrajina                 = 12 // M - Krajina
	ColICO                     = 13 // N - IČO
	ColDIC                     = 14 // O - DIČ
	ColICDPH                   = 15 // P - IČ DPH
	ColCelkomSDPH              = 16 // Q - Celkom s DPH
	ColCelkomBezDPH            = 17 // R - Celkom bez DPH
	ColZakladVyssiaSadzba      = 18 // S - Základ - vyššia sadzba DPH
	ColZakladNizsiaSadzba      = 19 // T - Základ - nižšia sadzba DPH 2
	ColZakladNulaSadzba        = 20 // U - Základ - 0 sadzba DPH
	ColSadzbaDPHVyssia         = 21 // V - Sadzba DPH vyššia
	ColSadzbaDPHNizsia         = 22 // W - Sadzba DPH nižšia 2
	ColSumaDPHVyssia           = 23 // X - Suma DPH - vyššia
	ColSumaDPHNizsia           = 24 // Y - Suma DPH - nižšia 2
	ColMena                    = 25 // Z - Mena
	ColSposobUhrady            = 26 // AA - Spôsob úhrady
	ColUcet                    = 27 // AB - Účet
	ColIBAN                    = 28 // AC - IBAN
	ColSWIFT                   = 29 // AD - SWIFT
	ColVariabilnySymbol        = 30 // AE - Variabilný symbol
	ColSpecifickySymbol        = 31 // AF - Špecifický symbol
	ColKonstantnySymbol        = 32 // AG - Konštantný symbol
	ColCisloObjednavky         = 33 // AH - Číslo objednávky
	ColFirma                   = 34 // AI - Firma
	ColVystavil                = 35 // AJ - Vystavil
	ColUhradeneZalohovou       = 36 // AK - Uhradené zálohovou faktúrou
	ColUhradeneZalohovouBezDPH = 37 // AL - Uhradené zálohovou faktúrou bez DPH
	ColCelkomBezZalohy         = 38 // AM - Celkom bez uhradenej zálohy
	ColCelkomBezZalohyBezDPH   = 39 // AN - Celkom bez uhradenej zálohy bez DPH
	ColZostavaUhradit          = 40 // AO - Zostáva uhradiť
	ColDatumUhrady             = 41 // AP - Dátum úhrady
	ColCisloDanDokladu         = 42 // AQ - Číslo daň. dokladu k prijatej zálohe
	ColInternaPoznamka         = 43 // AR - Interná poznámka
	ColKategoria               = 44 // AS - Kategória
	ColPodkategoria            = 45 // AT - Podkategória
	ColCisloZakazky            = 46 // AU - Číslo zákazky
	ColStredisko               = 47 // AV - Stredisko
	ColUvodnyText              = 48 // AW - Úvodný text
)

// Kind is the semantic type of a column.
type Kind int

const (
	Text Kind = iota
	Number
)

// Field describes a single column of the sheet.
type Field struct {
	Name string // JSON field name used on the API surface
	Kind Kind
	Col  int
}

// fields is the authoritative ordered column list. Index == column position.
var fields = []Field{
	{"cislo", Text, ColCislo},
	{"typ", Text, ColTyp},
	{"datum_vystavenia", Text, ColDatumVystavenia},
	{"datum_dodania_objednavky", Text, ColDatumDodaniaObjednavky},
	{"datum_dodania", Text, ColDatumDodania},
	{"datum_splatnosti", Text, ColDatumSplatnosti},
	{"partner", Text, ColPartner},
	{"cislo_partnera", Text, ColCisloPartnera},
	{"ulica", Text, ColUlica},
	{"psc", Text, ColPSC},
	{"mesto", Text, ColMesto},
	{"kod_krajiny", Text, ColKodKrajiny},
	{"krajina", Text, ColKrajina},
	{"ico", Text, ColICO},
	{"dic", Text, ColDIC},
	{"ic_dph", Text, ColICDPH},
	{"celkom_s_dph", Number, ColCelkomSDPH},
	{"celkom_bez_dph", Number, ColCelkomBezDPH},
	{"zaklad_vyssia_sadzba", Number, ColZakladVyssiaSadzba},
	{"zaklad_nizsia_sadzba", Number, ColZakladNizsiaSadzba},
	{"zaklad_nula_sadzba", Number, ColZakladNulaSadzba},
	{"sadzba_dph_vyssia", Number, ColSadzbaDPHVyssia},
	{"sadzba_dph_nizsia", Number, ColSadzbaDPHNizsia},
	{"suma_dph_vyssia", Number, ColSumaDPHVyssia},
	{"suma_dph_nizsia", Number, ColSumaDPHNizsia},
	{"mena", Text, ColMena},
	{"sposob_uhrady", Text, ColSposobUhrady},
	{"ucet", Text, ColUcet},
	{"iban", Text, ColIBAN},
	{"swift", Text, ColSWIFT},
	{"variabilny_symbol", Text, ColVariabilnySymbol},
	{"specificky_symbol", Text, ColSpecifickySymbol},
	{"konstantny_symbol", Text, ColKonstantnySymbol},
	{"cislo_objednavky", Text, ColCisloObjednavky},
	{"firma", Text, ColFirma},
	{"vystavil", Text, ColVystavil},
	{"uhradene_zalohovou", Number, ColUhradeneZalohovou},
	{"uhradene_zalohovou_bez_dph", Number, ColUhradeneZalohovouBezDPH},
	{"celkom_bez_zalohy", Number, ColCelkomBezZalohy},
	{"celkom_bez_zalohy_bez_dph", Number, ColCelkomBezZalohyBezDPH},
	{"zostava_uhradit", Number, ColZostavaUhradit},
	{"datum_uhrady", Text, ColDatumUhrady},
	{"cislo_dan_dokladu", Text, ColCisloDanDokladu},
	{"interna_poznamka", Text, ColInternaPoznamka},
	{"kategoria", Text, ColKategoria},
	{"podkategoria", Text, ColPodkategoria},
	{"cislo_zakazky", Text, ColCisloZakazky},
	{"stredisko", Text, ColStredisko},
	{"uvodny_text", Text, ColUvodnyText},
}

var byName = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}()

// FieldCount returns the number of columns (49).
func FieldCount() int { return len(fields) }

// Fields returns the ordered column list.
func Fields() []Field { return fields }

// ColumnOf returns the 0-based column position of a field name,
// or -1 if the name is not part of the schema.
func ColumnOf(name string) int {
	f, ok := byName[name]
	if !ok {
		return -1
	}
	return f.Col
}

// KindOf returns the semantic type of a field name. Unknown names are Text.
func KindOf(name string) Kind { return byName[name].Kind }

// Known reports whether name is a schema field.
func Known(name string) bool {
	_, ok := byName[name]
	return ok
}

// HeaderRow returns the field names in column order, used to seed an empty
// backing table with a header row.
func HeaderRow() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}
