// Package models holds the invoice record as exposed on the API surface.
package models

// Faktura is one invoice record, one sheet row. Field names mirror the
// spreadsheet columns; dates are kept as text because the sheet stores them
// in either ISO (2025-03-05) or Slovak (5.3.2025) form.
type Faktura struct {
	Cislo                   string  `json:"cislo"`
	Typ                     string  `json:"typ"`
	DatumVystavenia         string  `json:"datum_vystavenia"`
	DatumDodaniaObjednavky  string  `json:"datum_dodania_objednavky"`
	DatumDodania            string  `json:"datum_dodania"`
	DatumSplatnosti         string  `json:"datum_splatnosti"`
	Partner                 string  `json:"partner"`
	CisloPartnera           string  `json:"cislo_partnera"`
	Ulica                   string  `json:"ulica"`
	PSC                     string  `json:"psc"`
	Mesto                   string  `json:"mesto"`
	KodKrajiny              string  `json:"kod_krajiny"`
	Krajina                 string  `json:"krajina"`
	ICO                     string  `json:"ico"`
	DIC                     string  `json:"dic"`
	ICDPH                   string  `json:"ic_dph"`
	CelkomSDPH              float64 `json:"celkom_s_dph"`
	CelkomBezDPH            float64 `json:"celkom_bez_dph"`
	ZakladVyssiaSadzba      float64 `json:"zaklad_vyssia_sadzba"`
	ZakladNizsiaSadzba      float64 `json:"zaklad_nizsia_sadzba"`
	ZakladNulaSadzba        float64 `json:"zaklad_nula_sadzba"`
	SadzbaDPHVyssia         float64 `json:"sadzba_dph_vyssia"`
	SadzbaDPHNizsia         float64 `json:"sadzba_dph_nizsia"`
	SumaDPHVyssia           float64 `json:"suma_dph_vyssia"`
	SumaDPHNizsia           float64 `json:"suma_dph_nizsia"`
	Mena                    string  `json:"mena"`
	SposobUhrady            string  `json:"sposob_uhrady"`
	Ucet                    string  `json:"ucet"`
	IBAN                    string  `json:"iban"`
	SWIFT                   string  `json:"swift"`
	VariabilnySymbol        string  `json:"variabilny_symbol"`
	SpecifickySymbol        string  `json:"specificky_symbol"`
	KonstantnySymbol        string  `json:"konstantny_symbol"`
	CisloObjednavky         string  `json:"cislo_objednavky"`
	Firma                   string  `json:"firma"`
	Vystavil                string  `json:"vystavil"`
	UhradeneZalohovou       float64 `json:"uhradene_zalohovou"`
	UhradeneZalohovouBezDPH float64 `json:"uhradene_zalohovou_bez_dph"`
	CelkomBezZalohy         float64 `json:"celkom_bez_zalohy"`
	CelkomBezZalohyBezDPH   float64 `json:"celkom_bez_zalohy_bez_dph"`
	ZostavaUhradit          float64 `json:"zostava_uhradit"`
	DatumUhrady             string  `json:"datum_uhrady"`
	CisloDanDokladu         string  `json:"cislo_dan_dokladu"`
	InternaPoznamka         string  `json:"interna_poznamka"`
	Kategoria               string  `json:"kategoria"`
	Podkategoria            string  `json:"podkategoria"`
	CisloZakazky            string  `json:"cislo_zakazky"`
	Stredisko               string  `json:"stredisko"`
	UvodnyText              string  `json:"uvodny_text"`
}

// Zaplatena reports whether the invoice counts as paid: a payment date is
// recorded and nothing remains outstanding. A payment date alone is not
// enough.
func (f Faktura) Zaplatena() bool {
	return f.DatumUhrady != "" && f.ZostavaUhradit == 0
}
