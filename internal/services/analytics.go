package services

import (
	"context"
	"math"
	"sort"

	"github.com/fakturio/faktury-api/internal/dates"
)

// AnalyticsService computes the reporting breakdowns. Every call scans a
// fresh read of the full record set; there is no cache.
type AnalyticsService struct {
	faktury *FakturyService
}

func NewAnalyticsService(f *FakturyService) *AnalyticsService {
	return &AnalyticsService{faktury: f}
}

// round2 rounds to cents, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Statistiky are the overall totals. Paid invoices sum their gross amount,
// unpaid ones sum what remains outstanding; this asymmetry is intentional,
// the unpaid figure answers "how much money is still owed".
type Statistiky struct {
	CelkovyPocet     int     `json:"celkovy_pocet"`
	CelkovaSuma      float64 `json:"celkova_suma"`
	NezaplatenePocet int     `json:"nezaplatene_pocet"`
	NezaplateneSuma  float64 `json:"nezaplatene_suma"`
	ZaplatenePocet   int     `json:"zaplatene_pocet"`
	ZaplateneSuma    float64 `json:"zaplatene_suma"`
	Mena             string  `json:"mena"`
}

func (s *AnalyticsService) Statistiky(ctx context.Context) (Statistiky, error) {
	all, err := s.faktury.List(ctx)
	if err != nil {
		return Statistiky{}, err
	}
	out := Statistiky{Mena: "EUR", CelkovyPocet: len(all)}
	var celkova, zaplatene, nezaplatene float64
	for _, f := range all {
		celkova += f.CelkomSDPH
		if f.Zaplatena() {
			out.ZaplatenePocet++
			zaplatene += f.CelkomSDPH
		} else {
			out.NezaplatenePocet++
			nezaplatene += f.ZostavaUhradit
		}
	}
	out.CelkovaSuma = round2(celkova)
	out.ZaplateneSuma = round2(zaplatene)
	out.NezaplateneSuma = round2(nezaplatene)
	return out, nil
}

// FirmaStat is one partner's share of the invoice volume.
type FirmaStat struct {
	Partner         string  `json:"partner"`
	Pocet           int     `json:"pocet"`
	CelkovaSuma     float64 `json:"celkova_suma"`
	ZaplateneSuma   float64 `json:"zaplatene_suma"`
	NezaplateneSuma float64 `json:"nezaplatene_suma"`
	PriemernaSuma   float64 `json:"priemerna_suma"`
}

const neznamyPartner = "Neznámy partner"

// Firmy groups the record set by partner, descending by gross volume.
func (s *AnalyticsService) Firmy(ctx context.Context) ([]FirmaStat, error) {
	all, err := s.faktury.List(ctx)
	if err != nil {
		return nil, err
	}
	acc := map[string]*FirmaStat{}
	for _, f := range all {
		partner := f.Partner
		if partner == "" {
			partner = neznamyPartner
		}
		st, ok := acc[partner]
		if !ok {
			st = &FirmaStat{Partner: partner}
			acc[partner] = st
		}
		st.Pocet++
		st.CelkovaSuma += f.CelkomSDPH
		if f.Zaplatena() {
			st.ZaplateneSuma += f.CelkomSDPH
		} else {
			st.NezaplateneSuma += f.ZostavaUhradit
		}
	}
	out := make([]FirmaStat, 0, len(acc))
	for _, st := range acc {
		st.PriemernaSuma = round2(st.CelkovaSuma / float64(st.Pocet))
		st.CelkovaSuma = round2(st.CelkovaSuma)
		st.ZaplateneSuma = round2(st.ZaplateneSuma)
		st.NezaplateneSuma = round2(st.NezaplateneSuma)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CelkovaSuma > out[j].CelkovaSuma })
	return out, nil
}

// ObchodnikStat is one salesperson's share, with how many distinct partners
// they invoiced.
type ObchodnikStat struct {
	Vystavil        string  `json:"vystavil"`
	Pocet           int     `json:"pocet"`
	CelkovaSuma     float64 `json:"celkova_suma"`
	ZaplateneSuma   float64 `json:"zaplatene_suma"`
	NezaplateneSuma float64 `json:"nezaplatene_suma"`
	PocetPartnerov  int     `json:"pocet_partnerov"`
	PriemernaSuma   float64 `json:"priemerna_suma"`
}

// Obchodnici groups the record set by issuer, descending by gross volume.
func (s *AnalyticsService) Obchodnici(ctx context.Context) ([]ObchodnikStat, error) {
	all, err := s.faktury.List(ctx)
	if err != nil {
		return nil, err
	}
	type accRow struct {
		stat     ObchodnikStat
		partneri map[string]struct{}
	}
	acc := map[string]*accRow{}
	for _, f := range all {
		vystavil := f.Vystavil
		if vystavil == "" {
			vystavil = "Neuvedený"
		}
		row, ok := acc[vystavil]
		if !ok {
			row = &accRow{stat: ObchodnikStat{Vystavil: vystavil}, partneri: map[string]struct{}{}}
			acc[vystavil] = row
		}
		row.stat.Pocet++
		row.stat.CelkovaSuma += f.CelkomSDPH
		if f.Zaplatena() {
			row.stat.ZaplateneSuma += f.CelkomSDPH
		} else {
			row.stat.NezaplateneSuma += f.ZostavaUhradit
		}
		if f.Partner != "" {
			row.partneri[f.Partner] = struct{}{}
		}
	}
	out := make([]ObchodnikStat, 0, len(acc))
	for _, row := range acc {
		st := row.stat
		st.PocetPartnerov = len(row.partneri)
		st.PriemernaSuma = round2(st.CelkovaSuma / float64(st.Pocet))
		st.CelkovaSuma = round2(st.CelkovaSuma)
		st.ZaplateneSuma = round2(st.ZaplateneSuma)
		st.NezaplateneSuma = round2(st.NezaplateneSuma)
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CelkovaSuma > out[j].CelkovaSuma })
	return out, nil
}

// MesacnyStat is one calendar month of invoicing.
type MesacnyStat struct {
	Mesiac          string  `json:"mesiac"` // YYYY-MM
	Pocet           int     `json:"pocet"`
	CelkovaSuma     float64 `json:"celkova_suma"`
	ZaplateneSuma   float64 `json:"zaplatene_suma"`
	NezaplateneSuma float64 `json:"nezaplatene_suma"`
	PriemernaSuma   float64 `json:"priemerna_suma"`
}

// Mesacne groups by the year-month of the normalized issue date, most
// recent month first. Records whose issue date does not normalize are left
// out of this breakdown only.
func (s *AnalyticsService) Mesacne(ctx context.Context) ([]MesacnyStat, error) {
	all, err := s.faktury.List(ctx)
	if err != nil {
		return nil, err
	}
	acc := map[string]*MesacnyStat{}
	for _, f := range all {
		iso, ok := dates.Normalize(f.DatumVystavenia)
		if !ok || len(iso) < 7 {
			continue
		}
		mesiac := iso[:7]
		st, ok := acc[mesiac]
		if !ok {
			st = &MesacnyStat{Mesiac: mesiac}
			acc[mesiac] = st
		}
		st.Pocet++
		st.CelkovaSuma += f.CelkomSDPH
		if f.Zaplatena() {
			st.ZaplateneSuma += f.CelkomSDPH
		} else {
			st.NezaplateneSuma += f.ZostavaUhradit
		}
	}
	out := make([]MesacnyStat, 0, len(acc))
	for _, st := range acc {
		st.PriemernaSuma = round2(st.CelkovaSuma / float64(st.Pocet))
		st.CelkovaSuma = round2(st.CelkovaSuma)
		st.ZaplateneSuma = round2(st.ZaplateneSuma)
		st.NezaplateneSuma = round2(st.NezaplateneSuma)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mesiac > out[j].Mesiac })
	return out, nil
}

// Splatnost summarizes payment timeliness. The first half looks at settled
// invoices (both due date and payment date normalize), the second half at
// currently unpaid invoices already past due.
type Splatnost struct {
	HodnotenePocet    int     `json:"hodnotene_pocet"`
	VcasPocet         int     `json:"vcas_pocet"`
	NeskoroPocet      int     `json:"neskoro_pocet"`
	VcasPercento      float64 `json:"vcas_percento"`
	PriemerDniNeskoro float64 `json:"priemer_dni_neskoro"`
	PoSplatnostiPocet int     `json:"po_splatnosti_pocet"`
	PoSplatnostiSuma  float64 `json:"po_splatnosti_suma"`
}

func (s *AnalyticsService) Splatnost(ctx context.Context) (Splatnost, error) {
	all, err := s.faktury.List(ctx)
	if err != nil {
		return Splatnost{}, err
	}
	var out Splatnost
	var dniNeskoro int
	dnes := timeNow().Format(dates.Layout)
	var poSplatnostiSuma float64
	for _, f := range all {
		if late, ok := dates.DaysLate(f.DatumSplatnosti, f.DatumUhrady); ok {
			out.HodnotenePocet++
			if late == 0 {
				out.VcasPocet++
			} else {
				out.NeskoroPocet++
				dniNeskoro += late
			}
		}
		if !f.Zaplatena() {
			if iso, ok := dates.Normalize(f.DatumSplatnosti); ok && iso < dnes {
				out.PoSplatnostiPocet++
				poSplatnostiSuma += f.ZostavaUhradit
			}
		}
	}
	if out.HodnotenePocet > 0 {
		out.VcasPercento = round2(float64(out.VcasPocet) / float64(out.HodnotenePocet) * 100)
	}
	if out.NeskoroPocet > 0 {
		out.PriemerDniNeskoro = round2(float64(dniNeskoro) / float64(out.NeskoroPocet))
	}
	out.PoSplatnostiSuma = round2(poSplatnostiSuma)
	return out, nil
}

// TopKlient is one row of the top-N clients ranking.
type TopKlient struct {
	Partner       string  `json:"partner"`
	Pocet         int     `json:"pocet"`
	CelkovaSuma   float64 `json:"celkova_suma"`
	PriemernaSuma float64 `json:"priemerna_suma"`
}

// TopKlienti ranks partners by gross volume and truncates to limit
// (10 when limit is not positive).
func (s *AnalyticsService) TopKlienti(ctx context.Context, limit int) ([]TopKlient, error) {
	if limit <= 0 {
		limit = 10
	}
	all, err := s.faktury.List(ctx)
	if err != nil {
		return nil, err
	}
	acc := map[string]*TopKlient{}
	for _, f := range all {
		partner := f.Partner
		if partner == "" {
			partner = neznamyPartner
		}
		st, ok := acc[partner]
		if !ok {
			st = &TopKlient{Partner: partner}
			acc[partner] = st
		}
		st.Pocet++
		st.CelkovaSuma += f.CelkomSDPH
	}
	out := make([]TopKlient, 0, len(acc))
	for _, st := range acc {
		st.PriemernaSuma = round2(st.CelkovaSuma / float64(st.Pocet))
		st.CelkovaSuma = round2(st.CelkovaSuma)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CelkovaSuma > out[j].CelkovaSuma })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
