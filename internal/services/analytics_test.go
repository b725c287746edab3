package services

import (
	"context"
	"testing"
)

// seedRecords creates invoices through the normal Create/MarkPaid path so the
// analytics run over the same encoded rows the handlers would see.
func seedRecords(t *testing.T, svc *FakturyService, bodies []map[string]any) {
	t.Helper()
	ctx := context.Background()
	for _, b := range bodies {
		paidDate, _ := b["_uhradene"].(string)
		delete(b, "_uhradene")
		cislo, err := svc.Create(ctx, b)
		if err != nil {
			t.Fatalf("seed create: %v", err)
		}
		if paidDate != "" {
			if _, err := svc.MarkPaid(ctx, cislo, paidDate, ""); err != nil {
				t.Fatalf("seed mark paid: %v", err)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.005, 0.01},
		{-0.005, -0.01},
		{2.675, 2.67}, // 2.675 sits just below the midpoint in float64
		{1.0049, 1.0},
		{123.456, 123.46},
		{0, 0},
	}
	for _, c := range cases {
		if got := round2(c.in); got != c.want {
			t.Errorf("round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestStatistiky(t *testing.T) {
	fixedNow(t)
	svc := setupService(t)
	an := NewAnalyticsService(svc)
	seedRecords(t, svc, []map[string]any{
		{"partner": "ACME", "celkom_s_dph": 100.0, "_uhradene": "2025-05-10"},
		{"partner": "Beta", "celkom_s_dph": 50.0, "zostava_uhradit": 20.0},
	})

	st, err := an.Statistiky(context.Background())
	if err != nil {
		t.Fatalf("statistiky: %v", err)
	}
	if st.CelkovyPocet != 2 {
		t.Errorf("celkovy_pocet = %d, want 2", st.CelkovyPocet)
	}
	if st.CelkovaSuma != 150 {
		t.Errorf("celkova_suma = %v, want 150", st.CelkovaSuma)
	}
	// the paid figure is the gross amount, the unpaid figure is only what
	// is still outstanding
	if st.ZaplatenePocet != 1 || st.ZaplateneSuma != 100 {
		t.Errorf("zaplatene = %d/%v, want 1/100", st.ZaplatenePocet, st.ZaplateneSuma)
	}
	if st.NezaplatenePocet != 1 || st.NezaplateneSuma != 20 {
		t.Errorf("nezaplatene = %d/%v, want 1/20", st.NezaplatenePocet, st.NezaplateneSuma)
	}
	if st.Mena != "EUR" {
		t.Errorf("mena = %q", st.Mena)
	}
}

func TestStatistikyPaidPredicate(t *testing.T) {
	fixedNow(t)
	svc := setupService(t)
	an := NewAnalyticsService(svc)
	ctx := context.Background()
	// payment date but non-zero outstanding: still unpaid
	seedRecords(t, svc, []map[string]any{
		{"partner": "A", "celkom_s_dph": 100.0, "datum_uhrady": "2025-05-01", "zostava_uhradit": 30.0},
	})
	st, err := an.Statistiky(ctx)
	if err != nil {
		t.Fatalf("statistiky: %v", err)
	}
	if st.ZaplatenePocet != 0 || st.NezaplatenePocet != 1 {
		t.Fatalf("partial payment must count as unpaid: %+v", st)
	}
	if st.NezaplateneSuma != 30 {
		t.Fatalf("outstanding sum = %v, want 30", st.NezaplateneSuma)
	}
}

func TestFirmy(t *testing.T) {
	fixedNow(t)
	svc := setupService(t)
	an := NewAnalyticsService(svc)
	seedRecords(t, svc, []map[string]any{
		{"partner": "ACME", "celkom_s_dph": 100.0, "_uhradene": "2025-05-10"},
		{"partner": "ACME", "celkom_s_dph": 50.0, "zostava_uhradit": 50.0},
		{"partner": "Beta", "celkom_s_dph": 200.0},
		{"celkom_s_dph": 10.0},
	})

	firmy, err := an.Firmy(context.Background())
	if err != nil {
		t.Fatalf("firmy: %v", err)
	}
	if len(firmy) != 3 {
		t.Fatalf("expected 3 partners, got %d", len(firmy))
	}
	if firmy[0].Partner != "Beta" || firmy[0].CelkovaSuma != 200 {
		t.Errorf("sort by gross volume, got first %+v", firmy[0])
	}
	var acme FirmaStat
	for _, f := range firmy {
		if f.Partner == "ACME" {
			acme = f
		}
	}
	if acme.Pocet != 2 || acme.CelkovaSuma != 150 || acme.PriemernaSuma != 75 {
		t.Errorf("ACME aggregate: %+v", acme)
	}
	if acme.ZaplateneSuma != 100 || acme.NezaplateneSuma != 50 {
		t.Errorf("ACME paid/unpaid split: %+v", acme)
	}
	found := false
	for _, f := range firmy {
		if f.Partner == "Neznámy partner" {
			found = true
		}
	}
	if !found {
		t.Errorf("blank partner should group under Neznámy partner: %+v", firmy)
	}
}

func TestObchodnici(t *testing.T) {
	fixedNow(t)
	svc := setupService(t)
	an := NewAnalyticsService(svc)
	seedRecords(t, svc, []map[string]any{
		{"vystavil": "Jana", "partner": "ACME", "celkom_s_dph": 100.0},
		{"vystavil": "Jana", "partner": "ACME", "celkom_s_dph": 40.0},
		{"vystavil": "Jana", "partner": "Beta", "celkom_s_dph": 60.0},
		{"partner": "Gamma", "celkom_s_dph": 10.0},
	})

	obch, err := an.Obchodnici(context.Background())
	if err != nil {
		t.Fatalf("obchodnici: %v", err)
	}
	if len(obch) != 2 {
		t.Fatalf("expected 2 issuers, got %d", len(obch))
	}
	if obch[0].Vystavil != "Jana" {
		t.Fatalf("sort by volume, got %+v", obch[0])
	}
	if obch[0].Pocet != 3 || obch[0].PocetPartnerov != 2 {
		t.Errorf("Jana: pocet=%d partnerov=%d, want 3/2", obch[0].Pocet, obch[0].PocetPartnerov)
	}
	if obch[1].Vystavil != "Neuvedený" {
		t.Errorf("blank issuer label: %+v", obch[1])
	}
}

func TestMesacne(t *testing.T) {
	fixedNow(t)
	svc := setupService(t)
	an := NewAnalyticsService(svc)
	seedRecords(t, svc, []map[string]any{
		{"partner": "A", "datum_vystavenia": "2025-01-10", "celkom_s_dph": 100.0},
		{"partner": "B", "datum_vystavenia": "25.1.2025", "celkom_s_dph": 50.0},
		{"partner": "C", "datum_vystavenia": "2025-02-03", "celkom_s_dph": 70.0},
		{"partner": "D", "datum_vystavenia": "niekedy", "celkom_s_dph": 999.0},
	})

	mes, err := an.Mesacne(context.Background())
	if err != nil {
		t.Fatalf("mesacne: %v", err)
	}
	if len(mes) != 2 {
		t.Fatalf("unparseable issue dates must be excluded, got %d months", len(mes))
	}
	if mes[0].Mesiac != "2025-02" || mes[1].Mesiac != "2025-01" {
		t.Fatalf("most recent month first, got %q then %q", mes[0].Mesiac, mes[1].Mesiac)
	}
	jan := mes[1]
	if jan.Pocet != 2 || jan.CelkovaSuma != 150 || jan.PriemernaSuma != 75 {
		t.Errorf("january aggregate: %+v", jan)
	}
}

func TestSplatnost(t *testing.T) {
	fixedNow(t) // today = 2025-06-01
	svc := setupService(t)
	an := NewAnalyticsService(svc)
	seedRecords(t, svc, []map[string]any{
		// paid 5 days late
		{"partner": "A", "celkom_s_dph": 100.0, "datum_splatnosti": "2025-03-10", "_uhradene": "2025-03-15"},
		// paid early
		{"partner": "B", "celkom_s_dph": 50.0, "datum_splatnosti": "2025-03-10", "_uhradene": "2025-03-01"},
		// unpaid and overdue
		{"partner": "C", "celkom_s_dph": 80.0, "datum_splatnosti": "2025-05-20", "zostava_uhradit": 80.0},
		// unpaid but not yet due
		{"partner": "D", "celkom_s_dph": 40.0, "datum_splatnosti": "2025-07-01", "zostava_uhradit": 40.0},
		// no due date: evaluated nowhere
		{"partner": "E", "celkom_s_dph": 10.0},
	})

	sp, err := an.Splatnost(context.Background())
	if err != nil {
		t.Fatalf("splatnost: %v", err)
	}
	if sp.HodnotenePocet != 2 {
		t.Errorf("hodnotene_pocet = %d, want 2", sp.HodnotenePocet)
	}
	if sp.VcasPocet != 1 || sp.NeskoroPocet != 1 {
		t.Errorf("vcas/neskoro = %d/%d, want 1/1", sp.VcasPocet, sp.NeskoroPocet)
	}
	if sp.VcasPercento != 50 {
		t.Errorf("vcas_percento = %v, want 50", sp.VcasPercento)
	}
	if sp.PriemerDniNeskoro != 5 {
		t.Errorf("priemer_dni_neskoro = %v, want 5", sp.PriemerDniNeskoro)
	}
	if sp.PoSplatnostiPocet != 1 || sp.PoSplatnostiSuma != 80 {
		t.Errorf("po_splatnosti = %d/%v, want 1/80", sp.PoSplatnostiPocet, sp.PoSplatnostiSuma)
	}
}

func TestTopKlienti(t *testing.T) {
	fixedNow(t)
	svc := setupService(t)
	an := NewAnalyticsService(svc)
	seedRecords(t, svc, []map[string]any{
		{"partner": "A", "celkom_s_dph": 10.0},
		{"partner": "B", "celkom_s_dph": 300.0},
		{"partner": "C", "celkom_s_dph": 100.0},
		{"partner": "C", "celkom_s_dph": 150.0},
	})
	ctx := context.Background()

	top, err := an.TopKlienti(ctx, 2)
	if err != nil {
		t.Fatalf("top klienti: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("limit ignored, got %d", len(top))
	}
	if top[0].Partner != "B" || top[1].Partner != "C" {
		t.Fatalf("ranking: %+v", top)
	}
	if top[1].Pocet != 2 || top[1].CelkovaSuma != 250 || top[1].PriemernaSuma != 125 {
		t.Errorf("C aggregate: %+v", top[1])
	}

	// non-positive limit falls back to 10
	all, err := an.TopKlienti(ctx, 0)
	if err != nil {
		t.Fatalf("top klienti default: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("default limit should return all 3, got %d", len(all))
	}
}
