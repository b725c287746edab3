package dates

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"05.3.2025", "2025-03-05", true},
		{"5.3.2025", "2025-03-05", true},
		{"15.12.2024", "2024-12-15", true},
		{"2025-03-05", "2025-03-05", true},
		{"not-a-date", "", false},
		{"", "", false},
		{"2025-3-5", "", false},
		{"05/03/2025", "", false},
	}
	for _, c := range cases {
		got, ok := Normalize(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("Normalize(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestDaysLate(t *testing.T) {
	if d, ok := DaysLate("2025-01-10", "2025-01-15"); !ok || d != 5 {
		t.Fatalf("expected 5 days late, got %d (ok=%v)", d, ok)
	}
	if d, ok := DaysLate("2025-01-10", "2025-01-10"); !ok || d != 0 {
		t.Fatalf("payment on due date should be on time, got %d (ok=%v)", d, ok)
	}
	if d, ok := DaysLate("2025-01-10", "2025-01-05"); !ok || d != 0 {
		t.Fatalf("early payment should be on time, got %d (ok=%v)", d, ok)
	}
	// Slovak form on either side normalizes before comparing.
	if d, ok := DaysLate("10.1.2025", "2025-01-15"); !ok || d != 5 {
		t.Fatalf("mixed formats: expected 5, got %d (ok=%v)", d, ok)
	}
	if _, ok := DaysLate("", "2025-01-15"); ok {
		t.Fatal("missing due date must not be evaluated")
	}
	if _, ok := DaysLate("2025-01-10", "garbage"); ok {
		t.Fatal("unparseable payment date must not be evaluated")
	}
}
