package weights

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefault(t *testing.T) {
	w, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if len(w) != 103 {
		t.Fatalf("expected 103 elements, got %d", len(w))
	}

	tests := map[string][2]string{
		"C":  {"12.011", "12"},
		"H":  {"1.008", "1.00782503"},
		"O":  {"15.999", "15.9949146"},
		"Cl": {"35.45", "34.9688527"},
		"No": {"259", "259.10103"},
		"Y":  {"88.90584", "88.9058403"},
	}
	for sym, want := range tests {
		e, ok := w.Lookup(sym)
		if !ok {
			t.Fatalf("missing %s", sym)
		}
		if e.Standard.String() != want[0] || e.Abundant.String() != want[1] {
			t.Errorf("%s: expected %v, got %s %s", sym, want, e.Standard, e.Abundant)
		}
	}

	if _, ok := w.Lookup("c"); ok {
		t.Fatal("lookup must be case-sensitive")
	}
}

func TestLoadFileAndMerge(t *testing.T) {
	p := filepath.Join(t.TempDir(), "weights.yaml")
	data := "\"D\": {standard: \"2.014\", abundant: \"2.01410178\"}\n\"C\": {standard: \"12.0107(8)\", abundant: \"12.0000000\"}\n"
	if err := os.WriteFile(p, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if !o["C"].Standard.Equal(decimal.RequireFromString("12.0107")) {
		t.Fatalf("uncertainty not stripped: %s", o["C"].Standard)
	}

	base, _ := Default()
	w := Merge(base, o)
	if len(w) != len(base)+1 {
		t.Fatalf("expected %d elements, got %d", len(base)+1, len(w))
	}
	if !w["C"].Standard.Equal(decimal.RequireFromString("12.0107")) {
		t.Fatalf("override not applied: %s", w["C"].Standard)
	}
	if !base["C"].Standard.Equal(decimal.RequireFromString("12.011")) {
		t.Fatal("merge modified base")
	}
}

func TestLoadFileInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(p, []byte("\"C\": {standard: \"twelve\", abundant: \"12\"}\n"), 0644)
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected error")
	}
}

const page = `<html><body>
<table><tr><td>navigation</td></tr></table>
<table class="weights">
<tr><th>Z</th><th>Symbol</th><th>Standard atomic weight</th><th>Most abundant isotope</th></tr>
<tr><td>1</td><td>H</td><td>1.008</td><td>1.00782503</td></tr>
<tr><td>6</td><td><b>C</b></td><td>12.011(1)</td><td>12.0000000</td></tr>
<tr><td>43</td><td>Tc</td><td>[98]</td><td>97.9072124</td></tr>
<tr><td>?</td><td>Xx</td><td>unknown</td><td>-</td></tr>
</table>
</body></html>`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	w, err := Fetch(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if len(w) != 3 {
		t.Fatalf("expected 3 elements, got %d: %v", len(w), w.Symbols())
	}
	if !w["C"].Standard.Equal(decimal.RequireFromString("12.011")) {
		t.Fatalf("unexpected C: %s", w["C"].Standard)
	}
	if !w["Tc"].Standard.Equal(decimal.NewFromInt(98)) {
		t.Fatalf("unexpected Tc: %s", w["Tc"].Standard)
	}
}

func TestFetchNoTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><table><tr><td>nothing</td></tr></table></html>")
	}))
	defer srv.Close()

	_, err := Fetch(srv.URL)
	if !errors.As(err, &NoTableError{}) {
		t.Fatalf("expected NoTableError, got %v", err)
	}
}

func TestGetCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, page)
	}))

	dir := t.TempDir()
	first, err := Get(dir, srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	srv.Close()

	second, err := Get(dir, srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("expected 1 download, got %d", n)
	}
	if len(second) != len(first) || !second["H"].Abundant.Equal(first["H"].Abundant) {
		t.Fatalf("cache mismatch: %v vs %v", second.Symbols(), first.Symbols())
	}
	if _, err := os.Stat(filepath.Join(dir, CacheName(srv.URL))); err != nil {
		t.Fatal(err)
	}
}
