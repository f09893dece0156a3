package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/frizinak/chn/weights"
)

func testShell(t *testing.T, input string) (*shell, *bytes.Buffer) {
	t.Helper()
	table, err := weights.Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg := &Config{}
	cfg.defaults()

	out := bytes.NewBuffer(nil)
	sh := newShell(strings.NewReader(input), out, slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, table)
	sh.now = func() time.Time { return time.Date(2019, time.October, 30, 15, 10, 0, 0, time.UTC) }
	return sh, out
}

func TestSessionGlucose(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.txt")
	input := strings.Join([]string{
		"Glucose",
		// C H N O Cl F, then no other elements
		"6", "12", "", "6", "", "",
		"",
		"2", "39.9", "abc", "6.8",
		"3", "-1", "1",
		"4", file,
		"5",
	}, "\n") + "\n"

	sh, out := testShell(t, input)
	if err := sh.run(); err != nil {
		t.Fatal(err)
	}

	o := out.String()
	for _, want := range []string{
		"How many Carbons ? ",
		"C6H12O6\n",
		"MW: 180.16\n",
		"%C: ",
		"%H: ",
		"Please input a decimal number.",
		"Please input a non-negative number.",
		"C6H12O6 * 1H2O\n",
		"FW: 198.17\n",
		"Report appended to " + file,
		"Done.",
	} {
		if !strings.Contains(o, want) {
			t.Errorf("missing %q in output:\n%s", want, o)
		}
	}
	if strings.Contains(o, "%N: ") {
		t.Error("asked for nitrogen, which is not in the formula")
	}

	r, _ := sh.sample.Percents.Get("C")
	if r.Experimental.Decimal.String() != "39.9" || r.Theoretical.StringFixed(2) != "36.37" {
		t.Fatalf("unexpected carbon record %+v", r)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "FW: 198.17") || !strings.Contains(string(data), "Difference") {
		t.Fatalf("unexpected report file:\n%s", data)
	}
}

func TestSessionOtherElements(t *testing.T) {
	input := strings.Join([]string{
		"Salt",
		"", "", "", "", "1", "",
		"Y",
		"Xx",
		"Na", "x", "1",
		// more elements, empty symbol, finished
		"", "", "",
		"5",
	}, "\n") + "\n"

	sh, out := testShell(t, input)
	if err := sh.run(); err != nil {
		t.Fatal(err)
	}

	o := out.String()
	for _, want := range []string{
		"Symbol Xx not recognized",
		"How many Na ? ",
		"Please input a number.",
		"You entered nothing.",
		"ClNa\n",
		"MW: 58.44\n",
	} {
		if !strings.Contains(o, want) {
			t.Errorf("missing %q in output:\n%s", want, o)
		}
	}
	if sh.sample.Formula.Has("C") {
		t.Fatal("zero count carbon not pruned")
	}
}

func TestSessionEOF(t *testing.T) {
	sh, out := testShell(t, "Glucose\n6\n")
	if err := sh.run(); err != nil {
		t.Fatal(err)
	}
	if sh.sample != nil {
		t.Fatal("sample created from incomplete input")
	}
	if !strings.Contains(out.String(), "How many Hydrogens ? ") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSessionNewFormulaResets(t *testing.T) {
	input := strings.Join([]string{
		"Glucose", "6", "12", "", "6", "", "", "",
		"3", "2",
		"1",
		"Methane", "1", "4", "", "", "", "", "",
		"5",
	}, "\n") + "\n"

	sh, _ := testShell(t, input)
	if err := sh.run(); err != nil {
		t.Fatal(err)
	}
	if sh.sample.Name != "Methane" || sh.sample.Hydrated() {
		t.Fatalf("stale session state: %s %s", sh.sample.Name, sh.sample)
	}
	if sh.sample.DisplayFormula() != "CH4" {
		t.Fatalf("expected CH4, got %s", sh.sample.DisplayFormula())
	}
}
