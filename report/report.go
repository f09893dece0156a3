// Package report renders a chem.Sample as a CHN analysis report.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/frizinak/chn/chem"
	"github.com/olekukonko/tablewriter"
)

const (
	DefaultFile = "chn_results.txt"
	TimeFormat  = "02-Jan-2006 03:04 PM"
)

type Row struct {
	Element      string
	Theoretical  string
	Experimental string
	Difference   string
}

type Report struct {
	Title string
	// Lines follow the title: sample name, formula, weights and exact mass.
	Lines []string
	// Experimental is set when at least one row has measured data.
	Experimental bool
	Rows         []Row
}

func New(s *chem.Sample, now time.Time) Report {
	r := Report{
		Title:        "CHN Analysis Report - " + now.Format(TimeFormat),
		Experimental: s.Percents.HasExperimental(),
	}

	r.Lines = append(r.Lines, s.Name, s.DisplayFormula())
	if s.Hydrated() {
		r.Lines = append(
			r.Lines,
			fmt.Sprintf("MW: %s (free)", s.MolecularWeight.StringFixed(2)),
			fmt.Sprintf("FW: %s", s.FormulaWeight.StringFixed(2)),
		)
	} else {
		r.Lines = append(r.Lines, fmt.Sprintf("MW: %s", s.MolecularWeight.StringFixed(2)))
	}
	r.Lines = append(r.Lines, fmt.Sprintf("Monoisotopic Mass: %s", s.ExactMass.StringFixed(5)))

	for _, e := range s.Percents.Symbols() {
		rec, _ := s.Percents.Get(e)
		row := Row{Element: e, Theoretical: rec.Theoretical.StringFixed(2)}
		if diff, ok := rec.Difference(); ok {
			row.Experimental = rec.Experimental.Decimal.StringFixed(2)
			row.Difference = diff.StringFixed(2)
		}
		r.Rows = append(r.Rows, row)
	}

	return r
}

func (r Report) Render(w io.Writer) error {
	buf := bytes.NewBuffer(make([]byte, 0, 1024))
	fmt.Fprintln(buf, r.Title)
	for _, l := range r.Lines {
		fmt.Fprintln(buf, l)
	}

	tab := tablewriter.NewWriter(buf)
	tab.SetAutoFormatHeaders(false)
	tab.SetAutoWrapText(false)
	if r.Experimental {
		tab.SetHeader([]string{"Element", "Theoretical Percentage", "Experimental", "Difference"})
	} else {
		tab.SetHeader([]string{"Element", "Theoretical Percentage"})
	}
	for _, row := range r.Rows {
		if r.Experimental {
			tab.Append([]string{row.Element, row.Theoretical, row.Experimental, row.Difference})
			continue
		}
		tab.Append([]string{row.Element, row.Theoretical})
	}
	tab.Render()

	_, err := buf.WriteTo(w)
	return err
}

// AppendFile appends a blank line and the rendered report to path.
func AppendFile(path string, r Report) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(f); err != nil {
		f.Close()
		return err
	}
	if err := r.Render(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
