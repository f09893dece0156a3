package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/frizinak/chn/chem"
	"github.com/frizinak/chn/report"
)

var elementNames = map[string]string{
	"C":  "Carbons",
	"H":  "Hydrogens",
	"N":  "Nitrogens",
	"O":  "Oxygens",
	"Cl": "Chlorines",
	"F":  "Fluorines",
	"S":  "Sulfurs",
	"P":  "Phosphorus",
	"Br": "Bromines",
	"I":  "Iodines",
}

func elementName(sym string) string {
	if n, ok := elementNames[sym]; ok {
		return n
	}
	return sym
}

type shell struct {
	in    *bufio.Reader
	out   io.Writer
	log   *slog.Logger
	cfg   *Config
	table chem.Table
	now   func() time.Time
	rule  int

	sample *chem.Sample
}

func newShell(in io.Reader, out io.Writer, log *slog.Logger, cfg *Config, table chem.Table) *shell {
	return &shell{
		in:    bufio.NewReader(in),
		out:   out,
		log:   log,
		cfg:   cfg,
		table: table,
		now:   time.Now,
		rule:  maxRule,
	}
}

// prompt returns io.EOF once input is exhausted.
func (sh *shell) prompt(q string) (string, error) {
	fmt.Fprint(sh.out, q)
	line, err := sh.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		fmt.Fprintln(sh.out)
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func yes(answer string, def bool) bool {
	if answer == "" {
		return def
	}
	return strings.ToUpper(answer)[0] == 'Y'
}

func (sh *shell) run() error {
	fmt.Fprintln(sh.out, "Welcome to the CHN Program for Elemental Analysis")
	fmt.Fprintln(sh.out)

	choice := "1"
	for {
		var err error
		switch choice {
		case "1":
			err = sh.newFormula()
		case "2":
			err = sh.experimental()
		case "3":
			err = sh.hydrate()
		case "4":
			err = sh.printFile()
		case "5":
			fmt.Fprintln(sh.out, "Done.")
			return nil
		default:
			fmt.Fprintf(sh.out, "Unknown option '%s'\n", choice)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		sh.menu()
		choice, err = sh.prompt("Input a menu option number : ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (sh *shell) menu() {
	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, strings.Repeat("-", sh.rule))
	fmt.Fprintln(sh.out, "1)Enter new MF\n2)Enter experimental data\n3)Add Water of hydration\n4)Print to file\n5)Exit Program")
}

func (sh *shell) show() error {
	fmt.Fprintln(sh.out)
	return report.New(sh.sample, sh.now()).Render(sh.out)
}

func (sh *shell) newFormula() error {
	name, err := sh.prompt("Sample Name: ")
	if err != nil {
		return err
	}

	f, err := sh.inputFormula()
	if err != nil {
		return err
	}

	s, err := chem.NewSample(sh.table, name, f)
	if err != nil {
		return err
	}
	sh.sample = s
	sh.log.Debug("new sample", "name", name, "sample", s.String())

	return sh.show()
}

func (sh *shell) inputFormula() (chem.Formula, error) {
	f := chem.NewFormula()
	fmt.Fprintln(sh.out, "Molecular formula Input")

	count := func(q, retry string) (int64, error) {
		for {
			str, err := sh.prompt(q)
			if err != nil {
				return 0, err
			}
			n, err := chem.ParseCount(str)
			if err != nil {
				sh.log.Debug("count", "error", err)
				fmt.Fprintln(sh.out, retry)
				continue
			}
			return n, nil
		}
	}

	for _, sym := range sh.cfg.CommonElements {
		n, err := count(fmt.Sprintf("How many %s ? ", elementName(sym)), "Please input a number, or leave blank")
		if err != nil {
			return f, err
		}
		f.SetInt(sym, n)
	}

	res, err := sh.prompt("Other Elements? [N] ")
	if err != nil {
		return f, err
	}
	more := yes(res, false)
	for more {
		sym, err := sh.prompt("Please input element symbol : ")
		if err != nil {
			return f, err
		}
		if sym == "" {
			res, err := sh.prompt("You entered nothing.  Are you finished? [Y] ")
			if err != nil {
				return f, err
			}
			more = !yes(res, true)
			continue
		}

		if _, ok := sh.table.Lookup(sym); !ok {
			sh.log.Debug("symbol", "error", chem.UnknownElementError{Symbol: sym})
			fmt.Fprintf(sh.out, "Symbol %s not recognized\n", sym)
			continue
		}

		n, err := count(fmt.Sprintf("How many %s ? ", sym), "Please input a number.")
		if err != nil {
			return f, err
		}
		f.SetInt(sym, n)

		res, err := sh.prompt("More Elements? [Y] ")
		if err != nil {
			return f, err
		}
		more = yes(res, true)
	}

	f.Prune()
	return f, nil
}

func (sh *shell) experimental() error {
	elements := sh.sample.CombustionElements(sh.cfg.CombustionElements)
	if len(elements) == 0 {
		fmt.Fprintf(sh.out, "None of %s in %s\n", strings.Join(sh.cfg.CombustionElements, ", "), sh.sample.Formula)
		return nil
	}

	fmt.Fprintln(sh.out, "Enter experimental determined percentages")
	for _, e := range elements {
		for {
			str, err := sh.prompt("%" + e + ": ")
			if err != nil {
				return err
			}
			pct, err := chem.ParsePercent(str)
			if err == nil {
				err = sh.sample.SetExperimental(e, pct)
			}
			if err != nil {
				sh.log.Debug("percentage", "element", e, "error", err)
				fmt.Fprintln(sh.out, "Please input a decimal number.")
				continue
			}
			break
		}
	}

	return sh.show()
}

func (sh *shell) hydrate() error {
	for {
		str, err := sh.prompt("Molar Ratio : ")
		if err != nil {
			return err
		}
		ratio, err := chem.ParseRatio(str)
		if err == nil {
			err = sh.sample.Hydrate(ratio)
		}
		if err != nil {
			var num chem.InvalidNumericInputError
			if !errors.As(err, &num) {
				return err
			}
			sh.log.Debug("ratio", "error", err)
			fmt.Fprintln(sh.out, "Please input a non-negative number.")
			continue
		}
		break
	}

	return sh.show()
}

func (sh *shell) printFile() error {
	filename, err := sh.prompt(fmt.Sprintf("Filename: [%s] ", sh.cfg.ReportFile))
	if err != nil {
		return err
	}
	if filename == "" {
		filename = sh.cfg.ReportFile
	}

	if err := report.AppendFile(filename, report.New(sh.sample, sh.now())); err != nil {
		sh.log.Error("report", "file", filename, "error", err)
		fmt.Fprintf(sh.out, "Could not write %s: %v\n", filename, err)
		return nil
	}

	sh.log.Info("report appended", "file", filename, "sample", sh.sample.Name)
	fmt.Fprintf(sh.out, "Report appended to %s\n", filename)
	return nil
}
