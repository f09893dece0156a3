package weights

import (
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/frizinak/chn/chem"
	"golang.org/x/net/html"
)

var safepathRE = regexp.MustCompile(`[^a-z0-9\._-]+`)

func init() {
	gob.Register(chem.Weights{})
}

type NoTableError struct{ url string }

func (n NoTableError) Error() string {
	return fmt.Sprintf("no atomic weight table at: '%s'", n.url)
}

// Get returns the table published at url, downloading it only when cacheDir
// holds no copy yet.
func Get(cacheDir, url string) (chem.Weights, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	cache := filepath.Join(cacheDir, CacheName(url))
	f, err := os.Open(cache)
	if err != nil {
		if os.IsNotExist(err) {
			w, err := Fetch(url)
			if err != nil {
				return nil, err
			}
			tmp := cache + ".tmp"
			f, err = os.Create(tmp)
			if err != nil {
				return nil, err
			}

			enc := gob.NewEncoder(f)
			if err := enc.Encode(w); err != nil {
				f.Close()
				os.Remove(tmp)
				return nil, err
			}
			f.Close()

			return w, os.Rename(tmp, cache)
		}
		return nil, err
	}

	defer f.Close()
	dec := gob.NewDecoder(f)
	w := make(chem.Weights)
	return w, dec.Decode(&w)
}

// CacheName is the file name Get caches url under.
func CacheName(url string) string {
	name := strings.Trim(safepathRE.ReplaceAllString(strings.ToLower(url), "-"), "-")
	if len(name) > 48 {
		name = name[len(name)-48:]
	}
	sum := sha1.Sum([]byte(url))
	return fmt.Sprintf("weights-%s-%s", name, hex.EncodeToString(sum[:4]))
}

// Fetch downloads url and reads the first html table with symbol, standard
// and abundant columns.
func Fetch(url string) (chem.Weights, error) {
	res, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	r := res.Body

	defer r.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, res.Status)
	}

	for _, tbl := range tables(r) {
		w := fromTable(tbl)
		if len(w) != 0 {
			return w, nil
		}
	}

	return nil, NoTableError{url: url}
}

func tables(r io.Reader) [][][]string {
	data := make([][][]string, 0)
	var rows [][]string
	var cell strings.Builder
	state := 0
	z := html.NewTokenizer(r)
outer:
	for {
		tt := z.Next()
		switch {
		case tt == html.ErrorToken:
			break outer
		case tt == html.StartTagToken:
			t := z.Token()
			switch {
			case t.Data == "table":
				rows = make([][]string, 0)
				state = 1
			case t.Data == "tr" && state != 0:
				rows = append(rows, make([]string, 0, 4))
				state = 2
			case (t.Data == "td" || t.Data == "th") && state >= 2:
				cell.Reset()
				state = 3
			}
		case tt == html.EndTagToken:
			t := z.Token()
			switch {
			case t.Data == "table" && state != 0:
				data = append(data, rows)
				state = 0
			case t.Data == "tr" && state >= 2:
				state = 1
			case (t.Data == "td" || t.Data == "th") && state == 3:
				rows[len(rows)-1] = append(rows[len(rows)-1], strings.TrimSpace(cell.String()))
				state = 2
			}
		case tt == html.TextToken:
			if state == 3 {
				cell.Write(z.Text())
			}
		}
	}

	return data
}

func fromTable(rows [][]string) chem.Weights {
	if len(rows) < 2 {
		return nil
	}

	sym, std, ab := -1, -1, -1
	for i, h := range rows[0] {
		h = strings.ToLower(h)
		switch {
		case strings.Contains(h, "symbol"):
			sym = i
		case strings.Contains(h, "standard"):
			std = i
		case strings.Contains(h, "abundant"):
			ab = i
		}
	}
	if sym < 0 || std < 0 || ab < 0 {
		return nil
	}

	w := make(chem.Weights, len(rows)-1)
	for _, r := range rows[1:] {
		if len(r) <= sym || len(r) <= std || len(r) <= ab {
			continue
		}
		s := strings.TrimSpace(r[sym])
		if s == "" {
			continue
		}
		el, err := element(r[std], r[ab])
		if err != nil {
			continue
		}
		w[s] = el
	}

	return w
}
