package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Simplici0/farmyield/pkg/farm"
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatAmount formats v with two decimals and thousand separators.
// Example: FormatAmount(1234.5) returns "1,234.50".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return s
	}
	out := printer.Sprintf("%d", n)
	if n == 0 && strings.HasPrefix(intPart, "-") {
		out = "-" + out
	}
	return out + "." + frac
}

// WriteText renders r as an aligned table with one level column per
// dimension.
func WriteText(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	dims := farm.Dimensions()

	header := []string{"PLANT", "CROPS"}
	for _, d := range dims {
		header = append(header, strings.ToUpper(string(d)))
	}
	header = append(header, "YIELD", "COSTS", "REVENUE", "PROFIT")
	if err := writeCells(tw, header); err != nil {
		return err
	}

	for _, row := range r.Rows {
		cells := []string{row.Plant, printer.Sprintf("%d", row.NumCrops)}
		for _, d := range dims {
			cells = append(cells, levelOrDash(string(row.Level(d))))
		}
		cells = append(cells, FormatAmount(row.Yield))
		if row.Priced {
			cells = append(cells, FormatAmount(row.Costs), FormatAmount(row.Revenue), FormatAmount(row.Profit))
		} else {
			cells = append(cells, "-", "-", "-")
		}
		if err := writeCells(tw, cells); err != nil {
			return err
		}
	}

	totals := append([]string{"TOTAL", ""}, make([]string, len(dims))...)
	totals = append(totals,
		FormatAmount(r.Totals.Yield),
		FormatAmount(r.Totals.Costs),
		FormatAmount(r.Totals.Revenue),
		FormatAmount(r.Totals.Profit),
	)
	if err := writeCells(tw, totals); err != nil {
		return err
	}

	return tw.Flush()
}

func writeCells(w io.Writer, cells []string) error {
	_, err := fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	return err
}

// WriteJSON renders r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func levelOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
