// Package catalogue implements the Portal-Period Catalogue Parser:
// it reads the portal's period-list page and yields the academic periods a
// harvest run can target.
package catalogue

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/univalle/workload-harvester/workload"
)

var labelPattern = regexp.MustCompile(`(\d{4})\s*[-\s]\s*0?([12])`)

// Parse scans html for <option value="id">...year-term...</option> entries,
// de-duplicates by period id, and returns them sorted (year desc, term
// desc). An empty result is always ErrCatalogueUnavailable: the caller must
// never fall back to a hardcoded period list.
func Parse(html string) ([]workload.PeriodDescriptor, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var out []workload.PeriodDescriptor

	doc.Find("option").Each(func(_ int, opt *goquery.Selection) {
		val, ok := opt.Attr("value")
		if !ok {
			return
		}
		id, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || seen[id] {
			return
		}

		label := strings.TrimSpace(opt.Text())
		m := labelPattern.FindStringSubmatch(label)
		if m == nil {
			return
		}
		year, _ := strconv.Atoi(m[1])
		term, _ := strconv.Atoi(m[2])

		seen[id] = true
		out = append(out, workload.PeriodDescriptor{
			PeriodID: id,
			Year: year,
			Term: term,
			Label: strconv.Itoa(year) + "-" + strconv.Itoa(term),
		})
	})

	if len(out) == 0 {
		return nil, workload.ErrCatalogueUnavailable
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Term > out[j].Term
	})

	return out, nil
}
