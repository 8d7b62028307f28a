package mobility

import (
	"sort"
)

// groupKey addresses one aggregated cell.
type groupKey struct {
	country  string
	year     int
	category Category
}

// Totals holds the summed episode minutes per (country, year, category).
// It is built once by Aggregate and read-only afterwards.
type Totals struct {
	minutes map[groupKey]float64
}

// Aggregate sums episode durations into (country, year, category) cells.
// Each category's filter runs independently over the full record set, so the
// AnyTravel total includes every qualifying record regardless of Walk or
// Bike membership. Groups with no matching records get no cell.
func Aggregate(records []ActivityRecord) *Totals {
	t := &Totals{minutes: make(map[groupKey]float64)}
	categories := []Category{CategoryWalk, CategoryBike, CategoryAnyTravel}
	for _, r := range records {
		for _, c := range categories {
			if matches(r, c) {
				t.minutes[groupKey{r.Country, r.Year, c}] += r.DurationMinutes
			}
		}
	}
	return t
}

// Get returns the total for a cell and whether the cell exists at all.
func (t *Totals) Get(country string, year int, category Category) (float64, bool) {
	v, ok := t.minutes[groupKey{country, year, category}]
	return v, ok
}

// Countries lists, sorted, every country with at least one AnyTravel cell.
// Countries with no travel denominator at all never enter the series stage.
func (t *Totals) Countries() []string {
	seen := make(map[string]bool)
	for k := range t.minutes {
		if k.category == CategoryAnyTravel {
			seen[k.country] = true
		}
	}
	countries := make([]string, 0, len(seen))
	for c := range seen {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries
}

// Years returns the sorted years with a cell for the country and category.
func (t *Totals) Years(country string, category Category) []int {
	var years []int
	for k := range t.minutes {
		if k.country == country && k.category == category {
			years = append(years, k.year)
		}
	}
	sort.Ints(years)
	return years
}

// Rows flattens the totals into sorted YearTotal rows for export and tests.
func (t *Totals) Rows() []YearTotal {
	rows := make([]YearTotal, 0, len(t.minutes))
	for k, v := range t.minutes {
		rows = append(rows, YearTotal{
			Country:      k.country,
			Year:         k.year,
			Category:     k.category,
			TotalMinutes: v,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Category < b.Category
	})
	return rows
}
