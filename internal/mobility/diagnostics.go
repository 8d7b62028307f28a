package mobility

import (
	"fmt"
	"sort"
)

// DiagnosticCode identifies the kind of non-fatal condition raised by the
// pipeline. All codes are row- or group-scoped; none abort a run.
type DiagnosticCode string

const (
	// DiagDataAbsence flags a country with zero records for a category.
	DiagDataAbsence DiagnosticCode = "DATA_ABSENCE"
	// DiagInsufficientHistory flags a country with too few survey years.
	DiagInsufficientHistory DiagnosticCode = "INSUFFICIENT_HISTORY"
	// DiagDegenerateDenominator flags a retained year whose all-modes
	// total is zero. This violates the series builder's construction and
	// the row is dropped rather than coerced to NaN.
	DiagDegenerateDenominator DiagnosticCode = "DEGENERATE_DENOMINATOR"
	// DiagInsufficientPoints flags a (country, category) group left with
	// fewer than two points after exclusions; the group is omitted from
	// the trend table.
	DiagInsufficientPoints DiagnosticCode = "INSUFFICIENT_POINTS_FOR_FIT"
)

// Severity classifies how a diagnostic should be treated by callers.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is one structured, scope-tagged message accumulated during a
// pipeline run and returned alongside the result tables. Category and Year
// are empty/zero when the scope is the whole country.
type Diagnostic struct {
	Code     DiagnosticCode `json:"code"`
	Severity Severity       `json:"severity"`
	Country  string         `json:"country"`
	Category string         `json:"category,omitempty"`
	Year     int            `json:"year,omitempty"`
	Message  string         `json:"message"`
}

// Scope renders the diagnostic's scope as a compact key for logs and reports.
func (d Diagnostic) Scope() string {
	scope := d.Country
	if d.Category != "" {
		scope += ":" + d.Category
	}
	if d.Year != 0 {
		scope += fmt.Sprintf("@%d", d.Year)
	}
	return scope
}

func newDataAbsence(country string, category Category) Diagnostic {
	return Diagnostic{
		Code:     DiagDataAbsence,
		Severity: SeverityWarning,
		Country:  country,
		Category: category.String(),
		Message:  fmt.Sprintf("no %s records for %s; shares default to 0", category, country),
	}
}

func newInsufficientHistory(country string, years, minimum int) Diagnostic {
	return Diagnostic{
		Code:     DiagInsufficientHistory,
		Severity: SeverityWarning,
		Country:  country,
		Message:  fmt.Sprintf("%s has %d survey years, below the %d needed for a reliable trend", country, years, minimum),
	}
}

func newDegenerateDenominator(country string, year int) Diagnostic {
	return Diagnostic{
		Code:     DiagDegenerateDenominator,
		Severity: SeverityError,
		Country:  country,
		Year:     year,
		Message:  fmt.Sprintf("all-modes total for %s in %d is zero; row dropped", country, year),
	}
}

func newInsufficientPoints(country string, category Category, points int) Diagnostic {
	return Diagnostic{
		Code:     DiagInsufficientPoints,
		Severity: SeverityWarning,
		Country:  country,
		Category: category.String(),
		Message:  fmt.Sprintf("%s %s has %d points after exclusions, need at least 2 to fit", country, category, points),
	}
}

// sortDiagnostics orders diagnostics for deterministic output:
// country, then category, then year, then code.
func sortDiagnostics(diags []Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Code < b.Code
	})
}
