package view

import (
	"fmt"
	"time"
)

// FormatCurrency renders a dollar amount the way the table shows money.
func FormatCurrency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatRate renders a tax-rate fraction; zero components show as a dash.
func FormatRate(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.5f", v)
}

// FormatOrderDate turns an API timestamp ("2006-01-02 15:04:05") into the
// short date the table shows. Unparseable values pass through untouched.
func FormatOrderDate(ts string) string {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("01/02/2006")
		}
	}
	return ts
}
