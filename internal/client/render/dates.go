package render

import (
	"fmt"
	"time"
)

var frMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatRelativeDate renders a last-activity timestamp the way the list UI
// shows it: "Aujourd'hui", "Hier", "Il y a N jours" under a week,
// "Il y a W semaine(s)" under a month, then a plain calendar date. Elapsed
// days are the floored absolute difference between now and the timestamp.
func FormatRelativeDate(ts, now time.Time) string {
	diff := now.Sub(ts)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff / (24 * time.Hour))

	switch {
	case days == 0:
		return "Aujourd'hui"
	case days == 1:
		return "Hier"
	case days < 7:
		return fmt.Sprintf("Il y a %d jours", days)
	case days < 30:
		weeks := days / 7
		if weeks > 1 {
			return fmt.Sprintf("Il y a %d semaines", weeks)
		}
		return fmt.Sprintf("Il y a %d semaine", weeks)
	default:
		return FormatShortDateFR(ts)
	}
}

// FormatShortDateFR renders a date in the French dd/mm/yyyy form.
func FormatShortDateFR(ts time.Time) string {
	return ts.Format("02/01/2006")
}

// FormatLongDateFR renders a date as "02 janvier 2006", used as the
// prescription subtitle when no doctor name is known.
func FormatLongDateFR(ts time.Time) string {
	return fmt.Sprintf("%02d %s %d", ts.Day(), frMonths[ts.Month()-1], ts.Year())
}
