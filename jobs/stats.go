package jobs

import "time"

// monthlyLimit is how many calendar months the dashboard chart shows.
const monthlyLimit = 6

// defaultStatsFrom shapes a status histogram into the fixed dashboard form.
// Every known status is reported even when zero; unknown status values in the
// input are ignored.
func defaultStatsFrom(counts map[string]int) DefaultStats {
	return DefaultStats{
		Pending:   counts[StatusPending],
		Interview: counts[StatusInterview],
		Declined:  counts[StatusDeclined],
	}
}

// monthlyApplicationsFrom shapes the newest-first month groups into a
// chart-ready series: reversed to read oldest-to-newest and labelled
// "Jan 2006". The input is already capped at monthlyLimit groups by the store
// query; the cap is re-applied here so the shape holds regardless of caller.
func monthlyApplicationsFrom(months []MonthCount) []MonthlyApplication {
	if len(months) > monthlyLimit {
		months = months[:monthlyLimit]
	}

	apps := make([]MonthlyApplication, 0, len(months))
	for i := len(months) - 1; i >= 0; i-- {
		mc := months[i]
		label := time.Date(mc.Year, time.Month(mc.Month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
		apps = append(apps, MonthlyApplication{Date: label, Count: mc.Count})
	}
	return apps
}
