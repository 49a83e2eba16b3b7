package dashboard

import (
	"sort"
	"strings"
	"time"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/employees"
)

// ChartData is a label/value pair series shaped for the dashboard's
// chart widgets.
type ChartData struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

const (
	otherCategory = "Other"
	topCategories = 3
	dayLabel      = "Jan 02"
	fallbackDays  = 7
)

// CategoryBreakdown reduces all skills to the three biggest categories
// plus an Other bucket holding everything else. Skills without a
// category count as Other from the start. The Other bucket always
// comes last, whatever its size.
func CategoryBreakdown(skills []employees.Skill) ChartData {
	counts := map[string]int{}
	other := 0
	for _, skill := range skills {
		category := strings.TrimSpace(skill.Category)
		if category == "" || strings.EqualFold(category, otherCategory) {
			other++
			continue
		}
		counts[category]++
	}

	type categoryCount struct {
		name  string
		count int
	}
	ranked := make([]categoryCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, categoryCount{name: name, count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})

	var data ChartData
	for i, c := range ranked {
		if i >= topCategories {
			other += c.count
			continue
		}
		data.Labels = append(data.Labels, c.name)
		data.Values = append(data.Values, c.count)
	}
	if other > 0 {
		data.Labels = append(data.Labels, otherCategory)
		data.Values = append(data.Values, other)
	}
	return data
}

// GrowthSeries turns skill-addition audit entries into a cumulative
// per-day series from the first addition through today. With no
// entries it renders a flat zero line for the past week so the chart
// never comes up empty.
func GrowthSeries(entries []audit.Entry, now time.Time) ChartData {
	today := day(now)

	if len(entries) == 0 {
		var data ChartData
		for d := today.AddDate(0, 0, -(fallbackDays - 1)); !d.After(today); d = d.AddDate(0, 0, 1) {
			data.Labels = append(data.Labels, d.Format(dayLabel))
			data.Values = append(data.Values, 0)
		}
		return data
	}

	perDay := map[time.Time]int{}
	first := today
	for _, entry := range entries {
		d := day(entry.CreatedAt)
		if d.After(today) {
			continue
		}
		perDay[d]++
		if d.Before(first) {
			first = d
		}
	}

	var data ChartData
	running := 0
	for d := first; !d.After(today); d = d.AddDate(0, 0, 1) {
		running += perDay[d]
		data.Labels = append(data.Labels, d.Format(dayLabel))
		data.Values = append(data.Values, running)
	}
	return data
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
