package employees

import "strings"

// CompletionScore rates how complete a profile is, as a percentage.
// Five fields count: first name, last name, email, ID number and job
// title. Each filled field is worth an equal share; whitespace-only
// values do not count.
func CompletionScore(e Employee) float64 {
	fields := []string{e.FirstName, e.LastName, e.Email, e.IDNumber, e.JobTitle}

	filled := 0
	for _, field := range fields {
		if strings.TrimSpace(field) != "" {
			filled++
		}
	}
	return float64(filled) / float64(len(fields)) * 100
}
