package employees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionScore(t *testing.T) {
	cases := []struct {
		name     string
		employee Employee
		want     float64
	}{
		{"empty profile", Employee{}, 0},
		{"one field", Employee{FirstName: "Jane"}, 20},
		{"two fields", Employee{FirstName: "Jane", LastName: "Doe"}, 40},
		{"whitespace does not count", Employee{FirstName: "   ", LastName: "Doe"}, 20},
		{"full profile", Employee{
			FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
			IDNumber: "8001015009087", JobTitle: "Engineer",
		}, 100},
		{"extras do not count", Employee{Phone: "555-0100", Department: "IT"}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CompletionScore(tc.employee))
		})
	}
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", Employee{FirstName: "Jane", LastName: "Doe"}.FullName())
	assert.Equal(t, "Jane", Employee{FirstName: "Jane"}.FullName())
	assert.Equal(t, "Doe", Employee{LastName: "Doe"}.FullName())
	assert.Equal(t, "jane@example.com", Employee{Email: "jane@example.com"}.FullName())
}
