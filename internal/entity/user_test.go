package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAgeAt(t *testing.T) {
	cases := []struct {
		name      string
		birthdate string
		ref       string
		age       int
	}{
		{"birthday already passed this year", "2000-03-15", "2025-06-01", 25},
		{"birthday later this year", "2000-09-15", "2025-06-01", 24},
		{"on the birthday itself", "2007-06-01", "2025-06-01", 18},
		{"day before the 18th birthday", "2007-06-02", "2025-06-01", 17},
		{"born after the reference date", "2030-01-01", "2025-06-01", 0},
		{"unparseable birthdate fails closed", "not-a-date", "2025-06-01", 0},
		{"empty birthdate fails closed", "", "2025-06-01", 0},
		{"unparseable reference fails closed", "2000-01-01", "junk", 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			u := &User{Birthdate: c.birthdate}
			assert.Equal(t, c.age, u.AgeAt(c.ref))
		})
	}
}
