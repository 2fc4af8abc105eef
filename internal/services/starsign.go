package services

import "time"

type signRange struct {
	name       string
	month, day int // last day of the sign
}

// Ordered by end date within the year.
var signRanges = []signRange{
	{"Capricorn", 1, 19},
	{"Aquarius", 2, 18},
	{"Pisces", 3, 20},
	{"Aries", 4, 19},
	{"Taurus", 5, 20},
	{"Gemini", 6, 20},
	{"Cancer", 7, 22},
	{"Leo", 8, 22},
	{"Virgo", 9, 22},
	{"Libra", 10, 22},
	{"Scorpio", 11, 21},
	{"Sagittarius", 12, 21},
	{"Capricorn", 12, 31},
}

// StarSignForBirthday derives the zodiac sign from a YYYY-MM-DD birthday.
// Returns "" when the date does not parse.
func StarSignForBirthday(birthday string) string {
	t, err := time.Parse("2006-01-02", birthday)
	if err != nil {
		return ""
	}
	month, day := int(t.Month()), t.Day()
	for _, r := range signRanges {
		if month < r.month || (month == r.month && day <= r.day) {
			return r.name
		}
	}
	return ""
}
