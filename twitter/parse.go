package twitter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// cashtag is a dollar sign immediately followed by uppercase letters
var tickerPattern = regexp.MustCompile(`\$([A-Z]+)`)

// Matches single-quantity, single-unit phrases like "in 3 days" or
// "in one week". Anything fancier ("in a year and a half") is deliberately
// not matched, so it reads as no date at all rather than a guess.
var datePattern = regexp.MustCompile(`(?i)\bin\s+(a|an|one|two|three|four|five|six|seven|eight|nine|ten|\d+)\s+(day|week|month|year)s?\b`)

// A unit followed by "and ..." means a compound span the parser does not
// support ("in a year and a half"). Those fail closed instead of resolving
// the leading phrase.
var compoundTail = regexp.MustCompile(`(?i)^\s+and\s+(a|an|half|one|two|three|four|five|six|seven|eight|nine|ten|\d+)\b`)

var numberWords = map[string]int{
	"a":     1,
	"an":    1,
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
	"eight": 8,
	"nine":  9,
	"ten":   10,
}

func ContainsTicker(text string) bool {
	return tickerPattern.MatchString(text)
}

// Returns the letters after the first cashtag in the text.
// Callers should check ContainsTicker first; returns "" if there is none.
func ExtractTicker(text string) string {
	matches := tickerPattern.FindStringSubmatch(text)
	if matches == nil {
		return ""
	}
	return matches[1]
}

func ContainsDateExpression(text string) bool {
	return datePattern.MatchString(text)
}

/*
Resolves a relative date phrase in the text against a fixed reference time.
Months and years shift the calendar month/year rather than adding a fixed
number of days, so "in two months" from 2020-12-13 lands on 2021-02-13.
The second return value is false when the text has no supported phrase.
*/
func ResolveDueDate(text string, now time.Time) (time.Time, bool) {
	loc := datePattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return time.Time{}, false
	}
	if compoundTail.MatchString(text[loc[1]:]) {
		return time.Time{}, false
	}
	matches := datePattern.FindStringSubmatch(text)

	quantity, ok := numberWords[strings.ToLower(matches[1])]
	if !ok {
		parsed, err := strconv.Atoi(matches[1])
		if err != nil {
			return time.Time{}, false
		}
		quantity = parsed
	}

	switch strings.ToLower(matches[2]) {
	case "day":
		return now.AddDate(0, 0, quantity), true
	case "week":
		return now.AddDate(0, 0, quantity*7), true
	case "month":
		return now.AddDate(0, quantity, 0), true
	case "year":
		return now.AddDate(quantity, 0, 0), true
	}
	return time.Time{}, false
}

/*
Describes the span between two dates as a single humanized unit, e.g.
"3 months" or "1 week". Used in the outcome reply ("3 months ago you
bought..."). Picks the largest unit that divides the span exactly on the
calendar, falling back to days.
*/
func DescribeElapsed(from, to time.Time) string {
	from = truncateToDate(from)
	to = truncateToDate(to)

	years := to.Year() - from.Year()
	if years > 0 && from.AddDate(years, 0, 0).Equal(to) {
		return pluralize(years, "year")
	}

	months := years*12 + int(to.Month()) - int(from.Month())
	if months > 0 && from.AddDate(0, months, 0).Equal(to) {
		return pluralize(months, "month")
	}

	days := int(to.Sub(from).Hours() / 24)
	if days >= 7 && days%7 == 0 {
		return pluralize(days/7, "week")
	}
	return pluralize(days, "day")
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func pluralize(quantity int, unit string) string {
	if quantity == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", quantity, unit)
}
