package twitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContainsTicker(t *testing.T) {
	t.Run("detects cashtags", func(t *testing.T) {
		assert.True(t, ContainsTicker("What is the price of $AMZN?"))
		assert.True(t, ContainsTicker("How much is $WMT right now?"))
		assert.True(t, ContainsTicker("$A"))
	})

	t.Run("rejects text without a cashtag", func(t *testing.T) {
		assert.False(t, ContainsTicker("What is the price of amazon?"))
		assert.False(t, ContainsTicker("I have $100 to spend"))
		assert.False(t, ContainsTicker("$amzn is lowercase"))
		assert.False(t, ContainsTicker(""))
	})
}

func TestExtractTicker(t *testing.T) {
	testCases := []struct {
		text   string
		symbol string
	}{
		{"What is the price of $AMZN?", "AMZN"},
		{"How much is $WMT right now?", "WMT"},
		{"Price of $AMZN in 3 months.", "AMZN"},
		{"$TSLA vs $F, remind me", "TSLA"},
		{"no ticker here", ""},
	}
	for _, testCase := range testCases {
		t.Run(testCase.text, func(t *testing.T) {
			assert.Equal(t, testCase.symbol, ExtractTicker(testCase.text))
		})
	}
}

func TestContainsDateExpression(t *testing.T) {
	t.Run("detects relative date phrases", func(t *testing.T) {
		assert.True(t, ContainsDateExpression("Remind me of $AMZN in one year"))
		assert.True(t, ContainsDateExpression("Price of $AMZN in 3 months."))
		assert.True(t, ContainsDateExpression("check back in a week"))
		assert.True(t, ContainsDateExpression("IN 2 YEARS"))
	})

	t.Run("rejects text without a supported phrase", func(t *testing.T) {
		assert.False(t, ContainsDateExpression("Hello there!"))
		assert.False(t, ContainsDateExpression("remind me tomorrow"))
		assert.False(t, ContainsDateExpression("in a while"))
		assert.False(t, ContainsDateExpression("income yearly"))
	})
}

func TestResolveDueDate(t *testing.T) {
	now := time.Date(2020, 12, 13, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		text string
		due  time.Time
	}{
		{"in 3 days", time.Date(2020, 12, 16, 0, 0, 0, 0, time.UTC)},
		{"in one week", time.Date(2020, 12, 20, 0, 0, 0, 0, time.UTC)},
		{"in two months", time.Date(2021, 2, 13, 0, 0, 0, 0, time.UTC)},
		{"in 2 years", time.Date(2022, 12, 13, 0, 0, 0, 0, time.UTC)},
		{"Price of $AMZN in 3 months.", time.Date(2021, 3, 13, 0, 0, 0, 0, time.UTC)},
		{"remind me in a day", time.Date(2020, 12, 14, 0, 0, 0, 0, time.UTC)},
	}
	for _, testCase := range testCases {
		t.Run(testCase.text, func(t *testing.T) {
			due, ok := ResolveDueDate(testCase.text, now)
			assert.True(t, ok)
			assert.Equal(t, testCase.due, due)
		})
	}

	t.Run("fails closed on unsupported phrasing", func(t *testing.T) {
		_, ok := ResolveDueDate("in a year and a half", now)
		assert.False(t, ok)

		_, ok = ResolveDueDate("sometime soon", now)
		assert.False(t, ok)

		_, ok = ResolveDueDate("", now)
		assert.False(t, ok)
	})

	t.Run("is deterministic for a fixed now", func(t *testing.T) {
		first, _ := ResolveDueDate("in 3 days", now)
		second, _ := ResolveDueDate("in 3 days", now)
		assert.Equal(t, first, second)
	})
}

func TestDescribeElapsed(t *testing.T) {
	testCases := []struct {
		description string
		from        time.Time
		to          time.Time
		expected    string
	}{
		{"three calendar months", time.Date(2020, 10, 16, 0, 0, 0, 0, time.UTC), time.Date(2021, 1, 16, 0, 0, 0, 0, time.UTC), "3 months"},
		{"a single month", time.Date(2020, 12, 13, 0, 0, 0, 0, time.UTC), time.Date(2021, 1, 13, 0, 0, 0, 0, time.UTC), "1 month"},
		{"one week", time.Date(2020, 12, 13, 0, 0, 0, 0, time.UTC), time.Date(2020, 12, 20, 0, 0, 0, 0, time.UTC), "1 week"},
		{"three days", time.Date(2020, 12, 13, 0, 0, 0, 0, time.UTC), time.Date(2020, 12, 16, 0, 0, 0, 0, time.UTC), "3 days"},
		{"two years", time.Date(2020, 12, 13, 0, 0, 0, 0, time.UTC), time.Date(2022, 12, 13, 0, 0, 0, 0, time.UTC), "2 years"},
		{"ignores time of day", time.Date(2020, 12, 13, 23, 0, 0, 0, time.UTC), time.Date(2020, 12, 16, 1, 0, 0, 0, time.UTC), "3 days"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expected, DescribeElapsed(testCase.from, testCase.to))
		})
	}
}
