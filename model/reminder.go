package model

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stonksbot/stonksbot/database/db"
)

// A pending return-tracking request. The bot replies to TweetID on the
// DueOn date comparing the price then against PurchasePrice.
type Reminder struct {
	ID            string
	UserName      string
	TweetID       string
	CreatedOn     time.Time
	DueOn         time.Time
	Ticker        string
	PurchasePrice decimal.Decimal
}

func ReminderFromRow(row db.Reminder) (*Reminder, error) {
	price, err := decimal.NewFromString(row.PurchasePrice)
	if err != nil {
		return nil, err
	}
	return &Reminder{
		ID:            row.ID,
		UserName:      row.UserName,
		TweetID:       row.TweetID,
		CreatedOn:     row.CreatedOn,
		DueOn:         row.DueOn,
		Ticker:        row.Ticker,
		PurchasePrice: price,
	}, nil
}
