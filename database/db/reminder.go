package db

import "time"

type Reminder struct {
	ID        string    `db:"id"`
	UserName  string    `db:"user_name"`
	TweetID   string    `db:"tweet_id"`
	Ticker    string    `db:"ticker"`
	CreatedOn time.Time `db:"created_on"`
	DueOn     time.Time `db:"due_on"`
	// numeric column selected as text so the model can parse it losslessly
	PurchasePrice string `db:"purchase_price"`
}
