package db

import "time"

type Mention struct {
	ID      string    `db:"id"`
	TweetID string    `db:"tweet_id"`
	Seen    time.Time `db:"seen"`
}
