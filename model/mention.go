package model

import (
	"time"

	"github.com/stonksbot/stonksbot/database/db"
)

// A tweet the bot has already seen. Rows are append-only; the largest
// tweet ID acts as the "since" watermark for the next timeline poll.
type Mention struct {
	ID      string
	TweetID string
	Seen    time.Time
}

func MentionFromRow(row db.Mention) *Mention {
	return &Mention{
		ID:      row.ID,
		TweetID: row.TweetID,
		Seen:    row.Seen,
	}
}
