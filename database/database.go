package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
	"github.com/stonksbot/stonksbot/database/db"
	"github.com/stonksbot/stonksbot/model"
)

type Database struct {
	connString string
	pool       *pgxpool.Pool
}

func NewDatabase(connString string) *Database {
	return &Database{
		connString: connString,
	}
}

func (d *Database) Connect(ctx context.Context) error {
	var err error
	d.pool, err = pgxpool.New(ctx, d.connString)
	if err != nil {
		return err
	}
	return nil
}

func (d *Database) Disconnect() {
	d.pool.Close()
}

func (d *Database) AddMention(ctx context.Context, tweetID string) error {
	// don't really care about the result, as long as this succeeds
	_, err := d.pool.Exec(ctx, `
	INSERT INTO mention (id, tweet_id, seen) VALUES ($1, $2, $3)`,
		cuid.New(),
		tweetID,
		time.Now().UTC(), // the DB stores timezones and assumes UTC
	)
	if err != nil {
		return err
	}
	return nil
}

func (d *Database) GetLatestTweetID(ctx context.Context) (string, error) {
	// Twitter IDs are always increasing, but they're decimal strings of
	// varying length, so compare them numerically
	var id string
	err := d.pool.QueryRow(
		ctx,
		`SELECT
			tweet_id
		FROM mention
		ORDER BY tweet_id::numeric DESC
		LIMIT 1`,
	).Scan(&id)
	if err != nil {
		// A blank table is OK and obviously can't return rows
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func (d *Database) AddReminder(ctx context.Context, userName string, tweetID string, ticker string, purchasePrice decimal.Decimal, createdOn time.Time, dueOn time.Time) error {
	_, err := d.pool.Exec(ctx, `
	INSERT INTO reminder (id, user_name, tweet_id, created_on, due_on, ticker, purchase_price) VALUES ($1, $2, $3, $4, $5, $6, $7::numeric)`,
		cuid.New(),
		userName,
		tweetID,
		createdOn.UTC(),
		dueOn.UTC(),
		ticker,
		purchasePrice.StringFixed(2),
	)
	if err != nil {
		return err
	}
	return nil
}

// Finds reminders whose due date falls on the same calendar day as the
// given time. The time-of-day component of due_on is ignored for the match.
func (d *Database) GetRemindersDueOn(ctx context.Context, day time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder
	var raws []db.Reminder
	rows, err := d.pool.Query(ctx, `
	SELECT
		id,
		user_name,
		tweet_id,
		created_on,
		due_on,
		ticker,
		purchase_price::text AS purchase_price
	FROM reminder
	WHERE (due_on AT TIME ZONE 'UTC')::date = ($1 AT TIME ZONE 'UTC')::date
	ORDER BY due_on ASC`,
		day.UTC(),
	)
	if err != nil {
		return nil, err
	}

	raws, err = pgx.CollectRows(rows, pgx.RowToStructByName[db.Reminder])
	if err != nil {
		return nil, err
	}

	for _, raw := range raws {
		reminder, err := model.ReminderFromRow(raw)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *reminder)
	}

	return reminders, nil
}
