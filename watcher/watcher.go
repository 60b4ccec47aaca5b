package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/g8rswimmer/go-twitter/v2"
	"github.com/shopspring/decimal"
	"github.com/stonksbot/stonksbot/alphavantage"
	twitterutil "github.com/stonksbot/stonksbot/twitter"

	log "github.com/sirupsen/logrus"
)

const (
	// UserName, ticker, and due date go in the placeholders
	confirmationMsg = "@%s Sure thing buddy! I'll remind you of the price of $%s on %s. I hope you make tons of money! 🤑"

	dueDateFormat = "2006-01-02"
)

type MentionStore interface {
	GetLatestTweetID(ctx context.Context) (string, error)
	AddMention(ctx context.Context, tweetID string) error
	AddReminder(ctx context.Context, userName string, tweetID string, ticker string, purchasePrice decimal.Decimal, createdOn time.Time, dueOn time.Time) error
}

type MentionFetcher interface {
	GetAllTimelineMentionsSince(ctx context.Context, sinceID string) ([]*twitter.TweetDictionary, error)
}

type TweetResponder interface {
	TweetResponse(ctx context.Context, replyToID string, message string) (*twitter.CreateTweetResponse, error)
}

type QuoteFetcher interface {
	GetCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

type TwitterGateway interface {
	MentionFetcher
	TweetResponder
}

type Watcher struct {
	twitterService  TwitterGateway
	quoteService    QuoteFetcher
	db              MentionStore
	testModeEnabled bool
	now             func() time.Time
}

func NewWatcher(twitterService TwitterGateway, quoteService QuoteFetcher, db MentionStore, isTestMode bool) *Watcher {
	return &Watcher{
		twitterService:  twitterService,
		quoteService:    quoteService,
		db:              db,
		testModeEnabled: isTestMode,
		now:             time.Now,
	}
}

/*
Runs one mention-processing pass: fetches every mention newer than the
stored watermark, records each one, and registers a reminder (plus a
confirmation reply) for mentions naming both a cashtag and a relative date.

Quote lookup failures skip the affected mention. Persistence failures abort
the pass so the scheduler retries the whole batch next time.
*/
func (w *Watcher) ProcessNewMentions(ctx context.Context) error {
	sinceID, err := w.db.GetLatestTweetID(ctx)
	if err != nil {
		return err
	}
	tweets, err := w.twitterService.GetAllTimelineMentionsSince(ctx, sinceID)
	if err != nil {
		if rateLimit, ok := twitter.RateLimitFromError(err); ok {
			// Skip this cycle; the next scheduled pass picks up where the
			// watermark left off
			log.WithField("limit", rateLimit.Limit).WithField("remaining", rateLimit.Remaining).Warnf("X rate limit encountered, skipping cycle until %s", rateLimit.Reset.Time())
			return nil
		}
		return err
	}
	for _, tweet := range tweets {
		tweetID := tweet.Tweet.ID
		text := tweet.Tweet.Text
		var author string
		if tweet.Author != nil {
			author = tweet.Author.UserName
		}

		// Record the mention first so it's never fetched again, whatever
		// happens to it below
		if err := w.db.AddMention(ctx, tweetID); err != nil {
			log.Errorf("error adding mention to database: %v", err)
			return err
		}

		if !twitterutil.ContainsTicker(text) || !twitterutil.ContainsDateExpression(text) {
			log.WithField("tweetID", tweetID).Debug("mention has no ticker and date, skipping")
			continue
		}

		now := w.now()
		dueOn, ok := twitterutil.ResolveDueDate(text, now)
		if !ok {
			// Unsupported phrasing reads as no date at all
			log.WithField("tweetID", tweetID).Debug("could not resolve a due date, skipping")
			continue
		}
		ticker := twitterutil.ExtractTicker(text)

		price, err := w.quoteService.GetCurrentPrice(ctx, ticker)
		if err != nil {
			if errors.Is(err, alphavantage.ErrSymbolNotFound) {
				log.WithField("tweetID", tweetID).Infof("no quote data for %s, skipping", ticker)
				continue
			}
			if errors.Is(err, alphavantage.ErrRateLimitExceeded) {
				log.WithField("tweetID", tweetID).Warn("quote rate limit hit, skipping mention")
				continue
			}
			log.WithField("tweetID", tweetID).Errorf("error fetching quote for %s: %v", ticker, err)
			continue
		}

		if err := w.db.AddReminder(ctx, author, tweetID, ticker, price, now, dueOn); err != nil {
			log.Errorf("error adding reminder to database: %v", err)
			return err
		}
		log.WithField("tweetID", tweetID).WithField("ticker", ticker).WithField("dueOn", dueOn.Format(dueDateFormat)).Info("reminder registered")

		message := fmt.Sprintf(confirmationMsg, author, ticker, dueOn.Format(dueDateFormat))
		if w.testModeEnabled {
			log.WithField("replyToID", tweetID).WithField("message", message).Info("Simulating confirmation reply")
			continue
		}
		if _, err := w.twitterService.TweetResponse(ctx, tweetID, message); err != nil {
			// The reminder is already stored, so the user still gets the
			// outcome reply even if the confirmation never posts
			log.WithField("tweetID", tweetID).Errorf("error posting confirmation: %v", err)
		}
	}
	return nil
}
