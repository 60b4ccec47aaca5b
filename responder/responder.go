package responder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/g8rswimmer/go-twitter/v2"
	"github.com/shopspring/decimal"
	"github.com/stonksbot/stonksbot/alphavantage"
	"github.com/stonksbot/stonksbot/model"
	twitterutil "github.com/stonksbot/stonksbot/twitter"

	log "github.com/sirupsen/logrus"
)

const (
	// Elapsed span, user, ticker, purchase price, current price, and
	// signed return go in the placeholders
	stockUpMsg   = "@%s %s ago you bought $%s at $%s. It is now worth $%s. That's a return of %s%%! 🚀🤑📈"
	stockDownMsg = "@%s %s ago you bought $%s at $%s. It is now worth $%s. That's a return of %s%%! 😭📉"
)

type ReminderStore interface {
	GetRemindersDueOn(ctx context.Context, day time.Time) ([]model.Reminder, error)
}

type TweetResponder interface {
	TweetResponse(ctx context.Context, replyToID string, message string) (*twitter.CreateTweetResponse, error)
}

type QuoteFetcher interface {
	GetCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

type Responder struct {
	twitterService  TweetResponder
	quoteService    QuoteFetcher
	db              ReminderStore
	testModeEnabled bool
	now             func() time.Time
}

func NewResponder(twitterService TweetResponder, quoteService QuoteFetcher, db ReminderStore, isTestMode bool) *Responder {
	return &Responder{
		twitterService:  twitterService,
		quoteService:    quoteService,
		db:              db,
		testModeEnabled: isTestMode,
		now:             time.Now,
	}
}

/*
Runs one due-reminder pass: finds every reminder due today, computes the
return against the stored purchase price, and replies to the originating
tweet. When nothing is due the Twitter API isn't touched at all.

Quote lookup failures skip the affected reminder; the store query failing
aborts the pass.
*/
func (r *Responder) ProcessDueReminders(ctx context.Context) error {
	now := r.now()
	reminders, err := r.db.GetRemindersDueOn(ctx, now)
	if err != nil {
		log.Errorf("error getting due reminders: %v", err)
		return err
	}
	if len(reminders) == 0 {
		return nil
	}
	log.Infof("found %d reminders due today", len(reminders))

	for _, reminder := range reminders {
		currentPrice, err := r.quoteService.GetCurrentPrice(ctx, reminder.Ticker)
		if err != nil {
			if errors.Is(err, alphavantage.ErrSymbolNotFound) || errors.Is(err, alphavantage.ErrRateLimitExceeded) {
				log.WithField("ticker", reminder.Ticker).Warnf("quote unavailable, skipping reminder: %v", err)
				continue
			}
			log.WithField("ticker", reminder.Ticker).Errorf("error fetching quote: %v", err)
			continue
		}

		message := generateOutcomeContent(reminder, currentPrice, now)
		if r.testModeEnabled {
			log.WithField("replyToID", reminder.TweetID).WithField("message", message).Info("Simulating outcome reply")
			continue
		}
		if _, err := r.twitterService.TweetResponse(ctx, reminder.TweetID, message); err != nil {
			log.WithField("tweetID", reminder.TweetID).Errorf("error posting outcome: %v", err)
			continue
		}
		log.WithField("tweetID", reminder.TweetID).WithField("ticker", reminder.Ticker).Info("outcome posted")
	}
	return nil
}

// Percentage return over the purchase price, rounded to 2 decimal places.
func calculateReturn(purchasePrice, currentPrice decimal.Decimal) decimal.Decimal {
	return currentPrice.Sub(purchasePrice).Div(purchasePrice).Mul(decimal.NewFromInt(100)).Round(2)
}

func generateOutcomeContent(reminder model.Reminder, currentPrice decimal.Decimal, now time.Time) string {
	stockReturn := calculateReturn(reminder.PurchasePrice, currentPrice)
	template := stockUpMsg
	if stockReturn.IsNegative() {
		template = stockDownMsg
	}
	return fmt.Sprintf(
		template,
		reminder.UserName,
		twitterutil.DescribeElapsed(reminder.CreatedOn, now),
		reminder.Ticker,
		reminder.PurchasePrice.StringFixed(2),
		currentPrice.StringFixed(2),
		stockReturn.StringFixed(2),
	)
}
