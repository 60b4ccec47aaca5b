package alphavantage

/*
The GLOBAL_QUOTE payload shape changes depending on outcome:
If the symbol is known:

	GlobalQuote is populated, Note is empty.

If the symbol is unknown:

	GlobalQuote is present but has every field empty.

If the call frequency quota is exhausted:

	GlobalQuote is absent and Note (or Information on newer plans)
	carries the rate limit text.
*/
type QuoteResponse struct {
	GlobalQuote GlobalQuote `json:"Global Quote"`
	Note        string      `json:"Note,omitempty"`
	Information string      `json:"Information,omitempty"`
}

type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}
