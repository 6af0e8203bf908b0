package models

import "time"

// Session is the explicit replacement for a token kept in browser storage.
// It is created at login and removed at logout or after going idle.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	RetailerID string    `json:"retailerId"`
	Token      string    `json:"-"`
	Products   []Product `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

// StockCheck is the confirmation gate's verdict for a proposed sale.
type StockCheck struct {
	Found      bool `json:"found"`
	Available  int  `json:"available"`
	Requested  int  `json:"requested"`
	Sufficient bool `json:"sufficient"`
	LowStock   bool `json:"lowStock"`
}

// SaleDraft is the pending sale awaiting the user's confirmation.
type SaleDraft struct {
	ID         string     `json:"id"`
	SessionID  string     `json:"-"`
	Transcript string     `json:"transcript"`
	Phrase     string     `json:"phrase"`
	Product    Product    `json:"product"`
	Quantity   int        `json:"quantity"`
	Stock      StockCheck `json:"stock"`
	CanConfirm bool       `json:"canConfirm"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Submission outcomes.
const (
	SubmitRecorded              = "recorded"
	SubmitInsufficientInventory = "insufficient_inventory"
	SubmitFailure               = "failure"
)

// Shortfall carries the quantities of an insufficient-inventory rejection.
type Shortfall struct {
	ProductName string `json:"productName"`
	Available   int    `json:"available"`
	Requested   int    `json:"requested"`
}

// Missing is how many more units the retailer needs to purchase.
func (s Shortfall) Missing() int {
	if s.Requested <= s.Available {
		return 0
	}
	return s.Requested - s.Available
}

// SubmitResult is the outcome of posting a sale.
// Exactly one of Sale and Shortfall is set for the recorded and
// insufficient_inventory kinds; failure carries only Message.
type SubmitResult struct {
	Kind      string     `json:"kind"`
	Sale      *SaleEvent `json:"sale,omitempty"`
	Shortfall *Shortfall `json:"shortfall,omitempty"`
	Message   string     `json:"message"`
}
