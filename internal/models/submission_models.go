package models

import "time"

// SubmissionPending marks a journal row whose upstream call has not returned yet.
const SubmissionPending = "pending"

// Submission is one journaled attempt to record a sale upstream.
type Submission struct {
	ID               int64     `json:"id"`
	DraftID          string    `json:"draftId"`
	RetailerID       string    `json:"retailerId"`
	UserID           string    `json:"userId"`
	ProductName      string    `json:"productName"`
	UnitsSold        int       `json:"unitsSold"`
	Outcome          string    `json:"outcome"`
	Message          *string   `json:"message,omitempty"`
	Available        *int      `json:"availableQuantity,omitempty"`
	Requested        *int      `json:"requestedQuantity,omitempty"`
	TokenFingerprint string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
