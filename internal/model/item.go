package model

import "time"

// ItemStatus is the lifecycle stage of a found item.
type ItemStatus string

// Lifecycle statuses, in order: found is the initial state, received is
// terminal. claim_requested can fall back to found when a claim is rejected.
const (
	StatusFound          ItemStatus = "found"
	StatusClaimRequested ItemStatus = "claim_requested"
	StatusVerified       ItemStatus = "verified"
	StatusReceived       ItemStatus = "received"
)

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s ItemStatus) bool {
	switch s {
	case StatusFound, StatusClaimRequested, StatusVerified, StatusReceived:
		return true
	}
	return false
}

// ClaimRequest is an ownership claim attached to an item by a purported owner.
type ClaimRequest struct {
	ClaimerName   string    `json:"claimerName"`
	ContactNumber string    `json:"contactNumber"`
	Email         string    `json:"email,omitempty"`
	Description   string    `json:"description"`
	RequestDate   time.Time `json:"requestDate"`
}

// Item is a single reported found object.
//
// ClaimRequest is non-nil exactly when Status is claim_requested or verified.
// The store owns all mutations and maintains this; everything it hands out is
// a copy, so callers cannot break the invariant from outside.
type Item struct {
	ID            string        `json:"id"`
	ImageURL      string        `json:"imageUrl"`
	Category      string        `json:"category"`
	Description   string        `json:"description"`
	Location      string        `json:"location"`
	Date          time.Time     `json:"date"`
	DetectedText  string        `json:"detectedText,omitempty"`
	Colors        []string      `json:"colors,omitempty"`
	Status        ItemStatus    `json:"status"`
	ClaimRequest  *ClaimRequest `json:"claimRequest,omitempty"`
	ReporterPhone string        `json:"reporterPhone,omitempty"`
	ReporterEmail string        `json:"reporterEmail,omitempty"`
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	c := i
	if i.Colors != nil {
		c.Colors = make([]string, len(i.Colors))
		copy(c.Colors, i.Colors)
	}
	if i.ClaimRequest != nil {
		cr := *i.ClaimRequest
		c.ClaimRequest = &cr
	}
	return c
}
