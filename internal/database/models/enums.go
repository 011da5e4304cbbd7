package models

// TournamentCategory is the tier a team registers in. Any other value is accepted
// and billed at the default tier.
type TournamentCategory string

const (
	CategoryOpen      TournamentCategory = "Open"
	CategoryCorporate TournamentCategory = "Corporate"
	CategoryYouth     TournamentCategory = "Youth"
)

// PaymentStatus defines the payment state of a registration
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// ContactMessageStatus defines the triage state of a contact message
type ContactMessageStatus string

const (
	ContactStatusUnread  ContactMessageStatus = "unread"
	ContactStatusRead    ContactMessageStatus = "read"
	ContactStatusReplied ContactMessageStatus = "replied"
)

// IsKnown reports whether the category has a dedicated fee tier
func (c TournamentCategory) IsKnown() bool {
	switch c {
	case CategoryOpen, CategoryCorporate, CategoryYouth:
		return true
	}
	return false
}

// IsValid checks if the PaymentStatus is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// IsActive reports whether a registration in this state blocks a new one for the same team
func (s PaymentStatus) IsActive() bool {
	return s == PaymentStatusPending || s == PaymentStatusCompleted
}

// IsValid checks if the ContactMessageStatus is valid
func (s ContactMessageStatus) IsValid() bool {
	switch s {
	case ContactStatusUnread, ContactStatusRead, ContactStatusReplied:
		return true
	}
	return false
}
