package session

import "time"

// RoleType represents a dashboard role granted to a user.
type RoleType string

const (
	RoleSuperAdmin RoleType = "super-admin"
	RoleSubAdmin   RoleType = "sub-admin"
	RolePartner    RoleType = "partner"
	RoleInvestor   RoleType = "investor"
)

// VerificationStatus is the KYC verification state of an account.
type VerificationStatus string

const (
	VerificationVerified     VerificationStatus = "VERIFIED"
	VerificationPending      VerificationStatus = "PENDING"
	VerificationRejected     VerificationStatus = "REJECTED"
	VerificationNotSubmitted VerificationStatus = "NOT_SUBMITTED"
)

// User is the authenticated identity record returned by the backend.
type User struct {
	ID                 string             `json:"id"`
	FirstName          string             `json:"firstName"`
	LastName           string             `json:"lastName"`
	Email              string             `json:"email"`
	Roles              []RoleType         `json:"roles"`
	AccountType        string             `json:"accountType"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
}

// Session is the authenticated identity plus its credential pair and the
// server-side session identifier. A session is either fully populated or
// absent; Store.SetSession rejects anything in between.
type Session struct {
	User         User   `json:"user"`         // Identity record
	AccessToken  string `json:"accessToken"`  // Short-lived bearer credential, sent on every request
	RefreshToken string `json:"refreshToken"` // Longer-lived credential, used only to mint new access tokens
	SessionID    string `json:"sessionId"`    // Server-side session record, used when explicitly logging out
}

// incomplete reports whether any of the four required fields is missing.
func (s *Session) incomplete() bool {
	return s.User.ID == "" || s.AccessToken == "" || s.RefreshToken == "" || s.SessionID == ""
}

// VerificationRecord is the KYC verification state tracked alongside the
// session. It has an independent lifecycle: a session is valid without it,
// but the UI gates certain actions on its status.
type VerificationRecord struct {
	Status          VerificationStatus `json:"status"`
	DocumentType    string             `json:"documentType,omitempty"`
	SubmittedAt     *time.Time         `json:"submittedAt,omitempty"`
	ReviewedAt      *time.Time         `json:"reviewedAt,omitempty"`
	RejectionReason string             `json:"rejectionReason,omitempty"`
}
