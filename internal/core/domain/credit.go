package domain

import "time"

// CreditStatus represents the lifecycle state of a credit request.
type CreditStatus string

const (
	CreditPending  CreditStatus = "PENDING"
	CreditApproved CreditStatus = "APPROVED"
	CreditRejected CreditStatus = "REJECTED"
)

// validDecisions defines the allowed state machine transitions. APPROVED and
// REJECTED are terminal: a decided request cannot be re-decided.
var validDecisions = map[CreditStatus][]CreditStatus{
	CreditPending: {CreditApproved, CreditRejected},
}

// CanTransitionTo reports whether a transition from the current status to next
// is valid.
func (s CreditStatus) CanTransitionTo(next CreditStatus) bool {
	for _, allowed := range validDecisions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseCreditStatus maps a decision string onto a known CreditStatus.
func ParseCreditStatus(s string) (CreditStatus, bool) {
	switch CreditStatus(s) {
	case CreditPending, CreditApproved, CreditRejected:
		return CreditStatus(s), true
	}
	return "", false
}

// Credit is a credit request raised by a relationship manager against one of
// their own clients and decided by an analyst.
type Credit struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	ClientID      string       `json:"client_id" bson:"client_id"`
	SubmittedBy   string       `json:"submitted_by" bson:"submitted_by"`
	RequestAmount float64      `json:"request_amount" bson:"request_amount"`
	TenureMonths  int          `json:"tenure_months" bson:"tenure_months"`
	Purpose       string       `json:"purpose" bson:"purpose"`
	Status        CreditStatus `json:"status" bson:"status"`
	Remarks       string       `json:"remarks" bson:"remarks"`
	CreatedAt     time.Time    `json:"created_at" bson:"created_at"`
}

// CreditDetails is the enriched listing view: the credit plus display names
// resolved from the client and user collaborators. A failed lookup leaves the
// corresponding name empty rather than failing the read.
type CreditDetails struct {
	Credit
	ClientName string `json:"client_name,omitempty"`
	RMName     string `json:"rm_name,omitempty"`
}
