package domain

// PrimaryContact holds the contact person for a corporate client.
type PrimaryContact struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

// Client is a corporate client onboarded by a relationship manager.
// OwnerID is the user id of the RM that created the client and is immutable
// after creation; every RM read/update is gated on it.
type Client struct {
	ID                 string         `json:"id" bson:"_id,omitempty"`
	CompanyName        string         `json:"company_name" bson:"company_name"`
	Industry           string         `json:"industry" bson:"industry"`
	Address            string         `json:"address" bson:"address"`
	PrimaryContact     PrimaryContact `json:"primary_contact" bson:"primary_contact"`
	AnnualTurnover     float64        `json:"annual_turnover" bson:"annual_turnover"`
	DocumentsSubmitted bool           `json:"documents_submitted" bson:"documents_submitted"`
	OwnerID            string         `json:"owner_id" bson:"owner_id"`
}
