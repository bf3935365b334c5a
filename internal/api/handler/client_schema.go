package handler

// --- Request types ---

type contactRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,len=10,numeric"`
}

type clientRequest struct {
	CompanyName        string         `json:"company_name"        validate:"required,max=150"`
	Industry           string         `json:"industry"            validate:"required,max=100"`
	Address            string         `json:"address"             validate:"max=255"`
	PrimaryContact     contactRequest `json:"primary_contact"     validate:"required"`
	AnnualTurnover     float64        `json:"annual_turnover"     validate:"gte=0"`
	DocumentsSubmitted *bool          `json:"documents_submitted" validate:"required"`
}
