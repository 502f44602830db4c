package domain

// Account types (accounts.account_type).
const (
	AccountTypeResidential = "residential"
	AccountTypeCommercial  = "commercial"
)

// Account customer account (accounts table).
type Account struct {
	ID              string  `json:"id"`
	AccountType     string  `json:"account_type"`
	BillingLine1    string  `json:"billing_line1"`
	BillingLine2    *string `json:"billing_line2,omitempty"`
	BillingCity     string  `json:"billing_city"`
	BillingPostcode string  `json:"billing_postcode"`
	PaymentTerms    string  `json:"payment_terms"`
	CreditLimit     float64 `json:"credit_limit"`
	IsActive        bool    `json:"is_active"`
	ContactID       *string `json:"contact_id,omitempty"`
}

// Contact person attached to an account as its holder (contacts table).
// The account holds the reference; contacts carry no back-pointer.
type Contact struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Mobile    *string `json:"mobile,omitempty"`
}
