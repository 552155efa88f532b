package domain

type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeCurrent  AccountType = "CURRENT"
)

type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTransfer   TransactionType = "TRANSFER"
)

type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusProcessing TransactionStatus = "PROCESSING"
	TransactionStatusCompleted  TransactionStatus = "COMPLETED"
	TransactionStatusFailed     TransactionStatus = "FAILED"
	TransactionStatusCancelled  TransactionStatus = "CANCELLED"
)

// OpStatus is the lifecycle phase of the most recent asynchronous
// operation on a store: every operation moves Pending -> Fulfilled
// or Pending -> Rejected.
type OpStatus string

const (
	OpIdle      OpStatus = "IDLE"
	OpPending   OpStatus = "PENDING"
	OpFulfilled OpStatus = "FULFILLED"
	OpRejected  OpStatus = "REJECTED"
)

type UserProfile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Session is the authentication aggregate. User and Token are both
// set or both empty; there is never a token without a resolved
// identity.
type Session struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *UserProfile `json:"user,omitempty"`
	Token           string       `json:"token,omitempty"`
	Status          OpStatus     `json:"status"`
	Error           string       `json:"error,omitempty"`
}

// Account is a server-authoritative snapshot. Balance is kept as the
// backend's decimal string and is never recomputed client-side.
type Account struct {
	AccountID     int64       `json:"accountId"`
	AccountNumber string      `json:"accountNumber"`
	AccountType   AccountType `json:"accountType"`
	Balance       string      `json:"balance"`
	Currency      string      `json:"currency"`
	Status        string      `json:"status"`
}

type Transaction struct {
	ID              string            `json:"id"`
	Type            TransactionType   `json:"type"`
	Amount          float64           `json:"amount"`
	Description     string            `json:"description"`
	Status          TransactionStatus `json:"status"`
	TransactionDate string            `json:"transactionDate"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

// AuthResponse is the backend's reply to login and signup.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type NewAccount struct {
	AccountType    AccountType `json:"accountType"`
	InitialDeposit float64     `json:"initialDeposit"`
	Currency       string      `json:"currency"`
}

type DepositRequest struct {
	AccountNumber string  `json:"accountNumber"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
}

type WithdrawRequest struct {
	AccountNumber string  `json:"accountNumber"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
}

// TransferRequest carries the source account under both field names
// the backend has been observed to accept.
type TransferRequest struct {
	FromAccountNumber string  `json:"fromAccountNumber"`
	AccountNumber     string  `json:"accountNumber"`
	ToAccountNumber   string  `json:"toAccountNumber"`
	Amount            float64 `json:"amount"`
	Description       string  `json:"description"`
}
