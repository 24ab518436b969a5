package model

// Field order in the request types follows the gateway schema; the gateway
// converts JSON to XML and rejects out-of-order elements.

// Environment selects the gateway endpoint.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// ResultCode is the top-level gateway result.
type ResultCode string

const (
	ResultCodeOk    ResultCode = "Ok"
	ResultCodeError ResultCode = "Error"
)

// Gateway message codes with special handling.
const (
	MessageCodeDuplicateRecord    = "E00039"
	MessageCodeNoPaymentProfiles  = "E00121"
	TransactionErrorDuplicateCode = "11"
)

// Transaction types.
const (
	TransactionTypeAuthCapture = "authCaptureTransaction"
	TransactionTypeRefund      = "refundTransaction"
)

// MerchantAuthentication carries the API credentials.
type MerchantAuthentication struct {
	Name           string `json:"name"`
	TransactionKey string `json:"transactionKey"`
}

// Message is a single {code, text} gateway message.
type Message struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// Messages is the result block attached to every response.
type Messages struct {
	ResultCode ResultCode `json:"resultCode"`
	Message    []Message  `json:"message"`
}

// IsOk reports whether the result code is Ok.
func (m Messages) IsOk() bool {
	return m.ResultCode == ResultCodeOk
}

// First returns the first message, or a zero Message.
func (m Messages) First() Message {
	if len(m.Message) == 0 {
		return Message{}
	}
	return m.Message[0]
}

// Address is a bill-to address.
type Address struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Company     string `json:"company,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
	Country     string `json:"country,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// OpaqueData is a one-time token produced by the client-side tokenizer.
type OpaqueData struct {
	DataDescriptor string `json:"dataDescriptor"`
	DataValue      string `json:"dataValue"`
}

// --- Customer profiles ---

// CustomerProfileDraft is the profile sent on creation.
type CustomerProfileDraft struct {
	MerchantCustomerID string `json:"merchantCustomerId,omitempty"`
	Description        string `json:"description,omitempty"`
	Email              string `json:"email,omitempty"`
}

type CreateCustomerProfileRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
	RefID                  string                 `json:"refId,omitempty"`
	Profile                CustomerProfileDraft   `json:"profile"`
}

type CreateCustomerProfileResponse struct {
	RefID             string   `json:"refId,omitempty"`
	Messages          Messages `json:"messages"`
	CustomerProfileID string   `json:"customerProfileId,omitempty"`
}

type GetCustomerProfileRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
	RefID                  string                 `json:"refId,omitempty"`
	CustomerProfileID      string                 `json:"customerProfileId"`
}

type GetCustomerProfileResponse struct {
	Messages Messages               `json:"messages"`
	Profile  *CustomerProfileMasked `json:"profile,omitempty"`
}

type GetCustomerProfileIDsRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
}

type GetCustomerProfileIDsResponse struct {
	Messages Messages `json:"messages"`
	IDs      []string `json:"ids"`
}

type DeleteCustomerProfileRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
	RefID                  string                 `json:"refId,omitempty"`
	CustomerProfileID      string                 `json:"customerProfileId"`
}

type DeleteCustomerProfileResponse struct {
	Messages Messages `json:"messages"`
}

// CustomerProfileMasked is the summary representation returned by lookups.
type CustomerProfileMasked struct {
	MerchantCustomerID string                 `json:"merchantCustomerId,omitempty"`
	Description        string                 `json:"description,omitempty"`
	Email              string                 `json:"email,omitempty"`
	CustomerProfileID  string                 `json:"customerProfileId"`
	PaymentProfiles    []PaymentProfileMasked `json:"paymentProfiles,omitempty"`
}

// --- Payment profiles ---

// PaymentProfileMasked is a stored instrument with its number masked.
type PaymentProfileMasked struct {
	CustomerPaymentProfileID string         `json:"customerPaymentProfileId"`
	CustomerType             string         `json:"customerType,omitempty"`
	BillTo                   *Address       `json:"billTo,omitempty"`
	Payment                  *PaymentMasked `json:"payment,omitempty"`
}

type PaymentMasked struct {
	CreditCard  *CreditCardMasked  `json:"creditCard,omitempty"`
	BankAccount *BankAccountMasked `json:"bankAccount,omitempty"`
}

type CreditCardMasked struct {
	CardNumber     string `json:"cardNumber"`
	ExpirationDate string `json:"expirationDate"`
	CardType       string `json:"cardType,omitempty"`
}

type BankAccountMasked struct {
	AccountType   string `json:"accountType,omitempty"`
	RoutingNumber string `json:"routingNumber"`
	AccountNumber string `json:"accountNumber"`
	NameOnAccount string `json:"nameOnAccount"`
}

type PaymentProfileDraft struct {
	BillTo  *Address       `json:"billTo,omitempty"`
	Payment PaymentPayload `json:"payment"`
}

type PaymentPayload struct {
	OpaqueData *OpaqueData `json:"opaqueData,omitempty"`
}

type CreateCustomerPaymentProfileRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
	RefID                  string                 `json:"refId,omitempty"`
	CustomerProfileID      string                 `json:"customerProfileId"`
	PaymentProfile         PaymentProfileDraft    `json:"paymentProfile"`
}

type CreateCustomerPaymentProfileResponse struct {
	Messages                 Messages `json:"messages"`
	CustomerProfileID        string   `json:"customerProfileId,omitempty"`
	CustomerPaymentProfileID string   `json:"customerPaymentProfileId,omitempty"`
}

// --- Transactions ---

type ProfilePayment struct {
	CustomerProfileID string              `json:"customerProfileId"`
	PaymentProfile    PaymentProfileIDRef `json:"paymentProfile"`
}

type PaymentProfileIDRef struct {
	PaymentProfileID string `json:"paymentProfileId"`
}

type TransactionRequest struct {
	TransactionType string          `json:"transactionType"`
	Amount          string          `json:"amount"`
	Profile         *ProfilePayment `json:"profile,omitempty"`
	RefTransID      string          `json:"refTransId,omitempty"`
	BillTo          *Address        `json:"billTo,omitempty"`
}

type CreateTransactionRequest struct {
	MerchantAuthentication MerchantAuthentication `json:"merchantAuthentication"`
	RefID                  string                 `json:"refId,omitempty"`
	TransactionRequest     TransactionRequest     `json:"transactionRequest"`
}

type CreateTransactionResponse struct {
	RefID               string               `json:"refId,omitempty"`
	Messages            Messages             `json:"messages"`
	TransactionResponse *TransactionResponse `json:"transactionResponse,omitempty"`
}

// TransactionResponse is the ChargeResult handed back to callers.
type TransactionResponse struct {
	ResponseCode  string               `json:"responseCode"`
	AuthCode      string               `json:"authCode,omitempty"`
	AVSResultCode string               `json:"avsResultCode,omitempty"`
	CVVResultCode string               `json:"cvvResultCode,omitempty"`
	TransID       string               `json:"transId"`
	RefTransID    string               `json:"refTransID,omitempty"`
	AccountNumber string               `json:"accountNumber,omitempty"`
	AccountType   string               `json:"accountType,omitempty"`
	Messages      []TransactionMessage `json:"messages,omitempty"`
	Errors        []TransactionError   `json:"errors,omitempty"`
}

type TransactionMessage struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// TransactionError is one line-item error reported on a transaction.
type TransactionError struct {
	ErrorCode string `json:"errorCode"`
	ErrorText string `json:"errorText"`
}
