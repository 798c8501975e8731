// model/transaction.go
package model

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
)

const (
	KYCComplete   = "complete"
	KYCIncomplete = "incomplete"
	KYCPending    = "pending"
	KYCExpired    = "expired"

	AccountSavings   = "savings"
	AccountCurrent   = "current"
	AccountNRI       = "nri"
	AccountCorporate = "corporate"
)

// Transaction is the evaluation input. It is owned by the caller and never
// persisted as-is; the audit trail stores its TransactionSnapshot.
type Transaction struct {
	TransactionID string     `json:"transactionId"`
	Amount        FlexString `json:"amount"`
	PAN           string     `json:"pan"`
	KYCStatus     string     `json:"kycStatus"`
	AccountType   string     `json:"accountType"`
	Country       string     `json:"country"`
}

// TransactionSnapshot holds the field values exactly as they were evaluated.
type TransactionSnapshot struct {
	TransactionID    string  `json:"transactionId"`
	Amount           string  `json:"amount"`
	NormalizedAmount float64 `json:"normalizedAmount"`
	PAN              string  `json:"pan"`
	KYCStatus        string  `json:"kycStatus"`
	AccountType      string  `json:"accountType"`
	Country          string  `json:"country"`
}

var errNegativeAmount = errors.New("amount must not be negative")

// amountNoise is stripped from amount text before parsing: thousands
// separators, spaces and common currency symbols.
var amountNoise = strings.NewReplacer(",", "", "_", "", " ", "", "\u00a0", "", "₹", "", "$", "", "€", "", "£", "")

// decimalPattern is the only number shape accepted for amounts: plain
// digits with an optional fraction. NaN, Inf and hex floats never match.
var decimalPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// ParseDecimal parses cleaned decimal text.
func ParseDecimal(cleaned string) (float64, error) {
	if !decimalPattern.MatchString(cleaned) {
		return 0, strconv.ErrSyntax
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errors.Unwrap(err)
	}
	return value, nil
}

// NormalizeAmount parses amount text such as "2,50,00,000" or "₹ 75,000.50".
// An empty amount is zero.
func NormalizeAmount(raw string) (float64, error) {
	cleaned := amountNoise.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, nil
	}
	value, err := ParseDecimal(cleaned)
	if err != nil {
		return 0, &rm_errors.MalformedInputError{Field: FieldAmount, Value: raw, Err: err}
	}
	if value < 0 {
		return 0, &rm_errors.MalformedInputError{Field: FieldAmount, Value: raw, Err: errNegativeAmount}
	}
	return value, nil
}

// Normalize validates the transaction and returns the snapshot that rules
// are evaluated against. Enum values are lower-cased and the country code
// upper-cased; an empty enum means the value was not supplied.
func (t Transaction) Normalize() (TransactionSnapshot, error) {
	amount, err := NormalizeAmount(t.Amount.String())
	if err != nil {
		return TransactionSnapshot{}, err
	}

	snapshot := TransactionSnapshot{
		TransactionID:    strings.TrimSpace(t.TransactionID),
		Amount:           strings.TrimSpace(t.Amount.String()),
		NormalizedAmount: amount,
		PAN:              strings.TrimSpace(t.PAN),
		KYCStatus:        strings.ToLower(strings.TrimSpace(t.KYCStatus)),
		AccountType:      strings.ToLower(strings.TrimSpace(t.AccountType)),
		Country:          strings.ToUpper(strings.TrimSpace(t.Country)),
	}

	for field, value := range map[string]string{
		FieldKYCStatus:   snapshot.KYCStatus,
		FieldAccountType: snapshot.AccountType,
	} {
		def, _ := LookupField(field)
		if value != "" && !def.Allows(value) {
			return TransactionSnapshot{}, &rm_errors.MalformedInputError{Field: field, Value: value}
		}
	}

	return snapshot, nil
}

// FieldValue returns the raw text of a recognized field.
func (s TransactionSnapshot) FieldValue(field string) (string, bool) {
	switch field {
	case FieldAmount:
		return s.Amount, true
	case FieldPAN:
		return s.PAN, true
	case FieldCountry:
		return s.Country, true
	case FieldKYCStatus:
		return s.KYCStatus, true
	case FieldAccountType:
		return s.AccountType, true
	default:
		return "", false
	}
}
