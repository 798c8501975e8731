// model/fields.go
package model

import "slices"

type FieldKind int

const (
	FieldString FieldKind = iota
	FieldNumeric
	FieldEnum
)

// FieldSpec describes a transaction field that conditions may reference.
type FieldSpec struct {
	Name    string
	Kind    FieldKind
	Allowed []string
}

const (
	FieldAmount      = "amount"
	FieldPAN         = "pan"
	FieldCountry     = "country"
	FieldKYCStatus   = "kyc_status"
	FieldAccountType = "account_type"
)

var recognizedFields = map[string]FieldSpec{
	FieldAmount:      {Name: FieldAmount, Kind: FieldNumeric},
	FieldPAN:         {Name: FieldPAN, Kind: FieldString},
	FieldCountry:     {Name: FieldCountry, Kind: FieldString},
	FieldKYCStatus:   {Name: FieldKYCStatus, Kind: FieldEnum, Allowed: []string{KYCComplete, KYCIncomplete, KYCPending, KYCExpired}},
	FieldAccountType: {Name: FieldAccountType, Kind: FieldEnum, Allowed: []string{AccountSavings, AccountCurrent, AccountNRI, AccountCorporate}},
}

// LookupField returns the definition of a recognized field.
func LookupField(name string) (FieldSpec, bool) {
	def, ok := recognizedFields[name]
	return def, ok
}

// Allows reports whether v is a legal value for an enum field. Non-enum
// fields allow anything.
func (f FieldSpec) Allows(v string) bool {
	if f.Kind != FieldEnum {
		return true
	}
	return slices.Contains(f.Allowed, v)
}
