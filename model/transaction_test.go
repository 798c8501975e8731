package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"", 0},
		{"2500000", 2500000},
		{"25,00,000", 2500000},
		{"2,500,000.75", 2500000.75},
		{"₹ 75,00,000", 7500000},
		{"1_000", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizeAmount(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeAmount_Malformed(t *testing.T) {
	for _, raw := range []string{"12a", "1,00,000.0.1", "-500", "abc", "NaN", "Inf", "+Infinity", "0x10", "0x1p30", "1e7", ".5"} {
		t.Run(raw, func(t *testing.T) {
			_, err := NormalizeAmount(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, rm_errors.ErrMalformedInput)

			var malformed *rm_errors.MalformedInputError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, FieldAmount, malformed.Field)
			assert.Equal(t, raw, malformed.Value)
		})
	}
}

func TestTransaction_Normalize(t *testing.T) {
	tx := Transaction{
		TransactionID: " TXN-1 ",
		Amount:        "5,00,000",
		PAN:           "ABCDE1234F",
		KYCStatus:     "Incomplete",
		AccountType:   "NRI",
		Country:       "in",
	}

	snapshot, err := tx.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "TXN-1", snapshot.TransactionID)
	assert.Equal(t, "5,00,000", snapshot.Amount)
	assert.Equal(t, 500000.0, snapshot.NormalizedAmount)
	assert.Equal(t, KYCIncomplete, snapshot.KYCStatus)
	assert.Equal(t, AccountNRI, snapshot.AccountType)
	assert.Equal(t, "IN", snapshot.Country)
}

func TestTransaction_Normalize_UnknownEnum(t *testing.T) {
	_, err := Transaction{Amount: "10", KYCStatus: "revoked"}.Normalize()
	require.Error(t, err)

	var malformed *rm_errors.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, FieldKYCStatus, malformed.Field)
}

func TestTransaction_AmountAcceptsNumbers(t *testing.T) {
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 2500000, "pan": ""}`), &tx))
	assert.Equal(t, FlexString("2500000"), tx.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount": "25,00,000"}`), &tx))
	assert.Equal(t, FlexString("25,00,000"), tx.Amount)

	assert.Error(t, json.Unmarshal([]byte(`{"amount": true}`), &tx))
}

func TestSnapshot_FieldValue(t *testing.T) {
	s := TransactionSnapshot{Amount: "100", PAN: "X", Country: "IR", KYCStatus: "pending", AccountType: "savings"}

	v, ok := s.FieldValue(FieldCountry)
	assert.True(t, ok)
	assert.Equal(t, "IR", v)

	_, ok = s.FieldValue("trade_volume")
	assert.False(t, ok)
}
