package payment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBirthDate(t *testing.T) {
	d, err := ParseBirthDate("2024-05-01")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2024-05-01", FormatBirthDate(*d))
	assert.Zero(t, d.Hour())

	d, err = ParseBirthDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	for _, bad := range []string{"  ", " 2024-05-01", "2024-05-01\n", "01.05.2024", "2024-5-1", "2024-05-01T10:00:00Z", "2024-13-01"} {
		_, err := ParseBirthDate(bad)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve), bad)
		assert.Equal(t, KeyBirthDate, ve.Field)
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"150.50": "150.5",
		"150.00": "150",
		"0":      "0",
		"0.001":  "0.001",
		"12345678901234567890.5": "12345678901234567890.5",
	}
	for in, want := range cases {
		a, err := ParseAmount(in)
		require.NoError(t, err, in)
		require.NotNil(t, a, in)
		assert.Equal(t, want, FormatAmount(*a), in)
	}

	a, err := ParseAmount("")
	require.NoError(t, err)
	assert.Nil(t, a)

	for _, bad := range []string{"abc", "1,5", "1 000", "1e3", "-5", "NaN", "Inf", ".5", " 5", "5 ", " "} {
		_, err := ParseAmount(bad)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve), bad)
		assert.Equal(t, KeyAmount, ve.Field)
	}
}

func TestInputTrimSpace(t *testing.T) {
	in := Input{FirstName: " Иван ", BirthDate: "\t2024-05-01 ", Amount: " 150.50\n"}

	_, err := in.Fields()
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Len(t, fe, 2)

	f, err := in.TrimSpace().Fields()
	require.NoError(t, err)
	assert.Equal(t, "Иван", f.FirstName)
	require.NotNil(t, f.BirthDate)
	assert.Equal(t, "2024-05-01", FormatBirthDate(*f.BirthDate))
	require.NotNil(t, f.Amount)
	assert.Equal(t, "150.5", FormatAmount(*f.Amount))
}

func TestInputFieldsCollectsAllErrors(t *testing.T) {
	in := Input{FirstName: "Anna", BirthDate: "yesterday", Amount: "ten"}
	f, err := in.Fields()
	require.Error(t, err)

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Len(t, fe, 2)
	assert.Contains(t, fe.ByField(), KeyBirthDate)
	assert.Contains(t, fe.ByField(), KeyAmount)
	assert.Equal(t, "Anna", f.FirstName)
}

func TestInputFieldsRoundTrip(t *testing.T) {
	in := Input{FirstName: "A", LastName: "B", MiddleName: "C", BirthDate: "1999-01-02", Amount: "10.25"}
	f, err := in.Fields()
	require.NoError(t, err)
	assert.Equal(t, in, f.Input())
}
