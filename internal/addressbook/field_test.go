package addressbook_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
)

func TestNewPhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"Ten digits", "0501234567", false},
		{"All zeros", "0000000000", false},
		{"Nine digits", "050123456", true},
		{"Eleven digits", "05012345678", true},
		{"Leading plus", "+380501234", true},
		{"Separators", "050-123-45", true},
		{"Letters", "05012345ab", true},
		{"Empty", "", true},
		{"Arabic-Indic digits", "٠١٢٣٤٥٦٧٨٩", true},
		{"Trailing newline", "0501234567\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := addressbook.NewPhone(tt.raw)
			if tt.wantErr {
				var vErr *addressbook.ValidationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &vErr), "Phone errors must be ValidationError")
				assert.Equal(t, addressbook.FieldPhone, vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, p.String())
		})
	}
}

func TestNewName(t *testing.T) {
	n, err := addressbook.NewName("Ann Smith")
	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", n.String())
	assert.Equal(t, "ann smith", n.Key())

	_, err = addressbook.NewName("")
	var vErr *addressbook.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestNameKey_Unicode(t *testing.T) {
	n, err := addressbook.NewName("ОЛЕНА")
	require.NoError(t, err)
	assert.Equal(t, "олена", n.Key(), "Keys use Unicode lower-casing, not ASCII only")
}

func TestNewBirthday(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{"Standard", "12.03.1990", time.Date(1990, 3, 12, 0, 0, 0, 0, time.UTC), false},
		{"Leap day in leap year", "29.02.2024", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), false},
		{"Leap day in non-leap year", "29.02.2023", time.Time{}, true},
		{"Impossible day", "31.02.2024", time.Time{}, true},
		{"Month 13", "01.13.2024", time.Time{}, true},
		{"Day zero", "00.01.2024", time.Time{}, true},
		{"Unpadded day", "1.01.2024", time.Time{}, true},
		{"Unpadded month", "01.1.2024", time.Time{}, true},
		{"Two-digit year", "01.01.24", time.Time{}, true},
		{"ISO layout", "2024-01-01", time.Time{}, true},
		{"Slashes", "01/01/2024", time.Time{}, true},
		{"Trailing text", "01.01.2024x", time.Time{}, true},
		{"Empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := addressbook.NewBirthday(tt.raw)
			if tt.wantErr {
				var vErr *addressbook.ValidationError
				require.Error(t, err)
				require.True(t, errors.As(err, &vErr))
				assert.Contains(t, err.Error(), "DD.MM.YYYY", "Message must tell the user the expected format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Date())
			assert.Equal(t, tt.raw, b.String())
		})
	}
}

func TestBirthday_RoundTrip(t *testing.T) {
	// Every real date in a leap year must survive format -> parse -> Date().
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for d.Year() == 2024 {
		raw := d.Format("02.01.2006")
		b, err := addressbook.NewBirthday(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, d, b.Date(), raw)
		d = d.AddDate(0, 0, 1)
	}
}

func TestBirthdayFromDate(t *testing.T) {
	b := addressbook.BirthdayFromDate(time.Date(1985, 3, 16, 15, 4, 5, 0, time.Local))
	assert.Equal(t, "16.03.1985", b.String())
	assert.Equal(t, time.Date(1985, 3, 16, 0, 0, 0, 0, time.UTC), b.Date())
}

func TestValidationError_Message(t *testing.T) {
	_, err := addressbook.NewPhone("123")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "'123'"), "Message should quote the rejected value")
}
