package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatibilityTable(t *testing.T) {
	want := map[BloodType][]BloodType{
		"O-":  {"O-", "O+", "A-", "A+", "B-", "B+", "AB-", "AB+"},
		"O+":  {"O+", "A+", "B+", "AB+"},
		"A-":  {"A-", "A+", "AB-", "AB+"},
		"A+":  {"A+", "AB+"},
		"B-":  {"B-", "B+", "AB-", "AB+"},
		"B+":  {"B+", "AB+"},
		"AB-": {"AB-", "AB+"},
		"AB+": {"AB+"},
	}

	require.Len(t, BloodTypes, len(want))

	for donor, recipients := range want {
		assert.ElementsMatch(t, recipients, donor.Recipients(), "recipients of %s", donor)

		for _, recipient := range BloodTypes {
			expected := false
			for _, r := range recipients {
				if r == recipient {
					expected = true
				}
			}
			assert.Equal(t, expected, CanDonateTo(donor, recipient), "%s -> %s", donor, recipient)
		}
	}
}

func TestCanDonateToDirection(t *testing.T) {
	assert.True(t, CanDonateTo(BloodTypeONeg, BloodTypeAPos))
	assert.False(t, CanDonateTo(BloodTypeAPos, BloodTypeONeg))
	assert.False(t, CanDonateTo(BloodTypeAPos, BloodTypeOPos))
	assert.False(t, CanDonateTo("X", BloodTypeABPos))
}

func TestRecipientsReturnsCopy(t *testing.T) {
	r := BloodTypeOPos.Recipients()
	r[0] = BloodTypeABNeg

	assert.Equal(t, BloodTypeOPos, BloodTypeOPos.Recipients()[0])
}

func TestDonorsForRecipient(t *testing.T) {
	assert.ElementsMatch(t, BloodTypes, BloodTypeABPos.Donors())
	assert.Equal(t, []BloodType{BloodTypeONeg}, BloodTypeONeg.Donors())
	assert.ElementsMatch(t, []BloodType{BloodTypeANeg, BloodTypeONeg}, BloodTypeANeg.Donors())
}

func TestParseBloodType(t *testing.T) {
	tests := []struct {
		in      string
		want    BloodType
		wantErr bool
	}{
		{in: "O+", want: BloodTypeOPos},
		{in: " ab- ", want: BloodTypeABNeg},
		{in: "a+", want: BloodTypeAPos},
		{in: "", wantErr: true},
		{in: "O", wantErr: true},
		{in: "AB", wantErr: true},
		{in: "C+", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBloodType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBloodType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRare(t *testing.T) {
	assert.True(t, BloodTypeBNeg.Rare())
	assert.True(t, BloodTypeABNeg.Rare())
	assert.False(t, BloodTypeOPos.Rare())
	assert.False(t, BloodType("Z-").Rare())
}

func TestNotificationPolicy(t *testing.T) {
	cfg := &Config{
		RequestRadiusKm:   15,
		NotifyTopN:        10,
		UrgencyRadiusKm:   map[string]float64{"critical": 40, "bogus": 1},
		UrgencyNotifyTopN: map[string]int{"High": 20},
	}

	p := cfg.Policy()

	assert.Equal(t, 40.0, p.Radius(UrgencyCritical))
	assert.Equal(t, 15.0, p.Radius(UrgencyLow))
	assert.Equal(t, 20, p.TopN(UrgencyHigh))
	assert.Equal(t, 10, p.TopN(UrgencyCritical))
	assert.Len(t, p.UrgencyRadiusKm, 1)
}

func TestDonorArea(t *testing.T) {
	d := &Donor{Location: "Banjara Hills, Hyderabad"}
	assert.Equal(t, "Banjara Hills", d.Area())

	d.Location = "Gachibowli"
	assert.Equal(t, "Gachibowli", d.Area())
}

func TestDonorCloneIsDeep(t *testing.T) {
	d := &Donor{ID: "1", Badges: []string{"New Donor"}}
	c := d.Clone()
	c.Badges[0] = "changed"
	c.AddBadge("Hero Donor")

	assert.Equal(t, []string{"New Donor"}, d.Badges)
	assert.False(t, c.AddBadge("Hero Donor"))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"phone": "is required", "name": "is required"}}
	assert.Equal(t, "validation failed: name: is required; phone: is required", err.Error())
}
