package types

import (
	"slices"
	"strings"
	"time"
)

type DonorStatus string

const (
	DonorStatusAvailable   DonorStatus = "Available"
	DonorStatusUnavailable DonorStatus = "Unavailable"
)

func (s DonorStatus) Valid() bool {
	return s == DonorStatusAvailable || s == DonorStatusUnavailable
}

type Donor struct {
	ID                string      `db:"id" json:"id"`
	Name              string      `db:"name" json:"name"`
	BloodType         BloodType   `db:"blood_type" json:"bloodType"`
	Phone             string      `db:"phone" json:"phone"`
	Location          string      `db:"location" json:"location"`
	Latitude          float64     `db:"latitude" json:"latitude"`
	Longitude         float64     `db:"longitude" json:"longitude"`
	Age               int         `db:"age" json:"age,omitempty"`
	MedicalConditions []string    `db:"medical_conditions" json:"medicalConditions,omitempty"`
	Status            DonorStatus `db:"status" json:"status"`
	LastDonation      *time.Time  `db:"last_donation" json:"lastDonation,omitempty"`
	Points            int         `db:"points" json:"points"`
	Badges            []string    `db:"badges" json:"badges"`
	RegisteredAt      time.Time   `db:"registered_at" json:"registeredAt"`
}

func (d *Donor) Available() bool {
	return d.Status == DonorStatusAvailable
}

func (d *Donor) HasBadge(badge string) bool {
	return slices.Contains(d.Badges, badge)
}

// AddBadge appends the badge unless the donor already holds it.
func (d *Donor) AddBadge(badge string) bool {
	if d.HasBadge(badge) {
		return false
	}
	d.Badges = append(d.Badges, badge)
	return true
}

// Area is the first comma separated segment of the location label,
// "Banjara Hills, Hyderabad" -> "Banjara Hills".
func (d *Donor) Area() string {
	area, _, _ := strings.Cut(d.Location, ",")
	return strings.TrimSpace(area)
}

// Clone returns a deep copy so callers can't mutate shared slices.
func (d *Donor) Clone() *Donor {
	c := *d
	c.Badges = slices.Clone(d.Badges)
	c.MedicalConditions = slices.Clone(d.MedicalConditions)
	if d.LastDonation != nil {
		t := *d.LastDonation
		c.LastDonation = &t
	}
	return &c
}

type Donation struct {
	ID            string    `db:"id" json:"id"`
	DonorID       string    `db:"donor_id" json:"donorId"`
	RequestID     *string   `db:"request_id" json:"requestId,omitempty"`
	Units         int       `db:"units" json:"units"`
	PointsAwarded int       `db:"points_awarded" json:"pointsAwarded"`
	DonatedAt     time.Time `db:"donated_at" json:"donatedAt"`
}
