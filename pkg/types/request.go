package types

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type Urgency string

const (
	UrgencyCritical Urgency = "Critical"
	UrgencyHigh     Urgency = "High"
	UrgencyMedium   Urgency = "Medium"
	UrgencyLow      Urgency = "Low"
)

var Urgencies = []Urgency{UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow}

func ParseUrgency(s string) (Urgency, error) {
	for _, u := range Urgencies {
		if strings.EqualFold(strings.TrimSpace(s), string(u)) {
			return u, nil
		}
	}
	return "", fmt.Errorf("invalid urgency %q", s)
}

// Urgent is true for the levels that earn responders bonus points.
func (u Urgency) Urgent() bool {
	return u == UrgencyCritical || u == UrgencyHigh
}

type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "Active"
	RequestStatusFulfilled RequestStatus = "Fulfilled"
	RequestStatusCancelled RequestStatus = "Cancelled"
)

type ResponseDecision string

const (
	ResponseAccepted ResponseDecision = "Accepted"
	ResponseDeclined ResponseDecision = "Declined"
)

type DonorResponse struct {
	RequestID      string           `db:"request_id" json:"-"`
	DonorID        string           `db:"donor_id" json:"donorId"`
	NotificationID string           `db:"notification_id" json:"notificationId"`
	Decision       ResponseDecision `db:"decision" json:"decision"`
	RespondedAt    time.Time        `db:"responded_at" json:"respondedAt"`
}

type BloodRequest struct {
	ID             string        `db:"id" json:"id"`
	PatientName    string        `db:"patient_name" json:"patientName"`
	BloodType      BloodType     `db:"blood_type" json:"bloodType"`
	UnitsNeeded    int           `db:"units_needed" json:"unitsNeeded"`
	Urgency        Urgency       `db:"urgency" json:"urgency"`
	HospitalName   string        `db:"hospital_name" json:"hospitalName"`
	Contact        string        `db:"contact" json:"contact"`
	Location       string        `db:"location" json:"location"`
	Latitude       float64       `db:"latitude" json:"latitude"`
	Longitude      float64       `db:"longitude" json:"longitude"`
	AdditionalInfo string        `db:"additional_info" json:"additionalInfo,omitempty"`
	Status         RequestStatus `db:"status" json:"status"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`

	Responses []DonorResponse `db:"-" json:"responses"`
}

func (r *BloodRequest) Clone() *BloodRequest {
	c := *r
	c.Responses = slices.Clone(r.Responses)
	return &c
}

// Response returns the donor's response to the request, if any.
func (r *BloodRequest) Response(donorID string) (DonorResponse, bool) {
	for _, resp := range r.Responses {
		if resp.DonorID == donorID {
			return resp, true
		}
	}
	return DonorResponse{}, false
}

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

type Notification struct {
	ID        string             `db:"id" json:"id"`
	DonorID   string             `db:"donor_id" json:"donorId"`
	Message   string             `db:"message" json:"message"`
	RequestID *string            `db:"request_id" json:"requestId,omitempty"`
	Status    NotificationStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"createdAt"`
}
