package types

const (
	DefaultLatitude  = 17.4126
	DefaultLongitude = 78.4438
)

// MedicalConditionOptions are the choices offered on the registration form.
var MedicalConditionOptions = []string{"Diabetes", "Hypertension", "Heart Disease", "None"}

type DonorRegistrationForm struct {
	Name              string   `form:"name" validate:"required"`
	BloodType         string   `form:"blood_type" validate:"required,bloodtype"`
	Phone             string   `form:"phone" validate:"required"`
	Age               int      `form:"age" validate:"gte=18,lte=65"`
	Location          string   `form:"location" validate:"required"`
	Latitude          float64  `form:"latitude" validate:"gte=-90,lte=90"`
	Longitude         float64  `form:"longitude" validate:"gte=-180,lte=180"`
	MedicalConditions []string `form:"medical_conditions"`
	TermsAccepted     bool     `form:"terms_accepted" validate:"required"`
}

type BloodRequestForm struct {
	PatientName    string  `form:"patient_name" validate:"required"`
	BloodType      string  `form:"blood_type" validate:"required,bloodtype"`
	UnitsNeeded    int     `form:"units_needed" validate:"gte=1,lte=10"`
	Urgency        string  `form:"urgency" validate:"required,urgency"`
	HospitalName   string  `form:"hospital_name" validate:"required"`
	Contact        string  `form:"contact" validate:"required"`
	Location       string  `form:"location" validate:"required"`
	AdditionalInfo string  `form:"additional_info"`
	Latitude       float64 `form:"latitude" validate:"gte=-90,lte=90"`
	Longitude      float64 `form:"longitude" validate:"gte=-180,lte=180"`
}

type DonationForm struct {
	RequestID string `form:"request_id"`
	Units     int    `form:"units" validate:"gte=0,lte=10"`
}

// DonorSearchForm backs the find donors page. Latitude and Longitude are
// optional, the radius only applies when both are present.
type DonorSearchForm struct {
	BloodType string   `form:"blood_type"`
	Latitude  *float64 `form:"lat"`
	Longitude *float64 `form:"lon"`
	RadiusKm  float64  `form:"radius"`
}

// MatchQuery is the JSON body accepted by the match API.
type MatchQuery struct {
	BloodType string  `json:"bloodType"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	RadiusKm  float64 `json:"radiusKm"`
}

// MatchResult is one ranked entry returned by the match API.
type MatchResult struct {
	DonorID    string  `json:"donorId"`
	DistanceKm float64 `json:"distanceKm"`
}
