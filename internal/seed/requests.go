package seed

import (
	"context"
	"fmt"
	"math/rand"

	"bloodconnect/internal/service"
	"bloodconnect/pkg/types"
)

var fakeHospitals = []struct {
	Name      string
	Location  string
	Latitude  float64
	Longitude float64
}{
	{"Apollo Hospitals", "Jubilee Hills, Hyderabad", 17.4239, 78.4738},
	{"Care Hospitals", "Banjara Hills, Hyderabad", 17.4126, 78.4438},
	{"KIMS Hospitals", "Secunderabad, Hyderabad", 17.4433, 78.4983},
	{"Continental Hospitals", "Gachibowli, Hyderabad", 17.4196, 78.3408},
	{"Yashoda Hospitals", "Somajiguda, Hyderabad", 17.4241, 78.4590},
}

var fakePatients = []string{"Asha", "Ravi", "Kiran", "Sana", "Mohan", "Priya", "Gopal", "Nisha"}

// SeedFakeRequests submits count random requests through the service so
// they are matched and notified like real ones, then has some notified
// donors respond and donate.
func SeedFakeRequests(ctx context.Context, app *service.Service, rng *rand.Rand, count int) (int, error) {
	created := 0
	for i := 0; i < count; i++ {
		hospital := fakeHospitals[rng.Intn(len(fakeHospitals))]

		form := &types.BloodRequestForm{
			PatientName:  fakePatients[rng.Intn(len(fakePatients))],
			BloodType:    string(types.BloodTypes[rng.Intn(len(types.BloodTypes))]),
			UnitsNeeded:  rng.Intn(3) + 1,
			Urgency:      string(pickWeightedUrgency(rng)),
			HospitalName: hospital.Name,
			Contact:      fmt.Sprintf("+91-90000%05d", rng.Intn(100000)),
			Location:     hospital.Location,
			Latitude:     hospital.Latitude,
			Longitude:    hospital.Longitude,
		}

		result, err := app.Submit(ctx, form)
		if err != nil {
			return created, fmt.Errorf("failed to submit fake request %d: %w", i+1, err)
		}
		created++

		for _, notification := range result.Notified {
			switch roll := rng.Intn(100); {
			case roll < 50:
				if _, err := app.Accept(ctx, notification.ID); err != nil {
					return created, fmt.Errorf("failed to accept fake notification: %w", err)
				}
				_, err := app.RecordDonation(ctx, notification.DonorID, &types.DonationForm{
					RequestID: result.Request.ID,
					Units:     1,
				})
				if err != nil {
					return created, fmt.Errorf("failed to record fake donation: %w", err)
				}
			case roll < 75:
				if _, err := app.Decline(ctx, notification.ID); err != nil {
					return created, fmt.Errorf("failed to decline fake notification: %w", err)
				}
			}
		}
	}

	return created, nil
}

func pickWeightedUrgency(rng *rand.Rand) types.Urgency {
	switch roll := rng.Intn(100); {
	case roll < 20:
		return types.UrgencyCritical
	case roll < 50:
		return types.UrgencyHigh
	case roll < 80:
		return types.UrgencyMedium
	default:
		return types.UrgencyLow
	}
}
