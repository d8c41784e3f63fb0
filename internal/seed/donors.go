package seed

import (
	"context"
	"errors"
	"fmt"

	"bloodconnect/pkg/types"
)

type DonorRepository interface {
	Donor(ctx context.Context, donorID string) (*types.Donor, error)
	CreateDonor(ctx context.Context, donor *types.Donor) error
	UpdateDonor(ctx context.Context, donor *types.Donor) error
}

type fakeDonorSeed struct {
	ID        string
	Name      string
	BloodType types.BloodType
	Phone     string
	Location  string
	Latitude  float64
	Longitude float64
	Age       int
}

// To generate new IDs: `go run ./cmd/bloodconnect nanoid`
var fakeDonors = []fakeDonorSeed{
	{ID: "Xq3vN8kPzR2mW7tY1bLcD", Name: "Ananya Reddy", BloodType: types.BloodTypeOPos, Phone: "+91-9800000001", Location: "Banjara Hills, Hyderabad", Latitude: 17.4156, Longitude: 78.4347, Age: 28},
	{ID: "f9KwT2aLm5QzB8nV4xRjH", Name: "Vikram Rao", BloodType: types.BloodTypeONeg, Phone: "+91-9800000002", Location: "Jubilee Hills, Hyderabad", Latitude: 17.4325, Longitude: 78.4071, Age: 35},
	{ID: "pL7dG3sYw9EcU1hN6kZtA", Name: "Meera Iyer", BloodType: types.BloodTypeAPos, Phone: "+91-9800000003", Location: "Madhapur, Hyderabad", Latitude: 17.4483, Longitude: 78.3915, Age: 41},
	{ID: "R4jB8vWn2TxK6qM0sFyCe", Name: "Arjun Kumar", BloodType: types.BloodTypeANeg, Phone: "+91-9800000004", Location: "Gachibowli, Hyderabad", Latitude: 17.4401, Longitude: 78.3489, Age: 24},
	{ID: "zH5mQ1cXr8LpD3wK9nVbT", Name: "Fatima Khan", BloodType: types.BloodTypeBPos, Phone: "+91-9800000005", Location: "Secunderabad, Hyderabad", Latitude: 17.4399, Longitude: 78.4983, Age: 33},
	{ID: "Nc2Tq7yJk4RwS9dF1gMxP", Name: "Rahul Sharma", BloodType: types.BloodTypeBNeg, Phone: "+91-9800000006", Location: "Kukatpally, Hyderabad", Latitude: 17.4849, Longitude: 78.4138, Age: 47},
	{ID: "bW6eK0uHs3VyA8pL5tQnZ", Name: "Lakshmi Naidu", BloodType: types.BloodTypeABPos, Phone: "+91-9800000007", Location: "Ameerpet, Hyderabad", Latitude: 17.4375, Longitude: 78.4482, Age: 52},
	{ID: "Gy1sR9xMv4Dk7Bn2JcWqE", Name: "Imran Ali", BloodType: types.BloodTypeABNeg, Phone: "+91-9800000008", Location: "Begumpet, Hyderabad", Latitude: 17.4447, Longitude: 78.4664, Age: 30},
	{ID: "tA8kP3nZq6Xw1Fh5LmRyC", Name: "Divya Menon", BloodType: types.BloodTypeOPos, Phone: "+91-9800000009", Location: "Kondapur, Hyderabad", Latitude: 17.4700, Longitude: 78.3570, Age: 26},
	{ID: "Ue4Jw7cTb2Nm9Qs0HvKdG", Name: "Suresh Babu", BloodType: types.BloodTypeAPos, Phone: "+91-9800000010", Location: "Dilsukhnagar, Hyderabad", Latitude: 17.3688, Longitude: 78.5247, Age: 58},
}

// SeedFakeDonors upserts the fixed demo donors. Points, badges and
// availability of existing donors are left alone.
func SeedFakeDonors(ctx context.Context, repo DonorRepository) (int, error) {
	seeded := 0
	for _, fake := range fakeDonors {
		existing, err := repo.Donor(ctx, fake.ID)
		if err != nil {
			if !errors.Is(err, types.ErrDonorNotFound) {
				return seeded, fmt.Errorf("failed to fetch fake donor %s: %w", fake.ID, err)
			}

			donor := &types.Donor{
				ID:                fake.ID,
				Name:              fake.Name,
				BloodType:         fake.BloodType,
				Phone:             fake.Phone,
				Location:          fake.Location,
				Latitude:          fake.Latitude,
				Longitude:         fake.Longitude,
				Age:               fake.Age,
				MedicalConditions: []string{"None"},
				Status:            types.DonorStatusAvailable,
				Badges:            []string{"New Donor"},
			}

			if err := repo.CreateDonor(ctx, donor); err != nil {
				return seeded, fmt.Errorf("failed to create fake donor %s: %w", fake.ID, err)
			}
			seeded++
			continue
		}

		existing.Name = fake.Name
		existing.BloodType = fake.BloodType
		existing.Phone = fake.Phone
		existing.Location = fake.Location
		existing.Latitude = fake.Latitude
		existing.Longitude = fake.Longitude
		existing.Age = fake.Age

		if err := repo.UpdateDonor(ctx, existing); err != nil {
			return seeded, fmt.Errorf("failed to update fake donor %s: %w", fake.ID, err)
		}
		seeded++
	}

	return seeded, nil
}
