package types

import (
	"fmt"
	"strings"
)

type BloodType string

const (
	BloodTypeONeg  BloodType = "O-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeAPos  BloodType = "A+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeABPos BloodType = "AB+"
)

// BloodTypes lists every type in the order the forms present them.
var BloodTypes = []BloodType{
	BloodTypeAPos, BloodTypeANeg,
	BloodTypeBPos, BloodTypeBNeg,
	BloodTypeABPos, BloodTypeABNeg,
	BloodTypeOPos, BloodTypeONeg,
}

// compatibility maps a donor type to the recipient types it can serve.
var compatibility = map[BloodType][]BloodType{
	BloodTypeONeg:  {BloodTypeONeg, BloodTypeOPos, BloodTypeANeg, BloodTypeAPos, BloodTypeBNeg, BloodTypeBPos, BloodTypeABNeg, BloodTypeABPos},
	BloodTypeOPos:  {BloodTypeOPos, BloodTypeAPos, BloodTypeBPos, BloodTypeABPos},
	BloodTypeANeg:  {BloodTypeANeg, BloodTypeAPos, BloodTypeABNeg, BloodTypeABPos},
	BloodTypeAPos:  {BloodTypeAPos, BloodTypeABPos},
	BloodTypeBNeg:  {BloodTypeBNeg, BloodTypeBPos, BloodTypeABNeg, BloodTypeABPos},
	BloodTypeBPos:  {BloodTypeBPos, BloodTypeABPos},
	BloodTypeABNeg: {BloodTypeABNeg, BloodTypeABPos},
	BloodTypeABPos: {BloodTypeABPos},
}

func ParseBloodType(s string) (BloodType, error) {
	bt := BloodType(strings.ToUpper(strings.TrimSpace(s)))
	if !bt.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBloodType, s)
	}
	return bt, nil
}

func (b BloodType) Valid() bool {
	_, ok := compatibility[b]
	return ok
}

func (b BloodType) String() string {
	return string(b)
}

// Rare reports whether the type is Rh negative.
func (b BloodType) Rare() bool {
	return b.Valid() && strings.HasSuffix(string(b), "-")
}

// Recipients returns a copy of the types a donor of type b can give to.
func (b BloodType) Recipients() []BloodType {
	r := compatibility[b]
	out := make([]BloodType, len(r))
	copy(out, r)
	return out
}

// CanDonateTo reports whether blood of type donor can be given to a
// recipient of type recipient. The lookup is keyed by the donor type.
func CanDonateTo(donor, recipient BloodType) bool {
	for _, t := range compatibility[donor] {
		if t == recipient {
			return true
		}
	}
	return false
}

// Donors returns every type whose blood can serve the recipient type.
func (b BloodType) Donors() []BloodType {
	out := make([]BloodType, 0, len(BloodTypes))
	for _, donor := range BloodTypes {
		if CanDonateTo(donor, b) {
			out = append(out, donor)
		}
	}
	return out
}
