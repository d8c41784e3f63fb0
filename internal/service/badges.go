package service

import "bloodconnect/pkg/types"

const (
	BadgeNewDonor           = "New Donor"
	BadgeFirstTimeDonor     = "First Time Donor"
	BadgeRegularDonor       = "Regular Donor"
	BadgeLifeSaver          = "Life Saver"
	BadgeHeroDonor          = "Hero Donor"
	BadgeEmergencyResponder = "Emergency Responder"
	BadgeRareBloodHero      = "Rare Blood Hero"
	BadgeLocalChampion      = "Local Champion"
)

type Badge struct {
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BadgeCatalogue lists the badges a donor can earn, in display order.
var BadgeCatalogue = []Badge{
	{Icon: "🩸", Name: BadgeFirstTimeDonor, Description: "Complete your first donation"},
	{Icon: "⭐", Name: BadgeRegularDonor, Description: "Donate 3 times"},
	{Icon: "🏆", Name: BadgeLifeSaver, Description: "Donate 10 times"},
	{Icon: "💎", Name: BadgeHeroDonor, Description: "Donate 25 times"},
	{Icon: "🔥", Name: BadgeEmergencyResponder, Description: "Respond to 5 urgent requests"},
	{Icon: "🌟", Name: BadgeRareBloodHero, Description: "Donate rare blood type"},
	{Icon: "📍", Name: BadgeLocalChampion, Description: "Top donor in your area"},
}

var donationMilestones = []struct {
	count int
	badge string
}{
	{1, BadgeFirstTimeDonor},
	{3, BadgeRegularDonor},
	{10, BadgeLifeSaver},
	{25, BadgeHeroDonor},
}

const urgentResponsesForBadge = 5

// earnedBadges lists the stored badges a donor qualifies for. Local
// Champion depends on the other donors in the area and is worked out when
// the leaderboard is built.
func earnedBadges(donations, urgentAccepted int, bloodType types.BloodType) []string {
	out := make([]string, 0, 6)
	for _, m := range donationMilestones {
		if donations >= m.count {
			out = append(out, m.badge)
		}
	}
	if urgentAccepted >= urgentResponsesForBadge {
		out = append(out, BadgeEmergencyResponder)
	}
	if donations > 0 && bloodType.Rare() {
		out = append(out, BadgeRareBloodHero)
	}
	return out
}

// awardBadges adds any badge the donor has earned but does not hold yet and
// returns the new ones. The caller persists the donor.
func awardBadges(donor *types.Donor, donations, urgentAccepted int) []string {
	var added []string
	for _, badge := range earnedBadges(donations, urgentAccepted, donor.BloodType) {
		if donor.AddBadge(badge) {
			added = append(added, badge)
		}
	}
	return added
}
