package pricing

// Fee constants from the handbook's registration fee table, in whole rupiah.
// Money is int64 end to end; no floats anywhere in this package.
const (
	PerParticipantRate int64 = 100_000
	PerOfficialRate    int64 = 50_000
	TeamFlatFee        int64 = 1_200_000
)

// FlatFeeSportID is the one sport billed as a roster instead of per head.
const FlatFeeSportID = "voli_indoor"

type Breakdown struct {
	ParticipantFee int64 `json:"participantFee"`
	OfficialFee    int64 `json:"officialFee"`
	Total          int64 `json:"total"`
	IsTeamSport    bool  `json:"isTeamSport"`
}

// CalculateRegistrationCost derives the fee breakdown for one sport. Pure:
// identical inputs always give identical output. Zero or negative counts are
// valid and simply contribute nothing; enforcing positive counts is the
// caller's form-level concern.
func CalculateRegistrationCost(sportID string, participantCount, officialCount int) Breakdown {
	if participantCount < 0 {
		participantCount = 0
	}

	if officialCount < 0 {
		officialCount = 0
	}

	isTeamSport := sportID == FlatFeeSportID

	var participantFee int64

	if isTeamSport {
		// a roster, not per-head billing
		if participantCount > 0 {
			participantFee = TeamFlatFee
		}
	} else {
		participantFee = int64(participantCount) * PerParticipantRate
	}

	officialFee := int64(officialCount) * PerOfficialRate

	return Breakdown{
		ParticipantFee: participantFee,
		OfficialFee:    officialFee,
		Total:          participantFee + officialFee,
		IsTeamSport:    isTeamSport,
	}
}

// Line is one category's contribution to a grand total: the per-entry price
// from the catalog times the number of entries taken under it.
type Line struct {
	PricePerEntry int64 `json:"pricePerEntry"`
	Entries       int   `json:"entries"`
}

// GrandTotal sums category lines. Negative entry counts contribute nothing.
func GrandTotal(lines []Line) int64 {
	var total int64

	for _, l := range lines {
		if l.Entries <= 0 {
			continue
		}

		total += l.PricePerEntry * int64(l.Entries)
	}

	return total
}
