package pricing

// Base registration fees per category, in INR.
var CategoryFees = map[string]int64{
	"delegate_early_bird": 12000,
	"delegate_regular":    15000,
	"delegate_late":       18000,
	"student_early_bird":  6000,
	"student_regular":     8000,
	"student_late":        10000,
	"accompanying_person": 5000,
	"workshop_only":       3000,
}

// Nightly accommodation rates per room type, in INR.
var RoomRates = map[string]int64{
	"standard": 6000,
	"deluxe":   8000,
	"suite":    12000,
}

// Accommodation is billed for a fixed two nights regardless of the
// check-in/check-out dates supplied with the registration.
const accommodationNights = 2

// Amount returns the total registration fee in paise. Unknown categories and
// room types price to zero rather than failing: submissions are accepted even
// when the fee tier is not in the table.
func Amount(category string, accommodationRequired bool, roomType string) int64 {
	fee, ok := CategoryFees[category]
	if !ok {
		fee = 0
	}

	if accommodationRequired && roomType != "" {
		rate, ok := RoomRates[roomType]
		if !ok {
			rate = 0
		}
		fee += rate * accommodationNights
	}

	return fee * 100
}
