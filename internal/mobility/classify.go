package mobility

// Activity and travel-mode codes from the harmonized time-use coding frame.
// The code sets are package data so the classification rules stay auditable
// in one place.
const (
	walkActivityCode = 43
	bikeActivityCode = 44

	walkModeCode = 3
	bikeModeCode = 4
)

// travelActivityCodes lists the main-activity codes that denote travel
// episodes even when no travel-mode code was recorded.
var travelActivityCodes = map[int]bool{
	43: true, // walking
	44: true, // cycling
	63: true, // travel to/from work
	64: true, // travel related to study
	65: true, // travel related to shopping and services
	66: true, // travel related to household care
	67: true, // travel related to leisure
	68: true, // other or unspecified travel
}

// IsAnyTravel reports whether the record is a travel episode of any mode.
func IsAnyTravel(r ActivityRecord) bool {
	return r.TravelModeCode > 0 || travelActivityCodes[r.MainActivityCode]
}

// IsWalk reports whether the record is a walking episode.
func IsWalk(r ActivityRecord) bool {
	return r.MainActivityCode == walkActivityCode || r.TravelModeCode == walkModeCode
}

// IsBike reports whether the record is a cycling episode.
//
// Travel-mode code 4 is documented as "other physical transport", not
// exclusively cycling. Counting it toward Bike is a deliberate approximation
// carried over from the source analysis; do not tighten it here without
// revisiting the published figures.
func IsBike(r ActivityRecord) bool {
	return r.MainActivityCode == bikeActivityCode || r.TravelModeCode == bikeModeCode
}

// Categories returns every category the record counts toward. A record can
// match AnyTravel together with Walk or Bike; membership is never exclusive.
func Categories(r ActivityRecord) []Category {
	var cats []Category
	if IsWalk(r) {
		cats = append(cats, CategoryWalk)
	}
	if IsBike(r) {
		cats = append(cats, CategoryBike)
	}
	if IsAnyTravel(r) {
		cats = append(cats, CategoryAnyTravel)
	}
	return cats
}

// matches dispatches to the category's predicate.
func matches(r ActivityRecord, c Category) bool {
	switch c {
	case CategoryWalk:
		return IsWalk(r)
	case CategoryBike:
		return IsBike(r)
	case CategoryAnyTravel:
		return IsAnyTravel(r)
	default:
		return false
	}
}
