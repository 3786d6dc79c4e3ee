package trips

import (
	"strings"

	"hermannm.dev/enumnames"
)

// City identifies one of the three fixed datasets that trip statistics can be
// computed over.
type City uint8

const (
	CityChicago City = iota + 1
	CityNewYork
	CityWashington
)

var cityMap = enumnames.NewMap(map[City]string{
	CityChicago:    "Chicago",
	CityNewYork:    "New York",
	CityWashington: "Washington",
})

var cityFileNames = map[City]string{
	CityChicago:    "chicago.csv",
	CityNewYork:    "new_york_city.csv",
	CityWashington: "washington.csv",
}

// CityFromName matches an operator-entered city name, case-insensitively.
// 'New York City' is accepted as an alias for 'New York'.
func CityFromName(name string) (City, bool) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "New York City") {
		return CityNewYork, true
	}

	for city := range cityFileNames {
		if strings.EqualFold(name, city.String()) {
			return city, true
		}
	}
	return 0, false
}

func (city City) IsValid() bool {
	return cityMap.ContainsEnumValue(city)
}

func (city City) String() string {
	return cityMap.GetNameOrFallback(city, "INVALID_CITY")
}

// FileName returns the name of the CSV file holding this city's trip data,
// relative to the configured data directory.
func (city City) FileName() string {
	return cityFileNames[city]
}

// CityNames lists the valid city names in a fixed order, for prompt messages.
func CityNames() []string {
	return []string{
		CityChicago.String(),
		CityNewYork.String(),
		CityWashington.String(),
	}
}
