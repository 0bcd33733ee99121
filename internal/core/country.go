package core

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// iso3166CSV is the ISO 3166-1 country list: alpha-2, alpha-3, numeric code,
// short name and official name (empty when the standard defines none).
//
//go:embed iso3166.csv
var iso3166CSV string

// isoCountry is one ISO 3166-1 entry.
type isoCountry struct {
	Alpha2       string
	Alpha3       string
	Numeric      string // Zero-padded, e.g. "004"
	Name         string // ISO short name, the canonical form
	OfficialName string
}

// ukAliases are spellings accepted as the United Kingdom before the ISO lookup.
var ukAliases = map[string]string{
	"UK":             "United Kingdom",
	"U.K.":           "United Kingdom",
	"UNITED KINGDOM": "United Kingdom",
}

var (
	countryIndexOnce sync.Once
	countries        []isoCountry
	countryIndex     map[string]string // upper-case code or name → ISO short name
)

// ResolveCountry maps free-text country input to its ISO 3166-1 short name.
//
// It accepts the UK aliases, alpha-2, alpha-3 and numeric codes, the ISO
// short and official names, and the English CLDR display names as extra
// spellings, all case-insensitive. Returns ok=false when the value is empty
// or not a recognized country.
func ResolveCountry(value string) (string, bool) {
	raw := strings.ToUpper(strings.TrimSpace(value))
	if raw == "" {
		return "", false
	}

	if name, ok := ukAliases[raw]; ok {
		return name, true
	}

	countryIndexOnce.Do(buildCountryIndex)
	name, ok := countryIndex[raw]
	return name, ok
}

// isoCountries returns the ISO 3166-1 list in alpha-2 order.
func isoCountries() []isoCountry {
	countryIndexOnce.Do(buildCountryIndex)
	out := make([]isoCountry, len(countries))
	copy(out, countries)
	return out
}

// buildCountryIndex loads the embedded table. ISO codes and names are
// indexed first so a CLDR display name never shadows them.
func buildCountryIndex() {
	list, err := parseCountries(iso3166CSV)
	if err != nil {
		panic(fmt.Sprintf("core: embedded iso3166.csv: %v", err))
	}
	countries = list

	countryIndex = make(map[string]string, len(list)*6)
	for _, c := range list {
		for _, key := range []string{c.Alpha2, c.Alpha3, c.Numeric, c.Name, c.OfficialName} {
			if key != "" {
				countryIndex[strings.ToUpper(key)] = c.Name
			}
		}
	}

	regions := display.English.Regions()
	for _, c := range list {
		region, err := language.ParseRegion(c.Alpha2)
		if err != nil {
			continue
		}
		alias := strings.ToUpper(regions.Name(region))
		if alias == "" || alias == c.Alpha2 {
			continue
		}
		if _, taken := countryIndex[alias]; !taken {
			countryIndex[alias] = c.Name
		}
	}
}

func parseCountries(data string) ([]isoCountry, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = 5

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no rows")
	}

	list := make([]isoCountry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		list = append(list, isoCountry{
			Alpha2:       row[0],
			Alpha3:       row[1],
			Numeric:      row[2],
			Name:         row[3],
			OfficialName: row[4],
		})
	}
	return list, nil
}
