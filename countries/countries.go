package countries

import (
	"encoding/json"
	"math/rand"
	"os"
	"strings"
)

// Country mirrors the restcountries shape of the bundled dataset.
type Country struct {
	Name       Name              `json:"name"`
	CCA2       string            `json:"cca2"`
	Capital    []string          `json:"capital"`
	Region     string            `json:"region"`
	Subregion  string            `json:"subregion"`
	Population int64             `json:"population"`
	Flags      Flags             `json:"flags"`
	Languages  map[string]string `json:"languages,omitempty"`
}

type Name struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt,omitempty"`
}

// Dataset is the static country list, loaded once at startup.
type Dataset struct {
	countries []Country
}

func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []Country
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return &Dataset{countries: list}, nil
}

// All returns every country in the dataset.
func (d *Dataset) All() []Country {
	return d.countries
}

func (d *Dataset) Len() int {
	return len(d.countries)
}

// Find matches a country by its common or official name, case-insensitively.
func (d *Dataset) Find(name string) (Country, bool) {
	lower := strings.ToLower(name)
	for _, c := range d.countries {
		if strings.ToLower(c.Name.Common) == lower || strings.ToLower(c.Name.Official) == lower {
			return c, true
		}
	}
	return Country{}, false
}

// Random returns a uniformly chosen country.
func (d *Dataset) Random() (Country, bool) {
	if len(d.countries) == 0 {
		return Country{}, false
	}
	return d.countries[rand.Intn(len(d.countries))], true
}

// FilterByNames keeps the dataset entries whose common name is in names,
// preserving dataset order.
func (d *Dataset) FilterByNames(names []string) []Country {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}

	matched := []Country{}
	for _, c := range d.countries {
		if set[c.Name.Common] {
			matched = append(matched, c)
		}
	}
	return matched
}
