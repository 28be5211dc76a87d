package catalog

// CategoryType decides how many participants one entry carries.
type CategoryType string

const (
	// single participant per entry
	TypeTunggal CategoryType = "tunggal"
	// exactly two participants per entry
	TypeGanda CategoryType = "ganda"
	// a team roster per entry, bounded by the category min/max
	TypeBeregu CategoryType = "beregu"
)

type EducationLevel string

const (
	LevelSMP       EducationLevel = "smp"
	LevelSMA       EducationLevel = "sma"
	LevelMahasiswa EducationLevel = "mahasiswa"
)

// EducationLevels lists every tier the handbook recognises, in bracket order.
var EducationLevels = []EducationLevel{LevelSMP, LevelSMA, LevelMahasiswa}

type ParameterOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// TechnicalParameter is an extra required/optional choice axis beyond the
// category itself (weight class, bow division, ...). It can be declared on the
// sport (applies to all categories) or on a single category.
type TechnicalParameter struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Required bool              `json:"required"`
	Options  []ParameterOption `json:"options"`
}

type SportCategory struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Type            CategoryType         `json:"categoryType"`
	PricePerEntry   int64                `json:"pricePerEntry"`
	MinParticipants int                  `json:"minParticipants,omitempty"`
	MaxParticipants int                  `json:"maxParticipants,omitempty"`
	Parameters      []TechnicalParameter `json:"parameters,omitempty"`
}

type Sport struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Parameters []TechnicalParameter `json:"parameters,omitempty"`
	Categories []SportCategory      `json:"categories"`
}

// SportByID looks up a sport. The second return is false when the id is
// unknown; that is a normal empty result, not an error.
func SportByID(id string) (Sport, bool) {
	for _, s := range Sports {
		if s.ID == id {
			return s, true
		}
	}

	return Sport{}, false
}

// CategoryByID scans every sport, first match wins. Category ids are globally
// unique by handbook convention, not enforced here.
func CategoryByID(id string) (SportCategory, bool) {
	for _, s := range Sports {
		for _, c := range s.Categories {
			if c.ID == id {
				return c, true
			}
		}
	}

	return SportCategory{}, false
}

// SportForCategory returns the sport owning the given category id.
func SportForCategory(categoryID string) (Sport, bool) {
	for _, s := range Sports {
		for _, c := range s.Categories {
			if c.ID == categoryID {
				return s, true
			}
		}
	}

	return Sport{}, false
}

// TechnicalParameters returns sport-level parameters followed by
// category-level ones. Unknown ids yield an empty list.
func TechnicalParameters(sportID, categoryID string) []TechnicalParameter {
	s, ok := SportByID(sportID)

	if !ok {
		return []TechnicalParameter{}
	}

	params := make([]TechnicalParameter, 0, len(s.Parameters))
	params = append(params, s.Parameters...)

	for _, c := range s.Categories {
		if c.ID == categoryID {
			params = append(params, c.Parameters...)
			break
		}
	}

	return params
}

// ParameterOptionValid reports whether optionID is one of the declared
// options for the parameter.
func (p TechnicalParameter) ParameterOptionValid(optionID string) bool {
	for _, o := range p.Options {
		if o.ID == optionID {
			return true
		}
	}

	return false
}

// ValidEducationLevel reports whether the given tier exists.
func ValidEducationLevel(level EducationLevel) bool {
	for _, l := range EducationLevels {
		if l == level {
			return true
		}
	}

	return false
}

// CategoryTypeLabel maps a category type to its display form. Unknown input
// is echoed back unchanged so the mapper stays total.
func CategoryTypeLabel(t CategoryType) string {
	switch t {
	case TypeTunggal:
		return "Tunggal / Perorangan"
	case TypeGanda:
		return "Ganda"
	case TypeBeregu:
		return "Beregu"
	default:
		return string(t)
	}
}

// EducationLevelLabel maps a tier to its display form, total like the above.
func EducationLevelLabel(level EducationLevel) string {
	switch level {
	case LevelSMP:
		return "SMP/MTs"
	case LevelSMA:
		return "SMA/SMK/MA"
	case LevelMahasiswa:
		return "Mahasiswa"
	default:
		return string(level)
	}
}
