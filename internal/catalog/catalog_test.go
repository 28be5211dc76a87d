package catalog

import "testing"

func TestSportByID(t *testing.T) {
	s, ok := SportByID("tapak_suci")

	if !ok {
		t.Fatalf("expected tapak_suci to exist")
	}

	if s.Name != "Tapak Suci" {
		t.Fatalf("got name %q", s.Name)
	}

	if _, ok := SportByID("sepak_takraw"); ok {
		t.Fatalf("unknown sport should be a miss, not a hit")
	}
}

func TestCategoryByID_ScansAllSports(t *testing.T) {
	c, ok := CategoryByID("vi_putri")

	if !ok {
		t.Fatalf("expected vi_putri to exist")
	}

	if c.Type != TypeBeregu {
		t.Fatalf("vi_putri should be beregu, got %s", c.Type)
	}

	if _, ok := CategoryByID("nope"); ok {
		t.Fatalf("unknown category should be a miss")
	}
}

func TestSportForCategory(t *testing.T) {
	s, ok := SportForCategory("bt_ganda_campuran")

	if !ok || s.ID != "badminton" {
		t.Fatalf("got %q ok=%v, want badminton", s.ID, ok)
	}
}

func TestTechnicalParameters_SportLevelFirst(t *testing.T) {
	// panahan declares divisi-busur at sport level and jarak-tembak on the
	// perorangan category; the effective set is sport-level then category-level.
	params := TechnicalParameters("panahan", "pn_perorangan")

	if len(params) != 2 {
		t.Fatalf("got %d params, want 2", len(params))
	}

	if params[0].ID != "divisi-busur" {
		t.Fatalf("sport-level param should come first, got %s", params[0].ID)
	}

	if params[1].ID != "jarak-tembak" {
		t.Fatalf("category-level param should come second, got %s", params[1].ID)
	}
}

func TestTechnicalParameters_UnknownIDs(t *testing.T) {
	if got := TechnicalParameters("nope", "pn_perorangan"); len(got) != 0 {
		t.Fatalf("unknown sport should yield empty list, got %v", got)
	}

	// unknown category still returns the sport-level params
	if got := TechnicalParameters("panahan", "nope"); len(got) != 1 {
		t.Fatalf("unknown category should yield sport-level params only, got %v", got)
	}

	// sports with no declared params yield an empty list
	if got := TechnicalParameters("badminton", "bt_tunggal_putra"); len(got) != 0 {
		t.Fatalf("badminton declares no params, got %v", got)
	}
}

func TestLabels_AreTotal(t *testing.T) {
	tests := []struct {
		in   CategoryType
		want string
	}{
		{TypeTunggal, "Tunggal / Perorangan"},
		{TypeGanda, "Ganda"},
		{TypeBeregu, "Beregu"},
		{CategoryType("mystery"), "mystery"}, // unknown echoes back, never panics
	}

	for _, tt := range tests {
		if got := CategoryTypeLabel(tt.in); got != tt.want {
			t.Errorf("CategoryTypeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	levels := []struct {
		in   EducationLevel
		want string
	}{
		{LevelSMP, "SMP/MTs"},
		{LevelSMA, "SMA/SMK/MA"},
		{LevelMahasiswa, "Mahasiswa"},
		{EducationLevel("tk"), "tk"},
	}

	for _, tt := range levels {
		if got := EducationLevelLabel(tt.in); got != tt.want {
			t.Errorf("EducationLevelLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Sanity over the static data so a handbook transcription slip fails fast.
func TestCatalogDataIntegrity(t *testing.T) {
	seenSports := map[string]bool{}
	seenCategories := map[string]bool{}

	for _, s := range Sports {
		if s.ID == "" || s.Name == "" {
			t.Fatalf("sport with empty id/name: %+v", s)
		}

		if seenSports[s.ID] {
			t.Fatalf("duplicate sport id %s", s.ID)
		}
		seenSports[s.ID] = true

		if len(s.Categories) == 0 {
			t.Fatalf("sport %s has no categories", s.ID)
		}

		for _, c := range s.Categories {
			if seenCategories[c.ID] {
				t.Fatalf("duplicate category id %s", c.ID)
			}
			seenCategories[c.ID] = true

			switch c.Type {
			case TypeTunggal, TypeGanda, TypeBeregu:
			default:
				t.Fatalf("category %s has unknown type %q", c.ID, c.Type)
			}

			if c.PricePerEntry <= 0 {
				t.Fatalf("category %s has non-positive price", c.ID)
			}

			if c.Type == TypeBeregu && c.MaxParticipants > 0 && c.MaxParticipants < c.MinParticipants {
				t.Fatalf("category %s has max < min", c.ID)
			}

			for _, p := range c.Parameters {
				if len(p.Options) == 0 {
					t.Fatalf("parameter %s of %s has no options", p.ID, c.ID)
				}
			}
		}

		for _, p := range s.Parameters {
			if len(p.Options) == 0 {
				t.Fatalf("sport-level parameter %s of %s has no options", p.ID, s.ID)
			}
		}
	}
}
