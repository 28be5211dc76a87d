package catalog

// Static reference data transcribed from the THB (technical handbook) for the
// current edition. Read-only at runtime; never mutate these slices.

// DefaultTeamMin is the roster floor applied when a beregu category does not
// declare its own minimum.
const DefaultTeamMin = 6

var Sports = []Sport{
	{
		ID:   "tapak_suci",
		Name: "Tapak Suci",
		Categories: []SportCategory{
			{
				ID:            "ts_tanding_perorangan",
				Name:          "Tanding Perorangan",
				Type:          TypeTunggal,
				PricePerEntry: 100_000,
				Parameters: []TechnicalParameter{
					{
						ID:       "kelas-tanding",
						Name:     "Kelas Tanding",
						Required: true,
						Options: []ParameterOption{
							{ID: "ringan", Label: "Kelas Ringan", Description: "s.d. 50 kg"},
							{ID: "sedang", Label: "Kelas Sedang", Description: "di atas 50 kg s.d. 60 kg"},
							{ID: "berat", Label: "Kelas Berat", Description: "di atas 60 kg"},
						},
					},
				},
			},
			{
				ID:            "ts_seni_tunggal",
				Name:          "Seni Tunggal",
				Type:          TypeTunggal,
				PricePerEntry: 100_000,
			},
			{
				ID:            "ts_seni_ganda",
				Name:          "Seni Ganda",
				Type:          TypeGanda,
				PricePerEntry: 150_000,
			},
			{
				ID:              "ts_seni_beregu",
				Name:            "Seni Beregu",
				Type:            TypeBeregu,
				PricePerEntry:   300_000,
				MinParticipants: 3,
				MaxParticipants: 3,
			},
		},
	},
	{
		ID:   "badminton",
		Name: "Bulu Tangkis",
		Categories: []SportCategory{
			{ID: "bt_tunggal_putra", Name: "Tunggal Putra", Type: TypeTunggal, PricePerEntry: 100_000},
			{ID: "bt_tunggal_putri", Name: "Tunggal Putri", Type: TypeTunggal, PricePerEntry: 100_000},
			{ID: "bt_ganda_putra", Name: "Ganda Putra", Type: TypeGanda, PricePerEntry: 150_000},
			{ID: "bt_ganda_putri", Name: "Ganda Putri", Type: TypeGanda, PricePerEntry: 150_000},
			{ID: "bt_ganda_campuran", Name: "Ganda Campuran", Type: TypeGanda, PricePerEntry: 150_000},
		},
	},
	{
		ID:   "voli_indoor",
		Name: "Bola Voli Indoor",
		Categories: []SportCategory{
			{
				ID:              "vi_putra",
				Name:            "Beregu Putra",
				Type:            TypeBeregu,
				PricePerEntry:   1_200_000,
				MinParticipants: 8,
				MaxParticipants: 12,
			},
			{
				ID:              "vi_putri",
				Name:            "Beregu Putri",
				Type:            TypeBeregu,
				PricePerEntry:   1_200_000,
				MinParticipants: 8,
				MaxParticipants: 12,
			},
		},
	},
	{
		ID:   "futsal",
		Name: "Futsal",
		Categories: []SportCategory{
			{
				ID:              "fs_putra",
				Name:            "Beregu Putra",
				Type:            TypeBeregu,
				PricePerEntry:   500_000,
				MinParticipants: 8,
				MaxParticipants: 12,
			},
		},
	},
	{
		ID:   "basket",
		Name: "Bola Basket",
		Categories: []SportCategory{
			{
				ID:              "bb_putra",
				Name:            "Beregu Putra",
				Type:            TypeBeregu,
				PricePerEntry:   500_000,
				MinParticipants: 8,
				MaxParticipants: 12,
			},
			{
				ID:              "bb_putri",
				Name:            "Beregu Putri",
				Type:            TypeBeregu,
				PricePerEntry:   500_000,
				MinParticipants: 8,
				MaxParticipants: 12,
			},
			{
				ID:              "bb_3x3",
				Name:            "3x3 Campuran",
				Type:            TypeBeregu,
				PricePerEntry:   300_000,
				MinParticipants: 3,
				MaxParticipants: 4,
			},
		},
	},
	{
		ID:   "atletik",
		Name: "Atletik",
		Categories: []SportCategory{
			{ID: "at_lari_100m", Name: "Lari 100 m", Type: TypeTunggal, PricePerEntry: 100_000},
			{ID: "at_lari_400m", Name: "Lari 400 m", Type: TypeTunggal, PricePerEntry: 100_000},
			{ID: "at_lompat_jauh", Name: "Lompat Jauh", Type: TypeTunggal, PricePerEntry: 100_000},
			{ID: "at_tolak_peluru", Name: "Tolak Peluru", Type: TypeTunggal, PricePerEntry: 100_000},
			{
				ID:              "at_estafet_4x100",
				Name:            "Estafet 4x100 m",
				Type:            TypeBeregu,
				PricePerEntry:   250_000,
				MinParticipants: 4,
				MaxParticipants: 6,
			},
		},
	},
	{
		ID:   "tenis_meja",
		Name: "Tenis Meja",
		Categories: []SportCategory{
			{ID: "tm_tunggal_putra", Name: "Tunggal Putra", Type: TypeTunggal, PricePerEntry: 100_000},
			{ID: "tm_tunggal_putri", Name: "Tunggal Putri", Type: TypeTunggal, PricePerEntry: 100_000},
			{ID: "tm_ganda_putra", Name: "Ganda Putra", Type: TypeGanda, PricePerEntry: 150_000},
			{ID: "tm_ganda_campuran", Name: "Ganda Campuran", Type: TypeGanda, PricePerEntry: 150_000},
		},
	},
	{
		ID:   "panahan",
		Name: "Panahan",
		// bow division applies to every panahan category
		Parameters: []TechnicalParameter{
			{
				ID:       "divisi-busur",
				Name:     "Divisi Busur",
				Required: true,
				Options: []ParameterOption{
					{ID: "nasional", Label: "Nasional"},
					{ID: "standar_nasional", Label: "Standar Nasional"},
					{ID: "barebow", Label: "Barebow"},
				},
			},
		},
		Categories: []SportCategory{
			{
				ID:            "pn_perorangan",
				Name:          "Perorangan",
				Type:          TypeTunggal,
				PricePerEntry: 100_000,
				Parameters: []TechnicalParameter{
					{
						ID:       "jarak-tembak",
						Name:     "Jarak Tembak",
						Required: true,
						Options: []ParameterOption{
							{ID: "20m", Label: "20 meter"},
							{ID: "30m", Label: "30 meter"},
							{ID: "40m", Label: "40 meter"},
						},
					},
				},
			},
			{
				ID:              "pn_beregu",
				Name:            "Beregu",
				Type:            TypeBeregu,
				PricePerEntry:   300_000,
				MinParticipants: 3,
				MaxParticipants: 4,
			},
		},
	},
	{
		ID:   "catur",
		Name: "Catur",
		Categories: []SportCategory{
			{ID: "ct_klasik", Name: "Klasik Perorangan", Type: TypeTunggal, PricePerEntry: 100_000},
			{ID: "ct_kilat", Name: "Kilat Perorangan", Type: TypeTunggal, PricePerEntry: 100_000},
			{
				ID:              "ct_beregu",
				Name:            "Beregu",
				Type:            TypeBeregu,
				PricePerEntry:   250_000,
				MinParticipants: 4,
				MaxParticipants: 5,
			},
		},
	},
}
