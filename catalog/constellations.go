package catalog

import "github.com/signalsfoundry/constellation-monitor/model"

// Constellation is a static definition of one regional navigation system:
// its member spacecraft by catalog number, the service targets they must
// hold, and the ground points its service region is judged from.
type Constellation struct {
	Name string

	// Members maps satellite name to NORAD catalog number.
	Members map[string]string

	// Inactive lists members excluded from geometry computations by
	// default, e.g. spacecraft with failed navigation payloads.
	Inactive []string

	// KeyPoints are the service-region reference locations for DOP
	// analysis.
	KeyPoints map[string]model.LatLon

	Requirements map[string]model.ServiceRequirement
}

func (c Constellation) inactive(name string) bool {
	for _, n := range c.Inactive {
		if n == name {
			return true
		}
	}
	return false
}

// ByName returns the built-in constellation definition for the given
// identifier: "navic", "qzss" or "beidou3".
func ByName(id string) (Constellation, bool) {
	switch id {
	case "navic":
		return NavIC(), true
	case "qzss":
		return QZSS(), true
	case "beidou3":
		return BeiDou3(), true
	default:
		return Constellation{}, false
	}
}

func deg(v float64) *float64 { return &v }

// NavIC returns the Indian regional navigation constellation. IRNSS-1C, 1D
// and 1E remain in their slots but carry failed atomic clocks, so they are
// excluded from geometry by default.
func NavIC() Constellation {
	return Constellation{
		Name: "NavIC",
		Members: map[string]string{
			"IRNSS-1B": "39635",
			"IRNSS-1C": "40269",
			"IRNSS-1D": "40547",
			"IRNSS-1E": "41241",
			"IRNSS-1F": "41384",
			"IRNSS-1I": "43286",
			"NVS-01":   "56759",
		},
		Inactive: []string{"IRNSS-1C", "IRNSS-1D", "IRNSS-1E"},
		KeyPoints: map[string]model.LatLon{
			"Northernmost (Siachen Glacier)": {LatDeg: 35.5, LonDeg: 77.0},
			"Southernmost (Indira Point)":    {LatDeg: 6.75, LonDeg: 93.85},
			"Easternmost (Kibithu)":          {LatDeg: 28.0, LonDeg: 97.0},
			"Westernmost (Guhar Moti)":       {LatDeg: 23.7, LonDeg: 68.1},
			"Capital (Delhi)":                {LatDeg: 28.7, LonDeg: 77.1},
		},
		Requirements: map[string]model.ServiceRequirement{
			"IRNSS-1B": {OrbitType: "IGSO", LongitudeDeg: 55.0, InclinationDeg: deg(29.0)},
			"IRNSS-1C": {OrbitType: "GSO", LongitudeDeg: 83.0, InclinationDeg: deg(5.0)},
			"IRNSS-1D": {OrbitType: "IGSO", LongitudeDeg: 111.75, InclinationDeg: deg(30.0)},
			"IRNSS-1E": {OrbitType: "IGSO", LongitudeDeg: 111.75, InclinationDeg: deg(29.0)},
			"IRNSS-1F": {OrbitType: "GSO", LongitudeDeg: 32.5, InclinationDeg: deg(5.0)},
			"IRNSS-1I": {OrbitType: "IGSO", LongitudeDeg: 55.0, InclinationDeg: deg(29.0)},
			"NVS-01":   {OrbitType: "GSO", LongitudeDeg: 129.5, InclinationDeg: deg(5.0)},
		},
	}
}

// QZSS returns the Japanese quasi-zenith constellation. The IGSO trio shares
// a figure-eight track centred on 139E; the two GSO members hold fixed slots.
func QZSS() Constellation {
	igso := model.ServiceRequirement{
		OrbitType:           "IGSO",
		LongitudeDeg:        139.0,
		LongitudeTolDeg:     5.0,
		InclinationRangeDeg: &[2]float64{39.0, 41.0},
		ArgPerigeeDeg:       deg(270.0),
		ArgPerigeeTolDeg:    deg(1.0),
		SMAKm:               42164.0,
		SMATolKm:            10.0,
		EccMax:              0.099,
	}
	gso := func(lonDeg float64) model.ServiceRequirement {
		return model.ServiceRequirement{
			OrbitType:            "GSO",
			LongitudeDeg:         lonDeg,
			LongitudeTolDeg:      0.5,
			InclinationTargetDeg: deg(0.0),
			InclinationTolDeg:    deg(0.5),
			SMAKm:                42164.0,
			SMATolKm:             10.0,
			EccMax:               0.099,
		}
	}
	return Constellation{
		Name: "QZSS",
		Members: map[string]string{
			"QZS-1R (Michibiki-1R)": "49336",
			"QZS-2 (Michibiki-2)":   "42738",
			"QZS-3 (Michibiki-3)":   "42917",
			"QZS-4 (Michibiki-4)":   "42965",
			"QZS-6 (Michibiki-6)":   "62876",
		},
		KeyPoints: map[string]model.LatLon{
			"Northernmost (Hokkaido - Wakkanai)": {LatDeg: 45.4, LonDeg: 141.7},
			"Southernmost (Okinawa - Ishigaki)":  {LatDeg: 24.3, LonDeg: 124.2},
			"Easternmost (Tokyo)":                {LatDeg: 35.7, LonDeg: 139.7},
			"Westernmost (Kyushu - Nagasaki)":    {LatDeg: 32.8, LonDeg: 129.9},
			"Capital (Tokyo)":                    {LatDeg: 35.7, LonDeg: 139.7},
		},
		Requirements: map[string]model.ServiceRequirement{
			"QZS-1R (Michibiki-1R)": igso,
			"QZS-2 (Michibiki-2)":   igso,
			"QZS-4 (Michibiki-4)":   igso,
			"QZS-3 (Michibiki-3)":   gso(127.0),
			"QZS-6 (Michibiki-6)":   gso(90.5),
		},
	}
}

// BeiDou3 returns the regional (IGSO and GEO) members of the Chinese BeiDou
// system, including the second-generation Compass spacecraft still holding
// regional slots.
func BeiDou3() Constellation {
	igso := func(lonDeg float64) model.ServiceRequirement {
		return model.ServiceRequirement{
			OrbitType:            "IGSO",
			LongitudeDeg:         lonDeg,
			LongitudeTolDeg:      5.0,
			InclinationTargetDeg: deg(55.0),
			InclinationTolDeg:    deg(1.0),
			SMAKm:                42164.0,
			SMATolKm:             10.0,
			EccMax:               0.05,
		}
	}
	geo := func(lonDeg float64) model.ServiceRequirement {
		return model.ServiceRequirement{
			OrbitType:            "GEO",
			LongitudeDeg:         lonDeg,
			LongitudeTolDeg:      0.5,
			InclinationTargetDeg: deg(0.0),
			InclinationTolDeg:    deg(0.5),
			SMAKm:                42164.0,
			SMATolKm:             10.0,
			EccMax:               0.05,
		}
	}
	return Constellation{
		Name: "BeiDou-3",
		Members: map[string]string{
			"Compass-IGSO1": "36828",
			"Compass-IGSO2": "37256",
			"Compass-IGSO3": "37384",
			"Compass-IGSO4": "37763",
			"Compass-IGSO5": "37948",
			"Compass-IGSO6": "41434",
			"Compass-IGSO7": "43539",

			"Compass-G4": "37210",
			"Compass-G5": "38091",
			"Compass-G6": "38953",
			"Compass-G7": "41586",
			"Compass-G8": "44231",

			"BeiDou-3 G1": "43683",
			"BeiDou-3 G2": "45344",
			"BeiDou-3 G3": "45807",
			"BeiDou-3 G4": "56564",

			"BeiDou-3 I1": "44204",
			"BeiDou-3 I2": "44337",
			"BeiDou-3 I3": "44709",
		},
		KeyPoints: map[string]model.LatLon{
			"Northernmost (Mohe, Heilongjiang)":  {LatDeg: 53.5, LonDeg: 122.5},
			"Southernmost (Sansha, Hainan)":      {LatDeg: 16.8, LonDeg: 112.3},
			"Easternmost (Fuyuan, Heilongjiang)": {LatDeg: 48.4, LonDeg: 134.7},
			"Westernmost (Wuqia, Xinjiang)":      {LatDeg: 39.7, LonDeg: 75.3},
			"Capital (Beijing)":                  {LatDeg: 39.9, LonDeg: 116.4},
			"Shanghai":                           {LatDeg: 31.2, LonDeg: 121.5},
			"Guangzhou":                          {LatDeg: 23.1, LonDeg: 113.3},
			"Chengdu":                            {LatDeg: 30.7, LonDeg: 104.1},
			"Urumqi (Xinjiang)":                  {LatDeg: 43.8, LonDeg: 87.6},
			"Lhasa (Tibet)":                      {LatDeg: 29.7, LonDeg: 91.1},
		},
		Requirements: map[string]model.ServiceRequirement{
			// IGSO planes at 118E, 95E and 120E.
			"Compass-IGSO1": igso(118.0),
			"Compass-IGSO2": igso(118.0),
			"Compass-IGSO3": igso(118.0),
			"Compass-IGSO4": igso(95.0),
			"Compass-IGSO5": igso(95.0),
			"Compass-IGSO6": igso(95.0),
			"Compass-IGSO7": igso(95.0),
			"BeiDou-3 I1":   igso(120.0),
			"BeiDou-3 I2":   igso(120.0),
			"BeiDou-3 I3":   igso(120.0),

			"Compass-G4":  geo(160.0),
			"Compass-G5":  geo(58.75),
			"Compass-G6":  geo(80.0),
			"Compass-G7":  geo(110.5),
			"Compass-G8":  geo(140.0),
			"BeiDou-3 G1": geo(144.2),
			"BeiDou-3 G2": geo(80.0),
			"BeiDou-3 G3": geo(110.5),
			"BeiDou-3 G4": geo(160.0),
		},
	}
}
