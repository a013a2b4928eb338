// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package normalize

// CategoryGroup is a reservation group and the quota codes that belong to it.
type CategoryGroup struct {
	Name        string
	Codes       []string
	DisplayName string
	Description string
	// GenderNeutral groups are never excluded by gender, whatever their codes look like.
	GenderNeutral bool
}

// BranchGroup is a canonical branch and the spellings that map to it.
type BranchGroup struct {
	Name     string
	Variants []string
}

// TypeGroup is a canonical institution type and the raw types that map to it.
type TypeGroup struct {
	Name     string
	Variants []string
}

// Group names used outside this package.
const (
	GroupOpen = "OPEN"
	Unknown   = "Unknown"
)

// Order matters: lookups scan groups in declaration order and the first hit wins.
var categoryGroups = []CategoryGroup{
	{Name: "OPEN", Codes: []string{"GOPENS", "GOPENH", "LOPENS", "LOPENH"}, DisplayName: "Open Category", Description: "General Open seats (Male/Female)"},
	{Name: "OBC", Codes: []string{"GOBCS", "GOBCO", "GOBCH", "LOBCS", "LOBCO", "LOBCH"}, DisplayName: "OBC Category", Description: "Other Backward Classes"},
	{Name: "SC", Codes: []string{"GSCS", "GSCO", "GSCH", "LSCS", "LSCO", "LSCH"}, DisplayName: "SC Category", Description: "Scheduled Caste"},
	{Name: "ST", Codes: []string{"GSTS", "GSTO", "GSTH", "LSTS", "LSTO", "LSTH"}, DisplayName: "ST Category", Description: "Scheduled Tribe"},
	{Name: "NT1", Codes: []string{"GRNT1S", "GRNT1H", "LRNT1S", "LRNT1H"}, DisplayName: "NT-1 Category", Description: "Nomadic Tribe 1"},
	{Name: "NT2", Codes: []string{"GRNT2S", "GRNT2H", "LRNT2S", "LRNT2H"}, DisplayName: "NT-2 Category", Description: "Nomadic Tribe 2"},
	{Name: "NT3", Codes: []string{"GRNT3S", "GRNT3H", "LRNT3S", "LRNT3H"}, DisplayName: "NT-3 Category", Description: "Nomadic Tribe 3"},
	{Name: "VJ", Codes: []string{"GVJS", "GVJH", "LVJS", "LVJH"}, DisplayName: "VJ/DT Category", Description: "Vimukta Jati"},
	{Name: "EWS", Codes: []string{"GEWSS", "GEWSH", "LEWSS", "LEWSH"}, DisplayName: "EWS Category", Description: "Economically Weaker Section"},
	{Name: "DEF", Codes: []string{"DEFOPENS", "DEFOBCS", "DEFRNT1S", "DEFRNT2S", "DEFRNT3S"}, DisplayName: "Defence Category", Description: "Defence Quota", GenderNeutral: true},
	{Name: "PWD", Codes: []string{
		"PWDOPENH", "PWDOPENS", "PWDOBCS", "PWDOBCH", "PWDRNT1S",
		"PWDRNT2S", "PWDRNT3S", "PWDSEBCS", "PWDSTS", "PWDSCS", "PWDSCH",
	}, DisplayName: "PWD Category", Description: "Persons with Disabilities", GenderNeutral: true},
	{Name: "TFWS", Codes: []string{"TFWS"}, DisplayName: "TFWS", Description: "Tuition Fee Waiver Scheme", GenderNeutral: true},
	{Name: "MI", Codes: []string{"MI"}, DisplayName: "Minority", Description: "Minority Quota", GenderNeutral: true},
	{Name: "ORPHAN", Codes: []string{"ORPHAN"}, DisplayName: "Orphan", Description: "Orphan Category", GenderNeutral: true},
}

var branchGroups = []BranchGroup{
	{Name: "Computer Science & Engineering", Variants: []string{
		"Computer Science and Engineering", "Computer Engineering", "Computer Science",
		"CSE", "Computer Sci", "Comp Sci", "Computer",
	}},
	{Name: "Artificial Intelligence & Machine Learning", Variants: []string{
		"Artificial Intelligence and Machine Learning", "AI & ML", "AIML", "AI/ML",
		"Artificial Intelligence", "Machine Learning",
	}},
	{Name: "Artificial Intelligence & Data Science", Variants: []string{
		"Artificial Intelligence and Data Science", "AI & DS", "AIDS", "AI/DS",
		"Data Science", "Data Analytics",
	}},
	{Name: "Electronics & Telecommunication", Variants: []string{
		"Electronics and Telecommunication Engineering", "Electronics & Telecom",
		"E&TC", "ENTC", "Electronics", "Telecommunication",
	}},
	{Name: "Information Technology", Variants: []string{"Information Technology", "IT", "Info Tech"}},
	{Name: "Mechanical Engineering", Variants: []string{"Mechanical Engineering", "Mechanical", "Mech", "ME"}},
	{Name: "Civil Engineering", Variants: []string{"Civil Engineering", "Civil", "CE"}},
	{Name: "Electrical Engineering", Variants: []string{"Electrical Engineering", "Electrical", "EE", "Electrical & Electronics"}},
	{Name: "Chemical Engineering", Variants: []string{"Chemical Engineering", "Chemical", "ChE"}},
	{Name: "Instrumentation Engineering", Variants: []string{
		"Instrumentation Engineering", "Instrumentation", "IE", "Instrumentation & Control",
	}},
	{Name: "Biotechnology", Variants: []string{"Biotechnology", "Biotech", "BT"}},
	{Name: "Production Engineering", Variants: []string{"Production Engineering", "Production", "PE"}},
	{Name: "Automobile Engineering", Variants: []string{"Automobile Engineering", "Automobile", "Auto"}},
}

var typeGroups = []TypeGroup{
	{Name: "Government", Variants: []string{"Government", "Govt"}},
	{Name: "Autonomous", Variants: []string{
		"Autonomous / Government", "Autonomous / Aided", "Autonomous / Private", "Autonomous",
	}},
	{Name: "University", Variants: []string{
		"State Technological University", "University Department", "Deemed University",
		"State Private University", "Deemed University (Off-Campus)",
	}},
	{Name: "Private", Variants: []string{"Private (Unaided)", "Unaided", "Private"}},
}

// DefaultTypeWeight applies to institution types missing from typeWeights.
const DefaultTypeWeight = 0.60

// typeWeights rank institution tiers for the regression model. Keys match the
// raw type column exactly.
var typeWeights = map[string]float64{
	"Government":                     1.00,
	"Autonomous / Government":        0.95,
	"State Technological University": 0.90,
	"University Department":          0.85,
	"Autonomous / Aided":             0.80,
	"Autonomous / Private":           0.75,
	"Deemed University":              0.70,
	"State Private University":       0.65,
	"Private (Unaided)":              0.60,
	"Deemed University (Off-Campus)": 0.55,
}
