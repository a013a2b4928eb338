// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package normalize

import (
	"reflect"
	"testing"
)

func TestCategory(t *testing.T) {
	m := Default()
	tests := []struct {
		in, want string
	}{
		{"GOPENS", "OPEN"},
		{"lobcs", "OBC"},
		{" GRNT2H ", "NT2"},
		{"DEFOBCS", "DEF"},
		{"TFWS", "TFWS"},
		{"OBC", "OBC"},
		{"gsebcs", "GSEBCS"},
		{"", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := m.Category(tt.in); got != tt.want {
				t.Errorf("Category(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveCategoryGroup(t *testing.T) {
	m := Default()
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"OPEN", "OPEN", true},
		{"obc", "OBC", true},
		{"GSCS", "SC", true},
		{"LVJH", "VJ", true},
		{"PWDSEBCS", "PWD", true},
		{"XYZ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g, ok := m.ResolveCategoryGroup(tt.in)
			if ok != tt.wantOK || g.Name != tt.want {
				t.Errorf("ResolveCategoryGroup(%q) = (%q, %v), want (%q, %v)", tt.in, g.Name, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCategoryGroupsCount(t *testing.T) {
	if got := len(Default().CategoryGroups()); got != 14 {
		t.Errorf("category groups = %d, want 14", got)
	}
	if got := len(branchGroups); got != 13 {
		t.Errorf("branch groups = %d, want 13", got)
	}
	if got := len(typeGroups); got != 4 {
		t.Errorf("type groups = %d, want 4", got)
	}
}

func TestIsGenderRestricted(t *testing.T) {
	m := Default()
	tests := []struct {
		code string
		want bool
	}{
		{"LOPENS", true},
		{"LOBCH", true},
		{"lrnt1s", true},
		{"GOPENS", false},
		{"DEFOPENS", false},
		{"PWDOPENH", false},
		{"TFWS", false},
		{"MI", false},
		{"ORPHAN", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := m.IsGenderRestricted(tt.code); got != tt.want {
				t.Errorf("IsGenderRestricted(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestBranch(t *testing.T) {
	m := Default()
	tests := []struct {
		in, want string
	}{
		{"Computer Engineering", "Computer Science & Engineering"},
		{"cse", "Computer Science & Engineering"},
		{"AI/ML", "Artificial Intelligence & Machine Learning"},
		{"Artificial Intelligence and Data Science", "Artificial Intelligence & Data Science"},
		{"E&TC", "Electronics & Telecommunication"},
		{"Information Technology", "Information Technology"},
		{"Civil Engineering", "Civil Engineering"},
		{"Civil Infrastructure Engineering", "Civil Engineering"},
		{"Textile Technology", "Textile Technology"},
		{"Textile Engineering", "Textile Engineering"},
		{"Architecture", "Architecture"},
		{"Mechatronics", "Mechatronics"},
		{"Automation and Robotics", "Automation and Robotics"},
		{"Instrumentation and Control Engineering", "Instrumentation Engineering"},
		{"ME", "Mechanical Engineering"},
		{"B.Tech (IT)", "Information Technology"},
		{"Electronics & Telecomm. (E&TC)", "Electronics & Telecommunication"},
		{"", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := m.Branch(tt.in); got != tt.want {
				t.Errorf("Branch(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestType(t *testing.T) {
	m := Default()
	tests := []struct {
		in, want string
	}{
		{"Government", "Government"},
		{"Autonomous / Government", "Autonomous"},
		{"Autonomous / Private", "Autonomous"},
		{"Deemed University (Off-Campus)", "University"},
		{"Private (Unaided)", "Private"},
		{"Un-Aided Private Institute", "Private"},
		{"Trust", "Trust"},
		{"Govt. Aided", "Government"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := m.Type(tt.in); got != tt.want {
				t.Errorf("Type(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTypeNamesSorted(t *testing.T) {
	want := []string{"Autonomous", "Government", "Private", "University"}
	if got := Default().TypeNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("TypeNames() = %v, want %v", got, want)
	}
}

func TestTypeWeight(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"Government", 1.00},
		{"Autonomous / Government", 0.95},
		{"Deemed University (Off-Campus)", 0.55},
		{"Private (Unaided)", 0.60},
		{"Something New", DefaultTypeWeight},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := TypeWeight(tt.in); got != tt.want {
				t.Errorf("TypeWeight(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	info := Default().Info("gobcs")
	if info.Group != "OBC" || info.DisplayName != "OBC Category" || info.Description != "Other Backward Classes" {
		t.Errorf("Info(gobcs) = %+v", info)
	}
	unknown := Default().Info("ZZZ")
	if unknown.DisplayName != "ZZZ" || unknown.Description != "" {
		t.Errorf("Info(ZZZ) = %+v", unknown)
	}
}
