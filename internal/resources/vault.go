// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

// Package resources serves the read-only admission resource vault: required
// documents, scholarships, links, contacts, key dates and tips.
package resources

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vault.yaml
var vaultYAML []byte

// Document categories.
const (
	DocumentsApplication = "application"
	DocumentsCounselling = "counselling"
)

// StatusUpcoming marks dates that have not passed.
const StatusUpcoming = "upcoming"

// ErrUnknownCategory is returned for a category or phase the vault does not have.
var ErrUnknownCategory = errors.New("unknown resource category")

// Document is a paper the applicant must prepare.
type Document struct {
	ID          int    `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Required    bool   `yaml:"required" json:"required"`
	Deadline    string `yaml:"deadline" json:"deadline"`
	Format      string `yaml:"format" json:"format"`
	Notes       string `yaml:"notes" json:"notes"`
}

// DocumentGroup is a titled list of documents.
type DocumentGroup struct {
	Title string     `yaml:"title" json:"title"`
	Items []Document `yaml:"items" json:"items"`
}

// Documents holds both document groups.
type Documents struct {
	Application DocumentGroup `yaml:"application" json:"application"`
	Counselling DocumentGroup `yaml:"counselling" json:"counselling"`
}

// DocumentMatches is the result of a document search, per group.
type DocumentMatches struct {
	Application []Document `json:"application"`
	Counselling []Document `json:"counselling"`
}

// Scholarship describes one funding scheme.
type Scholarship struct {
	ID                 int      `yaml:"id" json:"id"`
	Name               string   `yaml:"name" json:"name"`
	Authority          string   `yaml:"authority" json:"authority"`
	Eligibility        []string `yaml:"eligibility" json:"eligibility"`
	Benefits           []string `yaml:"benefits" json:"benefits"`
	Amount             string   `yaml:"amount" json:"amount"`
	Deadline           string   `yaml:"deadline" json:"deadline"`
	ApplicationProcess string   `yaml:"application_process" json:"application_process"`
	Website            string   `yaml:"website" json:"website"`
	Documents          []string `yaml:"documents" json:"documents"`
}

// Link is an external portal.
type Link struct {
	ID          int    `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	URL         string `yaml:"url" json:"url"`
	Category    string `yaml:"category" json:"category"`
}

// Helpline is a phone/email support line.
type Helpline struct {
	ID      int      `yaml:"id" json:"id"`
	Title   string   `yaml:"title" json:"title"`
	Phones  []string `yaml:"phones" json:"phones"`
	Email   string   `yaml:"email" json:"email,omitempty"`
	Timings string   `yaml:"timings" json:"timings"`
	Purpose string   `yaml:"purpose" json:"purpose"`
}

// Office is a physical office.
type Office struct {
	ID      int    `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Address string `yaml:"address" json:"address"`
	Phone   string `yaml:"phone" json:"phone"`
	Email   string `yaml:"email" json:"email,omitempty"`
	MapLink string `yaml:"map_link" json:"map_link"`
}

// Contacts groups helplines and offices.
type Contacts struct {
	Helplines []Helpline `yaml:"helplines" json:"helplines"`
	Offices   []Office   `yaml:"offices" json:"offices"`
}

// Date is one event in the admission calendar.
type Date struct {
	ID          int    `yaml:"id" json:"id"`
	Event       string `yaml:"event" json:"event"`
	Date        string `yaml:"date" json:"date"`
	Status      string `yaml:"status" json:"status"`
	Description string `yaml:"description" json:"description"`
}

// Tip is a piece of advice.
type Tip struct {
	ID          int    `yaml:"id" json:"id"`
	Category    string `yaml:"category" json:"category"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
}

// Summary counts vault content for dashboards.
type Summary struct {
	TotalDocuments    int `json:"total_documents"`
	TotalScholarships int `json:"total_scholarships"`
	UpcomingDates     int `json:"upcoming_dates"`
	TotalTips         int `json:"total_tips"`
	HelplineCount     int `json:"helpline_count"`
	OfficeCount       int `json:"office_count"`
}

type vaultFile struct {
	Documents    Documents         `yaml:"documents"`
	Scholarships []Scholarship     `yaml:"scholarships"`
	Links        map[string][]Link `yaml:"links"`
	Contacts     Contacts          `yaml:"contacts"`
	Dates        map[string][]Date `yaml:"dates"`
	Tips         []Tip             `yaml:"tips"`
}

// Vault is immutable after Parse and safe for concurrent use.
type Vault struct {
	data       vaultFile
	linkOrder  []string
	phaseOrder []string
}

// Default parses the embedded vault.
func Default() (*Vault, error) {
	return Parse(vaultYAML)
}

// Parse decodes a vault document. Category and phase order follow the
// document.
func Parse(raw []byte) (*Vault, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parse resource vault: %w", err)
	}
	v := &Vault{}
	if err := root.Decode(&v.data); err != nil {
		return nil, fmt.Errorf("decode resource vault: %w", err)
	}
	v.linkOrder = mappingKeys(&root, "links")
	v.phaseOrder = mappingKeys(&root, "dates")
	return v, nil
}

// mappingKeys lists the keys of the top-level mapping named field, in
// document order.
func mappingKeys(root *yaml.Node, field string) []string {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != field {
			continue
		}
		m := doc.Content[i+1]
		keys := make([]string, 0, len(m.Content)/2)
		for j := 0; j+1 < len(m.Content); j += 2 {
			keys = append(keys, m.Content[j].Value)
		}
		return keys
	}
	return nil
}

// Documents returns both document groups.
func (v *Vault) Documents() Documents {
	return v.data.Documents
}

// DocumentsByCategory returns the application or counselling group.
func (v *Vault) DocumentsByCategory(category string) (DocumentGroup, error) {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case DocumentsApplication:
		return v.data.Documents.Application, nil
	case DocumentsCounselling:
		return v.data.Documents.Counselling, nil
	}
	return DocumentGroup{}, fmt.Errorf("%w: documents %q (want application or counselling)", ErrUnknownCategory, category)
}

// SearchDocuments matches name or description, case-insensitively.
func (v *Vault) SearchDocuments(query string) DocumentMatches {
	q := strings.ToLower(strings.TrimSpace(query))
	match := func(items []Document) []Document {
		out := []Document{}
		for _, d := range items {
			if contains(d.Name, q) || contains(d.Description, q) {
				out = append(out, d)
			}
		}
		return out
	}
	return DocumentMatches{
		Application: match(v.data.Documents.Application.Items),
		Counselling: match(v.data.Documents.Counselling.Items),
	}
}

// Scholarships returns all scholarships.
func (v *Vault) Scholarships() []Scholarship {
	return v.data.Scholarships
}

// Scholarship looks up one scholarship by id.
func (v *Vault) Scholarship(id int) (Scholarship, bool) {
	for _, s := range v.data.Scholarships {
		if s.ID == id {
			return s, true
		}
	}
	return Scholarship{}, false
}

// SearchScholarships matches name or authority, case-insensitively.
func (v *Vault) SearchScholarships(query string) []Scholarship {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []Scholarship{}
	for _, s := range v.data.Scholarships {
		if contains(s.Name, q) || contains(s.Authority, q) {
			out = append(out, s)
		}
	}
	return out
}

// Links returns every link category.
func (v *Vault) Links() map[string][]Link {
	return v.data.Links
}

// LinkCategories lists link categories in document order.
func (v *Vault) LinkCategories() []string {
	return v.linkOrder
}

// LinksByCategory returns the links of one category.
func (v *Vault) LinksByCategory(category string) ([]Link, error) {
	links, ok := v.data.Links[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return nil, fmt.Errorf("%w: links %q (want one of %s)", ErrUnknownCategory, category, strings.Join(v.linkOrder, ", "))
	}
	return links, nil
}

// Contacts returns helplines and offices.
func (v *Vault) Contacts() Contacts {
	return v.data.Contacts
}

// Dates returns the calendar keyed by phase.
func (v *Vault) Dates() map[string][]Date {
	return v.data.Dates
}

// Phases lists calendar phases in document order.
func (v *Vault) Phases() []string {
	return v.phaseOrder
}

// DatesByPhase returns the events of one phase.
func (v *Vault) DatesByPhase(phase string) ([]Date, error) {
	dates, ok := v.data.Dates[strings.ToLower(strings.TrimSpace(phase))]
	if !ok {
		return nil, fmt.Errorf("%w: phase %q (want one of %s)", ErrUnknownCategory, phase, strings.Join(v.phaseOrder, ", "))
	}
	return dates, nil
}

// UpcomingDates returns events with status upcoming, phase by phase.
func (v *Vault) UpcomingDates() []Date {
	out := []Date{}
	for _, phase := range v.phases() {
		for _, d := range v.data.Dates[phase] {
			if d.Status == StatusUpcoming {
				out = append(out, d)
			}
		}
	}
	return out
}

// phases falls back to sorted keys when the order was not recorded.
func (v *Vault) phases() []string {
	if len(v.phaseOrder) == len(v.data.Dates) {
		return v.phaseOrder
	}
	keys := make([]string, 0, len(v.data.Dates))
	for k := range v.data.Dates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Tips returns all tips.
func (v *Vault) Tips() []Tip {
	return v.data.Tips
}

// TipsByCategory returns tips whose category matches, case-insensitively.
func (v *Vault) TipsByCategory(category string) []Tip {
	out := []Tip{}
	for _, t := range v.data.Tips {
		if strings.EqualFold(t.Category, strings.TrimSpace(category)) {
			out = append(out, t)
		}
	}
	return out
}

// Summary counts the vault content.
func (v *Vault) Summary() Summary {
	return Summary{
		TotalDocuments:    len(v.data.Documents.Application.Items) + len(v.data.Documents.Counselling.Items),
		TotalScholarships: len(v.data.Scholarships),
		UpcomingDates:     len(v.UpcomingDates()),
		TotalTips:         len(v.data.Tips),
		HelplineCount:     len(v.data.Contacts.Helplines),
		OfficeCount:       len(v.data.Contacts.Offices),
	}
}

func contains(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
