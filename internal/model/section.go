package model

import (
	"errors"
	"time"
)

// Section kinds. Each kind is its own ordered collection; the site shows the
// first active section of a kind.
const (
	SectionHero    = "hero"
	SectionAbout   = "about"
	SectionTeam    = "team"
	SectionContact = "contact"
)

// SectionMeta holds the columns shared by all singleton page sections.
// The rest of a section is stored as JSON content.
type SectionMeta struct {
	ID           string    `json:"id"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m *SectionMeta) ItemID() string        { return m.ID }
func (m *SectionMeta) ItemOrder() int        { return m.DisplayOrder }
func (m *SectionMeta) ItemActive() bool      { return m.IsActive }
func (m *SectionMeta) SetDisplayOrder(n int) { m.DisplayOrder = n }

// Meta returns the section's shared columns.
func (m *SectionMeta) Meta() *SectionMeta { return m }

// Section is implemented by every page section type.
type Section interface {
	Meta() *SectionMeta
	Kind() string
	Validate() error
	ItemID() string
	ItemOrder() int
	ItemActive() bool
	SetDisplayOrder(int)
}

// FeaturedProject is a project teaser shown next to the hero copy.
type FeaturedProject struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	ImageAlt string `json:"image_alt,omitempty"`
	Category string `json:"category,omitempty"`
}

// GalleryImage is an image in the hero gallery strip.
type GalleryImage struct {
	URL   string `json:"url"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

// HeroSection is the landing banner.
type HeroSection struct {
	SectionMeta
	BadgeText              string            `json:"badge_text,omitempty"`
	TitleLine1             string            `json:"title_line1"`
	TitleLine2             string            `json:"title_line2"`
	TitleLine2Color        string            `json:"title_line2_color"`
	Description            string            `json:"description"`
	Features               []string          `json:"features"`
	PrimaryButtonText      string            `json:"primary_button_text"`
	PrimaryButtonAction    string            `json:"primary_button_action"`
	SecondaryButtonText    string            `json:"secondary_button_text"`
	SecondaryButtonAction  string            `json:"secondary_button_action,omitempty"`
	FeaturedImageURL       string            `json:"featured_image_url,omitempty"`
	FeaturedImageAlt       string            `json:"featured_image_alt,omitempty"`
	FeaturedProjectTitle   string            `json:"featured_project_title,omitempty"`
	FeaturedProjects       []FeaturedProject `json:"featured_projects"`
	GalleryImages          []GalleryImage    `json:"gallery_images"`
	ReadyToStartText       string            `json:"ready_to_start_text"`
	ReadyToStartButtonText string            `json:"ready_to_start_button_text"`
	ReadyToStartAction     string            `json:"ready_to_start_action"`
}

func (h *HeroSection) Kind() string { return SectionHero }

// Validate checks the fields required to render the hero.
func (h *HeroSection) Validate() error {
	if blank(h.TitleLine1) || blank(h.Description) {
		return errors.New("title_line1 and description are required")
	}
	return nil
}

// Stat is a headline number in the about section.
type Stat struct {
	Number string `json:"number"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
}

// Value is one of the firm's core values.
type Value struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AboutSection describes the firm.
type AboutSection struct {
	SectionMeta
	BadgeText             string   `json:"badge_text,omitempty"`
	MainHeading           string   `json:"main_heading"`
	DescriptionParagraphs []string `json:"description_paragraphs"`
	Stats                 []Stat   `json:"stats"`
	Values                []Value  `json:"values"`
}

func (a *AboutSection) Kind() string { return SectionAbout }

func (a *AboutSection) Validate() error {
	if blank(a.MainHeading) {
		return errors.New("main_heading is required")
	}
	return nil
}

// TeamMember is a person shown in the team section.
type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image"`
	Bio   string `json:"bio"`
}

// TeamSection lists the team.
type TeamSection struct {
	SectionMeta
	BadgeText   string       `json:"badge_text,omitempty"`
	Heading     string       `json:"heading"`
	Description string       `json:"description,omitempty"`
	TeamMembers []TeamMember `json:"team_members"`
}

func (t *TeamSection) Kind() string { return SectionTeam }

func (t *TeamSection) Validate() error {
	if blank(t.Heading) {
		return errors.New("heading is required")
	}
	return nil
}

// BusinessHour is one line of opening hours.
type BusinessHour struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// SocialMediaLink points at one of the firm's social profiles.
type SocialMediaLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ContactInfo feeds the contact section and the footer.
type ContactInfo struct {
	SectionMeta
	ContactBadgeText   string            `json:"contact_badge_text,omitempty"`
	ContactHeading     string            `json:"contact_heading"`
	ContactDescription string            `json:"contact_description,omitempty"`
	Phone1             string            `json:"phone_1"`
	Phone2             string            `json:"phone_2,omitempty"`
	Email1             string            `json:"email_1"`
	Email2             string            `json:"email_2,omitempty"`
	AddressLines       []string          `json:"address_lines"`
	BusinessHours      []BusinessHour    `json:"business_hours"`
	FooterText         string            `json:"footer_text,omitempty"`
	SocialMediaLinks   []SocialMediaLink `json:"social_media_links"`
	CopyrightText      string            `json:"copyright_text,omitempty"`
}

func (c *ContactInfo) Kind() string { return SectionContact }

func (c *ContactInfo) Validate() error {
	if blank(c.ContactHeading) || blank(c.Phone1) || blank(c.Email1) {
		return errors.New("contact_heading, phone_1, and email_1 are required")
	}
	return nil
}
