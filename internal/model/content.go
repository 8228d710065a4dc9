package model

import (
	"errors"
	"strings"
	"time"
)

// Service is an offering listed in the services section.
type Service struct {
	ID           string    `json:"id"`
	Icon         string    `json:"icon"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Color        string    `json:"color"`
	Category     string    `json:"category"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *Service) ItemID() string        { return s.ID }
func (s *Service) ItemOrder() int        { return s.DisplayOrder }
func (s *Service) ItemActive() bool      { return s.IsActive }
func (s *Service) SetDisplayOrder(n int) { s.DisplayOrder = n }

// Validate checks the fields required to publish a service.
func (s *Service) Validate() error {
	if blank(s.Icon) || blank(s.Title) || blank(s.Description) || blank(s.Color) || blank(s.Category) {
		return errors.New("icon, title, description, color, and category are required")
	}
	return nil
}

// Project is a portfolio entry.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url"`
	ImageAlt     string    `json:"image_alt,omitempty"`
	IsFeatured   bool      `json:"is_featured"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Project categories.
const (
	ProjectCategoryResidential = "Residential"
	ProjectCategoryOffice      = "Office"
	ProjectCategoryGovernment  = "Government"
	ProjectCategoryMosque      = "Mosque"
)

// ValidProjectCategory reports whether c is one of the known project categories.
func ValidProjectCategory(c string) bool {
	switch c {
	case ProjectCategoryResidential, ProjectCategoryOffice, ProjectCategoryGovernment, ProjectCategoryMosque:
		return true
	}
	return false
}

func (p *Project) ItemID() string        { return p.ID }
func (p *Project) ItemOrder() int        { return p.DisplayOrder }
func (p *Project) ItemActive() bool      { return p.IsActive }
func (p *Project) SetDisplayOrder(n int) { p.DisplayOrder = n }

// Validate checks the fields required to publish a project.
func (p *Project) Validate() error {
	if blank(p.Title) || blank(p.ImageURL) {
		return errors.New("title and image_url are required")
	}
	if !ValidProjectCategory(p.Category) {
		return errors.New("category must be Residential, Office, Government, or Mosque")
	}
	return nil
}

// ShowreelEntry is a single image or video in the showreel carousel.
type ShowreelEntry struct {
	ID           string    `json:"id"`
	MediaType    string    `json:"media_type"`
	MediaURL     string    `json:"media_url"`
	Alt          string    `json:"alt,omitempty"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Showreel media types.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

func (e *ShowreelEntry) ItemID() string        { return e.ID }
func (e *ShowreelEntry) ItemOrder() int        { return e.DisplayOrder }
func (e *ShowreelEntry) ItemActive() bool      { return e.IsActive }
func (e *ShowreelEntry) SetDisplayOrder(n int) { e.DisplayOrder = n }

// Validate checks the fields required to publish a showreel entry.
func (e *ShowreelEntry) Validate() error {
	if blank(e.MediaURL) {
		return errors.New("media_url is required")
	}
	if e.MediaType != MediaTypeImage && e.MediaType != MediaTypeVideo {
		return errors.New("media_type must be image or video")
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
