// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// OpeningHour is one entry in the ordered weekly schedule.
type OpeningHour struct {
	Day    string `json:"day"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed,omitempty"`
	Note   string `json:"note,omitempty"`
}

// HeroSlide is one entry of the homepage hero carousel, referencing a
// project and one of its images.
type HeroSlide struct {
	ProjectID string `json:"projectId"`
	Image     string `json:"image"`
	Title     string `json:"title"`
	Category  string `json:"category,omitempty"`
}

// Legal holds company identification details shown in the footer.
type Legal struct {
	CompanyName  string `json:"companyName"`
	PIVA         string `json:"piva"`
	LegalAddress string `json:"legalAddress,omitempty"`
}

// Social maps social network names to profile URLs.
type Social struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// SEODefaults holds the site-wide fallback metadata.
type SEODefaults struct {
	DefaultMetaTitle       string `json:"defaultMetaTitle"`
	DefaultMetaDescription string `json:"defaultMetaDescription"`
}

// SiteConfig is the singleton site configuration record. It always exists:
// a default value is served when the stored document cannot be read, and it
// is only ever updated, never created or deleted.
type SiteConfig struct {
	SiteName      string        `json:"siteName"`
	Tagline       string        `json:"tagline"`
	FaviconURL    string        `json:"faviconUrl"`
	ContactEmail  string        `json:"contactEmail"`
	Phone         string        `json:"phone"` // E.164-ish, e.g. +390289031657
	Address       string        `json:"address"`
	GoogleMapsURL string        `json:"googleMapsUrl"`
	Legal         Legal         `json:"legal"`
	OpeningHours  []OpeningHour `json:"openingHours"`
	Social        Social        `json:"social"`
	SEO           SEODefaults   `json:"seo"`
	HeroCarousel  []HeroSlide   `json:"heroCarousel"`
}

// DefaultSiteConfig returns the built-in configuration used when no stored
// document is available.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		SiteName:      "Stagecraft Studio",
		Tagline:       "Design and production for unforgettable events",
		FaviconURL:    "/favicon.ico",
		ContactEmail:  "info@stagecraft.example",
		Phone:         "+390200000000",
		Address:       "Via dei Teatri 1, Milano",
		GoogleMapsURL: "https://maps.google.com/?q=Via+dei+Teatri+1+Milano",
		Legal: Legal{
			CompanyName: "Stagecraft Studio SRL",
			PIVA:        "00000000000",
		},
		OpeningHours: []OpeningHour{
			{Day: "Monday", Open: "09:00", Close: "18:00"},
			{Day: "Tuesday", Open: "09:00", Close: "18:00"},
			{Day: "Wednesday", Open: "09:00", Close: "18:00"},
			{Day: "Thursday", Open: "09:00", Close: "18:00"},
			{Day: "Friday", Open: "09:00", Close: "18:00"},
			{Day: "Saturday", Open: "", Close: "", Closed: true},
			{Day: "Sunday", Open: "", Close: "", Closed: true},
		},
		SEO: SEODefaults{
			DefaultMetaTitle:       "Stagecraft Studio",
			DefaultMetaDescription: "Set design, exhibitions and event production.",
		},
		HeroCarousel: []HeroSlide{},
	}
}
