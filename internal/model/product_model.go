package model

import (
	"strings"
	"time"
)

// Platform is the platform a product runs on.
type Platform int

const (
	PlatformWindows Platform = iota + 1
	PlatformMac
	PlatformLinux
	PlatformMobile
)

func (p Platform) String() string {
	switch p {
	case PlatformWindows:
		return "Windows"
	case PlatformMac:
		return "Mac"
	case PlatformLinux:
		return "Linux"
	case PlatformMobile:
		return "Mobile"
	}
	return "Unknown"
}

func ParsePlatform(s string) (Platform, bool) {
	switch strings.ToLower(s) {
	case "windows":
		return PlatformWindows, true
	case "mac":
		return PlatformMac, true
	case "linux":
		return PlatformLinux, true
	case "mobile":
		return PlatformMobile, true
	}
	return 0, false
}

// AgeRating is the age classification of a product. The ordinal is what
// the catalog's minimum-age filter compares against.
type AgeRating int

const (
	AgeEveryone AgeRating = iota + 1
	AgeTeen
	AgeMature
	AgeAdult
)

func (a AgeRating) String() string {
	switch a {
	case AgeEveryone:
		return "Everyone"
	case AgeTeen:
		return "Teen"
	case AgeMature:
		return "Mature"
	case AgeAdult:
		return "Adult"
	}
	return "Unknown"
}

type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Genre       string     `json:"genre"`
	Platform    Platform   `json:"platform"`
	Rating      AgeRating  `json:"rating"`
	Price       float64    `json:"price"`
	TotalRating float64    `json:"totalrating"`
	IsDeleted   bool       `json:"-"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// ProductQuery selects, orders and pages the catalog listing.
// Zero values mean "not supplied"; the catalog service fills defaults.
type ProductQuery struct {
	Genre         string `json:"genre,omitempty"`
	MinAge        int    `json:"age,omitempty"`
	SortBy        string `json:"sortby"`
	SortDirection string `json:"sortdirection"`
	Page          int    `json:"page"`
	PageSize      int    `json:"pagesize"`
}

type ProductList struct {
	Products   []Product `json:"products"`
	TotalItems int       `json:"totalitems"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pagesize"`
}

type TopPlatform struct {
	Platform     string `json:"platform"`
	ProductCount int    `json:"productcount"`
}
