package domain

import "time"

// Portfolio item types. Items are either uploaded media or external links.
const (
	ItemTypeImage = "image"
	ItemTypeVideo = "video"
	ItemTypeLink  = "link"
)

// ValidItemType reports whether t is one of the accepted item types.
func ValidItemType(t string) bool {
	switch t {
	case ItemTypeImage, ItemTypeVideo, ItemTypeLink:
		return true
	}
	return false
}

// PortfolioItem is a single entry on the public portfolio. FilePath and
// ThumbnailPath reference uploaded media; URL holds external links.
// Deletion is a soft-deactivate so published URLs never dangle.
type PortfolioItem struct {
	ID            string
	Title         string
	Description   string
	Category      string // e.g. design, video, links
	ItemType      string // image, video or link
	FilePath      string
	URL           string
	ThumbnailPath string
	Tags          []string
	CreatedBy     string // user ID, empty if the creator was removed
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
