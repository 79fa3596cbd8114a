package domain

// Stats aggregates the counters shown on the admin dashboard.
type Stats struct {
	Portfolio PortfolioStats `json:"portfolio"`
	Contact   ContactStats   `json:"contact"`
}

type PortfolioStats struct {
	TotalItems int `json:"total_items"`
	Images     int `json:"images"`
	Videos     int `json:"videos"`
	Links      int `json:"links"`
}

type ContactStats struct {
	TotalMessages  int `json:"total_messages"`
	UnreadMessages int `json:"unread_messages"`
}
