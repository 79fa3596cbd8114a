package apisdk

import "time"

// ============================================================================
// Auth
// ============================================================================

// LoginRequest carries the credentials for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the opaque session token and its owner. The token
// is also set as an HttpOnly cookie for browser clients.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

// UserInfo is the public view of an account. It never carries the
// password hash.
type UserInfo struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// ChangePasswordRequest carries POST /api/auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ============================================================================
// Portfolio
// ============================================================================

// PortfolioItemRequest carries the mutable fields for create and update.
type PortfolioItemRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	ItemType      string   `json:"item_type"`
	FilePath      string   `json:"file_path,omitempty"`
	URL           string   `json:"url,omitempty"`
	ThumbnailPath string   `json:"thumbnail_path,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// PortfolioItem is a catalogue entry as returned by the API.
type PortfolioItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	ItemType      string    `json:"item_type"`
	FilePath      string    `json:"file_path,omitempty"`
	URL           string    `json:"url,omitempty"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	Tags          []string  `json:"tags"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UploadResponse describes a stored media file. FilePath is ready to be
// used in a PortfolioItemRequest; ItemType is inferred from the extension.
type UploadResponse struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
	ItemType string `json:"item_type"`
}

// ============================================================================
// Contact
// ============================================================================

// ContactRequest carries a public contact-form submission.
type ContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	ProjectType string `json:"project_type,omitempty"`
}

// ContactMessage is an inbox entry as shown to admins.
type ContactMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	ProjectType string    `json:"project_type,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// ============================================================================
// Stats and system
// ============================================================================

// StatsResponse aggregates the admin dashboard counters.
type StatsResponse struct {
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

// MessageResponse is a generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}
