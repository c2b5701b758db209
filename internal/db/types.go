package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Candidate represents a job-seeker account with its profile fields.
type Candidate struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"` // Never serialize to JSON
	Headline     string      `json:"headline,omitempty"`
	Bio          string      `json:"bio,omitempty"`
	Skills       StringArray `json:"skills"` // JSONB array, order kept, duplicates kept
	ResumeURL    string      `json:"resume_url,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Company represents an employer account.
type Company struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Description  string    `json:"description,omitempty"`
	Website      string    `json:"website,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Admin represents an administrator account.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// JobPosting represents a job listing with its moderation lifecycle.
// A posting is publicly eligible only when Status is active AND Visible
// is true; the status transition code keeps the two coupled.
type JobPosting struct {
	ID                uuid.UUID   `json:"id"`
	CompanyID         uuid.UUID   `json:"company_id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Location          string      `json:"location,omitempty"`
	EmploymentType    string      `json:"employment_type,omitempty"` // full-time, part-time, etc.
	Status            string      `json:"status"`
	Visible           bool        `json:"visible"`
	RequiredSkills    StringArray `json:"required_skills"`
	PreferredSkills   StringArray `json:"preferred_skills"`
	ApplicationsCount int         `json:"applications_count"`
	ExpiresAt         *time.Time  `json:"expires_at,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// Application links one candidate to one job posting at one company.
// The (candidate_id, job_id) pair is unique at the database level.
type Application struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	JobID       uuid.UUID `json:"job_id"`
	CompanyID   uuid.UUID `json:"company_id"`
	CoverNote   string    `json:"cover_note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityEvent is one entry in the append-only admin activity log.
type ActivityEvent struct {
	ID         uuid.UUID `json:"id"`
	AdminID    uuid.UUID `json:"admin_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// BlogPost is an admin-authored article.
type BlogPost struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CareerResource is an admin-curated external link.
type CareerResource struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Summary   string    `json:"summary,omitempty"`
	Category  string    `json:"category,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	var source []byte
	switch v := src.(type) {
	case []byte:
		source = v
	case string:
		source = []byte(v)
	default:
		return errors.New("unsupported source type for StringArray")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
