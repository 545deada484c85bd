package model

import "time"

// JobPost is a job advertised by a user
type JobPost struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	JobType      string    `json:"job_type"`
	Category     string    `json:"category"`
	District     string    `json:"district"`
	Description  string    `json:"description"`
	ContactPhone string    `json:"contact_phone"`
	PostedBy     int64     `json:"posted_by"`
	PosterName   string    `json:"poster_name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateJobRequest is the body of POST /v1/jobs. Every field is required.
type CreateJobRequest struct {
	Title        string `json:"title"`
	JobType      string `json:"job_type"`
	Category     string `json:"category"`
	District     string `json:"district"`
	Description  string `json:"description"`
	ContactPhone string `json:"contact_phone"`
}

// UpdateJobRequest is the body of PUT /v1/jobs/{id}. Nil fields are left unchanged.
type UpdateJobRequest struct {
	Title        *string `json:"title,omitempty"`
	JobType      *string `json:"job_type,omitempty"`
	Category     *string `json:"category,omitempty"`
	District     *string `json:"district,omitempty"`
	Description  *string `json:"description,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// IsEmpty reports whether the request changes nothing
func (r *UpdateJobRequest) IsEmpty() bool {
	return r.Title == nil && r.JobType == nil && r.Category == nil && r.District == nil &&
		r.Description == nil && r.ContactPhone == nil && r.IsActive == nil
}

// Fields returns the set fields keyed by column name
func (r *UpdateJobRequest) Fields() map[string]any {
	f := make(map[string]any)
	if r.Title != nil {
		f["title"] = *r.Title
	}
	if r.JobType != nil {
		f["job_type"] = *r.JobType
	}
	if r.Category != nil {
		f["category"] = *r.Category
	}
	if r.District != nil {
		f["district"] = *r.District
	}
	if r.Description != nil {
		f["description"] = *r.Description
	}
	if r.ContactPhone != nil {
		f["contact_phone"] = *r.ContactPhone
	}
	if r.IsActive != nil {
		f["is_active"] = *r.IsActive
	}
	return f
}
