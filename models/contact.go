package models

import "time"

// ContactSubmission is a message sent through the storefront contact form.
type ContactSubmission struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Company   *string   `json:"company,omitempty"`
	Message   string    `json:"message"`
	Source    *string   `json:"source,omitempty"`
	IPAddress *string   `json:"ipAddress,omitempty"`
	UserAgent *string   `json:"userAgent,omitempty"`
	IsRead    bool      `json:"isRead"`
	Notes     *string   `json:"notes,omitempty"`
}

type SubmitContactInput struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=64"`
	Company *string `json:"company" validate:"omitempty,max=255"`
	Message string  `json:"message" validate:"required"`
	Source  *string `json:"source" validate:"omitempty,max=255"`
}

type UpdateContactInput struct {
	ID     int     `json:"id"`
	IsRead *bool   `json:"isRead"`
	Notes  *string `json:"notes"`
}

// ListOptions pages through admin lists. Take of 0 means the default page size.
type ListOptions struct {
	Skip int `json:"skip"`
	Take int `json:"take"`
}

// SortOrder is the direction of one sort column.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ContactSort orders a submission list. Set columns apply in field order.
type ContactSort struct {
	ID        *SortOrder
	Name      *SortOrder
	Email     *SortOrder
	CreatedAt *SortOrder
	UpdatedAt *SortOrder
	IsRead    *SortOrder
}

// ContactFilter narrows a submission list. Name and Email match
// case-insensitive substrings; every set field must hold.
type ContactFilter struct {
	IsRead    *bool
	Email     *string
	Name      *string
	CreatedAt *DateRange
}

// ContactListOptions pages, filters and sorts the admin submission list.
// Without a sort the list is newest first.
type ContactListOptions struct {
	ListOptions
	Sort   *ContactSort
	Filter *ContactFilter
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 1000
)

// Normalize clamps the options to sane bounds.
func (o ListOptions) Normalize() ListOptions {
	if o.Skip < 0 {
		o.Skip = 0
	}
	if o.Take <= 0 {
		o.Take = DefaultPageSize
	}
	if o.Take > MaxPageSize {
		o.Take = MaxPageSize
	}
	return o
}
