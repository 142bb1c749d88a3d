package job

import (
	"time"

	"github.com/jobboardhq/jobs-api/internal/company"
)

// JobPost is the read model for a job record. CompanyName is join-derived
// on list reads, Company carries the full embedded detail on single reads.
type JobPost struct {
	ID              int              `json:"id"`
	Title           string           `json:"title"`
	Salary          *int             `json:"salary"`
	Equity          *float64         `json:"equity"`
	Description     string           `json:"description,omitempty"`
	DescriptionHTML string           `json:"descriptionHtml,omitempty"`
	Slug            string           `json:"slug"`
	CompanyHandle   string           `json:"companyHandle"`
	CompanyName     string           `json:"companyName,omitempty"`
	Company         *company.Company `json:"company,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	TimeAgo         string           `json:"timeAgo,omitempty"`
}

type JobRq struct {
	Title         string
	Salary        *int
	Equity        *float64
	Description   string
	CompanyHandle string
}

// JobRqUpdate carries a partial update, nil means the field was not present
// in the payload. Identity and foreign key fields are rejected upfront by
// the update schema and never reach this struct.
type JobRqUpdate struct {
	Title       *string
	Salary      *int
	Equity      *float64
	Description *string
}

// NewJobRq builds a create intent from a payload that already passed the
// create schema, the type assertions are safe after validation.
func NewJobRq(payload map[string]interface{}) *JobRq {
	rq := &JobRq{}
	if v, ok := payload["title"].(string); ok {
		rq.Title = v
	}
	if v, ok := payload["salary"].(float64); ok {
		salary := int(v)
		rq.Salary = &salary
	}
	if v, ok := payload["equity"].(float64); ok {
		equity := v
		rq.Equity = &equity
	}
	if v, ok := payload["description"].(string); ok {
		rq.Description = v
	}
	if v, ok := payload["companyHandle"].(string); ok {
		rq.CompanyHandle = v
	}
	return rq
}

// NewJobRqUpdate builds a partial update intent from a payload that already
// passed the update schema.
func NewJobRqUpdate(payload map[string]interface{}) *JobRqUpdate {
	rq := &JobRqUpdate{}
	if v, ok := payload["title"].(string); ok {
		title := v
		rq.Title = &title
	}
	if v, ok := payload["salary"].(float64); ok {
		salary := int(v)
		rq.Salary = &salary
	}
	if v, ok := payload["equity"].(float64); ok {
		equity := v
		rq.Equity = &equity
	}
	if v, ok := payload["description"].(string); ok {
		description := v
		rq.Description = &description
	}
	return rq
}
