package testutil

import (
	"fmt"

	"github.com/jobpilot/jobreview/internal/domain/model"
)

// JobAdBuilder provides a fluent interface for building job ads in tests.
type JobAdBuilder struct {
	job model.JobAd
}

// NewJobAd creates a JobAdBuilder for an unprocessed job ad with sensible defaults.
func NewJobAd(id string) *JobAdBuilder {
	return &JobAdBuilder{
		job: model.JobAd{
			ID:          id,
			DateAdded:   TestTime().Unix(),
			Title:       "Backend Engineer " + id,
			Company:     "Acme",
			Description: "Build and run services.",
			Link:        "https://jobs.example.com/" + id,
		},
	}
}

// WithTitle sets the title.
func (b *JobAdBuilder) WithTitle(title string) *JobAdBuilder {
	b.job.Title = title
	return b
}

// WithCompany sets the company.
func (b *JobAdBuilder) WithCompany(company string) *JobAdBuilder {
	b.job.Company = company
	return b
}

// WithDescription sets the description.
func (b *JobAdBuilder) WithDescription(desc string) *JobAdBuilder {
	b.job.Description = desc
	return b
}

// WithLink sets the link.
func (b *JobAdBuilder) WithLink(link string) *JobAdBuilder {
	b.job.Link = link
	return b
}

// WithDateAdded sets the sort key.
func (b *JobAdBuilder) WithDateAdded(unix int64) *JobAdBuilder {
	b.job.DateAdded = unix
	return b
}

// Build returns the job ad.
func (b *JobAdBuilder) Build() model.JobAd {
	return b.job
}

// JobAds builds n unprocessed job ads with ids prefix-1..prefix-n.
func JobAds(prefix string, n int) []model.JobAd {
	out := make([]model.JobAd, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, NewJobAd(fmt.Sprintf("%s-%d", prefix, i)).WithDateAdded(TestTime().Unix()+int64(i)).Build())
	}
	return out
}
