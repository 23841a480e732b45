package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrJobNotFound = errors.New("job not found")

// JobPosting is created by a freelancer advertising their services. Rate is
// an hourly USDC amount. Skills are a list in memory; the external store
// keeps them as a single comma-delimited string, so joining happens only at
// the repository boundary.
type JobPosting struct {
	ID           string          `json:"id"`
	FreelancerID string          `json:"userid"`
	Title        string          `json:"header"`
	Description  string          `json:"description"`
	Skills       []string        `json:"skills"`
	Rate         decimal.Decimal `json:"rate"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SplitSkills parses the store's delimited representation, trimming each tag
// and dropping empties.
func SplitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			skills = append(skills, t)
		}
	}
	return skills
}

// JoinSkills produces the store representation.
func JoinSkills(skills []string) string {
	trimmed := make([]string, 0, len(skills))
	for _, s := range skills {
		if t := strings.TrimSpace(s); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return strings.Join(trimmed, ",")
}
