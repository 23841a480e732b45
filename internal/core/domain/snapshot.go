package domain

import (
	"errors"
	"time"
)

// ErrRateLimited marks failures caused by the external indexer's rate
// limiting (HTTP 429). It maps to a distinct "try again later" state and is
// never folded into generic failure.
var ErrRateLimited = errors.New("rate limited by external service")

// Collection names the sub-fetches the aggregator performs. Used as keys in
// the fetch report and as metric labels.
type Collection string

const (
	CollectionRoster       Collection = "roster"       // employer's freelancers
	CollectionInvitations  Collection = "invitations"  // employer's invitations
	CollectionTransactions Collection = "transactions" // role-scoped transactions
	CollectionJobs         Collection = "jobs"         // global job list
	CollectionDirectory    Collection = "directory"    // global freelancer list
)

// FetchFailure records one failed sub-fetch. The snapshot is still returned
// with the remaining collections populated (best-effort aggregation).
type FetchFailure struct {
	Collection  Collection `json:"collection"`
	Err         error      `json:"-"`
	Message     string     `json:"error"`
	RateLimited bool       `json:"rate_limited,omitempty"`
}

// Snapshot is the complete output of one aggregation pass. It is rebuilt
// wholesale on every refresh and never patched field-by-field.
type Snapshot struct {
	Principal    Principal           `json:"principal"`
	Profile      RoleProfile         `json:"-"`
	Roster       []FreelancerProfile `json:"roster,omitempty"`
	Invitations  []Invitation        `json:"invitations,omitempty"`
	Transactions []Transaction       `json:"transactions"`
	Jobs         []JobPosting        `json:"jobs"`
	Directory    []FreelancerProfile `json:"directory"`
	Failures     []FetchFailure      `json:"failures,omitempty"`
	RateLimited  bool                `json:"rate_limited"`
	BuiltAt      time.Time           `json:"built_at"`
}

// Failed reports whether the named sub-fetch failed in this pass.
func (s *Snapshot) Failed(c Collection) bool {
	for _, f := range s.Failures {
		if f.Collection == c {
			return true
		}
	}
	return false
}

// Empty reports whether this is the blank snapshot produced for a principal
// with no role record.
func (s *Snapshot) Empty() bool {
	return !s.Profile.Resolved()
}
