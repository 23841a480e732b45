package domain

import "errors"

var ErrProfileMissing = errors.New("profile missing for resolved role")
var ErrWalletMissing = errors.New("freelancer has no wallet address")

// EmployerProfile is keyed by principal id. CompanyID is generated once at
// onboarding and never regenerated.
type EmployerProfile struct {
	ID              string `json:"id"`
	CompanyName     string `json:"company_name"`
	CompanyID       string `json:"company_id"`
	ContractAddress string `json:"contract_address,omitempty"`
	Headcount       string `json:"headcount,omitempty"`
	Country         string `json:"country,omitempty"`
	WalletAddress   string `json:"wallet_address,omitempty"`
	ProfileImage    string `json:"profile_image,omitempty"`
}

// FreelancerProfile is keyed by principal id. WalletAddress, once connected,
// is the unique payment destination for this freelancer.
type FreelancerProfile struct {
	ID            string `json:"id"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	TaxID         string `json:"tax_id,omitempty"`
	Country       string `json:"country,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
	EmployerID    string `json:"employer_id,omitempty"`
	Email         string `json:"email,omitempty"`
	ProfileImage  string `json:"profile_image,omitempty"`
	Bio           string `json:"bio,omitempty"`
	Twitter       string `json:"twitter,omitempty"`
	Site          string `json:"site,omitempty"`
	Farcaster     string `json:"farcaster,omitempty"`
}

// RoleProfile is a closed union over the two role-specific profiles.
// The zero value means the principal has not onboarded yet ("unresolved");
// consumers must handle all three variants.
type RoleProfile struct {
	role       string
	employer   *EmployerProfile
	freelancer *FreelancerProfile
}

func EmployerRoleProfile(p *EmployerProfile) RoleProfile {
	return RoleProfile{role: RoleEmployer, employer: p}
}

func FreelancerRoleProfile(p *FreelancerProfile) RoleProfile {
	return RoleProfile{role: RoleFreelancer, freelancer: p}
}

// Role returns the role tag, or "" when unresolved.
func (rp RoleProfile) Role() string { return rp.role }

// Resolved reports whether a role-specific profile is present.
func (rp RoleProfile) Resolved() bool { return rp.role != "" }

func (rp RoleProfile) Employer() (*EmployerProfile, bool) {
	return rp.employer, rp.role == RoleEmployer && rp.employer != nil
}

func (rp RoleProfile) Freelancer() (*FreelancerProfile, bool) {
	return rp.freelancer, rp.role == RoleFreelancer && rp.freelancer != nil
}
