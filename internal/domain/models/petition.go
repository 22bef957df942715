// internal/domain/models/petition.go
package models

import (
	"sort"
	"time"
)

// Petition is a petition as returned by the admin petition endpoints.
type Petition struct {
	ID                 string          `json:"_id"`
	Title              string          `json:"title"`
	Country            string          `json:"country"`
	NumberOfSignatures int             `json:"numberOfSignatures"`
	PetitionDetails    PetitionDetails `json:"petitionDetails"`
	DecisionMakers     []DecisionMaker `json:"decisionMakers"`
	PetitionStarter    PetitionStarter `json:"petitionStarter"`
	Signatures         []Signature     `json:"signatures"`
	CreatedAt          time.Time       `json:"createdAt"`
}

type PetitionDetails struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
	Image    string `json:"image"`
	VideoURL string `json:"videoUrl"`
}

type DecisionMaker struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// PetitionStarter holds the identity details the starter supplied.
type PetitionStarter struct {
	Name         string `json:"name"`
	Mobile       string `json:"mobile"`
	Age          int    `json:"age"`
	Location     string `json:"location"`
	AadharNumber string `json:"aadharNumber"`
	PanNumber    string `json:"panNumber"`
	Comment      string `json:"comment"`
	User         Ref    `json:"user"`
}

type Signature struct {
	User     Ref       `json:"user"`
	Referral Referral  `json:"referral"`
	SignedAt time.Time `json:"signedAt"`
}

type Referral struct {
	Code  string `json:"code"`
	Owner Ref    `json:"owner"`
}

// ReferralCount is one row of the referral breakdown on the petition page.
type ReferralCount struct {
	Code  string
	Count int
}

// ReferralBreakdown counts signatures per referral code ("(none)" when a
// signature has no code), largest count first.
func (p Petition) ReferralBreakdown() []ReferralCount {
	counts := map[string]int{}
	var order []string
	for _, s := range p.Signatures {
		code := s.Referral.Code
		if code == "" {
			code = "(none)"
		}
		if _, seen := counts[code]; !seen {
			order = append(order, code)
		}
		counts[code]++
	}
	out := make([]ReferralCount, 0, len(order))
	for _, c := range order {
		out = append(out, ReferralCount{Code: c, Count: counts[c]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// RecentSignatures returns at most n signatures and how many were left out.
func (p Petition) RecentSignatures(n int) ([]Signature, int) {
	if len(p.Signatures) <= n {
		return p.Signatures, 0
	}
	return p.Signatures[:n], len(p.Signatures) - n
}

// PetitionListResponse is the shape of GET /api/admin/petitions/unapproved.
type PetitionListResponse struct {
	Petitions []Petition `json:"petitions"`
}

// SuccessfulPetition is a petition recorded as a victory.
type SuccessfulPetition struct {
	ID                  string          `json:"_id"`
	PetitionTitle       string          `json:"petitionTitle"`
	Location            string          `json:"location"`
	Category            string          `json:"category"`
	TotalSignatures     int             `json:"totalSignatures"`
	StartedDate         time.Time       `json:"startedDate"`
	SuccessDate         time.Time       `json:"successDate"`
	Issue               string          `json:"issue"`
	Outcome             string          `json:"outcome"`
	Image               string          `json:"image"`
	DecisionMakers      []DecisionMaker `json:"decisionMakers"`
	PetitionStarterName string          `json:"petitionStarterName"`
	OriginalPetitionID  Ref             `json:"originalPetitionId"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// PageInfo is the pagination block some list endpoints return.
type PageInfo struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
}

// SuccessfulPetitionListResponse is the shape of GET /api/admin/successful-petitions.
type SuccessfulPetitionListResponse struct {
	SuccessfulPetitions []SuccessfulPetition `json:"successfulPetitions"`
	Pagination          PageInfo             `json:"pagination"`
}

// SuccessfulPetitionResponse is the shape of GET /api/admin/successful-petitions/{id}.
type SuccessfulPetitionResponse struct {
	SuccessfulPetition *SuccessfulPetition `json:"successfulPetition"`
}
