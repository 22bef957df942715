// internal/domain/models/requests.go
package models

import "time"

// Request statuses shared by the hide, download and wallet workflows.
const (
	StatusPending             = "pending"
	StatusVerificationPending = "verification_pending"
	StatusApproved            = "approved"
	StatusRejected            = "rejected"
)

// HideRequest asks for a signer's identity to be hidden on a petition.
type HideRequest struct {
	ID         string    `json:"_id"`
	Petition   Ref       `json:"petition"`
	User       Ref       `json:"user"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	ReviewedBy string    `json:"reviewedBy"`
}

// HideRequestsResponse is the shape of GET /api/hide-requests.
type HideRequestsResponse struct {
	HideRequests []HideRequest `json:"hideRequests"`
	Pagination   PageInfo      `json:"pagination"`
}

// DownloadRequest asks for access to a petition's signer data.
type DownloadRequest struct {
	ID              string    `json:"_id"`
	User            Ref       `json:"user"`
	Petition        Ref       `json:"petition"`
	Reason          string    `json:"reason"`
	RequestedFields []string  `json:"requestedFields"`
	ApprovedFields  []string  `json:"approvedFields"`
	AdminNote       string    `json:"adminNote"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DownloadRequestsResponse is the shape of GET /api/download-requests/admin/all.
type DownloadRequestsResponse struct {
	Requests      []DownloadRequest `json:"requests"`
	TotalRequests int               `json:"totalRequests"`
}

// WalletRequest is a wallet recharge submitted with a payment screenshot.
type WalletRequest struct {
	ID          string    `json:"_id"`
	UserID      Ref       `json:"userId"`
	Amount      float64   `json:"amount"`
	Points      float64   `json:"points"`
	ReferenceID string    `json:"referenceId"`
	Screenshot  string    `json:"screenshot"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Actionable reports whether the request can still be approved or rejected.
func (w WalletRequest) Actionable() bool {
	return w.Status != StatusApproved && w.Status != StatusRejected
}

// WalletRequestsResponse is the shape of GET /api/wallet-requests/admin/all.
type WalletRequestsResponse struct {
	Requests []WalletRequest `json:"requests"`
}

// ReviewBody is the JSON body of approve/reject calls.
type ReviewBody struct {
	AdminNote      string   `json:"adminNote"`
	ApprovedFields []string `json:"approvedFields,omitempty"`
}

// MessageResponse is the {success, message} envelope most mutations use.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
