// internal/domain/models/accounts.go
package models

import (
	"encoding/json"
	"time"
)

// Admin is the identity returned by GET /api/admin/me.
type Admin struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse is the JSON body of POST /api/admin/login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	Admin   *Admin `json:"admin"`
}

// Customer is a platform user. GET /api/admin/customers returns a bare
// array of these.
type Customer struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	UniqueCode   string    `json:"uniqueCode"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Wallet is a user's points wallet.
type Wallet struct {
	ID           string            `json:"_id"`
	UserID       Ref               `json:"userId"`
	Balance      float64           `json:"balance"`
	Transactions []json.RawMessage `json:"transactions"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// WalletsResponse is the shape of GET /api/admin/wallets.
type WalletsResponse struct {
	Wallets      []Wallet `json:"wallets"`
	CurrentPage  int      `json:"currentPage"`
	TotalPages   int      `json:"totalPages"`
	TotalWallets int      `json:"totalWallets"`
}

// DashboardStats is the "stats" object of GET /api/admin/stats.
type DashboardStats struct {
	TotalPetitions  int            `json:"totalPetitions"`
	TotalSignatures int            `json:"totalSignatures"`
	TotalUsers      int            `json:"totalUsers"`
	Victories       int            `json:"victories"`
	RecentActivity  int            `json:"recentActivity"`
	Breakdown       StatsBreakdown `json:"breakdown"`
}

type StatsBreakdown struct {
	ActivePetitions      int `json:"activePetitions"`
	SuccessfulPetitions  int `json:"successfulPetitions"`
	ActiveSignatures     int `json:"activeSignatures"`
	SuccessfulSignatures int `json:"successfulSignatures"`
}

// StatsResponse is the shape of GET /api/admin/stats and of the local
// GET /api/stats proxy.
type StatsResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Stats   *DashboardStats `json:"stats,omitempty"`
}

// PetitionStats is the public GET /api/petitions/stats payload.
type PetitionStats struct {
	TotalPetitions  int             `json:"totalPetitions"`
	TotalSignatures int             `json:"totalSignatures"`
	Victories       int             `json:"victories"`
	RecentActivity  int             `json:"recentActivity"`
	Breakdown       *StatsBreakdown `json:"breakdown"`
}
