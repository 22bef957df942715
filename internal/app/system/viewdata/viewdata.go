// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"strings"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/gorilla/csrf"
)

// NavItem is one sidebar link.
type NavItem struct {
	Href   string
	Label  string
	Icon   string // font-awesome class
	Active bool
}

// navLinks is the sidebar in display order. Petitions has no list page of
// its own and opens the approval queue.
var navLinks = []NavItem{
	{Href: "/dashboard", Label: "Dashboard", Icon: "fa-chart-pie"},
	{Href: "/dashboard/petition-approval", Label: "Petitions", Icon: "fa-file-signature"},
	{Href: "/dashboard/successfulpetitions", Label: "Successful Petitions", Icon: "fa-trophy"},
	{Href: "/dashboard/comment-approval", Label: "Comment Approval", Icon: "fa-comments"},
	{Href: "/dashboard/blogs", Label: "Blogs", Icon: "fa-newspaper"},
	{Href: "/dashboard/ads", Label: "Ads", Icon: "fa-bullhorn"},
	{Href: "/dashboard/categories", Label: "Categories", Icon: "fa-tags"},
	{Href: "/dashboard/users", Label: "Users", Icon: "fa-users"},
	{Href: "/dashboard/wallets", Label: "Wallets", Icon: "fa-wallet"},
	{Href: "/dashboard/hide-requests", Label: "Hide Requests", Icon: "fa-eye-slash"},
	{Href: "/dashboard/download-requests", Label: "Download Requests", Icon: "fa-download"},
	{Href: "/dashboard/wallet-requests", Label: "Wallet Requests", Icon: "fa-money-bill-wave"},
}

// BaseVM contains common fields for all page view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type listData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := listData{BaseVM: viewdata.NewBaseVM(r, "Blogs")}
type BaseVM struct {
	Title       string
	CurrentPath string
	CSRFToken   string

	// Admin is nil on pages served outside the session guard (login, errors).
	Admin *models.Admin

	Nav     []NavItem
	Flashes []string
}

// NewBaseVM builds a BaseVM for r: the verified admin, the sidebar with the
// current section marked, pending flashes and the CSRF token.
func NewBaseVM(r *http.Request, title string) BaseVM {
	vm := BaseVM{
		Title:       title,
		CurrentPath: r.URL.Path,
		CSRFToken:   csrf.Token(r),
		Flashes:     auth.Flashes(r),
	}
	if a, ok := auth.CurrentAdmin(r); ok {
		vm.Admin = &a
		vm.Nav = Nav(r.URL.Path)
	}
	return vm
}

// Nav returns the sidebar with the entry owning path marked active. The
// longest matching prefix wins, so /dashboard only matches itself.
func Nav(path string) []NavItem {
	items := make([]NavItem, len(navLinks))
	copy(items, navLinks)

	best, bestLen := -1, 0
	for i, it := range items {
		if path == it.Href || (it.Href != "/dashboard" && strings.HasPrefix(path, it.Href+"/")) {
			if len(it.Href) > bestLen {
				best, bestLen = i, len(it.Href)
			}
		}
	}
	// Petition detail pages belong to the petitions entry.
	if best < 0 && strings.HasPrefix(path, "/dashboard/petitions/") {
		best = 1
	}
	if best >= 0 {
		items[best].Active = true
	}
	return items
}
