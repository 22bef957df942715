// internal/app/system/backend/endpoints.go
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
)

// Multipart is an encoded multipart/form-data body.
type Multipart interface {
	ContentType() string
	Reader() io.Reader
}

/*─────────────────────────────────────────────────────────────────────────────*
| Dashboard                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// Stats fetches GET /api/admin/stats. A {success:false} body is returned
// as an *APIError with App set.
func (s *Session) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.StatsResponse
	rp, err := s.do(ctx, call{op: "admin.stats", method: http.MethodGet, path: "/api/admin/stats"}, &out)
	if err != nil {
		return nil, err
	}
	if err := appError(rp.status, out.Success, out.Message); err != nil {
		return nil, err
	}
	if out.Stats == nil {
		return &models.DashboardStats{}, nil
	}
	return out.Stats, nil
}

// PetitionStats fetches the public GET /api/petitions/stats. It needs no
// admin token.
func (c *Client) PetitionStats(ctx context.Context) (models.PetitionStats, error) {
	var out models.PetitionStats
	_, err := c.do(ctx, call{op: "petitions.stats", method: http.MethodGet, path: "/api/petitions/stats"}, &out)
	return out, err
}

/*─────────────────────────────────────────────────────────────────────────────*
| Petitions                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Session) UnapprovedPetitions(ctx context.Context) (models.PetitionListResponse, error) {
	var out models.PetitionListResponse
	_, err := s.do(ctx, call{op: "petitions.unapproved", method: http.MethodGet, path: "/api/admin/petitions/unapproved"}, &out)
	return out, err
}

func (s *Session) ApprovePetition(ctx context.Context, id string) error {
	_, err := s.do(ctx, call{op: "petitions.approve", method: http.MethodPut, path: "/api/admin/petitions/" + seg(id) + "/approve"}, nil)
	return err
}

// Petition fetches one petition. The endpoint returns the bare document;
// an empty or null body yields (nil, nil).
func (s *Session) Petition(ctx context.Context, id string) (*models.Petition, error) {
	var raw json.RawMessage
	if _, err := s.do(ctx, call{op: "petitions.get", method: http.MethodGet, path: "/api/admin/petitions/" + seg(id)}, &raw); err != nil {
		return nil, err
	}
	if isNullish(raw) {
		return nil, nil
	}
	var p models.Petition
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("petitions.get: decode: %w", err)
	}
	return &p, nil
}

func (s *Session) DeletePetition(ctx context.Context, id string) error {
	_, err := s.do(ctx, call{op: "petitions.delete", method: http.MethodDelete, path: "/api/admin/petitions/" + seg(id)}, nil)
	return err
}

/*─────────────────────────────────────────────────────────────────────────────*
| Successful petitions                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SuccessfulQuery is the filter set of the successful-petitions list.
type SuccessfulQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Location string
	Sort     string
}

func (q SuccessfulQuery) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}

func (s *Session) SuccessfulPetitions(ctx context.Context, q SuccessfulQuery) (models.SuccessfulPetitionListResponse, error) {
	var out models.SuccessfulPetitionListResponse
	_, err := s.do(ctx, call{op: "successful.list", method: http.MethodGet, path: "/api/admin/successful-petitions", query: q.values()}, &out)
	return out, err
}

// SuccessfulPetition returns (nil, nil) when the response carries no
// successfulPetition.
func (s *Session) SuccessfulPetition(ctx context.Context, id string) (*models.SuccessfulPetition, error) {
	var out models.SuccessfulPetitionResponse
	_, err := s.do(ctx, call{op: "successful.get", method: http.MethodGet, path: "/api/admin/successful-petitions/" + seg(id)}, &out)
	if err != nil {
		return nil, err
	}
	return out.SuccessfulPetition, nil
}

func (s *Session) DeleteSuccessfulPetition(ctx context.Context, id string) error {
	_, err := s.do(ctx, call{op: "successful.delete", method: http.MethodDelete, path: "/api/admin/successful-petitions/" + seg(id)}, nil)
	return err
}

/*─────────────────────────────────────────────────────────────────────────────*
| Users, categories, wallets                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// Customers returns the bare array the endpoint answers with.
func (s *Session) Customers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	_, err := s.do(ctx, call{op: "customers.list", method: http.MethodGet, path: "/api/admin/customers"}, &out)
	return out, err
}

func (s *Session) Categories(ctx context.Context) ([]models.Category, error) {
	var out models.CategoriesResponse
	rp, err := s.do(ctx, call{op: "categories.list", method: http.MethodGet, path: "/api/admin/categories"}, &out)
	if err != nil {
		return nil, err
	}
	if err := appError(rp.status, out.Success, out.Message); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (s *Session) DeleteCategory(ctx context.Context, id string) error {
	var out models.MessageResponse
	rp, err := s.do(ctx, call{op: "categories.delete", method: http.MethodDelete, path: "/api/admin/categories/" + seg(id)}, &out)
	if err != nil {
		return err
	}
	return appError(rp.status, out.Success, out.Message)
}

func (s *Session) Wallets(ctx context.Context, page, limit int) (models.WalletsResponse, error) {
	var out models.WalletsResponse
	q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
	_, err := s.do(ctx, call{op: "wallets.list", method: http.MethodGet, path: "/api/admin/wallets", query: q}, &out)
	return out, err
}

/*─────────────────────────────────────────────────────────────────────────────*
| Comments                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Session) UnapprovedComments(ctx context.Context) (models.CommentListResponse, error) {
	var out models.CommentListResponse
	_, err := s.do(ctx, call{op: "comments.unapproved", method: http.MethodGet, path: "/api/comments/admin/unapproved"}, &out)
	return out, err
}

func (s *Session) ApproveComment(ctx context.Context, id string) error {
	_, err := s.do(ctx, call{op: "comments.approve", method: http.MethodPut, path: "/api/comments/admin/" + seg(id) + "/approve"}, nil)
	return err
}

func (s *Session) RejectComment(ctx context.Context, id string) error {
	_, err := s.do(ctx, call{op: "comments.reject", method: http.MethodDelete, path: "/api/comments/admin/" + seg(id) + "/reject"}, nil)
	return err
}

// PetitionComments lists one page of a petition's comments.
func (s *Session) PetitionComments(ctx context.Context, petitionID string, page, limit int) (models.PetitionCommentsResponse, error) {
	var out models.PetitionCommentsResponse
	q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
	rp, err := s.do(ctx, call{op: "comments.petition", method: http.MethodGet, path: "/api/comments/petition/" + seg(petitionID), query: q}, &out)
	if err != nil {
		return out, err
	}
	return out, appError(rp.status, out.Success, out.Message)
}

// DeleteComment removes any comment. The endpoint answers {success, message}.
func (s *Session) DeleteComment(ctx context.Context, id string) error {
	var out models.MessageResponse
	rp, err := s.do(ctx, call{op: "comments.delete", method: http.MethodDelete, path: "/api/comments/" + seg(id)}, &out)
	if err != nil {
		return err
	}
	return appError(rp.status, out.Success, out.Message)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Blogs                                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Session) Blogs(ctx context.Context, page, limit int) (models.BlogListResponse, error) {
	var out models.BlogListResponse
	q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
	_, err := s.do(ctx, call{op: "blogs.list", method: http.MethodGet, path: "/api/blogs/admin/all", query: q}, &out)
	return out, err
}

// Blog fetches one blog for editing; (nil, nil) when the body is empty.
func (s *Session) Blog(ctx context.Context, id string) (*models.Blog, error) {
	var raw json.RawMessage
	if _, err := s.do(ctx, call{op: "blogs.get", method: http.MethodGet, path: "/api/blogs/admin/" + seg(id)}, &raw); err != nil {
		return nil, err
	}
	if isNullish(raw) {
		return nil, nil
	}
	var b models.Blog
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("blogs.get: decode: %w", err)
	}
	return &b, nil
}

func (s *Session) CreateBlog(ctx context.Context, body Multipart) error {
	_, err := s.do(ctx, call{op: "blogs.create", method: http.MethodPost, path: "/api/blogs", rawBody: body.Reader(), contentType: body.ContentType()}, nil)
	return err
}

func (s *Session) UpdateBlog(ctx context.Context, id string, body Multipart) error {
	_, err := s.do(ctx, call{op: "blogs.update", method: http.MethodPut, path: "/api/blogs/" + seg(id), rawBody: body.Reader(), contentType: body.ContentType()}, nil)
	return err
}

func (s *Session) DeleteBlog(ctx context.Context, id string) error {
	_, err := s.do(ctx, call{op: "blogs.delete", method: http.MethodDelete, path: "/api/blogs/" + seg(id)}, nil)
	return err
}

func (s *Session) ToggleBlogFeatured(ctx context.Context, id string) error {
	_, err := s.do(ctx, call{op: "blogs.featured", method: http.MethodPatch, path: "/api/blogs/" + seg(id) + "/featured"}, nil)
	return err
}

func (s *Session) ToggleBlogPublished(ctx context.Context, id string) error {
	_, err := s.do(ctx, call{op: "blogs.publish", method: http.MethodPatch, path: "/api/blogs/" + seg(id) + "/publish"}, nil)
	return err
}

/*─────────────────────────────────────────────────────────────────────────────*
| Ads                                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Session) Ads(ctx context.Context) ([]models.Ad, error) {
	var out models.AdsResponse
	rp, err := s.do(ctx, call{op: "ads.list", method: http.MethodGet, path: "/api/ads"}, &out)
	if err != nil {
		return nil, err
	}
	if err := appError(rp.status, out.Success, out.Message); err != nil {
		return nil, err
	}
	return out.Ads, nil
}

// adMutation runs an ads call whose success is decided by the body's
// success flag rather than the status alone.
func (s *Session) adMutation(ctx context.Context, cl call) error {
	var out models.MessageResponse
	rp, err := s.do(ctx, cl, &out)
	if err != nil {
		return err
	}
	return appError(rp.status, out.Success, out.Message)
}

func (s *Session) CreateAd(ctx context.Context, body Multipart) error {
	return s.adMutation(ctx, call{op: "ads.create", method: http.MethodPost, path: "/api/ads", rawBody: body.Reader(), contentType: body.ContentType()})
}

func (s *Session) UpdateAd(ctx context.Context, id string, body Multipart) error {
	return s.adMutation(ctx, call{op: "ads.update", method: http.MethodPut, path: "/api/ads/" + seg(id), rawBody: body.Reader(), contentType: body.ContentType()})
}

func (s *Session) DeleteAd(ctx context.Context, id string) error {
	return s.adMutation(ctx, call{op: "ads.delete", method: http.MethodDelete, path: "/api/ads/" + seg(id)})
}

func (s *Session) ToggleAd(ctx context.Context, id string) error {
	return s.adMutation(ctx, call{op: "ads.toggle", method: http.MethodPatch, path: "/api/ads/" + seg(id) + "/toggle"})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Review workflows                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// HideRequests lists hide requests; status "" means all.
func (s *Session) HideRequests(ctx context.Context, page, limit int, status string) (models.HideRequestsResponse, error) {
	var out models.HideRequestsResponse
	q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
	if status != "" {
		q.Set("status", status)
	}
	_, err := s.do(ctx, call{op: "hiderequests.list", method: http.MethodGet, path: "/api/hide-requests", query: q}, &out)
	return out, err
}

// ReviewHideRequest approves or rejects (action) a hide request.
func (s *Session) ReviewHideRequest(ctx context.Context, id, action, adminNote string) error {
	if action != "approve" && action != "reject" {
		return fmt.Errorf("hiderequests: unknown action %q", action)
	}
	_, err := s.do(ctx, call{
		op:       "hiderequests." + action,
		method:   http.MethodPut,
		path:     "/api/hide-requests/" + seg(id) + "/" + action,
		jsonBody: models.ReviewBody{AdminNote: adminNote},
	}, nil)
	return err
}

// DownloadRequests lists download requests; status "" means all.
func (s *Session) DownloadRequests(ctx context.Context, status string) (models.DownloadRequestsResponse, error) {
	var out models.DownloadRequestsResponse
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	_, err := s.do(ctx, call{op: "downloadrequests.list", method: http.MethodGet, path: "/api/download-requests/admin/all", query: q}, &out)
	return out, err
}

func (s *Session) ApproveDownloadRequest(ctx context.Context, id, adminNote string, approvedFields []string) error {
	_, err := s.do(ctx, call{
		op:       "downloadrequests.approve",
		method:   http.MethodPut,
		path:     "/api/download-requests/admin/" + seg(id) + "/approve",
		jsonBody: models.ReviewBody{AdminNote: adminNote, ApprovedFields: approvedFields},
	}, nil)
	return err
}

func (s *Session) RejectDownloadRequest(ctx context.Context, id, adminNote string) error {
	_, err := s.do(ctx, call{
		op:       "downloadrequests.reject",
		method:   http.MethodPut,
		path:     "/api/download-requests/admin/" + seg(id) + "/reject",
		jsonBody: models.ReviewBody{AdminNote: adminNote},
	}, nil)
	return err
}

// WalletRequests lists wallet recharge requests; status "" means all.
func (s *Session) WalletRequests(ctx context.Context, status string) (models.WalletRequestsResponse, error) {
	var out models.WalletRequestsResponse
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	_, err := s.do(ctx, call{op: "walletrequests.list", method: http.MethodGet, path: "/api/wallet-requests/admin/all", query: q}, &out)
	return out, err
}

// ReviewWalletRequest approves or rejects (action) a recharge request.
func (s *Session) ReviewWalletRequest(ctx context.Context, action, id string) error {
	if action != "approve" && action != "reject" {
		return fmt.Errorf("walletrequests: unknown action %q", action)
	}
	_, err := s.do(ctx, call{
		op:     "walletrequests." + action,
		method: http.MethodPut,
		path:   "/api/wallet-requests/admin/" + action + "/" + seg(id),
	}, nil)
	return err
}
