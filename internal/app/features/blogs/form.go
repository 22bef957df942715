// internal/app/features/blogs/form.go
package blogs

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/detail"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/formupload"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/formutil"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// formFields are forwarded to the backend as submitted. Tags travel as the
// raw comma-separated text; the backend splits them.
var formFields = []string{"title", "content", "excerpt", "author", "category", "tags", "isFeatured?", "isPublished?"}

type formData struct {
	formutil.Base

	ID          string
	Action      string
	Heading     string
	Submit      string
	Title       string
	Content     string
	Excerpt     string
	Author      string
	Category    string
	Tags        string
	IsFeatured  bool
	IsPublished bool
	Preview     formupload.Preview
	Categories  []string
	// LoadFailed hides the form when the blog could not be loaded.
	LoadFailed bool
}

func newForm(r *http.Request, id string) formData {
	f := formData{
		Action:      listPath + "/create",
		Heading:     "Create Blog",
		Submit:      "Create Blog",
		Category:    models.DefaultBlogCategory,
		IsPublished: true,
		Categories:  models.BlogCategories,
	}
	if id != "" {
		f.ID = id
		f.Action = listPath + "/edit/" + url.PathEscape(id)
		f.Heading = "Edit Blog"
		f.Submit = "Update Blog"
	}
	formutil.SetBase(&f.Base, r, f.Heading)
	return f
}

func (f *formData) fill(b *models.Blog) {
	f.Title = b.Title
	f.Content = b.Content
	f.Excerpt = b.Excerpt
	f.Author = b.Author
	if b.Category != "" {
		f.Category = b.Category
	}
	f.Tags = formutil.JoinList(b.Tags)
	f.IsFeatured = b.IsFeatured
	f.IsPublished = b.IsPublished
	f.Preview = formupload.Preview{Original: b.Image}
}

// echo copies the submitted values back into the form.
func (f *formData) echo(r *http.Request) {
	f.Title = formutil.Value(r, "title")
	f.Content = r.FormValue("content")
	f.Excerpt = formutil.Value(r, "excerpt")
	f.Author = formutil.Value(r, "author")
	if c := formutil.Value(r, "category"); c != "" {
		f.Category = c
	}
	f.Tags = formutil.Value(r, "tags")
	f.IsFeatured = formutil.Checked(r, "isFeatured")
	f.IsPublished = formutil.Checked(r, "isPublished")
	f.Preview.Original = r.FormValue("originalImage")
}

// ServeCreate handles GET /dashboard/blogs/create.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "blog_form", newForm(r, ""))
}

// ServeEdit handles GET /dashboard/blogs/edit/{id}.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	api := h.api(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f := newForm(r, id)
	res := detail.Load(ctx, func(ctx context.Context) (*models.Blog, error) {
		return api.Blog(ctx, id)
	}, "Failed to fetch blog")

	status := http.StatusOK
	switch {
	case res.Err != "":
		f.SetError(res.Err)
		f.LoadFailed = true
	case res.NotFound:
		f.SetError("Blog not found")
		f.LoadFailed = true
		status = http.StatusNotFound
	default:
		f.fill(res.Item)
	}
	templates.RenderStatus(w, r, status, "blog_form", f)
}

// HandleCreate handles POST /dashboard/blogs/create.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)
	h.submit(w, r, "", "Failed to create blog", api.CreateBlog)
}

// HandleEdit handles POST /dashboard/blogs/edit/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	api := h.api(r)
	h.submit(w, r, id, "Failed to update blog", func(ctx context.Context, body backend.Multipart) error {
		return api.UpdateBlog(ctx, id, body)
	})
}

// submit forwards the form as multipart. Success returns to the list; a
// failure shows the form again with what was entered.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request, id, failure string, send func(context.Context, backend.Multipart) error) {
	f := newForm(r, id)

	body, err := formupload.FromRequest(r, formFields, "image", h.MaxBytes)
	if err != nil {
		f.echo(r)
		if errors.Is(err, formupload.ErrTooLarge) {
			f.SetError(formupload.TooLargeMessage(h.MaxBytes))
		} else {
			f.SetError(failure)
		}
		h.Log.Warn("blog form unreadable", zap.String("id", id), zap.Error(err))
		templates.RenderStatus(w, r, http.StatusBadRequest, "blog_form", f)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "blog save")
	defer cancel()

	if err := send(ctx, body); err != nil {
		h.Log.Warn("blog save failed", zap.String("id", id), zap.Bool("image", body.HasFile()), zap.Error(err))
		f.echo(r)
		f.SetError(backend.MessageOr(err, failure))
		templates.RenderStatus(w, r, http.StatusOK, "blog_form", f)
		return
	}
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}
