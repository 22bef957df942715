package actions

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Client-side events raised through HX-Trigger. The layout script listens
// for them.
const (
	EventAlert      = "showAlert"
	EventCloseModal = "closeModal"
	// EventRowRemoved carries {"counter": "<element id>"}; the counter's
	// number is decremented.
	EventRowRemoved = "rowRemoved"
)

// Flasher queues a message for the next full page load.
type Flasher interface {
	AddFlash(w http.ResponseWriter, r *http.Request, msg string)
}

// IsHTMX reports whether r was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Trigger sets HX-Trigger to the given events.
func Trigger(w http.ResponseWriter, events map[string]any) {
	b, err := json.Marshal(events)
	if err != nil {
		zap.L().Warn("encode HX-Trigger", zap.Error(err))
		return
	}
	w.Header().Set("HX-Trigger", string(b))
}

// Alert answers an htmx request with a blocking alert and no swap.
func Alert(w http.ResponseWriter, msg string) {
	Trigger(w, map[string]any{EventAlert: msg})
	w.Header().Set("HX-Reswap", "none")
	w.WriteHeader(http.StatusOK)
}

// Fail reports a failed action: an alert for htmx, a flash plus redirect
// to back for a plain form post.
func Fail(w http.ResponseWriter, r *http.Request, f Flasher, msg, back string) {
	if IsHTMX(r) {
		Alert(w, msg)
		return
	}
	if f != nil {
		f.AddFlash(w, r, msg)
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// RemoveRow answers a LocalRemoveOnSuccess action. The triggering element
// targets its own row with an outerHTML swap, so an empty body removes it.
// counter, when set, is the id of a count element to decrement; events are
// raised alongside.
func RemoveRow(w http.ResponseWriter, counter string, events map[string]any) {
	if counter != "" {
		if events == nil {
			events = map[string]any{}
		}
		events[EventRowRemoved] = map[string]string{"counter": counter}
	}
	if len(events) > 0 {
		Trigger(w, events)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
}

// CloseModal adds the close-modal event to a RefetchOnSuccess answer. Call
// it before writing the refreshed fragment.
func CloseModal(w http.ResponseWriter) {
	Trigger(w, map[string]any{EventCloseModal: true})
}

// Redirect sends the browser to dest: HX-Redirect for htmx, 303 otherwise.
func Redirect(w http.ResponseWriter, r *http.Request, dest string) {
	if IsHTMX(r) {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
