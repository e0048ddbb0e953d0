// Package inquiry sends the fixed "interested" message to a vendor.
package inquiry

import (
	"context"
	"log/slog"

	"github.com/jask/wedplan/internal/api"
	"github.com/jask/wedplan/internal/domain"
	"github.com/jask/wedplan/internal/session"
)

// Message is the only text an inquiry carries.
const Message = "I'm interested in your wedding services. Please share more details about packages and availability."

const (
	NoticeSent   = "Inquiry sent successfully! The vendor will contact you soon."
	NoticeFailed = "Error sending inquiry. Please try again."
)

// Sender posts inquiries to the backend.
type Sender interface {
	SendInquiry(ctx context.Context, req api.InquiryRequest) (domain.Inquiry, error)
}

// Notice is the one-shot, user-visible result of a dispatch.
type Notice struct {
	OK   bool
	Text string
}

// Dispatcher sends inquiries as the session's user.
type Dispatcher struct {
	sender  Sender
	session *session.Store
	log     *slog.Logger
}

func NewDispatcher(sender Sender, store *session.Store, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, session: store, log: logger.With("component", "inquiry")}
}

// Send dispatches one inquiry to vendorID. It reports sent == false, with no
// notice, when there is no user yet. Failures are not retried.
func (d *Dispatcher) Send(ctx context.Context, vendorID string) (n Notice, sent bool) {
	u, ok := d.session.User()
	if !ok {
		return Notice{}, false
	}
	_, err := d.sender.SendInquiry(ctx, api.InquiryRequest{UserID: u.ID, VendorID: vendorID, Message: Message})
	if err != nil {
		d.log.ErrorContext(ctx, "send inquiry failed", slog.String("vendor_id", vendorID), slog.String("error", err.Error()))
		return Notice{Text: NoticeFailed}, true
	}
	d.log.InfoContext(ctx, "inquiry sent", slog.String("vendor_id", vendorID))
	return Notice{OK: true, Text: NoticeSent}, true
}
