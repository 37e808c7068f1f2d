// Package notify sends fire-and-forget HTTP notifications for sale events.
// The primary use case is ntfy.sh, but any HTTP webhook works.
package notify

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
)

// Notifier posts plain-text HTTP notifications when a sale is paid or
// canceled.
type Notifier struct {
	url      string
	store    string
	onPaid   bool
	onCancel bool
	client   *http.Client
	log      zerolog.Logger
}

// notification is one outgoing message. title and tags map to the ntfy
// X-Title and X-Tags headers.
type notification struct {
	title string
	tags  string
	body  string
}

// New creates a Notifier. storeName prefixes every title; if empty,
// "Mercearia" is used instead.
func New(notifURL, storeName string, onPaid, onCancel bool, log zerolog.Logger) *Notifier {
	if storeName == "" {
		storeName = "Mercearia"
	}
	return &Notifier{
		url:      notifURL,
		store:    storeName,
		onPaid:   onPaid,
		onCancel: onCancel,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

// Hook is a sale.Hook-compatible function. It fires an asynchronous POST for
// events that match the configured notification flags.
func (n *Notifier) Hook(ev sale.Event) {
	if !n.wants(ev.Kind) {
		return
	}
	go n.post(ev.SaleID, n.format(ev))
}

func (n *Notifier) wants(k sale.EventKind) bool {
	switch k {
	case sale.EventPaid:
		return n.onPaid
	case sale.EventCanceled:
		return n.onCancel
	default:
		return false
	}
}

// format builds the notification for a paid or canceled event.
func (n *Notifier) format(ev sale.Event) notification {
	s := ev.Sale
	var b strings.Builder
	switch ev.Kind {
	case sale.EventPaid:
		fmt.Fprintf(&b, "Total %s via %s\n", s.Total, s.Method)
		fmt.Fprintf(&b, "Paid %s, change %s\n", s.Paid, s.Change)
		if s.Discount > 0 {
			fmt.Fprintf(&b, "Discount %s\n", s.Discount)
		}
		fmt.Fprintf(&b, "%s, %s", itemCount(len(s.Items)), s.Operator.Name)
		return notification{
			title: fmt.Sprintf("%s: sale #%d paid", n.store, ev.SaleID),
			tags:  "moneybag",
			body:  b.String(),
		}
	default:
		fmt.Fprintf(&b, "Total %s\n", s.Total)
		fmt.Fprintf(&b, "Reason: %s", s.Reason)
		if len(ev.Moves) > 0 {
			fmt.Fprintf(&b, "\n%s returned to stock", itemCount(len(ev.Moves)))
		}
		return notification{
			title: fmt.Sprintf("%s: sale #%d canceled", n.store, ev.SaleID),
			tags:  "x",
			body:  b.String(),
		}
	}
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// post sends msg to the configured URL. Failures are only logged so a dead
// webhook never blocks the register.
func (n *Notifier) post(saleID int, msg notification) {
	req, err := http.NewRequest(http.MethodPost, n.url, strings.NewReader(msg.body))
	if err != nil {
		n.log.Debug().Err(err).Int("sale", saleID).Msg("notify: build request")
		return
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Title", msg.title)
	req.Header.Set("X-Tags", msg.tags)
	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Debug().Err(err).Int("sale", saleID).Msg("notify: post")
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.log.Debug().Int("status", resp.StatusCode).Int("sale", saleID).Msg("notify: webhook rejected")
	}
}
