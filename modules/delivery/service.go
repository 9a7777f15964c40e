package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ventaro/storefront/pkg/accesstoken"
	"github.com/ventaro/storefront/pkg/download"
	"github.com/ventaro/storefront/pkg/email"
	"github.com/ventaro/storefront/pkg/email/templates"
	"github.com/ventaro/storefront/pkg/logger"
	"github.com/ventaro/storefront/pkg/payment"
	"github.com/ventaro/storefront/pkg/purchase"
	"github.com/ventaro/storefront/pkg/ratelimiter"
	"github.com/ventaro/storefront/pkg/validator"
)

const maxSessionIDLen = 255

// Tokens issues and verifies access tokens. *accesstoken.Manager satisfies it.
type Tokens interface {
	Issue(sessionID, email string, opts ...accesstoken.IssueOption) (string, error)
	Verify(token string) (accesstoken.Claims, error)
	DefaultTTL() time.Duration
}

// Linker presigns product downloads. *download.Linker satisfies it.
type Linker interface {
	Link(ctx context.Context, key, filename string) (download.Link, error)
}

// Access is what a valid token unlocks.
type Access struct {
	Email     string       `json:"email"`
	SessionID string       `json:"session_id"`
	OrderID   string       `json:"order_id,omitempty"`
	ExpiresAt time.Time    `json:"expires_at"`
	Items     []AccessItem `json:"items"`
}

// AccessItem is one purchased product.
type AccessItem struct {
	ProductID         string     `json:"product_id"`
	Name              string     `json:"name"`
	DownloadURL       string     `json:"download_url,omitempty"`
	DownloadExpiresAt *time.Time `json:"download_expires_at,omitempty"`
}

// Service implements the delivery flow.
type Service struct {
	tokens       Tokens
	store        purchase.Store
	links        Linker
	mailer       email.Sender
	accessURL    *url.URL
	supportEmail string
	recipients   ratelimiter.Limiter
	now          func() time.Time
	log          *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSupportEmail adds a support contact to outgoing emails.
func WithSupportEmail(addr string) Option {
	return func(s *Service) { s.supportEmail = addr }
}

// WithClock overrides time.Now for the expiry shown in emails.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRecipientLimiter caps how often ResendLink emails the same address.
func WithRecipientLimiter(l ratelimiter.Limiter) Option {
	return func(s *Service) { s.recipients = l }
}

// NewService wires the delivery flow. cfg.BaseURL must be an absolute
// http(s) URL.
func NewService(cfg Config, tokens Tokens, store purchase.Store, links Linker, mailer email.Sender, opts ...Option) (*Service, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || (base.Scheme != "https" && base.Scheme != "http") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, cfg.BaseURL)
	}
	s := &Service{
		tokens:    tokens,
		store:     store,
		links:     links,
		mailer:    mailer,
		accessURL: base.JoinPath(normalizeAccessPath(cfg.AccessPath)),
		now:       time.Now,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("delivery"))
	return s, nil
}

// AccessURL builds the link a buyer clicks.
func (s *Service) AccessURL(token string) string {
	u := *s.accessURL
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String()
}

// HandlePayment records the purchases of a completed checkout and emails the
// access link. Replayed events are recorded once and the link is sent again.
func (s *Service) HandlePayment(ctx context.Context, ev payment.Event) error {
	if err := validator.Apply(
		validator.RequiredString("transaction_id", ev.TransactionID),
		validator.RequiredString("session_id", ev.SessionID),
		validator.RequiredString("email", ev.Email),
		validator.MinLenSlice("items", ev.Items, 1),
	); err != nil {
		return errors.Join(ErrInvalidEvent, err)
	}
	log := s.log.With(
		logger.TransactionID(ev.TransactionID),
		logger.SessionID(ev.SessionID),
		logger.OrderID(ev.OrderID),
	)

	var duplicates int
	for _, it := range ev.Items {
		p := &purchase.Purchase{
			SessionID:     ev.SessionID,
			OrderID:       ev.OrderID,
			TransactionID: ev.TransactionID,
			Email:         ev.Email,
			ProductID:     it.ProductID,
			ProductName:   it.Name,
			FileKey:       it.FileKey,
			AmountCents:   it.AmountCents,
			Currency:      ev.Currency,
			CreatedAt:     ev.OccurredAt,
		}
		switch err := s.store.Create(ctx, p); {
		case errors.Is(err, purchase.ErrDuplicate):
			duplicates++
		case errors.Is(err, purchase.ErrInvalid):
			return errors.Join(ErrInvalidEvent, err)
		case err != nil:
			return fmt.Errorf("record purchase: %w", err)
		}
	}
	if duplicates > 0 {
		log.InfoContext(ctx, "payment replayed", logger.Count(duplicates))
	}

	if err := s.sendLink(ctx, ev.SessionID, ev.Email, ev.OrderID, ev.ProductNames()); err != nil {
		return err
	}
	log.InfoContext(ctx, "access link sent", logger.Event("payment_delivered"), logger.Count(len(ev.Items)))
	return nil
}

// ResendLink emails a fresh link when purchases exist for the session and
// email. Unknown pairs and throttled recipients are silently ignored.
func (s *Service) ResendLink(ctx context.Context, sessionID, addr string) error {
	sessionID = strings.TrimSpace(sessionID)
	addr = accesstoken.NormalizeEmail(addr)
	if err := validator.Apply(
		validator.RequiredString("session_id", sessionID),
		validator.MaxLenString("session_id", sessionID, maxSessionIDLen),
		validator.ValidEmail("email", addr),
	); err != nil {
		return nil
	}

	purchases, err := s.store.ListBySession(ctx, sessionID, addr)
	if err != nil {
		return fmt.Errorf("list purchases: %w", err)
	}
	if len(purchases) == 0 {
		s.log.DebugContext(ctx, "resend for unknown session", logger.SessionID(sessionID))
		return nil
	}

	if s.recipients != nil {
		res, err := s.recipients.Allow(ctx, "recipient:"+addr)
		if err == nil && !res.Allowed() {
			s.log.WarnContext(ctx, "resend throttled", logger.SessionID(sessionID), logger.EmailHash(addr))
			return nil
		}
	}

	names := make([]string, 0, len(purchases))
	for _, p := range purchases {
		names = append(names, displayName(p))
	}
	if err := s.sendLink(ctx, sessionID, addr, commonOrder(purchases), names); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "access link resent", logger.Event("link_resent"), logger.SessionID(sessionID))
	return nil
}

// Redeem verifies token and returns the purchases it unlocks. Any token
// failure, and a valid token with nothing behind it, yield ErrAccessDenied.
func (s *Service) Redeem(ctx context.Context, token string) (*Access, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrAccessDenied
	}

	purchases, err := s.store.ListBySession(ctx, claims.SessionID, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	if claims.OrderID != "" {
		purchases = filterOrder(purchases, claims.OrderID)
	}
	if len(purchases) == 0 {
		return nil, ErrAccessDenied
	}

	access := &Access{
		Email:     claims.Email,
		SessionID: claims.SessionID,
		OrderID:   claims.OrderID,
		ExpiresAt: claims.Expiry(),
		Items:     make([]AccessItem, 0, len(purchases)),
	}
	for _, p := range purchases {
		item := AccessItem{ProductID: p.ProductID, Name: displayName(p)}
		if p.FileKey != "" {
			link, err := s.links.Link(ctx, p.FileKey, p.ProductName)
			if err != nil {
				return nil, fmt.Errorf("download link for %s: %w", p.ProductID, err)
			}
			item.DownloadURL = link.URL
			item.DownloadExpiresAt = &link.ExpiresAt
		}
		access.Items = append(access.Items, item)
	}

	s.log.InfoContext(ctx, "access granted",
		logger.Event("access_granted"),
		logger.SessionID(claims.SessionID),
		logger.Count(len(access.Items)),
	)
	return access, nil
}

func (s *Service) sendLink(ctx context.Context, sessionID, addr, orderID string, products []string) error {
	var opts []accesstoken.IssueOption
	if orderID != "" {
		opts = append(opts, accesstoken.WithOrderID(orderID))
	}
	expiresAt := s.now().Add(s.tokens.DefaultTTL())
	token, err := s.tokens.Issue(sessionID, addr, opts...)
	if err != nil {
		return fmt.Errorf("issue access token: %w", err)
	}

	body, err := templates.Render(ctx, templates.AccessLink(templates.AccessLinkData{
		Products:     products,
		AccessURL:    s.AccessURL(token),
		ExpiresAt:    expiresAt,
		SupportEmail: s.supportEmail,
	}))
	if err != nil {
		return fmt.Errorf("render access email: %w", err)
	}

	if err := s.mailer.SendEmail(ctx, email.SendParams{
		SendTo:   addr,
		Subject:  templates.AccessLinkSubject,
		BodyHTML: body,
		Tag:      "access-link",
	}); err != nil {
		return fmt.Errorf("send access email: %w", err)
	}
	return nil
}

// commonOrder returns the order shared by every purchase, or "" when they
// span several orders so the link unlocks everything the email lists.
func commonOrder(ps []purchase.Purchase) string {
	if len(ps) == 0 {
		return ""
	}
	order := ps[0].OrderID
	for _, p := range ps[1:] {
		if p.OrderID != order {
			return ""
		}
	}
	return order
}

func filterOrder(ps []purchase.Purchase, orderID string) []purchase.Purchase {
	out := ps[:0:0]
	for _, p := range ps {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out
}

func displayName(p purchase.Purchase) string {
	if p.ProductName != "" {
		return p.ProductName
	}
	return p.ProductID
}
