package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"text/template"

	"storefront-service/internal/i18n"
	"storefront-service/internal/pricing"
	"storefront-service/internal/service"

	"go.uber.org/zap"
	gopkgmail "gopkg.in/gomail.v2"
)

var ErrQueueFull = errors.New("notification queue full")

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	SSL      bool
}

// Mailer is satisfied by *gomail.Dialer.
type Mailer interface {
	DialAndSend(m ...*gopkgmail.Message) error
}

// EmailNotifier mails the store admin about every new order.
// As an event bus it only queues; Run does the sending.
type EmailNotifier struct {
	mailer Mailer
	from   string
	to     string
	queue  chan service.OrderCreatedEvent
	log    *zap.Logger
}

func NewEmailNotifier(cfg SMTPConfig, adminEmail string, log *zap.Logger) *EmailNotifier {
	d := gopkgmail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.SSL = cfg.SSL
	return NewEmailNotifierWithMailer(d, cfg.From, adminEmail, log)
}

func NewEmailNotifierWithMailer(m Mailer, from, to string, log *zap.Logger) *EmailNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &EmailNotifier{mailer: m, from: from, to: to, queue: make(chan service.OrderCreatedEvent, 64), log: log}
}

func (n *EmailNotifier) PublishOrderCreated(_ context.Context, e service.OrderCreatedEvent) error {
	select {
	case n.queue <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

func (n *EmailNotifier) PublishOrderStatusChanged(context.Context, service.OrderStatusChangedEvent) error {
	return nil
}

// Run sends queued notifications until ctx is done.
func (n *EmailNotifier) Run(ctx context.Context) {
	n.log.Info("email notifier started")
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-n.queue:
			if err := n.NotifyOrderCreated(ctx, e); err != nil {
				n.log.Error("send order email failed", zap.String("order_id", e.OrderID), zap.Error(err))
				continue
			}
			n.log.Info("order email sent", zap.String("order_id", e.OrderID), zap.String("to", n.to))
		}
	}
}

// NotifyOrderCreated renders and sends the message right away.
func (n *EmailNotifier) NotifyOrderCreated(_ context.Context, e service.OrderCreatedEvent) error {
	m, err := n.buildMessage(e)
	if err != nil {
		return err
	}
	return n.mailer.DialAndSend(m)
}

type orderView struct {
	service.OrderCreatedEvent
	TotalText string
	Payment   string
	Delivery  string
	Lines     []lineView
}

type lineView struct {
	Name     string
	Quantity int
	Total    string
}

func (n *EmailNotifier) buildMessage(e service.OrderCreatedEvent) (*gopkgmail.Message, error) {
	total, err := pricing.Format(e.Total, pricing.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	v := orderView{
		OrderCreatedEvent: e,
		TotalText:         total,
		Payment:           i18n.T(i18n.FR, e.PaymentMethod.Label()),
		Delivery:          i18n.T(i18n.FR, e.DeliveryType.Label()),
	}
	for _, it := range e.Items {
		lt, err := pricing.Format(it.LineTotal, pricing.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		v.Lines = append(v.Lines, lineView{Name: it.Name, Quantity: it.Quantity, Total: lt})
	}

	var plain, html bytes.Buffer
	if err := plainTmpl.Execute(&plain, v); err != nil {
		return nil, fmt.Errorf("render plain: %w", err)
	}
	if err := htmlTmpl.Execute(&html, v); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", fmt.Sprintf("Nouvelle commande %s", e.OrderID))
	m.SetBody("text/plain", plain.String())
	m.AddAlternative("text/html", html.String())
	return m, nil
}

var plainTmpl = template.Must(template.New("order_plain").Parse(`Nouvelle commande {{.OrderID}}

Client : {{.CustomerName}} ({{.Phone}}), {{.State}}
Livraison : {{.Delivery}}
Paiement : {{.Payment}}
{{range .Lines}}
- {{.Name}} x{{.Quantity}} : {{.Total}}{{end}}

Total : {{.TotalText}}
`))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("order_html").Parse(`<h2>Nouvelle commande {{.OrderID}}</h2>
<p>{{.CustomerName}} ({{.Phone}}), {{.State}}</p>
<p>Livraison : {{.Delivery}}<br>Paiement : {{.Payment}}</p>
<ul>{{range .Lines}}<li>{{.Name}} x{{.Quantity}} : {{.Total}}</li>{{end}}</ul>
<p><strong>Total : {{.TotalText}}</strong></p>
`))
