package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/domain/treatments"
	"pet-care-reminders/internal/ports/messaging"
)

const DefaultTimeout = 10 * time.Second

var ErrNotConfigured = errors.New("notifier not configured")

// Reminder son los datos que necesitan ambos mensajes.
type Reminder struct {
	PetName       string
	TreatmentName string
	Category      treatments.Category
	NextDate      time.Time
	LastApplied   time.Time
	// Days: positivo = faltan, negativo = atrasado.
	Days int
}

var categoryLabels = map[treatments.Category]string{
	treatments.CategoryVaccine:  "vacuna",
	treatments.CategoryDewormer: "desparasitario",
	treatments.CategoryFleaTick: "pulgas/garrapatas",
	treatments.CategoryMedicine: "medicamento",
	treatments.CategoryOther:    "otro",
}

const upcomingTmpl = `🐾 Recordatorio para {{.Pet}}
{{.Treatment}} ({{.Category}})
Próxima fecha: {{.Next}}
Última aplicación: {{.Last}}
{{if eq .Days 0}}Es hoy.{{else if eq .Days 1}}Falta 1 día.{{else}}Faltan {{.Days}} días.{{end}}`

const overdueTmpl = `⚠️ ATRASADO: {{.Pet}}
{{.Treatment}} ({{.Category}})
Vencía: {{.Next}}
Última aplicación: {{.Last}}
{{if eq .Late 1}}Lleva 1 día de atraso.{{else}}Lleva {{.Late}} días de atraso.{{end}}`

var templates = template.Must(template.New("upcoming").Parse(upcomingTmpl))

func init() {
	template.Must(templates.New("overdue").Parse(overdueTmpl))
}

type view struct {
	Pet       string
	Treatment string
	Category  string
	Next      string
	Last      string
	Days      int
	Late      int
}

func toView(r Reminder) view {
	label, ok := categoryLabels[r.Category]
	if !ok {
		label = string(r.Category)
	}
	late := 0
	if r.Days < 0 {
		late = -r.Days
	}
	return view{
		Pet:       strings.TrimSpace(r.PetName),
		Treatment: strings.TrimSpace(r.TreatmentName),
		Category:  label,
		Next:      r.NextDate.Format(schedule.DateLayout),
		Last:      r.LastApplied.Format(schedule.DateLayout),
		Days:      r.Days,
		Late:      late,
	}
}

func render(name string, r Reminder) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, toView(r)); err != nil {
		return "", fmt.Errorf("render %s message: %w", name, err)
	}
	return buf.String(), nil
}

// RenderUpcoming arma el texto de aviso previo al vencimiento.
func RenderUpcoming(r Reminder) (string, error) { return render("upcoming", r) }

// RenderOverdue arma el texto de tratamiento vencido.
func RenderOverdue(r Reminder) (string, error) { return render("overdue", r) }

// Notifier entrega los recordatorios a un único chat.
type Notifier struct {
	sender  messaging.Sender
	chatID  string
	timeout time.Duration
}

func New(sender messaging.Sender, chatID string, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Notifier{
		sender:  sender,
		chatID:  strings.TrimSpace(chatID),
		timeout: timeout,
	}
}

func (n *Notifier) NotifyUpcoming(ctx context.Context, r Reminder) error {
	text, err := RenderUpcoming(r)
	if err != nil {
		return err
	}
	return n.send(ctx, text)
}

func (n *Notifier) NotifyOverdue(ctx context.Context, r Reminder) error {
	text, err := RenderOverdue(r)
	if err != nil {
		return err
	}
	return n.send(ctx, text)
}

func (n *Notifier) send(ctx context.Context, text string) error {
	if n == nil || n.sender == nil || n.chatID == "" {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.sender.SendText(ctx, n.chatID, text); err != nil {
		return fmt.Errorf("deliver message: %w", err)
	}
	return nil
}
