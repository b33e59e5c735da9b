// Package whatsapp builds the confirmation message staff send to clients
// and the wa.me link that opens it pre-filled.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BruksfildServices01/agenda/internal/domain/client"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

const baseURL = "https://wa.me/"

type Notification struct {
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	ConfirmURL  string `json:"confirm_url"`
	WhatsAppURL string `json:"whatsapp_url"`
}

type Builder struct {
	publicBaseURL string
}

// NewBuilder takes the externally reachable base URL of the service.
func NewBuilder(publicBaseURL string) *Builder {
	return &Builder{publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (b *Builder) ConfirmURL(token string) string {
	return b.publicBaseURL + "/confirm/" + token
}

// Message renders the Spanish reminder. ap.Client must be loaded.
func (b *Builder) Message(ap *models.Appointment) string {
	var sb strings.Builder

	sb.WriteString("*Confirmacion de Cita*\n\n")
	fmt.Fprintf(&sb, "Hola *%s*,\n\n", ap.Client.Name)
	sb.WriteString("Le recordamos que tiene una cita programada:\n\n")
	fmt.Fprintf(&sb, "*Fecha:* %s\n", displayDate(ap.Date))
	fmt.Fprintf(&sb, "*Hora:* %s\n", ap.Time)
	fmt.Fprintf(&sb, "*Motivo:* %s\n\n", ap.Reason)
	sb.WriteString("Para confirmar su asistencia, haga clic en el siguiente enlace:\n")
	sb.WriteString(b.ConfirmURL(ap.Token))
	sb.WriteString("\n\n")
	sb.WriteString("Si no puede asistir, por favor avisenos con anticipacion.\n\n")
	sb.WriteString("Gracias!")

	return sb.String()
}

// Build assembles the message and the wa.me link for the client's phone.
func (b *Builder) Build(ap *models.Appointment) (Notification, error) {
	phone := client.Digits(ap.Client.Phone)
	if phone == "" {
		return Notification{}, httperr.ErrState("client_without_phone", "El cliente no tiene un teléfono válido para WhatsApp.")
	}

	msg := b.Message(ap)

	return Notification{
		Phone:       phone,
		Message:     msg,
		ConfirmURL:  b.ConfirmURL(ap.Token),
		WhatsAppURL: Link(phone, msg),
	}, nil
}

// Link percent-encodes text with spaces as %20, which wa.me expects.
func Link(phoneDigits, text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return baseURL + phoneDigits + "?text=" + encoded
}

func displayDate(date string) string {
	d, err := time.Parse(timezone.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}
