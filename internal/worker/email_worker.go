package worker

// email_worker.go
// Processes email jobs from QueueEmail: order receipts with a PDF attachment
// and team invite messages with the temporary password.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gutoberny/BernyFlow/internal/infra"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	Template string `json:"template,omitempty"` // "invite" | "" (raw)
	ToEmail  string `json:"to_email,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Body     string `json:"body,omitempty"`
	PDFPath  string `json:"pdf_path,omitempty"`

	// Invite template fields
	To           string `json:"to,omitempty"`
	Name         string `json:"name,omitempty"`
	Company      string `json:"company,omitempty"`
	TempPassword string `json:"temp_password,omitempty"`
}

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends an email. Invite jobs are rendered from the template fields;
// everything else goes out as-is with an optional PDF attachment.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}

	to := payload.ToEmail
	subject := payload.Subject
	body := payload.Body
	if payload.Template == "invite" {
		to = payload.To
		subject = fmt.Sprintf("Bem-vindo ao %s no BernyFlow", payload.Company)
		body = fmt.Sprintf(
			"Ola %s,\n\nVoce foi convidado para a equipe de %s.\nSenha temporaria: %s\n\nAltere sua senha apos o primeiro acesso.",
			payload.Name, payload.Company, payload.TempPassword)
	}

	if to == "" {
		log.Warn().Msg("email_worker: empty recipient — skipping")
		return
	}

	if err := w.mailer.Send(to, subject, body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", to).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", to).Msg("email_worker: email sent successfully")
}
