package mail

import (
	"bytes"
	"html/template"
)

// ConfirmationData feeds the bilingual confirmation template
type ConfirmationData struct {
	GuestName        string
	EventName        string
	EventNameEn      string
	EventDate        string
	EventTime        string
	EventLocation    string
	EventLocationEn  string
	ConfirmationCode string
	ConfirmationLink string
	InviteImageURL   string
}

// Portuguese first, English below the divider. The invite image is linked,
// not inlined; the actual file travels as an attachment when available.
const confirmationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f5f5f5; margin: 0; padding: 24px;">
  <div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 32px;">
    <h1 style="color: #1a1a2e; text-align: center;">Presença Confirmada!</h1>

    <p>Olá {{.GuestName}},</p>
    <p>Sua presença está confirmada para o evento <strong>{{.EventName}}</strong>.</p>
    <p>
      <strong>📅 Data:</strong> {{.EventDate}}<br>
      <strong>⏰ Horário:</strong> {{.EventTime}}<br>
      <strong>📍 Local:</strong> {{.EventLocation}}
    </p>
    <p>Para acessar o evento, apresente o código abaixo na entrada:</p>

    <hr style="border: none; border-top: 1px solid #e0e0e0; margin: 24px 0;">

    <p>Hello {{.GuestName}},</p>
    <p>Your attendance is confirmed for the event <strong>{{if .EventNameEn}}{{.EventNameEn}}{{else}}{{.EventName}}{{end}}</strong>.</p>
    <p>
      <strong>📅 Date:</strong> {{.EventDate}}<br>
      <strong>⏰ Time:</strong> {{.EventTime}}<br>
      <strong>📍 Location:</strong> {{if .EventLocationEn}}{{.EventLocationEn}}{{else}}{{.EventLocation}}{{end}}
    </p>
    <p>To access the event, present the code below at the entrance:</p>

    <div style="text-align: center; margin: 24px 0;">
      {{if .InviteImageURL}}<img src="{{.InviteImageURL}}" alt="Convite / Invitation" width="600" style="max-width: 100%; border-radius: 8px;"><br>{{end}}
      <p style="color: #666; font-size: 13px; margin-bottom: 4px;">Código de Confirmação / Confirmation Code</p>
      <p style="font-size: 28px; font-weight: bold; letter-spacing: 2px; margin-top: 0;">{{.ConfirmationCode}}</p>
    </div>

    <hr style="border: none; border-top: 1px solid #e0e0e0; margin: 24px 0;">
    <p style="color: #888; font-size: 12px; text-align: center;">
      Este é um email automático. Por favor, não responda.<br>
      This is an automated email. Please do not reply.
    </p>
    <p style="text-align: center;">
      <a href="{{.ConfirmationLink}}" style="color: #007bff;">Acessar meu convite / Access my invitation</a>
    </p>
  </div>
</body>
</html>`

var confirmationTemplate = template.Must(template.New("confirmation").Parse(confirmationHTML))

// RenderConfirmation renders the bilingual confirmation email body
func RenderConfirmation(data ConfirmationData) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
