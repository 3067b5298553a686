package notifications

import (
	"bytes"
	"html/template"
)

// emailData feeds the status-change email template.
type emailData struct {
	Title         string
	RecipientName string
	Message       string
	OldLabel      string
	OldColor      string
	NewLabel      string
	NewColor      string
	Note          string
	ActorName     string
	Meta          []Meta
	ButtonURL     string
	ButtonText    string
}

var statusEmailTemplate = template.Must(template.New("status_email").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f5f7;font-family:Helvetica,Arial,sans-serif;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background-color:#f4f5f7;padding:24px 0;">
<tr><td align="center">
<table role="presentation" width="560" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
<tr><td style="background-color:#1f2d3d;padding:20px 32px;">
<span style="color:#ffffff;font-size:18px;font-weight:bold;">TeamFlow</span>
</td></tr>
<tr><td style="padding:32px;">
<h1 style="margin:0 0 16px;font-size:20px;color:#1f2d3d;">{{.Title}}</h1>
{{if .RecipientName}}<p style="margin:0 0 16px;font-size:14px;color:#3c4858;">Bonjour {{.RecipientName}},</p>{{end}}
<p style="margin:0 0 20px;font-size:14px;color:#3c4858;">{{.Message}}</p>
<table role="presentation" cellpadding="0" cellspacing="0" style="margin:0 0 20px;">
<tr>
<td style="padding:4px 12px;border-radius:12px;background-color:{{.OldColor}};color:#ffffff;font-size:12px;">{{.OldLabel}}</td>
<td style="padding:0 10px;color:#8492a6;font-size:13px;">&rarr;</td>
<td style="padding:4px 12px;border-radius:12px;background-color:{{.NewColor}};color:#ffffff;font-size:12px;">{{.NewLabel}}</td>
</tr>
</table>
{{if .Meta}}
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="margin:0 0 20px;border:1px solid #e0e6ed;border-radius:6px;">
{{range .Meta}}
<tr>
<td style="padding:8px 12px;font-size:13px;color:#8492a6;border-bottom:1px solid #e0e6ed;">{{.Label}}</td>
<td style="padding:8px 12px;font-size:13px;color:#1f2d3d;border-bottom:1px solid #e0e6ed;">{{.Value}}</td>
</tr>
{{end}}
</table>
{{end}}
{{if .Note}}<p style="margin:0 0 20px;padding:12px;background-color:#f9fafc;border-left:3px solid #1f2d3d;font-size:13px;color:#3c4858;">{{.Note}}</p>{{end}}
{{if .ButtonURL}}
<table role="presentation" cellpadding="0" cellspacing="0" style="margin:0 0 20px;">
<tr><td style="border-radius:6px;background-color:#1f2d3d;">
<a href="{{.ButtonURL}}" style="display:inline-block;padding:10px 24px;color:#ffffff;font-size:14px;text-decoration:none;">{{.ButtonText}}</a>
</td></tr>
</table>
{{end}}
{{if .ActorName}}<p style="margin:0;font-size:12px;color:#8492a6;">Modification effectuée par {{.ActorName}}.</p>{{end}}
</td></tr>
<tr><td style="padding:16px 32px;background-color:#f9fafc;">
<p style="margin:0;font-size:11px;color:#8492a6;">Vous recevez cet e-mail car vous êtes membre d'un espace TeamFlow.</p>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`))

func renderStatusEmail(data emailData) (string, error) {
	if data.ButtonText == "" {
		data.ButtonText = "Voir le détail"
	}
	var buf bytes.Buffer
	if err := statusEmailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
