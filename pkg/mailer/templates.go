package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

type emailTemplate struct {
	subject string
	text    string
	html    *template.Template
}

var templates = map[string]emailTemplate{
	"welcome": {
		subject: "Welcome aboard",
		text:    "Your account has been created.",
		html: template.Must(template.New("welcome").Parse(`
<p>Hi {{.Name}},</p>
<p>Your account has been created. You can sign in right away.</p>`)),
	},
	"login_notification": {
		subject: "New login to your account",
		text:    "There was a new login to your account.",
		html: template.Must(template.New("login_notification").Parse(`
<p>Hi {{.Name}},</p>
<p>There was a new login to your account{{if .IP}} from {{.IP}}{{end}}{{if .Time}} at {{.Time}}{{end}}.</p>
<p>If this wasn't you, change your password now.</p>`)),
	},
}

// Render resolves a template name into subject, text, and HTML bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	t, ok := templates[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := t.html.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return t.subject, t.text, buf.String(), nil
}
