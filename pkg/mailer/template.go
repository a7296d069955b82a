package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

type Template struct {
	tmpl *template.Template
}

func NewTemplate(htmlContent string) (*Template, error) {
	tmpl, err := template.New("email").Parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}
	return &Template{tmpl: tmpl}, nil
}

func (t *Template) Render(data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}

func (c *Client) SendWithTemplate(to string, subject string, tmpl *Template, data interface{}) error {
	body, err := tmpl.Render(data)
	if err != nil {
		return err
	}
	return c.SendHTML(to, subject, body)
}

const WelcomeTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2196F3; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome to LearnHub</h1>
        </div>
        <div class="content">
            <p>Hi {{.Username}},</p>
            <p>Your LearnHub account has been created successfully.</p>
            <p>You can now browse the course catalog and manage your profile.</p>
        </div>
        <div class="footer">
            <p>This email was sent automatically, please do not reply.</p>
        </div>
    </div>
</body>
</html>
`

type WelcomeData struct {
	Username string
}

// SendWelcome sends the post-registration notification email.
func (c *Client) SendWelcome(to string, username string) error {
	tmpl, err := NewTemplate(WelcomeTemplate)
	if err != nil {
		return err
	}
	return c.SendWithTemplate(to, "Welcome to LearnHub", tmpl, WelcomeData{Username: username})
}

const PictureUpdatedTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Profile picture updated</h1>
        </div>
        <div class="content">
            <p>Hi {{.Username}},</p>
            <p>The profile picture on your LearnHub account was just replaced.</p>
            <p>If this wasn't you, please change your password immediately.</p>
        </div>
        <div class="footer">
            <p>This email was sent automatically, please do not reply.</p>
        </div>
    </div>
</body>
</html>
`

type PictureUpdatedData struct {
	Username string
}

// SendPictureUpdated notifies a user that their profile picture changed.
func (c *Client) SendPictureUpdated(to string, username string) error {
	tmpl, err := NewTemplate(PictureUpdatedTemplate)
	if err != nil {
		return err
	}
	return c.SendWithTemplate(to, "Your LearnHub profile picture was updated", tmpl, PictureUpdatedData{Username: username})
}
