package cert

import (
	"bytes"
	"html/template"
)

// certTemplate is the downloadable certificate document. Styling mirrors the
// product's original export so existing certificates keep their look.
var certTemplate = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Certificate - {{.CourseName}}</title>
    <style>
        body { margin: 0; padding: 40px; font-family: 'Georgia', serif; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); }
        .certificate { background: white; max-width: 800px; margin: 0 auto; padding: 60px; box-shadow: 0 0 30px rgba(0,0,0,0.3); border-radius: 10px; }
        .header { text-align: center; border-bottom: 3px solid #667eea; padding-bottom: 30px; margin-bottom: 40px; }
        .title { font-size: 48px; color: #2c3e50; margin: 0; font-weight: bold; }
        .subtitle { font-size: 20px; color: #7f8c8d; margin: 10px 0 0 0; }
        .content { text-align: center; }
        .recipient { font-size: 32px; color: #2980b9; margin: 30px 0; font-weight: bold; }
        .course { font-size: 24px; color: #27ae60; margin: 20px 0; font-style: italic; }
        .details { font-size: 16px; color: #34495e; margin: 30px 0; }
        .footer { margin-top: 50px; text-align: center; border-top: 2px solid #ecf0f1; padding-top: 30px; }
        .date { color: #7f8c8d; }
        .cert-id { font-size: 12px; color: #95a5a6; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="certificate">
        <div class="header">
            <h1 class="title">CERTIFICATE</h1>
            <p class="subtitle">of Completion</p>
        </div>
        <div class="content">
            <p>This is to certify that</p>
            <div class="recipient">{{.RecipientName}}</div>
            <p>has successfully completed the course</p>
            <div class="course">{{.CourseName}}</div>
            <div class="details">
                <p>Duration: {{.Duration}}</p>
                <p>Completion Date: {{.CompletionDate.Format "January 2, 2006"}}</p>
            </div>
        </div>
        <div class="footer">
            <p><strong>{{.Issuer}}</strong></p>
            <p class="date">{{.CompletionDate.Format "January 2, 2006"}}</p>
            <p class="cert-id">Certificate ID: {{.CertificateID}}</p>
        </div>
    </div>
</body>
</html>
`))

// RenderHTML produces the downloadable certificate document.
func RenderHTML(data Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := certTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
