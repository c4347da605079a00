package email

import (
	"bytes"
	"html/template"
)

// TemplateManager holds the parsed email templates.
type TemplateManager struct {
	RouteShareTmpl *template.Template
}

// NewTemplateManager parses all email templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	routeShareTmpl, err := template.New("routeShare").Parse(routeShareTemplate)
	if err != nil {
		return nil, err
	}

	return &TemplateManager{
		RouteShareTmpl: routeShareTmpl,
	}, nil
}

// RouteShareData holds the dynamic data for a shared route email.
type RouteShareData struct {
	PathName  string
	Link      string
	DriveTime string
	Distance  string
}

// GenerateRouteShareEmailHTML executes the route share template.
func (tm *TemplateManager) GenerateRouteShareEmailHTML(data RouteShareData) (string, error) {
	var body bytes.Buffer
	if err := tm.RouteShareTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// --- HTML Template Definitions ---

const routeShareTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Your Errand Route</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>{{.PathName}}</h2>
	<p>Here is the optimized route for your errands.</p>
	{{if .DriveTime}}<p>Estimated drive time: {{.DriveTime}}</p>{{end}}
	{{if .Distance}}<p>Total distance: {{.Distance}}</p>{{end}}
	<p><a href="{{.Link}}">Open in Google Maps</a></p>
</body>
</html>
`
