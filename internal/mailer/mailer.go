package mailer

import "embed"

const (
	FROM_NAME                    = "Student Clearance Office"
	MAX_RETRY                    = 3
	CLEARANCE_SUBMITTED_TEMPLATE = "clearance_submitted.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, toUsername, toEmail string, data any) (int, error)
}
