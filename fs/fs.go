// Package appfs embeds the static assets shipped with the binaries.
package appfs

import "embed"

// EmailTemplatesDir is the directory of the email templates within FS.
const EmailTemplatesDir = "templates/email"

//go:embed all:templates
var FS embed.FS
