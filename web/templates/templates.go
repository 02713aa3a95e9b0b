// Package templates embeds the HTML pages served by the API.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
