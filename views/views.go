// Package views embeds the HTML templates rendered by the server.
package views

import "embed"

// FS holds every template. Names are paths without the .html extension,
// e.g. "layouts/main" or "partials/results".
//
//go:embed *.html layouts/*.html partials/*.html
var FS embed.FS
