package embed

import "embed"

// DistFS contains the browser terminal page under dist/.
//
//go:embed all:dist
var DistFS embed.FS
