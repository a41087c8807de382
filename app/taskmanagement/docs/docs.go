// Package docs embeds the OpenAPI description of the service and a Swagger
// UI page that renders it.
package docs

import "embed"

//go:embed index.html openapi.yaml
var Files embed.FS
