// Package docs serves the OpenAPI description of the HTTP API and a
// Swagger UI page that renders it.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SchemaPath is where Schema is mounted; the UI page loads it from here.
const SchemaPath = "/api/schema/"

//go:embed openapi.yaml
var schema []byte

//go:embed swagger.html
var swaggerUI []byte

// Schema serves the OpenAPI document.
func Schema(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", schema)
}

// UI serves the Swagger UI page.
func UI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", swaggerUI)
}
