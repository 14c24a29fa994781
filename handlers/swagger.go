package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the gateway.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRoutes) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>books-gateway - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "books-gateway", "version": "v0.1.0" },
  "paths": {
    "/check": {
      "get": { "summary": "Ping the database; errors are echoed in the body", "responses": { "200": { "description": "healthy message or error string" } } }
    },
    "/create": {
      "post": {
        "summary": "Insert one document",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "additionalProperties": true } } } },
        "responses": { "200": { "description": "message and 24-hex id" }, "400": { "description": "body is not a JSON object" } }
      }
    },
    "/read": {
      "get": { "summary": "All documents, newest _id first, extended JSON identifiers", "responses": { "200": { "description": "array of documents" } } }
    },
    "/update/{id}": {
      "put": {
        "summary": "Set the given fields on one document",
        "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string", "pattern": "^[0-9a-fA-F]{24}$" } } ],
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "additionalProperties": true } } } },
        "responses": { "200": { "description": "updated or no document updated" }, "400": { "description": "malformed id or body" } }
      }
    },
    "/delete/{id}": {
      "delete": {
        "summary": "Delete one document",
        "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string", "pattern": "^[0-9a-fA-F]{24}$" } } ],
        "responses": { "200": { "description": "deleted or not found" }, "400": { "description": "malformed id" } }
      }
    },
    "/export": {
      "post": { "summary": "Write a snapshot of the collection to object storage", "responses": { "200": { "description": "object key and presigned URL" }, "503": { "description": "storage not configured" } } }
    }
  }
}`
