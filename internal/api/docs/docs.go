// Package docs registers the console's OpenAPI document with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/login": {
            "get": {"tags": ["auth"], "summary": "Login page state", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "302": {"description": "Already authenticated"}}},
            "post": {"tags": ["auth"], "summary": "Log in", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/register": {
            "get": {"tags": ["auth"], "summary": "Registration page state", "responses": {"200": {"description": "OK"}, "302": {"description": "Already authenticated"}}},
            "post": {"tags": ["auth"], "summary": "Create an account", "consumes": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/logout": {
            "post": {"tags": ["auth"], "summary": "Log out", "responses": {"200": {"description": "OK"}}}
        },
        "/products": {
            "get": {
                "tags": ["products"],
                "summary": "Product list",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "stock", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "302": {"description": "Not logged in"}, "503": {"description": "Session loading"}}
            }
        },
        "/products/{id}": {
            "get": {"tags": ["products"], "summary": "Product edit form", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["products"], "summary": "Update a product", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"tags": ["products"], "summary": "Delete a product", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/products-create": {
            "get": {"tags": ["products"], "summary": "Product create form", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["products"], "summary": "Create a product", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/categories": {
            "get": {"tags": ["categories"], "summary": "Category list", "responses": {"200": {"description": "OK"}}}
        },
        "/categories/{id}": {
            "get": {"tags": ["categories"], "summary": "Category edit form", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["categories"], "summary": "Update a category", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["categories"], "summary": "Delete a category", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/categories-create": {
            "get": {"tags": ["categories"], "summary": "Category create form", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["categories"], "summary": "Create a category", "responses": {"201": {"description": "Created"}}}
        },
        "/dashboard": {
            "get": {"tags": ["dashboard"], "summary": "Inventory dashboard", "responses": {"200": {"description": "OK"}}}
        },
        "/profile": {
            "get": {"tags": ["profile"], "summary": "Current operator", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["profile"], "summary": "Update the current operator", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/notifications": {
            "get": {"tags": ["notifications"], "summary": "Pending notices", "responses": {"200": {"description": "OK"}}}
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "StockManager admin console",
	Description:      "Operator console for the StockManager inventory backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
