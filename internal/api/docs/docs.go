// Package docs registers the console's OpenAPI description with swag so
// echo-swagger can serve it. Regenerate with `swag init -g internal/api/router.go`.
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
        "/v1/session": {
            "get": {"tags": ["session"], "summary": "Current session", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["session"], "summary": "Log in", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "503": {"description": "Service Unavailable"}}},
            "delete": {"tags": ["session"], "summary": "Log out", "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/session/register": {
            "post": {"tags": ["session"], "summary": "Create an account and log in", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "401": {"description": "Unauthorized"}}}
        },
        "/v1/session/refresh": {
            "post": {"tags": ["session"], "summary": "Revalidate the session against the backend", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/v1/products": {
            "get": {"tags": ["catalog"], "summary": "List products", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/products/{id}": {
            "get": {"tags": ["catalog"], "summary": "Get a product", "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/v1/cart": {
            "get": {"tags": ["cart"], "summary": "Current cart with totals", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "delete": {"tags": ["cart"], "summary": "Empty the cart", "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/cart/items": {
            "post": {"tags": ["cart"], "summary": "Add a product to the cart", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/v1/cart/items/{product_id}": {
            "patch": {"tags": ["cart"], "summary": "Set a line's quantity (0 removes it)", "parameters": [{"type": "string", "name": "product_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "delete": {"tags": ["cart"], "summary": "Remove a product from the cart", "parameters": [{"type": "string", "name": "product_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/checkout": {
            "post": {"tags": ["checkout"], "summary": "Place an order for the cart", "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/v1/orders": {
            "get": {"tags": ["orders"], "summary": "Orders of the session (all orders for admins)", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/orders/refresh": {
            "post": {"tags": ["orders"], "summary": "Refetch the order list now", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/favorites": {
            "get": {"tags": ["favorites"], "summary": "List favorites", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["favorites"], "summary": "Save a product as favorite", "responses": {"201": {"description": "Created"}}}
        },
        "/v1/favorites/{id}": {
            "delete": {"tags": ["favorites"], "summary": "Remove a favorite", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/ratings": {
            "post": {"tags": ["favorites"], "summary": "Rate a product", "responses": {"202": {"description": "Accepted"}}}
        },
        "/v1/notifications/stream": {
            "get": {"tags": ["notifications"], "summary": "Notification stream", "produces": ["text/event-stream"], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/admin/orders": {
            "get": {"tags": ["admin"], "summary": "All orders", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/v1/admin/orders/{id}": {
            "patch": {"tags": ["admin"], "summary": "Change an order's status", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/v1/admin/customers": {
            "get": {"tags": ["admin"], "summary": "List customers", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/admin/customers/{id}": {
            "delete": {"tags": ["admin"], "summary": "Delete a customer", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/admin/products": {
            "post": {"tags": ["admin"], "summary": "Create a product", "responses": {"201": {"description": "Created"}}}
        },
        "/v1/admin/products/{id}": {
            "patch": {"tags": ["admin"], "summary": "Update a product", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["admin"], "summary": "Delete a product", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Storefront console API",
	Description:      "Session, cart, checkout and order feed for one storefront user.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
