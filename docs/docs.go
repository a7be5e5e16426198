// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with `swag init -g cmd/api/main.go`.
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
        "/token": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Issue an access token",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Token"}},
                    "400": {"description": "Inactive user", "schema": {"$ref": "#/definitions/handler.errorBody"}},
                    "401": {"description": "Incorrect username or password", "schema": {"$ref": "#/definitions/handler.errorBody"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "name": "offset", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update a user",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/cattle/{id}/images": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["images"],
                "summary": "List images of an animal",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["images"],
                "summary": "Upload a cattle image",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/messages/send": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["messages"],
                "summary": "Send a message",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "502": {"description": "Stored but not delivered"}}
            }
        },
        "/messages/{id}/deliveries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["messages"],
                "summary": "Delivery attempts of a message",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/webhook": {
            "post": {
                "tags": ["messages"],
                "summary": "Inbound message callback",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "Duplicate"}, "201": {"description": "Stored"}, "400": {"description": "Bad Request"}}
            }
        },
        "/notifications/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "My notifications",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/notifications/{id}/read": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Mark a notification read",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/{resource}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["entities"],
                "summary": "List an entity",
                "description": "Listing messages is admin only. Non-admins listing notifications get their own.",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"type": "integer", "name": "offset", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["entities"],
                "summary": "Create an entity",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/{resource}/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["entities"],
                "summary": "Get an entity",
                "description": "A notification is visible to its recipient and admins, a message to its sender, receiver and admins. Anyone else gets 404.",
                "parameters": [{"$ref": "#/parameters/resource"}, {"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["entities"],
                "summary": "Partially update an entity",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["entities"],
                "summary": "Delete an entity",
                "parameters": [{"$ref": "#/parameters/resource"}, {"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Still referenced"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "parameters": {
        "resource": {
            "type": "string",
            "name": "resource",
            "in": "path",
            "required": true,
            "enum": ["farmers", "locations", "cattle", "calvings", "inseminations", "milk_productions", "weight_records", "pedigrees", "cattle_ownership_histories", "trades", "favorites", "notifications", "messages", "images"]
        }
    },
    "definitions": {
        "domain.Token": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string", "example": "bearer"}
            }
        },
        "handler.errorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "field": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Livestock Management API",
	Description:      "Cattle registry, husbandry records, trades and messaging for farmers and buyers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
