// Package docs registers the OpenAPI 2.0 description of the announce-feed
// HTTP API with swag. The API server serves it under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "token issued", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/Error"}},
                    "429": {"description": "too many requests", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/v1/announcements": {
            "get": {
                "tags": ["announcements"],
                "summary": "List the owner's announcements, newest created first",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "announcements", "schema": {"type": "array", "items": {"$ref": "#/definitions/Announcement"}}},
                    "401": {"description": "missing identity", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "post": {
                "tags": ["announcements"],
                "summary": "Create an announcement as a draft, published now or scheduled",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRequest"}}],
                "responses": {
                    "201": {"description": "created", "schema": {"$ref": "#/definitions/Announcement"}},
                    "400": {"description": "malformed body", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "validation failed", "schema": {"$ref": "#/definitions/ValidationError"}}
                }
            }
        },
        "/v1/announcements/stats": {
            "get": {
                "tags": ["announcements"],
                "summary": "Counts by status and type",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "stats", "schema": {"$ref": "#/definitions/Stats"}}
                }
            }
        },
        "/v1/announcements/{id}": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
            "get": {
                "tags": ["announcements"],
                "summary": "Get one announcement",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "announcement", "schema": {"$ref": "#/definitions/Announcement"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "tags": ["announcements"],
                "summary": "Partially update an announcement",
                "description": "Omitted fields are unchanged. A status change follows the transition table.",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRequest"}}],
                "responses": {
                    "200": {"description": "updated", "schema": {"$ref": "#/definitions/Announcement"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "invalid transition or concurrent status change", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "validation failed", "schema": {"$ref": "#/definitions/ValidationError"}}
                }
            },
            "delete": {
                "tags": ["announcements"],
                "summary": "Delete an announcement",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "deleted"},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/v1/announcements/{id}/publish": {
            "post": {
                "tags": ["lifecycle"],
                "summary": "Publish a draft or scheduled announcement now",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {
                    "200": {"description": "published", "schema": {"$ref": "#/definitions/Announcement"}},
                    "409": {"description": "invalid transition", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/v1/announcements/{id}/schedule": {
            "post": {
                "tags": ["lifecycle"],
                "summary": "Schedule a draft at least five minutes ahead",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "scheduled", "schema": {"$ref": "#/definitions/Announcement"}},
                    "409": {"description": "invalid transition", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "validation failed", "schema": {"$ref": "#/definitions/ValidationError"}}
                }
            }
        },
        "/v1/announcements/{id}/archive": {
            "post": {
                "tags": ["lifecycle"],
                "summary": "Archive a published announcement",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {
                    "200": {"description": "archived", "schema": {"$ref": "#/definitions/Announcement"}},
                    "409": {"description": "invalid transition", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/v1/widget/announcements": {
            "get": {
                "tags": ["widget"],
                "summary": "Published announcements of an account, newest published first",
                "parameters": [{"in": "header", "name": "X-User-Id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "published announcements", "schema": {"type": "array", "items": {"$ref": "#/definitions/WidgetItem"}}},
                    "400": {"description": "User ID required", "schema": {"$ref": "#/definitions/Error"}},
                    "429": {"description": "too many requests", "schema": {"$ref": "#/definitions/Error"}},
                    "500": {"description": "store failure", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/v1/widget/feed.xml": {
            "get": {
                "tags": ["widget"],
                "summary": "RSS 2.0 feed of an account's published announcements",
                "produces": ["application/rss+xml"],
                "parameters": [{"in": "query", "name": "userId", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "RSS document"},
                    "400": {"description": "User ID required", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "ValidationError": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "validation failed"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "TokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "ownerId": {"type": "string"}, "role": {"type": "string", "enum": ["admin", "viewer"]}}
        },
        "Announcement": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "title": {"type": "string"},
                "content": {"type": "string", "description": "sanitized HTML"},
                "type": {"type": "string", "enum": ["feature", "update", "news", "bugfix"]},
                "priority": {"type": "string", "enum": ["low", "medium", "high"]},
                "status": {"type": "string", "enum": ["draft", "scheduled", "published", "archived"]},
                "timezone": {"type": "string", "example": "Europe/Berlin"},
                "imageUrl": {"type": "string"},
                "linkUrl": {"type": "string"},
                "linkText": {"type": "string"},
                "scheduledAt": {"type": "string", "format": "date-time", "x-nullable": true},
                "publishedAt": {"type": "string", "format": "date-time", "x-nullable": true},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "CreateRequest": {
            "type": "object",
            "required": ["title", "content", "intent"],
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "type": {"type": "string", "enum": ["feature", "update", "news", "bugfix"]},
                "priority": {"type": "string", "enum": ["low", "medium", "high"]},
                "timezone": {"type": "string"},
                "imageUrl": {"type": "string"},
                "linkUrl": {"type": "string"},
                "linkText": {"type": "string"},
                "intent": {"type": "string", "enum": ["save-draft", "publish-now", "schedule"]},
                "scheduledDate": {"type": "string", "example": "2026-04-01"},
                "scheduledTime": {"type": "string", "example": "09:30"}
            }
        },
        "UpdateRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "type": {"type": "string"},
                "priority": {"type": "string"},
                "timezone": {"type": "string"},
                "imageUrl": {"type": "string"},
                "linkUrl": {"type": "string"},
                "linkText": {"type": "string"},
                "status": {"type": "string", "enum": ["draft", "scheduled", "published", "archived"]},
                "scheduledDate": {"type": "string"},
                "scheduledTime": {"type": "string"}
            }
        },
        "ScheduleRequest": {
            "type": "object",
            "required": ["scheduledDate", "scheduledTime"],
            "properties": {
                "scheduledDate": {"type": "string", "example": "2026-04-01"},
                "scheduledTime": {"type": "string", "example": "09:30"},
                "timezone": {"type": "string", "example": "America/New_York"}
            }
        },
        "Stats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "published": {"type": "integer"},
                "scheduled": {"type": "integer"},
                "drafts": {"type": "integer"},
                "archived": {"type": "integer"},
                "thisMonth": {"type": "integer"},
                "byType": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "WidgetItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "type": {"type": "string"},
                "priority": {"type": "string"},
                "status": {"type": "string"},
                "publishedAt": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string", "format": "date-time"},
                "imageUrl": {"type": "string"},
                "linkUrl": {"type": "string"},
                "linkText": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds the values substituted into docTemplate.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "announce-feed API",
	Description:      "Announcement lifecycle admin API and the public widget endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
