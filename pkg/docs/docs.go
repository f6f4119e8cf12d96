// Package docs registers the OpenAPI document served under /swagger.
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
        "/api/token/notify": {
            "post": {
                "description": "Sends a notification to a single device registration token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Send a notification to a device",
                "parameters": [
                    {
                        "description": "token, title and body",
                        "name": "notification",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/notify.Payload"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/notify.NotificationResult"}},
                    "400": {"description": "missing fields or invalid token", "schema": {"$ref": "#/definitions/notify.NotificationResult"}},
                    "500": {"description": "send failure", "schema": {"$ref": "#/definitions/notify.NotificationResult"}}
                }
            }
        },
        "/api/topic/notify": {
            "post": {
                "description": "Sends a notification to every device subscribed to the gateway's topic.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Broadcast a notification to the topic",
                "parameters": [
                    {
                        "description": "title and body",
                        "name": "notification",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/notify.Payload"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/notify.NotificationResult"}},
                    "400": {"description": "missing fields", "schema": {"$ref": "#/definitions/notify.NotificationResult"}},
                    "500": {"description": "send failure", "schema": {"$ref": "#/definitions/notify.NotificationResult"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthStatus"}}
                }
            }
        }
    },
    "definitions": {
        "handler.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "notify.NotificationResult": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "messageId": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "notify.Payload": {
            "type": "object",
            "required": ["body", "title", "token"],
            "properties": {
                "body": {"type": "string"},
                "title": {"type": "string"},
                "token": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Push Gateway API",
	Description:      "Forwards push notifications to Firebase Cloud Messaging.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
