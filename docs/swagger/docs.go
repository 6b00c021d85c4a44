// Package swagger holds the OpenAPI description served at /swagger.
package swagger

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
        "/health": {
            "get": {
                "description": "Check if the service is running",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check endpoint",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"type": "string"}
                        }
                    }
                }
            }
        },
        "/paths": {
            "get": {
                "description": "Enumerate the slug of every challenge page",
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "List static paths",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/handler.StandardResponse"},
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {"$ref": "#/definitions/handler.ListPathsResponse"}
                                    }
                                }
                            ]
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {"$ref": "#/definitions/handler.StandardResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.StaticPath": {
            "type": "object",
            "properties": {
                "params": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                }
            }
        },
        "handler.ListPathsResponse": {
            "type": "object",
            "properties": {
                "fallback": {"type": "string", "example": "blocking"},
                "paths": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/domain.StaticPath"}
                }
            }
        },
        "handler.StandardResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "error": {},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "",
	Description:      "SEO landing pages for PeakyMinds challenges",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
