// Package docs provides the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/session/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Log in",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/session/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Sign up",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/session/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/session/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Refresh the session profile",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/session/clients": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Accessible clients",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/session/roster": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Refresh the client roster",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/analytics/predictions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Predict ESG scores",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/analytics/risks": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Assess portfolio risks",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/analytics/carbon": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Forecast carbon footprint",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/analytics/recommendations": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Generate recommendations",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/analytics/document": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Analyze a document",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/analytics/report": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Generate an AI report",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/analytics/panels/{client_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Dashboard panel bundle",
                "parameters": [
                    {
                        "type": "string",
                        "name": "client_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "202": {"description": "Accepted"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ESG-View Admin Gateway API",
	Description:      "Session and AI analytics gateway for the ESG-View platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
