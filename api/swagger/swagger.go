package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Hiring Pipeline API",
        "description": "Application stage transitions and recruiting reports",
        "version": "1.0.0"
    },
    "basePath": "{{.BasePath}}",
    "schemes": ["http", "https"],
    "tags": [
        {"name": "Applications", "description": "Pipeline position and stage history"},
        {"name": "Reports", "description": "Recruiting analytics over a date window"}
    ],
    "paths": {
        "/applications/{id}": {
            "get": {
                "tags": ["Applications"],
                "summary": "Get application",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/{id}/history": {
            "get": {
                "tags": ["Applications"],
                "summary": "List stage history, oldest first",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/{id}/stage": {
            "patch": {
                "tags": ["Applications"],
                "summary": "Move application to another stage",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StageTransitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid stage", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Modified concurrently", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/{type}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Build a report",
                "parameters": [
                    {"$ref": "#/parameters/ReportType"},
                    {"$ref": "#/parameters/Start"},
                    {"$ref": "#/parameters/End"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown type or invalid range", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/{type}/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a report as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"$ref": "#/parameters/ReportType"},
                    {"$ref": "#/parameters/Start"},
                    {"$ref": "#/parameters/End"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download", "schema": {"type": "file"}},
                    "400": {"description": "Unknown type, invalid range or format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "parameters": {
        "ReportType": {
            "name": "type", "in": "path", "required": true, "type": "string",
            "enum": ["candidate_sources", "application_funnel", "time_to_hire", "job_performance"]
        },
        "Start": {"name": "start", "in": "query", "required": true, "type": "string", "format": "date"},
        "End": {"name": "end", "in": "query", "required": true, "type": "string", "format": "date", "description": "Inclusive"}
    },
    "definitions": {
        "StageTransitionRequest": {
            "type": "object",
            "required": ["stage"],
            "properties": {
                "stage": {"type": "string", "enum": ["applied", "screening", "interview", "offer", "hired", "rejected"]},
                "expected_updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

// SwaggerInfo holds values substituted into the document at read time.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/api/v1",
	Title:            "Hiring Pipeline API",
	Description:      "Application stage transitions and recruiting reports",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
