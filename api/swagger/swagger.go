package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Pre-payment Submission API",
        "description": "Hospital pre-payment file submission registry with NAS upload integration",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Submissions", "description": "Pre-payment submission lifecycle"},
        {"name": "NAS", "description": "File-station connectivity"},
        {"name": "Auth", "description": "Staff accounts"},
        {"name": "Health", "description": "Liveness"}
    ],
    "paths": {
        "/api/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/nas/status": {
            "get": {
                "tags": ["NAS"],
                "summary": "NAS connectivity probe (login/logout round trip)",
                "responses": {
                    "200": {"description": "Connected"},
                    "503": {"description": "Disconnected"}
                }
            }
        },
        "/api/submissions": {
            "get": {
                "tags": ["Submissions"],
                "summary": "List submissions, newest first",
                "parameters": [
                    {"name": "hospital", "in": "query", "type": "string", "description": "전체 or omitted = all"}
                ],
                "responses": {
                    "200": {"description": "Array of submissions", "schema": {"type": "array", "items": {"$ref": "#/definitions/Submission"}}}
                }
            },
            "post": {
                "tags": ["Submissions"],
                "summary": "Register a pre-payment submission",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "hospital", "in": "formData", "type": "string", "required": true},
                    {"name": "content", "in": "formData", "type": "string", "required": true},
                    {"name": "category", "in": "formData", "type": "string"},
                    {"name": "status", "in": "formData", "type": "string", "enum": ["pending", "completed", "failed"]},
                    {"name": "file", "in": "formData", "type": "file", "description": "jpeg/png/gif/pdf, max 10MB"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Submission"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/submissions/counts": {
            "get": {
                "tags": ["Submissions"],
                "summary": "Live submission counts per hospital",
                "responses": {
                    "200": {"description": "Counts"}
                }
            }
        },
        "/api/submissions/export": {
            "get": {
                "tags": ["Submissions"],
                "summary": "Download the listing as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "hospital", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File attachment"}
                }
            }
        },
        "/api/submissions/hospital/{hospital}": {
            "get": {
                "tags": ["Submissions"],
                "summary": "List submissions for one hospital",
                "parameters": [
                    {"name": "hospital", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Array of submissions", "schema": {"type": "array", "items": {"$ref": "#/definitions/Submission"}}}
                }
            }
        },
        "/api/submissions/{id}": {
            "get": {
                "tags": ["Submissions"],
                "summary": "Get one submission",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Submission", "schema": {"$ref": "#/definitions/Submission"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "patch": {
                "tags": ["Submissions"],
                "summary": "Partially update a submission",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated submission", "schema": {"$ref": "#/definitions/Submission"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Submissions"],
                "summary": "Delete a submission and its local file",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Confirmation message"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a staff account",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Username taken"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange credentials for a bearer token",
                "responses": {
                    "200": {"description": "Token"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current account",
                "responses": {
                    "200": {"description": "Account"},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "definitions": {
        "Submission": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "content": {"type": "string"},
                "hospital": {"type": "string", "enum": ["안암병원", "구로병원", "안산병원", "안양병원", "기타"]},
                "category": {"type": "string"},
                "fileName": {"type": "string", "x-nullable": true},
                "filePath": {"type": "string", "x-nullable": true},
                "fileSize": {"type": "string", "x-nullable": true},
                "status": {"type": "string", "enum": ["pending", "completed", "failed"]},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "errors": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "field": {"type": "string"},
                            "message": {"type": "string"}
                        }
                    }
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
