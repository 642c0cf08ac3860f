// Package docs registers the OpenAPI document for the survey API with swag.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new account",
                "parameters": [{"description": "Account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.RegisterRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in with email or username",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/auth/user": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/surveys": {
            "get": {
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "List all surveys, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.SurveySummary"}}}
                }
            },
            "post": {
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Create a survey",
                "parameters": [{"description": "Survey", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreateSurveyRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Survey"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/surveys/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Get one survey",
                "parameters": [{"type": "string", "description": "Survey ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Survey"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Delete a survey and its responses",
                "parameters": [{"type": "string", "description": "Survey ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/surveys/{id}/toggle-public": {
            "put": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Flip public access to results",
                "parameters": [{"type": "string", "description": "Survey ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Survey"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/surveys/{id}/responses": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["responses"],
                "summary": "List responses (owner only)",
                "parameters": [{"type": "string", "description": "Survey ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Response"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["responses"],
                "summary": "Submit a response; a token is optional",
                "parameters": [
                    {"type": "string", "description": "Survey ID", "name": "id", "in": "path", "required": true},
                    {"description": "Answers", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.SubmitResponseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/surveys/{id}/responses/public": {
            "get": {
                "produces": ["application/json"],
                "tags": ["responses"],
                "summary": "List responses of a survey with public results",
                "parameters": [{"type": "string", "description": "Survey ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Response"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/surveys/{id}/results": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Per-question results (owner only)",
                "parameters": [{"type": "string", "description": "Survey ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SurveyResults"}}
                }
            }
        },
        "/surveys/{id}/results/public": {
            "get": {
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Per-question results of a survey with public results",
                "parameters": [{"type": "string", "description": "Survey ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SurveyResults"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/surveys/{id}/export": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["text/csv"],
                "tags": ["results"],
                "summary": "Download responses as CSV (owner only)",
                "parameters": [{"type": "string", "description": "Survey ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}}
                }
            }
        }
    },
    "definitions": {
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "missing": {"type": "array", "items": {"type": "string"}},
                "invalid": {"type": "array", "items": {"type": "string"}},
                "detail": {"type": "string"}
            }
        },
        "model.RegisterRequest": {
            "type": "object",
            "required": ["username", "email", "password"],
            "properties": {
                "username": {"type": "string", "maxLength": 64},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "fullName": {"type": "string", "maxLength": 128}
            }
        },
        "model.LoginRequest": {
            "type": "object",
            "required": ["emailOrUsername", "password"],
            "properties": {
                "emailOrUsername": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "model.TokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "model.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "fullName": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "model.Option": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "text": {"type": "string"}}
        },
        "model.Question": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "type": {"type": "string", "enum": ["short-answer", "multiple-choice", "rating"]},
                "options": {"type": "array", "items": {"$ref": "#/definitions/model.Option"}},
                "required": {"type": "boolean"},
                "scaleMin": {"type": "integer"},
                "scaleMax": {"type": "integer"}
            }
        },
        "model.Survey": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/model.Question"}},
                "isPublicResults": {"type": "boolean"},
                "createdAt": {"type": "string"}
            }
        },
        "model.SurveySummary": {
            "allOf": [
                {"$ref": "#/definitions/model.Survey"},
                {
                    "type": "object",
                    "properties": {
                        "owner": {
                            "type": "object",
                            "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "fullName": {"type": "string"}}
                        },
                        "responseCount": {"type": "integer"}
                    }
                }
            ]
        },
        "model.CreateSurveyRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "questions": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "text": {"type": "string"},
                            "type": {"type": "string"},
                            "options": {"type": "array", "items": {"type": "object", "properties": {"text": {"type": "string"}}}},
                            "required": {"type": "boolean"},
                            "scaleMin": {"type": "integer"},
                            "scaleMax": {"type": "integer"}
                        }
                    }
                }
            }
        },
        "model.SubmitResponseRequest": {
            "type": "object",
            "properties": {
                "answers": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {"questionId": {"type": "string"}, "answerText": {"type": "string"}}
                    }
                }
            }
        },
        "model.Response": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "survey": {"type": "string"},
                "user": {"type": "string"},
                "answers": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {"questionId": {"type": "string"}, "answerText": {"type": "string"}}
                    }
                },
                "createdAt": {"type": "string"}
            }
        },
        "model.SurveyResults": {
            "type": "object",
            "properties": {
                "surveyId": {"type": "string"},
                "title": {"type": "string"},
                "totalResponses": {"type": "integer"},
                "questions": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "questionId": {"type": "string"},
                            "text": {"type": "string"},
                            "type": {"type": "string"},
                            "labels": {"type": "array", "items": {"type": "string"}},
                            "counts": {"type": "array", "items": {"type": "integer"}},
                            "textAnswers": {
                                "type": "array",
                                "items": {"type": "object", "properties": {"text": {"type": "string"}, "submittedAt": {"type": "string"}}}
                            }
                        }
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "TokenAuth": {"type": "apiKey", "name": "x-auth-token", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Survey Application API",
	Description:      "Create surveys, collect responses and view results.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
