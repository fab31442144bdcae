// Package docs registers the API description served under /swagger.
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
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/check": {
            "get": {
                "summary": "Database health probe",
                "produces": ["application/json"],
                "responses": {"200": {"description": "database reachable"}, "500": {"description": "database unreachable"}}
            }
        },
        "/api/register": {
            "post": {
                "summary": "Register a user and issue a token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {"201": {"description": "registered", "schema": {"$ref": "#/definitions/AuthResponse"}}, "400": {"description": "duplicate or malformed", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/api/login": {
            "post": {
                "summary": "Exchange credentials for a 24h token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "logged in", "schema": {"$ref": "#/definitions/AuthResponse"}}, "400": {"description": "bad credentials", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/api/validate-token": {
            "get": {
                "summary": "Decode the bearer token",
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "valid"}, "401": {"description": "missing token"}, "403": {"description": "invalid or expired token"}}
            }
        },
        "/api/questions": {
            "get": {
                "summary": "List all questions",
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "questions", "schema": {"type": "array", "items": {"$ref": "#/definitions/Question"}}}}
            },
            "post": {
                "summary": "Add a question (admin only)",
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/QuestionRequest"}}],
                "responses": {"201": {"description": "created"}, "400": {"description": "malformed"}, "403": {"description": "not an admin"}}
            }
        },
        "/api/scores": {
            "get": {
                "summary": "List the caller's quiz attempts",
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "scores"}}
            },
            "post": {
                "summary": "Record a quiz attempt",
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ScoreRequest"}}],
                "responses": {"201": {"description": "saved"}, "400": {"description": "invalid counts"}}
            }
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"error": {"type": "string"}, "details": {"type": "string"}}},
        "Identity": {"type": "object", "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "isAdmin": {"type": "boolean"}}},
        "AuthResponse": {"type": "object", "properties": {"message": {"type": "string"}, "token": {"type": "string"}, "user": {"$ref": "#/definitions/Identity"}}},
        "RegisterRequest": {"type": "object", "required": ["username", "password", "email"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "email": {"type": "string"}}},
        "LoginRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "Question": {"type": "object", "properties": {"id": {"type": "integer"}, "question": {"type": "string"}, "options": {"type": "array", "items": {"type": "string"}}, "correct_answer": {"type": "integer"}, "time_limit": {"type": "integer"}, "created_by": {"type": "integer"}}},
        "QuestionRequest": {"type": "object", "required": ["question", "options", "correct_answer"], "properties": {"question": {"type": "string"}, "options": {"type": "array", "minItems": 4, "maxItems": 4, "items": {"type": "string"}}, "correct_answer": {"type": "integer", "minimum": 0, "maximum": 3}, "time_limit": {"type": "integer", "minimum": 1}}},
        "ScoreRequest": {"type": "object", "required": ["score", "totalQuestions"], "properties": {"score": {"type": "integer"}, "totalQuestions": {"type": "integer"}, "attemptedQuestions": {"type": "integer"}, "skippedQuestions": {"type": "integer"}, "timeTaken": {"type": "integer"}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Quiz API",
	Description:      "Users, questions and score records for the quiz client.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
