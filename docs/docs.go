// Package docs holds the OpenAPI description of the odontocare services,
// served by echo-swagger under /swagger/.
//
// Regenerate with: swag init -g cmd/odontocare/main.go --parseInternal
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
        "/api/v1/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/v1/auth/change_password": {
            "put": {
                "tags": ["auth"],
                "summary": "Change password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.changePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/v1/citas": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["citas"],
                "summary": "Search appointments",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handler.adminSearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.appointmentResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["citas"],
                "summary": "Book an appointment",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.adminAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.appointmentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/v1/citas/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["citas"],
                "summary": "Cancel an appointment",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Appointment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/v1/admin/doctor/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Get a doctor",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Doctor ID, or user ID for service tokens proxying a doctor", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Doctor"}},
                    "404": {"description": "Not Found", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/admin/paciente/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Get a patient",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Patient ID, or user ID for service tokens proxying a patient", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "activo or inactivo", "name": "estado", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Patient"}},
                    "404": {"description": "Not Found", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/admin/centro/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Get a clinic",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Clinic ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Clinic"}},
                    "404": {"description": "Not Found", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Doctor": {
            "type": "object",
            "properties": {
                "id_doctor": {"type": "integer"},
                "id_usuario": {"type": "integer"},
                "nombre": {"type": "string"},
                "apellido": {"type": "string"},
                "especialidad": {"type": "string"}
            }
        },
        "domain.Patient": {
            "type": "object",
            "properties": {
                "id_paciente": {"type": "integer"},
                "id_usuario": {"type": "integer"},
                "nombre": {"type": "string"},
                "apellido": {"type": "string"},
                "telefono": {"type": "integer"},
                "estado": {"type": "string", "enum": ["activo", "inactivo"]}
            }
        },
        "domain.Clinic": {
            "type": "object",
            "properties": {
                "id_centro": {"type": "integer"},
                "nombre": {"type": "string"},
                "direccion": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expiration": {"type": "string", "example": "2024-03-01T11:00:00Z"}
            }
        },
        "handler.changePasswordRequest": {
            "type": "object",
            "required": ["username", "password", "new_password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "new_password": {"type": "string"}
            }
        },
        "handler.adminAppointmentRequest": {
            "type": "object",
            "required": ["fecha", "motivo", "id_doctor", "id_centro"],
            "properties": {
                "fecha": {"type": "string", "example": "2024-03-01T10:00:00Z"},
                "motivo": {"type": "string", "maxLength": 100},
                "estado": {"type": "string", "enum": ["Pendiente", "Activa", "Cancelada"]},
                "id_paciente": {"type": "integer"},
                "id_doctor": {"type": "integer"},
                "id_centro": {"type": "integer"}
            }
        },
        "handler.adminSearchRequest": {
            "type": "object",
            "properties": {
                "fecha": {"type": "string", "example": "2024-03-01"},
                "estado": {"type": "string", "enum": ["Pendiente", "Activa", "Cancelada"]},
                "id_paciente": {"type": "integer"},
                "id_doctor": {"type": "integer"},
                "id_centro": {"type": "integer"}
            }
        },
        "handler.appointmentResponse": {
            "type": "object",
            "properties": {
                "id_cita": {"type": "integer"},
                "fecha": {"type": "string", "example": "2024-03-01T10:00:00Z"},
                "motivo": {"type": "string"},
                "estado": {"type": "string"},
                "id_paciente": {"type": "integer"},
                "id_doctor": {"type": "integer"},
                "id_centro": {"type": "integer"},
                "id_usuario_registra": {"type": "integer"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
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
	Title:            "OdontoCare API",
	Description:      "Identity and appointment services of the OdontoCare clinic network.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
