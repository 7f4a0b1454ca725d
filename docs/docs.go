// Package docs registers the OpenAPI document served at /swagger/*. It is
// maintained by hand alongside the handler annotations.
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
        "/audit": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Audit trail",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.auditResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Store and credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.okResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/earn": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Earn stamps",
                "parameters": [
                    {"description": "Wallet and purchase amount in cents", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.earnRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.earnResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/ledger/{walletId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Wallet balance",
                "parameters": [
                    {"type": "string", "description": "Wallet ID", "name": "walletId", "in": "path", "required": true},
                    {"type": "string", "description": "Store ID", "name": "storeId", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WalletState"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.meResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/stores": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stores"],
                "summary": "List stores",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.storesResponse"}}
                }
            }
        },
        "/wallet/reset": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Reset wallet",
                "parameters": [
                    {"description": "Wallet to reset", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.resetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.resetResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Actor": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "userId": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "domain.AuditEntry": {
            "type": "object",
            "properties": {
                "actor": {"$ref": "#/definitions/domain.Actor"},
                "amountCents": {"type": "integer"},
                "id": {"type": "string"},
                "stampsAdded": {"type": "integer"},
                "stampsAfter": {"type": "integer"},
                "storeId": {"type": "string"},
                "timestamp": {"type": "string"},
                "type": {"type": "string", "enum": ["EARN", "RESET"]},
                "walletId": {"type": "string"}
            }
        },
        "domain.Store": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "domain.UserSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "role": {"type": "string"},
                "storeId": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "domain.WalletState": {
            "type": "object",
            "properties": {
                "stampCap": {"type": "integer"},
                "stamps": {"type": "integer"},
                "storeId": {"type": "string"},
                "walletId": {"type": "string"}
            }
        },
        "handler.auditResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.AuditEntry"}},
                "storeId": {"type": "string"}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.earnRequest": {
            "type": "object",
            "properties": {
                "amountCents": {"type": "number"},
                "walletId": {"type": "string"}
            }
        },
        "handler.earnResponse": {
            "type": "object",
            "properties": {
                "actor": {"$ref": "#/definitions/domain.Actor"},
                "amountCents": {"type": "integer"},
                "id": {"type": "string"},
                "ok": {"type": "boolean"},
                "stampCap": {"type": "integer"},
                "stampsAdded": {"type": "integer"},
                "stampsAfter": {"type": "integer"},
                "storeId": {"type": "string"},
                "timestamp": {"type": "string"},
                "type": {"type": "string"},
                "walletId": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["password", "storeId", "username"],
            "properties": {
                "password": {"type": "string"},
                "storeId": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "store": {"$ref": "#/definitions/domain.Store"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.UserSummary"}
            }
        },
        "handler.meResponse": {
            "type": "object",
            "properties": {
                "store": {"$ref": "#/definitions/domain.Store"},
                "user": {"$ref": "#/definitions/domain.UserSummary"}
            }
        },
        "handler.okResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}},
                "status": {"type": "string"}
            }
        },
        "handler.resetRequest": {
            "type": "object",
            "properties": {
                "walletId": {"type": "string"}
            }
        },
        "handler.resetResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "stampCap": {"type": "integer"},
                "stamps": {"type": "integer"},
                "storeId": {"type": "string"},
                "walletId": {"type": "string"}
            }
        },
        "handler.storesResponse": {
            "type": "object",
            "properties": {
                "stores": {"type": "array", "items": {"$ref": "#/definitions/domain.Store"}}
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
	Title:            "Stamp Ledger API",
	Description:      "Multi-tenant loyalty stamp ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
