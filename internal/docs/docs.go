// Package docs registers the OpenAPI document served at /swagger.
// The paths mirror the @Router annotations on the handlers.
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
        "/app-logout": {
            "get": {
                "responses": {
                    "302": {
                        "description": "Redirect to /login?logout"
                    }
                },
                "summary": "Log out",
                "tags": [
                    "auth"
                ]
            },
            "post": {
                "responses": {
                    "302": {
                        "description": "Redirect to /login?logout"
                    }
                },
                "summary": "Log out",
                "tags": [
                    "auth"
                ]
            }
        },
        "/app/error": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "403": {
                        "description": "Access denied",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Access denied page",
                "tags": [
                    "auth"
                ]
            }
        },
        "/bidList/add": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Blank record",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    }
                },
                "summary": "Blank record form",
                "tags": [
                    "records"
                ]
            }
        },
        "/bidList/delete/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record deleted",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Delete a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/bidList/list": {
            "get": {
                "description": "Returns every record of the kind with the caller's username",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Records",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "302": {
                        "description": "Redirect to login"
                    }
                },
                "summary": "List records",
                "tags": [
                    "records"
                ]
            }
        },
        "/bidList/update/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Record edit form",
                "tags": [
                    "records"
                ]
            },
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "description": "Copies only the mutable fields of the kind onto the stored record",
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Record fields",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record updated",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Update a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/bidList/validate": {
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Record fields",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Record created",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Create a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/curvePoint/add": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Blank record",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    }
                },
                "summary": "Blank record form",
                "tags": [
                    "records"
                ]
            }
        },
        "/curvePoint/delete/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record deleted",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Delete a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/curvePoint/list": {
            "get": {
                "description": "Returns every record of the kind with the caller's username",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Records",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "302": {
                        "description": "Redirect to login"
                    }
                },
                "summary": "List records",
                "tags": [
                    "records"
                ]
            }
        },
        "/curvePoint/update/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Record edit form",
                "tags": [
                    "records"
                ]
            },
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "description": "Copies only the mutable fields of the kind onto the stored record",
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Record fields",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record updated",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Update a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/curvePoint/validate": {
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Record fields",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Record created",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Create a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/login": {
            "get": {
                "description": "Returns the login screen state; ?error and ?logout select the banner",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Login page",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    }
                },
                "summary": "Login page",
                "tags": [
                    "auth"
                ]
            },
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "description": "Verifies the credentials, starts a session and redirects to the bid list",
                "parameters": [
                    {
                        "description": "Username",
                        "in": "formData",
                        "name": "username",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Password",
                        "in": "formData",
                        "name": "password",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "302": {
                        "description": "Redirect to /bidList/list, or /login?error on failure"
                    },
                    "500": {
                        "description": "Server error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Log in",
                "tags": [
                    "auth"
                ]
            }
        },
        "/rating/add": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Blank record",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    }
                },
                "summary": "Blank record form",
                "tags": [
                    "records"
                ]
            }
        },
        "/rating/delete/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record deleted",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Delete a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/rating/list": {
            "get": {
                "description": "Returns every record of the kind with the caller's username",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Records",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "302": {
                        "description": "Redirect to login"
                    }
                },
                "summary": "List records",
                "tags": [
                    "records"
                ]
            }
        },
        "/rating/update/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Record edit form",
                "tags": [
                    "records"
                ]
            },
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "description": "Copies only the mutable fields of the kind onto the stored record",
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Record fields",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record updated",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Update a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/rating/validate": {
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Record fields",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Record created",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Create a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/ruleName/add": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Blank record",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    }
                },
                "summary": "Blank record form",
                "tags": [
                    "records"
                ]
            }
        },
        "/ruleName/delete/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record deleted",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Delete a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/ruleName/list": {
            "get": {
                "description": "Returns every record of the kind with the caller's username",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Records",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "302": {
                        "description": "Redirect to login"
                    }
                },
                "summary": "List records",
                "tags": [
                    "records"
                ]
            }
        },
        "/ruleName/update/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Record edit form",
                "tags": [
                    "records"
                ]
            },
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "description": "Copies only the mutable fields of the kind onto the stored record",
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Record fields",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record updated",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Update a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/ruleName/validate": {
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Record fields",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Record created",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Create a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/trade/add": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Blank record",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    }
                },
                "summary": "Blank record form",
                "tags": [
                    "records"
                ]
            }
        },
        "/trade/delete/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record deleted",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Delete a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/trade/list": {
            "get": {
                "description": "Returns every record of the kind with the caller's username",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Records",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "302": {
                        "description": "Redirect to login"
                    }
                },
                "summary": "List records",
                "tags": [
                    "records"
                ]
            }
        },
        "/trade/update/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Record edit form",
                "tags": [
                    "records"
                ]
            },
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "description": "Copies only the mutable fields of the kind onto the stored record",
                "parameters": [
                    {
                        "description": "Record ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Record fields",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Record updated",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Update a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/trade/validate": {
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "description": "Record fields",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Record created",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Create a record",
                "tags": [
                    "records"
                ]
            }
        },
        "/user/add": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Blank user",
                        "schema": {
                            "$ref": "#/definitions/handlers.UserFormResponse"
                        }
                    }
                },
                "summary": "Blank user form",
                "tags": [
                    "users"
                ]
            }
        },
        "/user/delete/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "User ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "User deleted",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Invalid user id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Delete a user",
                "tags": [
                    "users"
                ]
            }
        },
        "/user/list": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Users",
                        "schema": {
                            "additionalProperties": true,
                            "type": "object"
                        }
                    },
                    "302": {
                        "description": "Redirect to login"
                    },
                    "403": {
                        "description": "Not an administrator",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "List users",
                "tags": [
                    "users"
                ]
            }
        },
        "/user/update/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "User ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "User with blank password",
                        "schema": {
                            "$ref": "#/definitions/handlers.UserFormResponse"
                        }
                    },
                    "404": {
                        "description": "Invalid user id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "User edit form",
                "tags": [
                    "users"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "User ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "User details",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.UserForm"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "User updated",
                        "schema": {
                            "$ref": "#/definitions/handlers.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Invalid user id",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Username taken",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Update a user",
                "tags": [
                    "users"
                ]
            }
        },
        "/user/validate": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "User details",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.UserForm"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "User created",
                        "schema": {
                            "$ref": "#/definitions/handlers.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Username taken",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "summary": "Create a user",
                "tags": [
                    "users"
                ]
            }
        }
    },
    "definitions": {
        "handlers.ErrorDetail": {
            "properties": {
                "code": {
                    "type": "string"
                },
                "fields": {
                    "additionalProperties": {
                        "type": "string"
                    },
                    "type": "object"
                },
                "message": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handlers.ErrorResponse": {
            "properties": {
                "error": {
                    "$ref": "#/definitions/handlers.ErrorDetail"
                }
            },
            "type": "object"
        },
        "handlers.UserForm": {
            "properties": {
                "fullname": {
                    "maxLength": 125,
                    "type": "string"
                },
                "password": {
                    "maxLength": 72,
                    "minLength": 8,
                    "type": "string"
                },
                "role": {
                    "enum": [
                        "USER",
                        "ADMIN"
                    ],
                    "type": "string"
                },
                "username": {
                    "maxLength": 125,
                    "type": "string"
                }
            },
            "required": [
                "fullname",
                "password",
                "role",
                "username"
            ],
            "type": "object"
        },
        "handlers.UserFormResponse": {
            "properties": {
                "fullname": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "password": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handlers.UserResponse": {
            "properties": {
                "fullname": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "role": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                }
            },
            "type": "object"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tradedesk API",
	Description:      "Trading reference-data console: bid lists, curve points, ratings, rules, trades and users behind session login and role-based access.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
