// Package docs - swagger спецификация HTTP API (swaggo/swag)
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
		"/api/v1/health": {
			"get": {
				"tags": [
					"System"
				],
				"summary": "Health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/v1/sports": {
			"get": {
				"tags": [
					"Catalog"
				],
				"summary": "List sports",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"503": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/centers": {
			"get": {
				"tags": [
					"Discovery"
				],
				"summary": "Search centers",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SnapshotResponse"
						}
					},
					"503": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "sport",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "string",
						"name": "date",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "string",
						"name": "startTime",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "integer",
						"name": "duration",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "number",
						"name": "minPrice",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "number",
						"name": "maxPrice",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "number",
						"name": "lat",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "number",
						"name": "lng",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "number",
						"name": "radius",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "string",
						"name": "amenities",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "string",
						"name": "view",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "string",
						"name": "sortBy",
						"in": "query",
						"required": false,
						"description": ""
					},
					{
						"type": "boolean",
						"name": "showUnavailable",
						"in": "query",
						"required": false,
						"description": ""
					}
				]
			}
		},
		"/api/v1/centers/{id}": {
			"get": {
				"tags": [
					"Catalog"
				],
				"summary": "Get center",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Center"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Center ID"
					}
				]
			}
		},
		"/api/v1/centers/{id}/availability": {
			"get": {
				"tags": [
					"Catalog"
				],
				"summary": "Center slots",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.AvailabilityResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					},
					"502": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Center ID"
					},
					{
						"type": "string",
						"name": "date",
						"in": "query",
						"required": true,
						"description": ""
					},
					{
						"type": "string",
						"name": "startTime",
						"in": "query",
						"required": true,
						"description": ""
					},
					{
						"type": "integer",
						"name": "duration",
						"in": "query",
						"required": false,
						"description": ""
					}
				]
			}
		},
		"/api/v1/sessions": {
			"post": {
				"tags": [
					"Sessions"
				],
				"summary": "Open session",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SnapshotResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "request",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/dto.CreateSessionRequest"
						}
					}
				]
			}
		},
		"/api/v1/sessions/{id}": {
			"get": {
				"tags": [
					"Sessions"
				],
				"summary": "Session state",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SnapshotResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Session ID"
					}
				]
			},
			"delete": {
				"tags": [
					"Sessions"
				],
				"summary": "Close session",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Session ID"
					}
				]
			}
		},
		"/api/v1/sessions/{id}/filters": {
			"patch": {
				"tags": [
					"Sessions"
				],
				"summary": "Update filters",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SnapshotResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Session ID"
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.UpdateFiltersRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"Sessions"
				],
				"summary": "Clear filters",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SnapshotResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Session ID"
					}
				]
			}
		},
		"/api/v1/sessions/{id}/location": {
			"post": {
				"tags": [
					"Sessions"
				],
				"summary": "Set search location",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SnapshotResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Session ID"
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.LocationRequest"
						}
					}
				]
			}
		},
		"/api/v1/sessions/{id}/notice": {
			"delete": {
				"tags": [
					"Sessions"
				],
				"summary": "Dismiss notice",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SnapshotResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Session ID"
					}
				]
			}
		},
		"/api/v1/sessions/{id}/reload": {
			"post": {
				"tags": [
					"Sessions"
				],
				"summary": "Retry catalog load",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SnapshotResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/utils.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Session ID"
					}
				]
			}
		}
	},
	"definitions": {
		"domain.Point": {
			"type": "object",
			"properties": {
				"lat": {
					"type": "number"
				},
				"lon": {
					"type": "number"
				}
			}
		},
		"domain.Address": {
			"type": "object",
			"properties": {
				"street": {
					"type": "string"
				},
				"city": {
					"type": "string"
				},
				"state": {
					"type": "string"
				},
				"zip": {
					"type": "string"
				}
			}
		},
		"domain.SportRef": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"domain.Facility": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"sport_id": {
					"type": "string"
				},
				"hourly_price": {
					"type": "number"
				}
			}
		},
		"domain.DayHours": {
			"type": "object",
			"properties": {
				"open": {
					"type": "string"
				},
				"close": {
					"type": "string"
				},
				"closed": {
					"type": "boolean"
				}
			}
		},
		"domain.Center": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"address": {
					"$ref": "#/definitions/domain.Address"
				},
				"location": {
					"$ref": "#/definitions/domain.Point"
				},
				"sports": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.SportRef"
					}
				},
				"amenities": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"opening_hours": {
					"type": "object",
					"additionalProperties": {
						"$ref": "#/definitions/domain.DayHours"
					}
				},
				"base_price": {
					"type": "number"
				},
				"facilities": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Facility"
					}
				}
			}
		},
		"domain.Slot": {
			"type": "object",
			"properties": {
				"slot_id": {
					"type": "string"
				},
				"center_id": {
					"type": "string"
				},
				"facility_id": {
					"type": "string"
				},
				"date": {
					"type": "string"
				},
				"start_time": {
					"type": "string"
				},
				"duration": {
					"type": "integer"
				},
				"price": {
					"type": "number"
				},
				"is_available": {
					"type": "boolean"
				}
			}
		},
		"domain.MapMarker": {
			"type": "object",
			"properties": {
				"cell": {
					"type": "string"
				},
				"lat": {
					"type": "number"
				},
				"lon": {
					"type": "number"
				},
				"count": {
					"type": "integer"
				},
				"center_ids": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"domain.FilterCriteria": {
			"type": "object",
			"properties": {
				"sport": {
					"type": "string"
				},
				"when": {
					"type": "object"
				},
				"price": {
					"type": "object",
					"properties": {
						"min": {
							"type": "number"
						},
						"max": {
							"type": "number"
						}
					}
				},
				"location": {
					"type": "object"
				},
				"amenities": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"view": {
					"type": "string"
				},
				"sort_by": {
					"type": "string"
				},
				"show_unavailable": {
					"type": "boolean"
				}
			}
		},
		"dto.CenterResult": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"address": {
					"$ref": "#/definitions/domain.Address"
				},
				"location": {
					"$ref": "#/definitions/domain.Point"
				},
				"sports": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.SportRef"
					}
				},
				"amenities": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"price": {
					"type": "number"
				},
				"distance_km": {
					"type": "number"
				},
				"available": {
					"type": "boolean"
				}
			}
		},
		"dto.SnapshotResponse": {
			"type": "object",
			"properties": {
				"session_id": {
					"type": "string"
				},
				"state": {
					"type": "string"
				},
				"loading": {
					"type": "boolean"
				},
				"availability_resolving": {
					"type": "boolean"
				},
				"error": {
					"$ref": "#/definitions/errors.AppError"
				},
				"notice": {
					"type": "string"
				},
				"criteria": {
					"$ref": "#/definitions/domain.FilterCriteria"
				},
				"query": {
					"type": "string"
				},
				"results": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.CenterResult"
					}
				},
				"markers": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.MapMarker"
					}
				},
				"total": {
					"type": "integer"
				},
				"empty": {
					"type": "boolean"
				},
				"version": {
					"type": "integer"
				}
			}
		},
		"dto.AvailabilityResponse": {
			"type": "object",
			"properties": {
				"center_id": {
					"type": "string"
				},
				"date": {
					"type": "string"
				},
				"start_time": {
					"type": "string"
				},
				"duration": {
					"type": "integer"
				},
				"available": {
					"type": "boolean"
				},
				"slots": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Slot"
					}
				}
			}
		},
		"dto.CreateSessionRequest": {
			"type": "object",
			"properties": {
				"query": {
					"type": "string"
				}
			}
		},
		"dto.UpdateFiltersRequest": {
			"type": "object",
			"properties": {
				"sport": {
					"type": "string"
				},
				"date": {
					"type": "string"
				},
				"start_time": {
					"type": "string"
				},
				"duration": {
					"type": "integer"
				},
				"clear_date": {
					"type": "boolean"
				},
				"clear_slot": {
					"type": "boolean"
				},
				"min_price": {
					"type": "number"
				},
				"max_price": {
					"type": "number"
				},
				"amenities": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"toggle_amenity": {
					"type": "string"
				},
				"view": {
					"type": "string"
				},
				"sort_by": {
					"type": "string"
				},
				"show_unavailable": {
					"type": "boolean"
				},
				"clear_location": {
					"type": "boolean"
				}
			}
		},
		"dto.LocationRequest": {
			"type": "object",
			"properties": {
				"lat": {
					"type": "number"
				},
				"lon": {
					"type": "number"
				},
				"query": {
					"type": "string"
				},
				"radius_km": {
					"type": "number"
				}
			}
		},
		"errors.AppError": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"details": {
					"type": "object"
				}
			}
		},
		"utils.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"$ref": "#/definitions/errors.AppError"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0.0",
	Host:			 "localhost:8080",
	BasePath:		 "/",
	Schemes:		  []string{"http", "https"},
	Title:			"QuadraGo Discovery API",
	Description:	  "Поиск спортивных центров: фильтры по виду спорта, дате и слоту, цене, расстоянию и удобствам.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
