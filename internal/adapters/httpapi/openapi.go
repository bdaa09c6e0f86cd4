package httpapi

import (
	"net/http"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/httpjson"
)

// handleOpenAPI décrit l'API v1 (document minimal, sans exemples).
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	jsonOK := func(schemaRef string) map[string]any {
		return map[string]any{
			"description": "OK",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}
	jsonBody := func(schemaRef string) map[string]any {
		return map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}
	jsonErr := map[string]any{
		"description": "Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Error"},
			},
		},
	}
	nameParam := map[string]any{"name": "name", "in": "path", "required": true, "schema": map[string]any{"type": "string"}}
	boolQuery := func(name string) map[string]any {
		return map[string]any{"name": name, "in": "query", "schema": map[string]any{"type": "boolean"}}
	}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "BGmi API",
			"version": "v1",
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"OpenAPIDocument": map[string]any{"type": "object", "additionalProperties": true},
				"Error": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"error": map[string]any{"type": "string"},
						"code":  map[string]any{"type": "string", "enum": []any{"invalid_params", "source_http", "source_decode", "network_error"}},
					},
					"required": []any{"error"},
				},
				"Episode": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":          map[string]any{"type": "string"},
						"name":           map[string]any{"type": "string"},
						"download":       map[string]any{"type": "string"},
						"subtitle_group": map[string]any{"type": "string"},
						"episode":        map[string]any{"type": "integer", "nullable": true},
						"time":           map[string]any{"type": "integer", "format": "int64"},
					},
				},
				"EpisodeList": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Episode"}},
				"Episodes": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"latest":   map[string]any{"$ref": "#/components/schemas/Episode"},
						"episodes": map[string]any{"$ref": "#/components/schemas/EpisodeList"},
					},
				},
				"Bangumi": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":            map[string]any{"type": "string"},
						"name":          map[string]any{"type": "string"},
						"keyword":       map[string]any{"type": "string"},
						"cover":         map[string]any{"type": "string"},
						"updateTime":    map[string]any{"type": "string", "enum": []any{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}},
						"status":        map[string]any{"type": "string", "enum": []any{"normal", "followed", "updated"}},
						"episode":       map[string]any{"type": "integer"},
						"subtitleGroup": map[string]any{"type": "string"},
					},
				},
				"BangumiList": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Bangumi"}},
				"Filter": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"subtitle": map[string]any{"type": "string", "description": "Ids de groupes séparés par des virgules"},
						"include":  map[string]any{"type": "string"},
						"exclude":  map[string]any{"type": "string"},
						"regex":    map[string]any{"type": "string"},
					},
				},
				"EpisodeRequest": map[string]any{
					"type":       "object",
					"properties": map[string]any{"episode": map[string]any{"type": "integer", "minimum": 0}},
				},
				"Calendar": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"schedule": map[string]any{"type": "object", "additionalProperties": true},
						"order":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"today":    map[string]any{"type": "boolean"},
						"followed": map[string]any{"type": "boolean"},
					},
				},
				"UpdateResults": map[string]any{
					"type":       "object",
					"properties": map[string]any{"results": map[string]any{"type": "array", "items": map[string]any{"type": "object", "additionalProperties": true}}},
				},
				"Notifications": map[string]any{
					"type": "object",
					"properties": map[string]any{"items": map[string]any{"type": "array", "items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name":    map[string]any{"type": "string"},
							"episode": map[string]any{"type": "integer"},
							"at":      map[string]any{"type": "string", "format": "date-time"},
						},
					}}},
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/health":       map[string]any{"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}}},
			"/api/v1/version":      map[string]any{"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}}},
			"/api/v1/openapi.json": map[string]any{"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/OpenAPIDocument")}}},
			"/api/v1/events": map[string]any{
				"get": map[string]any{
					"parameters": []any{map[string]any{"name": "topic", "in": "query", "schema": map[string]any{"type": "string"}}},
					"responses":  map[string]any{"200": map[string]any{"description": "SSE"}},
				},
			},
			"/api/v1/calendar": map[string]any{
				"get": map[string]any{
					"parameters": []any{boolQuery("followed"), boolQuery("today"), boolQuery("force"),
						map[string]any{"name": "format", "in": "query", "schema": map[string]any{"type": "string", "enum": []any{"json", "text"}}}},
					"responses": map[string]any{"200": jsonOK("#/components/schemas/Calendar"), "409": jsonErr, "502": jsonErr},
				},
			},
			"/api/v1/search": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{"name": "keyword", "in": "query", "required": true, "schema": map[string]any{"type": "string"}},
						map[string]any{"name": "count", "in": "query", "schema": map[string]any{"type": "integer"}},
						map[string]any{"name": "filter", "in": "query", "schema": map[string]any{"type": "string"}},
					},
					"responses": map[string]any{"200": jsonOK("#/components/schemas/EpisodeList"), "400": jsonErr, "502": jsonErr},
				},
			},
			"/api/v1/bangumi": map[string]any{
				"get": map[string]any{
					"parameters": []any{boolQuery("followed")},
					"responses":  map[string]any{"200": jsonOK("#/components/schemas/BangumiList")},
				},
			},
			"/api/v1/bangumi/{name}": map[string]any{
				"get": map[string]any{"parameters": []any{nameParam}, "responses": map[string]any{"200": jsonOK("#/components/schemas/Bangumi"), "404": jsonErr}},
			},
			"/api/v1/bangumi/{name}/episodes": map[string]any{
				"get": map[string]any{
					"parameters": []any{nameParam, boolQuery("subtitle"), boolQuery("ignoreOld"),
						map[string]any{"name": "maxPage", "in": "query", "schema": map[string]any{"type": "integer"}}},
					"responses": map[string]any{"200": jsonOK("#/components/schemas/Episodes"), "404": jsonErr, "502": jsonErr},
				},
			},
			"/api/v1/bangumi/{name}/follow": map[string]any{
				"post": map[string]any{
					"parameters":  []any{nameParam},
					"requestBody": jsonBody("#/components/schemas/EpisodeRequest"),
					"responses":   map[string]any{"200": jsonOK("#/components/schemas/Bangumi"), "400": jsonErr, "404": jsonErr},
				},
				"delete": map[string]any{"parameters": []any{nameParam}, "responses": map[string]any{"200": jsonOK("#/components/schemas/Bangumi"), "404": jsonErr}},
			},
			"/api/v1/bangumi/{name}/episode": map[string]any{
				"put": map[string]any{
					"parameters":  []any{nameParam},
					"requestBody": jsonBody("#/components/schemas/EpisodeRequest"),
					"responses":   map[string]any{"200": jsonOK("#/components/schemas/Bangumi"), "400": jsonErr, "404": jsonErr},
				},
			},
			"/api/v1/bangumi/{name}/filter": map[string]any{
				"get": map[string]any{"parameters": []any{nameParam}, "responses": map[string]any{"200": jsonOK("#/components/schemas/Filter"), "404": jsonErr}},
				"put": map[string]any{
					"parameters":  []any{nameParam},
					"requestBody": jsonBody("#/components/schemas/Filter"),
					"responses":   map[string]any{"200": jsonOK("#/components/schemas/Filter"), "400": jsonErr, "404": jsonErr},
				},
			},
			"/api/v1/update": map[string]any{
				"post": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/UpdateResults"), "400": jsonErr, "404": jsonErr}},
			},
			"/api/v1/update/recent": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Notifications")}},
			},
		},
	}

	httpjson.Write(w, http.StatusOK, spec)
}
