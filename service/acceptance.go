package service

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

func decodeLines(body string) []interface{} {
	result := []interface{}{}
	dec := json.NewDecoder(strings.NewReader(body))
	for {
		var item interface{}
		err := dec.Decode(&item)
		if err == io.EOF {
			break
		}
		if err != nil {
			panic(err)
		}
		result = append(result, item)
	}
	return result
}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create registry", func(a *biff.A) {
		resp := apiRequest("POST", "/registries").
			WithBodyJson(JSON{
				"name": "world",
			}).Do()
		Save(resp, "Create registry", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		emptyRegistry := JSON{
			"name":       "world",
			"entities":   0,
			"flagged":    0,
			"components": []string{},
		}
		biff.AssertEqualJson(resp.BodyJson(), emptyRegistry)

		a.Alternative("Retrieve registry", func(a *biff.A) {
			resp := apiRequest("GET", "/registries/world").Do()
			Save(resp, "Retrieve registry", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), emptyRegistry)
		})

		a.Alternative("List registries", func(a *biff.A) {
			resp := apiRequest("GET", "/registries").Do()
			Save(resp, "List registries", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{emptyRegistry})
		})

		a.Alternative("Create registry twice", func(a *biff.A) {
			resp := apiRequest("POST", "/registries").
				WithBodyJson(JSON{
					"name": "world",
				}).Do()
			Save(resp, "Create registry - conflict", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"error": JSON{
					"message":     "registry already exists: 'world'",
					"description": "Already exists",
				},
			})
		})

		a.Alternative("Drop registry", func(a *biff.A) {
			resp := apiRequest("POST", "/registries/world:dropRegistry").Do()
			Save(resp, "Drop registry", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			a.Alternative("Get dropped registry", func(a *biff.A) {
				resp := apiRequest("GET", "/registries/world").Do()
				Save(resp, "Get registry - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Define component", func(a *biff.A) {
			resp := apiRequest("POST", "/registries/world:defineComponent").
				WithBodyJson(JSON{
					"name": "health",
					"kind": "ordered",
				}).Do()
			Save(resp, "Define component", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"name": "health", "kind": "ordered"})

			a.Alternative("Define component twice", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:defineComponent").
					WithBodyJson(JSON{
						"name": "health",
					}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusConflict)
			})

			a.Alternative("Define component with blank name", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:defineComponent").
					WithBodyJson(JSON{
						"name": "",
					}).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Define component with unknown kind", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:defineComponent").
					WithBodyJson(JSON{
						"name": "mana",
						"kind": "invented",
					}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})
		})

		a.Alternative("Create entity", func(a *biff.A) {
			resp := apiRequest("POST", "/registries/world:create").
				WithBodyJson(JSON{
					"components": JSON{
						"position": JSON{"x": 2, "y": -5},
						"name":     "player",
					},
				}).Do()
			Save(resp, "Create entity", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			body := resp.BodyJson().(JSON)
			id := body["id"].(string)
			biff.AssertNotEqual(id, "")
			biff.AssertEqualJson(body["components"], []string{"name", "position"})

			a.Alternative("Get component", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:get").
					WithBodyJson(JSON{
						"id":        id,
						"component": "position",
					}).Do()
				Save(resp, "Get component", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"x": 2, "y": -5})
			})

			a.Alternative("Get component path", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:get").
					WithBodyJson(JSON{
						"id":        id,
						"component": "position",
						"path":      "y",
					}).Do()
				Save(resp, "Get component - path", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), -5)
			})

			a.Alternative("Get entity", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:get").
					WithBodyJson(JSON{
						"id": id,
					}).Do()
				Save(resp, "Get entity", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"position": JSON{"x": 2, "y": -5},
					"name":     "player",
				})
			})

			a.Alternative("Get with malformed id", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:get").
					WithBodyJson(JSON{
						"id": "abc",
					}).Do()
				Save(resp, "Get entity - bad id", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Get unknown entity", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:get").
					WithBodyJson(JSON{
						"id": "12345",
					}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

			a.Alternative("Attach component", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:attach").
					WithBodyJson(JSON{
						"id":        id,
						"component": "velocity",
						"value":     JSON{"dx": 1},
					}).Do()
				Save(resp, "Attach component", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"id":        id,
					"component": "velocity",
					"replaced":  false,
				})

				a.Alternative("Attach component again", func(a *biff.A) {
					resp := apiRequest("POST", "/registries/world:attach").
						WithBodyJson(JSON{
							"id":        id,
							"component": "velocity",
							"value":     JSON{"dx": 2},
						}).Do()
					Save(resp, "Attach component - replace", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{
						"id":        id,
						"component": "velocity",
						"replaced":  true,
						"previous":  JSON{"dx": 1},
					})
				})
			})

			a.Alternative("Attach invalid JSON", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:attach").
					WithBodyString(`{"id":"` + id + `","component":"velocity","value":{"dx":}`).
					Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Detach component", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:detach").
					WithBodyJson(JSON{
						"id":        id,
						"component": "name",
					}).Do()
				Save(resp, "Detach component", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), "player")

				a.Alternative("Get detached component", func(a *biff.A) {
					resp := apiRequest("POST", "/registries/world:get").
						WithBodyJson(JSON{
							"id":        id,
							"component": "name",
						}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				})
			})

			a.Alternative("Delete entity", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:delete").
					WithBodyJson(JSON{
						"id": id,
					}).Do()
				Save(resp, "Delete entity", `
					Deleting only flags the entity. It keeps its components
					until the next tick.
				`)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"id": id, "flagged": true})

				a.Alternative("Flagged entity is still readable", func(a *biff.A) {
					resp := apiRequest("POST", "/registries/world:get").
						WithBodyJson(JSON{
							"id":        id,
							"component": "name",
						}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), "player")
				})

				a.Alternative("Tick", func(a *biff.A) {
					resp := apiRequest("POST", "/registries/world:tick").Do()
					Save(resp, "Tick", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{"freed": []string{id}})

					{
						resp := apiRequest("POST", "/registries/world:get").
							WithBodyJson(JSON{
								"id": id,
							}).Do()

						biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
					}

					{
						resp := apiRequest("POST", "/registries/world:stats").Do()
						Save(resp, "Stats", ``)

						biff.AssertEqual(resp.StatusCode, http.StatusOK)
						biff.AssertEqualJson(resp.BodyJson(), JSON{
							"entities": JSON{
								"alive":   0,
								"flagged": 0,
								"killed":  1,
								"counter": 1,
							},
							"components": JSON{
								"name":     0,
								"position": 0,
							},
						})
					}
				})
			})
		})

		a.Alternative("Create entity with blank component", func(a *biff.A) {
			resp := apiRequest("POST", "/registries/world:create").
				WithBodyJson(JSON{
					"components": JSON{
						" ": 1,
					},
				}).Do()
			Save(resp, "Create entity - invalid component", `
				The entity is flagged again when a component cannot be attached.
			`)
			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)

			{
				resp := apiRequest("POST", "/registries/world:stats").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"entities": JSON{
						"alive":   1,
						"flagged": 1,
						"killed":  0,
						"counter": 1,
					},
					"components": JSON{},
				})
			}
		})

		a.Alternative("Find", func(a *biff.A) {

			ids := []string{}
			for _, name := range []string{"Alfonso", "Gerardo", "Alfonso"} {
				resp := apiRequest("POST", "/registries/world:create").
					WithBodyJson(JSON{
						"components": JSON{
							"person": JSON{"name": name},
						},
					}).Do()
				ids = append(ids, resp.BodyJson().(JSON)["id"].(string))
			}

			a.Alternative("Find with filter", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:find").
					WithBodyJson(JSON{
						"component": "person",
						"limit":     10,
						"filter": JSON{
							"name": "Alfonso",
						},
					}).Do()
				Save(resp, "Find - filter", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
					{"id": ids[0], "value": JSON{"name": "Alfonso"}},
					{"id": ids[2], "value": JSON{"name": "Alfonso"}},
				})
			})

			a.Alternative("Find with default limit", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:find").
					WithBodyJson(JSON{
						"component": "person",
					}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(len(decodeLines(resp.BodyString())), 1)
			})

			a.Alternative("Find with skip", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:find").
					WithBodyJson(JSON{
						"component": "person",
						"skip":      1,
						"limit":     -1,
					}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
					{"id": ids[1], "value": JSON{"name": "Gerardo"}},
					{"id": ids[2], "value": JSON{"name": "Alfonso"}},
				})
			})

			a.Alternative("Find unknown component", func(a *biff.A) {
				resp := apiRequest("POST", "/registries/world:find").
					WithBodyJson(JSON{
						"component": "invented",
					}).Do()
				Save(resp, "Find - component not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				errorMessage := resp.BodyJson().(JSON)["error"].(JSON)["message"].(string)
				biff.AssertEqual(errorMessage, "component not found: 'invented'")
			})
		})
	})

	a.Alternative("Registry not found", func(a *biff.A) {
		resp := apiRequest("POST", "/registries/invented:create").
			WithBodyJson(JSON{}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"error": JSON{
				"message":     "registry not found: 'invented'",
				"description": "Not found",
			},
		})
	})

	a.Alternative("Create registry with invalid name", func(a *biff.A) {
		resp := apiRequest("POST", "/registries").
			WithBodyJson(JSON{
				"name": "",
			}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
	})
}
