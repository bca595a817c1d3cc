package handlers

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo-webapp/internal/models"
)

const updateTodoSchemaURL = "update_todo.json"

//go:embed schema/update_todo.json
var updateTodoSchemaJSON []byte

var updateTodoSchema = mustCompileSchema(updateTodoSchemaURL, updateTodoSchemaJSON)

func mustCompileSchema(url string, data []byte) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", url, err))
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", url, err))
	}
	return schema
}

// bindUpdateTodo decodes a partial update body. It returns the HTTP status to
// answer with when the body is unusable: 400 for broken JSON, 422 for JSON of
// the wrong shape.
func bindUpdateTodo(c *gin.Context) (models.UpdateTodo, int, error) {
	body, err := c.GetRawData()
	if err != nil {
		return models.UpdateTodo{}, http.StatusBadRequest, errors.New("invalid request body")
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return models.UpdateTodo{}, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %v", err)
	}

	if err := updateTodoSchema.Validate(doc); err != nil {
		return models.UpdateTodo{}, http.StatusUnprocessableEntity, schemaError(err)
	}

	request := models.UpdateTodo{}
	if err := json.Unmarshal(body, &request); err != nil {
		return models.UpdateTodo{}, http.StatusUnprocessableEntity, fmt.Errorf("invalid update: %v", err)
	}

	return request, 0, nil
}

// schemaError reduces a validation error to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	location := ve.InstanceLocation
	if location == "" {
		location = "/"
	}
	return fmt.Errorf("invalid update at %s: %s", location, ve.Message)
}
