package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickPayload struct {
	Indices []int `json:"indices"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	result, err := ExtractJSON[pickPayload](`{"indices":[0,2,4]}`, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, result.Indices)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"indices\":[1]}\n```"
	result, err := ExtractJSON[pickPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, result.Indices)
}

func TestExtractJSON_SurroundingTextAndComments(t *testing.T) {
	raw := "Here you go:\n{\"indices\": [3, 1] // best matches\n}\nEnjoy!"
	result, err := ExtractJSON[pickPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, result.Indices)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	type named struct {
		Name string `json:"name"`
	}
	result, err := ExtractJSON[named](`{"name":"curly } brace"}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "curly } brace", result.Name)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[pickPayload]("I cannot help with that.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[pickPayload](`{"indices": [1, oops]}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidatorRejects(t *testing.T) {
	validator := func(p pickPayload) error {
		if len(p.Indices) == 0 {
			return errors.New("no indices")
		}
		return nil
	}
	_, err := ExtractJSON[pickPayload](`{"indices":[]}`, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "no indices")
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, "plain", StripCodeFences("  plain \n"))
}
