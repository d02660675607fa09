package validation_test

import (
	"encoding/json"
	"errors"
	"testing"

	"katalog/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age" validate:"omitnil,gte=0"`
}

func (signup) Messages() validation.Messages {
	return validation.Messages{
		"name.required": "Please provide a name.",
		"age.type":      "Age must be a whole number.",
	}
}

type filter struct {
	Page string `query:"page" validate:"omitempty,number"`
}

func TestValidator_Validate(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(&signup{Name: "ann", Email: "ann@example.com"}))

	err := v.Validate(&signup{Email: "nope"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Please provide a name."}, verr.Fields["name"])
	require.Len(t, verr.Fields["email"], 1)
	assert.Contains(t, verr.Fields["email"][0], "email")
	assert.Equal(t, "validation failed on email, name", verr.Error())

	age := -1
	err = v.Validate(&signup{Name: "toolong", Email: "ann@example.com", Age: &age})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "age")

	err = v.Validate(&filter{Page: "two"})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "page", "query tag names the field")
}

func TestFromDecodeError(t *testing.T) {
	var s signup
	err := json.Unmarshal([]byte(`{"name":"ann","age":"old"}`), &s)
	require.Error(t, err)

	verr, ok := validation.FromDecodeError(err, &s)
	require.True(t, ok)
	assert.Equal(t, []string{"Age must be a whole number."}, verr.Fields["age"])

	err = json.Unmarshal([]byte(`{"name":5}`), &s)
	verr, ok = validation.FromDecodeError(err, &s)
	require.True(t, ok)
	assert.Equal(t, []string{"name must be a string"}, verr.Fields["name"])

	err = json.Unmarshal([]byte(`{"name":`), &s)
	_, ok = validation.FromDecodeError(err, &s)
	assert.False(t, ok, "syntax errors are not validation failures")
}

func TestError_Add(t *testing.T) {
	e := validation.NewError("price", "first")
	e.Add("price", "second")
	assert.Equal(t, []string{"first", "second"}, e.Fields["price"])
}
