package validation

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupBody struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required"`
	Name     string   `json:"name" binding:"required,max=5"`
	Rate     *float64 `json:"communication_rate" binding:"omitempty,gte=0"`
}

func TestToDetails_ValidationErrors(t *testing.T) {
	Init()
	rate := -1.0
	err := binding.Validator.ValidateStruct(&signupBody{Email: "nope", Name: "toolong", Rate: &rate})

	got := ToDetails(err)
	assert.Equal(t, "must be a valid email address", got["email"])
	assert.Equal(t, "is required", got["password"])
	assert.Equal(t, "max length 5", got["name"])
	assert.Equal(t, "must be greater than or equal to 0", got["communication_rate"])
}

func TestToDetails_JSONErrors(t *testing.T) {
	var v signupBody
	err := json.Unmarshal([]byte(`{"email":`), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"email":1}`), &v)
	assert.Equal(t, "must be a string", ToDetails(err)["email"])

	assert.Nil(t, ToDetails(nil))
}

func TestHasTag(t *testing.T) {
	rate := -1.0
	err := binding.Validator.ValidateStruct(&signupBody{Email: "nope", Password: "pw", Name: "ok", Rate: &rate})
	require.Error(t, err)
	assert.True(t, IsFieldError(err))
	assert.True(t, HasTag(err, "email"))
	assert.False(t, HasTag(err, "required"))

	var v signupBody
	decodeErr := json.Unmarshal([]byte(`{"email":`), &v)
	assert.False(t, IsFieldError(decodeErr))
	assert.False(t, HasTag(decodeErr, "email"))
}
