package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccess(t *testing.T) {
	env := Success(map[string]string{"token": "abc"})

	assert.Equal(t, StatusSuccess, env.Status)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Message)
}

func TestFail(t *testing.T) {
	env := Fail("Invalid password")

	assert.Equal(t, StatusFail, env.Status)
	assert.Nil(t, env.Data)
	assert.Equal(t, "Invalid password", env.Message)
}

func TestError(t *testing.T) {
	env := Error("Something went wrong")

	assert.Equal(t, StatusError, env.Status)
	assert.Nil(t, env.Data)
	assert.Equal(t, "Something went wrong", env.Message)
}

func TestEnvelope_JSONShape(t *testing.T) {
	raw, err := json.Marshal(Fail("User not found"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"status":"fail","data":null,"message":"User not found"}`, string(raw))

	raw, err = json.Marshal(Success(nil))
	assert.NoError(t, err)
	// message is omitted on success
	assert.JSONEq(t, `{"status":"success","data":null}`, string(raw))
}

func TestFailWithData(t *testing.T) {
	env := FailWithData("Validation failed", []string{"Title is required."})

	assert.Equal(t, StatusFail, env.Status)
	assert.Equal(t, []string{"Title is required."}, env.Data)
}
