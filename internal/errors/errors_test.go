package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"unknown type", "E001", "Unrecognised element type", CategoryRuntime},
		{"config", "E010", "Invalid configuration file", CategoryConfig},
		{"document", "E021", "Application document references an unknown element type", CategoryValidation},
		{"unregistered code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			assert.Equal(t, tt.wantMsg, err.Message)
			assert.Equal(t, tt.wantCat, err.Category)
			assert.Equal(t, tt.code, err.Code)
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E001").WithDetailf("type %q", "Lable")
	assert.Equal(t, `E001: Unrecognised element type: type "Lable"`, err.Error())

	plain := &Error{Message: "plain"}
	assert.Equal(t, "plain", plain.Error())
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := New("E004").Wrap(cause)

	require.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("render: %w", err)
	var ve *Error
	require.ErrorAs(t, wrapped, &ve)
	assert.Equal(t, "E004", ve.Code)
	assert.True(t, HasCode(wrapped, "E004"))
	assert.False(t, HasCode(wrapped, "E001"))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil, "E010"))

	orig := New("E020")
	assert.Same(t, orig, FromError(orig, "E010"))

	got := FromError(stderrors.New("bad yaml"), "E020")
	assert.Equal(t, "E020", got.Code)
	assert.EqualError(t, got.Wrapped, "bad yaml")
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E001").WithDetail("Lable").Format()
	assert.True(t, strings.HasPrefix(out, "ERROR E001: Unrecognised element type"))
	assert.Contains(t, out, "Lable")
	assert.Contains(t, out, "Hint: ")
}
