package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  UserRegisterRequest
		ok   bool
	}{
		{
			name: "valid",
			req:  UserRegisterRequest{Email: "asha@example.com", Password: "supersecret", FullName: "Asha Rao"},
			ok:   true,
		},
		{
			name: "missing email",
			req:  UserRegisterRequest{Password: "supersecret", FullName: "Asha Rao"},
		},
		{
			name: "malformed email",
			req:  UserRegisterRequest{Email: "asha@", Password: "supersecret", FullName: "Asha Rao"},
		},
		{
			name: "short password",
			req:  UserRegisterRequest{Email: "asha@example.com", Password: "short", FullName: "Asha Rao"},
		},
		{
			name: "missing name",
			req:  UserRegisterRequest{Email: "asha@example.com", Password: "supersecret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUserAdminActionRequestValidate(t *testing.T) {
	for _, action := range []AdminAction{ActionPromote, ActionDemote, ActionBan, ActionUnban} {
		req := UserAdminActionRequest{UserID: 7, Action: action}
		assert.NoError(t, req.Validate())
	}

	assert.Error(t, (&UserAdminActionRequest{UserID: 0, Action: ActionBan}).Validate())
	assert.Error(t, (&UserAdminActionRequest{UserID: 7, Action: "delete"}).Validate())
}
