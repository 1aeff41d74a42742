package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin_ClaimShapes(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]interface{}
		want   bool
	}{
		{"nil claims", nil, false},
		{"no groups claim", map[string]interface{}{"sub": "abc"}, false},
		{"single string match", map[string]interface{}{"cognito:groups": "ADMIN"}, true},
		{"single string miss", map[string]interface{}{"cognito:groups": "USERS"}, false},
		{"string slice match", map[string]interface{}{"cognito:groups": []string{"USERS", "ADMIN"}}, true},
		{"interface slice match", map[string]interface{}{"cognito:groups": []interface{}{"USERS", "ADMIN"}}, true},
		{"interface slice miss", map[string]interface{}{"cognito:groups": []interface{}{"USERS"}}, false},
		{"interface slice non-string entries", map[string]interface{}{"cognito:groups": []interface{}{1, true}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAdmin(tt.claims))
		})
	}
}

func TestCaller_IsAdminReadsClaimsOnly(t *testing.T) {
	// Admin status must come from the presented token, not any stored field.
	caller := Caller{
		AccountID: "ACCOUNT#abc",
		Claims:    map[string]interface{}{"cognito:groups": []interface{}{"ADMIN"}},
	}
	assert.True(t, caller.IsAdmin())

	caller.Claims = nil
	assert.False(t, caller.IsAdmin())
}
