package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompilesAllSchemas(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)

	// every request handler refers to one of these by name
	for _, name := range []string{
		"register", "login",
		"manufacturer", "brand", "designer", "creator", "institution",
		"rfq", "rfq_response",
		"project", "milestone", "project_material",
		"message", "review", "certification",
		"verification_request", "verification_decision",
		"loan_product", "loan_application", "loan_decision",
		"enrollment_progress", "landing", "chat",
	} {
		if err := reg.Check(context.Background(), name, []byte(`{}`)); err != nil {
			// a validation failure is fine here; a missing schema is not
			assert.NotContains(t, err.Error(), "unknown schema", "schema %s should exist", name)
		}
	}
}

func TestCheck(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name    string
		schema  string
		payload string
		wantErr bool
	}{
		{"UnknownSchema", "nope", `{}`, true},
		{"NotJSON", "rfq", `not json`, true},
		{"Rfq_Valid", "rfq", `{"title":"tees","quantity":10}`, false},
		{"Rfq_MissingTitle", "rfq", `{"quantity":10}`, true},
		{"Rfq_ZeroQuantity", "rfq", `{"title":"tees","quantity":0}`, true},
		{"Rfq_BadStatus", "rfq", `{"title":"tees","quantity":1,"status":"nope"}`, true},
		{"Register_AdminRole", "register", `{"email":"a@b.cd","password":"longenough","role":"admin"}`, true},
		{"Register_Valid", "register", `{"email":"a@b.cd","password":"longenough","role":"brand"}`, false},
		{"Review_RatingOutOfRange", "review", `{"rating":6}`, true},
		{"Progress_TooHigh", "enrollment_progress", `{"progress":101}`, true},
		{"Chat_EmptyMessage", "chat", `{"message":""}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Check(ctx, tt.schema, []byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
