// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSearchRequest(t *testing.T) {
	tests := []struct {
		name      string
		payload   map[string]interface{}
		wantValid bool
	}{
		{
			name:      "minimal valid request",
			payload:   map[string]interface{}{"query": "marketing students", "companyId": "co1"},
			wantValid: true,
		},
		{
			name: "all optional fields",
			payload: map[string]interface{}{
				"query": "x", "companyId": "co1", "projectId": "p1",
				"mode": "shortlist", "tier": "professional",
			},
			wantValid: true,
		},
		{
			name:      "missing query",
			payload:   map[string]interface{}{"companyId": "co1"},
			wantValid: false,
		},
		{
			name:      "empty query",
			payload:   map[string]interface{}{"query": "", "companyId": "co1"},
			wantValid: false,
		},
		{
			name:      "unknown mode",
			payload:   map[string]interface{}{"query": "x", "companyId": "co1", "mode": "browse"},
			wantValid: false,
		},
		{
			name:      "unexpected field rejected",
			payload:   map[string]interface{}{"query": "x", "companyId": "co1", "limit": 100},
			wantValid: false,
		},
		{
			name:      "wrong type",
			payload:   map[string]interface{}{"query": 42, "companyId": "co1"},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations, err := ValidateSearchRequest(tt.payload)
			require.NoError(t, err)
			if tt.wantValid {
				assert.Empty(t, violations)
			} else {
				assert.NotEmpty(t, violations)
			}
		})
	}
}
