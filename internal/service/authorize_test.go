package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name          string
		identityScope []string
		requiredScope []string
		want          bool
	}{
		{
			name:          "exact match",
			identityScope: []string{"admin"},
			requiredScope: []string{"admin"},
			want:          true,
		},
		{
			name:          "intersection suffices",
			identityScope: []string{"normal", "admin"},
			requiredScope: []string{"admin"},
			want:          true,
		},
		{
			name:          "no intersection",
			identityScope: []string{"normal"},
			requiredScope: []string{"admin"},
			want:          false,
		},
		{
			name:          "empty requirement is open to any identity",
			identityScope: []string{"normal"},
			requiredScope: nil,
			want:          true,
		},
		{
			name:          "empty identity scope never satisfies a requirement",
			identityScope: nil,
			requiredScope: []string{"normal"},
			want:          false,
		},
		{
			name:          "both empty",
			identityScope: nil,
			requiredScope: nil,
			want:          true,
		},
		{
			name:          "any of several required roles",
			identityScope: []string{"auditor"},
			requiredScope: []string{"admin", "auditor"},
			want:          true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.identityScope, tt.requiredScope))
		})
	}
}
