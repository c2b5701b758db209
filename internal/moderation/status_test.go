package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Status
		wantErr bool
	}{
		{name: "active", input: "active", want: StatusActive},
		{name: "inactive", input: "inactive", want: StatusInactive},
		{name: "pending", input: "pending", want: StatusPending},
		{name: "rejected", input: "rejected", want: StatusRejected},
		{name: "approved normalizes to active", input: "approved", want: StatusActive},
		{name: "unknown value", input: "banana", wantErr: true},
		{name: "empty value", input: "", wantErr: true},
		{name: "case sensitive", input: "Active", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTarget(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsTransitionAllowed(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{name: "pending to active", from: StatusPending, to: StatusActive, want: true},
		{name: "pending to rejected", from: StatusPending, to: StatusRejected, want: true},
		{name: "active to inactive", from: StatusActive, to: StatusInactive, want: true},
		{name: "inactive to active", from: StatusInactive, to: StatusActive, want: true},
		{name: "rejected to active requires pending reset", from: StatusRejected, to: StatusActive, want: false},
		{name: "inactive to rejected", from: StatusInactive, to: StatusRejected, want: false},
		{name: "rejected reset to pending", from: StatusRejected, to: StatusPending, want: true},
		{name: "inactive reset to pending", from: StatusInactive, to: StatusPending, want: true},
		{name: "same state no-op", from: StatusActive, to: StatusActive, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransitionAllowed(tt.from, tt.to))
		})
	}
}

func TestVisibleFor(t *testing.T) {
	assert.True(t, VisibleFor(StatusActive))
	assert.False(t, VisibleFor(StatusInactive))
	assert.False(t, VisibleFor(StatusRejected))
	assert.False(t, VisibleFor(StatusPending))
}
