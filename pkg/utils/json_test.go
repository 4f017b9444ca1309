package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string
	Cells []int
}

func TestUnmarshalJson(t *testing.T) {
	want := payload{Name: "move", Cells: []int{1, 2}}
	tests := []struct {
		name string
		in   any
	}{
		{name: "value", in: want},
		{name: "pointer", in: &want},
		{name: "decoded map", in: map[string]any{"Name": "move", "Cells": []any{1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalJson[payload](tt.in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestUnmarshalJsonMismatch(t *testing.T) {
	_, err := UnmarshalJson[payload](map[string]any{"Name": 42})
	assert.Error(t, err)
}

func TestUnmarshalJsonNilPointer(t *testing.T) {
	got, err := UnmarshalJson[payload]((*payload)(nil))
	require.NoError(t, err)
	assert.Equal(t, payload{}, got)
}
