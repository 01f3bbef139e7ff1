package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Warnf(t *testing.T) {
	var got []string
	SetWarningHandler(func(msg string) { got = append(got, msg) })
	defer SetWarningHandler(nil)

	Warnf("plain warning")
	Warnf("value %d out of %d", 3, 7)
	require.Equal(t, []string{"plain warning", "value 3 out of 7"}, got)
}

func Test_Warnf_NilHandlerDiscards(t *testing.T) {
	SetWarningHandler(nil)
	// must not panic
	Warnf("dropped %s", "silently")
}

func Test_CleanNulls(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		fields   []string
		expected map[string]any
	}{
		{
			name:     "null_field_removed",
			input:    map[string]any{"type": "Feature", "bbox": nil},
			fields:   []string{"bbox"},
			expected: map[string]any{"type": "Feature"},
		},
		{
			name:     "non_null_field_kept",
			input:    map[string]any{"type": "Feature", "bbox": []float64{0, 0, 1, 1}},
			fields:   []string{"bbox"},
			expected: map[string]any{"type": "Feature", "bbox": []float64{0, 0, 1, 1}},
		},
		{
			name:     "absent_field_ignored",
			input:    map[string]any{"type": "Feature"},
			fields:   []string{"bbox", "id"},
			expected: map[string]any{"type": "Feature"},
		},
		{
			name:     "extended_field_set",
			input:    map[string]any{"type": "Feature", "bbox": nil, "id": nil, "geometry": nil},
			fields:   []string{"bbox", "id"},
			expected: map[string]any{"type": "Feature", "geometry": nil},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, CleanNulls(tt.input, tt.fields...))
		})
	}
}
