package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    int
		wantErr bool
	}{
		"number":         {input: `{"age": 30}`, want: 30},
		"numeric string": {input: `{"age": "42"}`, want: 42},
		"padded string":  {input: `{"age": " 18 "}`, want: 18},
		"null":           {input: `{"age": null}`, want: 0},
		"missing":        {input: `{}`, want: 0},
		"word":           {input: `{"age": "thirty"}`, wantErr: true},
		"fraction":       {input: `{"age": 30.5}`, wantErr: true},
		"boolean":        {input: `{"age": true}`, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var req createUserRequest
			err := json.Unmarshal([]byte(tt.input), &req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, int(req.Age))
		})
	}
}
