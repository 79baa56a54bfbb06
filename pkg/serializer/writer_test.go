// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/errorsink/pkg/errors"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name   string
		status int
		data   any
	}{
		{name: "created", status: http.StatusCreated, data: map[string]string{"status": "accepted"}},
		{name: "bad request", status: http.StatusBadRequest, data: map[string]any{"code": "INVALID_REQUEST"}},
		{name: "nil", status: http.StatusOK, data: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondJSON(w, tt.status, tt.data)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.True(t, json.Valid(w.Body.Bytes()))
		})
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, map[string]float64{"bad": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEqual(t, "application/json", w.Header().Get("Content-Type"))
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Message string `json:"message"`
	}

	tests := []struct {
		name    string
		body    string
		max     int64
		want    string
		wantErr bool
	}{
		{name: "valid", body: `{"message":"hi"}`, max: 1024, want: "hi"},
		{name: "trailing whitespace", body: "{\"message\":\"hi\"}\n", max: 1024, want: "hi"},
		{name: "empty", body: "", max: 1024, wantErr: true},
		{name: "malformed", body: `{"message":`, max: 1024, wantErr: true},
		{name: "two values", body: `{"message":"a"}{"message":"b"}`, max: 1024, wantErr: true},
		{name: "too large", body: `{"message":"` + strings.Repeat("x", 64) + `"}`, max: 16, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/errors", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(r, tt.max, &p)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Message)
		})
	}
}

type report struct {
	Status  string            `json:"status"`
	Attempt int               `json:"attempt"`
	Labels  map[string]string `json:"labels,omitempty"`
	Tags    []string          `json:"tags,omitempty"`
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "YAML", " table "} {
		f, err := ParseFormat(s)
		require.NoError(t, err, s)
		assert.False(t, f.IsUnknown())
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestWriter_Formats(t *testing.T) {
	data := report{
		Status:  "delivered",
		Attempt: 3,
		Labels:  map[string]string{"env": "prod"},
		Tags:    []string{"a", "b"},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatJSON, &buf).Serialize(data))

		var got report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, data, got)
	})

	t.Run("yaml uses json keys", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatYAML, &buf).Serialize(data))

		out := buf.String()
		assert.Contains(t, out, "status: delivered")
		assert.Contains(t, out, "attempt: 3")
		assert.Contains(t, out, "env: prod")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatTable, &buf).Serialize(data))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2+5)
		assert.True(t, strings.HasPrefix(lines[0], "FIELD"))
		assert.Contains(t, buf.String(), "labels.env")
		assert.Contains(t, buf.String(), "tags.[1]")
	})

	t.Run("table empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatTable, &buf).Serialize(map[string]any{}))
		assert.Equal(t, "<empty>\n", buf.String())
	})

	t.Run("unknown falls back to json", func(t *testing.T) {
		w := NewWriter(Format("xml"), &bytes.Buffer{})
		assert.Equal(t, FormatJSON, w.Format())
	})
}
