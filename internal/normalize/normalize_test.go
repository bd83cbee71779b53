package normalize_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/normalize"
	"github.com/tenantbot/api-registry/internal/platform/logger"
)

func decode(t *testing.T, raw string) normalize.Input {
	t.Helper()
	var in normalize.Input
	require.NoError(t, json.Unmarshal([]byte(raw), &in))
	return in
}

func TestInputUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		form normalize.Form
	}{
		{"null", `null`, normalize.FormAbsent},
		{"array", `[{"key":"a","value":"b"}]`, normalize.FormArray},
		{"encoded", `"{\"a\":\"b\"}"`, normalize.FormEncoded},
		{"map", `{"a":"b"}`, normalize.FormMap},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.form, decode(t, tc.raw).Form)
		})
	}
}

func TestInputUnmarshalJSON_RejectsScalars(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`42`, `true`} {
		var in normalize.Input
		assert.Error(t, json.Unmarshal([]byte(raw), &in), raw)
	}
}

func TestInputAbsentFieldInStruct(t *testing.T) {
	t.Parallel()

	var body struct {
		Headers normalize.Input `json:"headers"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &body))
	assert.True(t, body.Headers.IsZero())
}

func TestHeaders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name string
		in   normalize.Input
		want domain.Headers
	}{
		{
			name: "absent",
			in:   normalize.Input{},
			want: domain.Headers{},
		},
		{
			name: "array of pairs",
			in: normalize.FromEntries(
				map[string]any{"key": "Content-Type", "value": "application/json"},
				map[string]any{"key": "X-Version", "value": "2"},
			),
			want: domain.Headers{"Content-Type": "application/json", "X-Version": "2"},
		},
		{
			name: "array skips incomplete entries",
			in: normalize.FromEntries(
				map[string]any{"key": "Accept", "value": "text/plain"},
				map[string]any{"key": "", "value": "orphan"},
				map[string]any{"value": "no key"},
				map[string]any{"key": "No-Value"},
				map[string]any{"key": "Empty-Value", "value": ""},
				map[string]any{"key": "Null-Value", "value": nil},
			),
			want: domain.Headers{"Accept": "text/plain"},
		},
		{
			name: "map passes through",
			in:   normalize.FromMap(map[string]any{"Content-Type": "application/json"}),
			want: domain.Headers{"Content-Type": "application/json"},
		},
		{
			name: "map stringifies scalars and drops null",
			in:   normalize.FromMap(map[string]any{"X-Retry": json.Number("3"), "X-Debug": true, "X-Gone": nil}),
			want: domain.Headers{"X-Retry": "3", "X-Debug": "true"},
		},
		{
			name: "encoded object",
			in:   normalize.FromEncoded(`{"Authorization":"Bearer abc"}`),
			want: domain.Headers{"Authorization": "Bearer abc"},
		},
		{
			name: "encoded array",
			in:   normalize.FromEncoded(`[{"key":"Accept","value":"*/*"}]`),
			want: domain.Headers{"Accept": "*/*"},
		},
		{
			name: "double encoded",
			in:   normalize.FromEncoded(`"{\"Accept\":\"*/*\"}"`),
			want: domain.Headers{"Accept": "*/*"},
		},
		{
			name: "empty string",
			in:   normalize.FromEncoded("  "),
			want: domain.Headers{},
		},
		{
			name: "invalid JSON",
			in:   normalize.FromEncoded("{not json"),
			want: domain.Headers{},
		},
		{
			name: "encoded scalar",
			in:   normalize.FromEncoded("17"),
			want: domain.Headers{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalize.Headers(ctx, "headers", tc.in)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHeaders_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	canonical := domain.Headers{"Content-Type": "application/json"}
	fromMap := normalize.Headers(ctx, "headers", decode(t, `{"Content-Type":"application/json"}`))
	fromArray := normalize.Headers(ctx, "headers", decode(t, `[{"key":"Content-Type","value":"application/json"}]`))

	assert.Equal(t, canonical, fromMap)
	assert.Equal(t, canonical, fromArray)

	// Feeding the canonical output back in must not change it.
	b, err := json.Marshal(fromMap)
	require.NoError(t, err)
	again := normalize.Headers(ctx, "headers", decode(t, string(b)))
	assert.Equal(t, canonical, again)
}

func TestHeaders_InvalidEncodedLogsWithoutValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := logger.WithLogger(context.Background(), l)

	got := normalize.Headers(ctx, "apiData.headers", normalize.FromEncoded("{secret-token"))

	assert.Empty(t, got)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"field":"apiData.headers"`)
	assert.NotContains(t, buf.String(), "secret-token")
}

func TestParams(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name string
		in   normalize.Input
		want domain.Params
	}{
		{
			name: "absent",
			in:   normalize.Input{},
			want: domain.Params{},
		},
		{
			name: "array with requirement",
			in: normalize.FromEntries(
				map[string]any{"name": "q", "type": "string", "requirement": "required"},
				map[string]any{"name": "limit", "type": "integer", "requirement": "optional"},
				map[string]any{"name": "page"},
			),
			want: domain.Params{
				"q":     {Type: "string", Required: true},
				"limit": {Type: "integer", Required: false},
				"page":  {Type: "string", Required: false},
			},
		},
		{
			name: "array skips entries without name",
			in: normalize.FromEntries(
				map[string]any{"type": "string", "requirement": "required"},
				map[string]any{"name": "", "type": "string"},
			),
			want: domain.Params{},
		},
		{
			name: "canonical map passes through",
			in: normalize.FromMap(map[string]any{
				"q": map[string]any{"type": "string", "required": true},
			}),
			want: domain.Params{"q": {Type: "string", Required: true}},
		},
		{
			name: "map with bare type",
			in:   normalize.FromMap(map[string]any{"id": "uuid", "tag": ""}),
			want: domain.Params{"id": {Type: "uuid"}, "tag": {Type: "string"}},
		},
		{
			name: "encoded array",
			in:   normalize.FromEncoded(`[{"name":"city","type":"string","requirement":"required"}]`),
			want: domain.Params{"city": {Type: "string", Required: true}},
		},
		{
			name: "invalid JSON",
			in:   normalize.FromEncoded("[{"),
			want: domain.Params{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalize.Params(ctx, "params", tc.in)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParams_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	first := normalize.Params(ctx, "params", decode(t, `[{"name":"q","type":"string","requirement":"required"}]`))
	b, err := json.Marshal(first)
	require.NoError(t, err)

	second := normalize.Params(ctx, "params", decode(t, string(b)))
	assert.Equal(t, first, second)
}
