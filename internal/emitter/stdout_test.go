package emitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/sagescan/pkg/record"
)

func TestStdoutEmitterWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	e := NewStdoutEmitter(&buf)

	ep := &record.Endpoint{
		URN:       record.MakeDeploymentURN("ep-a", "PROD"),
		Name:      "ep-a",
		ARN:       "arn:ep/a",
		CreatedAt: 1680350400000,
		Status:    record.StatusInService,
	}
	model := &record.Model{
		URN:         record.MakeModelURN("model-a", "PROD"),
		Name:        "model-a",
		ARN:         "arn:model/a",
		Deployments: []string{ep.URN},
	}

	require.NoError(t, e.Emit(context.Background(), ep))
	require.NoError(t, e.Emit(context.Background(), model))
	require.NoError(t, e.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "endpoint", first["kind"])
	assert.Equal(t, ep.URN, first["urn"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "model", second["kind"])
	inner, ok := second["record"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "model-a", inner["name"])
}

type stubEmitter struct {
	emitted []string
	emitErr error
	closed  bool
}

func (s *stubEmitter) Emit(_ context.Context, rec record.Record) error {
	if s.emitErr != nil {
		return s.emitErr
	}
	s.emitted = append(s.emitted, rec.RecordURN())
	return nil
}

func (s *stubEmitter) Close() error {
	s.closed = true
	return nil
}

func TestMultiEmitterFansOut(t *testing.T) {
	a := &stubEmitter{}
	b := &stubEmitter{}
	m := NewMultiEmitter(a, b)

	ep := &record.Endpoint{URN: "urn:ep"}
	require.NoError(t, m.Emit(context.Background(), ep))
	require.NoError(t, m.Close())

	assert.Equal(t, []string{"urn:ep"}, a.emitted)
	assert.Equal(t, []string{"urn:ep"}, b.emitted)
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestMultiEmitterStopsOnError(t *testing.T) {
	a := &stubEmitter{emitErr: errors.New("sink down")}
	b := &stubEmitter{}
	m := NewMultiEmitter(a, b)

	err := m.Emit(context.Background(), &record.Endpoint{URN: "urn:ep"})
	require.Error(t, err)
	assert.Empty(t, b.emitted)
}
