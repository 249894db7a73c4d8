package fields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kin230k/boardsync/internal/client"
	"github.com/kin230k/boardsync/internal/models"
)

type fakeLookup struct {
	options        map[string][]models.FieldOption
	iterations     map[string][]models.Iteration
	optionCalls    int
	iterationCalls int
}

func (f *fakeLookup) FieldOptions(fieldId string) ([]models.FieldOption, error) {
	f.optionCalls++
	return f.options[fieldId], nil
}

func (f *fakeLookup) FieldIterations(fieldId string) ([]models.Iteration, error) {
	f.iterationCalls++
	return f.iterations[fieldId], nil
}

func defs() []models.Field {
	return []models.Field{
		{Id: "F1", Name: "Starts", DataType: models.DataTypeDate},
		{Id: "F2", Name: "Phase ", DataType: models.DataTypeSingleSelect},
		{Id: "F3", Name: "Sprint", DataType: models.DataTypeIteration},
		{Id: "F4", Name: "Estimate", DataType: models.DataTypeNumber},
		{Id: "F5", Name: "Notes", DataType: models.DataTypeText},
		{Id: "F6", Name: "Tracker", DataType: "LABELS"},
	}
}

func newTestResolver() (*Resolver, *fakeLookup) {
	lookup := &fakeLookup{
		options: map[string][]models.FieldOption{
			"F2": {{Id: "opt-1", Name: "Design"}, {Id: "opt-2", Name: "Build"}},
		},
		iterations: map[string][]models.Iteration{
			"F3": {{Id: "it-1", Title: "Sprint 1"}},
		},
	}
	return NewResolver(defs(), lookup), lookup
}

func TestFieldLookupTrimsNames(t *testing.T) {
	r, _ := newTestResolver()

	f, ok := r.Field("Phase")
	require.True(t, ok)
	assert.Equal(t, "F2", f.Id)

	_, ok = r.Field("phase") // case-sensitive
	assert.False(t, ok)
}

func TestResolveOptionCachesPerField(t *testing.T) {
	r, lookup := newTestResolver()

	id, err := r.ResolveOption("F2", "Design")
	require.NoError(t, err)
	assert.Equal(t, "opt-1", id)

	id, err = r.ResolveOption("F2", "Build")
	require.NoError(t, err)
	assert.Equal(t, "opt-2", id)
	assert.Equal(t, 1, lookup.optionCalls, "second lookup served from cache")
}

func TestResolveOptionNotFound(t *testing.T) {
	r, _ := newTestResolver()

	_, err := r.ResolveOption("F2", "Done")
	require.Error(t, err)

	var nf *client.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "option", nf.Kind)
}

func TestResolveIteration(t *testing.T) {
	r, _ := newTestResolver()

	id, err := r.ResolveIteration("F3", "Sprint 1")
	require.NoError(t, err)
	assert.Equal(t, "it-1", id)

	_, err = r.ResolveIteration("F3", "Sprint 9")
	var nf *client.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "3.5", Clean(` "3.5" `))
	assert.Equal(t, "plain", Clean("plain"))
	assert.Equal(t, "", Clean(`""`))
}

func TestCoerceNumber(t *testing.T) {
	r, _ := newTestResolver()
	field, _ := r.Field("Estimate")

	v, err := r.Coerce(field, "Estimate", "3.5")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"number": 3.5}, v)

	_, err = r.Coerce(field, "Estimate", "abc")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCoerceDatePassesThrough(t *testing.T) {
	r, _ := newTestResolver()
	field, _ := r.Field("Starts")

	v, err := r.Coerce(field, "Starts", "2024-02-09")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"date": "2024-02-09"}, v)
}

func TestCoerceSingleSelect(t *testing.T) {
	r, _ := newTestResolver()
	field, _ := r.Field("Phase")

	v, err := r.Coerce(field, "Phase", "Build")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"singleSelectOptionId": "opt-2"}, v)

	// An unmatched option is an error, never a silent default.
	_, err = r.Coerce(field, "Phase", "Done")
	var nf *client.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCoerceText(t *testing.T) {
	r, _ := newTestResolver()

	field, _ := r.Field("Notes")
	v, err := r.Coerce(field, "Notes", "hello")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"text": "hello"}, v)

	// Reference columns stay text regardless of the field's data type.
	numField, _ := r.Field("Estimate")
	numField.DataType = "OTHER"
	v, err = r.Coerce(numField, "Parent issue", "https://github.com/a/b/issues/3")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"text": "https://github.com/a/b/issues/3"}, v)
}

func TestCoerceUnknownTypePassesThrough(t *testing.T) {
	r, _ := newTestResolver()
	field, _ := r.Field("Tracker")

	v, err := r.Coerce(field, "Tracker", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "whatever", v)
}

func TestResolveOptionLookupError(t *testing.T) {
	lookup := &failingLookup{}
	r := NewResolver(defs(), lookup)

	_, err := r.ResolveOption("F2", "Design")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBoom))
}

var errBoom = errors.New("boom")

type failingLookup struct{}

func (f *failingLookup) FieldOptions(string) ([]models.FieldOption, error) {
	return nil, errBoom
}

func (f *failingLookup) FieldIterations(string) ([]models.Iteration, error) {
	return nil, errBoom
}
