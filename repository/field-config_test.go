package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionValueKeepsJSONKind(t *testing.T) {
	var options []Option
	err := json.Unmarshal([]byte(`[{"label":"One","value":1},{"label":"Two","value":"2"},{"label":"Half","value":0.5}]`), &options)
	require.NoError(t, err)

	assert.Equal(t, OptionValue{Text: "1", IsNumber: true}, options[0].Value)
	assert.Equal(t, OptionValue{Text: "2"}, options[1].Value)
	assert.Equal(t, "0.5", options[2].Value.String())

	encoded, err := json.Marshal(options)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"label":"One","value":1},{"label":"Two","value":"2"},{"label":"Half","value":0.5}]`, string(encoded))
}

func TestOptionValueRejectsObjects(t *testing.T) {
	var option Option
	err := json.Unmarshal([]byte(`{"label":"x","value":{"nested":true}}`), &option)
	assert.Error(t, err)
}

func TestOptionValueNullIsEmpty(t *testing.T) {
	var option Option
	require.NoError(t, json.Unmarshal([]byte(`{"label":"x","value":null}`), &option))
	assert.True(t, option.Value.IsZero())
}

func TestFieldConfigsColumnRoundTrip(t *testing.T) {
	configs := FieldConfigs{
		{Component: ComponentSelect, Key: "actionBy", Label: "Ball By", Mode: SelectQuery, Query: "players", Multiple: true},
		{Component: ComponentInput, Key: "rating", Label: "Rating", Type: InputNumber, Required: true},
	}
	value, err := configs.Value()
	require.NoError(t, err)

	var scanned FieldConfigs
	switch v := value.(type) {
	case string:
		require.NoError(t, scanned.Scan(v))
	case []byte:
		require.NoError(t, scanned.Scan(v))
	default:
		t.Fatalf("unexpected column value %T", value)
	}
	assert.Equal(t, configs, scanned)
}

func TestEmptyColumnsScanToEmptyCollections(t *testing.T) {
	var configs FieldConfigs
	require.NoError(t, configs.Scan([]byte("null")))
	assert.NotNil(t, configs)
	assert.Empty(t, configs)

	var subCategories SubCategories
	require.NoError(t, subCategories.Scan([]byte("{}")))
	assert.NotNil(t, subCategories)

	value, err := FieldConfigs(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(toBytes(value)))
}

func TestSubCategoriesColumnRoundTrip(t *testing.T) {
	subCategories := SubCategories{
		"no-ball": {Label: "No Ball", Config: FieldConfigs{
			{Component: ComponentInput, Key: "runs", Label: "Runs", Type: InputNumber},
		}},
	}
	value, err := subCategories.Value()
	require.NoError(t, err)

	var scanned SubCategories
	require.NoError(t, scanned.Scan(toBytes(value)))
	assert.Equal(t, subCategories, scanned)
}

func toBytes(value any) []byte {
	switch v := value.(type) {
	case string:
		return []byte(v)
	case []byte:
		return v
	}
	return nil
}
