package parser

import (
	"encoding/json"
	"testing"

	"tagcat/app_error"
	"tagcat/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ballJSON = `{
	"gameId": " game-1 ",
	"group": {"value": "ball"},
	"name": "Ball",
	"precisionType": "long",
	"status": "Active",
	"isParentTag": true,
	"nameStructure": ["name", " over ", ""],
	"metadataConfig": [
		{"component": "input", "key": "over", "label": "Over"},
		{"component": "Select", "key": "ballType", "label": "Ball Type", "type": "number", "query": "ignored",
		 "options": [{"label": "UnderArm", "value": "under-arm"}, {"label": "Six", "value": 6}]}
	],
	"subCategories": {
		"no-ball": {"label": "No Ball", "config": [{"component": "select", "key": "by", "label": "By", "mode": "query", "query": "players"}]}
	}
}`

func decodeInput(t *testing.T, data string) *TagCategoryInput {
	t.Helper()
	var input TagCategoryInput
	require.NoError(t, json.Unmarshal([]byte(data), &input))
	return &input
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var validationError *app_error.ValidationError
	require.ErrorAs(t, err, &validationError)
	result := make(map[string]string)
	for _, fieldError := range validationError.Errors {
		result[fieldError.Field] = fieldError.Message
	}
	return result
}

func TestValidateTagCategoryNormalizes(t *testing.T) {
	category, err := ValidateTagCategory(decodeInput(t, ballJSON))
	require.NoError(t, err)

	assert.Equal(t, "game-1", category.GameId)
	assert.Equal(t, repository.Option{Label: "Ball", Value: repository.StringValue("ball")}, category.Group)
	assert.Equal(t, repository.PrecisionLong, category.PrecisionType)
	assert.Equal(t, repository.StatusActive, category.Status)
	assert.True(t, category.IsParentTag)
	assert.False(t, category.IsReplay)
	assert.False(t, category.Deleted)
	assert.Equal(t, []string{"name", "over"}, []string(category.NameStructure))

	require.Len(t, category.MetadataConfig, 2)
	assert.Equal(t, repository.InputText, category.MetadataConfig[0].Type)
	selectField := category.MetadataConfig[1]
	assert.Equal(t, repository.ComponentSelect, selectField.Component)
	assert.Equal(t, repository.SelectOptions, selectField.Mode)
	assert.Empty(t, selectField.Type)
	assert.Empty(t, selectField.Query)
	assert.Equal(t, repository.OptionValue{Text: "6", IsNumber: true}, selectField.Options[1].Value)

	sub := category.SubCategories["no-ball"]
	assert.Equal(t, "players", sub.Config[0].Query)
	assert.Nil(t, sub.Config[0].Options)
}

func TestValidateTagCategoryDefaultsEmptyCollections(t *testing.T) {
	category, err := ValidateTagCategory(decodeInput(t, `{
		"gameId": "g", "group": {"label": "Team", "value": "team"}, "name": "Team",
		"precisionType": "SHORT", "status": "INACTIVE"
	}`))
	require.NoError(t, err)
	assert.NotNil(t, category.MetadataConfig)
	assert.NotNil(t, category.SubCategories)
	assert.NotNil(t, category.NameStructure)
	assert.Equal(t, "Team", category.Group.Label)
}

func TestValidateTagCategoryReportsEveryField(t *testing.T) {
	_, err := ValidateTagCategory(decodeInput(t, `{
		"name": "  ",
		"precisionType": "MEDIUM",
		"metadataConfig": [
			{"component": "slider", "key": "a", "label": "A"},
			{"component": "input", "key": "", "label": "B", "type": "date"},
			{"component": "select", "key": "c", "label": "C", "mode": "remote"}
		],
		"subCategories": {
			"": {"label": "Blank", "config": []},
			"wide": {"label": "Wide", "config": [{"component": "input", "label": "Runs"}]}
		}
	}`))
	errs := fieldErrors(t, err)

	assert.Equal(t, map[string]string{
		"gameId":                           "is required",
		"group.value":                      "is required",
		"name":                             "is required",
		"precisionType":                    "must be one of [LONG, SHORT]",
		"status":                           "is required",
		"metadataConfig[0].component":      "must be one of [input, select]",
		"metadataConfig[1].key":            "is required",
		"metadataConfig[1].type":           "must be one of [text, number]",
		"metadataConfig[2].mode":           "must be one of [options, query]",
		"subCategories":                    "sub-category key is required",
		"subCategories.wide.config[0].key": "is required",
	}, errs)
	assert.Equal(t, 400, app_error.HTTPStatus(err))
}

func TestValidateTagCategoryAcceptsDegenerateSelects(t *testing.T) {
	category, err := ValidateTagCategory(decodeInput(t, `{
		"gameId": "g", "group": {"value": "ball"}, "name": "Ball", "precisionType": "LONG", "status": "ACTIVE",
		"metadataConfig": [
			{"component": "select", "key": "a", "label": "A", "mode": "options"},
			{"component": "select", "key": "b", "label": "B", "mode": "query"}
		]
	}`))
	require.NoError(t, err)
	assert.Len(t, category.MetadataConfig, 2)
}

func TestValidateTagCategoryNumericGroupValue(t *testing.T) {
	category, err := ValidateTagCategory(decodeInput(t, `{
		"gameId": "g", "group": {"label": "Seven", "value": 7}, "name": "Seven", "precisionType": "LONG", "status": "ACTIVE"
	}`))
	require.NoError(t, err)
	assert.Equal(t, "7", category.Group.Value.String())
	assert.True(t, category.Group.Value.IsNumber)
}

func TestValidateTagCategoryUpdateOnlyChecksPresentFields(t *testing.T) {
	patch, err := ValidateTagCategoryUpdate(decodeInput(t, `{"status": "inactive"}`))
	require.NoError(t, err)
	require.NotNil(t, patch.Status)
	assert.Equal(t, repository.StatusInactive, *patch.Status)
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.GameId)
	assert.Nil(t, patch.MetadataConfig)
	assert.Nil(t, patch.NameStructure)
}

func TestValidateTagCategoryUpdateRejectsInvalidFields(t *testing.T) {
	_, err := ValidateTagCategoryUpdate(decodeInput(t, `{
		"name": "",
		"status": "ARCHIVED",
		"metadataConfig": [{"component": "input", "label": "No key"}]
	}`))
	assert.Equal(t, map[string]string{
		"name":                  "is required",
		"status":                "must be one of [ACTIVE, INACTIVE]",
		"metadataConfig[0].key": "is required",
	}, fieldErrors(t, err))
}

func TestValidateTagCategoryUpdateCanClearCollections(t *testing.T) {
	patch, err := ValidateTagCategoryUpdate(decodeInput(t, `{"metadataConfig": [], "nameStructure": [], "deleted": false}`))
	require.NoError(t, err)
	require.NotNil(t, patch.MetadataConfig)
	assert.Empty(t, *patch.MetadataConfig)
	require.NotNil(t, patch.NameStructure)
	assert.Empty(t, *patch.NameStructure)
	require.NotNil(t, patch.Deleted)
	assert.False(t, *patch.Deleted)
}

func TestValidateTagCategoryRejectsKeysCollidingAfterTrim(t *testing.T) {
	input := decodeInput(t, `{
		"gameId": "g", "group": {"value": "ball"}, "name": "Ball", "precisionType": "LONG", "status": "ACTIVE",
		"subCategories": {"a": {"label": "first", "config": []}, " a ": {"label": "second", "config": []}}
	}`)
	for i := 0; i < 20; i++ {
		_, err := ValidateTagCategory(input)
		assert.Equal(t, map[string]string{
			"subCategories": `duplicate sub-category key "a" after trimming`,
		}, fieldErrors(t, err))
	}

	_, err := ValidateTagCategoryUpdate(decodeInput(t, `{"subCategories": {"b": {"label": "x"}, "b ": {"label": "y"}}}`))
	assert.Equal(t, map[string]string{
		"subCategories": `duplicate sub-category key "b" after trimming`,
	}, fieldErrors(t, err))
}

func TestValidateNilInputIsEmptyCandidate(t *testing.T) {
	_, err := ValidateTagCategory(nil)
	errs := fieldErrors(t, err)
	assert.Equal(t, "is required", errs["gameId"])
	assert.Equal(t, "is required", errs["name"])

	patch, err := ValidateTagCategoryUpdate(nil)
	require.NoError(t, err)
	assert.Nil(t, patch.Name)
}

func TestEnumRulesFollowRepositoryEnums(t *testing.T) {
	assert.Equal(t, "oneof=LONG SHORT", oneOf(repository.PrecisionTypes))
	assert.Equal(t, "oneof=ACTIVE INACTIVE", oneOf(repository.Statuses))
	assert.Equal(t, "oneof=input select", oneOf(repository.Components))
	assert.Equal(t, "oneof=text number", oneOf(repository.InputTypes))
	assert.Equal(t, "oneof=options query", oneOf(repository.SelectModes))
}
