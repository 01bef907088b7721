package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ballCategory() *TagCategory {
	return &TagCategory{
		GameId:        "game-1",
		Group:         Option{Label: "Ball", Value: StringValue("ball")},
		Name:          "Ball",
		PrecisionType: PrecisionLong,
		Status:        StatusActive,
		NameStructure: []string{"name", "over"},
		MetadataConfig: FieldConfigs{
			{Component: ComponentInput, Key: "over", Label: "Over", Type: InputText},
			{Component: ComponentSelect, Key: "ballType", Label: "Ball Type", Mode: SelectOptions, Options: []Option{
				{Label: "UnderArm", Value: StringValue("under-arm")},
			}},
		},
		SubCategories: SubCategories{
			"no-ball": {Label: "No Ball", Config: FieldConfigs{
				{Component: ComponentInput, Key: "runs", Label: "Runs", Type: InputNumber},
			}},
		},
	}
}

func freezeClock(t *testing.T, millis int64) {
	previous := nowFunc
	nowFunc = func() int64 { return millis }
	t.Cleanup(func() { nowFunc = previous })
}

func TestMemoryCreateAssignsIdAndTimestamps(t *testing.T) {
	store := NewMemoryTagCategoryRepository()
	created, err := store.CreateTagCategory(ballCategory())
	require.NoError(t, err)

	assert.NotEmpty(t, created.Id)
	assert.NotZero(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.LastUpdatedAt)
	assert.False(t, created.Deleted)

	fetched, err := store.GetTagCategoryById(created.Id)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestMemoryCreateAllowsDuplicateGameId(t *testing.T) {
	store := NewMemoryTagCategoryRepository()
	first, err := store.CreateTagCategory(ballCategory())
	require.NoError(t, err)
	second, err := store.CreateTagCategory(ballCategory())
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)
	categories, err := store.GetTagCategories(TagCategoryFilter{GameId: "game-1"})
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestMemorySoftDelete(t *testing.T) {
	store := NewMemoryTagCategoryRepository()
	created, err := store.CreateTagCategory(ballCategory())
	require.NoError(t, err)

	deleted, err := store.DeleteTagCategory(created.Id)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)
	assert.Greater(t, deleted.LastUpdatedAt, created.LastUpdatedAt)

	categories, err := store.GetTagCategories(TagCategoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, categories)

	fetched, err := store.GetTagCategoryById(created.Id)
	require.NoError(t, err)
	assert.True(t, fetched.Deleted)
	assert.Equal(t, "Ball", fetched.Name)
}

func TestMemoryUnknownIdIsRecordNotFound(t *testing.T) {
	store := NewMemoryTagCategoryRepository()

	_, err := store.GetTagCategoryById("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = store.UpdateTagCategory("missing", &TagCategoryPatch{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = store.DeleteTagCategory("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemoryPartialUpdatePreservesOtherFields(t *testing.T) {
	freezeClock(t, 1_700_000_000_000)
	store := NewMemoryTagCategoryRepository()
	created, err := store.CreateTagCategory(ballCategory())
	require.NoError(t, err)

	name := "Delivery"
	updated, err := store.UpdateTagCategory(created.Id, &TagCategoryPatch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Delivery", updated.Name)
	assert.Equal(t, created.GameId, updated.GameId)
	assert.Equal(t, created.Group, updated.Group)
	assert.Equal(t, created.MetadataConfig, updated.MetadataConfig)
	assert.Equal(t, created.SubCategories, updated.SubCategories)
	assert.Equal(t, created.NameStructure, updated.NameStructure)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	// the clock is frozen, the timestamp must still move forward
	assert.Greater(t, updated.LastUpdatedAt, created.LastUpdatedAt)

	again, err := store.UpdateTagCategory(created.Id, &TagCategoryPatch{})
	require.NoError(t, err)
	assert.Greater(t, again.LastUpdatedAt, updated.LastUpdatedAt)
}

func TestMemoryUpdateCanRestoreDeleted(t *testing.T) {
	store := NewMemoryTagCategoryRepository()
	created, err := store.CreateTagCategory(ballCategory())
	require.NoError(t, err)
	_, err = store.DeleteTagCategory(created.Id)
	require.NoError(t, err)

	restore := false
	_, err = store.UpdateTagCategory(created.Id, &TagCategoryPatch{Deleted: &restore})
	require.NoError(t, err)

	categories, err := store.GetTagCategories(TagCategoryFilter{})
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestMemoryReturnsCopies(t *testing.T) {
	store := NewMemoryTagCategoryRepository()
	created, err := store.CreateTagCategory(ballCategory())
	require.NoError(t, err)

	created.Name = "mutated"
	created.MetadataConfig[0].Key = "mutated"
	created.SubCategories["no-ball"].Config[0].Key = "mutated"

	fetched, err := store.GetTagCategoryById(created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Ball", fetched.Name)
	assert.Equal(t, "over", fetched.MetadataConfig[0].Key)
	assert.Equal(t, "runs", fetched.SubCategories["no-ball"].Config[0].Key)
}

func TestMemoryListFilters(t *testing.T) {
	store := NewMemoryTagCategoryRepository()
	_, err := SeedSampleData(store)
	require.NoError(t, err)

	yes := true
	tests := []struct {
		name     string
		filter   TagCategoryFilter
		expected []string
	}{
		{name: "no filter", filter: TagCategoryFilter{}, expected: []string{"Ball", "Player", "Game Event"}},
		{name: "status", filter: TagCategoryFilter{Status: StatusInactive}, expected: []string{"Game Event"}},
		{name: "group", filter: TagCategoryFilter{Group: "player"}, expected: []string{"Player"}},
		{name: "precision type", filter: TagCategoryFilter{PrecisionType: PrecisionLong}, expected: []string{"Ball", "Game Event"}},
		{name: "replay", filter: TagCategoryFilter{IsReplay: &yes}, expected: []string{"Game Event"}},
		{name: "parent and active", filter: TagCategoryFilter{IsParentTag: &yes, Status: StatusActive}, expected: []string{"Ball"}},
		{name: "search is case insensitive", filter: TagCategoryFilter{Search: "EVENT"}, expected: []string{"Game Event"}},
		{name: "no match", filter: TagCategoryFilter{Group: "team"}, expected: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories, err := store.GetTagCategories(tt.filter)
			require.NoError(t, err)
			names := make([]string, 0)
			for _, category := range categories {
				names = append(names, category.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestSeedSampleDataSkipsNonEmptyStore(t *testing.T) {
	store := NewMemoryTagCategoryRepository()
	seeded, err := SeedSampleData(store)
	require.NoError(t, err)
	assert.Equal(t, 3, seeded)

	seeded, err = SeedSampleData(store)
	require.NoError(t, err)
	assert.Equal(t, 0, seeded)
}

func TestNextTimestampIsStrictlyIncreasing(t *testing.T) {
	freezeClock(t, 42)
	first := NextTimestamp(0)
	second := NextTimestamp(0)
	assert.Greater(t, second, first)

	far := second + 1000
	assert.Equal(t, far+1, NextTimestamp(far))
}
