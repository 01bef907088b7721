package repository

import (
	"fmt"
)

func SampleTagCategories() []*TagCategory {
	return []*TagCategory{
		{
			GameId:        "6622504e845d0e572cddc306",
			Group:         Option{Label: "Ball", Value: StringValue("ball")},
			Name:          "Ball",
			PrecisionType: PrecisionLong,
			Status:        StatusActive,
			IsParentTag:   true,
			NameStructure: []string{"name", "eventId", "over"},
			MetadataConfig: FieldConfigs{
				{Component: ComponentInput, Key: "eventId", Label: "Event Id", ReadOnly: true, Type: InputText},
				{Component: ComponentInput, Key: "over", Label: "Over", Required: true, Type: InputText},
				{Component: ComponentInput, Key: "rating", Label: "Rating", Type: InputNumber},
				{Component: ComponentSelect, Key: "actionBy", Label: "Ball By", Required: true, Mode: SelectQuery, Query: "players"},
				{Component: ComponentSelect, Key: "ballType", Label: "Ball Type", Mode: SelectOptions, Options: []Option{
					{Label: "UnderArm", Value: StringValue("under-arm")},
					{Label: "OverArm", Value: StringValue("over-arm")},
				}},
			},
			SubCategories: SubCategories{
				"no-ball": {
					Label: "No Ball",
					Config: FieldConfigs{
						{Component: ComponentInput, Key: "runs", Label: "Runs", Required: true, Type: InputNumber},
						{Component: ComponentSelect, Key: "outcome", Label: "Outcome", Required: true, Mode: SelectOptions, Options: []Option{
							{Label: "Wicket", Value: StringValue("wicket")},
							{Label: "Six", Value: StringValue("six")},
							{Label: "Four", Value: StringValue("four")},
						}},
						{Component: ComponentSelect, Key: "actionBy", Label: "Injury", Mode: SelectQuery, Multiple: true, Query: "players"},
					},
				},
			},
		},
		{
			GameId:        "6622504e845d0e572cddc307",
			Group:         Option{Label: "Player", Value: StringValue("player")},
			Name:          "Player",
			PrecisionType: PrecisionShort,
			Status:        StatusActive,
			NameStructure: []string{"name", "playerId"},
			MetadataConfig: FieldConfigs{
				{Component: ComponentInput, Key: "playerId", Label: "Player ID", Required: true, Type: InputText},
				{Component: ComponentInput, Key: "playerName", Label: "Player Name", Required: true, Type: InputText},
				{Component: ComponentSelect, Key: "position", Label: "Position", Required: true, Mode: SelectOptions, Options: []Option{
					{Label: "Batsman", Value: StringValue("batsman")},
					{Label: "Bowler", Value: StringValue("bowler")},
					{Label: "Keeper", Value: StringValue("keeper")},
				}},
			},
			SubCategories: SubCategories{
				"injury": {
					Label: "Injury",
					Config: FieldConfigs{
						{Component: ComponentSelect, Key: "severity", Label: "Severity", Required: true, Mode: SelectOptions, Options: []Option{
							{Label: "Minor", Value: StringValue("minor")},
							{Label: "Major", Value: StringValue("major")},
						}},
					},
				},
				"substitution": {
					Label: "Substitution",
					Config: FieldConfigs{
						{Component: ComponentInput, Key: "substituteId", Label: "Substitute ID", Required: true, Type: InputText},
					},
				},
			},
		},
		{
			GameId:        "6622504e845d0e572cddc308",
			Group:         Option{Label: "Game", Value: StringValue("game")},
			Name:          "Game Event",
			PrecisionType: PrecisionLong,
			Status:        StatusInactive,
			IsParentTag:   true,
			IsReplay:      true,
			NameStructure: []string{"name", "eventType", "timestamp"},
			MetadataConfig: FieldConfigs{
				{Component: ComponentInput, Key: "eventType", Label: "Event Type", Required: true, Type: InputText},
				{Component: ComponentInput, Key: "timestamp", Label: "Timestamp", Required: true, Type: InputNumber},
			},
			SubCategories: SubCategories{
				"timeout": {
					Label: "Timeout",
					Config: FieldConfigs{
						{Component: ComponentInput, Key: "duration", Label: "Duration (minutes)", Required: true, Type: InputNumber},
					},
				},
			},
		},
	}
}

// SeedSampleData inserts the sample categories unless the store already
// holds categories.
func SeedSampleData(store TagCategoryStore) (int, error) {
	existing, err := store.GetTagCategories(TagCategoryFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to check existing categories: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	seeded := 0
	for _, category := range SampleTagCategories() {
		if _, err := store.CreateTagCategory(category); err != nil {
			return seeded, fmt.Errorf("failed to seed %s: %w", category.Name, err)
		}
		seeded++
	}
	return seeded, nil
}
