package parser

import (
	"fmt"
	"reflect"
	"strings"

	"tagcat/app_error"
	"tagcat/repository"
	"tagcat/utils"

	"github.com/go-playground/validator/v10"
)

// TagCategoryInput is a category as sent by a client. Pointer and nil slice
// fields distinguish "absent" from "empty", which partial updates rely on.
type TagCategoryInput struct {
	GameId         *string                           `json:"gameId"`
	Group          *repository.Option                `json:"group"`
	Name           *string                           `json:"name"`
	PrecisionType  *string                           `json:"precisionType"`
	Status         *string                           `json:"status"`
	MetadataConfig []repository.FieldConfig          `json:"metadataConfig"`
	SubCategories  map[string]repository.SubCategory `json:"subCategories"`
	IsParentTag    *bool                             `json:"isParentTag"`
	IsReplay       *bool                             `json:"isReplay"`
	NameStructure  []string                          `json:"nameStructure"`
	Deleted        *bool                             `json:"deleted"`
}

// fieldConfigRules mirrors repository.FieldConfig; it is checked after
// normalization so enum values are already lower case.
type fieldConfigRules struct {
	Component string `json:"component" validate:"required,component"`
	Key       string `json:"key" validate:"required"`
	Type      string `json:"type" validate:"omitempty,input_type"`
	Mode      string `json:"mode" validate:"omitempty,select_mode"`
}

var categoryRules = map[string]string{
	"gameId":        "required",
	"group.value":   "required",
	"name":          "required",
	"precisionType": "required,precision_type",
	"status":        "required,status",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("precision_type", oneOf(repository.PrecisionTypes))
	v.RegisterAlias("status", oneOf(repository.Statuses))
	v.RegisterAlias("component", oneOf(repository.Components))
	v.RegisterAlias("input_type", oneOf(repository.InputTypes))
	v.RegisterAlias("select_mode", oneOf(repository.SelectModes))
	return v
}

func oneOf[T ~string](values []T) string {
	return "oneof=" + strings.Join(utils.Map(values, func(value T) string { return string(value) }), " ")
}

// ValidateTagCategory checks a create request and returns the normalized
// category. Every failing field is reported in one *app_error.ValidationError.
func ValidateTagCategory(input *TagCategoryInput) (*repository.TagCategory, error) {
	if input == nil {
		input = &TagCategoryInput{}
	}
	errs := &app_error.ValidationError{}
	category := &repository.TagCategory{
		GameId:         trimmed(input.GameId),
		Name:           trimmed(input.Name),
		PrecisionType:  repository.PrecisionType(upper(input.PrecisionType)),
		Status:         repository.Status(upper(input.Status)),
		IsParentTag:    input.IsParentTag != nil && *input.IsParentTag,
		IsReplay:       input.IsReplay != nil && *input.IsReplay,
		Deleted:        input.Deleted != nil && *input.Deleted,
		NameStructure:  normalizeNameStructure(input.NameStructure),
		MetadataConfig: normalizeFieldConfigs(input.MetadataConfig),
		SubCategories:  normalizeSubCategories(errs, input.SubCategories),
	}
	if input.Group != nil {
		category.Group = normalizeGroup(*input.Group)
	}

	checkRule(errs, "gameId", category.GameId)
	checkRule(errs, "group.value", category.Group.Value.String())
	checkRule(errs, "name", category.Name)
	checkRule(errs, "precisionType", string(category.PrecisionType))
	checkRule(errs, "status", string(category.Status))
	checkFieldConfigs(errs, "metadataConfig", category.MetadataConfig)
	checkSubCategories(errs, category.SubCategories)

	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return category, nil
}

// ValidateTagCategoryUpdate applies the create rules to the fields present
// in a partial update.
func ValidateTagCategoryUpdate(input *TagCategoryInput) (*repository.TagCategoryPatch, error) {
	if input == nil {
		input = &TagCategoryInput{}
	}
	errs := &app_error.ValidationError{}
	patch := &repository.TagCategoryPatch{
		IsParentTag: input.IsParentTag,
		IsReplay:    input.IsReplay,
		Deleted:     input.Deleted,
	}
	if input.GameId != nil {
		gameId := trimmed(input.GameId)
		checkRule(errs, "gameId", gameId)
		patch.GameId = &gameId
	}
	if input.Group != nil {
		group := normalizeGroup(*input.Group)
		checkRule(errs, "group.value", group.Value.String())
		patch.Group = &group
	}
	if input.Name != nil {
		name := trimmed(input.Name)
		checkRule(errs, "name", name)
		patch.Name = &name
	}
	if input.PrecisionType != nil {
		precisionType := repository.PrecisionType(upper(input.PrecisionType))
		checkRule(errs, "precisionType", string(precisionType))
		patch.PrecisionType = &precisionType
	}
	if input.Status != nil {
		status := repository.Status(upper(input.Status))
		checkRule(errs, "status", string(status))
		patch.Status = &status
	}
	if input.MetadataConfig != nil {
		config := normalizeFieldConfigs(input.MetadataConfig)
		checkFieldConfigs(errs, "metadataConfig", config)
		patch.MetadataConfig = &config
	}
	if input.SubCategories != nil {
		subCategories := normalizeSubCategories(errs, input.SubCategories)
		checkSubCategories(errs, subCategories)
		patch.SubCategories = &subCategories
	}
	if input.NameStructure != nil {
		nameStructure := normalizeNameStructure(input.NameStructure)
		patch.NameStructure = &nameStructure
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return patch, nil
}

func checkRule(errs *app_error.ValidationError, field string, value string) {
	err := validate.Var(value, categoryRules[field])
	if err == nil {
		return
	}
	for _, fieldError := range err.(validator.ValidationErrors) {
		errs.Add(field, "%s", message(fieldError))
	}
}

func checkFieldConfigs(errs *app_error.ValidationError, path string, configs repository.FieldConfigs) {
	for i, field := range configs {
		rules := fieldConfigRules{
			Component: string(field.Component),
			Key:       field.Key,
			Type:      string(field.Type),
			Mode:      string(field.Mode),
		}
		err := validate.Struct(rules)
		if err == nil {
			continue
		}
		for _, fieldError := range err.(validator.ValidationErrors) {
			errs.Add(fmt.Sprintf("%s[%d].%s", path, i, fieldError.Field()), "%s", message(fieldError))
		}
	}
}

func checkSubCategories(errs *app_error.ValidationError, subCategories repository.SubCategories) {
	for _, key := range sortedKeys(subCategories) {
		if key == "" {
			errs.Add("subCategories", "sub-category key is required")
			continue
		}
		checkFieldConfigs(errs, fmt.Sprintf("subCategories.%s.config", key), subCategories[key].Config)
	}
}

func message(fieldError validator.FieldError) string {
	switch fieldError.ActualTag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", strings.ReplaceAll(fieldError.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %s check", fieldError.Tag())
	}
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func upper(value *string) string {
	return strings.ToUpper(trimmed(value))
}

func normalizeGroup(group repository.Option) repository.Option {
	if !group.Value.IsNumber {
		group.Value = repository.StringValue(strings.TrimSpace(group.Value.Text))
	}
	group.Label = strings.TrimSpace(group.Label)
	if label, ok := repository.KnownGroups[group.Value.String()]; ok && group.Label == "" {
		group.Label = label
	}
	return group
}

func normalizeNameStructure(tokens []string) []string {
	normalized := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token = strings.TrimSpace(token); token != "" {
			normalized = append(normalized, token)
		}
	}
	return normalized
}

func normalizeFieldConfigs(configs []repository.FieldConfig) repository.FieldConfigs {
	normalized := make(repository.FieldConfigs, len(configs))
	for i, field := range configs {
		field.Component = repository.Component(strings.ToLower(strings.TrimSpace(string(field.Component))))
		field.Key = strings.TrimSpace(field.Key)
		field.Type = repository.InputType(strings.ToLower(strings.TrimSpace(string(field.Type))))
		field.Mode = repository.SelectMode(strings.ToLower(strings.TrimSpace(string(field.Mode))))
		field.Query = strings.TrimSpace(field.Query)
		switch {
		case field.IsInput():
			if field.Type == "" {
				field.Type = repository.InputText
			}
			field.Mode, field.Multiple, field.Options, field.Query = "", false, nil, ""
		case field.IsSelect():
			if field.Mode == "" {
				field.Mode = repository.SelectOptions
			}
			field.Type = ""
			if field.Mode == repository.SelectOptions {
				field.Query = ""
			} else if field.Mode == repository.SelectQuery {
				field.Options = nil
			}
		}
		normalized[i] = field
	}
	return normalized
}

// normalizeSubCategories trims keys in sorted order; keys that collide once
// trimmed are reported instead of silently merged.
func normalizeSubCategories(errs *app_error.ValidationError, subCategories map[string]repository.SubCategory) repository.SubCategories {
	normalized := make(repository.SubCategories, len(subCategories))
	for _, key := range sortedKeys(subCategories) {
		sub := subCategories[key]
		trimmedKey := strings.TrimSpace(key)
		if _, ok := normalized[trimmedKey]; ok {
			errs.Add("subCategories", "duplicate sub-category key %q after trimming", trimmedKey)
			continue
		}
		normalized[trimmedKey] = repository.SubCategory{
			Label:  strings.TrimSpace(sub.Label),
			Config: normalizeFieldConfigs(sub.Config),
		}
	}
	return normalized
}
