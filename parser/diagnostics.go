package parser

import (
	"fmt"
	"sort"
	"strings"

	"tagcat/repository"
	"tagcat/utils"
)

type IssueCode string

const (
	IssueEmptyOptions     IssueCode = "EMPTY_OPTIONS"
	IssueEmptyQuery       IssueCode = "EMPTY_QUERY"
	IssueDuplicateKey     IssueCode = "DUPLICATE_KEY"
	IssueUnknownNameToken IssueCode = "UNKNOWN_NAME_TOKEN"
	IssueEmptySubCategory IssueCode = "EMPTY_SUB_CATEGORY"
)

// Issue is a schema problem that does not make a category invalid but
// leaves it semantically degenerate for labeling.
type Issue struct {
	Code    IssueCode `json:"code"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Code, i.Field, i.Message)
}

// Diagnose reports degenerate parts of an accepted category. Issues are
// ordered: metadataConfig, sub-categories by key, then nameStructure.
func Diagnose(category *repository.TagCategory) []Issue {
	issues := diagnoseFieldConfigs("metadataConfig", category.MetadataConfig)
	for _, key := range sortedKeys(category.SubCategories) {
		sub := category.SubCategories[key]
		path := fmt.Sprintf("subCategories.%s.config", key)
		if len(sub.Config) == 0 {
			issues = append(issues, Issue{
				Code:    IssueEmptySubCategory,
				Field:   path,
				Message: "sub-category defines no fields",
			})
		}
		issues = append(issues, diagnoseFieldConfigs(path, sub.Config)...)
	}
	known := category.MetadataConfig.Keys()
	for i, token := range category.NameStructure {
		if token == NameToken || utils.Contains(known, token) {
			continue
		}
		issues = append(issues, Issue{
			Code:    IssueUnknownNameToken,
			Field:   fmt.Sprintf("nameStructure[%d]", i),
			Message: fmt.Sprintf("token %q is not a metadataConfig key", token),
		})
	}
	return issues
}

func diagnoseFieldConfigs(path string, configs repository.FieldConfigs) []Issue {
	issues := make([]Issue, 0)
	seen := make(map[string]int)
	for i, field := range configs {
		fieldPath := fmt.Sprintf("%s[%d]", path, i)
		if first, ok := seen[field.Key]; ok && field.Key != "" {
			issues = append(issues, Issue{
				Code:    IssueDuplicateKey,
				Field:   fieldPath + ".key",
				Message: fmt.Sprintf("key %q already used by %s[%d]", field.Key, path, first),
			})
		} else {
			seen[field.Key] = i
		}
		if !field.IsSelect() {
			continue
		}
		switch field.Mode {
		case repository.SelectOptions:
			if len(field.Options) == 0 {
				issues = append(issues, Issue{
					Code:    IssueEmptyOptions,
					Field:   fieldPath + ".options",
					Message: "select field offers no options",
				})
			}
		case repository.SelectQuery:
			if field.Query == "" {
				issues = append(issues, Issue{
					Code:    IssueEmptyQuery,
					Field:   fieldPath + ".query",
					Message: "select field names no query source",
				})
			}
		}
	}
	return issues
}

// NameToken in a nameStructure resolves to the category name.
const NameToken = "name"

// ComposeName builds a display name from the category's nameStructure.
// Tokens without a value are skipped.
func ComposeName(category *repository.TagCategory, values map[string]string) string {
	parts := make([]string, 0, len(category.NameStructure))
	for _, token := range category.NameStructure {
		value, ok := values[token]
		if !ok && token == NameToken {
			value = category.Name
		}
		if value = strings.TrimSpace(value); value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, "-")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := utils.Keys(m)
	sort.Strings(keys)
	return keys
}
