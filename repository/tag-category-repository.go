package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagCategory struct {
	Id             string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	GameId         string         `gorm:"not null;index" json:"gameId"`
	Group          Option         `gorm:"type:jsonb;serializer:json;not null" json:"group"`
	Name           string         `gorm:"not null" json:"name"`
	PrecisionType  PrecisionType  `gorm:"not null" json:"precisionType"`
	Status         Status         `gorm:"not null" json:"status"`
	MetadataConfig FieldConfigs   `gorm:"type:jsonb;not null;default:'[]'" json:"metadataConfig"`
	SubCategories  SubCategories  `gorm:"type:jsonb;not null;default:'{}'" json:"subCategories"`
	IsParentTag    bool           `gorm:"not null;default:false" json:"isParentTag"`
	IsReplay       bool           `gorm:"not null;default:false" json:"isReplay"`
	NameStructure  pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"nameStructure"`
	CreatedAt      int64          `gorm:"not null;autoCreateTime:false" json:"createdAt"`
	LastUpdatedAt  int64          `gorm:"not null;autoUpdateTime:false" json:"lastUpdatedAt"`
	Deleted        bool           `gorm:"not null;default:false;index" json:"deleted"`
}

// TagCategoryPatch is a partial update. Nil fields are left untouched.
type TagCategoryPatch struct {
	GameId         *string
	Group          *Option
	Name           *string
	PrecisionType  *PrecisionType
	Status         *Status
	MetadataConfig *FieldConfigs
	SubCategories  *SubCategories
	IsParentTag    *bool
	IsReplay       *bool
	NameStructure  *[]string
	Deleted        *bool
}

func (p *TagCategoryPatch) Apply(category *TagCategory) {
	if p.GameId != nil {
		category.GameId = *p.GameId
	}
	if p.Group != nil {
		category.Group = *p.Group
	}
	if p.Name != nil {
		category.Name = *p.Name
	}
	if p.PrecisionType != nil {
		category.PrecisionType = *p.PrecisionType
	}
	if p.Status != nil {
		category.Status = *p.Status
	}
	if p.MetadataConfig != nil {
		category.MetadataConfig = *p.MetadataConfig
	}
	if p.SubCategories != nil {
		category.SubCategories = *p.SubCategories
	}
	if p.IsParentTag != nil {
		category.IsParentTag = *p.IsParentTag
	}
	if p.IsReplay != nil {
		category.IsReplay = *p.IsReplay
	}
	if p.NameStructure != nil {
		category.NameStructure = pq.StringArray(*p.NameStructure)
	}
	if p.Deleted != nil {
		category.Deleted = *p.Deleted
	}
}

// TagCategoryFilter holds equality filters for listing. Zero values match
// everything; Search is a case-insensitive substring of the name.
type TagCategoryFilter struct {
	Status        Status
	Group         string
	PrecisionType PrecisionType
	GameId        string
	IsParentTag   *bool
	IsReplay      *bool
	Search        string
}

func (f TagCategoryFilter) Matches(category *TagCategory) bool {
	if f.Status != "" && category.Status != f.Status {
		return false
	}
	if f.Group != "" && category.Group.Value.String() != f.Group {
		return false
	}
	if f.PrecisionType != "" && category.PrecisionType != f.PrecisionType {
		return false
	}
	if f.GameId != "" && category.GameId != f.GameId {
		return false
	}
	if f.IsParentTag != nil && category.IsParentTag != *f.IsParentTag {
		return false
	}
	if f.IsReplay != nil && category.IsReplay != *f.IsReplay {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(category.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// TagCategoryStore is implemented by the postgres and in-memory stores. Both
// return gorm.ErrRecordNotFound for unknown ids.
type TagCategoryStore interface {
	GetTagCategoryById(id string) (*TagCategory, error)
	GetTagCategories(filter TagCategoryFilter) ([]*TagCategory, error)
	CreateTagCategory(category *TagCategory) (*TagCategory, error)
	UpdateTagCategory(id string, patch *TagCategoryPatch) (*TagCategory, error)
	DeleteTagCategory(id string) (*TagCategory, error)
}

var (
	clockMu  sync.Mutex
	lastTick int64
	nowFunc  = func() int64 { return time.Now().UnixMilli() }
)

// NextTimestamp returns the current epoch milliseconds, strictly greater
// than both previous and any timestamp handed out before.
func NextTimestamp(previous int64) int64 {
	clockMu.Lock()
	defer clockMu.Unlock()
	now := nowFunc()
	if now <= lastTick {
		now = lastTick + 1
	}
	if now <= previous {
		now = previous + 1
	}
	lastTick = now
	return now
}

func newTagCategoryId() string {
	return uuid.NewString()
}

type TagCategoryRepository struct {
	DB *gorm.DB
}

func NewTagCategoryRepository(db *gorm.DB) *TagCategoryRepository {
	return &TagCategoryRepository{DB: db}
}

func (r *TagCategoryRepository) GetTagCategoryById(id string) (*TagCategory, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetTagCategoryById"))
	defer timer.ObserveDuration()
	var category TagCategory
	result := r.DB.First(&category, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &category, nil
}

func (r *TagCategoryRepository) GetTagCategories(filter TagCategoryFilter) ([]*TagCategory, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetTagCategories"))
	defer timer.ObserveDuration()
	query := r.DB.Where("deleted = ?", false)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Group != "" {
		query = query.Where(`"group"->>'value' = ?`, filter.Group)
	}
	if filter.PrecisionType != "" {
		query = query.Where("precision_type = ?", filter.PrecisionType)
	}
	if filter.GameId != "" {
		query = query.Where("game_id = ?", filter.GameId)
	}
	if filter.IsParentTag != nil {
		query = query.Where("is_parent_tag = ?", *filter.IsParentTag)
	}
	if filter.IsReplay != nil {
		query = query.Where("is_replay = ?", *filter.IsReplay)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+escapeLike(filter.Search)+"%")
	}
	categories := make([]*TagCategory, 0)
	result := query.Order("created_at ASC, id ASC").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func (r *TagCategoryRepository) CreateTagCategory(category *TagCategory) (*TagCategory, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("CreateTagCategory"))
	defer timer.ObserveDuration()
	category.Id = newTagCategoryId()
	category.CreatedAt = NextTimestamp(0)
	category.LastUpdatedAt = category.CreatedAt
	result := r.DB.Create(category)
	if result.Error != nil {
		return nil, result.Error
	}
	return category, nil
}

func (r *TagCategoryRepository) UpdateTagCategory(id string, patch *TagCategoryPatch) (*TagCategory, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("UpdateTagCategory"))
	defer timer.ObserveDuration()
	return r.mutate(id, patch.Apply)
}

func (r *TagCategoryRepository) DeleteTagCategory(id string) (*TagCategory, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("DeleteTagCategory"))
	defer timer.ObserveDuration()
	return r.mutate(id, func(category *TagCategory) {
		category.Deleted = true
	})
}

func (r *TagCategoryRepository) mutate(id string, change func(*TagCategory)) (*TagCategory, error) {
	var category TagCategory
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&category, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		change(&category)
		category.LastUpdatedAt = NextTimestamp(category.LastUpdatedAt)
		return tx.Save(&category).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save tag category %s: %w", id, err)
	}
	return &category, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// MemoryTagCategoryRepository keeps categories in a map. It is the default
// store when no database is configured.
type MemoryTagCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*TagCategory
}

func NewMemoryTagCategoryRepository() *MemoryTagCategoryRepository {
	return &MemoryTagCategoryRepository{categories: make(map[string]*TagCategory)}
}

func (r *MemoryTagCategoryRepository) GetTagCategoryById(id string) (*TagCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category.Clone(), nil
}

func (r *MemoryTagCategoryRepository) GetTagCategories(filter TagCategoryFilter) ([]*TagCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	categories := make([]*TagCategory, 0, len(r.categories))
	for _, category := range r.categories {
		if category.Deleted || !filter.Matches(category) {
			continue
		}
		categories = append(categories, category.Clone())
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].CreatedAt != categories[j].CreatedAt {
			return categories[i].CreatedAt < categories[j].CreatedAt
		}
		return categories[i].Id < categories[j].Id
	})
	return categories, nil
}

func (r *MemoryTagCategoryRepository) CreateTagCategory(category *TagCategory) (*TagCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := category.Clone()
	stored.Id = newTagCategoryId()
	stored.CreatedAt = NextTimestamp(0)
	stored.LastUpdatedAt = stored.CreatedAt
	r.categories[stored.Id] = stored
	return stored.Clone(), nil
}

func (r *MemoryTagCategoryRepository) UpdateTagCategory(id string, patch *TagCategoryPatch) (*TagCategory, error) {
	return r.mutate(id, patch.Apply)
}

func (r *MemoryTagCategoryRepository) DeleteTagCategory(id string) (*TagCategory, error) {
	return r.mutate(id, func(category *TagCategory) {
		category.Deleted = true
	})
}

func (r *MemoryTagCategoryRepository) mutate(id string, change func(*TagCategory)) (*TagCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	updated := existing.Clone()
	change(updated)
	updated.Id = existing.Id
	updated.CreatedAt = existing.CreatedAt
	updated.LastUpdatedAt = NextTimestamp(existing.LastUpdatedAt)
	r.categories[id] = updated
	return updated.Clone(), nil
}

// Clone returns a deep copy so callers never share slices or maps with a
// stored record.
func (c *TagCategory) Clone() *TagCategory {
	clone := *c
	clone.NameStructure = append(pq.StringArray{}, c.NameStructure...)
	clone.MetadataConfig = c.MetadataConfig.Clone()
	clone.SubCategories = make(SubCategories, len(c.SubCategories))
	for key, sub := range c.SubCategories {
		clone.SubCategories[key] = SubCategory{Label: sub.Label, Config: sub.Config.Clone()}
	}
	return &clone
}

func (c FieldConfigs) Clone() FieldConfigs {
	clone := make(FieldConfigs, len(c))
	for i, field := range c {
		field.Options = append([]Option(nil), field.Options...)
		clone[i] = field
	}
	return clone
}
