package models

import (
	"time"

	"gorm.io/datatypes"
)

// ContentBase is embedded by every CMS entity.
type ContentBase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b ContentBase) GetID() uint { return b.ID }

// TranslationBase is embedded by every per-language row. BaseID points at the
// owning entity and is removed with it.
type TranslationBase struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	BaseID       uint   `gorm:"not null;index" json:"baseId"`
	LanguageCode string `gorm:"size:10;not null" json:"languageCode"`
}

func (t TranslationBase) Language() string { return t.LanguageCode }

func (t *TranslationBase) SetLanguage(code string) { t.LanguageCode = code }

type Banner struct {
	ContentBase
	Code         string              `gorm:"size:255;not null" json:"code"`
	Position     int                 `gorm:"not null" json:"position"`
	Enabled      bool                `gorm:"not null" json:"enabled"`
	Link         *string             `json:"link,omitempty"`
	ImageID      *string             `gorm:"size:64" json:"imageId,omitempty"`
	Translations []BannerTranslation `gorm:"foreignKey:BaseID;constraint:OnDelete:CASCADE" json:"translations"`
}

type BannerTranslation struct {
	TranslationBase
	Title    string `gorm:"size:255;not null" json:"title"`
	Subtitle string `gorm:"size:255;not null" json:"subtitle"`
}

type Page struct {
	ContentBase
	Slug         string            `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Enabled      bool              `gorm:"not null" json:"enabled"`
	Translations []PageTranslation `gorm:"foreignKey:BaseID;constraint:OnDelete:CASCADE" json:"translations"`
}

type PageTranslation struct {
	TranslationBase
	Title          string  `gorm:"size:255;not null" json:"title"`
	Content        string  `gorm:"type:text;not null" json:"content"`
	SeoTitle       *string `gorm:"size:255" json:"seoTitle,omitempty"`
	SeoDescription *string `gorm:"size:512" json:"seoDescription,omitempty"`
}

type CaseCategory struct {
	ContentBase
	Code         string                    `gorm:"size:255;not null;uniqueIndex" json:"code"`
	Position     int                       `gorm:"not null" json:"position"`
	Translations []CaseCategoryTranslation `gorm:"foreignKey:BaseID;constraint:OnDelete:CASCADE" json:"translations"`
}

type CaseCategoryTranslation struct {
	TranslationBase
	Name string `gorm:"size:255;not null" json:"name"`
}

type CaseStudy struct {
	ContentBase
	Slug            string                      `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Enabled         bool                        `gorm:"not null" json:"enabled"`
	Position        int                         `gorm:"not null" json:"position"`
	Location        *string                     `gorm:"size:255" json:"location,omitempty"`
	CompletedAt     *time.Time                  `json:"completedAt,omitempty"`
	CategoryID      *uint                       `gorm:"index" json:"categoryId,omitempty"`
	Category        *CaseCategory               `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	BeforeImageID   *string                     `gorm:"size:64" json:"beforeImageId,omitempty"`
	AfterImageID    *string                     `gorm:"size:64" json:"afterImageId,omitempty"`
	FeaturedImageID *string                     `gorm:"size:64" json:"featuredImageId,omitempty"`
	GalleryIDs      datatypes.JSONSlice[string] `gorm:"column:gallery_ids" json:"galleryIds"`
	Reviews         []CustomerReview            `gorm:"foreignKey:CaseStudyID;constraint:OnDelete:SET NULL" json:"reviews,omitempty"`
	Translations    []CaseStudyTranslation      `gorm:"foreignKey:BaseID;constraint:OnDelete:CASCADE" json:"translations"`
}

type CaseStudyTranslation struct {
	TranslationBase
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Content     string `gorm:"type:text;not null" json:"content"`
}

type CustomerReview struct {
	ContentBase
	CustomerName    string                      `gorm:"size:255;not null" json:"customerName"`
	CustomerCompany *string                     `gorm:"size:255" json:"customerCompany,omitempty"`
	Rating          int                         `gorm:"not null" json:"rating"`
	Enabled         bool                        `gorm:"not null" json:"enabled"`
	Position        int                         `gorm:"not null" json:"position"`
	CaseStudyID     *uint                       `gorm:"index" json:"caseStudyId,omitempty"`
	Translations    []CustomerReviewTranslation `gorm:"foreignKey:BaseID;constraint:OnDelete:CASCADE" json:"translations"`
}

type CustomerReviewTranslation struct {
	TranslationBase
	Content string `gorm:"type:text;not null" json:"content"`
}

type Certification struct {
	ContentBase
	Code          string                     `gorm:"size:255;not null;uniqueIndex" json:"code"`
	Position      int                        `gorm:"not null" json:"position"`
	Enabled       bool                       `gorm:"not null" json:"enabled"`
	IconID        *string                    `gorm:"size:64" json:"iconId,omitempty"`
	CertificateID *string                    `gorm:"size:64" json:"certificateId,omitempty"`
	Translations  []CertificationTranslation `gorm:"foreignKey:BaseID;constraint:OnDelete:CASCADE" json:"translations"`
}

type CertificationTranslation struct {
	TranslationBase
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
}

type TeamMember struct {
	ContentBase
	Name         string                  `gorm:"size:255;not null" json:"name"`
	Email        *string                 `gorm:"size:255" json:"email,omitempty"`
	Position     int                     `gorm:"not null" json:"position"`
	Enabled      bool                    `gorm:"not null" json:"enabled"`
	PhotoID      *string                 `gorm:"size:64" json:"photoId,omitempty"`
	Translations []TeamMemberTranslation `gorm:"foreignKey:BaseID;constraint:OnDelete:CASCADE" json:"translations"`
}

type TeamMemberTranslation struct {
	TranslationBase
	JobTitle string `gorm:"size:255;not null" json:"jobTitle"`
	Bio      string `gorm:"type:text;not null" json:"bio"`
}

type CompanyTimeline struct {
	ContentBase
	Year         int                          `gorm:"not null" json:"year"`
	Position     int                          `gorm:"not null" json:"position"`
	Enabled      bool                         `gorm:"not null" json:"enabled"`
	ImageID      *string                      `gorm:"size:64" json:"imageId,omitempty"`
	Translations []CompanyTimelineTranslation `gorm:"foreignKey:BaseID;constraint:OnDelete:CASCADE" json:"translations"`
}

type CompanyTimelineTranslation struct {
	TranslationBase
	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
}

// DeletionResult mirrors the admin API's DeletionResponse.result enum.
type DeletionResult string

const (
	Deleted    DeletionResult = "DELETED"
	NotDeleted DeletionResult = "NOT_DELETED"
)

type DeletionResponse struct {
	Result  DeletionResult `json:"result"`
	Message *string        `json:"message,omitempty"`
}
