package models

import "time"

// TranslationInput carries the language of one translation in a create or
// update request.
type TranslationInput struct {
	LanguageCode string `json:"languageCode" validate:"required,max=10"`
}

func (t TranslationInput) Language() string { return t.LanguageCode }

type BannerTranslationInput struct {
	TranslationInput
	Title    string  `json:"title" validate:"required,max=255"`
	Subtitle *string `json:"subtitle" validate:"omitempty,max=255"`
}

type CreateBannerInput struct {
	Code         string                   `json:"code" validate:"required,max=255"`
	Position     *int                     `json:"position"`
	Enabled      *bool                    `json:"enabled"`
	Link         *string                  `json:"link"`
	ImageID      *string                  `json:"imageId"`
	Translations []BannerTranslationInput `json:"translations" validate:"required,min=1,dive"`
}

type UpdateBannerInput struct {
	ID           uint                     `json:"id" validate:"required"`
	Code         *string                  `json:"code" validate:"omitempty,min=1,max=255"`
	Position     *int                     `json:"position"`
	Enabled      *bool                    `json:"enabled"`
	Link         *string                  `json:"link"`
	ImageID      *string                  `json:"imageId"`
	Translations []BannerTranslationInput `json:"translations" validate:"dive"`
}

type PageTranslationInput struct {
	TranslationInput
	Title          string  `json:"title" validate:"required,max=255"`
	Content        *string `json:"content"`
	SeoTitle       *string `json:"seoTitle" validate:"omitempty,max=255"`
	SeoDescription *string `json:"seoDescription" validate:"omitempty,max=512"`
}

type CreatePageInput struct {
	Slug         string                 `json:"slug" validate:"required,max=255"`
	Enabled      *bool                  `json:"enabled"`
	Translations []PageTranslationInput `json:"translations" validate:"required,min=1,dive"`
}

type UpdatePageInput struct {
	ID           uint                   `json:"id" validate:"required"`
	Slug         *string                `json:"slug" validate:"omitempty,min=1,max=255"`
	Enabled      *bool                  `json:"enabled"`
	Translations []PageTranslationInput `json:"translations" validate:"dive"`
}

type CaseCategoryTranslationInput struct {
	TranslationInput
	Name string `json:"name" validate:"required,max=255"`
}

type CreateCaseCategoryInput struct {
	Code         string                         `json:"code" validate:"required,max=255"`
	Position     *int                           `json:"position"`
	Translations []CaseCategoryTranslationInput `json:"translations" validate:"required,min=1,dive"`
}

type UpdateCaseCategoryInput struct {
	ID           uint                           `json:"id" validate:"required"`
	Code         *string                        `json:"code" validate:"omitempty,min=1,max=255"`
	Position     *int                           `json:"position"`
	Translations []CaseCategoryTranslationInput `json:"translations" validate:"dive"`
}

type CaseStudyTranslationInput struct {
	TranslationInput
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
}

type CreateCaseStudyInput struct {
	Slug            string                      `json:"slug" validate:"required,max=255"`
	Enabled         *bool                       `json:"enabled"`
	Position        *int                        `json:"position"`
	Location        *string                     `json:"location" validate:"omitempty,max=255"`
	CompletedAt     *time.Time                  `json:"completedAt"`
	CategoryID      *uint                       `json:"categoryId"`
	BeforeImageID   *string                     `json:"beforeImageId"`
	AfterImageID    *string                     `json:"afterImageId"`
	FeaturedImageID *string                     `json:"featuredImageId"`
	GalleryIDs      []string                    `json:"galleryIds"`
	Translations    []CaseStudyTranslationInput `json:"translations" validate:"required,min=1,dive"`
}

type UpdateCaseStudyInput struct {
	ID              uint                        `json:"id" validate:"required"`
	Slug            *string                     `json:"slug" validate:"omitempty,min=1,max=255"`
	Enabled         *bool                       `json:"enabled"`
	Position        *int                        `json:"position"`
	Location        *string                     `json:"location" validate:"omitempty,max=255"`
	CompletedAt     *time.Time                  `json:"completedAt"`
	CategoryID      *uint                       `json:"categoryId"`
	BeforeImageID   *string                     `json:"beforeImageId"`
	AfterImageID    *string                     `json:"afterImageId"`
	FeaturedImageID *string                     `json:"featuredImageId"`
	GalleryIDs      []string                    `json:"galleryIds"`
	Translations    []CaseStudyTranslationInput `json:"translations" validate:"dive"`
}

type CustomerReviewTranslationInput struct {
	TranslationInput
	Content string `json:"content" validate:"required"`
}

type CreateCustomerReviewInput struct {
	CustomerName    string                           `json:"customerName" validate:"required,max=255"`
	CustomerCompany *string                          `json:"customerCompany" validate:"omitempty,max=255"`
	Rating          *int                             `json:"rating" validate:"omitempty,min=1,max=5"`
	Enabled         *bool                            `json:"enabled"`
	Position        *int                             `json:"position"`
	CaseStudyID     *uint                            `json:"caseStudyId"`
	Translations    []CustomerReviewTranslationInput `json:"translations" validate:"required,min=1,dive"`
}

type UpdateCustomerReviewInput struct {
	ID              uint                             `json:"id" validate:"required"`
	CustomerName    *string                          `json:"customerName" validate:"omitempty,min=1,max=255"`
	CustomerCompany *string                          `json:"customerCompany" validate:"omitempty,max=255"`
	Rating          *int                             `json:"rating" validate:"omitempty,min=1,max=5"`
	Enabled         *bool                            `json:"enabled"`
	Position        *int                             `json:"position"`
	CaseStudyID     *uint                            `json:"caseStudyId"`
	Translations    []CustomerReviewTranslationInput `json:"translations" validate:"dive"`
}

type CertificationTranslationInput struct {
	TranslationInput
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

type CreateCertificationInput struct {
	Code          string                          `json:"code" validate:"required,max=255"`
	Position      *int                            `json:"position"`
	Enabled       *bool                           `json:"enabled"`
	IconID        *string                         `json:"iconId"`
	CertificateID *string                         `json:"certificateId"`
	Translations  []CertificationTranslationInput `json:"translations" validate:"required,min=1,dive"`
}

type UpdateCertificationInput struct {
	ID            uint                            `json:"id" validate:"required"`
	Code          *string                         `json:"code" validate:"omitempty,min=1,max=255"`
	Position      *int                            `json:"position"`
	Enabled       *bool                           `json:"enabled"`
	IconID        *string                         `json:"iconId"`
	CertificateID *string                         `json:"certificateId"`
	Translations  []CertificationTranslationInput `json:"translations" validate:"dive"`
}

type TeamMemberTranslationInput struct {
	TranslationInput
	JobTitle string  `json:"jobTitle" validate:"required,max=255"`
	Bio      *string `json:"bio"`
}

type CreateTeamMemberInput struct {
	Name         string                       `json:"name" validate:"required,max=255"`
	Email        *string                      `json:"email" validate:"omitempty,email,max=255"`
	Position     *int                         `json:"position"`
	Enabled      *bool                        `json:"enabled"`
	PhotoID      *string                      `json:"photoId"`
	Translations []TeamMemberTranslationInput `json:"translations" validate:"required,min=1,dive"`
}

type UpdateTeamMemberInput struct {
	ID           uint                         `json:"id" validate:"required"`
	Name         *string                      `json:"name" validate:"omitempty,min=1,max=255"`
	Email        *string                      `json:"email" validate:"omitempty,email,max=255"`
	Position     *int                         `json:"position"`
	Enabled      *bool                        `json:"enabled"`
	PhotoID      *string                      `json:"photoId"`
	Translations []TeamMemberTranslationInput `json:"translations" validate:"dive"`
}

type CompanyTimelineTranslationInput struct {
	TranslationInput
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
}

type CreateCompanyTimelineInput struct {
	Year         int                               `json:"year" validate:"required,min=1800,max=3000"`
	Position     *int                              `json:"position"`
	Enabled      *bool                             `json:"enabled"`
	ImageID      *string                           `json:"imageId"`
	Translations []CompanyTimelineTranslationInput `json:"translations" validate:"required,min=1,dive"`
}

type UpdateCompanyTimelineInput struct {
	ID           uint                              `json:"id" validate:"required"`
	Year         *int                              `json:"year" validate:"omitempty,min=1800,max=3000"`
	Position     *int                              `json:"position"`
	Enabled      *bool                             `json:"enabled"`
	ImageID      *string                           `json:"imageId"`
	Translations []CompanyTimelineTranslationInput `json:"translations" validate:"dive"`
}
