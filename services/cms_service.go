package services

import (
	"context"
	"sort"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"showcase/api/logger"
	"showcase/api/models"
	"showcase/api/store"
)

const defaultReviewRating = 5

// CMSService manages the translatable storefront content.
type CMSService struct {
	Banners          *ContentService[models.Banner]
	Pages            *ContentService[models.Page]
	CaseCategories   *ContentService[models.CaseCategory]
	CaseStudies      *ContentService[models.CaseStudy]
	CustomerReviews  *ContentService[models.CustomerReview]
	Certifications   *ContentService[models.Certification]
	TeamMembers      *ContentService[models.TeamMember]
	CompanyTimelines *ContentService[models.CompanyTimeline]
}

func NewCMSService(db *gorm.DB, log *logger.Logger) *CMSService {
	v := newValidator()
	log = log.With("component", "cms")
	return &CMSService{
		Banners:        newContentService(store.NewContentStore[models.Banner](db), "banner", v, log),
		Pages:          newContentService(store.NewContentStore[models.Page](db), "page", v, log),
		CaseCategories: newContentService(store.NewContentStore[models.CaseCategory](db), "case category", v, log),
		CaseStudies: newContentService(
			store.NewContentStore[models.CaseStudy](db, "Category", "Category.Translations", "Reviews", "Reviews.Translations").
				OmitOnSave("Category", "Reviews"),
			"case study", v, log),
		CustomerReviews:  newContentService(store.NewContentStore[models.CustomerReview](db), "customer review", v, log),
		Certifications:   newContentService(store.NewContentStore[models.Certification](db), "certification", v, log),
		TeamMembers:      newContentService(store.NewContentStore[models.TeamMember](db), "team member", v, log),
		CompanyTimelines: newContentService(store.NewContentStore[models.CompanyTimeline](db), "company timeline entry", v, log),
	}
}

// EnabledCaseStudies lists enabled case studies, optionally in one category,
// keeping only their enabled reviews.
func (s *CMSService) EnabledCaseStudies(ctx context.Context, categoryID *uint) ([]models.CaseStudy, error) {
	var extra map[string]interface{}
	if categoryID != nil {
		extra = map[string]interface{}{"category_id": *categoryID}
	}
	studies, err := s.CaseStudies.Enabled(ctx, extra)
	if err != nil {
		return nil, err
	}
	for i := range studies {
		studies[i].Reviews = visibleReviews(studies[i].Reviews)
	}
	return studies, nil
}

// LookupCaseStudy finds an enabled case study by id or slug.
func (s *CMSService) LookupCaseStudy(ctx context.Context, id *uint, slug *string) (*models.CaseStudy, error) {
	cs, err := s.CaseStudies.Lookup(ctx, id, "slug", slug)
	if err != nil || cs == nil {
		return cs, err
	}
	cs.Reviews = visibleReviews(cs.Reviews)
	return cs, nil
}

func visibleReviews(reviews []models.CustomerReview) []models.CustomerReview {
	out := make([]models.CustomerReview, 0, len(reviews))
	for _, r := range reviews {
		if r.Enabled {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *CMSService) CreateBanner(ctx context.Context, in models.CreateBannerInput) (*models.Banner, error) {
	b := &models.Banner{
		Code:     in.Code,
		Position: valueOr(in.Position, 0),
		Enabled:  valueOr(in.Enabled, true),
		Link:     in.Link,
		ImageID:  in.ImageID,
	}
	b.Translations = mergeTranslations(b.Translations, in.Translations, applyBannerTranslation)
	return s.Banners.create(ctx, in, b)
}

func (s *CMSService) UpdateBanner(ctx context.Context, in models.UpdateBannerInput) (*models.Banner, error) {
	return s.Banners.update(ctx, in, in.ID, func(b *models.Banner) {
		setIf(&b.Code, in.Code)
		setIf(&b.Position, in.Position)
		setIf(&b.Enabled, in.Enabled)
		if in.Link != nil {
			b.Link = in.Link
		}
		if in.ImageID != nil {
			b.ImageID = in.ImageID
		}
		b.Translations = mergeTranslations(b.Translations, in.Translations, applyBannerTranslation)
	})
}

func applyBannerTranslation(t *models.BannerTranslation, in models.BannerTranslationInput) {
	t.Title = in.Title
	setIf(&t.Subtitle, in.Subtitle)
}

func (s *CMSService) CreatePage(ctx context.Context, in models.CreatePageInput) (*models.Page, error) {
	p := &models.Page{Slug: in.Slug, Enabled: valueOr(in.Enabled, true)}
	p.Translations = mergeTranslations(p.Translations, in.Translations, applyPageTranslation)
	return s.Pages.create(ctx, in, p)
}

func (s *CMSService) UpdatePage(ctx context.Context, in models.UpdatePageInput) (*models.Page, error) {
	return s.Pages.update(ctx, in, in.ID, func(p *models.Page) {
		setIf(&p.Slug, in.Slug)
		setIf(&p.Enabled, in.Enabled)
		p.Translations = mergeTranslations(p.Translations, in.Translations, applyPageTranslation)
	})
}

func applyPageTranslation(t *models.PageTranslation, in models.PageTranslationInput) {
	t.Title = in.Title
	setIf(&t.Content, in.Content)
	if in.SeoTitle != nil {
		t.SeoTitle = in.SeoTitle
	}
	if in.SeoDescription != nil {
		t.SeoDescription = in.SeoDescription
	}
}

func (s *CMSService) CreateCaseCategory(ctx context.Context, in models.CreateCaseCategoryInput) (*models.CaseCategory, error) {
	c := &models.CaseCategory{Code: in.Code, Position: valueOr(in.Position, 0)}
	c.Translations = mergeTranslations(c.Translations, in.Translations, applyCaseCategoryTranslation)
	return s.CaseCategories.create(ctx, in, c)
}

func (s *CMSService) UpdateCaseCategory(ctx context.Context, in models.UpdateCaseCategoryInput) (*models.CaseCategory, error) {
	return s.CaseCategories.update(ctx, in, in.ID, func(c *models.CaseCategory) {
		setIf(&c.Code, in.Code)
		setIf(&c.Position, in.Position)
		c.Translations = mergeTranslations(c.Translations, in.Translations, applyCaseCategoryTranslation)
	})
}

func applyCaseCategoryTranslation(t *models.CaseCategoryTranslation, in models.CaseCategoryTranslationInput) {
	t.Name = in.Name
}

func (s *CMSService) CreateCaseStudy(ctx context.Context, in models.CreateCaseStudyInput) (*models.CaseStudy, error) {
	cs := &models.CaseStudy{
		Slug:            in.Slug,
		Enabled:         valueOr(in.Enabled, true),
		Position:        valueOr(in.Position, 0),
		Location:        in.Location,
		CompletedAt:     in.CompletedAt,
		CategoryID:      in.CategoryID,
		BeforeImageID:   in.BeforeImageID,
		AfterImageID:    in.AfterImageID,
		FeaturedImageID: in.FeaturedImageID,
		GalleryIDs:      datatypes.JSONSlice[string](nonNilStrings(in.GalleryIDs)),
	}
	cs.Translations = mergeTranslations(cs.Translations, in.Translations, applyCaseStudyTranslation)
	created, err := s.CaseStudies.create(ctx, in, cs)
	if err != nil {
		return nil, err
	}
	return s.CaseStudies.Get(ctx, created.ID)
}

func (s *CMSService) UpdateCaseStudy(ctx context.Context, in models.UpdateCaseStudyInput) (*models.CaseStudy, error) {
	return s.CaseStudies.update(ctx, in, in.ID, func(cs *models.CaseStudy) {
		setIf(&cs.Slug, in.Slug)
		setIf(&cs.Enabled, in.Enabled)
		setIf(&cs.Position, in.Position)
		if in.Location != nil {
			cs.Location = in.Location
		}
		if in.CompletedAt != nil {
			cs.CompletedAt = in.CompletedAt
		}
		if in.CategoryID != nil {
			cs.CategoryID = in.CategoryID
			cs.Category = nil
		}
		if in.BeforeImageID != nil {
			cs.BeforeImageID = in.BeforeImageID
		}
		if in.AfterImageID != nil {
			cs.AfterImageID = in.AfterImageID
		}
		if in.FeaturedImageID != nil {
			cs.FeaturedImageID = in.FeaturedImageID
		}
		if in.GalleryIDs != nil {
			cs.GalleryIDs = datatypes.JSONSlice[string](in.GalleryIDs)
		}
		cs.Translations = mergeTranslations(cs.Translations, in.Translations, applyCaseStudyTranslation)
	})
}

func applyCaseStudyTranslation(t *models.CaseStudyTranslation, in models.CaseStudyTranslationInput) {
	t.Title = in.Title
	setIf(&t.Description, in.Description)
	setIf(&t.Content, in.Content)
}

func (s *CMSService) CreateCustomerReview(ctx context.Context, in models.CreateCustomerReviewInput) (*models.CustomerReview, error) {
	r := &models.CustomerReview{
		CustomerName:    in.CustomerName,
		CustomerCompany: in.CustomerCompany,
		Rating:          valueOr(in.Rating, defaultReviewRating),
		Enabled:         valueOr(in.Enabled, true),
		Position:        valueOr(in.Position, 0),
		CaseStudyID:     in.CaseStudyID,
	}
	r.Translations = mergeTranslations(r.Translations, in.Translations, applyCustomerReviewTranslation)
	return s.CustomerReviews.create(ctx, in, r)
}

func (s *CMSService) UpdateCustomerReview(ctx context.Context, in models.UpdateCustomerReviewInput) (*models.CustomerReview, error) {
	return s.CustomerReviews.update(ctx, in, in.ID, func(r *models.CustomerReview) {
		setIf(&r.CustomerName, in.CustomerName)
		if in.CustomerCompany != nil {
			r.CustomerCompany = in.CustomerCompany
		}
		setIf(&r.Rating, in.Rating)
		setIf(&r.Enabled, in.Enabled)
		setIf(&r.Position, in.Position)
		if in.CaseStudyID != nil {
			r.CaseStudyID = in.CaseStudyID
		}
		r.Translations = mergeTranslations(r.Translations, in.Translations, applyCustomerReviewTranslation)
	})
}

func applyCustomerReviewTranslation(t *models.CustomerReviewTranslation, in models.CustomerReviewTranslationInput) {
	t.Content = in.Content
}

func (s *CMSService) CreateCertification(ctx context.Context, in models.CreateCertificationInput) (*models.Certification, error) {
	c := &models.Certification{
		Code:          in.Code,
		Position:      valueOr(in.Position, 0),
		Enabled:       valueOr(in.Enabled, true),
		IconID:        in.IconID,
		CertificateID: in.CertificateID,
	}
	c.Translations = mergeTranslations(c.Translations, in.Translations, applyCertificationTranslation)
	return s.Certifications.create(ctx, in, c)
}

func (s *CMSService) UpdateCertification(ctx context.Context, in models.UpdateCertificationInput) (*models.Certification, error) {
	return s.Certifications.update(ctx, in, in.ID, func(c *models.Certification) {
		setIf(&c.Code, in.Code)
		setIf(&c.Position, in.Position)
		setIf(&c.Enabled, in.Enabled)
		if in.IconID != nil {
			c.IconID = in.IconID
		}
		if in.CertificateID != nil {
			c.CertificateID = in.CertificateID
		}
		c.Translations = mergeTranslations(c.Translations, in.Translations, applyCertificationTranslation)
	})
}

func applyCertificationTranslation(t *models.CertificationTranslation, in models.CertificationTranslationInput) {
	t.Name = in.Name
	setIf(&t.Description, in.Description)
}

func (s *CMSService) CreateTeamMember(ctx context.Context, in models.CreateTeamMemberInput) (*models.TeamMember, error) {
	m := &models.TeamMember{
		Name:     in.Name,
		Email:    in.Email,
		Position: valueOr(in.Position, 0),
		Enabled:  valueOr(in.Enabled, true),
		PhotoID:  in.PhotoID,
	}
	m.Translations = mergeTranslations(m.Translations, in.Translations, applyTeamMemberTranslation)
	return s.TeamMembers.create(ctx, in, m)
}

func (s *CMSService) UpdateTeamMember(ctx context.Context, in models.UpdateTeamMemberInput) (*models.TeamMember, error) {
	return s.TeamMembers.update(ctx, in, in.ID, func(m *models.TeamMember) {
		setIf(&m.Name, in.Name)
		if in.Email != nil {
			m.Email = in.Email
		}
		setIf(&m.Position, in.Position)
		setIf(&m.Enabled, in.Enabled)
		if in.PhotoID != nil {
			m.PhotoID = in.PhotoID
		}
		m.Translations = mergeTranslations(m.Translations, in.Translations, applyTeamMemberTranslation)
	})
}

func applyTeamMemberTranslation(t *models.TeamMemberTranslation, in models.TeamMemberTranslationInput) {
	t.JobTitle = in.JobTitle
	setIf(&t.Bio, in.Bio)
}

func (s *CMSService) CreateCompanyTimeline(ctx context.Context, in models.CreateCompanyTimelineInput) (*models.CompanyTimeline, error) {
	e := &models.CompanyTimeline{
		Year:     in.Year,
		Position: valueOr(in.Position, 0),
		Enabled:  valueOr(in.Enabled, true),
		ImageID:  in.ImageID,
	}
	e.Translations = mergeTranslations(e.Translations, in.Translations, applyCompanyTimelineTranslation)
	return s.CompanyTimelines.create(ctx, in, e)
}

func (s *CMSService) UpdateCompanyTimeline(ctx context.Context, in models.UpdateCompanyTimelineInput) (*models.CompanyTimeline, error) {
	return s.CompanyTimelines.update(ctx, in, in.ID, func(e *models.CompanyTimeline) {
		setIf(&e.Year, in.Year)
		setIf(&e.Position, in.Position)
		setIf(&e.Enabled, in.Enabled)
		if in.ImageID != nil {
			e.ImageID = in.ImageID
		}
		e.Translations = mergeTranslations(e.Translations, in.Translations, applyCompanyTimelineTranslation)
	})
}

func applyCompanyTimelineTranslation(t *models.CompanyTimelineTranslation, in models.CompanyTimelineTranslationInput) {
	t.Title = in.Title
	setIf(&t.Description, in.Description)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
