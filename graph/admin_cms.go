package graph

import (
	"context"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"showcase/api/models"
	"showcase/api/services"
)

// listResolver backs every paginated XList type.
type listResolver[R any] struct {
	items []R
	total int
}

func (r *listResolver[R]) Items() []R        { return r.items }
func (r *listResolver[R]) TotalItems() int32 { return int32(r.total) }

func listContent[T any, R any](ctx context.Context, r *AdminResolver, op string, svc *services.ContentService[T], opts *listOptions, build func(*T, locale) R) (*listResolver[R], error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return nil, err
	}
	items, total, err := svc.List(ctx, opts.toModel())
	if err != nil {
		return nil, r.publicError(op, err)
	}
	return &listResolver[R]{items: mapAll(items, r.locale(ctx), build), total: total}, nil
}

func getContent[T any, R any](ctx context.Context, r *AdminResolver, op string, svc *services.ContentService[T], rawID graphql.ID, build func(*T, locale) *R) (*R, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return nil, err
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	entity, err := svc.Get(ctx, id)
	if err != nil {
		return nil, r.publicError(op, err)
	}
	if entity == nil {
		return nil, nil
	}
	return build(entity, r.locale(ctx)), nil
}

func deleteContent[T any](ctx context.Context, r *AdminResolver, op string, svc *services.ContentService[T], rawID graphql.ID) (*deletionResponseResolver, error) {
	if err := authorize(ctx, models.DeleteCatalog); err != nil {
		return nil, err
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Delete(ctx, id)
	if err != nil {
		return nil, r.publicError(op, err)
	}
	return &deletionResponseResolver{resp}, nil
}

// write authorizes p, runs fn and wraps its result.
func write[T any, R any](ctx context.Context, r *AdminResolver, op string, p models.Permission, fn func() (*T, error), build func(*T, locale) *R) (*R, error) {
	if err := authorize(ctx, p); err != nil {
		return nil, err
	}
	entity, err := fn()
	if err != nil {
		return nil, r.publicError(op, err)
	}
	return build(entity, r.locale(ctx)), nil
}

type listArgs struct {
	Options *listOptions
}

type idArgs struct {
	ID graphql.ID
}

func translate[G any, M any](in []G, conv func(G) M) []M {
	if in == nil {
		return nil
	}
	out := make([]M, len(in))
	for i, g := range in {
		out[i] = conv(g)
	}
	return out
}

func translateOptional[G any, M any](in *[]G, conv func(G) M) []M {
	if in == nil {
		return nil
	}
	return translate(*in, conv)
}

func idStrings(ids *[]graphql.ID) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(*ids))
	for i, id := range *ids {
		out[i] = string(id)
	}
	return out
}

func dateTimePtr(d *DateTime) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// Banners

type bannerTranslationInput struct {
	LanguageCode string
	Title        string
	Subtitle     *string
}

func (in bannerTranslationInput) toModel() models.BannerTranslationInput {
	return models.BannerTranslationInput{
		TranslationInput: models.TranslationInput{LanguageCode: in.LanguageCode},
		Title:            in.Title,
		Subtitle:         in.Subtitle,
	}
}

type createBannerInput struct {
	Code         string
	Position     *int32
	Enabled      *bool
	Link         *string
	ImageID      *graphql.ID
	Translations []bannerTranslationInput
}

type updateBannerInput struct {
	ID           graphql.ID
	Code         *string
	Position     *int32
	Enabled      *bool
	Link         *string
	ImageID      *graphql.ID
	Translations *[]bannerTranslationInput
}

func (r *AdminResolver) Banners(ctx context.Context, args listArgs) (*listResolver[*bannerResolver], error) {
	return listContent(ctx, r, "banners", r.CMS.Banners, args.Options, newBanner)
}

func (r *AdminResolver) Banner(ctx context.Context, args idArgs) (*bannerResolver, error) {
	return getContent(ctx, r, "banner", r.CMS.Banners, args.ID, newBanner)
}

func (r *AdminResolver) CreateBanner(ctx context.Context, args struct{ Input createBannerInput }) (*bannerResolver, error) {
	in := args.Input
	return write(ctx, r, "createBanner", models.CreateCatalog, func() (*models.Banner, error) {
		return r.CMS.CreateBanner(ctx, models.CreateBannerInput{
			Code:         in.Code,
			Position:     intPtr(in.Position),
			Enabled:      in.Enabled,
			Link:         in.Link,
			ImageID:      idString(in.ImageID),
			Translations: translate(in.Translations, bannerTranslationInput.toModel),
		})
	}, newBanner)
}

func (r *AdminResolver) UpdateBanner(ctx context.Context, args struct{ Input updateBannerInput }) (*bannerResolver, error) {
	in := args.Input
	return write(ctx, r, "updateBanner", models.UpdateCatalog, func() (*models.Banner, error) {
		id, err := parseID(in.ID)
		if err != nil {
			return nil, err
		}
		return r.CMS.UpdateBanner(ctx, models.UpdateBannerInput{
			ID:           id,
			Code:         in.Code,
			Position:     intPtr(in.Position),
			Enabled:      in.Enabled,
			Link:         in.Link,
			ImageID:      idString(in.ImageID),
			Translations: translateOptional(in.Translations, bannerTranslationInput.toModel),
		})
	}, newBanner)
}

func (r *AdminResolver) DeleteBanner(ctx context.Context, args idArgs) (*deletionResponseResolver, error) {
	return deleteContent(ctx, r, "deleteBanner", r.CMS.Banners, args.ID)
}

// Pages

type pageTranslationInput struct {
	LanguageCode   string
	Title          string
	Content        *string
	SeoTitle       *string
	SeoDescription *string
}

func (in pageTranslationInput) toModel() models.PageTranslationInput {
	return models.PageTranslationInput{
		TranslationInput: models.TranslationInput{LanguageCode: in.LanguageCode},
		Title:            in.Title,
		Content:          in.Content,
		SeoTitle:         in.SeoTitle,
		SeoDescription:   in.SeoDescription,
	}
}

type createPageInput struct {
	Slug         string
	Enabled      *bool
	Translations []pageTranslationInput
}

type updatePageInput struct {
	ID           graphql.ID
	Slug         *string
	Enabled      *bool
	Translations *[]pageTranslationInput
}

func (r *AdminResolver) Pages(ctx context.Context, args listArgs) (*listResolver[*pageResolver], error) {
	return listContent(ctx, r, "pages", r.CMS.Pages, args.Options, newPage)
}

func (r *AdminResolver) Page(ctx context.Context, args idArgs) (*pageResolver, error) {
	return getContent(ctx, r, "page", r.CMS.Pages, args.ID, newPage)
}

func (r *AdminResolver) CreatePage(ctx context.Context, args struct{ Input createPageInput }) (*pageResolver, error) {
	in := args.Input
	return write(ctx, r, "createPage", models.CreateCatalog, func() (*models.Page, error) {
		return r.CMS.CreatePage(ctx, models.CreatePageInput{
			Slug:         in.Slug,
			Enabled:      in.Enabled,
			Translations: translate(in.Translations, pageTranslationInput.toModel),
		})
	}, newPage)
}

func (r *AdminResolver) UpdatePage(ctx context.Context, args struct{ Input updatePageInput }) (*pageResolver, error) {
	in := args.Input
	return write(ctx, r, "updatePage", models.UpdateCatalog, func() (*models.Page, error) {
		id, err := parseID(in.ID)
		if err != nil {
			return nil, err
		}
		return r.CMS.UpdatePage(ctx, models.UpdatePageInput{
			ID:           id,
			Slug:         in.Slug,
			Enabled:      in.Enabled,
			Translations: translateOptional(in.Translations, pageTranslationInput.toModel),
		})
	}, newPage)
}

func (r *AdminResolver) DeletePage(ctx context.Context, args idArgs) (*deletionResponseResolver, error) {
	return deleteContent(ctx, r, "deletePage", r.CMS.Pages, args.ID)
}

// Case categories

type caseCategoryTranslationInput struct {
	LanguageCode string
	Name         string
}

func (in caseCategoryTranslationInput) toModel() models.CaseCategoryTranslationInput {
	return models.CaseCategoryTranslationInput{
		TranslationInput: models.TranslationInput{LanguageCode: in.LanguageCode},
		Name:             in.Name,
	}
}

type createCaseCategoryInput struct {
	Code         string
	Position     *int32
	Translations []caseCategoryTranslationInput
}

type updateCaseCategoryInput struct {
	ID           graphql.ID
	Code         *string
	Position     *int32
	Translations *[]caseCategoryTranslationInput
}

func (r *AdminResolver) CaseCategories(ctx context.Context, args listArgs) (*listResolver[*caseCategoryResolver], error) {
	return listContent(ctx, r, "caseCategories", r.CMS.CaseCategories, args.Options, newCaseCategory)
}

func (r *AdminResolver) CaseCategory(ctx context.Context, args idArgs) (*caseCategoryResolver, error) {
	return getContent(ctx, r, "caseCategory", r.CMS.CaseCategories, args.ID, newCaseCategory)
}

func (r *AdminResolver) CreateCaseCategory(ctx context.Context, args struct{ Input createCaseCategoryInput }) (*caseCategoryResolver, error) {
	in := args.Input
	return write(ctx, r, "createCaseCategory", models.CreateCatalog, func() (*models.CaseCategory, error) {
		return r.CMS.CreateCaseCategory(ctx, models.CreateCaseCategoryInput{
			Code:         in.Code,
			Position:     intPtr(in.Position),
			Translations: translate(in.Translations, caseCategoryTranslationInput.toModel),
		})
	}, newCaseCategory)
}

func (r *AdminResolver) UpdateCaseCategory(ctx context.Context, args struct{ Input updateCaseCategoryInput }) (*caseCategoryResolver, error) {
	in := args.Input
	return write(ctx, r, "updateCaseCategory", models.UpdateCatalog, func() (*models.CaseCategory, error) {
		id, err := parseID(in.ID)
		if err != nil {
			return nil, err
		}
		return r.CMS.UpdateCaseCategory(ctx, models.UpdateCaseCategoryInput{
			ID:           id,
			Code:         in.Code,
			Position:     intPtr(in.Position),
			Translations: translateOptional(in.Translations, caseCategoryTranslationInput.toModel),
		})
	}, newCaseCategory)
}

func (r *AdminResolver) DeleteCaseCategory(ctx context.Context, args idArgs) (*deletionResponseResolver, error) {
	return deleteContent(ctx, r, "deleteCaseCategory", r.CMS.CaseCategories, args.ID)
}

// Case studies

type caseStudyTranslationInput struct {
	LanguageCode string
	Title        string
	Description  *string
	Content      *string
}

func (in caseStudyTranslationInput) toModel() models.CaseStudyTranslationInput {
	return models.CaseStudyTranslationInput{
		TranslationInput: models.TranslationInput{LanguageCode: in.LanguageCode},
		Title:            in.Title,
		Description:      in.Description,
		Content:          in.Content,
	}
}

type createCaseStudyInput struct {
	Slug            string
	Enabled         *bool
	Position        *int32
	Location        *string
	CompletedAt     *DateTime
	CategoryID      *graphql.ID
	BeforeImageID   *graphql.ID
	AfterImageID    *graphql.ID
	FeaturedImageID *graphql.ID
	GalleryIDs      *[]graphql.ID
	Translations    []caseStudyTranslationInput
}

type updateCaseStudyInput struct {
	ID              graphql.ID
	Slug            *string
	Enabled         *bool
	Position        *int32
	Location        *string
	CompletedAt     *DateTime
	CategoryID      *graphql.ID
	BeforeImageID   *graphql.ID
	AfterImageID    *graphql.ID
	FeaturedImageID *graphql.ID
	GalleryIDs      *[]graphql.ID
	Translations    *[]caseStudyTranslationInput
}

func (r *AdminResolver) CaseStudies(ctx context.Context, args listArgs) (*listResolver[*caseStudyResolver], error) {
	return listContent(ctx, r, "caseStudies", r.CMS.CaseStudies, args.Options, newCaseStudy)
}

func (r *AdminResolver) CaseStudy(ctx context.Context, args idArgs) (*caseStudyResolver, error) {
	return getContent(ctx, r, "caseStudy", r.CMS.CaseStudies, args.ID, newCaseStudy)
}

func (r *AdminResolver) CreateCaseStudy(ctx context.Context, args struct{ Input createCaseStudyInput }) (*caseStudyResolver, error) {
	in := args.Input
	return write(ctx, r, "createCaseStudy", models.CreateCatalog, func() (*models.CaseStudy, error) {
		categoryID, err := parseOptionalID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		return r.CMS.CreateCaseStudy(ctx, models.CreateCaseStudyInput{
			Slug:            in.Slug,
			Enabled:         in.Enabled,
			Position:        intPtr(in.Position),
			Location:        in.Location,
			CompletedAt:     dateTimePtr(in.CompletedAt),
			CategoryID:      categoryID,
			BeforeImageID:   idString(in.BeforeImageID),
			AfterImageID:    idString(in.AfterImageID),
			FeaturedImageID: idString(in.FeaturedImageID),
			GalleryIDs:      idStrings(in.GalleryIDs),
			Translations:    translate(in.Translations, caseStudyTranslationInput.toModel),
		})
	}, newCaseStudy)
}

func (r *AdminResolver) UpdateCaseStudy(ctx context.Context, args struct{ Input updateCaseStudyInput }) (*caseStudyResolver, error) {
	in := args.Input
	return write(ctx, r, "updateCaseStudy", models.UpdateCatalog, func() (*models.CaseStudy, error) {
		id, err := parseID(in.ID)
		if err != nil {
			return nil, err
		}
		categoryID, err := parseOptionalID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		return r.CMS.UpdateCaseStudy(ctx, models.UpdateCaseStudyInput{
			ID:              id,
			Slug:            in.Slug,
			Enabled:         in.Enabled,
			Position:        intPtr(in.Position),
			Location:        in.Location,
			CompletedAt:     dateTimePtr(in.CompletedAt),
			CategoryID:      categoryID,
			BeforeImageID:   idString(in.BeforeImageID),
			AfterImageID:    idString(in.AfterImageID),
			FeaturedImageID: idString(in.FeaturedImageID),
			GalleryIDs:      idStrings(in.GalleryIDs),
			Translations:    translateOptional(in.Translations, caseStudyTranslationInput.toModel),
		})
	}, newCaseStudy)
}

func (r *AdminResolver) DeleteCaseStudy(ctx context.Context, args idArgs) (*deletionResponseResolver, error) {
	return deleteContent(ctx, r, "deleteCaseStudy", r.CMS.CaseStudies, args.ID)
}

// Customer reviews

type customerReviewTranslationInput struct {
	LanguageCode string
	Content      string
}

func (in customerReviewTranslationInput) toModel() models.CustomerReviewTranslationInput {
	return models.CustomerReviewTranslationInput{
		TranslationInput: models.TranslationInput{LanguageCode: in.LanguageCode},
		Content:          in.Content,
	}
}

type createCustomerReviewInput struct {
	CustomerName    string
	CustomerCompany *string
	Rating          *int32
	Enabled         *bool
	Position        *int32
	CaseStudyID     *graphql.ID
	Translations    []customerReviewTranslationInput
}

type updateCustomerReviewInput struct {
	ID              graphql.ID
	CustomerName    *string
	CustomerCompany *string
	Rating          *int32
	Enabled         *bool
	Position        *int32
	CaseStudyID     *graphql.ID
	Translations    *[]customerReviewTranslationInput
}

func (r *AdminResolver) CustomerReviews(ctx context.Context, args listArgs) (*listResolver[*customerReviewResolver], error) {
	return listContent(ctx, r, "customerReviews", r.CMS.CustomerReviews, args.Options, newCustomerReview)
}

func (r *AdminResolver) CustomerReview(ctx context.Context, args idArgs) (*customerReviewResolver, error) {
	return getContent(ctx, r, "customerReview", r.CMS.CustomerReviews, args.ID, newCustomerReview)
}

func (r *AdminResolver) CreateCustomerReview(ctx context.Context, args struct{ Input createCustomerReviewInput }) (*customerReviewResolver, error) {
	in := args.Input
	return write(ctx, r, "createCustomerReview", models.CreateCatalog, func() (*models.CustomerReview, error) {
		caseStudyID, err := parseOptionalID(in.CaseStudyID)
		if err != nil {
			return nil, err
		}
		return r.CMS.CreateCustomerReview(ctx, models.CreateCustomerReviewInput{
			CustomerName:    in.CustomerName,
			CustomerCompany: in.CustomerCompany,
			Rating:          intPtr(in.Rating),
			Enabled:         in.Enabled,
			Position:        intPtr(in.Position),
			CaseStudyID:     caseStudyID,
			Translations:    translate(in.Translations, customerReviewTranslationInput.toModel),
		})
	}, newCustomerReview)
}

func (r *AdminResolver) UpdateCustomerReview(ctx context.Context, args struct{ Input updateCustomerReviewInput }) (*customerReviewResolver, error) {
	in := args.Input
	return write(ctx, r, "updateCustomerReview", models.UpdateCatalog, func() (*models.CustomerReview, error) {
		id, err := parseID(in.ID)
		if err != nil {
			return nil, err
		}
		caseStudyID, err := parseOptionalID(in.CaseStudyID)
		if err != nil {
			return nil, err
		}
		return r.CMS.UpdateCustomerReview(ctx, models.UpdateCustomerReviewInput{
			ID:              id,
			CustomerName:    in.CustomerName,
			CustomerCompany: in.CustomerCompany,
			Rating:          intPtr(in.Rating),
			Enabled:         in.Enabled,
			Position:        intPtr(in.Position),
			CaseStudyID:     caseStudyID,
			Translations:    translateOptional(in.Translations, customerReviewTranslationInput.toModel),
		})
	}, newCustomerReview)
}

func (r *AdminResolver) DeleteCustomerReview(ctx context.Context, args idArgs) (*deletionResponseResolver, error) {
	return deleteContent(ctx, r, "deleteCustomerReview", r.CMS.CustomerReviews, args.ID)
}

// Certifications

type certificationTranslationInput struct {
	LanguageCode string
	Name         string
	Description  *string
}

func (in certificationTranslationInput) toModel() models.CertificationTranslationInput {
	return models.CertificationTranslationInput{
		TranslationInput: models.TranslationInput{LanguageCode: in.LanguageCode},
		Name:             in.Name,
		Description:      in.Description,
	}
}

type createCertificationInput struct {
	Code          string
	Position      *int32
	Enabled       *bool
	IconID        *graphql.ID
	CertificateID *graphql.ID
	Translations  []certificationTranslationInput
}

type updateCertificationInput struct {
	ID            graphql.ID
	Code          *string
	Position      *int32
	Enabled       *bool
	IconID        *graphql.ID
	CertificateID *graphql.ID
	Translations  *[]certificationTranslationInput
}

func (r *AdminResolver) Certifications(ctx context.Context, args listArgs) (*listResolver[*certificationResolver], error) {
	return listContent(ctx, r, "certifications", r.CMS.Certifications, args.Options, newCertification)
}

func (r *AdminResolver) Certification(ctx context.Context, args idArgs) (*certificationResolver, error) {
	return getContent(ctx, r, "certification", r.CMS.Certifications, args.ID, newCertification)
}

func (r *AdminResolver) CreateCertification(ctx context.Context, args struct{ Input createCertificationInput }) (*certificationResolver, error) {
	in := args.Input
	return write(ctx, r, "createCertification", models.CreateCatalog, func() (*models.Certification, error) {
		return r.CMS.CreateCertification(ctx, models.CreateCertificationInput{
			Code:          in.Code,
			Position:      intPtr(in.Position),
			Enabled:       in.Enabled,
			IconID:        idString(in.IconID),
			CertificateID: idString(in.CertificateID),
			Translations:  translate(in.Translations, certificationTranslationInput.toModel),
		})
	}, newCertification)
}

func (r *AdminResolver) UpdateCertification(ctx context.Context, args struct{ Input updateCertificationInput }) (*certificationResolver, error) {
	in := args.Input
	return write(ctx, r, "updateCertification", models.UpdateCatalog, func() (*models.Certification, error) {
		id, err := parseID(in.ID)
		if err != nil {
			return nil, err
		}
		return r.CMS.UpdateCertification(ctx, models.UpdateCertificationInput{
			ID:            id,
			Code:          in.Code,
			Position:      intPtr(in.Position),
			Enabled:       in.Enabled,
			IconID:        idString(in.IconID),
			CertificateID: idString(in.CertificateID),
			Translations:  translateOptional(in.Translations, certificationTranslationInput.toModel),
		})
	}, newCertification)
}

func (r *AdminResolver) DeleteCertification(ctx context.Context, args idArgs) (*deletionResponseResolver, error) {
	return deleteContent(ctx, r, "deleteCertification", r.CMS.Certifications, args.ID)
}

// Team members

type teamMemberTranslationInput struct {
	LanguageCode string
	JobTitle     string
	Bio          *string
}

func (in teamMemberTranslationInput) toModel() models.TeamMemberTranslationInput {
	return models.TeamMemberTranslationInput{
		TranslationInput: models.TranslationInput{LanguageCode: in.LanguageCode},
		JobTitle:         in.JobTitle,
		Bio:              in.Bio,
	}
}

type createTeamMemberInput struct {
	Name         string
	Email        *string
	Position     *int32
	Enabled      *bool
	PhotoID      *graphql.ID
	Translations []teamMemberTranslationInput
}

type updateTeamMemberInput struct {
	ID           graphql.ID
	Name         *string
	Email        *string
	Position     *int32
	Enabled      *bool
	PhotoID      *graphql.ID
	Translations *[]teamMemberTranslationInput
}

func (r *AdminResolver) TeamMembers(ctx context.Context, args listArgs) (*listResolver[*teamMemberResolver], error) {
	return listContent(ctx, r, "teamMembers", r.CMS.TeamMembers, args.Options, newTeamMember)
}

func (r *AdminResolver) TeamMember(ctx context.Context, args idArgs) (*teamMemberResolver, error) {
	return getContent(ctx, r, "teamMember", r.CMS.TeamMembers, args.ID, newTeamMember)
}

func (r *AdminResolver) CreateTeamMember(ctx context.Context, args struct{ Input createTeamMemberInput }) (*teamMemberResolver, error) {
	in := args.Input
	return write(ctx, r, "createTeamMember", models.CreateCatalog, func() (*models.TeamMember, error) {
		return r.CMS.CreateTeamMember(ctx, models.CreateTeamMemberInput{
			Name:         in.Name,
			Email:        in.Email,
			Position:     intPtr(in.Position),
			Enabled:      in.Enabled,
			PhotoID:      idString(in.PhotoID),
			Translations: translate(in.Translations, teamMemberTranslationInput.toModel),
		})
	}, newTeamMember)
}

func (r *AdminResolver) UpdateTeamMember(ctx context.Context, args struct{ Input updateTeamMemberInput }) (*teamMemberResolver, error) {
	in := args.Input
	return write(ctx, r, "updateTeamMember", models.UpdateCatalog, func() (*models.TeamMember, error) {
		id, err := parseID(in.ID)
		if err != nil {
			return nil, err
		}
		return r.CMS.UpdateTeamMember(ctx, models.UpdateTeamMemberInput{
			ID:           id,
			Name:         in.Name,
			Email:        in.Email,
			Position:     intPtr(in.Position),
			Enabled:      in.Enabled,
			PhotoID:      idString(in.PhotoID),
			Translations: translateOptional(in.Translations, teamMemberTranslationInput.toModel),
		})
	}, newTeamMember)
}

func (r *AdminResolver) DeleteTeamMember(ctx context.Context, args idArgs) (*deletionResponseResolver, error) {
	return deleteContent(ctx, r, "deleteTeamMember", r.CMS.TeamMembers, args.ID)
}

// Company timeline

type companyTimelineTranslationInput struct {
	LanguageCode string
	Title        string
	Description  *string
}

func (in companyTimelineTranslationInput) toModel() models.CompanyTimelineTranslationInput {
	return models.CompanyTimelineTranslationInput{
		TranslationInput: models.TranslationInput{LanguageCode: in.LanguageCode},
		Title:            in.Title,
		Description:      in.Description,
	}
}

type createCompanyTimelineInput struct {
	Year         int32
	Position     *int32
	Enabled      *bool
	ImageID      *graphql.ID
	Translations []companyTimelineTranslationInput
}

type updateCompanyTimelineInput struct {
	ID           graphql.ID
	Year         *int32
	Position     *int32
	Enabled      *bool
	ImageID      *graphql.ID
	Translations *[]companyTimelineTranslationInput
}

func (r *AdminResolver) CompanyTimeline(ctx context.Context, args listArgs) (*listResolver[*companyTimelineResolver], error) {
	return listContent(ctx, r, "companyTimeline", r.CMS.CompanyTimelines, args.Options, newCompanyTimeline)
}

func (r *AdminResolver) CompanyTimelineEntry(ctx context.Context, args idArgs) (*companyTimelineResolver, error) {
	return getContent(ctx, r, "companyTimelineEntry", r.CMS.CompanyTimelines, args.ID, newCompanyTimeline)
}

func (r *AdminResolver) CreateCompanyTimeline(ctx context.Context, args struct{ Input createCompanyTimelineInput }) (*companyTimelineResolver, error) {
	in := args.Input
	return write(ctx, r, "createCompanyTimeline", models.CreateCatalog, func() (*models.CompanyTimeline, error) {
		return r.CMS.CreateCompanyTimeline(ctx, models.CreateCompanyTimelineInput{
			Year:         int(in.Year),
			Position:     intPtr(in.Position),
			Enabled:      in.Enabled,
			ImageID:      idString(in.ImageID),
			Translations: translate(in.Translations, companyTimelineTranslationInput.toModel),
		})
	}, newCompanyTimeline)
}

func (r *AdminResolver) UpdateCompanyTimeline(ctx context.Context, args struct{ Input updateCompanyTimelineInput }) (*companyTimelineResolver, error) {
	in := args.Input
	return write(ctx, r, "updateCompanyTimeline", models.UpdateCatalog, func() (*models.CompanyTimeline, error) {
		id, err := parseID(in.ID)
		if err != nil {
			return nil, err
		}
		return r.CMS.UpdateCompanyTimeline(ctx, models.UpdateCompanyTimelineInput{
			ID:           id,
			Year:         intPtr(in.Year),
			Position:     intPtr(in.Position),
			Enabled:      in.Enabled,
			ImageID:      idString(in.ImageID),
			Translations: translateOptional(in.Translations, companyTimelineTranslationInput.toModel),
		})
	}, newCompanyTimeline)
}

func (r *AdminResolver) DeleteCompanyTimeline(ctx context.Context, args idArgs) (*deletionResponseResolver, error) {
	return deleteContent(ctx, r, "deleteCompanyTimeline", r.CMS.CompanyTimelines, args.ID)
}
