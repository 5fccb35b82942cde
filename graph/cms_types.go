package graph

import (
	graphql "github.com/graph-gophers/graphql-go"

	"showcase/api/models"
	"showcase/api/services"
)

type contentFields struct {
	base models.ContentBase
}

func (r contentFields) ID() graphql.ID { return toID(r.base.ID) }
func (r contentFields) CreatedAt() DateTime { return newDateTime(r.base.CreatedAt) }
func (r contentFields) UpdatedAt() DateTime { return newDateTime(r.base.UpdatedAt) }

type translationFields struct {
	base models.TranslationBase
}

func (r translationFields) ID() graphql.ID { return toID(r.base.ID) }
func (r translationFields) LanguageCode() string { return r.base.LanguageCode }

// picked is the translation chosen for the caller's language.
type picked struct {
	code *string
}

func (p picked) LanguageCode() *string { return p.code }

// pick resolves the translation for l. The zero value stands in when an
// entity has no translations at all.
func pick[T interface{ Language() string }](ts []T, l locale) (*T, picked) {
	t := services.PickTranslation(ts, l.lang, l.fallback)
	if t == nil {
		return new(T), picked{}
	}
	code := (*t).Language()
	return t, picked{code: &code}
}

type bannerResolver struct {
	contentFields
	picked
	b *models.Banner
	t *models.BannerTranslation
}

func newBanner(b *models.Banner, l locale) *bannerResolver {
	t, p := pick(b.Translations, l)
	return &bannerResolver{contentFields: contentFields{b.ContentBase}, picked: p, b: b, t: t}
}

func (r *bannerResolver) Code() string { return r.b.Code }
func (r *bannerResolver) Position() int32 { return int32(r.b.Position) }
func (r *bannerResolver) Enabled() bool { return r.b.Enabled }
func (r *bannerResolver) Link() *string { return r.b.Link }
func (r *bannerResolver) ImageID() *graphql.ID { return optionalID(r.b.ImageID) }
func (r *bannerResolver) Title() string { return r.t.Title }
func (r *bannerResolver) Subtitle() string { return r.t.Subtitle }

func (r *bannerResolver) Translations() []*bannerTranslationResolver {
	out := make([]*bannerTranslationResolver, len(r.b.Translations))
	for i := range r.b.Translations {
		out[i] = &bannerTranslationResolver{translationFields{r.b.Translations[i].TranslationBase}, &r.b.Translations[i]}
	}
	return out
}

type bannerTranslationResolver struct {
	translationFields
	t *models.BannerTranslation
}

func (r *bannerTranslationResolver) Title() string { return r.t.Title }
func (r *bannerTranslationResolver) Subtitle() string { return r.t.Subtitle }

type pageResolver struct {
	contentFields
	picked
	p *models.Page
	t *models.PageTranslation
}

func newPage(p *models.Page, l locale) *pageResolver {
	t, pk := pick(p.Translations, l)
	return &pageResolver{contentFields: contentFields{p.ContentBase}, picked: pk, p: p, t: t}
}

func (r *pageResolver) Slug() string { return r.p.Slug }
func (r *pageResolver) Enabled() bool { return r.p.Enabled }
func (r *pageResolver) Title() string { return r.t.Title }
func (r *pageResolver) Content() string { return r.t.Content }
func (r *pageResolver) SeoTitle() *string { return r.t.SeoTitle }
func (r *pageResolver) SeoDescription() *string { return r.t.SeoDescription }

func (r *pageResolver) Translations() []*pageTranslationResolver {
	out := make([]*pageTranslationResolver, len(r.p.Translations))
	for i := range r.p.Translations {
		out[i] = &pageTranslationResolver{translationFields{r.p.Translations[i].TranslationBase}, &r.p.Translations[i]}
	}
	return out
}

type pageTranslationResolver struct {
	translationFields
	t *models.PageTranslation
}

func (r *pageTranslationResolver) Title() string { return r.t.Title }
func (r *pageTranslationResolver) Content() string { return r.t.Content }
func (r *pageTranslationResolver) SeoTitle() *string { return r.t.SeoTitle }
func (r *pageTranslationResolver) SeoDescription() *string { return r.t.SeoDescription }

type caseCategoryResolver struct {
	contentFields
	picked
	c *models.CaseCategory
	t *models.CaseCategoryTranslation
}

func newCaseCategory(c *models.CaseCategory, l locale) *caseCategoryResolver {
	t, p := pick(c.Translations, l)
	return &caseCategoryResolver{contentFields: contentFields{c.ContentBase}, picked: p, c: c, t: t}
}

func (r *caseCategoryResolver) Code() string { return r.c.Code }
func (r *caseCategoryResolver) Position() int32 { return int32(r.c.Position) }
func (r *caseCategoryResolver) Name() string { return r.t.Name }

func (r *caseCategoryResolver) Translations() []*caseCategoryTranslationResolver {
	out := make([]*caseCategoryTranslationResolver, len(r.c.Translations))
	for i := range r.c.Translations {
		out[i] = &caseCategoryTranslationResolver{translationFields{r.c.Translations[i].TranslationBase}, &r.c.Translations[i]}
	}
	return out
}

type caseCategoryTranslationResolver struct {
	translationFields
	t *models.CaseCategoryTranslation
}

func (r *caseCategoryTranslationResolver) Name() string { return r.t.Name }

type caseStudyResolver struct {
	contentFields
	picked
	cs  *models.CaseStudy
	t   *models.CaseStudyTranslation
	loc locale
}

func newCaseStudy(cs *models.CaseStudy, l locale) *caseStudyResolver {
	t, p := pick(cs.Translations, l)
	return &caseStudyResolver{contentFields: contentFields{cs.ContentBase}, picked: p, cs: cs, t: t, loc: l}
}

func (r *caseStudyResolver) Slug() string { return r.cs.Slug }
func (r *caseStudyResolver) Enabled() bool { return r.cs.Enabled }
func (r *caseStudyResolver) Position() int32 { return int32(r.cs.Position) }
func (r *caseStudyResolver) Location() *string { return r.cs.Location }
func (r *caseStudyResolver) CompletedAt() *DateTime { return optionalDateTime(r.cs.CompletedAt) }
func (r *caseStudyResolver) BeforeImageID() *graphql.ID { return optionalID(r.cs.BeforeImageID) }
func (r *caseStudyResolver) AfterImageID() *graphql.ID { return optionalID(r.cs.AfterImageID) }
func (r *caseStudyResolver) FeaturedImageID() *graphql.ID { return optionalID(r.cs.FeaturedImageID) }
func (r *caseStudyResolver) Title() string { return r.t.Title }
func (r *caseStudyResolver) Description() string { return r.t.Description }
func (r *caseStudyResolver) Content() string { return r.t.Content }

func (r *caseStudyResolver) Category() *caseCategoryResolver {
	if r.cs.Category == nil {
		return nil
	}
	return newCaseCategory(r.cs.Category, r.loc)
}

func (r *caseStudyResolver) GalleryIDs() []graphql.ID {
	out := make([]graphql.ID, len(r.cs.GalleryIDs))
	for i, id := range r.cs.GalleryIDs {
		out[i] = graphql.ID(id)
	}
	return out
}

func (r *caseStudyResolver) Reviews() []*customerReviewResolver {
	out := make([]*customerReviewResolver, len(r.cs.Reviews))
	for i := range r.cs.Reviews {
		out[i] = newCustomerReview(&r.cs.Reviews[i], r.loc)
	}
	return out
}

func (r *caseStudyResolver) Translations() []*caseStudyTranslationResolver {
	out := make([]*caseStudyTranslationResolver, len(r.cs.Translations))
	for i := range r.cs.Translations {
		out[i] = &caseStudyTranslationResolver{translationFields{r.cs.Translations[i].TranslationBase}, &r.cs.Translations[i]}
	}
	return out
}

type caseStudyTranslationResolver struct {
	translationFields
	t *models.CaseStudyTranslation
}

func (r *caseStudyTranslationResolver) Title() string { return r.t.Title }
func (r *caseStudyTranslationResolver) Description() string { return r.t.Description }
func (r *caseStudyTranslationResolver) Content() string { return r.t.Content }

type customerReviewResolver struct {
	contentFields
	picked
	cr *models.CustomerReview
	t  *models.CustomerReviewTranslation
}

func newCustomerReview(cr *models.CustomerReview, l locale) *customerReviewResolver {
	t, p := pick(cr.Translations, l)
	return &customerReviewResolver{contentFields: contentFields{cr.ContentBase}, picked: p, cr: cr, t: t}
}

func (r *customerReviewResolver) CustomerName() string { return r.cr.CustomerName }
func (r *customerReviewResolver) CustomerCompany() *string { return r.cr.CustomerCompany }
func (r *customerReviewResolver) Rating() int32 { return int32(r.cr.Rating) }
func (r *customerReviewResolver) Enabled() bool { return r.cr.Enabled }
func (r *customerReviewResolver) Position() int32 { return int32(r.cr.Position) }
func (r *customerReviewResolver) CaseStudyID() *graphql.ID { return optionalUintID(r.cr.CaseStudyID) }
func (r *customerReviewResolver) Content() string { return r.t.Content }

func (r *customerReviewResolver) Translations() []*customerReviewTranslationResolver {
	out := make([]*customerReviewTranslationResolver, len(r.cr.Translations))
	for i := range r.cr.Translations {
		out[i] = &customerReviewTranslationResolver{translationFields{r.cr.Translations[i].TranslationBase}, &r.cr.Translations[i]}
	}
	return out
}

type customerReviewTranslationResolver struct {
	translationFields
	t *models.CustomerReviewTranslation
}

func (r *customerReviewTranslationResolver) Content() string { return r.t.Content }

type certificationResolver struct {
	contentFields
	picked
	c *models.Certification
	t *models.CertificationTranslation
}

func newCertification(c *models.Certification, l locale) *certificationResolver {
	t, p := pick(c.Translations, l)
	return &certificationResolver{contentFields: contentFields{c.ContentBase}, picked: p, c: c, t: t}
}

func (r *certificationResolver) Code() string { return r.c.Code }
func (r *certificationResolver) Position() int32 { return int32(r.c.Position) }
func (r *certificationResolver) Enabled() bool { return r.c.Enabled }
func (r *certificationResolver) IconID() *graphql.ID { return optionalID(r.c.IconID) }
func (r *certificationResolver) CertificateID() *graphql.ID { return optionalID(r.c.CertificateID) }
func (r *certificationResolver) Name() string { return r.t.Name }
func (r *certificationResolver) Description() string { return r.t.Description }

func (r *certificationResolver) Translations() []*certificationTranslationResolver {
	out := make([]*certificationTranslationResolver, len(r.c.Translations))
	for i := range r.c.Translations {
		out[i] = &certificationTranslationResolver{translationFields{r.c.Translations[i].TranslationBase}, &r.c.Translations[i]}
	}
	return out
}

type certificationTranslationResolver struct {
	translationFields
	t *models.CertificationTranslation
}

func (r *certificationTranslationResolver) Name() string { return r.t.Name }
func (r *certificationTranslationResolver) Description() string { return r.t.Description }

type teamMemberResolver struct {
	contentFields
	picked
	m *models.TeamMember
	t *models.TeamMemberTranslation
}

func newTeamMember(m *models.TeamMember, l locale) *teamMemberResolver {
	t, p := pick(m.Translations, l)
	return &teamMemberResolver{contentFields: contentFields{m.ContentBase}, picked: p, m: m, t: t}
}

func (r *teamMemberResolver) Name() string { return r.m.Name }
func (r *teamMemberResolver) Email() *string { return r.m.Email }
func (r *teamMemberResolver) Position() int32 { return int32(r.m.Position) }
func (r *teamMemberResolver) Enabled() bool { return r.m.Enabled }
func (r *teamMemberResolver) PhotoID() *graphql.ID { return optionalID(r.m.PhotoID) }
func (r *teamMemberResolver) JobTitle() string { return r.t.JobTitle }
func (r *teamMemberResolver) Bio() string { return r.t.Bio }

func (r *teamMemberResolver) Translations() []*teamMemberTranslationResolver {
	out := make([]*teamMemberTranslationResolver, len(r.m.Translations))
	for i := range r.m.Translations {
		out[i] = &teamMemberTranslationResolver{translationFields{r.m.Translations[i].TranslationBase}, &r.m.Translations[i]}
	}
	return out
}

type teamMemberTranslationResolver struct {
	translationFields
	t *models.TeamMemberTranslation
}

func (r *teamMemberTranslationResolver) JobTitle() string { return r.t.JobTitle }
func (r *teamMemberTranslationResolver) Bio() string { return r.t.Bio }

type companyTimelineResolver struct {
	contentFields
	picked
	e *models.CompanyTimeline
	t *models.CompanyTimelineTranslation
}

func newCompanyTimeline(e *models.CompanyTimeline, l locale) *companyTimelineResolver {
	t, p := pick(e.Translations, l)
	return &companyTimelineResolver{contentFields: contentFields{e.ContentBase}, picked: p, e: e, t: t}
}

func (r *companyTimelineResolver) Year() int32 { return int32(r.e.Year) }
func (r *companyTimelineResolver) Position() int32 { return int32(r.e.Position) }
func (r *companyTimelineResolver) Enabled() bool { return r.e.Enabled }
func (r *companyTimelineResolver) ImageID() *graphql.ID { return optionalID(r.e.ImageID) }
func (r *companyTimelineResolver) Title() string { return r.t.Title }
func (r *companyTimelineResolver) Description() string { return r.t.Description }

func (r *companyTimelineResolver) Translations() []*companyTimelineTranslationResolver {
	out := make([]*companyTimelineTranslationResolver, len(r.e.Translations))
	for i := range r.e.Translations {
		out[i] = &companyTimelineTranslationResolver{translationFields{r.e.Translations[i].TranslationBase}, &r.e.Translations[i]}
	}
	return out
}

type companyTimelineTranslationResolver struct {
	translationFields
	t *models.CompanyTimelineTranslation
}

func (r *companyTimelineTranslationResolver) Title() string { return r.t.Title }
func (r *companyTimelineTranslationResolver) Description() string { return r.t.Description }

// mapAll builds one resolver per item, in order.
func mapAll[T any, R any](items []T, l locale, build func(*T, locale) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = build(&items[i], l)
	}
	return out
}
