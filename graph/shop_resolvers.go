package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"

	"showcase/api/models"
	"showcase/api/requestdata"
	"showcase/api/services"
)

const (
	contactThankYou = "Thank you for your message. We will get back to you soon."
	contactFailed   = "Failed to submit form. Please try again later."
)

type trackingResult struct {
	success bool
}

func (r *trackingResult) Success() bool { return r.success }

type contactFormResult struct {
	success bool
	message *string
}

func (r *contactFormResult) Success() bool { return r.success }
func (r *contactFormResult) Message() *string { return r.message }

type trackProductViewInput struct {
	ProductID        graphql.ID
	ProductVariantID *graphql.ID
	SessionID        *string
	Referrer         *string
	DurationSeconds  *int32
	Locale           *string
}

type trackPageViewInput struct {
	Path            string
	Title           *string
	SessionID       *string
	Referrer        *string
	UTMSource       *string
	UTMMedium       *string
	UTMCampaign     *string
	DurationSeconds *int32
	Locale          *string
}

type trackEventInput struct {
	EventName  string
	Category   *string
	Label      *string
	Value      *float64
	Properties *JSON
	SessionID  *string
	ProductID  *graphql.ID
	OrderID    *graphql.ID
	Path       *string
	Locale     *string
}

type submitContactFormInput struct {
	Name    string
	Email   string
	Phone   *string
	Company *string
	Message string
	Source  *string
}

func durationPtr(v *int32) *uint32 {
	if v == nil || *v < 0 {
		return nil
	}
	d := uint32(*v)
	return &d
}

// tracked reports the outcome of a tracking write. Tracking never fails the
// request; errors were already logged by the service.
func tracked(err error) *trackingResult {
	return &trackingResult{success: err == nil}
}

func (r *ShopResolver) TrackProductView(ctx context.Context, args struct{ Input trackProductViewInput }) *trackingResult {
	in := args.Input
	return tracked(r.Analytics.TrackProductView(ctx, requestdata.FromContext(ctx), models.TrackProductViewInput{
		ProductID:        string(in.ProductID),
		ProductVariantID: idString(in.ProductVariantID),
		SessionID:        in.SessionID,
		Referrer:         in.Referrer,
		DurationSeconds:  durationPtr(in.DurationSeconds),
		Locale:           in.Locale,
	}))
}

func (r *ShopResolver) TrackPageView(ctx context.Context, args struct{ Input trackPageViewInput }) *trackingResult {
	in := args.Input
	return tracked(r.Analytics.TrackPageView(ctx, requestdata.FromContext(ctx), models.TrackPageViewInput{
		Path:            in.Path,
		Title:           in.Title,
		SessionID:       in.SessionID,
		Referrer:        in.Referrer,
		UTMSource:       in.UTMSource,
		UTMMedium:       in.UTMMedium,
		UTMCampaign:     in.UTMCampaign,
		DurationSeconds: durationPtr(in.DurationSeconds),
		Locale:          in.Locale,
	}))
}

func (r *ShopResolver) TrackEvent(ctx context.Context, args struct{ Input trackEventInput }) *trackingResult {
	in := args.Input
	props, err := in.Properties.Object()
	if err != nil {
		return tracked(r.Analytics.RejectEvent(in.EventName, err))
	}
	return tracked(r.Analytics.TrackEvent(ctx, requestdata.FromContext(ctx), models.TrackEventInput{
		EventName:  in.EventName,
		Category:   in.Category,
		Label:      in.Label,
		Value:      in.Value,
		Properties: props,
		SessionID:  in.SessionID,
		ProductID:  idString(in.ProductID),
		OrderID:    idString(in.OrderID),
		Path:       in.Path,
		Locale:     in.Locale,
	}))
}

func (r *ShopResolver) SubmitContactForm(ctx context.Context, args struct{ Input submitContactFormInput }) *contactFormResult {
	in := args.Input
	_, err := r.Contact.Submit(ctx, requestdata.FromContext(ctx), models.SubmitContactInput{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Message: in.Message,
		Source:  in.Source,
	})
	if err == nil {
		msg := contactThankYou
		return &contactFormResult{success: true, message: &msg}
	}

	var ve *services.ValidationError
	if errors.As(err, &ve) {
		msg := fmt.Sprintf("Please check the following fields: %s", strings.Join(ve.Fields, ", "))
		return &contactFormResult{message: &msg}
	}
	r.Log.Error("contact form submission failed", "error", err)
	msg := contactFailed
	return &contactFormResult{message: &msg}
}

// shopID parses an optional id argument. Malformed ids never match anything.
func shopID(id *graphql.ID) (*uint, bool) {
	n, err := parseOptionalID(id)
	if err != nil {
		return nil, false
	}
	return n, true
}

func (r *ShopResolver) Banners(ctx context.Context) ([]*bannerResolver, error) {
	items, err := r.CMS.Banners.Enabled(ctx, nil)
	if err != nil {
		return nil, r.publicError("banners", err)
	}
	return mapAll(items, r.locale(ctx), newBanner), nil
}

func (r *ShopResolver) Banner(ctx context.Context, args struct {
	ID   *graphql.ID
	Code *string
}) (*bannerResolver, error) {
	id, ok := shopID(args.ID)
	if !ok {
		return nil, nil
	}
	b, err := r.CMS.Banners.Lookup(ctx, id, "code", args.Code)
	if err != nil {
		return nil, r.publicError("banner", err)
	}
	if b == nil {
		return nil, nil
	}
	return newBanner(b, r.locale(ctx)), nil
}

func (r *ShopResolver) Page(ctx context.Context, args struct {
	ID   *graphql.ID
	Slug *string
}) (*pageResolver, error) {
	id, ok := shopID(args.ID)
	if !ok {
		return nil, nil
	}
	p, err := r.CMS.Pages.Lookup(ctx, id, "slug", args.Slug)
	if err != nil {
		return nil, r.publicError("page", err)
	}
	if p == nil {
		return nil, nil
	}
	return newPage(p, r.locale(ctx)), nil
}

func (r *ShopResolver) CaseStudies(ctx context.Context, args struct{ CategoryID *graphql.ID }) ([]*caseStudyResolver, error) {
	categoryID, ok := shopID(args.CategoryID)
	if !ok {
		return []*caseStudyResolver{}, nil
	}
	items, err := r.CMS.EnabledCaseStudies(ctx, categoryID)
	if err != nil {
		return nil, r.publicError("caseStudies", err)
	}
	return mapAll(items, r.locale(ctx), newCaseStudy), nil
}

func (r *ShopResolver) CaseStudy(ctx context.Context, args struct {
	ID   *graphql.ID
	Slug *string
}) (*caseStudyResolver, error) {
	id, ok := shopID(args.ID)
	if !ok {
		return nil, nil
	}
	cs, err := r.CMS.LookupCaseStudy(ctx, id, args.Slug)
	if err != nil {
		return nil, r.publicError("caseStudy", err)
	}
	if cs == nil {
		return nil, nil
	}
	return newCaseStudy(cs, r.locale(ctx)), nil
}

func (r *ShopResolver) CaseCategories(ctx context.Context) ([]*caseCategoryResolver, error) {
	items, err := r.CMS.CaseCategories.All(ctx)
	if err != nil {
		return nil, r.publicError("caseCategories", err)
	}
	return mapAll(items, r.locale(ctx), newCaseCategory), nil
}

func (r *ShopResolver) Certifications(ctx context.Context) ([]*certificationResolver, error) {
	items, err := r.CMS.Certifications.Enabled(ctx, nil)
	if err != nil {
		return nil, r.publicError("certifications", err)
	}
	return mapAll(items, r.locale(ctx), newCertification), nil
}

func (r *ShopResolver) Certification(ctx context.Context, args struct {
	ID   *graphql.ID
	Code *string
}) (*certificationResolver, error) {
	id, ok := shopID(args.ID)
	if !ok {
		return nil, nil
	}
	c, err := r.CMS.Certifications.Lookup(ctx, id, "code", args.Code)
	if err != nil {
		return nil, r.publicError("certification", err)
	}
	if c == nil {
		return nil, nil
	}
	return newCertification(c, r.locale(ctx)), nil
}

func (r *ShopResolver) TeamMembers(ctx context.Context) ([]*teamMemberResolver, error) {
	items, err := r.CMS.TeamMembers.Enabled(ctx, nil)
	if err != nil {
		return nil, r.publicError("teamMembers", err)
	}
	return mapAll(items, r.locale(ctx), newTeamMember), nil
}

func (r *ShopResolver) CompanyTimeline(ctx context.Context) ([]*companyTimelineResolver, error) {
	items, err := r.CMS.CompanyTimelines.Enabled(ctx, nil)
	if err != nil {
		return nil, r.publicError("companyTimeline", err)
	}
	return mapAll(items, r.locale(ctx), newCompanyTimeline), nil
}
