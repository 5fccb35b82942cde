package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"showcase/api/models"
)

type contactSubmissionResolver struct {
	c *models.ContactSubmission
}

func (r *contactSubmissionResolver) ID() graphql.ID { return graphql.ID(itoa(r.c.ID)) }
func (r *contactSubmissionResolver) CreatedAt() DateTime { return newDateTime(r.c.CreatedAt) }
func (r *contactSubmissionResolver) UpdatedAt() DateTime { return newDateTime(r.c.UpdatedAt) }
func (r *contactSubmissionResolver) Name() string { return r.c.Name }
func (r *contactSubmissionResolver) Email() string { return r.c.Email }
func (r *contactSubmissionResolver) Phone() *string { return r.c.Phone }
func (r *contactSubmissionResolver) Company() *string { return r.c.Company }
func (r *contactSubmissionResolver) Message() string { return r.c.Message }
func (r *contactSubmissionResolver) Source() *string { return r.c.Source }
func (r *contactSubmissionResolver) IPAddress() *string { return r.c.IPAddress }
func (r *contactSubmissionResolver) UserAgent() *string { return r.c.UserAgent }
func (r *contactSubmissionResolver) IsRead() bool { return r.c.IsRead }
func (r *contactSubmissionResolver) Notes() *string { return r.c.Notes }

type contactSubmissionListResolver struct {
	items []models.ContactSubmission
	total int
}

func (r *contactSubmissionListResolver) Items() []*contactSubmissionResolver {
	out := make([]*contactSubmissionResolver, len(r.items))
	for i := range r.items {
		out[i] = &contactSubmissionResolver{&r.items[i]}
	}
	return out
}

func (r *contactSubmissionListResolver) TotalItems() int32 { return int32(r.total) }

type updateContactSubmissionInput struct {
	ID     graphql.ID
	IsRead *bool
	Notes  *string
}

type contactSortInput struct {
	ID        *string
	Name      *string
	Email     *string
	CreatedAt *string
	UpdatedAt *string
	IsRead    *string
}

type contactFilterInput struct {
	IsRead    *bool
	Email     *string
	Name      *string
	CreatedAt *dateRangeInput
}

type contactListOptions struct {
	Skip   *int32
	Take   *int32
	Sort   *contactSortInput
	Filter *contactFilterInput
}

func sortOrder(s *string) *models.SortOrder {
	if s == nil {
		return nil
	}
	o := models.SortOrder(*s)
	return &o
}

func (o *contactListOptions) toModel() models.ContactListOptions {
	if o == nil {
		return models.ContactListOptions{}
	}
	opts := models.ContactListOptions{
		ListOptions: (&listOptions{Skip: o.Skip, Take: o.Take}).toModel(),
	}
	if s := o.Sort; s != nil {
		opts.Sort = &models.ContactSort{
			ID:        sortOrder(s.ID),
			Name:      sortOrder(s.Name),
			Email:     sortOrder(s.Email),
			CreatedAt: sortOrder(s.CreatedAt),
			UpdatedAt: sortOrder(s.UpdatedAt),
			IsRead:    sortOrder(s.IsRead),
		}
	}
	if f := o.Filter; f != nil {
		opts.Filter = &models.ContactFilter{
			IsRead:    f.IsRead,
			Email:     f.Email,
			Name:      f.Name,
			CreatedAt: f.CreatedAt.toModel(),
		}
	}
	return opts
}

func (r *AdminResolver) ContactSubmissions(ctx context.Context, args struct{ Options *contactListOptions }) (*contactSubmissionListResolver, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return nil, err
	}
	items, total, err := r.Contact.List(ctx, args.Options.toModel())
	if err != nil {
		return nil, r.publicError("contactSubmissions", err)
	}
	return &contactSubmissionListResolver{items: items, total: total}, nil
}

func (r *AdminResolver) ContactSubmission(ctx context.Context, args struct{ ID graphql.ID }) (*contactSubmissionResolver, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return nil, err
	}
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	c, err := r.Contact.Get(ctx, int(id))
	if err != nil {
		return nil, r.publicError("contactSubmission", err)
	}
	if c == nil {
		return nil, nil
	}
	return &contactSubmissionResolver{c}, nil
}

func (r *AdminResolver) UnreadContactCount(ctx context.Context) (int32, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return 0, err
	}
	n, err := r.Contact.UnreadCount(ctx)
	if err != nil {
		return 0, r.publicError("unreadContactCount", err)
	}
	return int32(n), nil
}

func (r *AdminResolver) UpdateContactSubmission(ctx context.Context, args struct{ Input updateContactSubmissionInput }) (*contactSubmissionResolver, error) {
	if err := authorize(ctx, models.UpdateCatalog); err != nil {
		return nil, err
	}
	id, err := parseID(args.Input.ID)
	if err != nil {
		return nil, err
	}
	c, err := r.Contact.Update(ctx, models.UpdateContactInput{ID: int(id), IsRead: args.Input.IsRead, Notes: args.Input.Notes})
	if err != nil {
		return nil, r.publicError("updateContactSubmission", err)
	}
	return &contactSubmissionResolver{c}, nil
}

func (r *AdminResolver) MarkContactAsRead(ctx context.Context, args struct{ ID graphql.ID }) (*contactSubmissionResolver, error) {
	if err := authorize(ctx, models.UpdateCatalog); err != nil {
		return nil, err
	}
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	c, err := r.Contact.MarkAsRead(ctx, int(id))
	if err != nil {
		return nil, r.publicError("markContactAsRead", err)
	}
	return &contactSubmissionResolver{c}, nil
}

func (r *AdminResolver) DeleteContactSubmission(ctx context.Context, args struct{ ID graphql.ID }) (*deletionResponseResolver, error) {
	if err := authorize(ctx, models.DeleteCatalog); err != nil {
		return nil, err
	}
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	resp, err := r.Contact.Delete(ctx, int(id))
	if err != nil {
		return nil, r.publicError("deleteContactSubmission", err)
	}
	return &deletionResponseResolver{resp}, nil
}
