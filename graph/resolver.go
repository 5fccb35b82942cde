// Package graph exposes the services through the shop and admin GraphQL
// schemas.
package graph

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"

	"showcase/api/logger"
	"showcase/api/models"
	"showcase/api/requestdata"
	"showcase/api/services"
	"showcase/api/store"
)

//go:embed schema/*.graphql
var schemaFS embed.FS

const (
	maxQueryDepth  = 12
	maxParallelism = 10
)

// Resolver holds the dependencies shared by the shop and admin roots.
type Resolver struct {
	Analytics       *services.AnalyticsService
	Contact         *services.ContactService
	CMS             *services.CMSService
	DefaultLanguage string
	Log             *logger.Logger
}

// ShopResolver is the root of the public storefront schema.
type ShopResolver struct{ *Resolver }

// AdminResolver is the root of the authenticated admin schema.
type AdminResolver struct{ *Resolver }

func loadSchema(files ...string) (string, error) {
	var sb strings.Builder
	for _, f := range files {
		b, err := schemaFS.ReadFile("schema/" + f)
		if err != nil {
			return "", err
		}
		sb.Write(b)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (r *Resolver) parse(root interface{}, files ...string) (*graphql.Schema, error) {
	src, err := loadSchema(files...)
	if err != nil {
		return nil, err
	}
	return graphql.ParseSchema(src, root,
		graphql.MaxDepth(maxQueryDepth),
		graphql.MaxParallelism(maxParallelism),
		graphql.Logger(panicLogger{log: r.Log}),
	)
}

func NewShopSchema(r *Resolver) (*graphql.Schema, error) {
	return r.parse(&ShopResolver{r}, "common.graphql", "cms.graphql", "shop.graphql")
}

func NewAdminSchema(r *Resolver) (*graphql.Schema, error) {
	return r.parse(&AdminResolver{r}, "common.graphql", "cms.graphql", "admin.graphql")
}

type panicLogger struct {
	log *logger.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.log.Error("graphql resolver panic", "panic", value)
}

// apiError is returned to clients with a machine-readable code.
type apiError struct {
	code    string
	message string
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

var (
	errUnauthenticated = &apiError{code: "UNAUTHENTICATED", message: "authentication required"}
	errForbidden       = &apiError{code: "FORBIDDEN", message: "you are not allowed to perform this action"}
)

// publicError maps a service error to what the client sees. Unexpected
// errors are logged and replaced by a generic message.
func (r *Resolver) publicError(op string, err error) error {
	var ve *services.ValidationError
	var ae *apiError
	switch {
	case errors.As(err, &ae):
		return ae
	case errors.As(err, &ve):
		return &apiError{code: "BAD_USER_INPUT", message: ve.Error()}
	case errors.Is(err, store.ErrNotFound):
		return &apiError{code: "NOT_FOUND", message: err.Error()}
	case errors.Is(err, store.ErrConflict):
		return &apiError{code: "CONFLICT", message: err.Error()}
	default:
		r.Log.Error("graphql operation failed", "operation", op, "error", err)
		return &apiError{code: "INTERNAL_SERVER_ERROR", message: "internal server error"}
	}
}

// authorize checks the caller's role against p. API key callers are
// superusers.
func authorize(ctx context.Context, p models.Permission) error {
	info := requestdata.FromContext(ctx)
	if info.Superuser {
		return nil
	}
	if info.Claims == nil {
		return errUnauthenticated
	}
	if !info.Claims.Role.Can(p) {
		return errForbidden
	}
	return nil
}

type locale struct {
	lang     string
	fallback string
}

func (r *Resolver) locale(ctx context.Context) locale {
	return locale{lang: requestdata.FromContext(ctx).Language, fallback: r.DefaultLanguage}
}

func toID(id uint) graphql.ID {
	return graphql.ID(strconv.FormatUint(uint64(id), 10))
}

func optionalID(s *string) *graphql.ID {
	if s == nil {
		return nil
	}
	id := graphql.ID(*s)
	return &id
}

func optionalUintID(id *uint) *graphql.ID {
	if id == nil {
		return nil
	}
	v := toID(*id)
	return &v
}

func parseID(id graphql.ID) (uint, error) {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil || n == 0 {
		return 0, &apiError{code: "BAD_USER_INPUT", message: fmt.Sprintf("invalid id %q", string(id))}
	}
	return uint(n), nil
}

func parseOptionalID(id *graphql.ID) (*uint, error) {
	if id == nil {
		return nil, nil
	}
	n, err := parseID(*id)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func idString(id *graphql.ID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

type listOptions struct {
	Skip *int32
	Take *int32
}

func (o *listOptions) toModel() models.ListOptions {
	if o == nil {
		return models.ListOptions{}
	}
	var opts models.ListOptions
	if o.Skip != nil {
		opts.Skip = int(*o.Skip)
	}
	if o.Take != nil {
		opts.Take = int(*o.Take)
	}
	return opts
}

type deletionResponseResolver struct {
	resp *models.DeletionResponse
}

func (r *deletionResponseResolver) Result() string { return string(r.resp.Result) }
func (r *deletionResponseResolver) Message() *string { return r.resp.Message }

func itoa(n int) string { return strconv.Itoa(n) }
