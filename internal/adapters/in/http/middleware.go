package http

import (
	"net/http"

	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/kernel"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderActorID carries the verified identity of the requester.
	HeaderActorID = "X-Actor-Id"

	// HeaderActorRole carries the requester's role token.
	HeaderActorRole = "X-Actor-Role"

	// HeaderActorName carries the requester's display name. Optional.
	HeaderActorName = "X-Actor-Name"

	actorContextKey = "requestActor"
)

// ActorMiddleware extracts the acting user from identity headers and stores
// it in the request context. Authentication happens upstream; the headers are
// trusted here. Requests with a missing or malformed identity get 401.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := kernel.UUIDFromString(c.Request().Header.Get(HeaderActorID))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing actor identity")
			}

			role, err := actor.RoleFromString(c.Request().Header.Get(HeaderActorRole))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing actor role")
			}

			a, err := actor.NewActor(id, role, c.Request().Header.Get(HeaderActorName))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid actor identity")
			}

			c.Set(actorContextKey, a)
			return next(c)
		}
	}
}

func actorFromContext(c echo.Context) (actor.Actor, error) {
	a, ok := c.Get(actorContextKey).(actor.Actor)
	if !ok {
		return actor.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing actor identity")
	}
	return a, nil
}

// NewOpenAPIValidationMiddleware validates request shapes against the OpenAPI
// document at specPath. Requests for paths the document does not describe
// fall through untouched so the router can answer 404 itself.
func NewOpenAPIValidationMiddleware(specPath string) (echo.MiddlewareFunc, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromFile(specPath)
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, err
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route, pathParams, err := router.FindRoute(c.Request())
			if err != nil {
				if err == routers.ErrPathNotFound || err == routers.ErrMethodNotAllowed {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    c.Request(),
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}

			if err := openapi3filter.ValidateRequest(c.Request().Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}

			return next(c)
		}
	}, nil
}
