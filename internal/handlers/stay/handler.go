package stay

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lodge/infras/otel"
	"lodge/internal/domains/stay/model"
	"lodge/internal/domains/stay/service"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/transport/http/response"
)

type Handler struct {
	service service.Stay
	otel    otel.Otel
}

func New(service service.Stay, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/stays", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetStays)
		routerGroup.Get("/{id}", handler.GetStayByID)
	})
}

// GetStays retrieves all stay records based on query parameters.
// @Summary Get all stays
// @Description Retrieve stay records. Stays are created by check-in and closed by check-out.
// @Tags Stay
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking ID"
// @Param room_id query string false "Filter by room ID"
// @Param staff_id query string false "Filter by staff ID"
// @Success 200 {object} response.Data[dto.GetStaysResponse] "List of stays"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stays [get]
// @Security BearerAuth
func (handler *Handler) GetStays(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStays")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldBookingID),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldRoomID),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStaffID,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldStaffID),
				Table:    model.TableName,
			},
		},
	}

	stays, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stays")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stays retrieved successfully")

	response.WithJSON(w, http.StatusOK, stays)
}

// GetStayByID retrieves a stay record by its ID.
// @Summary Get a stay by ID
// @Description Retrieve a stay record by its unique identifier.
// @Tags Stay
// @Accept json
// @Produce json
// @Param id path string true "Stay ID"
// @Success 200 {object} response.Data[dto.StayResponse] "Stay details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stays/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetStayByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStayByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	stay, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stay by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stay retrieved successfully")

	response.WithJSON(w, http.StatusOK, stay)
}
