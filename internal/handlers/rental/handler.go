package rental

import (
	"lendr/infras/otel"
	"lendr/internal/domains/rental/model"
	"lendr/internal/domains/rental/model/dto"
	"lendr/internal/domains/rental/service"
	"lendr/shared/constant"
	gDto "lendr/shared/dto"
	"lendr/shared/failure"
	"lendr/shared/validator"
	"lendr/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Rental
	otel    otel.Otel
}

func New(service service.Rental, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rentals", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.RequestRental)
		routerGroup.Get("/", handler.GetRentals)
		routerGroup.Get("/myrentals", handler.GetMyRentals)
		routerGroup.Get("/{id}", handler.GetRentalByID)
		routerGroup.Patch("/{id}/cancel", handler.CancelRental)
		routerGroup.Patch("/{id}/approve", handler.ApproveRental)
		routerGroup.Patch("/{id}/reject", handler.RejectRental)
	})
}

// RequestRental handles the creation of a new rental request.
// @Summary Request a rental
// @Description Request a rental of an item for a date range. The rental starts in pending status.
// @Tags Rental
// @Accept json
// @Produce json
// @Param request body dto.CreateRentalRequest true "Create Rental Request"
// @Success 201 {object} response.Data[dto.RentalResponse] "Rental requested successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals [post]
// @Security BearerAuth
func (handler *Handler) RequestRental(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestRental")
	defer scope.End()

	req := dto.CreateRentalRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	rental, err := handler.service.Request(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to request rental")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rental requested successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, rental)
}

// GetRentals retrieves all rentals based on query parameters.
// @Summary Get all rentals
// @Description Retrieve all rentals with optional filtering and pagination.
// @Tags Rental
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param item_id query string false "Filter by item ID"
// @Param renter_id query string false "Filter by renter ID"
// @Param status query string false "Filter by status (pending, approved, rejected, completed, cancelled)"
// @Success 200 {object} response.Data[dto.RentalResponse] "List of rentals"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals [get]
// @Security BearerAuth
func (handler *Handler) GetRentals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRentals")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	itemID := r.URL.Query().Get(model.FieldItemID)
	renterID := r.URL.Query().Get(model.FieldRenterID)
	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	// Only add filters if the values are non-empty
	if itemID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldItemID,
			Operator: gDto.FilterOperatorEq,
			Value:    itemID,
			Table:    model.TableName,
		})
	}

	if renterID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRenterID,
			Operator: gDto.FilterOperatorEq,
			Value:    renterID,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	rentals, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rentals")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rentals retrieved successfully")

	response.WithJSON(w, http.StatusOK, rentals)
}

// GetMyRentals retrieves all rentals requested by the currently authenticated user.
// @Summary Get my rentals
// @Description Retrieve all rentals requested by the currently authenticated user, newest first.
// @Tags Rental
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.RentalResponse] "List of user's rentals"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/myrentals [get]
// @Security BearerAuth
func (handler *Handler) GetMyRentals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyRentals")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	rentals, err := handler.service.ListForUser(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user rentals")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User rentals retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, rentals)
}

// GetRentalByID retrieves a rental by its ID.
// @Summary Get a rental by ID
// @Description Retrieve a rental by its unique identifier. Visible to the renter, the item owner, and admins.
// @Tags Rental
// @Accept json
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Data[dto.RentalResponse] "Rental details"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRentalByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRentalByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	rental, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rental by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rental retrieved successfully")

	response.WithJSON(w, http.StatusOK, rental)
}

// CancelRental cancels a rental by its ID.
// @Summary Cancel a rental
// @Description Cancel a pending or approved rental. Only the renter, the item owner, or an admin may cancel.
// @Tags Rental
// @Accept json
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Data[dto.RentalResponse] "Rental cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelRental(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelRental")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	rental, err := handler.service.Cancel(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel rental")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rental cancelled successfully by user " + user)

	response.WithJSON(w, http.StatusOK, rental)
}

// ApproveRental approves a rental by its ID.
// @Summary Approve a rental
// @Description Approve a pending rental. Only the item owner or an admin may approve.
// @Tags Rental
// @Accept json
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Data[dto.RentalResponse] "Rental approved successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id}/approve [patch]
// @Security BearerAuth
func (handler *Handler) ApproveRental(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveRental")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	rental, err := handler.service.Approve(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve rental")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rental approved successfully by user " + user)

	response.WithJSON(w, http.StatusOK, rental)
}

// RejectRental rejects a rental by its ID.
// @Summary Reject a rental
// @Description Reject a pending rental. Only the item owner or an admin may reject.
// @Tags Rental
// @Accept json
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Data[dto.RentalResponse] "Rental rejected successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id}/reject [patch]
// @Security BearerAuth
func (handler *Handler) RejectRental(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectRental")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	rental, err := handler.service.Reject(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject rental")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rental rejected successfully by user " + user)

	response.WithJSON(w, http.StatusOK, rental)
}
