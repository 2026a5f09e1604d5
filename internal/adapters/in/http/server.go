// Package http exposes a small operational API next to the telegram
// surface: a health probe and a read-only view of the open order book.
package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"smuth/internal/core/application/usecases/queries"
)

// Server handles the HTTP ops endpoints.
type Server struct {
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler
}

func NewServer(getOpenOrdersHandler queries.GetOpenOrdersQueryHandler) *Server {
	return &Server{getOpenOrdersHandler: getOpenOrdersHandler}
}

// RegisterRoutes attaches the server's endpoints to an echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.GetHealth)
	e.GET("/api/v1/orders", s.GetOpenOrders)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderResponse struct {
	ID          int64     `json:"id"`
	Meal        string    `json:"meal"`
	Location    string    `json:"location"`
	Earliest    time.Time `json:"earliest_pickup_time"`
	Latest      time.Time `json:"latest_pickup_time"`
	Details     string    `json:"details,omitempty"`
	FeeCents    int64     `json:"fee_cents"`
	OwnerHandle string    `json:"owner_handle"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetOpenOrders handles GET /api/v1/orders - lists orders waiting for a runner.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query, err := queries.NewGetOpenOrdersQuery(time.Now())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	open, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]orderResponse, len(open))
	for i, row := range open {
		response[i] = orderResponse{
			ID:          row.ID,
			Meal:        row.Meal,
			Location:    row.Location,
			Earliest:    row.Earliest,
			Latest:      row.Latest,
			Details:     row.Details,
			FeeCents:    row.FeeCents,
			OwnerHandle: row.OwnerHandle,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
