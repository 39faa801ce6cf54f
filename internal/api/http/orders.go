package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/retailops/backoffice/internal/entity"
	"github.com/retailops/backoffice/internal/form"
	"github.com/retailops/backoffice/internal/store"
)

const defaultPageSize = 50

func pageParams(r *http.Request) (limit, offset int, of entity.OrderFactor) {
	limit = defaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	of = entity.Descending
	if r.URL.Query().Get("order") == "asc" {
		of = entity.Ascending
	}
	return limit, offset, of
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req form.OrderRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	orderNew, err := req.Validate()
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	order, err := s.db.Orders().CreateOrder(r.Context(), orderNew)
	if err != nil {
		if errors.Is(err, store.ErrInsufficientStock) {
			render.Render(w, r, ErrConflict(err))
			return
		}
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	render.Render(w, r, NewOrderResponse(order, http.StatusCreated))
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	order, err := s.db.Orders().GetOrderByNumber(r.Context(), number)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			render.Render(w, r, ErrNotFound(err))
			return
		}
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, NewOrderResponse(order, 0))
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset, of := pageParams(r)
	orders, err := s.db.Orders().ListOrdersPaged(r.Context(), limit, offset, of)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &OrderListResponse{Orders: orders})
}

func (s *Server) createReturn(w http.ResponseWriter, r *http.Request) {
	var req form.ReturnRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	returnNew, err := req.Validate()
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	ret, err := s.db.Returns().CreateReturn(r.Context(), returnNew)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			render.Render(w, r, ErrNotFound(err))
			return
		}
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	render.Render(w, r, NewReturnResponse(ret, http.StatusCreated))
}

func (s *Server) listReturns(w http.ResponseWriter, r *http.Request) {
	limit, offset, of := pageParams(r)
	returns, err := s.db.Returns().ListReturnsPaged(r.Context(), limit, offset, of)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &ReturnListResponse{Returns: returns})
}

func (s *Server) setReturnStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid return id")))
		return
	}
	var req form.StatusRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	ret, err := s.db.Returns().SetReturnStatus(r.Context(), id, entity.ReturnStatus(req.Status))
	if err != nil {
		render.Render(w, r, ErrConflict(err))
		return
	}
	render.Render(w, r, NewReturnResponse(ret, 0))
}

func (s *Server) upsertShipment(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	var req form.ShipmentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	shipmentNew, err := req.Validate()
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	shipment, err := s.db.Shipments().UpsertShipment(r.Context(), number, shipmentNew)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			render.Render(w, r, ErrNotFound(err))
			return
		}
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, NewShipmentResponse(shipment, http.StatusCreated))
}

func (s *Server) getShipment(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	shipment, err := s.db.Shipments().GetShipmentByOrder(r.Context(), number)
	if err != nil {
		render.Render(w, r, ErrNotFound(err))
		return
	}
	render.Render(w, r, NewShipmentResponse(shipment, 0))
}

func (s *Server) setShipmentStatus(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	var req form.StatusRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	shipment, err := s.db.Shipments().SetShipmentStatus(r.Context(), number, entity.ShipmentStatus(req.Status))
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			render.Render(w, r, ErrNotFound(err))
			return
		}
		render.Render(w, r, ErrConflict(err))
		return
	}
	render.Render(w, r, NewShipmentResponse(shipment, 0))
}
