package httpapi

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/retailops/backoffice/internal/entity"
)

// errors

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrNotFound(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found.",
		ErrorText:      err.Error(),
	}
}

func ErrConflict(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		StatusText:     "Conflicting state.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerError(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
		ErrorText:      err.Error(),
	}
}

func ErrServiceUnavailable(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusServiceUnavailable,
		StatusText:     http.StatusText(http.StatusServiceUnavailable),
		ErrorText:      err.Error(),
	}
}

// report

type ReportResponse struct {
	Report *entity.ProductReport `json:"report"`
}

func (rd *ReportResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// orders

type OrderResponse struct {
	StatusCode int               `json:"statusCode,omitempty"`
	Order      *entity.OrderFull `json:"order,omitempty"`
}

func NewOrderResponse(order *entity.OrderFull, statusCode int) *OrderResponse {
	return &OrderResponse{Order: order, StatusCode: statusCode}
}

func (rd *OrderResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if rd.StatusCode != 0 {
		render.Status(r, rd.StatusCode)
	}
	return nil
}

type OrderListResponse struct {
	Orders []entity.Order `json:"orders"`
}

func (rd *OrderListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// returns

type ReturnResponse struct {
	StatusCode int            `json:"statusCode,omitempty"`
	Return     *entity.Return `json:"return,omitempty"`
}

func NewReturnResponse(ret *entity.Return, statusCode int) *ReturnResponse {
	return &ReturnResponse{Return: ret, StatusCode: statusCode}
}

func (rd *ReturnResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if rd.StatusCode != 0 {
		render.Status(r, rd.StatusCode)
	}
	return nil
}

type ReturnListResponse struct {
	Returns []entity.Return `json:"returns"`
}

func (rd *ReturnListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// shipments

type ShipmentResponse struct {
	StatusCode int              `json:"statusCode,omitempty"`
	Shipment   *entity.Shipment `json:"shipment,omitempty"`
}

func NewShipmentResponse(shipment *entity.Shipment, statusCode int) *ShipmentResponse {
	return &ShipmentResponse{Shipment: shipment, StatusCode: statusCode}
}

func (rd *ShipmentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if rd.StatusCode != 0 {
		render.Status(r, rd.StatusCode)
	}
	return nil
}
