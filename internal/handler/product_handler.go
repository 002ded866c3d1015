package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopapi/internal/model"
	"shopapi/internal/service"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	svc service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ProductRequest documents the product payload. Handlers decode into
// service.ProductFields so type errors can be reported per field.
type ProductRequest struct {
	Name        string   `json:"product_name" example:"Pen"`
	Description string   `json:"product_description" example:"Blue pen"`
	Price       float64  `json:"product_price" example:"1.5"`
	Tags        []string `json:"product_tag"`
}

// CreateProductResponse represents a created product.
type CreateProductResponse struct {
	Message string        `json:"message"`
	Product model.Product `json:"product"`
}

// ProductsResponse wraps a product list.
type ProductsResponse struct {
	Products []model.Product `json:"products"`
}

// ProductResponse wraps a single product.
type ProductResponse struct {
	Product model.Product `json:"product"`
}

// CreateProduct godoc
// @Summary Add a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProductRequest true "Product data"
// @Success 201 {object} CreateProductResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	fields := service.ProductFields{}
	if err := decodeJSON(c, &fields); err != nil {
		return err
	}

	product, err := h.svc.CreateProduct(c.Request().Context(), id, fields)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, CreateProductResponse{
		Message: "Product added successfully",
		Product: *product,
	})
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {object} ProductsResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.svc.ListProducts(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return c.JSON(http.StatusOK, ProductsResponse{Products: products})
}

// GetProduct godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.svc.GetProduct(c.Request().Context(), parseID(c))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, ProductResponse{Product: *product})
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	fields := service.ProductFields{}
	if err := decodeJSON(c, &fields); err != nil {
		return err
	}

	if err := h.svc.UpdateProduct(c.Request().Context(), id, parseID(c), fields); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Product updated successfully"})
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteProduct(c.Request().Context(), id, parseID(c)); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "product deleted successfully"})
}
