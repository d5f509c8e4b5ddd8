package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"warehouse/internal/errors"
	"warehouse/internal/model"
	"warehouse/internal/service"
)

var (
	productFields = []string{"sku", "name", "description", "price", "category", "stock"}
	textFields    = []string{"sku", "name", "description", "category"}
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// PaginationQuery holds the validated page and limit of a listing.
type PaginationQuery struct {
	Page  int `validate:"gte=1"`
	Limit int `validate:"gte=1,lte=100"`
}

// ProductRequest documents the body of create and update requests.
type ProductRequest struct {
	SKU         string  `json:"sku" example:"LAP-001"`
	Name        string  `json:"name" example:"Laptop"`
	Description string  `json:"description" example:"14 inch laptop"`
	Price       float64 `json:"price" example:"999.99"`
	Category    string  `json:"category" example:"electronics"`
	Stock       int     `json:"stock" example:"10"`
}

// ProductList is the data of a listing response.
type ProductList struct {
	Products   []model.Product  `json:"products"`
	Pagination model.Pagination `json:"pagination"`
}

// List godoc
// @Summary List products
// @Tags productos
// @Produce json,xml
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} errors.SuccessResponse{data=ProductList}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /productos [get]
func (h *ProductHandler) List(c echo.Context) error {
	q, err := parsePagination(c)
	if err != nil {
		return err
	}

	products, pagination, err := h.productService.List(c.Request().Context(), q.Page, q.Limit)
	if err != nil {
		return errors.MapErrorToHTTP(err, "Error retrieving products")
	}

	if wantsXML(c) {
		return respondXML(c, http.StatusOK, "PRODUCTS_RETRIEVED", "Products retrieved successfully", XMLData{
			Products:   &XMLProductList{Items: products},
			Pagination: &pagination,
		})
	}
	return respond(c, http.StatusOK, "PRODUCTS_RETRIEVED", "Products retrieved successfully", ProductList{
		Products:   products,
		Pagination: pagination,
	})
}

// parsePagination reads page and limit, falling back to the defaults when a
// parameter is absent. Invalid values are echoed back in the error details.
func parsePagination(c echo.Context) (PaginationQuery, error) {
	q := PaginationQuery{Page: service.DefaultPage, Limit: service.DefaultLimit}
	var page, limit interface{} = q.Page, q.Limit
	valid := true

	if raw := c.QueryParam("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Page, page = n, n
		} else {
			page, valid = raw, false
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Limit, limit = n, n
		} else {
			limit, valid = raw, false
		}
	}

	if !valid || c.Validate(q) != nil {
		return q, errors.InvalidPagination(page, limit)
	}
	return q, nil
}

// Get godoc
// @Summary Get a product
// @Tags productos
// @Produce json,xml
// @Security ApiKeyAuth
// @Param id path int true "Product ID"
// @Success 200 {object} errors.SuccessResponse{data=model.Product}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /productos/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return errors.MapErrorToHTTP(err, "Error retrieving product")
	}

	if wantsXML(c) {
		return respondXML(c, http.StatusOK, "PRODUCT_RETRIEVED", "Product retrieved successfully", XMLData{Product: product})
	}
	return respond(c, http.StatusOK, "PRODUCT_RETRIEVED", "Product retrieved successfully", product)
}

// Create godoc
// @Summary Create a product
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProductRequest true "Product data"
// @Success 201 {object} errors.SuccessResponse{data=model.Product}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /productos [post]
func (h *ProductHandler) Create(c echo.Context) error {
	body, err := decodeObject(c)
	if err != nil {
		return err
	}

	in, err := newProductFrom(body)
	if err != nil {
		return err
	}

	product, err := h.productService.Create(c.Request().Context(), in)
	if err != nil {
		return errors.MapErrorToHTTP(err, "Error creating product")
	}
	return respond(c, http.StatusCreated, "PRODUCT_CREATED", "Product created successfully", product)
}

// newProductFrom checks presence, then text types, then price, then stock.
func newProductFrom(body jsonObject) (model.NewProduct, error) {
	for _, f := range productFields {
		if !body.present(f) {
			return model.NewProduct{}, errors.MissingRequiredFields(body.keys(), productFields)
		}
	}
	if err := checkTextTypes(body); err != nil {
		return model.NewProduct{}, err
	}

	price, err := priceFrom(body["price"])
	if err != nil {
		return model.NewProduct{}, err
	}
	stock, err := stockFrom(body["stock"])
	if err != nil {
		return model.NewProduct{}, err
	}

	return model.NewProduct{
		SKU:         body["sku"].(string),
		Name:        body["name"].(string),
		Description: body["description"].(string),
		Price:       price,
		Category:    body["category"].(string),
		Stock:       stock,
	}, nil
}

// Update godoc
// @Summary Update a product
// @Description Merges the supplied fields over the stored product.
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body ProductRequest false "Fields to change"
// @Success 200 {object} errors.SuccessResponse{data=model.Product}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /productos/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}
	body, err := decodeObject(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	patch, patchErr := patchFrom(body)
	if patchErr != nil {
		// A missing product is reported before field errors.
		if _, err := h.productService.Get(ctx, id); err != nil {
			return errors.MapErrorToHTTP(err, "Error updating product")
		}
		return patchErr
	}

	product, err := h.productService.Update(ctx, id, patch)
	if err != nil {
		return errors.MapErrorToHTTP(err, "Error updating product")
	}
	return respond(c, http.StatusOK, "PRODUCT_UPDATED", "Product updated successfully", product)
}

// patchFrom picks the product fields out of body. Other keys are ignored.
func patchFrom(body jsonObject) (model.ProductPatch, error) {
	var patch model.ProductPatch
	if err := checkTextTypes(body); err != nil {
		return patch, err
	}

	text := func(key string) *string {
		if v, ok := body[key]; ok {
			s := v.(string)
			return &s
		}
		return nil
	}
	patch.SKU = text("sku")
	patch.Name = text("name")
	patch.Description = text("description")
	patch.Category = text("category")

	if v, ok := body["price"]; ok {
		price, err := priceFrom(v)
		if err != nil {
			return patch, err
		}
		patch.Price = &price
	}
	if v, ok := body["stock"]; ok {
		stock, err := stockFrom(v)
		if err != nil {
			return patch, err
		}
		patch.Stock = &stock
	}
	return patch, nil
}

// Delete godoc
// @Summary Delete a product
// @Tags productos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} errors.SuccessResponse{data=model.Product}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /productos/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Delete(c.Request().Context(), id)
	if err != nil {
		return errors.MapErrorToHTTP(err, "Error deleting product")
	}
	return respond(c, http.StatusOK, "PRODUCT_DELETED", "Product deleted successfully", product)
}

func parseProductID(c echo.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidProductID(raw)
	}
	return id, nil
}

// checkTextTypes rejects text fields sent with a non-string value.
func checkTextTypes(body jsonObject) error {
	ok := true
	types := make(map[string]string, len(textFields))
	for _, f := range textFields {
		v, present := body[f]
		types[f] = typeOf(v, present)
		if present {
			if _, isString := v.(string); !isString {
				ok = false
			}
		}
	}
	if !ok {
		return errors.InvalidDataTypes("SKU, name, description and category must be strings", types)
	}
	return nil
}

func priceFrom(v interface{}) (decimal.Decimal, error) {
	n, ok := v.(json.Number)
	if !ok {
		return decimal.Decimal{}, errors.InvalidPrice(v)
	}
	price, err := decimal.NewFromString(n.String())
	if err != nil || !price.IsPositive() {
		return decimal.Decimal{}, errors.InvalidPrice(n)
	}
	return price, nil
}

func stockFrom(v interface{}) (int, error) {
	stock, ok := intValue(v)
	if !ok || stock < 0 {
		return 0, errors.InvalidStock(v)
	}
	return stock, nil
}
