package handler

import (
	"encoding/xml"
	"strings"

	"github.com/labstack/echo/v4"

	"warehouse/internal/errors"
	"warehouse/internal/model"
)

// respond writes the JSON success envelope.
func respond(c echo.Context, status int, code, message string, data interface{}) error {
	return c.JSON(status, errors.SuccessResponse{
		Code:      code,
		Message:   message,
		Data:      data,
		Timestamp: errors.Timestamp(),
		Path:      c.Request().URL.RequestURI(),
	})
}

// wantsXML reports whether the Accept header asks for XML.
func wantsXML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationXML)
}

// XMLResponse is the success envelope rendered as XML.
type XMLResponse struct {
	XMLName   xml.Name `xml:"response"`
	Code      string   `xml:"code"`
	Message   string   `xml:"message"`
	Data      XMLData  `xml:"data"`
	Timestamp string   `xml:"timestamp"`
	Path      string   `xml:"path"`
}

// XMLData holds either a page of products or a single product.
type XMLData struct {
	Products   *XMLProductList   `xml:"products,omitempty"`
	Product    *model.Product    `xml:"product,omitempty"`
	Pagination *model.Pagination `xml:"pagination,omitempty"`
}

// XMLProductList wraps the product elements of a listing.
type XMLProductList struct {
	Items []model.Product `xml:"product"`
}

func respondXML(c echo.Context, status int, code, message string, data XMLData) error {
	return c.XML(status, XMLResponse{
		Code:      code,
		Message:   message,
		Data:      data,
		Timestamp: errors.Timestamp(),
		Path:      c.Request().URL.RequestURI(),
	})
}
