package errors

import "net/http"

// APIKeyMissing is returned when no x-api-key header is sent.
func APIKeyMissing() *APIError {
	return New("API_KEY_MISSING", http.StatusUnauthorized, "API Key is required", nil)
}

// InvalidAPIKey is returned when the x-api-key header does not match.
func InvalidAPIKey() *APIError {
	return New("INVALID_API_KEY", http.StatusUnauthorized, "Invalid API Key", nil)
}

// InvalidToken covers a missing, malformed, expired or revoked bearer token.
func InvalidToken() *APIError {
	return New("INVALID_TOKEN", http.StatusUnauthorized, "Invalid or expired token", nil)
}

// InsufficientPermissions echoes the roles the route accepts.
func InsufficientPermissions(required []string) *APIError {
	return New("INSUFFICIENT_PERMISSIONS", http.StatusForbidden, "Insufficient permissions", map[string]interface{}{
		"requiredRoles": required,
	})
}

// InvalidPagination echoes page and limit as the caller sent them.
func InvalidPagination(page, limit interface{}) *APIError {
	return New("INVALID_PAGINATION_PARAMETERS", http.StatusUnprocessableEntity,
		"Page must be >= 1 and limit must be between 1 and 100",
		map[string]interface{}{"page": page, "limit": limit})
}

// InvalidProductID echoes the path id that failed to parse.
func InvalidProductID(provided string) *APIError {
	return New("INVALID_PRODUCT_ID", http.StatusUnprocessableEntity, "Product ID must be a valid number", map[string]interface{}{
		"providedId": provided,
	})
}

// ProductNotFound reports the id that matched nothing.
func ProductNotFound(id int) *APIError {
	return New("PRODUCT_NOT_FOUND", http.StatusNotFound, "Product not found", map[string]interface{}{
		"productId": id,
	})
}

// MissingRequiredFields lists the keys sent next to the keys required.
func MissingRequiredFields(provided, required []string) *APIError {
	return New("MISSING_REQUIRED_FIELDS", http.StatusBadRequest,
		"SKU, name, description, price, category and stock are required",
		map[string]interface{}{"provided": provided, "required": required})
}

// InvalidPrice echoes the offending value; it may be any JSON value.
func InvalidPrice(provided interface{}) *APIError {
	return New("INVALID_PRICE", http.StatusUnprocessableEntity, "Price must be a positive number", map[string]interface{}{
		"providedPrice": provided,
	})
}

// InvalidStock echoes the offending stock value as sent.
func InvalidStock(provided interface{}) *APIError {
	return New("INVALID_STOCK", http.StatusUnprocessableEntity, "Stock must be a non-negative integer", map[string]interface{}{
		"providedStock": provided,
	})
}

// SKUAlreadyExists names the product that already holds sku.
func SKUAlreadyExists(sku string, existingID int) *APIError {
	return New("SKU_ALREADY_EXISTS", http.StatusConflict, "A product with this SKU already exists", map[string]interface{}{
		"sku":               sku,
		"existingProductId": existingID,
	})
}

// InvalidRequestBody wraps the decode error, if any, for logging.
func InvalidRequestBody(err error) *APIError {
	return New("INVALID_REQUEST_BODY", http.StatusBadRequest, "Request body must be a JSON object", nil).Wrap(err)
}

// MissingLoginFields reports which login fields were supplied.
func MissingLoginFields(provided map[string]bool) *APIError {
	return New("MISSING_FIELDS", http.StatusBadRequest, "Username, password and apiKey are required", map[string]interface{}{
		"provided": provided,
	})
}

// InvalidDataTypes reports the JSON type seen for each checked field.
func InvalidDataTypes(message string, types map[string]string) *APIError {
	return New("INVALID_DATA_TYPES", http.StatusUnprocessableEntity, message, map[string]interface{}{
		"types": types,
	})
}

// InvalidFieldLength reports login field lengths against the minimums.
func InvalidFieldLength(usernameLen, passwordLen int) *APIError {
	return New("INVALID_FIELD_LENGTH", http.StatusUnprocessableEntity,
		"Username must be at least 3 characters and password at least 6 characters",
		map[string]interface{}{
			"usernameLength": usernameLen,
			"passwordLength": passwordLen,
			"minimumLengths": map[string]int{"username": 3, "password": 6},
		})
}

// InvalidCredentials is returned for an unknown user or a wrong password.
func InvalidCredentials() *APIError {
	return New("INVALID_CREDENTIALS", http.StatusUnauthorized, "Invalid username or password", nil)
}

// RouteNotFound is returned for any unmatched route.
func RouteNotFound() *APIError {
	return New("NOT_FOUND", http.StatusNotFound, "Route not found", nil)
}
