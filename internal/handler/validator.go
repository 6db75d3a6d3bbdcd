package handler

import (
    "errors"
    "fmt"
    "net/http"
    "reflect"
    "strings"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"
)

// RequestValidator adapts validator/v10 to echo.Validator.  It checks the
// shape of request bodies; booking rules live in the service.
type RequestValidator struct {
    v *validator.Validate
}

// NewValidator reports fields by their JSON names.
func NewValidator() *RequestValidator {
    v := validator.New(validator.WithRequiredStructEnabled())
    v.RegisterTagNameFunc(func(fld reflect.StructField) string {
        name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
        if name == "-" {
            return ""
        }
        return name
    })
    return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
    return rv.v.Struct(i)
}

type fieldDetail struct {
    Field   string `json:"field"`
    Code    string `json:"code"`
    Message string `json:"message"`
}

// bindAndValidate decodes the body into req and runs struct validation,
// writing a 400 response itself on failure.  ok is false when a response
// was written.
func bindAndValidate(c echo.Context, req interface{}) (ok bool, err error) {
    if err := c.Bind(req); err != nil {
        return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(req); err != nil {
        var verrs validator.ValidationErrors
        if !errors.As(err, &verrs) {
            return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
        }
        details := make([]fieldDetail, 0, len(verrs))
        for _, fe := range verrs {
            details = append(details, fieldDetail{Field: fe.Field(), Code: "INVALID_FIELD", Message: tagMessage(fe)})
        }
        return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "details": details})
    }
    return true, nil
}

func tagMessage(fe validator.FieldError) string {
    switch fe.Tag() {
    case "required":
        return fmt.Sprintf("%s is required", fe.Field())
    case "max":
        return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
    case "min":
        return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
    }
    return fmt.Sprintf("%s is invalid", fe.Field())
}
