package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

const nonFieldErrors = "non_field_errors"

// anyUUIDTag accepts every textual UUID form uuid.Parse does, in any case.
// The built-in uuid tag only matches lowercase dashed ids.
const anyUUIDTag = "anyuuid"

// ValidationErrorResponse is the 422 body: field name to messages.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation(anyUUIDTag, isAnyUUID)
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

func isAnyUUID(fl validator.FieldLevel) bool {
	_, err := uuid.Parse(fl.Field().String())
	return err == nil
}

// canonicalID returns the lowercase dashed form ids are stored under.
// Values that do not parse are returned unchanged.
func canonicalID(id string) string {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return parsed.String()
}

// fieldName reports struct fields by their json or form name.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// bindBody binds a JSON or form body. An empty body is validated as if every
// field were missing so the client gets per-field errors.
func bindBody(c *gin.Context, obj any) error {
	err := c.ShouldBind(obj)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(obj)
	}
	return err
}

// respondValidationError sends a 422 describing why binding failed.
func respondValidationError(c *gin.Context, err error) {
	respondFieldErrors(c, validationErrors(err))
}

func respondFieldErrors(c *gin.Context, errs map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: errs})
}

func validationErrors(err error) map[string][]string {
	errs := make(map[string][]string)

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			errs[fe.Field()] = append(errs[fe.Field()], fieldMessage(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = nonFieldErrors
		}
		errs[field] = append(errs[field], typeMessage(typeErr.Type.Kind()))
	case errors.As(err, &syntaxErr):
		errs[nonFieldErrors] = []string{fmt.Sprintf("JSON parse error - %s", syntaxErr.Error())}
	default:
		errs[nonFieldErrors] = []string{"Invalid data."}
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case anyUUIDTag, "uuid", "uuid4":
		return "Must be a valid UUID."
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

func typeMessage(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return "Not a valid string."
	case reflect.Int, reflect.Int64, reflect.Int32:
		return "A valid integer is required."
	default:
		return "Invalid value."
	}
}
