package handler

import (
	"net/http"
	"reflect"

	"decoaromas/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps a service error to an HTTP status by its kind.
// Unknown errors become an opaque 500 so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	if e, ok := apierror.From(err); ok {
		switch e.Kind {
		case apierror.KindValidacion:
			c.JSON(http.StatusUnprocessableEntity, apierror.New(e.Detail))
		case apierror.KindNoEncontrado:
			c.JSON(http.StatusNotFound, apierror.New(e.Detail))
		case apierror.KindReglaNegocio, apierror.KindConflicto:
			c.JSON(http.StatusConflict, apierror.New(e.Detail))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		}
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
}
