package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/credence/credence-backend/internal/apperr"
	"github.com/credence/credence-backend/internal/domain"
	"github.com/credence/credence-backend/internal/services"
)

const (
	// CodePayloadTooLarge is returned when the body exceeds MAX_BODY_BYTES.
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

	msgInvalidBody = "Invalid request body"
)

// FieldError describes one rejected input field. It is carried in the
// details of a VALIDATION_ERROR response.
type FieldError struct {
	Field   string `json:"field"           example:"addresses"`
	Rule    string `json:"rule"            example:"required"`
	Param   string `json:"param,omitempty" example:"1"`
	Message string `json:"message"         example:"addresses is required"`
}

// BatchLimit is the details payload of a "Too many addresses" response.
type BatchLimit struct {
	Max      int `json:"max"      example:"100"`
	Received int `json:"received" example:"150"`
}

// BulkVerify godoc
// @ID          bulkVerify
// @Summary     Verify many addresses
// @Description Returns one trust record per distinct address, in request order. Duplicates are collapsed.
// @Tags        Bulk
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.BulkVerifyRequest  true  "Addresses to verify"
//
// @Success     200  {object}  domain.BulkVerifyResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid request body; details list field errors"
// @Failure     413  {object}  handlers.ErrorResponse  "Request body too large"
// @Failure     422  {object}  handlers.ErrorResponse  "Too many addresses; details carry max and received"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /bulk/verify [post]
func (h *Handlers) BulkVerify(c *gin.Context) {
	var req domain.BulkVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, apperr.New("Request body too large",
				apperr.WithCode(CodePayloadTooLarge),
				apperr.WithStatus(http.StatusRequestEntityTooLarge),
				apperr.WithDetails(map[string]int64{"limit": tooLarge.Limit}),
			))
			return
		}
		fail(c, apperr.Validation(msgInvalidBody, bindingDetails(err)))
		return
	}

	resp, err := h.bulk.Verify(c.Request.Context(), req.Addresses)
	if err != nil {
		fail(c, translateBulkError(err))
		return
	}
	ok(c, http.StatusOK, resp)
}

// translateBulkError maps service errors to taxonomy errors. Unknown errors
// pass through untouched.
func translateBulkError(err error) error {
	var limit *services.BatchLimitError
	switch {
	case errors.As(err, &limit):
		return apperr.Unprocessable("Too many addresses", BatchLimit{Max: limit.Max, Received: limit.Received})
	case errors.Is(err, services.ErrNoAddresses):
		return apperr.Validation(msgInvalidBody, []FieldError{{
			Field:   "addresses",
			Rule:    "required",
			Message: "at least one non-blank address is required",
		}})
	default:
		return err
	}
}

// bindingDetails turns a ShouldBindJSON error into field errors. Decoder
// failures are reported against the body itself.
func bindingDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{
				Field:   fieldPath(fe),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: ruleMessage(fe),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return []FieldError{{Field: "body", Rule: "required", Message: "request body is empty"}}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []FieldError{{Field: field, Rule: "type", Message: "expected " + typeErr.Type.String()}}
	default:
		return []FieldError{{Field: "body", Rule: "json", Message: "malformed JSON"}}
	}
}

// fieldPath drops the top-level struct name from the validator namespace,
// e.g. "BulkVerifyRequest.addresses[2]" -> "addresses[2]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	f := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "min":
		return f + " must contain at least " + fe.Param() + " item(s)"
	default:
		return f + " failed " + fe.Tag() + " validation"
	}
}

var jsonNamesOnce sync.Once

// useJSONFieldNames makes the binding validator report JSON field names.
func useJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}
