// Package wscutils provides the request and response envelope shared by all
// checkwriter web services, along with request validation and the error
// catalog that maps error codes to message ids.
package wscutils

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed errortypes.yaml
var defaultErrorTypes []byte

// ErrorType is one entry of the error catalog.
type ErrorType struct {
	MsgID   int    `yaml:"msgid"`
	ErrCode string `yaml:"errcode"`
}

type errorCatalog struct {
	Default     ErrorType            `yaml:"default"`
	InvalidJSON ErrorType            `yaml:"invalid_json"`
	Tags        map[string]ErrorType `yaml:"tags"`
	Codes       map[string]int       `yaml:"codes"`
}

// catalog is loaded once at start-up and only read afterwards.
var catalog errorCatalog

var validate = newValidator()

func init() {
	if err := LoadErrorTypes(bytes.NewReader(defaultErrorTypes)); err != nil {
		panic(err)
	}
}

// LoadErrorTypes replaces the error catalog with the YAML document read from r.
// It must be called before the web services start handling requests.
func LoadErrorTypes(r io.Reader) error {
	byteValue, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read error types: %w", err)
	}

	var c errorCatalog
	if err := yaml.Unmarshal(byteValue, &c); err != nil {
		return fmt.Errorf("failed to parse error types: %w", err)
	}
	if c.Default.ErrCode == "" {
		return errors.New("error types: default entry is missing")
	}
	catalog = c
	return nil
}

// newValidator reports fields by their JSON names so that ErrorMessage.Field
// matches what the client sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Request represents the standard structure of a request to the web service.
type Request struct {
	Data any `json:"data" binding:"required"`
}

// Response represents the standard structure of a response of the web service.
type Response struct {
	Status   string         `json:"status"`
	Data     any            `json:"data"`
	Messages []ErrorMessage `json:"messages"`
}

// ErrorMessage defines the format of error part of the standard response object
type ErrorMessage struct {
	MsgID   int      `json:"msgid"`
	ErrCode string   `json:"errcode"`
	Field   *string  `json:"field,omitempty"` // make it a pointer so it can be omitted
	Vals    []string `json:"vals,omitempty"`  // omit if Vals is empty
}

// WscValidate validates data according to its `validate` struct tags and
// returns one ErrorMessage per failing field. The error code and message id
// come from the catalog entry of the failing tag; getVals, when not nil,
// supplies the request-specific values for each failure.
func WscValidate[T any](data T, getVals func(err validator.FieldError) []string) []ErrorMessage {
	var validationErrors []ErrorMessage

	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []ErrorMessage{BuildErrorMessage(catalog.Default.MsgID, catalog.Default.ErrCode, "")}
	}
	for _, fe := range validationErrs {
		var vals []string
		if getVals != nil {
			vals = getVals(fe)
		}
		et, ok := catalog.Tags[fe.Tag()]
		if !ok {
			et = catalog.Default
		}
		validationErrors = append(validationErrors, BuildErrorMessage(et.MsgID, et.ErrCode, fe.Field(), vals...))
	}
	return validationErrors
}

// BuildErrorMessage generates an ErrorMessage. An empty fieldName is omitted.
//
// Examples:
//
//	BuildErrorMessage(1101, "not_found", "")
//	BuildErrorMessage(1003, "too_long", "payee", "140", "128")
func BuildErrorMessage(msgid int, errcode string, fieldName string, vals ...string) ErrorMessage {
	errorMessage := ErrorMessage{
		MsgID:   msgid,
		ErrCode: errcode,
		Vals:    vals,
	}
	if fieldName != "" {
		errorMessage.Field = &fieldName
	}
	return errorMessage
}

// ErrorMessageFor builds an ErrorMessage for an application error code,
// taking the message id from the catalog.
func ErrorMessageFor(errcode string, fieldName string, vals ...string) ErrorMessage {
	return BuildErrorMessage(MsgID(errcode), errcode, fieldName, vals...)
}

// MsgID returns the catalog message id for errcode, or the default id if the
// code is not in the catalog.
func MsgID(errcode string) int {
	if msgid, ok := catalog.Codes[errcode]; ok {
		return msgid
	}
	return catalog.Default.MsgID
}

// NewResponse is a helper function to create a new web service response
// and any error messages that might need to be sent back to the client.
func NewResponse(status string, data any, messages []ErrorMessage) *Response {
	return &Response{
		Status:   status,
		Data:     data,
		Messages: messages,
	}
}

// NewErrorResponse creates a standard error response with a single error message.
func NewErrorResponse(msgid int, errcode string) *Response {
	return NewResponse(ErrorStatus, nil, []ErrorMessage{BuildErrorMessage(msgid, errcode, "")})
}

// NewSuccessResponse simplifies the process of creating a standard success response
func NewSuccessResponse(data any) *Response {
	return NewResponse(SuccessStatus, data, nil)
}

// BindJSON binds the "data" member of the request body into data. On failure
// it sends the invalid_json error response itself and returns the bind error.
func BindJSON(c *gin.Context, data any) error {
	req := Request{Data: data}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJSON := BuildErrorMessage(catalog.InvalidJSON.MsgID, catalog.InvalidJSON.ErrCode, "")
		c.JSON(http.StatusBadRequest, NewResponse(ErrorStatus, nil, []ErrorMessage{invalidJSON}))
		return err
	}
	return nil
}

// SendSuccessResponse sends a JSON response.
func SendSuccessResponse(c *gin.Context, response *Response) {
	c.JSON(http.StatusOK, response)
}

// SendErrorResponse sends a JSON error response.
func SendErrorResponse(c *gin.Context, response *Response) {
	c.JSON(http.StatusBadRequest, response)
}
