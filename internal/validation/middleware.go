package validation

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/Nwoyi/staffing-api/pkg/util/errorutil"
)

const invalidRequestMessage = "Invalid request data"

// checkedBodyKey holds the body fields a schema accepted, keyed by their declared names.
const checkedBodyKey = "validation.checked_body"

// ErrBodyNotChecked is returned by Bind on routes without a body schema.
var ErrBodyNotChecked = errors.New("request body was not validated")

// Middleware rejects requests that fail the schema with a VALIDATION_ERROR response.
func Middleware(schema Schema) fiber.Handler {
	needsBody := false
	for _, field := range schema {
		if field.In == InBody {
			needsBody = true
			break
		}
	}

	return func(c *fiber.Ctx) error {
		in := Input{
			Params: c.AllParams(),
			Query:  c.Queries(),
		}

		if needsBody {
			body, err := decodeBody(c.Body())
			if err != nil {
				return apperrors.NewValidationError(invalidRequestMessage, []FieldError{{
					Field:    "body",
					Location: InBody,
					Message:  "Request body must be a JSON object",
				}})
			}
			in.Body = body
		}

		if errs := schema.Validate(in); len(errs) > 0 {
			return apperrors.NewValidationError(invalidRequestMessage, errs)
		}
		if needsBody {
			c.Locals(checkedBodyKey, schema.bodyFields(in.Body))
		}
		return c.Next()
	}
}

// Bind decodes the body fields accepted by Middleware into out. Keys the schema does not
// declare, including case variants of declared ones, never reach out.
func Bind(c *fiber.Ctx, out any) error {
	checked, ok := c.Locals(checkedBodyKey).(map[string]any)
	if !ok {
		return ErrBodyNotChecked
	}
	raw, err := json.Marshal(checked)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s Schema) bodyFields(body map[string]any) map[string]any {
	checked := make(map[string]any, len(s))
	for _, field := range s {
		if field.In != InBody {
			continue
		}
		if v, ok := body[field.Name]; ok {
			checked[field.Name] = v
		}
	}
	return checked
}

func decodeBody(raw []byte) (map[string]any, error) {
	body := map[string]any{}
	if len(raw) == 0 {
		return body, nil
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body, nil
}
