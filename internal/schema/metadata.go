package schema

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/merrow/gtdvault/internal/models"
)

// recognizedShapes maps the header keys the parser understands to the
// shape strict validation expects of them.
var recognizedShapes = map[string]string{
	"outcome":        "must be a string",
	"status":         "must be a string",
	"area":           "must be a string",
	"review_date":    "must be a date",
	"created_date":   "must be a date",
	"completed_date": "must be a date",
	"tags":           "must be a list of strings",
}

// ValidateMetadata re-checks a leniently parsed header: every recognized
// key must carry its declared shape. The lenient parser stashes
// malformed recognized values under Extra rather than dropping them, so
// their presence there is exactly the violation. The document itself is
// never modified.
func ValidateMetadata(doc *models.Document) error {
	if doc == nil {
		return nil
	}
	errs := validation.Errors{}
	for key := range doc.Meta.Extra {
		if msg, ok := recognizedShapes[key]; ok {
			errs[key] = errors.New(msg)
		}
	}
	return errs.Filter()
}
