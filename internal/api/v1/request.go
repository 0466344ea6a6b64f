package v1

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Risriddle/Librarize/internal/model"
	"github.com/Risriddle/Librarize/internal/store"
)

var validate = validator.New()

func init() {
	// Ratings run 0 to 5 in half-star steps.
	validate.RegisterValidation("halfstep", func(fl validator.FieldLevel) bool {
		return store.ValidRating(fl.Field().Float())
	})
}

// decodeAndValidate decodes a JSON body into dst and runs the validator
// over it. Any failure maps to a 400.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(err, "invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

type createQuoteRequest struct {
	BookID    string          `json:"book_id" validate:"required"`
	Text      string          `json:"text" validate:"required"`
	Note      string          `json:"note"`
	PageIndex int             `json:"page_index" validate:"gte=0"`
	Position  model.Rectangle `json:"position"`
	Color     string          `json:"color"`
}

type createVocabRequest struct {
	BookID  string `json:"book_id" validate:"required"`
	Word    string `json:"word" validate:"required"`
	Meaning string `json:"meaning"`
}

type lookupWordRequest struct {
	Word string `json:"word" validate:"required"`
}

type createBookmarkRequest struct {
	BookID    string `json:"book_id" validate:"required"`
	PageIndex int    `json:"page_index" validate:"gte=0"`
	Label     string `json:"label"`
}

type upsertRatingRequest struct {
	Rating float64 `json:"rating" validate:"halfstep"`
	Review string  `json:"review"`
}

type updateBookRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
}

type setPositionRequest struct {
	PageIndex int `json:"page_index" validate:"gte=0"`
}

type addLogBooksRequest struct {
	Books []model.BookSnapshot `json:"books" validate:"required,min=1,dive"`
}

type addMonthlyLegacyRequest struct {
	Month string               `json:"month" validate:"required"`
	Year  int                  `json:"year" validate:"required"`
	Books []model.BookSnapshot `json:"books" validate:"required,min=1,dive"`
}

type shelfActionRequest struct {
	Action string `json:"action" validate:"required,oneof=toggle forget"`
	Set    string `json:"set"`
}
