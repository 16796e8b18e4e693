package resource

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/flipspace/flipspace/core"
)

// Resource types
const (
	TypeVideo = "video"
	TypePDF   = "pdf"
	TypeLink  = "link"
)

// Resource is a learning material grouped under a free-text module label.
// Views and Completions only ever increase; they are bumped by the progress
// service, once per distinct user reaching that state.
type Resource struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description null.String `json:"description,omitempty"`
	Module      string      `json:"module"`
	Type        string      `json:"type"`
	URL         string      `json:"url"` // external URI or data-URI for uploaded PDFs
	UploadedBy  string      `json:"uploadedBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	Views       int         `json:"views"`
	Completions int         `json:"completions"`
}

// NewResource contains information needed to publish a new Resource.
type NewResource struct {
	Title       string      `json:"title" validate:"required"`
	Description null.String `json:"description"`
	Module      string      `json:"module" validate:"required"`
	Type        string      `json:"type" validate:"required,resourcetype"`
	URL         string      `json:"url" validate:"required"`
	UploadedBy  string      `json:"uploadedBy" validate:"required"`
}

func (nr *NewResource) Validate(validate *validator.Validate) error {
	nr.Title = core.CleanString(nr.Title)
	nr.Module = core.CleanString(nr.Module)
	nr.Type = core.CleanString(nr.Type, true /* lower */)
	return validate.Struct(nr)
}

// UpdateResource defines what information may be provided to modify an
// existing Resource; unset fields are left untouched.
type UpdateResource struct {
	Title       null.String `json:"title"`
	Description null.String `json:"description"`
	Module      null.String `json:"module"`
	Type        null.String `json:"type"`
	URL         null.String `json:"url"`
}

func (ur *UpdateResource) Validate(validate *validator.Validate) error {
	if ur.Title.Valid {
		ur.Title.String = core.CleanString(ur.Title.String)
	}
	if ur.Type.Valid {
		ur.Type.String = core.CleanString(ur.Type.String, true /* lower */)
		if err := validate.Var(ur.Type.String, "resourcetype"); err != nil {
			return core.NewInvalidInputError("type", "must be one of: video, pdf, link")
		}
	}
	return nil
}

func (ur UpdateResource) apply(res Resource) Resource {
	if ur.Title.Valid {
		res.Title = ur.Title.String
	}
	if ur.Description.Valid {
		res.Description = ur.Description
	}
	if ur.Module.Valid {
		res.Module = ur.Module.String
	}
	if ur.Type.Valid {
		res.Type = ur.Type.String
	}
	if ur.URL.Valid {
		res.URL = ur.URL.String
	}
	return res
}
