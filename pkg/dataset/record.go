package dataset

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
)

// DateLayout is the layout of birth_date values.
const DateLayout = "2006-01-02"

// Record is one person as stored in a dataset file. Parent IDs are empty
// when unknown; a JSON null or a missing key means the same thing.
type Record struct {
	ID        string `json:"id" yaml:"id" validate:"required,personid"`
	Name      string `json:"name" yaml:"name" validate:"required"`
	Surname   string `json:"surname,omitempty" yaml:"surname,omitempty"`
	BirthDate string `json:"birth_date,omitempty" yaml:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Photo     string `json:"photo,omitempty" yaml:"photo,omitempty" validate:"omitempty,photopath"`
	FatherID  string `json:"father_id,omitempty" yaml:"father_id,omitempty" validate:"omitempty,personid,nefield=ID"`
	MotherID  string `json:"mother_id,omitempty" yaml:"mother_id,omitempty" validate:"omitempty,personid,nefield=ID,nefield=FatherID"`
}

// validate is shared by all records. Custom tags are registered in init().
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report field names as they appear in the file.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("personid", func(fl validator.FieldLevel) bool {
		return errors.ValidatePersonID(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("photopath", func(fl validator.FieldLevel) bool {
		return errors.ValidatePhotoPath(fl.Field().String()) == nil
	})
}

// Validate checks r against its field rules. The returned error has code
// INVALID_RECORD and lists every failing field.
func (r Record) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInvalidRecord, err, "record %q", r.ID)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = describe(fe)
	}
	return errors.New(errors.ErrCodeInvalidRecord, "record %q: %s", r.ID, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "datetime":
		return fmt.Sprintf("%s %q is not a YYYY-MM-DD date", fe.Field(), fe.Value())
	case "personid":
		return fmt.Sprintf("%s %q is not a valid person ID", fe.Field(), fe.Value())
	case "photopath":
		return fmt.Sprintf("%s %q must be a relative path inside the dataset directory", fe.Field(), fe.Value())
	case "nefield":
		if fe.Param() == "ID" {
			return fe.Field() + " must not be the person's own ID"
		}
		return fe.Field() + " must differ from father_id"
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}

// Person converts a validated record.
func (r Record) Person() family.Person {
	p := family.Person{
		ID:      r.ID,
		Name:    r.Name,
		Surname: r.Surname,
		Photo:   r.Photo,
	}
	if r.BirthDate != "" {
		// Validate has already checked the layout.
		p.BirthDate, _ = time.Parse(DateLayout, r.BirthDate)
	}
	return p
}

// recordOf is the inverse of [Record.Person].
func recordOf(t *family.Tree, p family.Person) Record {
	r := Record{
		ID:      p.ID,
		Name:    p.Name,
		Surname: p.Surname,
		Photo:   p.Photo,
	}
	if !p.BirthDate.IsZero() {
		r.BirthDate = p.BirthDate.Format(DateLayout)
	}
	if f, ok := t.Father(p.ID); ok {
		r.FatherID = f.ID
	}
	if m, ok := t.Mother(p.ID); ok {
		r.MotherID = m.ID
	}
	return r
}
